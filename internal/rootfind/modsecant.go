package rootfind

import (
	"math"

	"zof/internal/function"
)

// ModifiedSecant approximates the secant slope with a single seed and a
// fractional perturbation: x1 = x0 - delta*x0*f(x0) / (f(x0+delta*x0) - f(x0)).
// The error metric is |x1 - x0|. A seed of exactly zero makes the
// perturbation vanish and surfaces as a degenerate denominator on the first
// iteration; it is not special-cased.
func ModifiedSecant(f function.Func, x0, delta, tol float64, maxIter int, onIter OnIter) (*Result, error) {
	res := &Result{Method: MethodModifiedSecant}

	for k := 1; k <= maxIter; k++ {
		f0, err := f.Eval(x0)
		if err != nil {
			return res, err
		}
		fd, err := f.Eval(x0 + delta*x0)
		if err != nil {
			return res, err
		}
		denom := fd - f0
		if math.Abs(denom) < denomFloor {
			return res, ErrDegenerateDenominator
		}

		x1 := x0 - delta*x0*f0/denom
		e := math.Abs(x1 - x0)

		it := Iter{K: k, A: x0, X: x1, FX: f0, Err: e}
		if err := res.record(it, onIter); err != nil {
			return res, err
		}

		if e < tol {
			return res.finish(x1, true), nil
		}
		x0 = x1
	}

	return res.finish(res.Root, false), nil
}
