package rootfind

import (
	"math"

	"zof/internal/function"
)

// Secant iterates x2 = x1 - f(x1)*(x1 - x0)/(f(x1) - f(x0)) from two seeds
// that need not bracket a root. The error metric is |x2 - x1|. At the
// iteration cap the last computed estimate is returned even though
// convergence was not confirmed; Converged stays false.
func Secant(f function.Func, x0, x1, tol float64, maxIter int, onIter OnIter) (*Result, error) {
	res := &Result{Method: MethodSecant}

	for k := 1; k <= maxIter; k++ {
		f0, err := f.Eval(x0)
		if err != nil {
			return res, err
		}
		f1, err := f.Eval(x1)
		if err != nil {
			return res, err
		}
		if math.Abs(f1-f0) < denomFloor {
			return res, ErrDegenerateDenominator
		}

		x2 := x1 - f1*(x1-x0)/(f1-f0)
		f2, err := f.Eval(x2)
		if err != nil {
			return res, err
		}
		e := math.Abs(x2 - x1)

		it := Iter{K: k, A: x0, B: x1, X: x2, FX: f2, Err: e}
		if err := res.record(it, onIter); err != nil {
			return res, err
		}

		if e < tol {
			return res.finish(x2, true), nil
		}
		x0, x1 = x1, x2
	}

	return res.finish(res.Root, false), nil
}
