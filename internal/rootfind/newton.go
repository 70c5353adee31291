package rootfind

import (
	"math"

	"zof/internal/function"
)

// NewtonRaphson iterates x1 = x0 - f(x0)/f'(x0) from a single seed. The
// derivative comes from function.Derivative: exact when the Func provides
// one, central difference otherwise. The error metric is |x1 - x0|.
func NewtonRaphson(f function.Func, x0, tol float64, maxIter int, onIter OnIter) (*Result, error) {
	res := &Result{Method: MethodNewton}

	df, err := function.Derivative(f)
	if err != nil {
		return res, err
	}

	for k := 1; k <= maxIter; k++ {
		f0, err := f.Eval(x0)
		if err != nil {
			return res, err
		}
		d0, err := df.Eval(x0)
		if err != nil {
			return res, err
		}
		if math.Abs(d0) < denomFloor {
			return res, ErrZeroDerivative
		}

		x1 := x0 - f0/d0
		e := math.Abs(x1 - x0)

		it := Iter{K: k, A: x0, X: x1, FX: f0, DFX: d0, Err: e}
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
