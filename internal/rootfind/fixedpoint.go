package rootfind

import (
	"math"

	"zof/internal/function"
)

// FixedPointIteration iterates x1 = g(x0). The supplied Func must already be
// the fixed-point form g(x) whose fixed point is the wanted root; callers
// starting from f(x)=0 can build g with function.Relaxed. No convergence
// guarantee exists: divergence shows up as a capped Result with a large or
// growing error, which the caller must surface.
func FixedPointIteration(g function.Func, x0, tol float64, maxIter int, onIter OnIter) (*Result, error) {
	res := &Result{Method: MethodFixedPoint}

	for k := 1; k <= maxIter; k++ {
		x1, err := g.Eval(x0)
		if err != nil {
			return res, err
		}
		e := math.Abs(x1 - x0)

		it := Iter{K: k, A: x0, X: x1, Err: e}
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
