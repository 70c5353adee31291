package rootfind

import (
	"math"

	"zof/internal/function"
)

// Bisection halves a sign-change bracket [a,b] until |f(c)| or the bracket
// width drops below tol. The recorded error is the width |b-a| of the bracket
// that produced c, before narrowing.
func Bisection(f function.Func, a, b, tol float64, maxIter int, onIter OnIter) (*Result, error) {
	res := &Result{Method: MethodBisection}

	fa, err := f.Eval(a)
	if err != nil {
		return res, err
	}
	fb, err := f.Eval(b)
	if err != nil {
		return res, err
	}
	if fa*fb >= 0 {
		return res, ErrInvalidBracket
	}

	for k := 1; k <= maxIter; k++ {
		c := (a + b) / 2
		fc, err := f.Eval(c)
		if err != nil {
			return res, err
		}
		width := math.Abs(b - a)

		it := Iter{K: k, A: a, B: b, X: c, FX: fc, Err: width}
		if err := res.record(it, onIter); err != nil {
			return res, err
		}

		if math.Abs(fc) < tol || width < tol {
			return res.finish(c, true), nil
		}

		if fa*fc < 0 {
			b, fb = c, fc
		} else {
			a, fa = c, fc
		}
	}

	return res.finish(res.Root, false), nil
}
