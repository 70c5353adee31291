package rootfind

import (
	"math"

	"zof/internal/function"
)

// RegulaFalsi narrows a sign-change bracket with the false-position formula
// c = (a*f(b) - b*f(a)) / (f(b) - f(a)). The error metric is the residual
// |f(c)|: the method can retain a stalled endpoint indefinitely, so bracket
// width says nothing about convergence.
func RegulaFalsi(f function.Func, a, b, tol float64, maxIter int, onIter OnIter) (*Result, error) {
	res := &Result{Method: MethodRegulaFalsi}

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
		if math.Abs(fa-fb) < denomFloor {
			return res, ErrDegenerateDenominator
		}
		c := (a*fb - b*fa) / (fb - fa)
		fc, err := f.Eval(c)
		if err != nil {
			return res, err
		}

		it := Iter{K: k, A: a, B: b, X: c, FX: fc, Err: math.Abs(fc)}
		if err := res.record(it, onIter); err != nil {
			return res, err
		}

		if math.Abs(fc) < tol {
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
