package function

import "math"

// Differentiable is a Func that knows its own exact derivative.
type Differentiable interface {
	Func
	Derivative() (Func, error)
}

// Derivative returns f's exact derivative when f provides one, and a
// central-difference approximation otherwise.
func Derivative(f Func) (Func, error) {
	if d, ok := f.(Differentiable); ok {
		return d.Derivative()
	}
	return centralDiff{f: f}, nil
}

// diffStep is the cube root of machine epsilon, the usual step scale for a
// central difference.
var diffStep = math.Cbrt(math.Nextafter(1, 2) - 1)

type centralDiff struct {
	f Func
}

func (d centralDiff) Eval(x float64) (float64, error) {
	h := diffStep * math.Max(1, math.Abs(x))
	fp, err := d.f.Eval(x + h)
	if err != nil {
		return math.NaN(), err
	}
	fm, err := d.f.Eval(x - h)
	if err != nil {
		return math.NaN(), err
	}
	return (fp - fm) / (2 * h), nil
}

// Relaxed derives the fixed-point form g(x) = x - k*f(x) from f. Callers that
// already have g(x) pass it to fixed-point iteration directly; this transform
// is never applied implicitly.
func Relaxed(f Func, k float64) Func {
	return relaxed{f: f, k: k}
}

type relaxed struct {
	f Func
	k float64
}

func (r relaxed) Eval(x float64) (float64, error) {
	y, err := r.f.Eval(x)
	if err != nil {
		return math.NaN(), err
	}
	return x - r.k*y, nil
}
