package function

import (
	"fmt"
	"math"
	"strings"
)

// Poly is a polynomial given by its coefficients, highest degree first:
// {1, 0, -4} is x^2 - 4. Immutable after construction.
type Poly struct {
	coeffs []float64
}

// NewPoly builds a polynomial from coefficients ordered highest degree first.
func NewPoly(coeffs []float64) (*Poly, error) {
	if len(coeffs) == 0 {
		return nil, fmt.Errorf("%w: polynomial needs at least one coefficient", ErrEvaluation)
	}
	return &Poly{coeffs: append([]float64(nil), coeffs...)}, nil
}

// Eval evaluates the polynomial at x by Horner's scheme.
func (p *Poly) Eval(x float64) (float64, error) {
	y := 0.0
	for _, c := range p.coeffs {
		y = y*x + c
	}
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return math.NaN(), fmt.Errorf("%w: non-real value at x=%g", ErrEvaluation, x)
	}
	return y, nil
}

// Derivative returns the exact derivative by the power rule.
func (p *Poly) Derivative() (Func, error) {
	n := len(p.coeffs)
	if n == 1 {
		return &Poly{coeffs: []float64{0}}, nil
	}
	d := make([]float64, n-1)
	for i := 0; i < n-1; i++ {
		d[i] = p.coeffs[i] * float64(n-1-i)
	}
	return &Poly{coeffs: d}, nil
}

// String renders the polynomial in the expression syntax accepted by New.
func (p *Poly) String() string {
	n := len(p.coeffs)
	var b strings.Builder
	for i, c := range p.coeffs {
		if c == 0 && n > 1 {
			continue
		}
		deg := n - 1 - i
		if b.Len() > 0 {
			if c >= 0 {
				b.WriteString(" + ")
			} else {
				b.WriteString(" - ")
				c = -c
			}
		}
		switch deg {
		case 0:
			fmt.Fprintf(&b, "%g", c)
		case 1:
			fmt.Fprintf(&b, "%g*x", c)
		default:
			fmt.Fprintf(&b, "%g*x**%d", c, deg)
		}
	}
	if b.Len() == 0 {
		return "0"
	}
	return b.String()
}
