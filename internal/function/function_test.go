package function

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpressionEval(t *testing.T) {
	f, err := New("x**2 - 4")
	require.NoError(t, err)

	y, err := f.Eval(3)
	require.NoError(t, err)
	assert.InDelta(t, 5, y, 1e-12)

	y, err = f.Eval(0)
	require.NoError(t, err)
	assert.InDelta(t, -4, y, 1e-12)
}

func TestExpressionDecimalComma(t *testing.T) {
	f, err := New("x - 0,5")
	require.NoError(t, err)

	y, err := f.Eval(2)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, y, 1e-12)
}

func TestExpressionBuiltins(t *testing.T) {
	f, err := New("sin(x) + cos(x)")
	require.NoError(t, err)

	y, err := f.Eval(0)
	require.NoError(t, err)
	assert.InDelta(t, 1, y, 1e-12)
}

func TestExpressionParseError(t *testing.T) {
	_, err := New("x +* 2")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEvaluation)
}

func TestExpressionNonReal(t *testing.T) {
	f, err := New("sqrt(x)")
	require.NoError(t, err)
	_, err = f.Eval(-1)
	assert.ErrorIs(t, err, ErrEvaluation)

	f, err = New("log(x)")
	require.NoError(t, err)
	_, err = f.Eval(0)
	assert.ErrorIs(t, err, ErrEvaluation)
}

func TestPolyEval(t *testing.T) {
	p, err := NewPoly([]float64{1, 0, -4}) // x^2 - 4
	require.NoError(t, err)

	y, err := p.Eval(3)
	require.NoError(t, err)
	assert.InDelta(t, 5, y, 1e-12)

	_, err = NewPoly(nil)
	assert.ErrorIs(t, err, ErrEvaluation)
}

func TestPolyDerivative(t *testing.T) {
	p, err := NewPoly([]float64{2, -5, 0, 1}) // 2x^3 - 5x^2 + 1
	require.NoError(t, err)

	d, err := p.Derivative()
	require.NoError(t, err)

	// 6x^2 - 10x at x=2 -> 4
	y, err := d.Eval(2)
	require.NoError(t, err)
	assert.InDelta(t, 4, y, 1e-12)

	c, err := NewPoly([]float64{7})
	require.NoError(t, err)
	dc, err := c.Derivative()
	require.NoError(t, err)
	y, err = dc.Eval(3)
	require.NoError(t, err)
	assert.Zero(t, y)
}

func TestPolyString(t *testing.T) {
	p, err := NewPoly([]float64{1, 0, -4})
	require.NoError(t, err)
	assert.Equal(t, "1*x**2 - 4", p.String())

	// the rendered form parses back to the same function
	f, err := New(p.String())
	require.NoError(t, err)
	want, _ := p.Eval(1.7)
	got, err := f.Eval(1.7)
	require.NoError(t, err)
	assert.InDelta(t, want, got, 1e-9)
}

func TestDerivativeExactForPoly(t *testing.T) {
	p, err := NewPoly([]float64{1, 0, -4})
	require.NoError(t, err)

	d, err := Derivative(p)
	require.NoError(t, err)
	y, err := d.Eval(2)
	require.NoError(t, err)
	assert.Equal(t, 4.0, y)
}

func TestDerivativeCentralDifference(t *testing.T) {
	f, err := New("sin(x)")
	require.NoError(t, err)

	d, err := Derivative(f)
	require.NoError(t, err)

	y, err := d.Eval(1)
	require.NoError(t, err)
	assert.InDelta(t, math.Cos(1), y, 1e-6)
}

func TestRelaxed(t *testing.T) {
	f, err := New("x**2 - 4")
	require.NoError(t, err)

	g := Relaxed(f, 0.1)
	y, err := g.Eval(3)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, y, 1e-12)

	// the root of f is a fixed point of g
	y, err = g.Eval(2)
	require.NoError(t, err)
	assert.InDelta(t, 2, y, 1e-12)
}
