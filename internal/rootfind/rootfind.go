// Package rootfind implements six classical root-finding methods for scalar
// functions of one variable. Every method produces a per-iteration trace and
// either a converged-or-capped Result or a structured failure; reaching the
// iteration cap is a normal terminal state, not an error.
package rootfind

import (
	"errors"

	"zof/internal/function"
)

// Method identifies one of the root-finding algorithms by its wire name.
type Method string

const (
	MethodBisection      Method = "bisection"
	MethodRegulaFalsi    Method = "regula_falsi"
	MethodSecant         Method = "secant"
	MethodNewton         Method = "newton"
	MethodFixedPoint     Method = "fixed_point"
	MethodModifiedSecant Method = "modified_secant"
)

// Methods lists all supported methods in menu order.
func Methods() []Method {
	return []Method{
		MethodBisection,
		MethodRegulaFalsi,
		MethodSecant,
		MethodNewton,
		MethodFixedPoint,
		MethodModifiedSecant,
	}
}

// denomFloor is the magnitude below which a method-specific denominator is
// treated as degenerate.
const denomFloor = 1e-12

var (
	// ErrInvalidBracket — f(a) and f(b) do not have opposite signs.
	ErrInvalidBracket = errors.New("rootfind: f(a) and f(b) must have opposite signs")

	// ErrDegenerateDenominator — a method-specific denominator dropped below 1e-12.
	ErrDegenerateDenominator = errors.New("rootfind: denominator magnitude below 1e-12")

	// ErrZeroDerivative — Newton-Raphson hit a near-zero derivative.
	ErrZeroDerivative = errors.New("rootfind: derivative is zero at the current iterate")

	// ErrStopped — the iteration callback asked to stop.
	ErrStopped = errors.New("rootfind: stopped by callback")

	// ErrUnknownMethod — Solve was given a method name it does not know.
	ErrUnknownMethod = errors.New("rootfind: unknown method")

	// ErrInvalidInput — tolerance or iteration cap out of range.
	ErrInvalidInput = errors.New("rootfind: tolerance must be positive and max iterations at least 1")
)

// KindOf maps a failure to its stable wire kind.
func KindOf(err error) string {
	switch {
	case errors.Is(err, ErrInvalidBracket):
		return "invalid_bracket"
	case errors.Is(err, ErrDegenerateDenominator):
		return "degenerate_denominator"
	case errors.Is(err, ErrZeroDerivative):
		return "zero_derivative"
	case errors.Is(err, function.ErrEvaluation):
		return "evaluation"
	case errors.Is(err, ErrStopped):
		return "stopped"
	case errors.Is(err, ErrUnknownMethod), errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	default:
		return "internal"
	}
}

// Iter is one completed iteration. Which fields a method fills is described
// by Columns; unused fields stay zero. K is 1-based and contiguous.
type Iter struct {
	K   int     `json:"k"`
	A   float64 `json:"a"`
	B   float64 `json:"b"`
	X   float64 `json:"x"`
	FX  float64 `json:"fx"`
	DFX float64 `json:"dfx"`
	Err float64 `json:"err"`
}

// OnIter is called after each recorded iteration. Returning an error stops
// the method; ErrStopped is the conventional value.
type OnIter func(Iter) error

// Result is the terminal outcome of one method invocation. On a mid-loop
// failure the methods still return the Result built so far, so the partial
// trace reaches the caller alongside the error.
type Result struct {
	Method     Method  `json:"method"`
	Root       float64 `json:"root"`
	FinalError float64 `json:"finalError"`
	Iterations int     `json:"iterations"`
	Converged  bool    `json:"converged"`
	Trace      []Iter  `json:"trace"`
}

// record appends an iteration and forwards it to the callback.
func (r *Result) record(it Iter, onIter OnIter) error {
	r.Trace = append(r.Trace, it)
	r.Iterations = len(r.Trace)
	r.FinalError = it.Err
	r.Root = it.X
	if onIter != nil {
		return onIter(it)
	}
	return nil
}

func (r *Result) finish(root float64, converged bool) *Result {
	r.Root = root
	r.Converged = converged
	return r
}
