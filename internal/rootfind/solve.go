package rootfind

import (
	"fmt"

	"zof/internal/function"
)

// Request carries the inputs for one Solve call. A and B seed the bracket
// methods, X0 and X1 the open methods, Delta the modified-secant
// perturbation fraction. F is the function under study — for fixed-point
// iteration it must be the g(x) form.
type Request struct {
	Method  Method
	F       function.Func
	A, B    float64
	X0, X1  float64
	Delta   float64
	Tol     float64
	MaxIter int
}

// Solve dispatches to the named method. All methods share the contract
// described on Result: a nil error means converged or capped, a non-nil
// error carries the failure and the Result still holds the partial trace.
func Solve(req Request, onIter OnIter) (*Result, error) {
	if req.Tol <= 0 || req.MaxIter < 1 {
		return &Result{Method: req.Method}, ErrInvalidInput
	}

	switch req.Method {
	case MethodBisection:
		return Bisection(req.F, req.A, req.B, req.Tol, req.MaxIter, onIter)
	case MethodRegulaFalsi:
		return RegulaFalsi(req.F, req.A, req.B, req.Tol, req.MaxIter, onIter)
	case MethodSecant:
		return Secant(req.F, req.X0, req.X1, req.Tol, req.MaxIter, onIter)
	case MethodNewton:
		return NewtonRaphson(req.F, req.X0, req.Tol, req.MaxIter, onIter)
	case MethodFixedPoint:
		return FixedPointIteration(req.F, req.X0, req.Tol, req.MaxIter, onIter)
	case MethodModifiedSecant:
		return ModifiedSecant(req.F, req.X0, req.Delta, req.Tol, req.MaxIter, onIter)
	default:
		return &Result{Method: req.Method}, fmt.Errorf("%w: %q", ErrUnknownMethod, req.Method)
	}
}
