// Package function provides scalar functions of one real variable: text
// expressions evaluated at runtime, polynomials given by coefficients, and
// derivative helpers for both.
package function

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Knetic/govaluate"
)

// Func is an abstract function f(x).
type Func interface {
	Eval(x float64) (float64, error)
}

// ErrEvaluation reports a malformed expression or a value outside the real
// domain (NaN, infinity) at the requested point.
var ErrEvaluation = errors.New("function: evaluation failed")

// evalFunc implements Func on top of govaluate.
type evalFunc struct {
	expr *govaluate.EvaluableExpression
}

var builtins = map[string]govaluate.ExpressionFunction{
	"sin": func(args ...interface{}) (interface{}, error) { return math.Sin(toFloat(args[0])), nil },
	"cos": func(args ...interface{}) (interface{}, error) { return math.Cos(toFloat(args[0])), nil },
	"tan": func(args ...interface{}) (interface{}, error) { return math.Tan(toFloat(args[0])), nil },
	"exp": func(args ...interface{}) (interface{}, error) { return math.Exp(toFloat(args[0])), nil },
	"log": func(args ...interface{}) (interface{}, error) { return math.Log(toFloat(args[0])), nil },
	"sqrt": func(args ...interface{}) (interface{}, error) {
		return math.Sqrt(toFloat(args[0])), nil
	},
	"abs": func(args ...interface{}) (interface{}, error) {
		return math.Abs(toFloat(args[0])), nil
	},
	"pow": func(args ...interface{}) (interface{}, error) {
		return math.Pow(toFloat(args[0]), toFloat(args[1])), nil
	},
}

// New compiles an expression of the variable x, e.g. "x**2 - 4".
func New(expr string) (Func, error) {
	// tolerate decimal commas in user input
	expr = strings.ReplaceAll(expr, ",", ".")

	parsed, err := govaluate.NewEvaluableExpressionWithFunctions(expr, builtins)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEvaluation, err)
	}
	return &evalFunc{expr: parsed}, nil
}

// Eval evaluates the expression at x. The parameter map is allocated per call
// so one Func may be shared by concurrent solves.
func (f *evalFunc) Eval(x float64) (float64, error) {
	v, err := f.expr.Evaluate(map[string]interface{}{"x": x})
	if err != nil {
		return math.NaN(), fmt.Errorf("%w: %v", ErrEvaluation, err)
	}

	var y float64
	switch t := v.(type) {
	case float64:
		y = t
	case int:
		y = float64(t)
	case int64:
		y = float64(t)
	case string:
		y, err = strconv.ParseFloat(t, 64)
		if err != nil {
			return math.NaN(), fmt.Errorf("%w: %v", ErrEvaluation, err)
		}
	default:
		return math.NaN(), fmt.Errorf("%w: expression returned %T, not a number", ErrEvaluation, v)
	}

	if math.IsNaN(y) || math.IsInf(y, 0) {
		return math.NaN(), fmt.Errorf("%w: non-real value at x=%g", ErrEvaluation, x)
	}
	return y, nil
}

func toFloat(v interface{}) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case string:
		f, _ := strconv.ParseFloat(t, 64)
		return f
	default:
		return math.NaN()
	}
}
