package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"zof/internal/function"
	"zof/internal/rootfind"
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Run one root-finding method and print the iteration trace",
	Long: `Runs a single method to convergence or the iteration cap and prints every
iteration. Seeds depend on the method: bisection and regula_falsi take a
bracket --a/--b with a sign change, secant takes --x0/--x1, newton and
fixed_point take --x0, modified_secant takes --x0 and --delta.

For fixed_point the expression is g(x) with the root at x = g(x); pass
--relax k to derive g(x) = x - k*f(x) from an f(x)=0 expression instead.`,
	Example: `  zof solve --method bisection --func "x**2 - 4" --a 0 --b 3
  zof solve --method newton --coeffs 1,0,-4 --x0 1
  zof solve --method fixed_point --func "sqrt(x+2)" --x0 1`,
	RunE: runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)

	f := solveCmd.Flags()
	f.String("method", "", "method: bisection, regula_falsi, secant, newton, fixed_point, modified_secant")
	f.String("func", "", `function expression of x, e.g. "x**2 - 4"`)
	f.Float64Slice("coeffs", nil, "polynomial coefficients, highest degree first")
	f.Float64("a", 0, "bracket start (bisection, regula_falsi)")
	f.Float64("b", 0, "bracket end (bisection, regula_falsi)")
	f.Float64("x0", 0, "first seed (secant, newton, fixed_point, modified_secant)")
	f.Float64("x1", 0, "second seed (secant)")
	f.Float64("delta", 0.01, "perturbation fraction (modified_secant)")
	f.Float64("tol", 1e-5, "convergence tolerance")
	f.Int("max-iter", 100, "iteration cap")
	f.Float64("relax", 0, "fixed_point only: derive g(x) = x - relax*f(x)")
	f.Bool("json", false, "print the result as JSON")
	_ = solveCmd.MarkFlagRequired("method")
}

func runSolve(cmd *cobra.Command, args []string) error {
	fl := cmd.Flags()
	method, _ := fl.GetString("method")
	expr, _ := fl.GetString("func")
	coeffs, _ := fl.GetFloat64Slice("coeffs")
	jsonOut, _ := fl.GetBool("json")

	var f function.Func
	var err error
	switch {
	case expr != "" && len(coeffs) > 0:
		return errors.New("give either --func or --coeffs, not both")
	case len(coeffs) > 0:
		f, err = function.NewPoly(coeffs)
	case expr != "":
		f, err = function.New(expr)
	default:
		return errors.New("--func or --coeffs is required")
	}
	if err != nil {
		return err
	}

	if fl.Changed("relax") {
		if method != string(rootfind.MethodFixedPoint) {
			return errors.New("--relax applies to fixed_point only")
		}
		k, _ := fl.GetFloat64("relax")
		f = function.Relaxed(f, k)
	}

	req := rootfind.Request{Method: rootfind.Method(method), F: f}
	req.A, _ = fl.GetFloat64("a")
	req.B, _ = fl.GetFloat64("b")
	req.X0, _ = fl.GetFloat64("x0")
	req.X1, _ = fl.GetFloat64("x1")
	req.Delta, _ = fl.GetFloat64("delta")
	req.Tol, _ = fl.GetFloat64("tol")
	req.MaxIter, _ = fl.GetInt("max-iter")

	out := cmd.OutOrStdout()

	res, err := rootfind.Solve(req, nil)
	if err != nil {
		// the partial trace travels with the failure on both output paths,
		// same as the server's error body
		if jsonOut {
			body := map[string]any{
				"kind":  rootfind.KindOf(err),
				"error": err.Error(),
			}
			if res != nil && len(res.Trace) > 0 {
				body["trace"] = res.Trace
			}
			_ = json.NewEncoder(out).Encode(body)
		} else if res != nil && len(res.Trace) > 0 {
			printTrace(out, res)
			fmt.Fprintln(out, styleMuted.Render(fmt.Sprintf("(%d iterations before failure)", res.Iterations)))
		}
		return fmt.Errorf("%s: %w", rootfind.KindOf(err), err)
	}

	if jsonOut {
		return json.NewEncoder(out).Encode(res)
	}

	fmt.Fprintln(out, styleTitle.Render("ZOF Solver — "+method))
	printTrace(out, res)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Root:        %s\n", fmtCell(res.Root))
	fmt.Fprintf(out, "Final error: %s\n", fmtCell(res.FinalError))
	fmt.Fprintf(out, "Iterations:  %d\n", res.Iterations)
	if !res.Converged {
		tol, _ := fl.GetFloat64("tol")
		fmt.Fprintln(out, styleWarn.Render(fmt.Sprintf(
			"iteration cap reached before the error dropped below %g; estimate is best effort", tol)))
	}
	return nil
}

const cellWidth = 16

func printTrace(out io.Writer, res *rootfind.Result) {
	cols := rootfind.Columns(res.Method)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-5s", "k"))
	for _, c := range cols {
		b.WriteString(fmt.Sprintf("%-*s", cellWidth, c.Header))
	}
	fmt.Fprintln(out, styleHeader.Render(b.String()))

	for _, it := range res.Trace {
		fmt.Fprintf(out, "%-5d", it.K)
		for _, c := range cols {
			fmt.Fprintf(out, "%-*s", cellWidth, fmtCell(c.Value(it)))
		}
		fmt.Fprintln(out)
	}
}

func fmtCell(v float64) string {
	return strconv.FormatFloat(v, 'g', 8, 64)
}
