package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zof/internal/rootfind"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	// rootCmd is shared across tests; clear flag values left over from a
	// previous Execute so each run parses only its own args
	solveCmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
	})
	out := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestSolveCommandJSON(t *testing.T) {
	out, err := runCommand(t, "solve",
		"--method", "bisection",
		"--func", "x**2 - 4",
		"--a", "0", "--b", "3",
		"--tol", "1e-5", "--max-iter", "100",
		"--json",
	)
	require.NoError(t, err)

	var res rootfind.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.InDelta(t, 2, res.Root, 1e-4)
	assert.True(t, res.Converged)
	assert.NotEmpty(t, res.Trace)
}

func TestSolveCommandJSONFailureCarriesTrace(t *testing.T) {
	// an unreachable tolerance drives the secant update until the two
	// residuals coincide within the denominator floor
	out, err := runCommand(t, "solve",
		"--method", "secant",
		"--func", "x**2",
		"--x0", "1", "--x1", "2",
		"--tol", "1e-30", "--max-iter", "200",
		"--json",
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, rootfind.ErrDegenerateDenominator)

	var body struct {
		Kind  string          `json:"kind"`
		Error string          `json:"error"`
		Trace []rootfind.Iter `json:"trace"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	assert.Equal(t, "degenerate_denominator", body.Kind)
	assert.NotEmpty(t, body.Error)
	assert.NotEmpty(t, body.Trace)
}

func TestSolveCommandTextTrace(t *testing.T) {
	out, err := runCommand(t, "solve",
		"--method", "newton",
		"--coeffs", "1,0,-4",
		"--x0", "1",
		"--tol", "1e-8", "--max-iter", "100",
		"--json=false",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Root:")
	assert.Contains(t, out, "Iterations:")
}
