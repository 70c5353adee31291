package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "zof",
	Short: "ZOF finds zeros of scalar functions with classical iterative methods",
	Long: `ZOF (Zero of Functions) approximates a real root of f(x) = 0 with one of
six classical methods: bisection, regula falsi, secant, Newton-Raphson,
fixed-point iteration, or modified secant. Each run prints the full
per-iteration trace and the final estimate.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
