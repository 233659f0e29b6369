// Numform is a terminal form of numeric entry fields.
//
// Each field accepts a plain number or a spreadsheet-style formula starting
// with "=", formats committed values with thousands separators and a fixed
// decimal count, validates them against configured bounds, and supports
// wheel-driven step adjustment. Arrow keys move between fields with
// wrap-around at both ends.
//
// Usage:
//
//	numform [flags]
//
// Running without arguments launches the form with the persisted
// configuration. See 'numform --help' for flags and commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/numform/numform/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "numform",
	Short: "Formula-capable numeric entry form",
	Long: `A terminal form of numeric entry fields.

Fields accept plain numbers or "=" formulas, format committed values with
thousands separators and fixed decimals, validate against min/max bounds,
and step with the mouse wheel. Arrow keys navigate between fields with
wrap-around; esc opens the shared settings.`,
	Version: version.Version,
	RunE:    runForm,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("numform %s (commit: %s)\n", version.Version, version.Commit)
	},
}
