package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/numform/numform/internal/config"
	"github.com/numform/numform/internal/eval"
	"github.com/numform/numform/internal/field"
	"github.com/numform/numform/internal/form"
	"github.com/numform/numform/internal/logging"
)

// Form flags override the persisted configuration for this run.
var (
	flagFields   int
	flagMin      string
	flagMax      string
	flagStep     string
	flagDecimals int
)

func init() {
	rootCmd.Flags().IntVar(&flagFields, "fields", 0, "Number of entry fields (default from config)")
	rootCmd.Flags().StringVar(&flagMin, "min", "", `Lower bound, "*" for unbounded (default from config)`)
	rootCmd.Flags().StringVar(&flagMax, "max", "", `Upper bound, "*" for unbounded (default from config)`)
	rootCmd.Flags().StringVar(&flagStep, "step", "", `Wheel step, "*" to disable the wheel (default from config)`)
	rootCmd.Flags().IntVar(&flagDecimals, "decimals", -1, "Fraction digits in settled values (default from config)")

	rootCmd.AddCommand(evalCmd)
}

// runForm loads configuration, applies flag overrides, and runs the TUI.
func runForm(cmd *cobra.Command, args []string) error {
	if err := logging.InitializeFromEnv(); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer logging.Sync()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	applyFlagOverrides(cmd, cfg)

	model, err := form.New(cfg, eval.New())
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("form exited with error: %w", err)
	}
	return nil
}

// applyFlagOverrides copies explicitly set flags over the loaded config.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("fields") && flagFields > 0 {
		cfg.Fields = flagFields
	}
	if cmd.Flags().Changed("min") {
		cfg.Min = flagMin
	}
	if cmd.Flags().Changed("max") {
		cfg.Max = flagMax
	}
	if cmd.Flags().Changed("step") {
		cfg.Step = flagStep
	}
	if cmd.Flags().Changed("decimals") && flagDecimals >= 0 {
		cfg.Decimals = flagDecimals
	}
}

// evalCmd evaluates one expression and prints the formatted result. It runs
// the same evaluate/format pipeline a field commit uses, which makes it a
// convenient scripting and debugging entry point.
var evalCmd = &cobra.Command{
	Use:   "eval <expression>",
	Short: "Evaluate an expression and print the formatted result",
	Long: `Evaluate a numeric expression through the form's formula engine and
print the result formatted with thousands separators and fixed decimals.

A leading "=" is accepted and ignored, so expressions can be pasted
directly from a field buffer.`,
	Example: `  numform eval "=2+3"
  numform eval "1234.5 * 2" --decimals 2`,
	Args: cobra.ExactArgs(1),
	RunE: runEval,
}

var evalDecimals int

func init() {
	evalCmd.Flags().IntVar(&evalDecimals, "decimals", field.DefaultDecimals, "Fraction digits in the printed result")
}

func runEval(cmd *cobra.Command, args []string) error {
	expression := strings.TrimPrefix(strings.TrimSpace(args[0]), "=")

	v, err := eval.New().Evaluate(expression)
	if err != nil {
		return err
	}
	if evalDecimals < 0 {
		evalDecimals = field.DefaultDecimals
	}

	fmt.Println(field.FormatValue(v, evalDecimals))
	return nil
}
