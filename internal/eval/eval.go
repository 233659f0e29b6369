package eval

import (
	"fmt"
	"math"
	"strings"

	"github.com/expr-lang/expr"
)

// Evaluator evaluates spreadsheet-style arithmetic expressions. The zero
// value is ready to use; it satisfies the entry field's evaluator capability.
type Evaluator struct{}

// New returns a ready Evaluator.
func New() Evaluator {
	return Evaluator{}
}

// Evaluate computes the expression and returns its numeric result. The "="
// prefix must already be removed by the caller.
func (Evaluator) Evaluate(expression string) (float64, error) {
	src := strings.TrimSpace(expression)
	if src == "" {
		return 0, fmt.Errorf("empty expression")
	}

	out, err := expr.Eval(src, nil)
	if err != nil {
		return 0, fmt.Errorf("evaluate %q: %w", src, err)
	}

	v, ok := toFloat(out)
	if !ok {
		return 0, fmt.Errorf("expression %q is not numeric (got %T)", src, out)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("expression %q has no finite value", src)
	}
	return v, nil
}

// toFloat widens any numeric result type the expression engine may produce.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
