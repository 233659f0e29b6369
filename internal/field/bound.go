package field

import (
	"fmt"
	"strconv"
)

// UnboundedSentinel is the configuration token meaning "no bound".
const UnboundedSentinel = "*"

// Bound is a tagged variant: either unbounded or a concrete numeric value.
// Configuration text is parsed into a Bound exactly once at the boundary, so
// the rest of the code never re-checks sentinel strings.
type Bound struct {
	value   float64
	bounded bool
}

// Unbounded returns the open bound.
func Unbounded() Bound {
	return Bound{}
}

// BoundAt returns a bound fixed at v.
func BoundAt(v float64) Bound {
	return Bound{value: v, bounded: true}
}

// ParseBound parses configuration text into a Bound. The "*" sentinel and
// the empty string mean unbounded; anything else must be a number.
func ParseBound(s string) (Bound, error) {
	if s == "" || s == UnboundedSentinel {
		return Unbounded(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Bound{}, fmt.Errorf("invalid bound %q: %w", s, err)
	}
	return BoundAt(v), nil
}

// Bounded reports whether the bound carries a value.
func (b Bound) Bounded() bool {
	return b.bounded
}

// Value returns the bound's value. Only meaningful when Bounded is true.
func (b Bound) Value() float64 {
	return b.value
}

// String renders the bound back in configuration form.
func (b Bound) String() string {
	if !b.bounded {
		return UnboundedSentinel
	}
	return strconv.FormatFloat(b.value, 'f', -1, 64)
}
