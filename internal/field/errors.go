package field

import "errors"

// Commit failures. All three are local, recoverable, user-facing conditions
// surfaced through the field's error flag; none of them propagate past the
// field boundary.
var (
	// ErrFormula indicates a buffer starting with "=" whose expression
	// failed to evaluate.
	ErrFormula = errors.New("formula evaluation failed")

	// ErrParse indicates non-formula text that is not a valid number.
	ErrParse = errors.New("not a number")

	// ErrRange indicates a parsed value outside the configured min/max.
	ErrRange = errors.New("value out of range")
)

// RetainsFocus reports whether a commit error must keep focus pinned to the
// offending field. Formula and parse errors do: leaving them uncorrected
// would strand a buffer that can never be reformatted. A range violation is
// still a well-formed number, so it merely flags the field.
func RetainsFocus(err error) bool {
	return errors.Is(err, ErrFormula) || errors.Is(err, ErrParse)
}
