package field

import (
	"strconv"
	"strings"
)

// Separator is the thousands separator inserted between digit groups.
const Separator = ' '

// separatorCutset covers every whitespace-class rune we accept as a
// separator on the way in: plain space, tab, NBSP, narrow NBSP. Values
// pasted from other tools often carry the non-breaking variants.
const separatorCutset = " \t\u00a0\u202f"

// StripSeparators removes all separator runes from s. It is the exact
// inverse of InsertSeparators for any string this package produces.
func StripSeparators(s string) string {
	if !strings.ContainsAny(s, separatorCutset) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if strings.ContainsRune(separatorCutset, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// InsertSeparators groups the integer portion of a plain numeric string in
// clusters of three digits from the right. The leftmost group is never
// preceded by a separator and the fractional portion is left untouched.
// A leading sign is preserved.
func InsertSeparators(s string) string {
	sign := ""
	rest := s
	if strings.HasPrefix(rest, "-") || strings.HasPrefix(rest, "+") {
		sign, rest = rest[:1], rest[1:]
	}

	intPart := rest
	frac := ""
	if i := strings.IndexByte(rest, '.'); i >= 0 {
		intPart, frac = rest[:i], rest[i:]
	}

	if len(intPart) <= 3 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + len(intPart)/3)
	b.WriteString(sign)

	lead := len(intPart) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(intPart[:lead])
	for i := lead; i < len(intPart); i += 3 {
		b.WriteRune(Separator)
		b.WriteString(intPart[i : i+3])
	}
	b.WriteString(frac)
	return b.String()
}

// FormatValue renders v at the given decimal count with thousands
// separators. This is the settled display form of every committed value.
func FormatValue(v float64, decimals int) string {
	return InsertSeparators(strconv.FormatFloat(v, 'f', decimals, 64))
}
