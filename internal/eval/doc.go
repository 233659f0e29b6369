// Package eval provides the formula evaluator behind "=" entries.
//
// The evaluator is a pure, synchronous computation over the expression text
// with no environment: arithmetic operators, parentheses, and numeric
// literals. Anything that fails to compile, fails to run, or produces a
// non-finite or non-numeric result is an evaluation failure the entry field
// surfaces as a formula error.
package eval
