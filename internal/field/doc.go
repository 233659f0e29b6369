// Package field implements the numeric entry field at the heart of numform.
//
// A Field wraps a bubbles textinput and owns the full value lifecycle of a
// single numeric entry: raw-text capture with character filtering, optional
// formula evaluation for buffers starting with "=", numeric parsing, range
// validation against configured bounds, and display formatting with thousands
// separators and a fixed decimal count.
//
// # States
//
// The buffer is in one of two informal states:
//   - Editing: raw, unformatted text as typed (separators stripped on focus)
//   - Settled: formatted, validated text written back by a commit
//
// An error flag is orthogonal to both states. It is recomputed at every
// normalization point (commit or wheel adjustment) and never set during free
// typing, so the user is not flashed an error on every keystroke.
//
// # Commit
//
// Commit is the Editing -> Settled transition. An empty buffer is a valid
// "no value" resting state and commits as a no-op. Formula and parse failures
// pin focus to the field until corrected; a range violation flags the field
// but lets focus leave (the value is still a well-formed number the user can
// see flagged).
//
// # Navigation
//
// Arrow keys at the buffer edges request previous/next navigation through a
// callback. The field never touches sibling fields directly; resolving the
// request is the form coordinator's job.
package field
