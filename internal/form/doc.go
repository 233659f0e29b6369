// Package form implements the numform coordinator and its Bubble Tea model.
//
// The form owns an immutable ordered list of field identifiers and the four
// shared configuration scalars (min, max, step, decimals). Fields request
// previous/next navigation through a callback; the form resolves the target
// with wrap-around at both ends and moves focus. Moving focus away from a
// field commits it first, and a commit whose input cannot be normalized
// (bad formula, not a number) cancels the move so the user corrects it
// before leaving.
//
// A settings pane, toggled with esc, edits the four shared scalars through
// plain text inputs and re-parameterizes every field on apply. Applied
// settings are persisted through the config package; field values never are.
package form
