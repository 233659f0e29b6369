// Package logging provides structured logging for numform.
//
// This package wraps zap logger with convenience functions for the logging
// patterns used throughout the form: field commits, navigation moves, and
// configuration changes.
//
// # Configuration
//
// Logging is silent by default so zap output never corrupts the TUI.
// Set NUMFORM_LOG_LEVEL (debug, info, warn, error) to enable it, and
// NUMFORM_LOG_FILE to direct output to a file instead of stderr:
//
//	NUMFORM_LOG_LEVEL=debug NUMFORM_LOG_FILE=/tmp/numform.log numform
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("commit settled",
//	    zap.String("field", "field-2"),
//	    zap.String("formatted", "1 200.50"),
//	)
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap
// logger handles synchronization automatically.
package logging
