// Package config persists numform's form configuration.
//
// The configuration file lives in the OS-appropriate config directory
// (~/.config/numform/config.yaml on Linux and macOS, %LOCALAPPDATA%\numform
// on Windows) and stores the shared field parameters: min, max, step,
// decimals, and the number of entry fields. Bounds are stored as text, with
// "*" meaning unbounded, and parsed once at the field boundary.
//
// Field values are deliberately never persisted; only configuration is.
package config
