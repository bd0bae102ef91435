// Package logging provides centralized log level validation for cmdq.
//
// This file defines the canonical set of valid log levels used by the daemon
// flags, the CLI flags and any component config that carries a level.
//
// SUPPORTED LOG LEVELS:
//   - DEBUG: Per-drain batch sizes, request tracing
//   - INFO:  Lifecycle events (start, stop, listening)
//   - WARN:  Overflow backpressure and recoverable conditions
//   - ERROR: Command panics and failed requests
//
// Level strings are case-sensitive and uppercase.
package logging

import "fmt"

// ValidLogLevels is the single source of truth for log level validation.
var ValidLogLevels = map[string]bool{
	"DEBUG": true,
	"INFO":  true,
	"WARN":  true,
	"ERROR": true,
}

// IsValidLogLevel checks if the provided log level string is supported.
func IsValidLogLevel(level string) bool {
	return ValidLogLevels[level]
}

// ValidateLogLevel validates a log level string and returns an error if invalid.
// Shared by daemon and CLI flag validation so error messages stay consistent.
func ValidateLogLevel(level string) error {
	if !IsValidLogLevel(level) {
		return fmt.Errorf("invalid log level: %s", level)
	}
	return nil
}
