// Package utils provides utility functions for the cmdqctl CLI.
// This file contains logging setup and Resty logger integration utilities.
package utils

import (
	"os"

	"github.com/angrypants/cmdq/cmd/cmdqctl/config"
	"github.com/angrypants/cmdq/internal/logging"
)

// RestryLogger implements resty.Logger interface and routes logs through structured logging
type RestryLogger struct{}

// Errorf routes error messages through structured logging.
func (s RestryLogger) Errorf(format string, v ...interface{}) {
	logging.Error(format, v...)
}

// Warnf routes warning messages through structured logging.
func (s RestryLogger) Warnf(format string, v ...interface{}) {
	logging.Warn(format, v...)
}

// Debugf routes debug messages through structured logging.
func (s RestryLogger) Debugf(format string, v ...interface{}) {
	logging.Debug(format, v...)
}

// SetupLogging enables debug output when DEBUG=true and otherwise keeps the
// CLI quiet apart from command output.
func SetupLogging() {
	if os.Getenv("DEBUG") == "true" {
		logging.RestoreOutput()
		logging.SetLevel("DEBUG")
	} else if config.Global.Verbose {
		logging.RestoreOutput()
		logging.SetLevel("INFO")
	} else {
		logging.SetLevel(config.Global.LogLevel)
		logging.SuppressOutput()
	}
}
