// Package logging provides ID formatting utilities for consistent ID display
// in log lines.
//
// ID FORMATTING STRATEGY:
//   - Debug logs: Full submission IDs for complete traceability
//   - Info/Warn/Error/Success logs: 12-character prefixes for readability
package logging

import (
	"github.com/charmbracelet/log"

	"github.com/angrypants/cmdq/internal/utils"
)

// FormatID formats an ID for logging based on the current log level. Full IDs
// are kept when DEBUG is enabled.
func FormatID(id string) string {
	if errLogger().GetLevel() <= log.DebugLevel {
		return id
	}
	return utils.TruncateIDSafe(id)
}

// FormatSubmissionID formats an HTTP submission ID for logging.
//
// Usage: logging.Info("Accepted submission %s", logging.FormatSubmissionID(id))
func FormatSubmissionID(id string) string {
	return FormatID(id)
}
