// Package logging provides structured, colorful logging utilities for the cmdq
// daemon, CLI and command queue internals, keeping log formatting consistent
// across every component that touches the queue.
//
// Exposes package-level printf-style functions backed by charmbracelet/log with
// lipgloss level styles. Output follows Unix conventions by default: INFO and
// SUCCESS go to stdout, WARN, ERROR and DEBUG go to stderr. A single log file
// can replace both streams for daemon deployments.
//
// LOGGING FEATURES:
//   - Color-coded levels: DEBUG (purple), INFO (blue), WARN (yellow), ERROR (red), SUCCESS (green)
//   - Level filtering shared by both streams
//   - Output suppression for CLI tools that only want errors
//   - LevelWriter for routing third-party io.Writer output (gin, stdlib log)
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	stdlog "log"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var (
	mu sync.RWMutex

	// INFO/SUCCESS destination
	stdoutLogger = newLogger(os.Stdout)

	// WARN/ERROR/DEBUG destination
	stderrLogger = newLogger(os.Stderr)

	// Track if logging has been explicitly configured by CLI tools
	cliConfigured = false

	// Set when SetOutput routed both streams to one writer
	singleOutput io.Writer
)

// levelStyles builds the color scheme for log levels. Colors are chosen to stay
// readable on both light and dark terminals.
func levelStyles() *log.Styles {
	styles := log.DefaultStyles()

	styles.Levels[log.DebugLevel] = lipgloss.NewStyle().
		SetString("DEBUG").
		Foreground(lipgloss.Color("#7F6DFF"))
	styles.Levels[log.InfoLevel] = lipgloss.NewStyle().
		SetString("INFO").
		Foreground(lipgloss.Color("#42E7FF"))
	styles.Levels[log.WarnLevel] = lipgloss.NewStyle().
		SetString("WARN").
		Foreground(lipgloss.Color("#FFE763"))
	styles.Levels[log.ErrorLevel] = lipgloss.NewStyle().
		SetString("ERROR").
		Foreground(lipgloss.Color("#FF4473"))

	return styles
}

// newLogger creates a timestamped logger with the custom level styles applied.
func newLogger(w io.Writer) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	})
	l.SetStyles(levelStyles())
	return l
}

func outLogger() *log.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return stdoutLogger
}

func errLogger() *log.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return stderrLogger
}

// Info logs informational messages about queue and daemon activity.
// Uses stdout following Unix conventions (or the log file when specified).
func Info(format string, v ...any) {
	outLogger().Info(fmt.Sprintf(format, v...))
}

// Warn logs non-critical conditions such as queue overflow backpressure.
func Warn(format string, v ...any) {
	errLogger().Warn(fmt.Sprintf(format, v...))
}

// Error logs failures, including commands that panicked during a drain.
func Error(format string, v ...any) {
	errLogger().Error(fmt.Sprintf(format, v...))
}

// Debug logs detailed diagnostics. Arguments are only formatted when DEBUG is
// enabled, so hot paths can call it freely.
func Debug(format string, v ...any) {
	l := errLogger()
	if l.GetLevel() > log.DebugLevel {
		return
	}
	l.Debug(fmt.Sprintf(format, v...))
}

// Success logs successful operations in green using INFO level with custom styling.
// Respects INFO level filtering and the current stdout destination.
func Success(format string, v ...any) {
	l := outLogger()
	if l.GetLevel() > log.InfoLevel {
		return
	}

	mu.RLock()
	out := currentStdout()
	mu.RUnlock()

	styles := levelStyles()
	styles.Levels[log.InfoLevel] = lipgloss.NewStyle().
		SetString("SUCCESS").
		Foreground(lipgloss.Color("#60F281"))

	tmp := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
	})
	tmp.SetStyles(styles)
	tmp.SetLevel(l.GetLevel())
	tmp.Info(fmt.Sprintf(format, v...))
}

// currentStdout returns where INFO/SUCCESS lines currently go. Caller holds mu.
func currentStdout() io.Writer {
	if singleOutput != nil {
		return singleOutput
	}
	return os.Stdout
}

// parseLevel maps a level string onto a charmbracelet level, defaulting to INFO.
func parseLevel(level string) log.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return log.DebugLevel
	case "INFO":
		return log.InfoLevel
	case "WARN":
		return log.WarnLevel
	case "ERROR":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// SetLevel configures the minimum logging level for both output streams.
// Accepts DEBUG, INFO, WARN and ERROR; anything else falls back to INFO.
//
// Lets operators trade verbosity for noise: ERROR-only in production or DEBUG
// while investigating drain timing and overflow behavior.
func SetLevel(level string) {
	lvl := parseLevel(level)

	mu.Lock()
	defer mu.Unlock()
	stdoutLogger.SetLevel(lvl)
	stderrLogger.SetLevel(lvl)
}

// SetOutput routes all log levels to a single writer, overriding the stdout/
// stderr split. Passing nil suppresses all output.
//
// Used by the daemon's --log-file flag and by tests that capture log lines.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	if w == nil {
		stdoutLogger.SetLevel(log.FatalLevel + 1)
		stderrLogger.SetLevel(log.FatalLevel + 1)
		singleOutput = nil
		return
	}

	lvl := stdoutLogger.GetLevel()
	singleOutput = w
	stdoutLogger = newLogger(w)
	stderrLogger = newLogger(w)
	stdoutLogger.SetLevel(lvl)
	stderrLogger.SetLevel(lvl)
}

// SuppressOutput disables INFO/WARN/DEBUG logs while keeping ERROR logs visible.
// Used by cmdqctl so table and JSON output stay clean.
func SuppressOutput() {
	mu.Lock()
	defer mu.Unlock()
	stdoutLogger.SetLevel(log.ErrorLevel)
	stderrLogger.SetLevel(log.ErrorLevel)
	cliConfigured = true
}

// RestoreOutput restores Unix conventions at INFO level and above.
func RestoreOutput() {
	mu.Lock()
	defer mu.Unlock()

	singleOutput = nil
	stdoutLogger = newLogger(os.Stdout)
	stderrLogger = newLogger(os.Stderr)
	stdoutLogger.SetLevel(log.InfoLevel)
	stderrLogger.SetLevel(log.InfoLevel)
	cliConfigured = true
}

// IsConfiguredByCLI returns true if logging has been explicitly configured by CLI tools.
func IsConfiguredByCLI() bool {
	mu.RLock()
	defer mu.RUnlock()
	return cliConfigured
}

// LevelWriter forwards log lines to a specific log level with optional prefix.
// Useful for integrating third-party libraries that expect io.Writer interfaces.
type LevelWriter struct {
	level  string
	prefix string
}

// NewLevelWriter creates a writer that logs each line at the specified level with prefix.
// Valid levels: DEBUG, INFO, WARN, ERROR
func NewLevelWriter(level, prefix string) io.Writer {
	return &LevelWriter{level: strings.ToUpper(level), prefix: prefix}
}

// Write splits input into lines and logs each at the configured level.
func (w *LevelWriter) Write(p []byte) (int, error) {
	for _, line := range strings.Split(string(p), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		msg := line
		if w.prefix != "" {
			msg = "(" + w.prefix + ") " + line
		}
		switch w.level {
		case "DEBUG":
			Debug("%s", msg)
		case "WARN":
			Warn("%s", msg)
		case "ERROR":
			Error("%s", msg)
		default:
			Info("%s", msg)
		}
	}
	return len(p), nil
}

// RedirectStandardLog redirects Go's standard library logger output to the provided writer.
// Passing nil discards standard log output.
func RedirectStandardLog(w io.Writer) {
	if w == nil {
		stdlog.SetOutput(io.Discard)
		return
	}
	stdlog.SetFlags(0)
	stdlog.SetOutput(w)
}
