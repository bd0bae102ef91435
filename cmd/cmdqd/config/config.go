// Package config provides configuration management for the cmdq daemon.
//
// This package holds the cmdqd configuration state populated from CLI flags
// and environment variables, and tracks which values the user set explicitly
// so defaults can be applied differently from user intent.
//
// CONFIGURATION AREAS:
//
//   - HTTP API: bind address and port, with port fallback when not explicit
//   - Command queue: per-buffer byte capacity and failure policy
//   - Dispatcher: drain tick interval
//   - Journal: number of executed commands retained
//   - Logging: level and optional log file
//
// EXPLICIT OVERRIDE TRACKING:
// An API address given with --api is bound exactly or startup fails. The
// default address falls back to the next free port so several daemons can run
// side by side during development.
package config

import (
	"time"

	configDefaults "github.com/angrypants/cmdq/internal/config"
)

// ConfigField represents a configuration field that can be explicitly set
type ConfigField int

const (
	// Configuration field identifiers
	APIAddrField ConfigField = iota
	LogFileField
)

const (
	DefaultAPI           = configDefaults.DefaultAPIAddr       // Default API address
	DefaultCapacity      = "10MiB"                             // Default per-buffer capacity
	DefaultTick          = configDefaults.DefaultTickInterval  // Default drain interval
	DefaultFailurePolicy = configDefaults.DefaultFailurePolicy // Default failure policy
	DefaultJournalSize   = configDefaults.DefaultJournalSize   // Default journal size
	DefaultLogLevel      = configDefaults.DefaultLogLevel      // Default log level
	DefaultMaxPorts      = 100                                 // Default API port fallback range

	// MaxJournalSize bounds journal memory use.
	MaxJournalSize = 1000000
)

// Config holds all daemon configuration values
type Config struct {
	APIAddr       string        // HTTP API server address
	APIPort       int           // HTTP API server port (derived from APIAddr)
	Capacity      string        // Per-buffer capacity as given, e.g. "10MiB" or "4096"
	CapacityBytes int           // Per-buffer capacity in bytes (derived from Capacity)
	TickInterval  time.Duration // How often the dispatcher drains the queue
	FailurePolicy string        // collect or halt
	JournalSize   int           // Executed commands retained for the journal endpoint
	LogLevel      string        // Log level: DEBUG, INFO, WARN, ERROR
	LogFile       string        // Optional log file path
	MaxPorts      int           // Maximum number of ports to try for the API fallback

	// Flags to track if values were explicitly set by user
	apiAddrExplicitlySet bool
	logFileExplicitlySet bool
}

// Global configuration instance
var Global Config

// SetExplicitlySet marks a configuration field as explicitly set by the user.
func (c *Config) SetExplicitlySet(field ConfigField, value bool) {
	switch field {
	case APIAddrField:
		c.apiAddrExplicitlySet = value
	case LogFileField:
		c.logFileExplicitlySet = value
	}
}

// IsExplicitlySet returns whether a configuration field was explicitly set by the user.
func (c *Config) IsExplicitlySet(field ConfigField) bool {
	switch field {
	case APIAddrField:
		return c.apiAddrExplicitlySet
	case LogFileField:
		return c.logFileExplicitlySet
	}
	return false
}
