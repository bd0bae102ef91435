// Package config provides configuration management for the cmdqctl CLI.
package config

import (
	configDefaults "github.com/angrypants/cmdq/internal/config"
	"github.com/angrypants/cmdq/internal/version"
)

const (
	DefaultAPIAddr = configDefaults.DefaultAPIAddr // Default API server address (routable)
	DefaultTimeout = 8                             // Default connection timeout in seconds

	// MaxSubmitCount mirrors the daemon's per-request limit.
	MaxSubmitCount = 10000
)

// Version returns the current cmdqctl CLI version from the centralized version package
var Version = version.CmdqctlVersion

// Global holds the global CLI configuration
var Global struct {
	APIAddr  string // Address of cmdqd API server to connect to
	LogLevel string // Log level for CLI operations
	Timeout  int    // Connection timeout in seconds
	Verbose  bool   // Show verbose output
	Output   string // Output format: table, json
}

// Stats holds the stats command configuration
var Stats struct {
	Watch bool // Enable watch mode for live updates
}

// Submit holds the submit command configuration
var Submit struct {
	Count int // Number of commands to enqueue
}

// Journal holds the journal command configuration
var Journal struct {
	Limit int  // Newest entries to show, 0 for all
	Watch bool // Enable watch mode for live updates
}
