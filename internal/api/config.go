// Package api provides the HTTP API server configuration for cmdqd.
//
// The API configuration wires the daemon's command queue, drain loop and
// execution journal into the REST server that cmdqctl talks to. Validation
// makes sure every component is present and the bind address is usable before
// the server tries to listen.
package api

import (
	"fmt"

	"github.com/angrypants/cmdq/internal/cmdqueue"
	"github.com/angrypants/cmdq/internal/config"
	"github.com/angrypants/cmdq/internal/dispatcher"
	"github.com/angrypants/cmdq/internal/journal"
	"github.com/angrypants/cmdq/internal/validate"
)

// Config holds all configuration parameters required for running the HTTP API
// server inside cmdqd.
//
// The Config struct serves as a dependency injection container: the daemon
// builds the queue, dispatcher and journal, and the server only references
// them. Tests construct the components directly.
type Config struct {
	BindAddr   string                 // HTTP server bind address (e.g., "127.0.0.1")
	BindPort   int                    // HTTP server bind port
	Version    string                 // Reported by the health endpoint
	Queue      *cmdqueue.Queue        // Command queue served by the API
	Dispatcher *dispatcher.Dispatcher // Drain loop, for stats only; may be nil
	Journal    *journal.Journal       // Execution journal
}

// DefaultConfig creates a new Config with loopback binding on the default API
// port. Components must be set by the caller.
func DefaultConfig() *Config {
	return &Config{
		BindAddr:   config.DefaultBindAddr,
		BindPort:   config.DefaultAPIPort,
		Version:    "0.1.0-dev",
		Queue:      nil, // Must be set by caller
		Dispatcher: nil, // Optional
		Journal:    nil, // Must be set by caller
	}
}

// Validate checks network settings and that the required components are wired.
func (c *Config) Validate() error {
	if err := validate.ValidateRequiredString(c.BindAddr, "bind address"); err != nil {
		return err
	}
	if err := validate.ValidatePortRange(c.BindPort); err != nil {
		return fmt.Errorf("bind port validation failed: %w", err)
	}
	if c.Queue == nil {
		return fmt.Errorf("command queue cannot be nil")
	}
	if c.Journal == nil {
		return fmt.Errorf("journal cannot be nil")
	}

	return nil
}
