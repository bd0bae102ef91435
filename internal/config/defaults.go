// Package config provides common default configuration values shared across
// cmdq components (command queue, dispatcher, HTTP API, CLI). This keeps the
// daemon flags, the CLI flags and the component DefaultConfig functions in sync.
package config

import "time"

const (
	// DefaultBindAddr is the default bind address for the daemon HTTP API.
	// Loopback keeps the unauthenticated API local unless explicitly exposed.
	DefaultBindAddr = "127.0.0.1"

	// DefaultAPIPort is the default port for the daemon HTTP API.
	DefaultAPIPort = 8070

	// DefaultAPIAddr is DefaultBindAddr and DefaultAPIPort joined.
	DefaultAPIAddr = "127.0.0.1:8070"

	// DefaultLogLevel is the default log level for all components
	DefaultLogLevel = "INFO"

	// DefaultCapacityBytes is the per-buffer capacity of the command queue (10 MiB).
	DefaultCapacityBytes = 10 << 20

	// DefaultTickInterval is how often the dispatcher drains the queue.
	DefaultTickInterval = 50 * time.Millisecond

	// DefaultJournalSize bounds the number of executed commands the daemon remembers.
	DefaultJournalSize = 1000

	// DefaultFailurePolicy keeps executing a batch after a command panics.
	DefaultFailurePolicy = "collect"
)
