// Package commands contains Cobra CLI command definitions for cmdqd.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/angrypants/cmdq/cmd/cmdqd/config"
)

// SetupFlags configures all command line flags for the daemon
func SetupFlags(cmd *cobra.Command) {
	// API flags
	cmd.Flags().StringVar(&config.Global.APIAddr, "api", config.DefaultAPI,
		"Address and port for HTTP API server (e.g., "+config.DefaultAPI+")\n"+
			"If not specified, defaults to "+config.DefaultAPI+" and falls back to the next free port")

	// Queue flags
	cmd.Flags().StringVar(&config.Global.Capacity, "capacity", config.DefaultCapacity,
		"Byte capacity of each queue buffer (e.g., 4096, 64KiB, 10MiB)")
	cmd.Flags().StringVar(&config.Global.FailurePolicy, "failure-policy", config.DefaultFailurePolicy,
		"How a drain handles a panicking command: collect (keep running) or halt (skip the rest)")

	// Dispatcher flags
	cmd.Flags().DurationVar(&config.Global.TickInterval, "tick", config.DefaultTick,
		"Interval between background drains (e.g., 50ms, 1s)")

	// Journal flags
	cmd.Flags().IntVar(&config.Global.JournalSize, "journal-size", config.DefaultJournalSize,
		"Number of executed commands kept for the journal endpoint")

	// Operational flags
	cmd.Flags().StringVar(&config.Global.LogLevel, "log-level", config.DefaultLogLevel,
		"Log level: DEBUG, INFO, WARN, ERROR")
	cmd.Flags().StringVar(&config.Global.LogFile, "log-file", "",
		"Write logs to this file instead of stdout/stderr")
}

// CheckExplicitFlags checks if flags were explicitly set by the user
func CheckExplicitFlags(cmd *cobra.Command) {
	config.Global.SetExplicitlySet(config.APIAddrField, cmd.Flags().Changed("api"))
	config.Global.SetExplicitlySet(config.LogFileField, cmd.Flags().Changed("log-file"))
}
