// Package commands provides the command tree for cmdqctl.
//
// COMMAND STRUCTURE:
//   - info: Daemon health, version and uptime
//   - stats: Queue and dispatcher counters
//   - submit: Enqueue journal-recording commands
//   - drain: Execute the pending generation now
//   - journal: Recently executed commands
package commands

import (
	"github.com/spf13/cobra"
)

// RootCmd is the root command for cmdqctl
var RootCmd = &cobra.Command{
	Use:   "cmdqctl",
	Short: "CLI tool for the cmdq command queue daemon",
	Long: `cmdq CLI (cmdqctl) submits commands to a running cmdqd daemon and
inspects its double-buffered queue, background dispatcher and execution
journal.`,
	SilenceUsage: true,
	Example: `  # Show daemon health
  cmdqctl info

  # Watch queue counters live
  cmdqctl stats --watch

  # Enqueue 100 commands and execute them right away
  cmdqctl submit "hello" --count=100
  cmdqctl drain

  # Show the last 50 executed commands as JSON
  cmdqctl journal --limit=50 -o json

  # Connect to a daemon on another address
  cmdqctl --api=192.168.1.100:8070 stats`,
}

// SetupCommands initializes all commands and their relationships
func SetupCommands() {
	RootCmd.AddCommand(infoCmd)
	RootCmd.AddCommand(statsCmd)
	RootCmd.AddCommand(submitCmd)
	RootCmd.AddCommand(drainCmd)
	RootCmd.AddCommand(journalCmd)
}

// SetupGlobalFlags configures all global persistent flags
func SetupGlobalFlags(rootCmd *cobra.Command, apiAddrPtr *string, logLevelPtr *string,
	timeoutPtr *int, verbosePtr *bool, outputPtr *string, defaultAPIAddr string, defaultTimeout int) {
	rootCmd.PersistentFlags().StringVar(apiAddrPtr, "api", defaultAPIAddr,
		"cmdqd API server address")
	rootCmd.PersistentFlags().StringVar(logLevelPtr, "log-level", "ERROR",
		"Log level: DEBUG, INFO, WARN, ERROR")
	rootCmd.PersistentFlags().IntVar(timeoutPtr, "timeout", defaultTimeout,
		"Connection timeout in seconds")
	rootCmd.PersistentFlags().BoolVarP(verbosePtr, "verbose", "v", false,
		"Show verbose output")
	rootCmd.PersistentFlags().StringVarP(outputPtr, "output", "o", "table",
		"Output format: table, json")
}
