// Package commands provides the CLI command structure for the cmdq daemon.
//
// The daemon is a single root command. Flags configure the command queue,
// the background dispatcher, the journal and the HTTP API; the PreRunE
// pipeline applies environment overrides and validates everything before
// any component is created.
package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/angrypants/cmdq/cmd/cmdqd/config"
	"github.com/angrypants/cmdq/cmd/cmdqd/daemon"
	"github.com/angrypants/cmdq/cmd/cmdqd/utils"
	"github.com/angrypants/cmdq/internal/logging"
	"github.com/angrypants/cmdq/internal/version"
)

// Global variable to track log file handle for cleanup
var logFileHandle *os.File

// CleanupLogFile closes the log file handle if it exists
func CleanupLogFile() {
	if logFileHandle != nil {
		if err := logFileHandle.Close(); err != nil {
			// Logging may still point at the file being closed
			fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
		}
		logFileHandle = nil
	}
}

// RootCmd is the root command for the cmdq daemon
var RootCmd = &cobra.Command{
	Use:   "cmdqd",
	Short: "Double-buffered command queue daemon",
	Long: `cmdq daemon (cmdqd) runs a double-buffered command queue.

Producers submit commands over HTTP into the receiving buffer while a
background dispatcher periodically swaps the buffers and executes the
previous generation in submission order. Executed commands are recorded
in a bounded journal.`,
	Version:      version.CmdqdVersion,
	SilenceUsage: true, // Don't show usage on errors
	Example: `  # Start with defaults (API on ` + config.DefaultAPI + `, 10MiB buffers, ` + config.DefaultTick.String() + ` drains)
  cmdqd

  # Small buffers drained every second, stop a drain on the first panic
  cmdqd --capacity=4KiB --tick=1s --failure-policy=halt

  # Explicit API address and log file
  cmdqd --api=0.0.0.0:9090 --log-file=/var/log/cmdqd.log`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		utils.DisplayLogo(version.CmdqdVersion)
	},
	PreRunE: func(cmd *cobra.Command, args []string) error {
		CheckExplicitFlags(cmd)

		if config.Global.IsExplicitlySet(config.LogFileField) && config.Global.LogFile != "" {
			logDir := filepath.Dir(config.Global.LogFile)
			if err := os.MkdirAll(logDir, 0755); err != nil {
				return fmt.Errorf("failed to create log directory %s: %w", logDir, err)
			}

			var err error
			logFileHandle, err = os.OpenFile(config.Global.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err != nil {
				return fmt.Errorf("failed to open log file %s: %w", config.Global.LogFile, err)
			}

			logging.SetOutput(logFileHandle)
		}

		// Apply the level before config initialization logs anything
		logging.SetLevel(config.Global.LogLevel)
		config.InitializeConfig()
		// DEBUG may have been set through the environment
		logging.SetLevel(config.Global.LogLevel)

		if err := config.ValidateConfig(); err != nil {
			CleanupLogFile()
			return err
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		defer CleanupLogFile()
		return daemon.Run()
	},
}

// SetupCommands initializes all commands and their relationships
func SetupCommands() {
	SetupFlags(RootCmd)
}
