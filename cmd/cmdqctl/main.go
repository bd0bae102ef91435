// Package main provides the entry point for the cmdq CLI tool (cmdqctl).
//
// INITIALIZATION FLOW:
// 1. Command structure setup
// 2. Global and command-specific flags
// 3. Handler and flag validation assignment
// 4. Command execution with proper exit codes
package main

import (
	"os"

	"github.com/angrypants/cmdq/cmd/cmdqctl/commands"
	"github.com/angrypants/cmdq/cmd/cmdqctl/config"
	"github.com/angrypants/cmdq/cmd/cmdqctl/handlers"
)

func init() {
	rootCmd := commands.RootCmd

	rootCmd.Version = config.Version
	rootCmd.PersistentPreRunE = config.ValidateGlobalFlags

	commands.SetupCommands()

	commands.SetupGlobalFlags(rootCmd, &config.Global.APIAddr, &config.Global.LogLevel,
		&config.Global.Timeout, &config.Global.Verbose, &config.Global.Output,
		config.DefaultAPIAddr, config.DefaultTimeout)
	commands.SetupQueueFlags(&config.Stats.Watch, &config.Submit.Count,
		&config.Journal.Limit, &config.Journal.Watch)

	setupCommandHandlers()
}

// setupCommandHandlers assigns RunE functions to commands
func setupCommandHandlers() {
	infoCmd, statsCmd, submitCmd, drainCmd, journalCmd := commands.GetQueueCommands()

	infoCmd.RunE = handlers.HandleInfo
	statsCmd.RunE = handlers.HandleStats
	submitCmd.RunE = handlers.HandleSubmit
	drainCmd.RunE = handlers.HandleDrain
	journalCmd.RunE = handlers.HandleJournal

	// PreRunE runs after the root PersistentPreRunE
	submitCmd.PreRunE = config.ValidateSubmitFlags
	journalCmd.PreRunE = config.ValidateJournalFlags
}

func main() {
	if err := commands.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
