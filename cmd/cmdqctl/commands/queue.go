package commands

import (
	"github.com/spf13/cobra"
)

// Info command (daemon health)
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show daemon health and version",
	Long:  "Show whether the daemon is healthy, whether its queue accepts commands, and its version and uptime.",
	Args:  cobra.NoArgs,
	// RunE will be set by the main package that imports this
}

// Stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show queue and dispatcher counters",
	Long: `Show the command queue's pending count, capacity and lifetime totals
together with the background dispatcher's counters.`,
	Example: `  # Show counters once
  cmdqctl stats

  # Refresh every 2 seconds
  cmdqctl stats --watch`,
	Args: cobra.NoArgs,
}

// Submit command
var submitCmd = &cobra.Command{
	Use:   "submit <message>",
	Short: "Enqueue commands that record a message when executed",
	Long: `Enqueue one or more commands into the daemon's receiving buffer. Each
command records the message in the journal when it runs.

When the buffer is full the daemon accepts as many commands as fit and
rejects the rest; cmdqctl reports how many were accepted and exits non-zero.`,
	Example: `  cmdqctl submit "rebuild index"
  cmdqctl submit "tick" --count=500`,
	Args: cobra.ExactArgs(1),
}

// Drain command
var drainCmd = &cobra.Command{
	Use:   "drain",
	Short: "Execute pending commands now",
	Long: `Swap the daemon's buffers and execute the pending generation
immediately instead of waiting for the next dispatcher tick.`,
	Args: cobra.NoArgs,
}

// Journal command
var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Show recently executed commands",
	Long: `Show the newest executed commands, oldest first, with the batch
(queue generation) that ran each one and how long it waited.`,
	Example: `  cmdqctl journal
  cmdqctl journal --limit=0 -o json
  cmdqctl journal --watch`,
	Args: cobra.NoArgs,
}

// SetupQueueFlags configures command specific flags
func SetupQueueFlags(statsWatchPtr *bool, submitCountPtr *int, journalLimitPtr *int, journalWatchPtr *bool) {
	statsCmd.Flags().BoolVarP(statsWatchPtr, "watch", "w", false,
		"Watch for live updates")

	submitCmd.Flags().IntVarP(submitCountPtr, "count", "n", 1,
		"Number of commands to enqueue")

	journalCmd.Flags().IntVarP(journalLimitPtr, "limit", "l", 20,
		"Number of newest entries to show (0 for all retained)")
	journalCmd.Flags().BoolVarP(journalWatchPtr, "watch", "w", false,
		"Watch for live updates")
}

// GetQueueCommands returns the command structures for handler assignment
func GetQueueCommands() (info, stats, submit, drain, journal *cobra.Command) {
	return infoCmd, statsCmd, submitCmd, drainCmd, journalCmd
}
