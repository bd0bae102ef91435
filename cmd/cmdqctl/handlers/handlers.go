// Package handlers provides command handler functions for cmdqctl.
//
// Each handler has the cobra RunE signature, creates an API client from the
// global configuration, calls one daemon endpoint and hands the result to the
// display package. Read-only handlers support --watch.
package handlers

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/angrypants/cmdq/cmd/cmdqctl/client"
	"github.com/angrypants/cmdq/cmd/cmdqctl/config"
	"github.com/angrypants/cmdq/cmd/cmdqctl/display"
	"github.com/angrypants/cmdq/cmd/cmdqctl/utils"
	"github.com/angrypants/cmdq/internal/logging"
)

// HandleInfo shows daemon health and version.
func HandleInfo(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()
	logging.Info("Fetching daemon health from API server: %s", config.Global.APIAddr)

	health, err := client.CreateAPIClient().GetHealth()
	if err != nil {
		return err
	}

	display.DisplayHealth(health)
	return nil
}

// HandleStats shows queue and dispatcher counters, optionally refreshing.
func HandleStats(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	apiClient := client.CreateAPIClient()
	fetchAndDisplayStats := func() error {
		logging.Info("Fetching queue stats from API server: %s", config.Global.APIAddr)

		stats, err := apiClient.GetQueueStats()
		if err != nil {
			return err
		}

		display.DisplayQueueStats(stats)
		return nil
	}

	return utils.RunWithWatch(fetchAndDisplayStats, config.Stats.Watch, utils.DefaultWatchInterval)
}

// HandleSubmit enqueues --count commands carrying args[0].
//
// A full queue is reported but still prints how many commands were accepted,
// and the command exits non-zero.
func HandleSubmit(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	// args[0] is safe - argument validation handled by Cobra command definition
	message := args[0]
	logging.Info("Submitting %d commands to API server: %s", config.Submit.Count, config.Global.APIAddr)

	result, err := client.CreateAPIClient().SubmitCommands(message, config.Submit.Count)
	if err != nil {
		if errors.Is(err, client.ErrQueueFull) && result != nil {
			display.DisplaySubmitResult(result, config.Submit.Count)
			logging.Warn("Queue full: resubmit the remaining %d commands after the next drain",
				config.Submit.Count-result.Accepted)
		}
		return err
	}

	display.DisplaySubmitResult(result, config.Submit.Count)
	logging.Success("Submitted %d commands", result.Accepted)
	return nil
}

// HandleDrain triggers a synchronous drain on the daemon.
func HandleDrain(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()
	logging.Info("Requesting drain from API server: %s", config.Global.APIAddr)

	result, err := client.CreateAPIClient().Drain()
	if err != nil {
		return err
	}

	display.DisplayDrainResult(result)
	if result.Error != "" {
		return errors.New("one or more commands failed during drain")
	}
	return nil
}

// HandleJournal shows recently executed commands, optionally refreshing.
func HandleJournal(cmd *cobra.Command, args []string) error {
	utils.SetupLogging()

	apiClient := client.CreateAPIClient()
	fetchAndDisplayJournal := func() error {
		logging.Info("Fetching journal from API server: %s", config.Global.APIAddr)

		page, err := apiClient.GetJournal(config.Journal.Limit)
		if err != nil {
			return err
		}

		display.DisplayJournal(page)
		return nil
	}

	return utils.RunWithWatch(fetchAndDisplayJournal, config.Journal.Watch, utils.DefaultWatchInterval)
}
