// Package config handles configuration validation for the cmdq daemon.
//
// Validation turns raw flag values into normalized forms the daemon can use
// directly: the API address is split into host and port, the capacity string
// is parsed into bytes and every component setting is checked against the
// same bounds the components enforce themselves.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/angrypants/cmdq/internal/cmdqueue"
	"github.com/angrypants/cmdq/internal/dispatcher"
	"github.com/angrypants/cmdq/internal/logging"
	"github.com/angrypants/cmdq/internal/validate"
)

// InitializeConfig applies environment variable overrides and defaults before
// validation runs.
func InitializeConfig() {
	// Initialize DEBUG environment variable override
	if os.Getenv("DEBUG") == "true" {
		Global.LogLevel = "DEBUG"
		logging.Info("DEBUG environment variable detected, setting log level to DEBUG")
	}

	// Initialize MaxPorts: default + environment variable override
	if Global.MaxPorts == 0 {
		Global.MaxPorts = DefaultMaxPorts
	}
	if maxPortsEnv := os.Getenv("MAX_PORTS"); maxPortsEnv != "" {
		if maxPorts, err := strconv.Atoi(maxPortsEnv); err == nil {
			Global.MaxPorts = maxPorts
			logging.Info("MAX_PORTS environment variable detected, setting max ports to %d", maxPorts)
		} else {
			logging.Warn("Invalid MAX_PORTS environment variable '%s', using default: %d", maxPortsEnv, Global.MaxPorts)
		}
	}
}

// ValidateConfig validates and normalizes all daemon configuration parameters
// before any component is created.
//
// Returns error for any validation failure with descriptive context.
func ValidateConfig() error {
	// Validate MaxPorts range
	if err := validate.ValidateIntRange(Global.MaxPorts, 1, 10000, "max-ports"); err != nil {
		logging.Error("Invalid max-ports value: %d (must be between 1 and 10000)", Global.MaxPorts)
		return err
	}

	if err := logging.ValidateLogLevel(Global.LogLevel); err != nil {
		return err
	}

	// HTTP API address. The daemon never binds an OS-assigned port; clients
	// need to know where to connect.
	apiNetAddr, err := validate.ParseBindAddress(Global.APIAddr)
	if err != nil {
		logging.Error("Invalid API address '%s': %v", Global.APIAddr, err)
		return fmt.Errorf("invalid API address: %w", err)
	}
	if err := validate.ValidateField(apiNetAddr.Port, "required,min=1,max=65535"); err != nil {
		logging.Error("API port cannot be 0 (auto-assigned)")
		return fmt.Errorf("API address requires specific port (not 0): %w", err)
	}
	Global.APIAddr = apiNetAddr.Host
	Global.APIPort = apiNetAddr.Port

	// Queue capacity accepts plain byte counts and humanized sizes
	capacityBytes, err := ParseCapacity(Global.Capacity)
	if err != nil {
		logging.Error("Invalid capacity '%s': %v", Global.Capacity, err)
		return err
	}
	Global.CapacityBytes = capacityBytes

	if _, err := cmdqueue.ParseFailurePolicy(Global.FailurePolicy); err != nil {
		logging.Error("Invalid failure policy '%s' (must be collect or halt)", Global.FailurePolicy)
		return err
	}

	queueConfig := QueueConfig()
	if err := queueConfig.Validate(); err != nil {
		logging.Error("Invalid queue configuration: %v", err)
		return fmt.Errorf("invalid queue configuration: %w", err)
	}

	dispatcherConfig := DispatcherConfig()
	if err := dispatcherConfig.Validate(); err != nil {
		logging.Error("Invalid tick interval %v: %v", Global.TickInterval, err)
		return fmt.Errorf("invalid dispatcher configuration: %w", err)
	}

	if err := validate.ValidateIntRange(Global.JournalSize, 1, MaxJournalSize, "journal size"); err != nil {
		logging.Error("Invalid journal size: %d", Global.JournalSize)
		return err
	}

	if Global.logFileExplicitlySet && Global.LogFile == "" {
		return fmt.Errorf("log file path cannot be empty when --log-file is set")
	}

	return nil
}

// ParseCapacity converts a capacity flag value such as "10MiB", "64KB" or
// "4096" into bytes.
func ParseCapacity(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("capacity cannot be empty")
	}
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("invalid capacity %q: %w", s, err)
	}
	if n > cmdqueue.MaxCapacityBytes {
		return 0, fmt.Errorf("capacity %s exceeds maximum %s",
			humanize.IBytes(n), humanize.IBytes(cmdqueue.MaxCapacityBytes))
	}
	return int(n), nil
}

// QueueConfig builds the command queue configuration from Global.
func QueueConfig() *cmdqueue.Config {
	return &cmdqueue.Config{
		CapacityBytes: Global.CapacityBytes,
		FailurePolicy: cmdqueue.FailurePolicy(Global.FailurePolicy),
	}
}

// DispatcherConfig builds the drain loop configuration from Global.
func DispatcherConfig() *dispatcher.Config {
	return &dispatcher.Config{
		TickInterval: Global.TickInterval,
	}
}
