package cmdqueue

import (
	"fmt"

	"github.com/angrypants/cmdq/internal/config"
	"github.com/angrypants/cmdq/internal/validate"
)

// FailurePolicy decides what ExecuteCommands does after a command panics.
type FailurePolicy string

const (
	// FailurePolicyCollect recovers the panic, keeps executing the rest of the
	// batch and returns every failure aggregated.
	FailurePolicyCollect FailurePolicy = "collect"

	// FailurePolicyHalt recovers the panic and drops the rest of the batch.
	FailurePolicyHalt FailurePolicy = "halt"
)

const (
	// MinCapacityBytes is the smallest buffer that still holds one command.
	MinCapacityBytes = HeaderSize + 2*SlotSize

	// MaxCapacityBytes caps a single buffer at 1 GiB.
	MaxCapacityBytes = 1 << 30
)

// Config holds the construction parameters of a Queue. Slot and header sizes
// are derived from the Command representation and are not configurable.
type Config struct {
	CapacityBytes int           `json:"capacity_bytes"` // Byte capacity of each of the two buffers
	FailurePolicy FailurePolicy `json:"failure_policy"` // Behavior when a command panics
}

// DefaultConfig returns a 10 MiB per-buffer queue that collects command failures.
func DefaultConfig() *Config {
	return &Config{
		CapacityBytes: config.DefaultCapacityBytes,
		FailurePolicy: FailurePolicy(config.DefaultFailurePolicy),
	}
}

// Validate checks the capacity bounds and the failure policy.
func (c *Config) Validate() error {
	if err := validate.ValidateIntRange(c.CapacityBytes, MinCapacityBytes, MaxCapacityBytes, "capacity bytes"); err != nil {
		return err
	}
	if err := validate.ValidateOneOf(string(c.FailurePolicy), "failure policy",
		string(FailurePolicyCollect), string(FailurePolicyHalt)); err != nil {
		return err
	}
	return nil
}

// SlotCapacity returns the number of commands one buffer of this config holds.
func (c *Config) SlotCapacity() int {
	return SlotsFor(c.CapacityBytes)
}

// ParseFailurePolicy converts a flag or request value into a FailurePolicy.
func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch FailurePolicy(s) {
	case FailurePolicyCollect, FailurePolicyHalt:
		return FailurePolicy(s), nil
	default:
		return "", fmt.Errorf("unknown failure policy: %s", s)
	}
}
