package dispatcher

import (
	"time"

	"github.com/angrypants/cmdq/internal/config"
	"github.com/angrypants/cmdq/internal/validate"
)

const (
	// MinTickInterval keeps the drain loop from spinning.
	MinTickInterval = time.Millisecond

	// MaxTickInterval bounds how long accepted commands can wait for a drain.
	MaxTickInterval = 10 * time.Second
)

// Config holds the drain loop parameters.
type Config struct {
	TickInterval time.Duration `json:"tick_interval"` // How often the queue is drained
}

// DefaultConfig returns a Config that drains every 50ms.
func DefaultConfig() *Config {
	return &Config{
		TickInterval: config.DefaultTickInterval,
	}
}

// Validate checks the tick interval is within bounds.
func (c *Config) Validate() error {
	return validate.ValidateDurationRange(c.TickInterval, MinTickInterval, MaxTickInterval, "tick interval")
}
