// Package utils provides watch mode for continuous CLI monitoring.
//
// In watch mode a display function is re-run on a fixed interval with the
// screen cleared in between, until SIGINT or SIGTERM arrives. Errors during a
// refresh are logged and the loop keeps going, so a daemon restart does not end
// the watch.
package utils

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/angrypants/cmdq/internal/logging"
)

// DefaultWatchInterval is the refresh interval used by --watch.
const DefaultWatchInterval = 2 * time.Second

// RunWithWatch executes fn once, or every interval in watch mode until
// interrupted. A non-positive interval uses DefaultWatchInterval.
func RunWithWatch(fn func() error, enableWatch bool, interval time.Duration) error {
	if !enableWatch {
		return fn()
	}
	if interval <= 0 {
		interval = DefaultWatchInterval
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	fmt.Print("\033[2J\033[H") // Clear screen and move cursor to top
	if err := fn(); err != nil {
		return err
	}

	for {
		select {
		case <-ticker.C:
			fmt.Print("\033[2J\033[H")
			if err := fn(); err != nil {
				logging.Error("Error updating display: %v", err)
				continue
			}
		case <-sigChan:
			fmt.Println("\nWatch mode interrupted")
			return nil
		}
	}
}
