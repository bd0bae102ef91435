// Package dispatcher drives the consumer side of a command queue: it drains
// the queue on a fixed tick from a single background goroutine.
//
// LIFECYCLE:
// Start launches the drain loop. Stop signals the loop, waits for it to exit
// and then performs one final drain so that commands accepted before Stop
// still run. A Dispatcher is single-use; it cannot be restarted after Stop.
//
// ERRORS:
// Command failures reported by the queue are logged and recorded as the last
// error. They never stop the loop.
package dispatcher

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/angrypants/cmdq/internal/logging"
)

var (
	// ErrAlreadyStarted is returned by Start on a running or stopped Dispatcher.
	ErrAlreadyStarted = errors.New("dispatcher already started")

	// ErrNotRunning is returned by Stop when Start was never called or Stop
	// already ran.
	ErrNotRunning = errors.New("dispatcher not running")
)

// Executor is the consumer side of a command queue.
type Executor interface {
	ExecuteCommands() (int, error) // Run every pending command, return how many ran
}

// Dispatcher periodically drains an Executor.
type Dispatcher struct {
	executor     Executor
	tickInterval time.Duration

	// Lifecycle management
	mu      sync.Mutex
	started bool
	stopped bool
	stopCh  chan struct{}
	wg      sync.WaitGroup

	// Metrics for monitoring and observability
	ticks    atomic.Uint64
	batches  atomic.Uint64
	executed atomic.Uint64
	errors   atomic.Uint64
	lastErr  atomic.Value // string
}

// New creates a Dispatcher for executor. A nil cfg uses DefaultConfig.
func New(executor Executor, cfg *Config) (*Dispatcher, error) {
	if executor == nil {
		return nil, errors.New("dispatcher requires an executor")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Dispatcher{
		executor:     executor,
		tickInterval: cfg.TickInterval,
		stopCh:       make(chan struct{}),
	}, nil
}

// Start launches the background drain loop.
func (d *Dispatcher) Start() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.started {
		return ErrAlreadyStarted
	}
	d.started = true

	d.wg.Add(1)
	go d.run()
	logging.Info("Dispatcher: Started drain loop (tick: %v)", d.tickInterval)
	return nil
}

// Stop ends the drain loop and performs a final drain. It blocks until the
// loop has exited and the final drain has completed.
func (d *Dispatcher) Stop() error {
	d.mu.Lock()
	if !d.started || d.stopped {
		d.mu.Unlock()
		return ErrNotRunning
	}
	d.stopped = true
	d.mu.Unlock()

	close(d.stopCh)
	d.wg.Wait()

	// Drain anything accepted before Stop was called
	n, err := d.Flush()
	if err != nil {
		logging.Warn("Dispatcher: Final drain reported failures: %v", err)
	}
	logging.Info("Dispatcher: Stopped drain loop (final drain executed %d commands)", n)
	return nil
}

// Flush drains the executor once on the calling goroutine.
func (d *Dispatcher) Flush() (int, error) {
	n, err := d.executor.ExecuteCommands()
	d.record(n, err)
	return n, err
}

// run drains the executor once per tick until Stop is called.
func (d *Dispatcher) run() {
	defer d.wg.Done()
	ticker := time.NewTicker(d.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-d.stopCh:
			return

		case <-ticker.C:
			d.ticks.Add(1)
			n, err := d.Flush()
			if err != nil {
				logging.Error("Dispatcher: Drain failed after %d commands: %v", n, err)
				continue
			}
			if n > 0 {
				logging.Debug("Dispatcher: Drained %d commands", n)
			}
		}
	}
}

func (d *Dispatcher) record(n int, err error) {
	if n > 0 {
		d.batches.Add(1)
		d.executed.Add(uint64(n))
	}
	if err != nil {
		d.errors.Add(1)
		d.lastErr.Store(err.Error())
	}
}

// Running reports whether the drain loop is active.
func (d *Dispatcher) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.started && !d.stopped
}

// LastError returns the message of the most recent drain failure, or "".
func (d *Dispatcher) LastError() string {
	if msg, ok := d.lastErr.Load().(string); ok {
		return msg
	}
	return ""
}

// GetMetrics returns current dispatcher metrics for monitoring.
func (d *Dispatcher) GetMetrics() map[string]int64 {
	running := int64(0)
	if d.Running() {
		running = 1
	}
	return map[string]int64{
		"dispatcher_ticks":    int64(d.ticks.Load()),
		"dispatcher_batches":  int64(d.batches.Load()),
		"dispatcher_executed": int64(d.executed.Load()),
		"dispatcher_errors":   int64(d.errors.Load()),
		"dispatcher_running":  running,
		"dispatcher_tick_ms":  d.tickInterval.Milliseconds(),
	}
}
