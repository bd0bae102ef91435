// Package cmdqueue provides a double-buffered command queue that lets any
// number of producer goroutines defer work while a single consumer executes it
// in batches.
//
// DOUBLE BUFFERING:
// Two equal, pre-allocated buffers alternate between the receiving role (new
// commands are appended to it) and the draining role (its commands are being
// executed). ExecuteCommands swaps the roles, clears the new receiving buffer,
// releases the producer-side lock and only then runs the drained batch, so
// producers are never blocked while commands execute.
//
// LOCKING:
//   - queueMu guards the receiving buffer. Enqueue holds it for one slot write.
//   - executeMu guards the draining buffer for the whole drain.
//   - Whenever both are needed they are taken executeMu first, then queueMu.
//
// Commands run in insertion order within one generation. A command may call
// Enqueue; its work lands in the next generation. A command must not call
// ExecuteCommands or Close on its own queue.
package cmdqueue

import (
	"runtime/debug"
	"sync"

	"github.com/hashicorp/go-multierror"

	"github.com/angrypants/cmdq/internal/logging"
)

// Command is a zero-argument unit of deferred work. Any state it needs must be
// captured when it is created.
type Command func()

// Queue is a double-buffered command queue. The zero value is not usable; use
// New or NewWithCapacity.
type Queue struct {
	queueMu   sync.Mutex
	receiving *commandBuffer

	executeMu  sync.Mutex
	draining   *commandBuffer
	generation uint64

	// Written under both locks, so reading under either one is safe.
	closed bool

	capacityBytes int
	slotCapacity  int
	policy        FailurePolicy

	stats counters
}

// New creates a queue from cfg. A nil cfg uses DefaultConfig.
//
// Both buffers are allocated and zeroed here and are reused for the lifetime
// of the queue.
func New(cfg *Config) (*Queue, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	slots := cfg.SlotCapacity()
	receiving, draining := newBufferPool(slots)

	return &Queue{
		receiving:     receiving,
		draining:      draining,
		capacityBytes: cfg.CapacityBytes,
		slotCapacity:  slots,
		policy:        cfg.FailurePolicy,
	}, nil
}

// NewWithCapacity creates a queue with capacityBytes per buffer and the
// default failure policy.
func NewWithCapacity(capacityBytes int) (*Queue, error) {
	cfg := DefaultConfig()
	cfg.CapacityBytes = capacityBytes
	return New(cfg)
}

// Enqueue appends cmd to the receiving buffer. Safe for concurrent use.
//
// Returns *OverflowError when the receiving buffer is full, ErrNilCommand for
// a nil cmd and ErrClosed after Close. On error nothing is stored.
func (q *Queue) Enqueue(cmd Command) error {
	if cmd == nil {
		return ErrNilCommand
	}

	q.queueMu.Lock()
	if q.closed {
		q.queueMu.Unlock()
		return ErrClosed
	}
	if q.receiving.full() {
		pending := int(q.receiving.count)
		q.queueMu.Unlock()

		q.stats.overflows.Add(1)
		logging.Warn("Command queue: buffer overflow, rejecting command (%d/%d slots used)",
			pending, q.slotCapacity)
		return &OverflowError{
			Pending:       pending,
			Capacity:      q.slotCapacity,
			CapacityBytes: q.capacityBytes,
		}
	}
	q.receiving.push(cmd)
	q.queueMu.Unlock()

	q.stats.enqueued.Add(1)
	return nil
}

// ExecuteCommands swaps the buffer roles and runs every command of the
// generation that was receiving until now, in insertion order, on the calling
// goroutine. Concurrent calls are serialized.
//
// Returns the number of commands that ran. Panicking commands are recovered
// and reported according to the queue's FailurePolicy: a multierror of
// *CommandPanicError under FailurePolicyCollect, or a *HaltedError under
// FailurePolicyHalt. An empty generation returns (0, nil).
func (q *Queue) ExecuteCommands() (int, error) {
	q.executeMu.Lock()
	defer q.executeMu.Unlock()

	if q.closed {
		return 0, ErrClosed
	}

	q.queueMu.Lock()
	q.receiving, q.draining = q.draining, q.receiving
	q.receiving.reset()
	q.queueMu.Unlock()

	q.generation++
	q.stats.drains.Add(1)

	batch := q.draining
	if batch.count == 0 {
		q.stats.lastBatch.Store(0)
		return 0, nil
	}

	executed, err := q.run(batch.commands(), q.generation)
	batch.reset()

	q.stats.executed.Add(uint64(executed))
	q.stats.lastBatch.Store(int64(executed))
	logging.Debug("Command queue: executed %d commands in generation %d", executed, q.generation)

	return executed, err
}

// run executes cmds in order and applies the failure policy. Caller holds executeMu.
func (q *Queue) run(cmds []Command, generation uint64) (int, error) {
	var result *multierror.Error

	for slot, cmd := range cmds {
		perr := invoke(cmd, generation, slot)
		if perr == nil {
			continue
		}

		q.stats.failed.Add(1)
		logging.Error("Command queue: %v", perr)
		logging.Debug("Command queue: panic stack for slot %d:\n%s", slot, perr.Stack)

		if q.policy == FailurePolicyHalt {
			skipped := len(cmds) - slot - 1
			q.stats.discarded.Add(uint64(skipped))
			return slot + 1, &HaltedError{Cause: perr, Skipped: skipped}
		}
		result = multierror.Append(result, perr)
	}

	return len(cmds), result.ErrorOrNil()
}

// invoke runs one command, converting a panic into a *CommandPanicError.
func invoke(cmd Command, generation uint64, slot int) (perr *CommandPanicError) {
	defer func() {
		if r := recover(); r != nil {
			perr = &CommandPanicError{
				Generation: generation,
				Slot:       slot,
				Value:      r,
				Stack:      debug.Stack(),
			}
		}
	}()
	cmd()
	return nil
}

// Close waits for any in-flight Enqueue or ExecuteCommands, then releases both
// buffers. Commands still pending are discarded without running. Calls after
// the first return ErrClosed.
func (q *Queue) Close() error {
	q.executeMu.Lock()
	defer q.executeMu.Unlock()
	q.queueMu.Lock()
	defer q.queueMu.Unlock()

	if q.closed {
		return ErrClosed
	}

	if pending := q.receiving.count; pending > 0 {
		q.stats.discarded.Add(uint64(pending))
		logging.Warn("Command queue: closing with %d pending commands discarded", pending)
	}

	q.receiving.reset()
	q.draining.reset()
	q.receiving = nil
	q.draining = nil
	q.closed = true
	return nil
}

// Pending returns the number of commands waiting in the receiving buffer.
func (q *Queue) Pending() int {
	q.queueMu.Lock()
	defer q.queueMu.Unlock()
	if q.closed {
		return 0
	}
	return int(q.receiving.count)
}

// SlotCapacity returns how many commands one buffer holds.
func (q *Queue) SlotCapacity() int {
	return q.slotCapacity
}

// CapacityBytes returns the configured byte capacity of one buffer.
func (q *Queue) CapacityBytes() int {
	return q.capacityBytes
}

// Metrics returns a snapshot of queue activity. It only takes the queue-side
// lock, so it does not wait for a running drain.
func (q *Queue) Metrics() Metrics {
	q.queueMu.Lock()
	closed := q.closed
	pending := 0
	if !closed {
		pending = int(q.receiving.count)
	}
	q.queueMu.Unlock()

	return Metrics{
		Pending:       pending,
		SlotCapacity:  q.slotCapacity,
		CapacityBytes: q.capacityBytes,
		Enqueued:      q.stats.enqueued.Load(),
		Executed:      q.stats.executed.Load(),
		Overflows:     q.stats.overflows.Load(),
		Drains:        q.stats.drains.Load(),
		Failed:        q.stats.failed.Load(),
		Discarded:     q.stats.discarded.Load(),
		LastBatch:     q.stats.lastBatch.Load(),
		Closed:        closed,
	}
}

// Generation returns the number of the most recently drained generation. A
// command reading it while running sees its own generation.
func (q *Queue) Generation() uint64 {
	return q.stats.drains.Load()
}

// Closed reports whether Close has been called.
func (q *Queue) Closed() bool {
	q.queueMu.Lock()
	defer q.queueMu.Unlock()
	return q.closed
}
