package cmdqueue

import (
	"errors"
	"fmt"
)

var (
	// ErrClosed is returned by every operation after Close.
	ErrClosed = errors.New("command queue closed")

	// ErrNilCommand is returned when Enqueue is given a nil Command.
	ErrNilCommand = errors.New("nil command")
)

// OverflowError is returned by Enqueue when the receiving buffer has no free
// slot. The command was not stored; the caller decides whether to retry after
// the next drain, drop the command or apply backpressure upstream.
type OverflowError struct {
	Pending       int // Commands already waiting in the receiving buffer
	Capacity      int // Slot capacity of one buffer
	CapacityBytes int // Configured byte capacity of one buffer
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("command buffer overflow: %d/%d slots used (%d bytes)",
		e.Pending, e.Capacity, e.CapacityBytes)
}

// IsOverflow reports whether err is or wraps an *OverflowError.
func IsOverflow(err error) bool {
	var overflow *OverflowError
	return errors.As(err, &overflow)
}

// CommandPanicError records a command that panicked while a batch was being
// executed. Slot is the command's position within its generation.
type CommandPanicError struct {
	Generation uint64
	Slot       int
	Value      any
	Stack      []byte
}

func (e *CommandPanicError) Error() string {
	return fmt.Sprintf("command %d of generation %d panicked: %v", e.Slot, e.Generation, e.Value)
}

// Unwrap exposes the panic value when a command panicked with an error.
func (e *CommandPanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// HaltedError is returned by ExecuteCommands under FailurePolicyHalt when a
// command panicked and the remainder of its batch was dropped.
type HaltedError struct {
	Cause   *CommandPanicError
	Skipped int
}

func (e *HaltedError) Error() string {
	return fmt.Sprintf("batch halted, %d commands skipped: %v", e.Skipped, e.Cause)
}

func (e *HaltedError) Unwrap() error {
	return e.Cause
}
