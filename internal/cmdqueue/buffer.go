package cmdqueue

import "unsafe"

const (
	// HeaderSize is the width of the per-buffer command counter.
	HeaderSize = 4

	// SlotSize is the size of one stored command. Every Command occupies the
	// same slot regardless of the state its closure captures.
	SlotSize = int(unsafe.Sizeof(Command(nil)))
)

// SlotsFor returns how many command slots fit in a buffer of capacityBytes.
// A slot may not end on or past the buffer edge, so the last usable byte is
// kept as margin: HeaderSize + n*SlotSize < capacityBytes.
func SlotsFor(capacityBytes int) int {
	usable := capacityBytes - HeaderSize - 1
	if usable < SlotSize {
		return 0
	}
	return usable / SlotSize
}

// commandBuffer is one half of the buffer pool: a counter header followed by
// a fixed number of command slots.
type commandBuffer struct {
	count uint32
	slots []Command
}

// full reports whether another append would exceed the slot capacity.
func (b *commandBuffer) full() bool {
	return int(b.count) >= len(b.slots)
}

// push stores cmd in the next free slot. Callers check full first.
func (b *commandBuffer) push(cmd Command) {
	b.slots[b.count] = cmd
	b.count++
}

// commands returns the populated slots in insertion order.
func (b *commandBuffer) commands() []Command {
	return b.slots[:b.count]
}

// reset zero-fills the populated slots and clears the counter. Slots past the
// counter are already zero.
func (b *commandBuffer) reset() {
	clear(b.slots[:b.count])
	b.count = 0
}

// newBufferPool allocates both buffers from a single backing array split into
// two equal halves. The first buffer starts out receiving, the second draining.
func newBufferPool(slotsPerBuffer int) (receiving, draining *commandBuffer) {
	backing := make([]Command, 2*slotsPerBuffer)
	receiving = &commandBuffer{slots: backing[:slotsPerBuffer:slotsPerBuffer]}
	draining = &commandBuffer{slots: backing[slotsPerBuffer:]}
	return receiving, draining
}
