// Package journal keeps a bounded, in-memory record of commands the daemon has
// executed so operators can see what ran and in which batch.
//
// Entries are stored in a fixed-size ring. Once the ring is full the oldest
// entry is overwritten by the next one recorded. Safe for concurrent use;
// recording happens from inside executing commands while the HTTP API reads.
package journal

import (
	"fmt"
	"sync"
	"time"
)

// Entry describes one executed command.
type Entry struct {
	ID         string    `json:"id"`          // Submission ID shared by every command of one request
	Message    string    `json:"message"`     // Caller-supplied payload
	Sequence   int       `json:"sequence"`    // Position within its submission, starting at 1
	EnqueuedAt time.Time `json:"enqueued_at"` // When the command was accepted
	ExecutedAt time.Time `json:"executed_at"` // When the command ran
	Batch      uint64    `json:"batch"`       // Queue generation that executed it
}

// Latency returns how long the command waited between enqueue and execution.
func (e Entry) Latency() time.Duration {
	return e.ExecutedAt.Sub(e.EnqueuedAt)
}

// Journal is a bounded ring of executed entries.
type Journal struct {
	mu      sync.RWMutex
	entries []Entry
	next    int // Index the next Record writes to
	size    int // Number of valid entries
	total   uint64
}

// New creates a journal holding at most limit entries.
func New(limit int) (*Journal, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("journal limit must be positive, got %d", limit)
	}
	return &Journal{entries: make([]Entry, limit)}, nil
}

// Record appends e, evicting the oldest entry when the journal is full.
func (j *Journal) Record(e Entry) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.entries[j.next] = e
	j.next = (j.next + 1) % len(j.entries)
	if j.size < len(j.entries) {
		j.size++
	}
	j.total++
}

// Entries returns every retained entry, oldest first.
func (j *Journal) Entries() []Entry {
	return j.Recent(0)
}

// Recent returns up to limit of the newest entries, oldest first. A limit of
// zero or less returns everything retained.
func (j *Journal) Recent(limit int) []Entry {
	j.mu.RLock()
	defer j.mu.RUnlock()

	n := j.size
	if limit > 0 && limit < n {
		n = limit
	}

	out := make([]Entry, n)
	start := (j.next - n + len(j.entries)) % len(j.entries)
	for i := 0; i < n; i++ {
		out[i] = j.entries[(start+i)%len(j.entries)]
	}
	return out
}

// Len returns the number of retained entries.
func (j *Journal) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.size
}

// Limit returns the maximum number of retained entries.
func (j *Journal) Limit() int {
	return len(j.entries)
}

// Total returns how many entries were ever recorded, including evicted ones.
func (j *Journal) Total() uint64 {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.total
}
