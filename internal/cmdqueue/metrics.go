package cmdqueue

import "sync/atomic"

// counters are updated outside the buffer locks so that Metrics never has to
// wait for a long drain to finish.
type counters struct {
	enqueued  atomic.Uint64
	executed  atomic.Uint64
	overflows atomic.Uint64
	drains    atomic.Uint64
	failed    atomic.Uint64
	discarded atomic.Uint64
	lastBatch atomic.Int64
}

// Metrics is a point-in-time snapshot of queue activity.
type Metrics struct {
	Pending       int    `json:"pending"`        // Commands waiting in the receiving buffer
	SlotCapacity  int    `json:"slot_capacity"`  // Commands one buffer can hold
	CapacityBytes int    `json:"capacity_bytes"` // Configured bytes per buffer
	Enqueued      uint64 `json:"enqueued_total"`
	Executed      uint64 `json:"executed_total"`
	Overflows     uint64 `json:"overflow_total"`
	Drains        uint64 `json:"drains_total"`
	Failed        uint64 `json:"failed_total"`
	Discarded     uint64 `json:"discarded_total"`
	LastBatch     int64  `json:"last_batch_size"`
	Closed        bool   `json:"closed"`
}

// Map renders the snapshot as the flat key/value shape served by the HTTP API.
func (m Metrics) Map() map[string]int64 {
	closed := int64(0)
	if m.Closed {
		closed = 1
	}
	return map[string]int64{
		"pending":         int64(m.Pending),
		"slot_capacity":   int64(m.SlotCapacity),
		"capacity_bytes":  int64(m.CapacityBytes),
		"enqueued_total":  int64(m.Enqueued),
		"executed_total":  int64(m.Executed),
		"overflow_total":  int64(m.Overflows),
		"drains_total":    int64(m.Drains),
		"failed_total":    int64(m.Failed),
		"discarded_total": int64(m.Discarded),
		"last_batch_size": m.LastBatch,
		"closed":          closed,
	}
}
