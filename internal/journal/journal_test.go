package journal

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func entry(i int) Entry {
	return Entry{ID: fmt.Sprintf("id-%d", i), Message: fmt.Sprintf("msg-%d", i), Sequence: 1}
}

func ids(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

// TestNew validates limit handling
func TestNew(t *testing.T) {
	tests := []struct {
		limit   int
		wantErr bool
	}{
		{1, false},
		{1000, false},
		{0, true},
		{-5, true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("limit=%d", tt.limit), func(t *testing.T) {
			j, err := New(tt.limit)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New(%d) error = %v, wantErr %v", tt.limit, err, tt.wantErr)
			}
			if err == nil && j.Limit() != tt.limit {
				t.Errorf("Limit() = %d, want %d", j.Limit(), tt.limit)
			}
		})
	}
}

// TestRecordAndEvict checks ordering and eviction of the oldest entries
func TestRecordAndEvict(t *testing.T) {
	j, err := New(3)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if got := j.Entries(); len(got) != 0 {
		t.Errorf("empty journal Entries() = %v", got)
	}

	for i := 1; i <= 2; i++ {
		j.Record(entry(i))
	}
	if got := fmt.Sprint(ids(j.Entries())); got != "[id-1 id-2]" {
		t.Errorf("Entries() = %s, want [id-1 id-2]", got)
	}

	for i := 3; i <= 5; i++ {
		j.Record(entry(i))
	}
	if got := fmt.Sprint(ids(j.Entries())); got != "[id-3 id-4 id-5]" {
		t.Errorf("Entries() after eviction = %s, want [id-3 id-4 id-5]", got)
	}
	if j.Len() != 3 {
		t.Errorf("Len() = %d, want 3", j.Len())
	}
	if j.Total() != 5 {
		t.Errorf("Total() = %d, want 5", j.Total())
	}
}

// TestRecent checks limit handling on reads
func TestRecent(t *testing.T) {
	j, _ := New(10)
	for i := 1; i <= 6; i++ {
		j.Record(entry(i))
	}

	tests := []struct {
		limit int
		want  string
	}{
		{0, "[id-1 id-2 id-3 id-4 id-5 id-6]"},
		{-1, "[id-1 id-2 id-3 id-4 id-5 id-6]"},
		{2, "[id-5 id-6]"},
		{6, "[id-1 id-2 id-3 id-4 id-5 id-6]"},
		{50, "[id-1 id-2 id-3 id-4 id-5 id-6]"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("limit=%d", tt.limit), func(t *testing.T) {
			if got := fmt.Sprint(ids(j.Recent(tt.limit))); got != tt.want {
				t.Errorf("Recent(%d) = %s, want %s", tt.limit, got, tt.want)
			}
		})
	}
}

// TestEntriesIsCopy checks callers cannot mutate retained entries
func TestEntriesIsCopy(t *testing.T) {
	j, _ := New(2)
	j.Record(entry(1))

	got := j.Entries()
	got[0].Message = "changed"

	if j.Entries()[0].Message != "msg-1" {
		t.Error("mutating Entries() result changed the journal")
	}
}

// TestLatency checks the enqueue to execution delay
func TestLatency(t *testing.T) {
	now := time.Now()
	e := Entry{EnqueuedAt: now, ExecutedAt: now.Add(75 * time.Millisecond)}
	if e.Latency() != 75*time.Millisecond {
		t.Errorf("Latency() = %v, want 75ms", e.Latency())
	}
}

// TestConcurrentRecord checks concurrent writers never lose the count
func TestConcurrentRecord(t *testing.T) {
	j, _ := New(64)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				j.Record(entry(i))
				j.Recent(5)
			}
		}()
	}
	wg.Wait()

	if j.Total() != 800 {
		t.Errorf("Total() = %d, want 800", j.Total())
	}
	if j.Len() != 64 {
		t.Errorf("Len() = %d, want 64", j.Len())
	}
}
