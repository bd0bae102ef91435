package display

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/angrypants/cmdq/cmd/cmdqctl/client"
	"github.com/angrypants/cmdq/cmd/cmdqctl/config"
)

// capture redirects display output for the duration of fn.
func capture(t *testing.T, output string, verbose bool, fn func()) string {
	t.Helper()
	var buf bytes.Buffer

	savedOut := out
	savedOutput, savedVerbose := config.Global.Output, config.Global.Verbose
	t.Cleanup(func() {
		out = savedOut
		config.Global.Output, config.Global.Verbose = savedOutput, savedVerbose
	})

	out = &buf
	config.Global.Output = output
	config.Global.Verbose = verbose
	fn()
	return buf.String()
}

func testPage() *client.JournalPage {
	enqueued := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	return &client.JournalPage{
		Entries: []client.JournalEntry{
			{ID: "a1b2c3d4e5f60718293a4b5c6d7e8f90", Message: "first", Sequence: 1, Batch: 7,
				EnqueuedAt: enqueued, ExecutedAt: enqueued.Add(12 * time.Millisecond)},
			{ID: "a1b2c3d4e5f60718293a4b5c6d7e8f90", Message: "first", Sequence: 2, Batch: 7,
				EnqueuedAt: enqueued, ExecutedAt: enqueued.Add(13 * time.Millisecond)},
		},
		Total: 1500,
	}
}

// TestDisplayJournalTable validates columns, truncated IDs and the summary line
func TestDisplayJournalTable(t *testing.T) {
	got := capture(t, "table", false, func() { DisplayJournal(testPage()) })

	for _, want := range []string{"ID", "BATCH", "LATENCY", "a1b2c3d4e5f6 ", "12ms", "Showing 2 of 1,500 executed commands"} {
		if !strings.Contains(got, want) {
			t.Errorf("table output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "a1b2c3d4e5f60718293a4b5c6d7e8f90") {
		t.Errorf("table output should truncate IDs when not verbose:\n%s", got)
	}
}

// TestDisplayJournalVerbose validates full IDs and timestamps
func TestDisplayJournalVerbose(t *testing.T) {
	got := capture(t, "table", true, func() { DisplayJournal(testPage()) })

	for _, want := range []string{"a1b2c3d4e5f60718293a4b5c6d7e8f90", "ENQUEUED", "03:04:05.000", "03:04:05.012"} {
		if !strings.Contains(got, want) {
			t.Errorf("verbose output missing %q:\n%s", want, got)
		}
	}
}

// TestDisplayJournalEmpty validates the empty message
func TestDisplayJournalEmpty(t *testing.T) {
	got := capture(t, "table", false, func() { DisplayJournal(&client.JournalPage{}) })
	if strings.TrimSpace(got) != "No executed commands" {
		t.Errorf("empty output = %q", got)
	}
}

// TestDisplayJournalJSON validates that JSON output round-trips
func TestDisplayJournalJSON(t *testing.T) {
	got := capture(t, "json", false, func() { DisplayJournal(testPage()) })

	var page client.JournalPage
	if err := json.Unmarshal([]byte(got), &page); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, got)
	}
	if len(page.Entries) != 2 || page.Total != 1500 {
		t.Errorf("decoded page = %d entries, total %d", len(page.Entries), page.Total)
	}
}

// TestDisplayQueueStats validates labels, humanized values and states
func TestDisplayQueueStats(t *testing.T) {
	stats := &client.QueueStats{
		Counters: map[string]int64{
			"pending":            3,
			"capacity_bytes":     10 << 20,
			"executed_total":     1234567,
			"closed":             0,
			"dispatcher_running": 1,
			"dispatcher_ticks":   99,
		},
		LastError: "1 error occurred",
	}

	got := capture(t, "table", false, func() { DisplayQueueStats(stats) })
	for _, want := range []string{"Queue:", "open", "running", "10 MiB", "1,234,567", "Last error:"} {
		if !strings.Contains(got, want) {
			t.Errorf("stats output missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "dispatcher_ticks") {
		t.Errorf("unlisted counters should only appear in verbose mode:\n%s", got)
	}

	verbose := capture(t, "table", true, func() { DisplayQueueStats(stats) })
	if !strings.Contains(verbose, "dispatcher_ticks") {
		t.Errorf("verbose stats output missing dispatcher_ticks:\n%s", verbose)
	}
}

// TestDisplayQueueStatsWithoutDispatcher validates the "none" dispatcher state
func TestDisplayQueueStatsWithoutDispatcher(t *testing.T) {
	stats := &client.QueueStats{Counters: map[string]int64{"closed": 1}}
	got := capture(t, "table", false, func() { DisplayQueueStats(stats) })

	if !strings.Contains(got, "closed") || !strings.Contains(got, "none") {
		t.Errorf("stats output = %q, want closed queue and no dispatcher", got)
	}
}

// TestDisplaySubmitAndDrain validates the one-line summaries
func TestDisplaySubmitAndDrain(t *testing.T) {
	got := capture(t, "table", false, func() {
		DisplaySubmitResult(&client.SubmitResult{ID: "a1b2c3d4e5f60718293a4b5c6d7e8f90", Accepted: 4}, 10)
	})
	if !strings.Contains(got, "Submission a1b2c3d4e5f6: 4 of 10 commands accepted") {
		t.Errorf("submit output = %q", got)
	}

	got = capture(t, "table", false, func() {
		DisplayDrainResult(&client.DrainResult{Executed: 2500, Error: "1 error occurred"})
	})
	if !strings.Contains(got, "Executed 2,500 commands") || !strings.Contains(got, "Failures: 1 error occurred") {
		t.Errorf("drain output = %q", got)
	}
}
