// Package display provides output formatting for cmdqctl.
//
// Every function writes either an aligned table (text/tabwriter) or indented
// JSON depending on --output, so scripts can consume the same commands
// operators read.
package display

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/angrypants/cmdq/cmd/cmdqctl/client"
	"github.com/angrypants/cmdq/cmd/cmdqctl/config"
	"github.com/angrypants/cmdq/cmd/cmdqctl/utils"
	"github.com/angrypants/cmdq/internal/logging"
	internalutils "github.com/angrypants/cmdq/internal/utils"
)

// out is where display output goes. Tests replace it.
var out io.Writer = os.Stdout

// statRows orders the counters shown in table mode. Keys not listed here are
// appended alphabetically in verbose mode.
var statRows = []struct {
	key   string
	label string
	bytes bool
}{
	{"pending", "Pending", false},
	{"slot_capacity", "Slot capacity", false},
	{"capacity_bytes", "Buffer size", true},
	{"enqueued_total", "Enqueued", false},
	{"executed_total", "Executed", false},
	{"failed_total", "Failed", false},
	{"overflow_total", "Overflows", false},
	{"discarded_total", "Discarded", false},
	{"drains_total", "Drains", false},
	{"last_batch_size", "Last batch", false},
	{"dispatcher_batches", "Dispatcher batches", false},
	{"dispatcher_errors", "Dispatcher errors", false},
	{"dispatcher_tick_ms", "Tick (ms)", false},
}

func writeJSON(v any) {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		logging.Error("Failed to encode JSON: %v", err)
		fmt.Fprintln(out, "Error encoding JSON output")
	}
}

// DisplayHealth shows daemon health.
func DisplayHealth(health *client.Health) {
	if config.Global.Output == "json" {
		writeJSON(health)
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "Status:\t%s\n", health.Status)
	fmt.Fprintf(w, "Queue:\t%s\n", health.Queue)
	fmt.Fprintf(w, "Version:\t%s\n", health.Version)
	fmt.Fprintf(w, "Uptime:\t%s\n", health.Uptime)
	if config.Global.Verbose {
		fmt.Fprintf(w, "Checked:\t%s\n", health.Timestamp.Format("2006-01-02 15:04:05 MST"))
	}
}

// DisplayQueueStats shows queue and dispatcher counters.
func DisplayQueueStats(stats *client.QueueStats) {
	if config.Global.Output == "json" {
		writeJSON(stats)
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer w.Flush()

	state := "open"
	if stats.Counters["closed"] == 1 {
		state = "closed"
	}
	dispatcher := "stopped"
	if stats.Counters["dispatcher_running"] == 1 {
		dispatcher = "running"
	} else if _, ok := stats.Counters["dispatcher_running"]; !ok {
		dispatcher = "none"
	}

	fmt.Fprintf(w, "Queue:\t%s\n", state)
	fmt.Fprintf(w, "Dispatcher:\t%s\n", dispatcher)

	shown := map[string]bool{"closed": true, "dispatcher_running": true}
	for _, row := range statRows {
		value, ok := stats.Counters[row.key]
		if !ok {
			continue
		}
		shown[row.key] = true
		if row.bytes {
			fmt.Fprintf(w, "%s:\t%s\n", row.label, utils.FormatBytes(value))
		} else {
			fmt.Fprintf(w, "%s:\t%s\n", row.label, utils.FormatCount(value))
		}
	}

	if config.Global.Verbose {
		var extra []string
		for key := range stats.Counters {
			if !shown[key] {
				extra = append(extra, key)
			}
		}
		sort.Strings(extra)
		for _, key := range extra {
			fmt.Fprintf(w, "%s:\t%s\n", key, utils.FormatCount(stats.Counters[key]))
		}
	}

	if stats.LastError != "" {
		fmt.Fprintf(w, "Last error:\t%s\n", stats.LastError)
	}
}

// DisplaySubmitResult shows the outcome of a submission.
func DisplaySubmitResult(result *client.SubmitResult, requested int) {
	if config.Global.Output == "json" {
		writeJSON(result)
		return
	}

	fmt.Fprintf(out, "Submission %s: %s of %s commands accepted\n",
		internalutils.TruncateIDSafe(result.ID),
		utils.FormatCount(int64(result.Accepted)), utils.FormatCount(int64(requested)))
}

// DisplayDrainResult shows the outcome of a manual drain.
func DisplayDrainResult(result *client.DrainResult) {
	if config.Global.Output == "json" {
		writeJSON(result)
		return
	}

	fmt.Fprintf(out, "Executed %s commands\n", utils.FormatCount(int64(result.Executed)))
	if result.Error != "" {
		fmt.Fprintf(out, "Failures: %s\n", result.Error)
	}
}

// DisplayJournal shows journal entries oldest first.
func DisplayJournal(page *client.JournalPage) {
	if config.Global.Output == "json" {
		writeJSON(page)
		return
	}

	if len(page.Entries) == 0 {
		fmt.Fprintln(out, "No executed commands")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	if config.Global.Verbose {
		fmt.Fprintln(w, "ID\tSEQ\tBATCH\tMESSAGE\tLATENCY\tENQUEUED\tEXECUTED")
	} else {
		fmt.Fprintln(w, "ID\tSEQ\tBATCH\tMESSAGE\tLATENCY")
	}

	for _, e := range page.Entries {
		id := internalutils.TruncateIDSafe(e.ID)
		if config.Global.Verbose {
			id = e.ID
			fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\t%s\t%s\n",
				id, e.Sequence, e.Batch, e.Message, utils.FormatLatency(e.Latency()),
				e.EnqueuedAt.Format("15:04:05.000"), e.ExecutedAt.Format("15:04:05.000"))
		} else {
			fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\n",
				id, e.Sequence, e.Batch, e.Message, utils.FormatLatency(e.Latency()))
		}
	}
	w.Flush()

	fmt.Fprintf(out, "\nShowing %s of %s executed commands\n",
		utils.FormatCount(int64(len(page.Entries))), utils.FormatCount(int64(page.Total)))
}
