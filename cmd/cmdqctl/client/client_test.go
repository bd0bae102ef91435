package client

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/angrypants/cmdq/internal/logging"
)

func init() {
	logging.SetOutput(nil)
}

// newTestClient starts a server answering with handler and returns a client for it.
func newTestClient(t *testing.T, handler http.HandlerFunc) *CmdqAPIClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewCmdqAPIClient(strings.TrimPrefix(server.URL, "http://"), 2)
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}

// TestGetHealth validates both healthy and degraded responses
func TestGetHealth(t *testing.T) {
	tests := []struct {
		name   string
		code   int
		status string
	}{
		{"healthy", http.StatusOK, "healthy"},
		{"degraded", http.StatusServiceUnavailable, "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/v1/health" {
					t.Errorf("path = %s, want /api/v1/health", r.URL.Path)
				}
				writeJSON(w, tt.code, map[string]any{"status": tt.status, "version": "1.2.3", "queue": "open"})
			})

			health, err := api.GetHealth()
			if err != nil {
				t.Fatalf("GetHealth() error = %v", err)
			}
			if health.Status != tt.status || health.Version != "1.2.3" {
				t.Errorf("GetHealth() = %+v", health)
			}
		})
	}
}

// TestGetQueueStats validates counter decoding and last_error
func TestGetQueueStats(t *testing.T) {
	api := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":     "success",
			"data":       map[string]any{"pending": 3, "executed_total": 1000},
			"last_error": "boom",
		})
	})

	stats, err := api.GetQueueStats()
	if err != nil {
		t.Fatalf("GetQueueStats() error = %v", err)
	}
	if stats.Counters["pending"] != 3 || stats.Counters["executed_total"] != 1000 {
		t.Errorf("Counters = %v", stats.Counters)
	}
	if stats.LastError != "boom" {
		t.Errorf("LastError = %q, want boom", stats.LastError)
	}
}

// TestSubmitCommands validates the request body and each response class
func TestSubmitCommands(t *testing.T) {
	tests := []struct {
		name         string
		code         int
		body         map[string]any
		wantErr      bool
		wantFull     bool
		wantAccepted int
	}{
		{
			name:         "accepted",
			code:         http.StatusAccepted,
			body:         map[string]any{"status": "success", "data": map[string]any{"id": "abc", "accepted": 5}},
			wantAccepted: 5,
		},
		{
			name: "queue full",
			code: http.StatusTooManyRequests,
			body: map[string]any{"status": "error", "error": "queue full", "details": "command queue full",
				"data": map[string]any{"id": "abc", "accepted": 2}},
			wantErr:      true,
			wantFull:     true,
			wantAccepted: 2,
		},
		{
			name:    "bad request",
			code:    http.StatusBadRequest,
			body:    map[string]any{"status": "error", "error": "Invalid request body", "details": "message required"},
			wantErr: true,
		},
		{
			name:    "closed",
			code:    http.StatusServiceUnavailable,
			body:    map[string]any{"status": "error", "error": "queue closed"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost || r.URL.Path != "/api/v1/queue/commands" {
					t.Errorf("request = %s %s", r.Method, r.URL.Path)
				}
				var req map[string]any
				json.NewDecoder(r.Body).Decode(&req)
				if req["message"] != "hello" || req["count"] != float64(5) {
					t.Errorf("request body = %v", req)
				}
				writeJSON(w, tt.code, tt.body)
			})

			result, err := api.SubmitCommands("hello", 5)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SubmitCommands() error = %v, wantErr %v", err, tt.wantErr)
			}
			if errors.Is(err, ErrQueueFull) != tt.wantFull {
				t.Errorf("errors.Is(err, ErrQueueFull) = %v, want %v", !tt.wantFull, tt.wantFull)
			}
			if tt.wantAccepted > 0 {
				if result == nil || result.Accepted != tt.wantAccepted {
					t.Errorf("result = %+v, want accepted %d", result, tt.wantAccepted)
				}
			}
		})
	}
}

// TestDrain validates success, command failures and closed queue responses
func TestDrain(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		api := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"status": "success", "data": map[string]any{"executed": 7}})
		})
		result, err := api.Drain()
		if err != nil || result.Executed != 7 || result.Error != "" {
			t.Errorf("Drain() = %+v, %v", result, err)
		}
	})

	t.Run("command failures", func(t *testing.T) {
		api := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusInternalServerError, map[string]any{
				"status": "error", "error": "command failures", "details": "1 error occurred",
				"data": map[string]any{"executed": 3},
			})
		})
		result, err := api.Drain()
		if err != nil {
			t.Fatalf("Drain() error = %v", err)
		}
		if result.Executed != 3 || result.Error != "1 error occurred" {
			t.Errorf("Drain() = %+v", result)
		}
	})

	t.Run("closed", func(t *testing.T) {
		api := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "error", "error": "queue closed"})
		})
		if _, err := api.Drain(); err == nil || !strings.Contains(err.Error(), "queue closed") {
			t.Errorf("Drain() error = %v, want queue closed", err)
		}
	})
}

// TestGetJournal validates the limit query parameter and entry decoding
func TestGetJournal(t *testing.T) {
	executed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name      string
		limit     int
		wantQuery string
	}{
		{"all", 0, ""},
		{"limited", 25, "limit=25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				if r.URL.RawQuery != tt.wantQuery {
					t.Errorf("query = %q, want %q", r.URL.RawQuery, tt.wantQuery)
				}
				writeJSON(w, http.StatusOK, map[string]any{
					"status": "success",
					"data": []map[string]any{{
						"id": "abc", "message": "m", "sequence": 1, "batch": 4,
						"enqueued_at": executed.Add(-time.Second), "executed_at": executed,
					}},
					"count": 1,
					"total": 99,
				})
			})

			page, err := api.GetJournal(tt.limit)
			if err != nil {
				t.Fatalf("GetJournal() error = %v", err)
			}
			if len(page.Entries) != 1 || page.Total != 99 {
				t.Fatalf("page = %+v", page)
			}
			if e := page.Entries[0]; e.Batch != 4 || e.Latency() != time.Second {
				t.Errorf("entry = %+v, latency %v", e, e.Latency())
			}
		})
	}
}

// TestConnectionRefused validates the hint when no daemon is listening
func TestConnectionRefused(t *testing.T) {
	listener, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := listener.Addr().String()
	listener.Close()

	api := NewCmdqAPIClient(addr, 1)
	api.SetRetryWait(time.Millisecond)

	_, err = api.GetHealth()
	if err == nil {
		t.Fatal("GetHealth() expected error with no server")
	}
	if !strings.Contains(err.Error(), "is cmdqd running?") {
		t.Errorf("error = %v, want connection refused hint", err)
	}
}
