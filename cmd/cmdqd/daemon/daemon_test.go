package daemon

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/angrypants/cmdq/cmd/cmdqd/config"
	"github.com/angrypants/cmdq/internal/logging"
)

func init() {
	logging.SetOutput(nil)
}

// setTestConfig points the daemon at an OS-assigned loopback port with small
// buffers and a fast tick.
func setTestConfig(t *testing.T) {
	t.Helper()
	saved := config.Global
	t.Cleanup(func() { config.Global = saved })

	config.Global = config.Config{
		APIAddr:       "127.0.0.1",
		APIPort:       0,
		CapacityBytes: 4096,
		TickInterval:  10 * time.Millisecond,
		FailurePolicy: "collect",
		JournalSize:   100,
		LogLevel:      "ERROR",
		MaxPorts:      10,
	}
	config.Global.SetExplicitlySet(config.APIAddrField, true)
}

// TestStartAndShutdown validates that submitted commands are executed by the
// dispatcher and recorded in the journal before shutdown completes
func TestStartAndShutdown(t *testing.T) {
	setTestConfig(t)

	svc, err := startServices()
	if err != nil {
		t.Fatalf("startServices() error = %v", err)
	}

	body, _ := json.Marshal(map[string]any{"message": "hello", "count": 3})
	resp, err := http.Post("http://"+svc.apiServer.Addr()+"/api/v1/queue/commands",
		"application/json", bytes.NewReader(body))
	if err != nil {
		svc.shutdown()
		t.Fatalf("submit request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusAccepted {
		svc.shutdown()
		t.Fatalf("submit status = %d, want %d", resp.StatusCode, http.StatusAccepted)
	}

	svc.shutdown()

	m := svc.queue.Metrics()
	if m.Enqueued != 3 {
		t.Errorf("Enqueued = %d, want 3", m.Enqueued)
	}
	if m.Executed != 3 {
		t.Errorf("Executed = %d, want 3 (final drain should run pending commands)", m.Executed)
	}
	if !m.Closed {
		t.Error("queue should be closed after shutdown")
	}
	if got := svc.journal.Total(); got != 3 {
		t.Errorf("journal Total() = %d, want 3", got)
	}
	if svc.dispatcher.Running() {
		t.Error("dispatcher should not be running after shutdown")
	}
}

// TestStartServicesInvalidConfig validates that component validation errors
// surface from startServices
func TestStartServicesInvalidConfig(t *testing.T) {
	setTestConfig(t)
	config.Global.CapacityBytes = 1

	if _, err := startServices(); err == nil {
		t.Error("startServices() expected error for tiny capacity")
	}
}

// TestStartServicesPortInUse validates that an explicit busy port fails startup
func TestStartServicesPortInUse(t *testing.T) {
	setTestConfig(t)

	first, err := startServices()
	if err != nil {
		t.Fatalf("startServices() error = %v", err)
	}
	defer first.shutdown()

	config.Global.APIPort = first.apiServer.Port()
	if _, err := startServices(); err == nil {
		t.Error("startServices() expected error for port in use")
	}
}
