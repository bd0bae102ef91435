package api

import (
	"testing"

	"github.com/angrypants/cmdq/internal/cmdqueue"
	"github.com/angrypants/cmdq/internal/dispatcher"
	"github.com/angrypants/cmdq/internal/journal"
	"github.com/angrypants/cmdq/internal/logging"
)

func init() {
	logging.SetOutput(nil)
}

// newTestConfig wires real components with a small queue
func newTestConfig(t *testing.T) *Config {
	t.Helper()

	q, err := cmdqueue.NewWithCapacity(4096)
	if err != nil {
		t.Fatalf("cmdqueue.NewWithCapacity() error = %v", err)
	}
	d, err := dispatcher.New(q, nil)
	if err != nil {
		t.Fatalf("dispatcher.New() error = %v", err)
	}
	j, err := journal.New(100)
	if err != nil {
		t.Fatalf("journal.New() error = %v", err)
	}

	return &Config{
		BindAddr:   "127.0.0.1",
		BindPort:   8080,
		Version:    "test",
		Queue:      q,
		Dispatcher: d,
		Journal:    j,
	}
}
