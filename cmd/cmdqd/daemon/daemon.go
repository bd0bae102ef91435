// Package daemon provides cmdqd orchestration and lifecycle management.
//
// The daemon wires the command queue to its producers and its consumer:
//
//   - Command queue: double-buffered storage for submitted commands
//   - Journal: bounded record of executed commands
//   - Dispatcher: background drain loop, the queue's single consumer
//   - HTTP API: REST interface used by cmdqctl to submit and inspect work
//
// STARTUP ORDER:
// 1. Build queue and journal from validated configuration
// 2. Pre-bind the API listener (exact port if --api was given, fallback otherwise)
// 3. Start the dispatcher, then the API server
//
// GRACEFUL SHUTDOWN:
// Services stop in reverse order: the API first so no new commands arrive,
// then the dispatcher, whose Stop performs a final drain, and finally the
// queue is closed. Commands accepted before shutdown therefore still run.
package daemon

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/angrypants/cmdq/cmd/cmdqd/config"
	"github.com/angrypants/cmdq/cmd/cmdqd/utils"
	"github.com/angrypants/cmdq/internal/api"
	"github.com/angrypants/cmdq/internal/cmdqueue"
	"github.com/angrypants/cmdq/internal/dispatcher"
	"github.com/angrypants/cmdq/internal/journal"
	"github.com/angrypants/cmdq/internal/logging"
	"github.com/angrypants/cmdq/internal/netutil"
	"github.com/angrypants/cmdq/internal/version"
)

// shutdownTimeout bounds how long in-flight HTTP requests may take on shutdown.
const shutdownTimeout = 5 * time.Second

// services holds every running daemon component.
type services struct {
	queue      *cmdqueue.Queue
	journal    *journal.Journal
	dispatcher *dispatcher.Dispatcher
	apiServer  *api.Server
}

// buildAPIConfig converts daemon config to API server config
func buildAPIConfig(svc *services) *api.Config {
	apiConfig := api.DefaultConfig()

	apiConfig.BindAddr = config.Global.APIAddr
	apiConfig.BindPort = config.Global.APIPort
	apiConfig.Version = version.CmdqdVersion
	apiConfig.Queue = svc.queue
	apiConfig.Dispatcher = svc.dispatcher
	apiConfig.Journal = svc.journal

	return apiConfig
}

// startServices creates and starts all components. On error, anything already
// started is stopped again.
func startServices() (*services, error) {
	svc := &services{}
	var err error

	svc.queue, err = cmdqueue.New(config.QueueConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create command queue: %w", err)
	}
	logging.Info("Command queue: %s per buffer, %d command slots, failure policy %s",
		humanize.IBytes(uint64(svc.queue.CapacityBytes())), svc.queue.SlotCapacity(), config.Global.FailurePolicy)

	svc.journal, err = journal.New(config.Global.JournalSize)
	if err != nil {
		svc.queue.Close()
		return nil, fmt.Errorf("failed to create journal: %w", err)
	}

	svc.dispatcher, err = dispatcher.New(svc.queue, config.DispatcherConfig())
	if err != nil {
		svc.queue.Close()
		return nil, fmt.Errorf("failed to create dispatcher: %w", err)
	}

	// Reserve the API port before anything starts serving
	listener, port, err := utils.PreBindServiceListener("API", netutil.NewPortBinder(),
		config.Global.IsExplicitlySet(config.APIAddrField), config.Global.APIAddr, config.Global.APIPort)
	if err != nil {
		svc.queue.Close()
		return nil, err
	}
	config.Global.APIPort = port

	svc.apiServer, err = api.NewServerWithListener(buildAPIConfig(svc), listener)
	if err != nil {
		listener.Close()
		svc.queue.Close()
		return nil, fmt.Errorf("failed to create API server: %w", err)
	}

	if err := svc.dispatcher.Start(); err != nil {
		listener.Close()
		svc.queue.Close()
		return nil, fmt.Errorf("failed to start dispatcher: %w", err)
	}

	if err := svc.apiServer.Start(); err != nil {
		listener.Close()
		svc.dispatcher.Stop()
		svc.queue.Close()
		return nil, fmt.Errorf("failed to start API server: %w", err)
	}

	return svc, nil
}

// shutdown stops services in reverse dependency order:
// API → Dispatcher (final drain) → Queue
func (svc *services) shutdown() {
	if svc.apiServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := svc.apiServer.Shutdown(ctx); err != nil {
			logging.Error("Error shutting down API server: %v", err)
		}
	}

	if svc.dispatcher != nil {
		if err := svc.dispatcher.Stop(); err != nil {
			logging.Error("Error stopping dispatcher: %v", err)
		}
	}

	if svc.queue != nil {
		if err := svc.queue.Close(); err != nil {
			logging.Error("Error closing command queue: %v", err)
		}

		m := svc.queue.Metrics()
		logging.Info("Command queue totals: %s enqueued, %s executed, %s failed, %s overflows, %s discarded",
			humanize.Comma(int64(m.Enqueued)), humanize.Comma(int64(m.Executed)),
			humanize.Comma(int64(m.Failed)), humanize.Comma(int64(m.Overflows)),
			humanize.Comma(int64(m.Discarded)))
	}
}

// Run starts the daemon and blocks until SIGINT or SIGTERM, then shuts down
// gracefully.
func Run() error {
	logging.Info("Starting cmdq daemon v%s", version.CmdqdVersion)

	// net/http reports connection-level errors through the standard logger
	logging.RedirectStandardLog(logging.NewLevelWriter("WARN", "http"))

	svc, err := startServices()
	if err != nil {
		return err
	}

	// Set up graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	logging.Success("cmdq daemon started successfully")
	logging.Info("Daemon running... Press Ctrl+C to shutdown")

	logging.Info("Services started:")
	logging.Info("  - HTTP API: %s", svc.apiServer.Addr())
	logging.Info("  - Dispatcher: draining every %v", config.Global.TickInterval)
	logging.Info("  - Journal: keeping last %s executed commands", humanize.Comma(int64(config.Global.JournalSize)))

	// Wait for shutdown signal
	select {
	case sig := <-sigCh:
		logging.Info("Received signal: %v", sig)
	case <-ctx.Done():
		logging.Info("Context cancelled")
	}

	logging.Info("Initiating graceful shutdown...")
	svc.shutdown()

	logging.Success("cmdq daemon shutdown completed")
	return nil
}
