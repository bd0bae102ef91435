// Package api provides the HTTP API server for cmdqd.
// The server exposes the command queue over REST so cmdqctl and other clients
// can submit work, trigger drains and inspect what has executed.
package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/angrypants/cmdq/internal/api/handlers"
	"github.com/angrypants/cmdq/internal/cmdqueue"
	"github.com/angrypants/cmdq/internal/dispatcher"
	"github.com/angrypants/cmdq/internal/journal"
	"github.com/angrypants/cmdq/internal/logging"
)

// Represents the cmdq API server
type Server struct {
	queue      *cmdqueue.Queue
	dispatcher *dispatcher.Dispatcher
	journal    *journal.Journal
	httpServer *http.Server
	listener   net.Listener // Pre-bound listener, nil when Start binds itself
	bindAddr   string
	bindPort   int
	version    string
	startTime  time.Time
}

// NewServer creates a new API server instance
func NewServer(config *Config) *Server {
	// Set Gin to release mode for production
	gin.SetMode(gin.ReleaseMode)

	return &Server{
		queue:      config.Queue,
		dispatcher: config.Dispatcher,
		journal:    config.Journal,
		bindAddr:   config.BindAddr,
		bindPort:   config.BindPort,
		version:    config.Version,
		startTime:  time.Now(),
	}
}

// NewServerWithListener creates a server that serves on an already bound
// listener. The listener's port replaces config.BindPort.
func NewServerWithListener(config *Config, listener net.Listener) (*Server, error) {
	if listener == nil {
		return nil, fmt.Errorf("listener cannot be nil")
	}
	tcpAddr, ok := listener.Addr().(*net.TCPAddr)
	if !ok {
		return nil, fmt.Errorf("listener is not a TCP listener: %T", listener.Addr())
	}

	server := NewServer(config)
	server.listener = listener
	server.bindPort = tcpAddr.Port
	return server, nil
}

// Addr returns the host:port the server binds to.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.bindAddr, strconv.Itoa(s.bindPort))
}

// Port returns the port the server binds to.
func (s *Server) Port() int {
	return s.bindPort
}

// newRouter builds the gin engine with middleware and routes.
func (s *Server) newRouter() *gin.Engine {
	router := gin.New()

	// Configure Gin logging only if not already configured by CLI tools
	if !logging.IsConfiguredByCLI() {
		gin.DefaultWriter = logging.NewLevelWriter("INFO", "gin")
		gin.DefaultErrorWriter = logging.NewLevelWriter("ERROR", "gin")
	}

	// Add middleware
	router.Use(s.loggingMiddleware())
	router.Use(s.corsMiddleware())
	router.Use(gin.Recovery())

	// Setup routes
	s.setupRoutes(router)
	return router
}

// Start starts the API server
func (s *Server) Start() error {
	logging.Info("Starting HTTP API server on %s", s.Addr())

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:    s.Addr(),
		Handler: s.newRouter(),
		// Timeouts for production
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	listener := s.listener
	if listener == nil {
		// Bind now so errors surface before Start returns
		var err error
		listener, err = net.Listen("tcp", s.httpServer.Addr)
		if err != nil {
			return fmt.Errorf("failed to bind to %s: %w", s.httpServer.Addr, err)
		}
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			logging.Error("HTTP server failed: %v", err)
		}
	}()

	logging.Success("HTTP API server started successfully")
	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down HTTP API server...")

	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}

	return nil
}

// handleHealth delegates to handlers.HandleHealth
func (s *Server) handleHealth(c *gin.Context) {
	handler := s.getHandlerHealth()
	handler(c)
}

// getHandlerHealth is a health endpoint handler factory
func (s *Server) getHandlerHealth() gin.HandlerFunc {
	return handlers.HandleHealth(s.queue, s.version, s.startTime)
}

// handleQueueStats delegates to handlers.HandleQueueStats
func (s *Server) handleQueueStats(c *gin.Context) {
	handler := s.getHandlerQueueStats()
	handler(c)
}

// getHandlerQueueStats is a queue stats endpoint handler factory
func (s *Server) getHandlerQueueStats() gin.HandlerFunc {
	// A nil *Dispatcher must not become a non-nil interface
	if s.dispatcher == nil {
		return handlers.HandleQueueStats(s.queue, nil)
	}
	return handlers.HandleQueueStats(s.queue, s.dispatcher)
}

// handleSubmitCommands delegates to handlers.HandleSubmitCommands
func (s *Server) handleSubmitCommands(c *gin.Context) {
	handler := s.getHandlerSubmitCommands()
	handler(c)
}

// getHandlerSubmitCommands is a command submission endpoint handler factory
func (s *Server) getHandlerSubmitCommands() gin.HandlerFunc {
	return handlers.HandleSubmitCommands(s.queue, s.journal)
}

// handleDrain delegates to handlers.HandleDrain
func (s *Server) handleDrain(c *gin.Context) {
	handler := s.getHandlerDrain()
	handler(c)
}

// getHandlerDrain is a manual drain endpoint handler factory
func (s *Server) getHandlerDrain() gin.HandlerFunc {
	return handlers.HandleDrain(s.queue)
}

// handleJournal delegates to handlers.HandleJournal
func (s *Server) handleJournal(c *gin.Context) {
	handler := s.getHandlerJournal()
	handler(c)
}

// getHandlerJournal is a journal endpoint handler factory
func (s *Server) getHandlerJournal() gin.HandlerFunc {
	return handlers.HandleJournal(s.journal)
}
