// Package mcpserver exposes the booking wizard as MCP tools, so an agent can
// drive a booking the way a user drives the TUI.
package mcpserver

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"sync"

	"github.com/mark3labs/mcp-go/server"
	"github.com/mark3labs/travelhub/internal/booking"
	"github.com/mark3labs/travelhub/internal/ledger"
	"github.com/mark3labs/travelhub/internal/logger"
	"github.com/mark3labs/travelhub/internal/metrics"
)

// Ledger is the subset of the booking ledger the server uses.
type Ledger interface {
	Record(ctx context.Context, event ledger.Event) (ledger.Event, error)
	List(ctx context.Context) ([]ledger.Event, error)
}

// Option configures a Server.
type Option func(*Server)

// WithLedger records confirmations and restarts. Without it bookings-list
// reports that the ledger is disabled.
func WithLedger(l Ledger) Option {
	return func(s *Server) { s.ledger = l }
}

// WithMetrics counts transitions and gate failures.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// WithWizardOptions configures the hosted wizard.
func WithWizardOptions(opts ...booking.Option) Option {
	return func(s *Server) { s.wizardOpts = append(s.wizardOpts, opts...) }
}

// Server hosts one booking wizard behind a mutex and serves it over MCP,
// either on stdio or on a streamable HTTP endpoint.
type Server struct {
	mu         sync.Mutex
	wizard     booking.Wizard
	wizardOpts []booking.Option
	ledger     Ledger
	metrics    *metrics.Metrics

	mcpServer *server.MCPServer
	stdServer *http.Server
	addr      string
}

// New creates a server with all tools registered.
func New(version string, opts ...Option) *Server {
	s := &Server{}
	for _, opt := range opts {
		opt(s)
	}
	s.wizard = booking.New(s.wizardOpts...)

	s.mcpServer = server.NewMCPServer(
		"travelhub",
		version,
		server.WithToolCapabilities(true),
	)
	s.registerTools()
	return s
}

// ServeStdio serves MCP on stdin/stdout until the client disconnects.
func (s *Server) ServeStdio() error {
	logger.Debug("Serving MCP on stdio")
	return server.ServeStdio(s.mcpServer)
}

// Start serves MCP at /mcp and, when metrics are configured, the registry at
// /metrics. It returns the bound address once the listener is open.
func (s *Server) Start(addr string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stdServer != nil {
		return "", fmt.Errorf("server already started")
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.addr = listener.Addr().String()

	mux := http.NewServeMux()
	mux.Handle("/mcp", server.NewStreamableHTTPServer(
		s.mcpServer,
		server.WithStateLess(true),
	))
	if s.metrics != nil {
		mux.Handle("/metrics", s.metrics.Handler())
	}

	s.stdServer = &http.Server{Handler: mux}

	logger.Info("MCP server listening on %s", s.addr)

	// Capture stdServer reference for goroutine to avoid race with Stop()
	stdServer := s.stdServer
	go func() {
		if err := stdServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("MCP server error: %v", err)
		}
	}()

	return s.addr, nil
}

// Stop shuts the HTTP server down.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stdServer == nil {
		return nil
	}

	logger.Debug("Stopping MCP server")
	if err := s.stdServer.Shutdown(ctx); err != nil {
		logger.Warn("Error stopping MCP server: %v", err)
		return fmt.Errorf("failed to stop server: %w", err)
	}
	s.stdServer = nil
	return nil
}

// URL returns the HTTP URL of the MCP endpoint.
func (s *Server) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("http://%s/mcp", s.addr)
}

// Wizard returns a copy of the hosted wizard.
func (s *Server) Wizard() booking.Wizard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wizard
}

// apply runs one transition on the hosted wizard. A rejected gate still
// stores the returned wizard so the entered draft is kept.
func (s *Server) apply(ctx context.Context, transition func(booking.Wizard) (booking.Wizard, error)) (booking.Wizard, booking.Wizard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.wizard
	next, err := transition(prev)
	s.metrics.Observe(prev, next, err)
	s.wizard = next

	if err != nil {
		logger.Debug("Wizard transition rejected on %s: %v", prev.Step(), err)
		return prev, next, err
	}
	logger.Debug("Wizard transition %s -> %s", prev.Step(), next.Step())

	switch {
	case prev.Step() == booking.StepPayment && next.Step() == booking.StepConfirmation:
		if receipt, ok := next.Receipt(); ok {
			s.record(ctx, ledger.Confirmed(receipt))
		}
	case prev.Step() == booking.StepConfirmation && next.Step() == booking.StepSearch:
		s.record(ctx, ledger.Restarted(prev.BookingID()))
	}
	return prev, next, nil
}

// record writes to the ledger. Failures are logged and never fail the tool.
func (s *Server) record(ctx context.Context, event ledger.Event) {
	if s.ledger == nil {
		return
	}
	if _, err := s.ledger.Record(ctx, event); err != nil {
		logger.Warn("Failed to record %s in ledger: %v", event.Type, err)
	}
}
