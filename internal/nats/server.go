package nats

import (
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/travelhub/internal/logger"
	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// Default timeouts for an embedded server.
const (
	DefaultReadyTimeout    = 4 * time.Second
	DefaultDrainTimeout    = 2 * time.Second
	DefaultShutdownTimeout = 5 * time.Second
)

// Options configures an embedded server.
type Options struct {
	// StoreDir holds JetStream bookkeeping. Streams set up by this package
	// are memory-backed, so nothing in it outlives the process.
	StoreDir string

	ReadyTimeout    time.Duration
	DrainTimeout    time.Duration
	ShutdownTimeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.ReadyTimeout <= 0 {
		o.ReadyTimeout = DefaultReadyTimeout
	}
	if o.DrainTimeout <= 0 {
		o.DrainTimeout = DefaultDrainTimeout
	}
	if o.ShutdownTimeout <= 0 {
		o.ShutdownTimeout = DefaultShutdownTimeout
	}
	return o
}

// Embedded is an in-process JetStream server together with the single
// connection that talks to it. It opens no network ports.
type Embedded struct {
	opts Options
	ns   *server.Server
	nc   *nats.Conn
	js   jetstream.JetStream
}

// Start boots the server, waits until it accepts connections and connects
// to it in-process.
func Start(opts Options) (*Embedded, error) {
	opts = opts.withDefaults()
	logger.Debug("Starting embedded NATS server with store dir: %s", opts.StoreDir)

	ns, err := server.NewServer(&server.Options{
		JetStream:  true,
		StoreDir:   opts.StoreDir,
		DontListen: true,
	})
	if err != nil {
		logger.Error("Failed to create NATS server: %v", err)
		return nil, fmt.Errorf("creating nats server: %w", err)
	}

	go ns.Start()

	if !ns.ReadyForConnections(opts.ReadyTimeout) {
		logger.Error("NATS server failed to start within %s", opts.ReadyTimeout)
		ns.Shutdown()
		return nil, fmt.Errorf("nats server not ready after %s", opts.ReadyTimeout)
	}

	e := &Embedded{opts: opts, ns: ns}

	e.nc, err = nats.Connect("", nats.InProcessServer(ns))
	if err != nil {
		_ = e.Close()
		return nil, fmt.Errorf("connecting in-process: %w", err)
	}

	e.js, err = jetstream.New(e.nc)
	if err != nil {
		_ = e.Close()
		return nil, fmt.Errorf("creating jetstream context: %w", err)
	}

	logger.Debug("Embedded NATS server ready")
	return e, nil
}

// JetStream returns the JetStream context of the in-process connection.
func (e *Embedded) JetStream() jetstream.JetStream {
	return e.js
}

// Close drains the connection and shuts the server down. A drain that fails
// or runs past DrainTimeout falls back to a hard close; a server that does
// not stop within ShutdownTimeout is reported as an error.
func (e *Embedded) Close() error {
	if e == nil {
		return nil
	}

	if e.nc != nil {
		var drainErr error
		finished := within(e.opts.DrainTimeout, func() { drainErr = e.nc.Drain() })
		switch {
		case !finished:
			logger.Warn("NATS drain timed out after %s, forcing close", e.opts.DrainTimeout)
			e.nc.Close()
		case drainErr != nil:
			logger.Warn("NATS drain failed, forcing close: %v", drainErr)
			e.nc.Close()
		}
		e.nc = nil
	}

	if e.ns != nil {
		e.ns.Shutdown()
		if !within(e.opts.ShutdownTimeout, e.ns.WaitForShutdown) {
			logger.Error("NATS server shutdown timed out after %s", e.opts.ShutdownTimeout)
			return errors.New("nats server shutdown timed out")
		}
		e.ns = nil
	}

	logger.Debug("Embedded NATS server stopped")
	return nil
}

// within runs fn in a goroutine and reports whether it returned before the
// timeout.
func within(timeout time.Duration, fn func()) bool {
	done := make(chan struct{})
	go func() {
		fn()
		close(done)
	}()

	select {
	case <-done:
		return true
	case <-time.After(timeout):
		return false
	}
}
