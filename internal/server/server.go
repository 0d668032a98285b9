// Package server owns process startup ordering: the database comes up first and the
// listener is bound only once it has.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/benvon/food-delivery/internal/database"
	"go.uber.org/zap"
)

// State is the server lifecycle phase
type State int32

const (
	// StateInitializing means the database bootstrap is in progress and nothing is served
	StateInitializing State = iota
	// StateServing means the listener is bound and the pipeline is active
	StateServing
	// StateStopped means Run has returned
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateServing:
		return "serving"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

const (
	// DefaultAddr is the fixed listen address
	DefaultAddr = ":8462"
	// DefaultShutdownTimeout bounds graceful shutdown
	DefaultShutdownTimeout = 30 * time.Second
)

// ErrBootstrap marks a failure to bring up the database. The listener is never bound.
var ErrBootstrap = errors.New("database bootstrap failed")

// BootstrapFunc connects to the database
type BootstrapFunc func(ctx context.Context) (*database.DB, error)

// HandlerFunc builds the HTTP handler once the database is available
type HandlerFunc func(db *database.DB) (http.Handler, error)

// Options configures a Server
type Options struct {
	Addr            string
	Bootstrap       BootstrapFunc
	Handler         HandlerFunc
	Logger          *zap.Logger
	ShutdownTimeout time.Duration
}

// Server runs the Initializing then Serving lifecycle
type Server struct {
	opts   Options
	listen func(network, address string) (net.Listener, error)

	state atomic.Int32

	mu   sync.Mutex
	addr net.Addr
}

// New creates a server
func New(opts Options) *Server {
	if opts.Addr == "" {
		opts.Addr = DefaultAddr
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = DefaultShutdownTimeout
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Server{opts: opts, listen: net.Listen}
}

// State returns the current lifecycle phase
func (s *Server) State() State {
	return State(s.state.Load())
}

// Addr returns the bound listener address, or nil before Serving
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Run bootstraps the database, binds the listener and serves until ctx is cancelled.
// A bootstrap failure is returned wrapped in ErrBootstrap without binding anything.
func (s *Server) Run(ctx context.Context) error {
	logger := s.opts.Logger
	s.state.Store(int32(StateInitializing))
	defer s.state.Store(int32(StateStopped))

	if s.opts.Bootstrap == nil || s.opts.Handler == nil {
		return fmt.Errorf("server requires a bootstrap and a handler")
	}

	db, err := s.opts.Bootstrap(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBootstrap, err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("failed_to_close_database", zap.Error(err))
		}
	}()
	logger.Info("connected_to_database")

	handler, err := s.opts.Handler(db)
	if err != nil {
		return fmt.Errorf("failed to build handler: %w", err)
	}

	ln, err := s.listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.opts.Addr, err)
	}

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB max header size
		ErrorLog:          zap.NewStdLog(logger.Named("http")),
	}

	s.mu.Lock()
	s.addr = ln.Addr()
	s.mu.Unlock()
	s.state.Store(int32(StateServing))
	logger.Info("server_started", zap.String("addr", ln.Addr().String()))

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(ln)
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("server_shutting_down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("server_exited")
	return nil
}
