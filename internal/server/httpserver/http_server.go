// Package httpserver wires the Craftbook HTTP API onto a net/http server.
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"git.home.luguber.info/inful/craftbook/internal/config"
	derrors "git.home.luguber.info/inful/craftbook/internal/errors"
	"git.home.luguber.info/inful/craftbook/internal/logfields"
	"git.home.luguber.info/inful/craftbook/internal/metrics"
	handlers "git.home.luguber.info/inful/craftbook/internal/server/handlers"
	smw "git.home.luguber.info/inful/craftbook/internal/server/middleware"
)

// Runtime bundles what the handlers read from. A running daemon supplies
// all three: itself, its Holder and its SessionManager.
type Runtime struct {
	Daemon   handlers.DaemonInterface
	Registry handlers.RegistrySource
	Sessions handlers.SessionStore
}

// Options configures additional server wiring.
type Options struct {
	Recorder metrics.Recorder
	// Optional: Prometheus exposition handler mounted at metrics.path.
	MetricsHandler http.Handler
}

// Server manages the API endpoint.
type Server struct {
	cfg  *config.Config
	opts Options

	monitoringHandlers *handlers.MonitoringHandlers
	recipeHandlers     *handlers.RecipeHandlers
	sessionHandlers    *handlers.SessionHandlers

	// middleware chain
	mchain func(http.Handler) http.Handler

	mu     sync.Mutex
	server *http.Server
	addr   net.Addr
}

// New constructs a new HTTP server wiring instance.
func New(cfg *config.Config, rt Runtime, opts Options) *Server {
	errorAdapter := derrors.NewHTTPErrorAdapter(slog.Default())
	return &Server{
		cfg:                cfg,
		opts:               opts,
		monitoringHandlers: handlers.NewMonitoringHandlers(rt.Daemon, rt.Registry, rt.Sessions),
		recipeHandlers:     handlers.NewRecipeHandlers(rt.Registry, opts.Recorder),
		sessionHandlers:    handlers.NewSessionHandlers(rt.Registry, rt.Sessions),
		mchain:             smw.Chain(slog.Default(), errorAdapter, opts.Recorder),
	}
}

// Handler returns the routed, middleware-wrapped API handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.monitoringHandlers.HandleHealthCheck)
	mux.HandleFunc("GET /healthz", s.monitoringHandlers.HandleHealthCheck) // Kubernetes-style alias
	mux.HandleFunc("GET /api/status", s.monitoringHandlers.HandleStatus)

	mux.HandleFunc("GET /api/recipes/{key}", s.recipeHandlers.HandleGetRecipe)
	mux.HandleFunc("GET /api/search/{mode}", s.recipeHandlers.HandleSearch)

	mux.HandleFunc("POST /api/sessions", s.sessionHandlers.HandleCreate)
	mux.HandleFunc("GET /api/sessions/{id}", s.sessionHandlers.HandleGet)
	mux.HandleFunc("DELETE /api/sessions/{id}", s.sessionHandlers.HandleDelete)
	mux.HandleFunc("POST /api/sessions/{id}/actions/{slot}", s.sessionHandlers.HandleAction)
	mux.HandleFunc("GET /api/sessions/{id}/history", s.sessionHandlers.HandleHistory)

	if s.cfg.Metrics.Enabled && s.opts.MetricsHandler != nil {
		mux.Handle("GET "+s.cfg.Metrics.Path, s.opts.MetricsHandler)
	}

	return s.mchain(mux)
}

// Start binds http.addr and serves in the background. Binding happens
// before Start returns so that address errors surface immediately.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.server != nil {
		return errors.New("http server already started")
	}

	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", s.cfg.HTTP.Addr)
	if err != nil {
		return derrors.Wrap(err, derrors.CategoryNetwork, derrors.SeverityFatal, "http startup failed").
			WithContext("addr", s.cfg.HTTP.Addr)
	}

	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	s.addr = ln.Addr()

	go func(srv *http.Server) {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("api server error", logfields.Error(err))
		}
	}(s.server)

	slog.Info("HTTP server started", slog.String("addr", s.addr.String()))
	return nil
}

// Addr returns the bound address, or nil before Start.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.server == nil {
		return nil
	}
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("api server shutdown: %w", err)
	}
	s.server = nil
	slog.Info("HTTP server stopped")
	return nil
}
