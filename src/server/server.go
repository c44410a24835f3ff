package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/apimgr/homunculus/src/config"
	"github.com/apimgr/homunculus/src/graphql"
	"github.com/apimgr/homunculus/src/i18n"
	"github.com/apimgr/homunculus/src/logging"
	"github.com/apimgr/homunculus/src/metrics"
	"github.com/apimgr/homunculus/src/provider"
)

// Server represents the HTTP server
type Server struct {
	config     *config.Config
	provider   *provider.Provider
	i18n       *i18n.Manager
	logger     *slog.Logger
	access     *slog.Logger
	renderer   *TemplateRenderer
	httpServer *http.Server
	startTime  time.Time
}

// New creates a new server instance. logMgr may be nil, in which case
// server logs go to slog.Default and access logs are dropped.
func New(cfg *config.Config, p *provider.Provider, tr *i18n.Manager, logMgr *logging.Manager) (*Server, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if p == nil {
		return nil, errors.New("server requires a theme provider")
	}
	if tr == nil {
		m, err := i18n.DefaultManager()
		if err != nil {
			return nil, fmt.Errorf("failed to load translations: %w", err)
		}
		tr = m
	}

	renderer, err := NewTemplateRenderer()
	if err != nil {
		return nil, err
	}

	s := &Server{
		config:    cfg,
		provider:  p,
		i18n:      tr,
		logger:    slog.Default(),
		access:    slog.New(slog.NewJSONHandler(io.Discard, nil)),
		renderer:  renderer,
		startTime: time.Now(),
	}
	if logMgr != nil {
		s.logger = logMgr.Server()
		s.access = logMgr.Access()
	}
	return s, nil
}

// Handler returns the routed handler with the middleware chain applied
func (s *Server) Handler() http.Handler {
	return s.setupRoutes()
}

// Start listens on the configured address and serves until ctx is
// cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.GetAddress())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.GetAddress(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.provider.Init(ctx)

	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "address", ln.Addr().String(), "version", config.Version)
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}

// Shutdown stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	s.logger.Info("server shutting down")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("server stopped gracefully", "uptime", time.Since(s.startTime).Round(time.Second).String())
	return nil
}

// setupRoutes sets up HTTP routes with middleware
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealthz)

	// JSON API
	mux.HandleFunc("GET /api/v1/schemes", s.handleListSchemes)
	mux.HandleFunc("GET /api/v1/schemes/{id}", s.handleGetScheme)
	mux.HandleFunc("GET /api/v1/theme", s.handleGetTheme)
	mux.HandleFunc("GET /api/v1/theme/variables", s.handleThemeVariables)
	mux.HandleFunc("PUT /api/v1/theme/scheme", s.handleSetScheme)
	mux.HandleFunc("PUT /api/v1/theme/settings", s.handleApplySettings)
	mux.HandleFunc("DELETE /api/v1/theme/settings", s.handleResetSettings)
	mux.HandleFunc("GET /api/v1/i18n/{lang}", s.handleTranslations)

	// Stylesheets
	mux.HandleFunc("GET /theme.css", s.handleThemeCSS)
	mux.HandleFunc("GET /themes.css", s.handleCatalogCSS)

	// Pages
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /dashboard", s.handleDashboard)
	mux.HandleFunc("GET /theme-preview", s.handleThemePreview)
	mux.HandleFunc("GET /static/logo", s.handleLogo)
	mux.HandleFunc("GET /static/{file...}", s.handleStatic)

	if s.config.Server.GraphQL {
		h, err := graphql.Handler(s.provider)
		if err != nil {
			s.logger.Error("failed to register graphql routes", "error", err)
		} else {
			mux.HandleFunc("/graphql", h)
		}
	}

	if s.config.Server.Metrics {
		mux.Handle("GET /metrics", metrics.Handler())
	}

	// Metrics runs innermost so it sees the pattern the mux matched
	return Chain(
		mux,
		s.Recovery,
		s.RequestID,
		s.Logger,
		SecurityHeaders,
		Metrics,
	)
}
