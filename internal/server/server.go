// Package server exposes scene export over HTTP.
//
// Clients POST a scene document and receive the serialized payload back as
// a file attachment, which makes the service usable straight from a browser
// form or curl. Each request runs its own export controller, so concurrent
// requests never trip over the single-export guard.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sceneforge/sceneport/pkg/config"
)

// Server hosts the export HTTP API.
type Server struct {
	cfg    config.ServeConfig
	export config.ExportConfig
	logger *log.Logger
	http   *http.Server
}

// New creates a server for the given configuration.
func New(cfg config.Config, logger *log.Logger) *Server {
	s := &Server{
		cfg:    cfg.Serve,
		export: cfg.Export,
		logger: logger,
	}
	s.http = &http.Server{
		Addr:         cfg.Serve.Addr,
		Handler:      s.routes(),
		ReadTimeout:  cfg.Serve.ReadTimeout(),
		WriteTimeout: cfg.Serve.WriteTimeout(),
	}
	return s
}

// Handler returns the server's HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Start runs the server until the context is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("Export service listening", "addr", s.cfg.Addr)
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down export service")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}
