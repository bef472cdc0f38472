// Package site serves the workspace over HTTP so the generated CSV and image
// files can be browsed locally. Responses are marked uncacheable because the
// pipeline rewrites files in place between requests.
package site

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"log/slog"

	"boardshelf/internal/logging"
)

// Server is a static file server rooted at the workspace directory.
type Server struct {
	bind   string
	dir    string
	logger *slog.Logger

	listener net.Listener
	server   *http.Server
}

func New(bind, dir string, logger *slog.Logger) *Server {
	srv := &Server{
		bind:   bind,
		dir:    dir,
		logger: logging.NewComponentLogger(logger, "site"),
	}
	srv.server = &http.Server{
		Handler:           noCache(http.FileServer(http.Dir(dir))),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv
}

// Addr returns the bound listen address once Start has succeeded.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.bind
	}
	return s.listener.Addr().String()
}

// Start binds the listener and serves in the background until ctx is
// cancelled.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("site listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("site server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	s.logger.Info("site server listening",
		logging.String("address", listener.Addr().String()),
		logging.String("directory", s.dir))
	return nil
}

// Stop drains in-flight requests and closes the listener.
func (s *Server) Stop() {
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

// Run starts the server and blocks until the context ends.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	return nil
}

// noCache disables client and proxy caching. The collection file changes on
// every pipeline run and browsers otherwise hold stale copies.
func noCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")
		next.ServeHTTP(w, r)
	})
}
