package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
)

// Server runs the HTTP listener and shuts it down cleanly on SIGTERM,
// letting in-flight plan requests finish first.
type Server struct {
	httpServer      *http.Server
	shutdownTimeout time.Duration
}

func NewServer(handler http.Handler, port string) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:           ":" + port,
			Handler:        handler,
			ReadTimeout:    15 * time.Second,
			WriteTimeout:   15 * time.Second,
			IdleTimeout:    60 * time.Second,
			MaxHeaderBytes: 1 << 20,
		},
		shutdownTimeout: 10 * time.Second,
	}
}

// Run serves until the listener fails or the process receives an
// interrupt or SIGTERM, then drains connections via Shutdown.
func (s *Server) Run() error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.httpServer.Addr).Msg("HTTP server listening")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received, draining connections")
	}

	return s.Shutdown()
}

// Shutdown stops accepting connections and waits for active requests up
// to the shutdown timeout.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown, drain timeout exceeded")
		return err
	}

	log.Info().Msg("server stopped")
	return nil
}
