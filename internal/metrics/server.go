package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/therealutkarshpriyadarshi/nexus/internal/logging"
)

// Server exposes the collectors for scraping
type Server struct {
	server *http.Server
	logger *logging.Logger
}

// NewServer creates a metrics server listening on port
func NewServer(port int, logger *logging.Logger) *Server {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", healthHandler)

	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf(":%d", port),
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		logger: logger.WithField("port", port),
	}
}

// Handler returns the server's routes
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	s.logger.Info("Starting metrics server")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start metrics server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the metrics server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down metrics server")
	return s.server.Shutdown(ctx)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
