package metrics

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// Server runs an HTTP server exposing /metrics.
type Server struct {
	addr string
	srv  *http.Server
	log  *zap.Logger
}

// NewServer creates a metrics server on addr.
func NewServer(addr string, m *Metrics, log *zap.Logger) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	return &Server{
		addr: addr,
		log:  log,
		srv: &http.Server{
			Addr:    addr,
			Handler: mux,
		},
	}
}

// Start launches the HTTP server in a goroutine.
func (s *Server) Start() {
	go func() {
		s.log.Info("metrics server listening", zap.String("addr", s.addr))
		if err := s.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("metrics server", zap.Error(err))
		}
	}()
}

// Stop gracefully shuts down the metrics server.
func (s *Server) Stop(ctx context.Context) {
	_ = s.srv.Shutdown(ctx)
}
