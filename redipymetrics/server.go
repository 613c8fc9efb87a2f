package redipymetrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server is a minimal metrics HTTP server, grounded on the teacher's
// internal/metrics.Server (NewServer/Start/Stop), trimmed of its pprof
// handlers — those profiled the teacher's PostgreSQL connection pool
// and RESP server, which redipy has neither of.
type Server struct {
	server *http.Server
}

// NewServer builds a metrics server exposing /metrics and /health on addr.
func NewServer(addr string) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	return &Server{server: &http.Server{Addr: addr, Handler: mux}}
}

// Start begins serving in the background.
func (s *Server) Start() error {
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			println("metrics server error:", err.Error())
		}
	}()
	return nil
}

// Stop closes the metrics server.
func (s *Server) Stop() error {
	return s.server.Close()
}
