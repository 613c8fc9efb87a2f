package redipymetrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestServerHealthAndMetricsEndpoints(t *testing.T) {
	srv := NewServer("127.0.0.1:0")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.server.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("/health: got status %d", rec.Code)
	}
	if rec.Body.String() != "OK" {
		t.Fatalf("/health: got body %q", rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec = httptest.NewRecorder()
	srv.server.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("/metrics: got status %d", rec.Code)
	}
	if rec.Body.Len() == 0 {
		t.Fatal("/metrics: expected non-empty Prometheus exposition text")
	}
}

func TestServerStartStop(t *testing.T) {
	srv := NewServer("127.0.0.1:0")
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if err := srv.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
}
