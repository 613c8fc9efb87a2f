package main

import (
	"context"
	"log"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/JosuaKrause/redipy"
	"github.com/JosuaKrause/redipy/internal/config"
	"github.com/JosuaKrause/redipy/redipymetrics"
)

// shutdownTimeout is the maximum time to wait for graceful shutdown.
const shutdownTimeout = 30 * time.Second

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log.Printf("Selecting %s backend...", cfg.Backend)
	client, err := redipy.NewClient(redipy.Config{
		Backend: cfg.Backend,
		Prefix:  cfg.RedisPrefix,
		Redis:   parseRedisAddr(cfg.RedisAddr, cfg.RedisPassword),
	})
	if err != nil {
		log.Fatalf("Failed to build redipy client: %v", err)
	}
	log.Printf("Backend %s ready", cfg.Backend)

	metricsSrv := redipymetrics.NewServer(cfg.MetricsAddr)
	if err := metricsSrv.Start(); err != nil {
		log.Fatalf("Failed to start metrics server: %v", err)
	}
	log.Printf("Metrics server listening on %s", cfg.MetricsAddr)

	if _, err := client.DBSize(ctx); err != nil {
		log.Fatalf("Backend health check failed: %v", err)
	}
	log.Println("Backend health check passed")

	if cfg.Debug {
		log.Println("Debug logging is enabled (DEBUG=1)")
	}
	if cfg.RedisPrefix != "" {
		log.Printf("Key namespace prefix: %q", cfg.RedisPrefix)
	}
	log.Println("redipy is ready")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	sig := <-sigChan
	log.Printf("Received signal %v, initiating graceful shutdown...", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	go func() {
		sig := <-sigChan
		log.Printf("Received second signal %v, forcing immediate shutdown", sig)
		os.Exit(1)
	}()

	done := make(chan struct{})
	go func() {
		log.Println("Stopping metrics server...")
		metricsSrv.Stop()
		cancel()
		close(done)
	}()

	select {
	case <-done:
		log.Println("Graceful shutdown completed successfully")
	case <-shutdownCtx.Done():
		log.Println("Shutdown timed out, forcing exit")
		os.Exit(1)
	}
}

// parseRedisAddr splits "host:port" into redipy.RedisConfig fields; only
// meaningful when cfg.Backend == "redis".
func parseRedisAddr(addr, password string) redipy.RedisConfig {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return redipy.RedisConfig{Host: addr, Port: 6379, Passwd: password}
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		port = 6379
	}
	return redipy.RedisConfig{Host: host, Port: port, Passwd: password}
}
