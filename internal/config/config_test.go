package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Backend != "memory" {
		t.Errorf("Backend: got %q", cfg.Backend)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("RedisAddr: got %q", cfg.RedisAddr)
	}
	if cfg.RedisPrefix != "" {
		t.Errorf("RedisPrefix: got %q", cfg.RedisPrefix)
	}
	if cfg.MetricsAddr != ":9090" {
		t.Errorf("MetricsAddr: got %q", cfg.MetricsAddr)
	}
	if cfg.Debug {
		t.Error("Debug: expected false by default")
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("REDIPY_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "cache.internal:6380")
	t.Setenv("REDIS_PASSWORD", "s3cret")
	t.Setenv("REDIS_PREFIX", "svc:")
	t.Setenv("METRICS_ADDR", ":9999")
	t.Setenv("DEBUG", "true")

	cfg := Load()
	if cfg.Backend != "redis" {
		t.Errorf("Backend: got %q", cfg.Backend)
	}
	if cfg.RedisAddr != "cache.internal:6380" {
		t.Errorf("RedisAddr: got %q", cfg.RedisAddr)
	}
	if cfg.RedisPassword != "s3cret" {
		t.Errorf("RedisPassword: got %q", cfg.RedisPassword)
	}
	if cfg.RedisPrefix != "svc:" {
		t.Errorf("RedisPrefix: got %q", cfg.RedisPrefix)
	}
	if cfg.MetricsAddr != ":9999" {
		t.Errorf("MetricsAddr: got %q", cfg.MetricsAddr)
	}
	if !cfg.Debug {
		t.Error("Debug: expected true")
	}
}

func TestGetEnvBoolIgnoresUnparsableValue(t *testing.T) {
	t.Setenv("DEBUG", "not-a-bool")
	if getEnvBool("DEBUG", false) {
		t.Error("expected fallback to default on unparsable value")
	}
}
