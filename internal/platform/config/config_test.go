package config

import (
	"testing"
	"time"
)

func TestLoad_RequiresServiceName(t *testing.T) {
	t.Setenv("SERVICE_NAME", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error without SERVICE_NAME")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SERVICE_NAME", "social")
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("CACHE_TTL", "")
	t.Setenv("COUNTS_POLL_INTERVAL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Fatalf("expected default addr :8080, got %q", cfg.HTTP.Addr)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("expected default level info, got %q", cfg.LogLevel)
	}
	if cfg.Counts.PollInterval != 5*time.Second {
		t.Fatalf("expected 5s poll interval, got %s", cfg.Counts.PollInterval)
	}
	if cfg.Cache.TTL != 60*time.Second {
		t.Fatalf("expected 60s cache ttl, got %s", cfg.Cache.TTL)
	}
}

func TestEnvDuration_BareSeconds(t *testing.T) {
	t.Setenv("CONFIG_TEST_DUR", "30")
	if d := envDuration("CONFIG_TEST_DUR", time.Second); d != 30*time.Second {
		t.Fatalf("expected 30s, got %s", d)
	}
}

func TestEnvDuration_GoSyntax(t *testing.T) {
	t.Setenv("CONFIG_TEST_DUR", "2m")
	if d := envDuration("CONFIG_TEST_DUR", time.Second); d != 2*time.Minute {
		t.Fatalf("expected 2m, got %s", d)
	}
}

func TestEnvDuration_Invalid(t *testing.T) {
	t.Setenv("CONFIG_TEST_DUR", "soon")
	if d := envDuration("CONFIG_TEST_DUR", 7*time.Second); d != 7*time.Second {
		t.Fatalf("expected fallback 7s, got %s", d)
	}
}
