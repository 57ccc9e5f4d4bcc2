package config

import (
	"errors"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("default port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.RateLimit.MaxCalls != 100 {
		t.Errorf("default max calls = %d, want 100", cfg.RateLimit.MaxCalls)
	}
	if cfg.RateLimit.Window != time.Minute {
		t.Errorf("default window = %v, want 1m", cfg.RateLimit.Window)
	}
	if cfg.Trends.BaseURL == "" {
		t.Error("trends base url must have a default")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("RATE_LIMIT_MAX_CALLS", "5")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.RateLimit.MaxCalls != 5 {
		t.Errorf("max calls = %d, want 5", cfg.RateLimit.MaxCalls)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Log.Level)
	}
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("PORT", "99999")

	if _, err := Load(); !errors.Is(err, ErrInvalidPort) {
		t.Errorf("Load() error = %v, want ErrInvalidPort", err)
	}
}

func TestNewLogger(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "unknown"} {
		logger, err := NewLogger(LogConfig{Level: level})
		if err != nil {
			t.Errorf("NewLogger(%q) error = %v", level, err)
			continue
		}
		logger.Sync() //nolint:errcheck
	}
}
