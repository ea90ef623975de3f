package config

import (
	"testing"
	"time"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig failed: %v", err)
	}

	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level: got %q, want info", cfg.Log.Level)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format: got %q, want json", cfg.Log.Format)
	}
	if cfg.HTTP.Accept != "image/*" {
		t.Errorf("HTTP.Accept: got %q, want image/*", cfg.HTTP.Accept)
	}
	if cfg.Probe.Timeout != 30*time.Second {
		t.Errorf("Probe.Timeout: got %v, want 30s", cfg.Probe.Timeout)
	}
	if cfg.Probe.ChunkSize != 16384 {
		t.Errorf("Probe.ChunkSize: got %d, want 16384", cfg.Probe.ChunkSize)
	}
	if cfg.Probe.MaxBytes != 0 {
		t.Errorf("Probe.MaxBytes: got %d, want 0", cfg.Probe.MaxBytes)
	}
	if cfg.Metrics.Addr != "" {
		t.Errorf("Metrics.Addr: got %q, want empty", cfg.Metrics.Addr)
	}
}

func TestNewConfig_FromEnvironment(t *testing.T) {
	t.Setenv("IMAGE_MCP_LOG_LEVEL", "debug")
	t.Setenv("IMAGE_MCP_LOG_FORMAT", "console")
	t.Setenv("IMAGE_MCP_AUTH_TOKEN", "Bearer abc")
	t.Setenv("IMAGE_MCP_COOKIE", "session=xyz")
	t.Setenv("IMAGE_MCP_PROBE_TIMEOUT", "5s")
	t.Setenv("IMAGE_MCP_CHUNK_SIZE", "512")
	t.Setenv("IMAGE_MCP_MAX_BYTES", "1048576")
	t.Setenv("IMAGE_MCP_METRICS_ADDR", ":9090")

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig failed: %v", err)
	}

	if cfg.Log.Level != "debug" || cfg.Log.Format != "console" {
		t.Errorf("Log: got %+v", cfg.Log)
	}
	if cfg.Authorization.Token != "Bearer abc" || cfg.Authorization.Cookie != "session=xyz" {
		t.Errorf("Authorization: got %+v", cfg.Authorization)
	}
	if cfg.Probe.Timeout != 5*time.Second || cfg.Probe.ChunkSize != 512 || cfg.Probe.MaxBytes != 1048576 {
		t.Errorf("Probe: got %+v", cfg.Probe)
	}
	if cfg.Metrics.Addr != ":9090" {
		t.Errorf("Metrics.Addr: got %q", cfg.Metrics.Addr)
	}
}

func TestNewConfig_InvalidValue(t *testing.T) {
	t.Setenv("IMAGE_MCP_PROBE_TIMEOUT", "soon")

	if _, err := NewConfig(); err == nil {
		t.Error("expected an error for an unparsable duration")
	}
}
