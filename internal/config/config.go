package config

import (
	"time"

	"github.com/caarlos0/env/v9"
)

// Prefix is prepended to every variable name below.
const Prefix = "IMAGE_MCP_"

type Config struct {
	Log           Log
	HTTP          HTTP
	Authorization Authorization
	Probe         Probe
	Metrics       Metrics
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTP struct {
	UserAgent string `env:"USER_AGENT" envDefault:"image-size-mcp"`
	Accept    string `env:"ACCEPT" envDefault:"image/*"`
}

type Authorization struct {
	Token  string `env:"AUTH_TOKEN"`
	Cookie string `env:"COOKIE"`
}

type Probe struct {
	// Timeout bounds each probe made on behalf of a tool call.
	Timeout   time.Duration `env:"PROBE_TIMEOUT" envDefault:"30s"`
	ChunkSize int           `env:"CHUNK_SIZE" envDefault:"16384"`
	// MaxBytes stops a probe that has read this much without a result. 0
	// reads to the end of the stream.
	MaxBytes int `env:"MAX_BYTES" envDefault:"0"`
}

type Metrics struct {
	// Addr is where /metrics is served. Empty disables the listener.
	Addr string `env:"METRICS_ADDR"`
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	err := env.ParseWithOptions(cfg, env.Options{Prefix: Prefix})
	if err != nil {
		return cfg, err
	}

	return cfg, nil
}
