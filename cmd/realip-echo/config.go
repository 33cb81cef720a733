package main

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	logFormatText    = "text"
	logFormatJSON    = "json"
	logFormatZerolog = "zerolog"
)

type config struct {
	Addr            string        `env:"REALIP_ADDR" envDefault:":8080"`
	LogFormat       string        `env:"REALIP_LOG_FORMAT" envDefault:"text"`
	PeerFallback    bool          `env:"REALIP_PEER_FALLBACK" envDefault:"true"`
	ShutdownTimeout time.Duration `env:"REALIP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

func loadConfig(environ map[string]string) (config, error) {
	var cfg config
	opts := env.Options{}
	if environ != nil {
		opts.Environment = environ
	}

	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return config{}, fmt.Errorf("parse environment: %w", err)
	}

	switch cfg.LogFormat {
	case logFormatText, logFormatJSON, logFormatZerolog:
	default:
		return config{}, fmt.Errorf("unsupported log format %q", cfg.LogFormat)
	}
	if cfg.ShutdownTimeout <= 0 {
		return config{}, fmt.Errorf("shutdown timeout must be > 0, got %s", cfg.ShutdownTimeout)
	}

	return cfg, nil
}
