package server

import (
	"errors"
	"time"
)

// ErrMissingAddress is returned when server address is not provided.
var ErrMissingAddress = errors.New("server address is required")

// Config holds server configuration with environment variable support.
type Config struct {
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`

	ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" envDefault:"5s"`
	ReadTimeout       time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	IdleTimeout       time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout   time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"30s"`

	MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" envDefault:"1048576"` // 1MB
}

// DefaultConfig returns a Config with the same defaults as the env tags.
func DefaultConfig() Config {
	return Config{
		Addr:              ":8080",
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ShutdownTimeout:   30 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}
}

// NewFromConfig creates a Server from configuration.
// Additional options can override config values.
func NewFromConfig(cfg Config, opts ...Option) (*Server, error) {
	if cfg.Addr == "" {
		return nil, ErrMissingAddress
	}
	s := New(cfg.Addr, append([]Option{withConfig(cfg)}, opts...)...)
	return s, nil
}

func withConfig(cfg Config) Option {
	return func(s *Server) {
		defaults := DefaultConfig()
		if cfg.ReadHeaderTimeout <= 0 {
			cfg.ReadHeaderTimeout = defaults.ReadHeaderTimeout
		}
		if cfg.ShutdownTimeout <= 0 {
			cfg.ShutdownTimeout = defaults.ShutdownTimeout
		}
		if cfg.MaxHeaderBytes <= 0 {
			cfg.MaxHeaderBytes = defaults.MaxHeaderBytes
		}
		s.cfg = cfg
	}
}
