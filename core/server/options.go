package server

import (
	"log/slog"
	"time"
)

// Option configures server behavior.
type Option func(*Server)

// WithLogger sets a custom logger for server operations.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithShutdownTimeout sets the maximum time to wait for graceful shutdown.
func WithShutdownTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.cfg.ShutdownTimeout = timeout
	}
}

// WithReadTimeout bounds reading a whole request. Upgraded live connections
// are not affected once the handshake completes.
func WithReadTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.cfg.ReadTimeout = timeout
	}
}

// WithIdleTimeout bounds keep-alive idle time.
func WithIdleTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.cfg.IdleTimeout = timeout
	}
}
