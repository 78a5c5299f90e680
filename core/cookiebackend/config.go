package cookiebackend

import (
	"errors"
	"fmt"
)

// Mode controls how the backend is chosen.
type Mode string

const (
	// ModeHybrid chooses per request with Select.
	ModeHybrid Mode = "hybrid"
	// ModeServer always uses the request-time backend.
	ModeServer Mode = "server"
	// ModeBrowser always uses the live backend.
	ModeBrowser Mode = "browser"
)

// Scope controls how long a resolved service instance lives.
type Scope string

const (
	// ScopeRequest resolves one instance per request or live session.
	ScopeRequest Scope = "request"
	// ScopeCall builds a fresh instance on every resolve.
	ScopeCall Scope = "call"
)

// Configuration and resolution errors.
var (
	ErrInvalidMode  = errors.New("cookiebackend: invalid mode")
	ErrInvalidScope = errors.New("cookiebackend: invalid scope")
	ErrNoConnection = errors.New("cookiebackend: live backend selected but no connection is available")
)

// Config holds the registration settings.
type Config struct {
	Mode  Mode  `env:"COOKIE_MODE" envDefault:"hybrid"`
	Scope Scope `env:"COOKIE_SCOPE" envDefault:"request"`
}

// DefaultConfig returns the hybrid, request-scoped configuration.
func DefaultConfig() Config {
	return Config{Mode: ModeHybrid, Scope: ScopeRequest}
}

// Validate checks Mode and Scope.
func (c Config) Validate() error {
	switch c.Mode {
	case ModeHybrid, ModeServer, ModeBrowser:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidMode, c.Mode)
	}
	switch c.Scope {
	case ScopeRequest, ScopeCall:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidScope, c.Scope)
	}
	return nil
}
