package livecookie

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/rendercookie/core/cookie"
	"github.com/dmitrymomot/rendercookie/core/logger"
)

// Service implements cookie.Service over a live browser connection.
// Nothing is cached: every call is a round trip and the browser is the source of truth.
type Service struct {
	conn Conn
	log  *slog.Logger
}

var _ cookie.Service = (*Service)(nil)

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for debug output.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// New returns a Service issuing calls over conn.
func New(conn Conn, opts ...Option) *Service {
	s := &Service{
		conn: conn,
		log:  logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetAll reads every cookie visible to script in a single round trip.
func (s *Service) GetAll(ctx context.Context) ([]cookie.Cookie, error) {
	raw, err := s.conn.ReadCookies(ctx)
	if err != nil {
		return nil, fmt.Errorf("livecookie: read cookies: %w", err)
	}
	return parseCookieString(raw), nil
}

// Get returns the cookie named name or cookie.ErrCookieNotFound.
func (s *Service) Get(ctx context.Context, name string) (cookie.Cookie, error) {
	all, err := s.GetAll(ctx)
	if err != nil {
		return cookie.Cookie{}, err
	}
	for _, c := range all {
		if c.Name == name {
			return c, nil
		}
	}
	return cookie.Cookie{}, cookie.ErrCookieNotFound
}

// Set writes c through the connection. HttpOnly and Secure cannot be set from
// script and are rejected before any call is issued.
func (s *Service) Set(ctx context.Context, c cookie.Cookie) error {
	if err := cookie.ValidateName(c.Name); err != nil {
		return err
	}
	if c.HttpOnly {
		return &cookie.CapabilityError{Name: c.Name, Flag: "HttpOnly"}
	}
	if c.Secure {
		return &cookie.CapabilityError{Name: c.Name, Flag: "Secure"}
	}

	if err := s.conn.WriteCookie(ctx, setAssignment(c)); err != nil {
		return fmt.Errorf("livecookie: write cookie %q: %w", c.Name, err)
	}
	s.log.DebugContext(ctx, "wrote cookie", logger.CookieName(c.Name), logger.Backend("live"))
	return nil
}

// Remove expires name in the browser. Removing an unknown cookie is harmless.
func (s *Service) Remove(ctx context.Context, name string) error {
	if err := cookie.ValidateName(name); err != nil {
		return err
	}

	if err := s.conn.WriteCookie(ctx, removeAssignment(name)); err != nil {
		return fmt.Errorf("livecookie: remove cookie %q: %w", name, err)
	}
	s.log.DebugContext(ctx, "removed cookie", logger.CookieName(name), logger.Backend("live"))
	return nil
}
