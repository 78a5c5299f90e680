package prerender

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/rendercookie/core/cookie"
	"github.com/dmitrymomot/rendercookie/core/logger"
)

// Service implements cookie.Service while the response can still be altered.
// Reads reflect the incoming request only; writes are staged as Set-Cookie lines
// and take effect on the browser's next request.
//
// A Service belongs to one request and must not be shared across goroutines.
type Service struct {
	cookies *Collection
	// sent holds the names the browser sent with the request. Unlike cookies
	// it never shrinks, so repeated removals keep their deletion line.
	sent    map[string]struct{}
	tracker *Tracker
	maxSize int
	log     *slog.Logger
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

// WithMaxSize limits the serialized size of a single Set-Cookie line.
func WithMaxSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.maxSize = size
		}
	}
}

// New returns a Service seeded from r's cookies that stages writes on w's headers.
func New(w http.ResponseWriter, r *http.Request, opts ...Option) *Service {
	return NewWithCollection(CollectionFromRequest(r), NewTracker(w.Header()), opts...)
}

// NewWithCollection assembles a Service from an existing collection and tracker.
func NewWithCollection(cookies *Collection, tracker *Tracker, opts ...Option) *Service {
	s := &Service{
		cookies: cookies,
		sent:    make(map[string]struct{}, cookies.Len()),
		tracker: tracker,
		maxSize: cookie.MaxCookieSize,
		log:     logger.Discard(),
	}
	for _, c := range cookies.All() {
		s.sent[c.Name] = struct{}{}
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetAll returns the cookies sent with the request.
// Writes staged during this response are not reflected.
func (s *Service) GetAll(context.Context) ([]cookie.Cookie, error) {
	return s.cookies.All(), nil
}

// Get returns the request cookie named name or cookie.ErrCookieNotFound.
func (s *Service) Get(_ context.Context, name string) (cookie.Cookie, error) {
	c, ok := s.cookies.Get(name)
	if !ok {
		return cookie.Cookie{}, cookie.ErrCookieNotFound
	}
	return c, nil
}

// Set replaces any pending write for c.Name with a new Set-Cookie line.
// The request view is left untouched. Validation happens before the headers change.
func (s *Service) Set(ctx context.Context, c cookie.Cookie) error {
	if err := cookie.ValidateName(c.Name); err != nil {
		return err
	}
	if c.Secure && !c.HttpOnly {
		return &cookie.ValidationError{Name: c.Name, Reason: "secure cookies must also be HttpOnly"}
	}

	line, err := s.serialize(c.HTTP())
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if s.tracker.Remove(c.Name) {
		s.log.DebugContext(ctx, "replaced pending cookie write", logger.CookieName(c.Name))
	}
	s.tracker.Append(line)
	s.log.DebugContext(ctx, "staged cookie write", logger.CookieName(c.Name), logger.Backend("request"))
	return nil
}

// Remove cancels any pending write for name and, when the request carried the cookie,
// stages an expiring write and drops it from the request view. The deletion is staged
// again on every call, so a later Set followed by Remove still expires the cookie.
func (s *Service) Remove(ctx context.Context, name string) error {
	if err := cookie.ValidateName(name); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if s.tracker.Remove(name) {
		s.log.DebugContext(ctx, "cancelled pending cookie write", logger.CookieName(name))
	}
	if _, ok := s.sent[name]; !ok {
		return nil
	}

	line, err := s.serialize(&http.Cookie{
		Name:    name,
		Value:   "",
		Path:    cookie.DefaultPath,
		MaxAge:  -1,
		Expires: time.Unix(0, 0),
	})
	if err != nil {
		return err
	}

	s.tracker.Append(line)
	s.cookies.Remove(name)
	s.log.DebugContext(ctx, "staged cookie deletion", logger.CookieName(name), logger.Backend("request"))
	return nil
}

// Pending reports whether name has a staged Set-Cookie line.
func (s *Service) Pending(name string) bool {
	return s.tracker.Has(name)
}

// serialize renders hc as a Set-Cookie value, rejecting cookies net/http would mangle.
func (s *Service) serialize(hc *http.Cookie) (string, error) {
	if err := hc.Valid(); err != nil {
		return "", &cookie.ValidationError{Name: hc.Name, Reason: err.Error()}
	}
	line := hc.String()
	if len(line) > s.maxSize {
		return "", cookie.ErrCookieTooLarge{Name: hc.Name, Size: len(line), Max: s.maxSize}
	}
	return line, nil
}
