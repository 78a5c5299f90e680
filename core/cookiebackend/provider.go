package cookiebackend

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/rendercookie/core/cookie"
	"github.com/dmitrymomot/rendercookie/core/livecookie"
	"github.com/dmitrymomot/rendercookie/core/logger"
	"github.com/dmitrymomot/rendercookie/core/prerender"
)

// Provider binds the uniform cookie interface to a backend according to Config.
// It is safe for concurrent use; the Resolvers it returns are not.
type Provider struct {
	cfg     Config
	log     *slog.Logger
	maxSize int
}

// Option configures a Provider.
type Option func(*Provider)

// WithLogger sets the logger passed to the services.
func WithLogger(log *slog.Logger) Option {
	return func(p *Provider) {
		if log != nil {
			p.log = log
		}
	}
}

// WithCookieConfig applies cookie.Config limits to request-time services.
func WithCookieConfig(cfg cookie.Config) Option {
	return func(p *Provider) {
		p.maxSize = cfg.MaxSize
	}
}

// New validates cfg and returns a Provider.
func New(cfg Config, opts ...Option) (*Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := &Provider{
		cfg:     cfg,
		log:     logger.Discard(),
		maxSize: cookie.MaxCookieSize,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Config returns the provider configuration.
func (p *Provider) Config() Config { return p.cfg }

// Resolver captures the request, its response writer and an optional live
// connection. The backend is chosen here, once, and does not change afterwards
// even if the response starts later.
func (p *Provider) Resolver(w http.ResponseWriter, r *http.Request, conn livecookie.Conn) *Resolver {
	backend := p.backend(w)
	p.log.DebugContext(r.Context(), "cookie backend selected",
		logger.Backend(backend.String()),
		logger.Path(r.URL.Path),
	)
	return &Resolver{
		provider: p,
		backend:  backend,
		w:        w,
		r:        r,
		conn:     conn,
	}
}

func (p *Provider) backend(w http.ResponseWriter) Backend {
	switch p.cfg.Mode {
	case ModeServer:
		return BackendRequest
	case ModeBrowser:
		return BackendLive
	default:
		return Select(prerender.Started(w))
	}
}

// Resolver hands out the cookie.Service for one request or live session.
type Resolver struct {
	provider *Provider
	backend  Backend
	w        http.ResponseWriter
	r        *http.Request
	conn     livecookie.Conn
	cached   cookie.Service
}

// Backend reports the backend bound at construction.
func (rs *Resolver) Backend() Backend { return rs.backend }

// Service returns the bound implementation. With ScopeRequest the first instance
// is reused; with ScopeCall every call builds a new one.
func (rs *Resolver) Service() (cookie.Service, error) {
	if rs.cached != nil {
		return rs.cached, nil
	}

	svc, err := rs.build()
	if err != nil {
		return nil, err
	}
	if rs.provider.cfg.Scope == ScopeRequest {
		rs.cached = svc
	}
	return svc, nil
}

func (rs *Resolver) build() (cookie.Service, error) {
	log := rs.provider.log
	switch rs.backend {
	case BackendLive:
		if rs.conn == nil {
			return nil, ErrNoConnection
		}
		return livecookie.New(rs.conn, livecookie.WithLogger(log)), nil
	default:
		return prerender.New(rs.w, rs.r,
			prerender.WithLogger(log),
			prerender.WithMaxSize(rs.provider.maxSize),
		), nil
	}
}
