package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/dmitrymomot/rendercookie/core/cookie"
	"github.com/dmitrymomot/rendercookie/core/cookiebackend"
	"github.com/dmitrymomot/rendercookie/core/livecookie"
	"github.com/dmitrymomot/rendercookie/core/logger"
	"github.com/dmitrymomot/rendercookie/core/prerender"
)

// ErrNoCookies is returned when the Cookies middleware did not run for a request.
var ErrNoCookies = errors.New("middleware: cookies middleware not installed")

// cookiesContextKey is used as a key for storing cookie state in request context.
type cookiesContextKey struct{}

// cookieState is the per-request value stored in context.
type cookieState struct {
	provider *cookiebackend.Provider
	w        http.ResponseWriter
	r        *http.Request
	resolver *cookiebackend.Resolver
	// rebound is the latest resolver installed by WithConn for this request.
	rebound atomic.Pointer[cookiebackend.Resolver]
}

// CookiesConfig configures the cookies middleware.
type CookiesConfig struct {
	// Provider binds requests to a cookie backend (required)
	Provider *cookiebackend.Provider
	// Logger receives resolution failures (default: discard)
	Logger *slog.Logger
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(r *http.Request) bool
}

// Cookies creates a cookies middleware with default configuration.
func Cookies(provider *cookiebackend.Provider) func(http.Handler) http.Handler {
	return CookiesWithConfig(CookiesConfig{Provider: provider})
}

// CookiesWithConfig creates a cookies middleware with custom configuration.
// It wraps the response writer so the backend can tell whether the response has
// started, and stores a resolver in the request context.
func CookiesWithConfig(cfg CookiesConfig) func(http.Handler) http.Handler {
	if cfg.Provider == nil {
		panic("middleware: cookies provider is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Discard()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Skip != nil && cfg.Skip(r) {
				next.ServeHTTP(w, r)
				return
			}

			rw := prerender.NewResponseWriter(w)
			state := &cookieState{provider: cfg.Provider, w: rw, r: r}
			state.resolver = cfg.Provider.Resolver(rw, r, nil)

			next.ServeHTTP(rw, r.WithContext(context.WithValue(r.Context(), cookiesContextKey{}, state)))
		})
	}
}

// GetCookies returns the cookie service bound to the request.
// It reports false when the middleware did not run or the service cannot be resolved.
func GetCookies(ctx context.Context) (cookie.Service, bool) {
	svc, err := CookieService(ctx)
	return svc, err == nil
}

// CookieService is like GetCookies but reports why no service is available.
func CookieService(ctx context.Context) (cookie.Service, error) {
	state, ok := ctx.Value(cookiesContextKey{}).(*cookieState)
	if !ok {
		return nil, ErrNoCookies
	}
	return state.resolver.Service()
}

// GetCookieBackend reports the backend bound to the request.
func GetCookieBackend(ctx context.Context) (cookiebackend.Backend, bool) {
	state, ok := ctx.Value(cookiesContextKey{}).(*cookieState)
	if !ok {
		return 0, false
	}
	return state.resolver.Backend(), true
}

// WithConn returns a context whose cookie service uses conn. It is meant for live
// sessions that start after the request was upgraded; the backend is selected
// again because the response has started by then.
func WithConn(ctx context.Context, conn livecookie.Conn) (context.Context, error) {
	state, ok := ctx.Value(cookiesContextKey{}).(*cookieState)
	if !ok {
		return ctx, ErrNoCookies
	}
	next := &cookieState{
		provider: state.provider,
		w:        state.w,
		r:        state.r,
		resolver: state.provider.Resolver(state.w, state.r, conn),
	}
	state.rebound.Store(next.resolver)
	return context.WithValue(ctx, cookiesContextKey{}, next), nil
}

// servedBackend reports the backend that served the request last: the one bound
// by WithConn when a live session was attached, otherwise the request binding.
func servedBackend(ctx context.Context) (cookiebackend.Backend, bool) {
	state, ok := ctx.Value(cookiesContextKey{}).(*cookieState)
	if !ok {
		return 0, false
	}
	if rs := state.rebound.Load(); rs != nil {
		return rs.Backend(), true
	}
	return state.resolver.Backend(), true
}
