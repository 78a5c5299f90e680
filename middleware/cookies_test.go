package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/rendercookie/core/cookie"
	"github.com/dmitrymomot/rendercookie/core/cookiebackend"
	"github.com/dmitrymomot/rendercookie/core/livecookie"
	"github.com/dmitrymomot/rendercookie/middleware"
)

func newProvider(t *testing.T) *cookiebackend.Provider {
	t.Helper()
	p, err := cookiebackend.New(cookiebackend.DefaultConfig())
	require.NoError(t, err)
	return p
}

func TestCookies_Prerender(t *testing.T) {
	t.Parallel()

	h := middleware.Cookies(newProvider(t))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		svc, ok := middleware.GetCookies(ctx)
		require.True(t, ok)

		backend, ok := middleware.GetCookieBackend(ctx)
		require.True(t, ok)
		assert.Equal(t, cookiebackend.BackendRequest, backend)

		c, err := svc.Get(ctx, "a")
		require.NoError(t, err)
		assert.Equal(t, "1", c.Value)

		require.NoError(t, svc.Set(ctx, cookie.New("a", "9")))
		require.NoError(t, svc.Set(ctx, cookie.New("c", "3")))
		require.NoError(t, svc.Remove(ctx, "b"))

		again, ok := middleware.GetCookies(ctx)
		require.True(t, ok)
		assert.Same(t, svc, again, "request scope reuses the service")

		_, err = again.Get(ctx, "b")
		assert.ErrorIs(t, err, cookie.ErrCookieNotFound)

		_, _ = w.Write([]byte("rendered"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Cookie", "a=1; b=2")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	lines := w.Result().Header.Values("Set-Cookie")
	require.Len(t, lines, 3)
	assert.Equal(t, "a=9; Path=/", lines[0])
	assert.Equal(t, "c=3; Path=/", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "b=; Path=/; Expires=Thu, 01 Jan 1970 00:00:00 GMT"))
}

func TestCookies_NotInstalled(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	_, ok := middleware.GetCookies(ctx)
	assert.False(t, ok)

	_, err := middleware.CookieService(ctx)
	assert.ErrorIs(t, err, middleware.ErrNoCookies)

	_, err = middleware.WithConn(ctx, livecookie.NewBrowserVM())
	assert.ErrorIs(t, err, middleware.ErrNoCookies)

	_, ok = middleware.GetCookieBackend(ctx)
	assert.False(t, ok)
}

func TestCookies_Skip(t *testing.T) {
	t.Parallel()

	h := middleware.CookiesWithConfig(middleware.CookiesConfig{
		Provider: newProvider(t),
		Skip:     func(r *http.Request) bool { return strings.HasPrefix(r.URL.Path, "/static/") },
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := middleware.GetCookies(r.Context())
		assert.False(t, ok)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/static/app.js", nil))

	assert.Panics(t, func() { middleware.CookiesWithConfig(middleware.CookiesConfig{}) })
}

func TestCookies_LiveSession(t *testing.T) {
	t.Parallel()

	type result struct {
		backend cookiebackend.Backend
		seen    []cookie.Cookie
		err     error
	}
	results := make(chan result, 1)

	mux := http.NewServeMux()
	mux.Handle("/live", livecookie.Handler(func(ctx context.Context, conn *livecookie.WSConn) error {
		var res result
		defer func() { results <- res }()

		if _, ok := middleware.GetCookies(ctx); ok {
			// The request was bound before the upgrade; no connection was available then.
			backend, _ := middleware.GetCookieBackend(ctx)
			assert.Equal(t, cookiebackend.BackendRequest, backend)
		}

		ctx, res.err = middleware.WithConn(ctx, conn)
		if res.err != nil {
			return res.err
		}
		res.backend, _ = middleware.GetCookieBackend(ctx)

		svc, err := middleware.CookieService(ctx)
		if err != nil {
			res.err = err
			return err
		}
		if res.seen, res.err = svc.GetAll(ctx); res.err != nil {
			return res.err
		}
		err = svc.Set(ctx, cookie.New("sid", "x", cookie.WithHTTPOnly()))
		assert.ErrorIs(t, err, cookie.ErrUnsupportedFlag)

		res.err = svc.Set(ctx, cookie.New("visits", "2"))
		return res.err
	}))

	srv := httptest.NewServer(middleware.Cookies(newProvider(t))(mux))
	defer srv.Close()

	vm := livecookie.NewBrowserVM()
	require.NoError(t, vm.ApplySetCookie("sid=abc; Path=/; HttpOnly", "visits=1; Path=/"))

	header := http.Header{}
	header.Set("Cookie", vm.CookieHeader())
	ws, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/live", header)
	require.NoError(t, err)
	defer ws.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	go func() { _ = livecookie.ServePeer(ctx, ws, vm) }()

	select {
	case res := <-results:
		require.NoError(t, res.err)
		assert.Equal(t, cookiebackend.BackendLive, res.backend)
		require.Len(t, res.seen, 1)
		assert.Equal(t, "visits", res.seen[0].Name)
	case <-ctx.Done():
		t.Fatal("live session did not finish")
	}

	assert.Equal(t, "sid=abc; visits=2", vm.CookieHeader())
}
