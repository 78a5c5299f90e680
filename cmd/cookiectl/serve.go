package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/rendercookie/core/config"
	"github.com/dmitrymomot/rendercookie/core/cookie"
	"github.com/dmitrymomot/rendercookie/core/cookiebackend"
	"github.com/dmitrymomot/rendercookie/core/health"
	"github.com/dmitrymomot/rendercookie/core/livecookie"
	"github.com/dmitrymomot/rendercookie/core/logger"
	"github.com/dmitrymomot/rendercookie/core/server"
	"github.com/dmitrymomot/rendercookie/middleware"
)

const (
	livePath      = "/live"
	visitsCookie  = "visits"
	sessionCookie = "sid"
	liveCookie    = "live_seen"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a demo server that sets cookies during prerender and over a live connection",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		var (
			srvCfg    server.Config
			cookieCfg cookie.Config
			backend   cookiebackend.Config
		)
		if err := config.Load(&srvCfg); err != nil {
			return err
		}
		if err := config.Load(&cookieCfg); err != nil {
			return err
		}
		if err := config.Load(&backend); err != nil {
			return err
		}
		if serveAddr != "" {
			srvCfg.Addr = serveAddr
		}

		provider, err := cookiebackend.New(backend,
			cookiebackend.WithLogger(log),
			cookiebackend.WithCookieConfig(cookieCfg),
		)
		if err != nil {
			return err
		}

		srv, err := server.NewFromConfig(srvCfg, server.WithLogger(log))
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		d := demo{codec: cookieCfg.CodecOptions(), log: log}
		return srv.Run(ctx, d.routes(provider))
	},
}

// demo is the hybrid page plus its live endpoint.
type demo struct {
	codec cookie.CodecOptions
	log   *slog.Logger
}

func (d demo) routes(provider *cookiebackend.Provider) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", d.page)
	mux.Handle("GET "+livePath, livecookie.Handler(d.session, livecookie.WithHandlerLogger(d.log)))
	mux.Handle("GET /health/live", health.Liveness())
	mux.Handle("GET /health/ready", health.Readiness(d.log, func(context.Context) error {
		return provider.Config().Validate()
	}))

	return chain(mux,
		middleware.RequestID(),
		middleware.Cookies(provider),
		middleware.LoggingWithLogger(d.log),
	)
}

// page runs during prerender. Cookies set here become Set-Cookie headers.
func (d demo) page(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	svc, err := middleware.CookieService(ctx)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	visits, err := d.visits(ctx, svc)
	if err != nil {
		d.log.WarnContext(ctx, "resetting visits cookie", logger.Error(err))
	}
	visits++

	tc, err := cookie.NewTyped(visitsCookie, visits, d.codec,
		cookie.WithMaxAge(30*24*time.Hour),
		cookie.WithSameSite(cookie.SameSiteLax),
	)
	if err == nil {
		err = cookie.SetTyped(ctx, svc, tc)
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if _, err := svc.Get(ctx, sessionCookie); errors.Is(err, cookie.ErrCookieNotFound) {
		sid := cookie.New(sessionCookie, uuid.NewString(), cookie.WithHTTPOnly(), cookie.WithSameSite(cookie.SameSiteLax))
		if err := svc.Set(ctx, sid); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	scheme := "ws"
	if r.TLS != nil {
		scheme = "wss"
	}
	page := pageView(visits, livecookie.ClientScript(scheme+"://"+r.Host+livePath))
	if err := renderHTML(w, r, http.StatusOK, page); err != nil {
		d.log.ErrorContext(ctx, "render page", logger.Error(err))
	}
}

// session runs after the upgrade. Cookies set here go through document.cookie.
func (d demo) session(ctx context.Context, conn *livecookie.WSConn) error {
	ctx, err := middleware.WithConn(ctx, conn)
	if err != nil {
		return err
	}
	svc, err := middleware.CookieService(ctx)
	if err != nil {
		return err
	}

	visits, err := d.visits(ctx, svc)
	if err != nil {
		return err
	}
	d.log.InfoContext(ctx, "live session started", logger.ConnID(conn.ID()), slog.Int("visits", visits))

	return svc.Set(ctx, cookie.New(liveCookie, time.Now().UTC().Format(time.RFC3339),
		cookie.WithMaxAge(time.Hour),
		cookie.WithSameSite(cookie.SameSiteLax),
	))
}

func (d demo) visits(ctx context.Context, svc cookie.Service) (int, error) {
	tc, err := cookie.GetTyped[int](ctx, svc, visitsCookie, d.codec)
	if errors.Is(err, cookie.ErrCookieNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	v, _ := tc.Value()
	return v, nil
}

// chain applies middlewares so the first one listed runs first.
func chain(h http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides HTTP_ADDR)")
	rootCmd.AddCommand(serveCmd)
}
