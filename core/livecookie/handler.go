package livecookie

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dmitrymomot/rendercookie/core/logger"
)

type handlerConfig struct {
	upgrader       *websocket.Upgrader
	responseHeader http.Header
	connOpts       []ConnOption
	log            *slog.Logger
	onError        func(context.Context, error)
}

// HandlerOption configures Handler.
type HandlerOption func(*handlerConfig)

// WithReadBuffer sets the upgrader read buffer size.
func WithReadBuffer(size int) HandlerOption {
	return func(c *handlerConfig) {
		c.upgrader.ReadBufferSize = size
	}
}

// WithWriteBuffer sets the upgrader write buffer size.
func WithWriteBuffer(size int) HandlerOption {
	return func(c *handlerConfig) {
		c.upgrader.WriteBufferSize = size
	}
}

// WithHandshakeTimeout bounds the websocket handshake.
func WithHandshakeTimeout(timeout time.Duration) HandlerOption {
	return func(c *handlerConfig) {
		c.upgrader.HandshakeTimeout = timeout
	}
}

// WithOriginCheck replaces the default same-origin check.
func WithOriginCheck(fn func(r *http.Request) bool) HandlerOption {
	return func(c *handlerConfig) {
		c.upgrader.CheckOrigin = fn
	}
}

// WithAllowAnyOrigin accepts connections from any origin.
func WithAllowAnyOrigin() HandlerOption {
	return func(c *handlerConfig) {
		c.upgrader.CheckOrigin = func(r *http.Request) bool {
			return true
		}
	}
}

// WithUpgradeHeaders adds headers to the upgrade response.
func WithUpgradeHeaders(header http.Header) HandlerOption {
	return func(c *handlerConfig) {
		c.responseHeader = header
	}
}

// WithConnOptions passes options to every WSConn created by the handler.
func WithConnOptions(opts ...ConnOption) HandlerOption {
	return func(c *handlerConfig) {
		c.connOpts = append(c.connOpts, opts...)
	}
}

// WithHandlerLogger sets the logger for upgrade and session events.
func WithHandlerLogger(log *slog.Logger) HandlerOption {
	return func(c *handlerConfig) {
		if log != nil {
			c.log = log
		}
	}
}

// WithErrorHandler is called with upgrade, session and transport errors.
func WithErrorHandler(fn func(context.Context, error)) HandlerOption {
	return func(c *handlerConfig) {
		c.onError = fn
	}
}

// Handler upgrades the request to a live cookie connection and runs session
// for its lifetime. The connection is closed when session returns.
func Handler(session func(context.Context, *WSConn) error, opts ...HandlerOption) http.Handler {
	cfg := &handlerConfig{
		upgrader: &websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		log: logger.Discard(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	report := func(ctx context.Context, err error) {
		cfg.log.ErrorContext(ctx, "live cookie session failed", logger.Error(err))
		if cfg.onError != nil {
			cfg.onError(ctx, err)
		}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := cfg.upgrader.Upgrade(w, r, cfg.responseHeader)
		if err != nil {
			// Upgrade has already replied to the client.
			report(r.Context(), fmt.Errorf("livecookie: upgrade: %w", err))
			return
		}

		conn := NewWSConn(ws, append([]ConnOption{WithConnLogger(cfg.log)}, cfg.connOpts...)...)
		ctx, cancel := context.WithCancel(r.Context())
		defer cancel()

		served := make(chan error, 1)
		go func() { served <- conn.Serve(ctx) }()

		if err := session(ctx, conn); err != nil {
			report(ctx, err)
		}

		_ = conn.Close()
		if err := <-served; err != nil {
			report(ctx, err)
		}
	})
}

// ClientScript returns the browser-side JavaScript answering the protocol with
// document.cookie for a live endpoint at url.
func ClientScript(url string) string {
	quoted, _ := json.Marshal(url)
	return fmt.Sprintf(clientScript, quoted)
}

const clientScript = `(function (url) {
  var ws = new WebSocket(url);
  ws.onmessage = function (ev) {
    var msg = JSON.parse(ev.data);
    var res = { id: msg.id };
    try {
      if (msg.op === "read") {
        res.result = document.cookie;
      } else if (msg.op === "write") {
        document.cookie = msg.arg;
      } else {
        res.error = "unknown operation: " + msg.op;
      }
    } catch (e) {
      res.error = String(e);
    }
    ws.send(JSON.stringify(res));
  };
})(%s);`
