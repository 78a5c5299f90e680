package livecookie

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/dmitrymomot/rendercookie/core/logger"
	"github.com/dmitrymomot/rendercookie/pkg/async"
)

// Operations understood by the browser side of a connection.
const (
	OpRead  = "read"
	OpWrite = "write"
)

// Message is the JSON frame exchanged over the websocket in both directions.
// Requests carry Op and Arg; replies echo ID and carry Result or Error.
type Message struct {
	ID     string `json:"id"`
	Op     string `json:"op,omitempty"`
	Arg    string `json:"arg,omitempty"`
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// WSConn implements Conn over a gorilla websocket connection.
// Serve must be running for calls to complete.
type WSConn struct {
	id           string
	ws           *websocket.Conn
	log          *slog.Logger
	writeTimeout time.Duration
	callTimeout  time.Duration

	writeMu sync.Mutex

	mu      sync.Mutex
	pending map[string]async.Resolver[Message]
	closed  bool

	done      chan struct{}
	closeOnce sync.Once
}

var _ Conn = (*WSConn)(nil)

// ConnOption configures a WSConn.
type ConnOption func(*WSConn)

// WithConnLogger sets the logger for connection events.
func WithConnLogger(log *slog.Logger) ConnOption {
	return func(c *WSConn) {
		if log != nil {
			c.log = log
		}
	}
}

// WithWriteTimeout bounds each frame write when the call context has no deadline.
func WithWriteTimeout(d time.Duration) ConnOption {
	return func(c *WSConn) {
		c.writeTimeout = d
	}
}

// WithCallTimeout bounds the wait for a reply when the call context has no
// deadline. Zero waits until the context is done or the connection closes.
func WithCallTimeout(d time.Duration) ConnOption {
	return func(c *WSConn) {
		c.callTimeout = d
	}
}

// NewWSConn wraps an established websocket connection.
func NewWSConn(ws *websocket.Conn, opts ...ConnOption) *WSConn {
	c := &WSConn{
		id:           uuid.NewString(),
		ws:           ws,
		log:          logger.Discard(),
		writeTimeout: 10 * time.Second,
		callTimeout:  30 * time.Second,
		pending:      make(map[string]async.Resolver[Message]),
		done:         make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ID returns the connection id used in log records.
func (c *WSConn) ID() string { return c.id }

// Done is closed once the connection is closed.
func (c *WSConn) Done() <-chan struct{} { return c.done }

// ReadCookies implements Conn.
func (c *WSConn) ReadCookies(ctx context.Context) (string, error) {
	return c.call(ctx, OpRead, "")
}

// WriteCookie implements Conn.
func (c *WSConn) WriteCookie(ctx context.Context, assignment string) error {
	_, err := c.call(ctx, OpWrite, assignment)
	return err
}

func (c *WSConn) call(ctx context.Context, op, arg string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	req := Message{ID: uuid.NewString(), Op: op, Arg: arg}
	future, resolve := async.NewPromise[Message]()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return "", ErrConnClosed
	}
	c.pending[req.ID] = resolve
	c.mu.Unlock()

	if err := c.write(ctx, req); err != nil {
		c.forget(req.ID)
		return "", fmt.Errorf("livecookie: send %s: %w", op, err)
	}

	resp, err := c.await(ctx, future)
	if err != nil {
		c.forget(req.ID)
		if errors.Is(err, async.ErrTimeout) {
			return "", fmt.Errorf("livecookie: %s reply: %w", op, err)
		}
		return "", err
	}
	if resp.Error != "" {
		return "", &RemoteError{Op: op, Message: resp.Error}
	}
	return resp.Result, nil
}

func (c *WSConn) await(ctx context.Context, future *async.Future[Message]) (Message, error) {
	if _, ok := ctx.Deadline(); ok || c.callTimeout <= 0 {
		return future.AwaitContext(ctx)
	}
	return future.AwaitWithTimeout(ctx, c.callTimeout)
}

func (c *WSConn) write(ctx context.Context, msg Message) error {
	deadline, ok := ctx.Deadline()
	if !ok && c.writeTimeout > 0 {
		deadline = time.Now().Add(c.writeTimeout)
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	_ = c.ws.SetWriteDeadline(deadline)
	return c.ws.WriteJSON(msg)
}

func (c *WSConn) forget(id string) {
	c.mu.Lock()
	delete(c.pending, id)
	c.mu.Unlock()
}

// Serve reads replies and completes pending calls until the connection closes
// or ctx is done. A normal close by the peer returns nil.
func (c *WSConn) Serve(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() { _ = c.Close() })
	defer stop()
	defer func() { _ = c.Close() }()

	c.log.DebugContext(ctx, "live connection opened", logger.ConnID(c.id))

	for {
		var msg Message
		if err := c.ws.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil || isClosed(err) {
				c.log.DebugContext(ctx, "live connection closed", logger.ConnID(c.id))
				return nil
			}
			var syntaxErr *json.SyntaxError
			if errors.As(err, &syntaxErr) {
				c.log.WarnContext(ctx, "dropping malformed frame", logger.ConnID(c.id), logger.Error(err))
				continue
			}
			return fmt.Errorf("livecookie: read frame: %w", err)
		}

		c.mu.Lock()
		resolve, ok := c.pending[msg.ID]
		delete(c.pending, msg.ID)
		c.mu.Unlock()

		if !ok {
			c.log.WarnContext(ctx, "reply for unknown request", logger.ConnID(c.id), slog.String("request_id", msg.ID))
			continue
		}
		resolve(msg, nil)
	}
}

// Close closes the connection and fails every pending call with ErrConnClosed.
func (c *WSConn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		pending := c.pending
		c.pending = nil
		c.mu.Unlock()

		for _, resolve := range pending {
			resolve(Message{}, ErrConnClosed)
		}

		_ = c.ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))

		err = c.ws.Close()
		close(c.done)
	})
	return err
}

func isClosed(err error) bool {
	return websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) ||
		errors.Is(err, net.ErrClosed)
}

// ServePeer answers requests arriving on ws using target, acting as the browser
// side of the protocol. It returns when the connection closes or ctx is done.
func ServePeer(ctx context.Context, ws *websocket.Conn, target Conn) error {
	stop := context.AfterFunc(ctx, func() { _ = ws.Close() })
	defer stop()

	for {
		var req Message
		if err := ws.ReadJSON(&req); err != nil {
			if ctx.Err() != nil || isClosed(err) {
				return nil
			}
			return fmt.Errorf("livecookie: read request: %w", err)
		}

		resp := Message{ID: req.ID}
		switch req.Op {
		case OpRead:
			v, err := target.ReadCookies(ctx)
			resp.Result = v
			if err != nil {
				resp.Error = err.Error()
			}
		case OpWrite:
			if err := target.WriteCookie(ctx, req.Arg); err != nil {
				resp.Error = err.Error()
			}
		default:
			resp.Error = fmt.Sprintf("%v: %q", ErrUnknownOp, req.Op)
		}

		if err := ws.WriteJSON(resp); err != nil {
			return fmt.Errorf("livecookie: write reply: %w", err)
		}
	}
}
