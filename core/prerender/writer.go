package prerender

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
)

// ResponseWriter wraps http.ResponseWriter and records when the response
// starts being sent. After that point Set-Cookie edits no longer reach the client.
type ResponseWriter struct {
	http.ResponseWriter
	status  int
	started bool
}

// NewResponseWriter wraps w. Wrapping an existing *ResponseWriter returns it unchanged.
func NewResponseWriter(w http.ResponseWriter) *ResponseWriter {
	if rw, ok := w.(*ResponseWriter); ok {
		return rw
	}
	return &ResponseWriter{ResponseWriter: w}
}

func (w *ResponseWriter) WriteHeader(status int) {
	if !w.started {
		w.status = status
		w.started = true
		w.ResponseWriter.WriteHeader(status)
	}
}

func (w *ResponseWriter) Write(b []byte) (int, error) {
	if !w.started {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// Flush implements http.Flusher interface if the underlying ResponseWriter supports it.
func (w *ResponseWriter) Flush() {
	if !w.started {
		w.WriteHeader(http.StatusOK)
	}
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Hijack implements http.Hijacker so websocket upgrades work through the wrapper.
// A hijacked connection counts as started.
func (w *ResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("prerender: underlying ResponseWriter does not implement http.Hijacker")
	}
	conn, rw, err := h.Hijack()
	if err == nil {
		w.started = true
		if w.status == 0 {
			w.status = http.StatusSwitchingProtocols
		}
	}
	return conn, rw, err
}

// Unwrap returns the wrapped writer for http.ResponseController.
func (w *ResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// Started returns true once the status line has been written or the connection hijacked.
func (w *ResponseWriter) Started() bool {
	return w.started
}

// Status returns the HTTP status code, or 0 before the response started.
func (w *ResponseWriter) Status() int {
	return w.status
}

// Started reports whether w has begun sending its response.
// Writers that do not track this are reported as not started.
func Started(w http.ResponseWriter) bool {
	if s, ok := w.(interface{ Started() bool }); ok {
		return s.Started()
	}
	return false
}
