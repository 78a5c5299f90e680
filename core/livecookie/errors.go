package livecookie

import (
	"errors"
	"fmt"
)

var (
	// ErrConnClosed is returned for calls issued on, or pending when, a connection closes.
	ErrConnClosed = errors.New("livecookie: connection closed")

	// ErrUnknownOp is reported to the caller when the peer receives an unsupported operation.
	ErrUnknownOp = errors.New("livecookie: unknown operation")
)

// RemoteError carries an error message reported by the browser side of a connection.
type RemoteError struct {
	Op      string
	Message string
}

// Error implements the error interface.
func (e *RemoteError) Error() string {
	return fmt.Sprintf("livecookie: remote %s failed: %s", e.Op, e.Message)
}
