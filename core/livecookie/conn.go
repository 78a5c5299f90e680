package livecookie

import "context"

// Conn is the primitive a live browser connection exposes.
// Implementations perform exactly one round trip per call and never retry.
type Conn interface {
	// ReadCookies returns the browser's document.cookie string.
	ReadCookies(ctx context.Context) (string, error)
	// WriteCookie performs one document.cookie assignment.
	WriteCookie(ctx context.Context, assignment string) error
}
