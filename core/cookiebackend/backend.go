package cookiebackend

// Backend identifies which cookie.Service implementation serves a request.
type Backend int

const (
	// BackendRequest stages Set-Cookie headers on a response that has not started.
	BackendRequest Backend = iota
	// BackendLive talks to the browser over a live connection.
	BackendLive
)

// String returns the name used in logs.
func (b Backend) String() string {
	switch b {
	case BackendRequest:
		return "request"
	case BackendLive:
		return "live"
	default:
		return "unknown"
	}
}

// Select picks the backend for a request whose response has or has not started.
// While headers can still be altered the request-time backend is used.
func Select(started bool) Backend {
	if started {
		return BackendLive
	}
	return BackendRequest
}
