package cookie

import "time"

// Option is a functional option for configuring a cookie built with New.
type Option func(*Cookie)

// WithExpires sets an absolute expiration time.
func WithExpires(t time.Time) Option {
	return func(c *Cookie) {
		c.Expires = t
	}
}

// WithMaxAge sets the expiration relative to now.
// Negative values expire the cookie immediately.
func WithMaxAge(d time.Duration) Option {
	return func(c *Cookie) {
		if d < 0 {
			c.Expires = time.Unix(0, 0).UTC()
			return
		}
		c.Expires = time.Now().UTC().Add(d)
	}
}

// WithHTTPOnly prevents script access to the cookie.
func WithHTTPOnly() Option {
	return func(c *Cookie) {
		c.HttpOnly = true
	}
}

// WithSecure restricts the cookie to HTTPS.
// The request-time backend requires HttpOnly alongside it.
func WithSecure() Option {
	return func(c *Cookie) {
		c.Secure = true
	}
}

// WithSameSite sets the SameSite attribute.
func WithSameSite(s SameSite) Option {
	return func(c *Cookie) {
		c.SameSite = s
	}
}
