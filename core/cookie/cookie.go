package cookie

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	// MaxCookieSize is the maximum size for a serialized cookie (4KB).
	MaxCookieSize = 4096
	// DefaultPath is the path every write is scoped to.
	DefaultPath = "/"
)

// SameSite controls whether a cookie is sent with cross-site requests.
// The zero value leaves the attribute out so the browser applies its default.
type SameSite int

const (
	// SameSiteDefault omits the SameSite attribute.
	SameSiteDefault SameSite = iota
	// SameSiteNone disables same-site restrictions.
	SameSiteNone
	// SameSiteLax sends the cookie with same-site requests and top-level cross-site navigations.
	SameSiteLax
	// SameSiteStrict sends the cookie with same-site requests only.
	SameSiteStrict
)

// Wire returns the attribute value written after "SameSite=".
// SameSiteDefault returns an empty string, meaning the attribute is omitted.
// Panics on values outside the declared constants.
func (s SameSite) Wire() string {
	switch s {
	case SameSiteDefault:
		return ""
	case SameSiteNone:
		return "None"
	case SameSiteLax:
		return "Lax"
	case SameSiteStrict:
		return "Strict"
	default:
		panic(fmt.Sprintf("cookie: invalid SameSite value %d", int(s)))
	}
}

// HTTP maps the policy onto net/http's SameSite enum.
// Panics on values outside the declared constants.
func (s SameSite) HTTP() http.SameSite {
	switch s {
	case SameSiteDefault:
		return http.SameSiteDefaultMode
	case SameSiteNone:
		return http.SameSiteNoneMode
	case SameSiteLax:
		return http.SameSiteLaxMode
	case SameSiteStrict:
		return http.SameSiteStrictMode
	default:
		panic(fmt.Sprintf("cookie: invalid SameSite value %d", int(s)))
	}
}

// String implements fmt.Stringer.
func (s SameSite) String() string {
	if s == SameSiteDefault {
		return "Default"
	}
	return s.Wire()
}

// ParseSameSite converts a case-insensitive policy name into a SameSite value.
// An empty string and "default" both map to SameSiteDefault.
func ParseSameSite(s string) (SameSite, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return SameSiteDefault, nil
	case "none":
		return SameSiteNone, nil
	case "lax":
		return SameSiteLax, nil
	case "strict":
		return SameSiteStrict, nil
	default:
		return SameSiteDefault, fmt.Errorf("invalid SameSite value: %q", s)
	}
}

// Cookie is a browser cookie as seen by application code.
type Cookie struct {
	Name  string
	Value string
	// Expires is the absolute expiration time. Zero means a session cookie.
	Expires  time.Time
	HttpOnly bool
	Secure   bool
	SameSite SameSite
}

// New builds a cookie from a name, a value and optional attributes.
func New(name, value string, opts ...Option) Cookie {
	c := Cookie{Name: name, Value: value}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Equal reports whether two cookies carry the same name, value and expiration.
// Flags are ignored.
func (c Cookie) Equal(other Cookie) bool {
	return c.Name == other.Name && c.Value == other.Value && c.Expires.Equal(other.Expires)
}

// IsSession reports whether the cookie has no explicit expiration.
func (c Cookie) IsSession() bool {
	return c.Expires.IsZero()
}

// HTTP converts the cookie into a net/http cookie scoped to DefaultPath.
func (c Cookie) HTTP() *http.Cookie {
	return &http.Cookie{
		Name:     c.Name,
		Value:    c.Value,
		Path:     DefaultPath,
		Expires:  c.Expires,
		HttpOnly: c.HttpOnly,
		Secure:   c.Secure,
		SameSite: c.SameSite.HTTP(),
	}
}

// Service reads, writes and deletes cookies regardless of where the code runs.
//
// Get returns ErrCookieNotFound when the cookie does not exist.
// Remove of an unknown cookie is a no-op.
type Service interface {
	GetAll(ctx context.Context) ([]Cookie, error)
	Get(ctx context.Context, name string) (Cookie, error)
	Set(ctx context.Context, c Cookie) error
	Remove(ctx context.Context, name string) error
}

// ValidateName returns a ValidationError when name is empty or blank.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Name: name, Reason: "name is required"}
	}
	return nil
}
