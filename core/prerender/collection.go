package prerender

import (
	"net/http"
	"slices"
	"strings"

	"github.com/dmitrymomot/rendercookie/core/cookie"
)

// Pair is a raw name/value pair taken verbatim from a request Cookie header.
type Pair struct {
	Name  string
	Value string
}

// ParseCookieHeader splits a "name=value; name=value" header into pairs.
// Each pair is split on the first '=' only; values may contain further '=' characters.
// Segments with an empty name are skipped.
func ParseCookieHeader(raw string) []Pair {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	segments := strings.Split(raw, ";")
	pairs := make([]Pair, 0, len(segments))
	for _, segment := range segments {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		name, value, _ := strings.Cut(segment, "=")
		if name == "" {
			continue
		}
		pairs = append(pairs, Pair{Name: name, Value: value})
	}
	return pairs
}

// Collection holds the cookies observed on the incoming request.
// It is populated once and only shrinks through Remove.
type Collection struct {
	cookies map[string]cookie.Cookie
}

// NewCollection builds a collection from raw pairs. The first occurrence of a name wins.
func NewCollection(pairs ...Pair) *Collection {
	c := &Collection{cookies: make(map[string]cookie.Cookie, len(pairs))}
	for _, p := range pairs {
		if _, exists := c.cookies[p.Name]; exists {
			continue
		}
		c.cookies[p.Name] = cookie.Cookie{Name: p.Name, Value: p.Value}
	}
	return c
}

// CollectionFromRequest parses every Cookie header line of r.
func CollectionFromRequest(r *http.Request) *Collection {
	var pairs []Pair
	for _, line := range r.Header.Values("Cookie") {
		pairs = append(pairs, ParseCookieHeader(line)...)
	}
	return NewCollection(pairs...)
}

// All returns a snapshot of every cookie, sorted by name.
// Callers must not depend on the order.
func (c *Collection) All() []cookie.Cookie {
	out := make([]cookie.Cookie, 0, len(c.cookies))
	for _, ck := range c.cookies {
		out = append(out, ck)
	}
	slices.SortFunc(out, func(a, b cookie.Cookie) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out
}

// Get looks up a cookie by its exact name.
func (c *Collection) Get(name string) (cookie.Cookie, bool) {
	ck, ok := c.cookies[name]
	return ck, ok
}

// Has reports whether the request carried a cookie named name.
func (c *Collection) Has(name string) bool {
	_, ok := c.cookies[name]
	return ok
}

// Remove deletes name from the in-memory view only.
func (c *Collection) Remove(name string) {
	delete(c.cookies, name)
}

// Len returns the number of cookies.
func (c *Collection) Len() int {
	return len(c.cookies)
}
