package livecookie

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrymomot/rendercookie/core/cookie"
)

// expiredDate is the expires attribute used to delete a cookie from script.
const expiredDate = "Thu, 01 Jan 1970 00:00:00 GMT"

// setAssignment renders c as one document.cookie assignment.
func setAssignment(c cookie.Cookie) string {
	var b strings.Builder
	b.WriteString(encodeComponent(c.Name))
	b.WriteByte('=')
	b.WriteString(encodeComponent(c.Value))
	if !c.Expires.IsZero() {
		b.WriteString("; expires=")
		b.WriteString(c.Expires.UTC().Format(http.TimeFormat))
	}
	b.WriteString("; path=")
	b.WriteString(cookie.DefaultPath)
	if s := c.SameSite.Wire(); s != "" {
		b.WriteString("; SameSite=")
		b.WriteString(s)
	}
	return b.String()
}

// removeAssignment renders an assignment that expires name immediately.
func removeAssignment(name string) string {
	return encodeComponent(name) + "=; expires=" + expiredDate + "; path=" + cookie.DefaultPath
}

// parseCookieString parses a document.cookie string. Each pair is split on the
// first '=' only because values may contain further '=' characters.
func parseCookieString(raw string) []cookie.Cookie {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ";")
	out := make([]cookie.Cookie, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, value, _ := strings.Cut(part, "=")
		name = decodeComponent(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		out = append(out, cookie.New(name, decodeComponent(value)))
	}
	return out
}

// encodeComponent escapes s the way encodeURIComponent does in the browser.
func encodeComponent(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		const hex = "0123456789ABCDEF"
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}

// decodeComponent reverses encodeComponent. Text that is not a valid escape
// sequence, e.g. a cookie written by other scripts, is returned unchanged.
func decodeComponent(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}
	v, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return v
}
