package prerender

import (
	"net/http"
	"slices"
	"strings"
)

const setCookieHeader = "Set-Cookie"

// Tracker edits the pending Set-Cookie lines of a response in place.
// It keeps at most one pending write per cookie name when every append
// is preceded by Remove for the same name.
//
// The tracker cannot tell whether the response has already been sent.
// Once the transport has snapshotted the headers, edits silently have no effect.
type Tracker struct {
	header http.Header
}

// NewTracker returns a tracker over the live header map h.
func NewTracker(h http.Header) *Tracker {
	return &Tracker{header: h}
}

// Index returns the position of the first line written for name, or -1.
// A line matches when, trimmed, it starts with "name=".
func (t *Tracker) Index(name string) int {
	prefix := name + "="
	return slices.IndexFunc(t.header[setCookieHeader], func(line string) bool {
		line = strings.TrimSpace(line)
		return line != "" && strings.HasPrefix(line, prefix)
	})
}

// Has reports whether name has a pending write.
func (t *Tracker) Has(name string) bool {
	return t.Index(name) >= 0
}

// Remove drops the pending write for name, keeping the order of the other lines.
// It returns false when there was nothing to remove.
func (t *Tracker) Remove(name string) bool {
	i := t.Index(name)
	if i < 0 {
		return false
	}

	lines := slices.Delete(t.header[setCookieHeader], i, i+1)
	if len(lines) == 0 {
		delete(t.header, setCookieHeader)
		return true
	}
	t.header[setCookieHeader] = lines
	return true
}

// Append adds line as the last pending write.
func (t *Tracker) Append(line string) {
	t.header[setCookieHeader] = append(t.header[setCookieHeader], line)
}

// Lines returns a copy of the pending writes.
func (t *Tracker) Lines() []string {
	return slices.Clone(t.header[setCookieHeader])
}

// Len returns the number of pending writes.
func (t *Tracker) Len() int {
	return len(t.header[setCookieHeader])
}
