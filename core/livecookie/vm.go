package livecookie

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dop251/goja"

	"github.com/dmitrymomot/rendercookie/core/cookie"
)

// jarEntry is one cookie held by the BrowserVM.
type jarEntry struct {
	name     string
	value    string
	expires  time.Time
	httpOnly bool
	secure   bool
	sameSite cookie.SameSite
}

func (e jarEntry) expired(now time.Time) bool {
	return !e.expires.IsZero() && !e.expires.After(now)
}

// BrowserVM is a headless stand-in for a browser tab. It runs script in a goja
// runtime whose document.cookie behaves like the browser property and implements
// Conn, so a live Service can run without a real browser.
type BrowserVM struct {
	mu  sync.Mutex
	rt  *goja.Runtime
	jar []jarEntry // creation order
	now func() time.Time
}

var _ Conn = (*BrowserVM)(nil)

// VMOption configures a BrowserVM.
type VMOption func(*BrowserVM)

// WithClock sets the time source used for expiry.
func WithClock(now func() time.Time) VMOption {
	return func(vm *BrowserVM) {
		if now != nil {
			vm.now = now
		}
	}
}

// NewBrowserVM returns a VM with an empty cookie jar.
func NewBrowserVM(opts ...VMOption) *BrowserVM {
	vm := &BrowserVM{
		rt:  goja.New(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(vm)
	}

	doc := vm.rt.NewObject()
	_ = doc.DefineAccessorProperty("cookie",
		vm.rt.ToValue(vm.documentCookie),
		vm.rt.ToValue(vm.assignCookie),
		goja.FLAG_FALSE, goja.FLAG_TRUE)
	_ = vm.rt.Set("document", doc)

	return vm
}

// Eval runs script and returns its completion value exported to Go.
// A done ctx interrupts a running script.
func (vm *BrowserVM) Eval(ctx context.Context, script string) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vm.mu.Lock()
	defer vm.mu.Unlock()

	stop := context.AfterFunc(ctx, func() { vm.rt.Interrupt(ctx.Err()) })
	defer func() {
		stop()
		vm.rt.ClearInterrupt()
	}()

	v, err := vm.rt.RunString(script)
	if err != nil {
		return nil, fmt.Errorf("livecookie: eval: %w", err)
	}
	return v.Export(), nil
}

// ReadCookies implements Conn by evaluating document.cookie.
func (vm *BrowserVM) ReadCookies(ctx context.Context) (string, error) {
	v, err := vm.Eval(ctx, "document.cookie")
	if err != nil {
		return "", err
	}
	s, _ := v.(string)
	return s, nil
}

// WriteCookie implements Conn by assigning to document.cookie.
func (vm *BrowserVM) WriteCookie(ctx context.Context, assignment string) error {
	lit, err := json.Marshal(assignment)
	if err != nil {
		return err
	}
	_, err = vm.Eval(ctx, "document.cookie = "+string(lit))
	return err
}

// ApplySetCookie stores cookies received in Set-Cookie response lines, the way a
// browser does when a prerendered response arrives. HttpOnly cookies are kept but
// stay invisible to script.
func (vm *BrowserVM) ApplySetCookie(lines ...string) error {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	now := vm.now()
	for _, line := range lines {
		hc, err := http.ParseSetCookie(line)
		if err != nil {
			return fmt.Errorf("livecookie: parse set-cookie: %w", err)
		}

		e := jarEntry{
			name:     hc.Name,
			value:    hc.Value,
			expires:  hc.Expires,
			httpOnly: hc.HttpOnly,
			secure:   hc.Secure,
			sameSite: fromHTTPSameSite(hc.SameSite),
		}
		switch {
		case hc.MaxAge < 0:
			e.expires = time.Unix(0, 0)
		case hc.MaxAge > 0:
			e.expires = now.Add(time.Duration(hc.MaxAge) * time.Second)
		}
		vm.store(e, now)
	}
	return nil
}

// ApplyResponse stores the Set-Cookie lines of resp.
func (vm *BrowserVM) ApplyResponse(resp *http.Response) error {
	return vm.ApplySetCookie(resp.Header.Values("Set-Cookie")...)
}

// CookieHeader renders the Cookie request header the browser would send,
// HttpOnly cookies included.
func (vm *BrowserVM) CookieHeader() string {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.join(true)
}

// Cookies returns a snapshot of the unexpired jar, flags included.
func (vm *BrowserVM) Cookies() []cookie.Cookie {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	now := vm.now()
	out := make([]cookie.Cookie, 0, len(vm.jar))
	for _, e := range vm.jar {
		if e.expired(now) {
			continue
		}
		out = append(out, cookie.Cookie{
			Name:     e.name,
			Value:    e.value,
			Expires:  e.expires,
			HttpOnly: e.httpOnly,
			Secure:   e.secure,
			SameSite: e.sameSite,
		})
	}
	return out
}

// documentCookie is the document.cookie getter. It runs with vm.mu held by Eval.
func (vm *BrowserVM) documentCookie() string {
	return vm.join(false)
}

// assignCookie is the document.cookie setter. It runs with vm.mu held by Eval.
func (vm *BrowserVM) assignCookie(assignment string) {
	parts := strings.Split(assignment, ";")
	name, value, ok := strings.Cut(parts[0], "=")
	if !ok {
		// "document.cookie = 'v'" sets a cookie with an empty name; not worth modelling.
		return
	}
	e := jarEntry{name: strings.TrimSpace(name), value: strings.TrimSpace(value)}
	if e.name == "" {
		return
	}

	now := vm.now()
	var maxAgeSet bool
	for _, attr := range parts[1:] {
		key, val, _ := strings.Cut(strings.TrimSpace(attr), "=")
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "expires":
			if maxAgeSet {
				continue
			}
			if t, err := http.ParseTime(strings.TrimSpace(val)); err == nil {
				e.expires = t
			}
		case "max-age":
			secs, err := strconv.Atoi(strings.TrimSpace(val))
			if err != nil {
				continue
			}
			maxAgeSet = true
			if secs <= 0 {
				e.expires = time.Unix(0, 0)
			} else {
				e.expires = now.Add(time.Duration(secs) * time.Second)
			}
		case "samesite":
			if s, err := cookie.ParseSameSite(val); err == nil {
				e.sameSite = s
			}
		case "secure":
			e.secure = true
		case "httponly":
			// Browsers drop script assignments that claim HttpOnly.
			return
		}
	}

	// Script may not overwrite or delete an HttpOnly cookie.
	if i := vm.index(e.name); i >= 0 && vm.jar[i].httpOnly {
		return
	}
	vm.store(e, now)
}

// store inserts, replaces or deletes e. Replacing keeps the original position.
func (vm *BrowserVM) store(e jarEntry, now time.Time) {
	i := vm.index(e.name)
	switch {
	case e.expired(now):
		if i >= 0 {
			vm.jar = slices.Delete(vm.jar, i, i+1)
		}
	case i >= 0:
		vm.jar[i] = e
	default:
		vm.jar = append(vm.jar, e)
	}
}

func (vm *BrowserVM) index(name string) int {
	return slices.IndexFunc(vm.jar, func(e jarEntry) bool { return e.name == name })
}

func (vm *BrowserVM) join(includeHTTPOnly bool) string {
	now := vm.now()
	pairs := make([]string, 0, len(vm.jar))
	for _, e := range vm.jar {
		if e.expired(now) || (e.httpOnly && !includeHTTPOnly) {
			continue
		}
		pairs = append(pairs, e.name+"="+e.value)
	}
	return strings.Join(pairs, "; ")
}

func fromHTTPSameSite(s http.SameSite) cookie.SameSite {
	switch s {
	case http.SameSiteNoneMode:
		return cookie.SameSiteNone
	case http.SameSiteLaxMode:
		return cookie.SameSiteLax
	case http.SameSiteStrictMode:
		return cookie.SameSiteStrict
	default:
		return cookie.SameSiteDefault
	}
}
