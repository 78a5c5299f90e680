// Package cookie defines the uniform cookie model shared by every rendering backend.
// Application code depends on the Service interface and never needs to know whether it
// runs during the initial server render or over a live browser connection.
//
// # Features
//
//   - Cookie record with expiration, HttpOnly, Secure and SameSite attributes
//   - Service interface implemented by the request-time and live-connection backends
//   - JSON value codec with optional URL-safe base64 wrapping
//   - Typed cookies that keep the wire string and the decoded value in sync
//   - Typed errors for validation, capability and decoding failures
//   - Environment-based configuration
//
// # Basic Usage
//
//	svc, _ := middleware.GetCookies(r.Context())
//
//	c, err := svc.Get(ctx, "theme")
//	if errors.Is(err, cookie.ErrCookieNotFound) {
//		// not sent by the browser
//	}
//
//	err = svc.Set(ctx, cookie.New("theme", "dark",
//		cookie.WithMaxAge(30*24*time.Hour),
//		cookie.WithSameSite(cookie.SameSiteLax),
//	))
//
//	err = svc.Remove(ctx, "theme")
//
// # Typed Cookies
//
// Any JSON-serializable value can be stored in a cookie:
//
//	type Prefs struct {
//		Lang string `json:"lang"`
//	}
//
//	t, err := cookie.NewTyped("prefs", Prefs{Lang: "en"}, cookie.DefaultCodecOptions())
//	err = cookie.SetTyped(ctx, svc, t)
//
//	got, err := cookie.GetTyped[Prefs](ctx, svc, "prefs", cookie.DefaultCodecOptions())
//	prefs, ok := got.Value()
//
// Raw JSON contains double quotes, which net/http drops from Set-Cookie values, so
// base64 wrapping is enabled by default. An empty wire value decodes to an absent value.
//
// # Error Handling
//
//	var verr *cookie.ValidationError
//	switch {
//	case errors.As(err, &verr):
//		// caller must fix the call
//	case errors.Is(err, cookie.ErrUnsupportedFlag):
//		// HttpOnly/Secure requested on a live connection
//	case errors.Is(err, cookie.ErrDecode):
//		// stored value is not valid for the requested type
//	}
package cookie
