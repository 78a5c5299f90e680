// Package middleware provides net/http middleware for hybrid rendered applications.
//
// All middleware follow the same pattern: a default constructor, a WithConfig
// constructor taking a configuration struct with an optional Skip function, and
// context helpers for retrieving stored values.
//
// # Cookies
//
// Cookies wraps the response writer so the backend can tell whether the response
// has started, and binds a cookie.Service to every request:
//
//	provider, err := cookiebackend.New(cookiebackend.DefaultConfig())
//	handler := middleware.Cookies(provider)(mux)
//
//	func page(w http.ResponseWriter, r *http.Request) {
//		svc, _ := middleware.GetCookies(r.Context())
//		_ = svc.Set(r.Context(), cookie.New("theme", "dark"))
//	}
//
// Live sessions started from an upgraded request attach their connection with
// WithConn. The response has started by then, so the live backend is selected:
//
//	livecookie.Handler(func(ctx context.Context, conn *livecookie.WSConn) error {
//		ctx, err := middleware.WithConn(ctx, conn)
//		if err != nil {
//			return err
//		}
//		svc, err := middleware.CookieService(ctx)
//		...
//	})
//
// # Request ID
//
// RequestID assigns an identifier to every request, stores it in the context and
// sets it on the X-Request-ID response header.
//
// # Logging
//
// Logging records one structured entry per completed request, including the status
// code, duration and number of Set-Cookie lines. Install it inside RequestID and
// Cookies to include the request ID and the selected cookie backend:
//
//	handler := middleware.RequestID()(
//		middleware.Cookies(provider)(
//			middleware.LoggingWithLogger(log)(mux)))
package middleware
