// Package cookiebackend decides which cookie.Service serves a request.
//
// While the response has not started, Set-Cookie headers can still be edited and the
// request-time backend (package prerender) is used. Once it has started, only the live
// connection (package livecookie) can change cookies. The decision is made once per
// request or live session when the Resolver is created:
//
//	p, err := cookiebackend.New(cookiebackend.DefaultConfig())
//	rs := p.Resolver(w, r, conn) // conn may be nil during prerender
//	svc, err := rs.Service()
//
// Mode "server" and "browser" pin a backend for builds that only ever render on one
// side. Scope "call" builds a new service on every Service call; state such as the
// request cookie view is then not shared between calls, while pending Set-Cookie
// lines still are because they live on the response headers.
package cookiebackend
