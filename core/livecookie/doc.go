// Package livecookie implements cookie.Service over a live connection to the browser,
// used once the HTTP response has started and Set-Cookie headers can no longer change.
//
// The Service issues one round trip per call through a Conn and keeps no cache: the
// browser cookie store is the source of truth. Only cookies visible to script can be
// read, and HttpOnly or Secure cookies cannot be written; Set rejects them with a
// *cookie.CapabilityError before contacting the browser.
//
// # Transports
//
// WSConn carries calls over a gorilla websocket using a small JSON protocol:
//
//	{"id":"…","op":"read"}                  -> {"id":"…","result":"a=1; b=2"}
//	{"id":"…","op":"write","arg":"a=1; …"}  -> {"id":"…"}
//
// Handler upgrades a request and runs a session function for the lifetime of the
// connection. ClientScript returns the matching browser-side snippet:
//
//	mux.Handle("/live", livecookie.Handler(func(ctx context.Context, conn *livecookie.WSConn) error {
//		svc := livecookie.New(conn)
//		return svc.Set(ctx, cookie.New("seen", "1"))
//	}))
//
// BrowserVM is an in-process goja runtime with a browser-like document.cookie. It
// implements Conn directly and can answer a WSConn through ServePeer, which makes it
// usable as a headless browser in tests and tooling:
//
//	vm := livecookie.NewBrowserVM()
//	_ = vm.ApplyResponse(resp) // cookies from the prerendered page
//	err := livecookie.ServePeer(ctx, ws, vm)
//
// # Encoding
//
// Names and values are escaped like encodeURIComponent when written and unescaped
// when read. Text that is not a valid escape sequence is returned as is.
package livecookie
