// Package prerender implements cookie access while the HTTP response has not started.
//
// Reads come from the cookies the browser sent with the request. Writes are staged as
// Set-Cookie header lines on the outgoing response, keeping at most one pending line
// per cookie name:
//
//	svc := prerender.New(w, r)
//
//	_ = svc.Set(ctx, cookie.New("a", "1"))
//	_ = svc.Set(ctx, cookie.New("a", "2")) // replaces the first write
//	_ = svc.Remove(ctx, "a")               // cancels it; expires "a" if the request had it
//
// Staged writes only take effect on the browser's next request, so Get keeps
// returning the values the request arrived with. Once the response has started,
// header edits are silently lost; wrap the writer with NewResponseWriter so callers
// can check Started and switch to the live-connection backend.
package prerender
