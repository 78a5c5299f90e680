// Package async provides a generic promise for results delivered by another goroutine.
//
// NewPromise returns a Future and the Resolver that completes it. A typical use is a
// connection read loop that matches replies to outstanding requests by id:
//
//	future, resolve := async.NewPromise[string]()
//	pending[id] = resolve
//	// ... later, in the read loop
//	pending[id](msg.Result, nil)
//
//	result, err := future.AwaitContext(ctx)
//
// AwaitWithTimeout additionally bounds the wait when the caller's context has no deadline:
//
//	v, err := future.AwaitWithTimeout(ctx, 30*time.Second)
//	if errors.Is(err, async.ErrTimeout) {
//		// no reply in time
//	}
//
// Only the first resolve of a future has an effect. All operations are safe for
// concurrent use and spawn no goroutines.
package async
