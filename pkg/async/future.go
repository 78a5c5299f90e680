package async

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrTimeout is returned when AwaitWithTimeout exceeds its duration.
var ErrTimeout = errors.New("async: operation timed out")

// Future represents a result delivered by another goroutine.
type Future[T any] struct {
	val  T
	err  error
	once sync.Once
	done chan struct{}
}

// Resolver completes a Future. Only the first call has an effect.
type Resolver[T any] func(T, error)

// NewPromise returns an incomplete future and the function that completes it.
// It is used when the result is delivered by another goroutine, e.g. a network read loop.
func NewPromise[T any]() (*Future[T], Resolver[T]) {
	f := &Future[T]{done: make(chan struct{})}
	return f, f.resolve
}

func (f *Future[T]) resolve(v T, err error) {
	f.once.Do(func() {
		f.val = v
		f.err = err
		close(f.done)
	})
}

// AwaitContext blocks until the future completes or ctx is done.
func (f *Future[T]) AwaitContext(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// AwaitWithTimeout is like AwaitContext but also gives up with ErrTimeout
// once timeout elapses.
func (f *Future[T]) AwaitWithTimeout(ctx context.Context, timeout time.Duration) (T, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case <-timer.C:
		var zero T
		return zero, ErrTimeout
	}
}
