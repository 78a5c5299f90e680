package cookie

import (
	"context"
	"errors"
)

// Typed is a cookie whose logical value is a T.
// The wire string and the decoded value are kept in sync by SetValue and SetWire;
// there is no other way to change either of them.
type Typed[T any] struct {
	base  Cookie
	value T
	ok    bool
	opts  CodecOptions
}

// NewTyped encodes v and returns a typed cookie named name.
func NewTyped[T any](name string, v T, codec CodecOptions, opts ...Option) (Typed[T], error) {
	t := Typed[T]{base: New(name, "", opts...), opts: codec}
	if err := t.SetValue(v); err != nil {
		return Typed[T]{}, err
	}
	return t, nil
}

// TypedFrom decodes the value of an existing cookie.
func TypedFrom[T any](c Cookie, codec CodecOptions) (Typed[T], error) {
	t := Typed[T]{base: c, opts: codec}
	if err := t.SetWire(c.Value); err != nil {
		return Typed[T]{}, err
	}
	return t, nil
}

// Name returns the cookie name.
func (t Typed[T]) Name() string { return t.base.Name }

// Cookie returns the underlying cookie with the encoded wire value.
func (t Typed[T]) Cookie() Cookie { return t.base }

// Value returns the decoded value. ok is false when the wire value was empty.
func (t Typed[T]) Value() (v T, ok bool) { return t.value, t.ok }

// SetValue replaces the typed value and re-encodes the wire string.
func (t *Typed[T]) SetValue(v T) error {
	wire, err := Encode(v, t.opts)
	if err != nil {
		return err
	}
	t.base.Value = wire
	t.value = v
	t.ok = wire != ""
	return nil
}

// SetWire replaces the wire string and re-decodes the typed value.
// On failure the cookie is left unchanged.
func (t *Typed[T]) SetWire(wire string) error {
	v, ok, err := Decode[T](wire, t.opts)
	if err != nil {
		var de *DecodeError
		if errors.As(err, &de) {
			de.Name = t.base.Name
		}
		return err
	}
	t.base.Value = wire
	t.value = v
	t.ok = ok
	return nil
}

// GetTyped reads a cookie through svc and decodes it into T.
// Returns ErrCookieNotFound when the cookie does not exist.
func GetTyped[T any](ctx context.Context, svc Service, name string, codec CodecOptions) (Typed[T], error) {
	c, err := svc.Get(ctx, name)
	if err != nil {
		return Typed[T]{}, err
	}
	return TypedFrom[T](c, codec)
}

// SetTyped writes the encoded form of t through svc.
func SetTyped[T any](ctx context.Context, svc Service, t Typed[T]) error {
	return svc.Set(ctx, t.Cookie())
}
