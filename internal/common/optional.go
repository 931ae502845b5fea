package common

// Optional is the result of a lookup that may legitimately find nothing.
// The zero value is None.
type Optional[T any] struct {
	value T
	ok    bool
}

// Some wraps a found value.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, ok: true}
}

// None returns the empty result.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it was present.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.ok
}

// IsPresent reports whether a value was found.
func (o Optional[T]) IsPresent() bool {
	return o.ok
}

// OrElse returns the value when present and def otherwise.
func (o Optional[T]) OrElse(def T) T {
	if o.ok {
		return o.value
	}
	return def
}
