// Package mapper copies set configuration values onto third-party builders.
// Mappers never touch builder fields whose source value is the zero value,
// so library defaults survive unset keys. Unit conversions (duration to
// milliseconds, data size to bytes) live here too.
package mapper

import (
	"time"

	"github.com/drblury/wireup/properties"
)

// Value wraps a source value for conditional copying.
type Value[T comparable] struct {
	v T
}

// From wraps a properties field. Chain To or Apply to copy it only when set.
func From[T comparable](v T) Value[T] {
	return Value[T]{v: v}
}

// IsSet reports whether the wrapped value differs from its zero value.
func (val Value[T]) IsSet() bool {
	var zero T
	return val.v != zero
}

// To assigns the wrapped value to dst when it is set.
func (val Value[T]) To(dst *T) {
	if val.IsSet() {
		*dst = val.v
	}
}

// Apply invokes fn with the wrapped value when it is set.
func (val Value[T]) Apply(fn func(T)) {
	if val.IsSet() {
		fn(val.v)
	}
}

// AsMillis converts a duration to whole milliseconds.
func AsMillis(d time.Duration) int64 {
	return d.Milliseconds()
}

// AsSeconds converts a duration to whole seconds.
func AsSeconds(d time.Duration) int64 {
	return int64(d / time.Second)
}

// AsBytes converts a data size to a plain byte count.
func AsBytes(s properties.DataSize) int64 {
	return s.Bytes()
}
