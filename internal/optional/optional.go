// Package optional contains safer code to handle optional values.
package optional

import (
	"bytes"
	"encoding/json"
	"reflect"

	"github.com/ooni/wcanalysis/internal/runtimex"
)

// Value is an optional value. The zero value of this structure
// is equivalent to the one you get when calling [None].
type Value[T any] struct {
	// indirect is the indirect pointer to the value.
	indirect *T
}

// None constructs an empty value.
func None[T any]() Value[T] {
	return Value[T]{nil}
}

// Some constructs a some value unless T is a pointer and points to
// nil, in which case [Some] is equivalent to [None].
func Some[T any](value T) Value[T] {
	v := None[T]()
	if !isNilPointer(value) {
		v.indirect = &value
	}
	return v
}

// FromPointer constructs a value from a pointer where nil means [None].
func FromPointer[T any](p *T) Value[T] {
	if p == nil {
		return None[T]()
	}
	return Some(*p)
}

func isNilPointer(value any) bool {
	refv := reflect.ValueOf(value)
	return refv.Kind() == reflect.Pointer && refv.IsNil()
}

var _ json.Unmarshaler = &Value[int]{}

// UnmarshalJSON implements json.Unmarshaler. The `null` input
// is equivalent to calling [None].
func (v *Value[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte(`null`)) {
		v.indirect = nil
		return nil
	}
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	v.indirect = &value
	return nil
}

var _ json.Marshaler = Value[int]{}

// MarshalJSON implements json.Marshaler. An empty value serializes
// to `null`, otherwise we serialize the underlying value.
func (v Value[T]) MarshalJSON() ([]byte, error) {
	if v.indirect == nil {
		return json.Marshal(nil)
	}
	return json.Marshal(*v.indirect)
}

// IsNone returns whether this [Value] is empty.
func (v Value[T]) IsNone() bool {
	return v.indirect == nil
}

// IsSome returns whether this [Value] contains a value.
func (v Value[T]) IsSome() bool {
	return v.indirect != nil
}

// Unwrap returns the underlying value or panics. In case of
// panic, the value passed to panic is an error.
func (v Value[T]) Unwrap() T {
	runtimex.Assert(v.indirect != nil, "is none")
	return *v.indirect
}

// UnwrapOr returns the fallback if the [Value] is empty.
func (v Value[T]) UnwrapOr(fallback T) T {
	if v.indirect == nil {
		return fallback
	}
	return v.Unwrap()
}

// Pointer returns a pointer to a copy of the underlying value or
// nil when the [Value] is empty.
func (v Value[T]) Pointer() *T {
	if v.indirect == nil {
		return nil
	}
	value := *v.indirect
	return &value
}
