// Package runtimex contains runtime extensions. This package is inspired to
// https://pkg.go.dev/github.com/m-lab/go/rtx, except that it's simpler.
package runtimex

import (
	"errors"
	"fmt"
)

// PanicOnError calls panic() if err is not nil. The panic value
// is an error wrapping err, so [Catch] can recover it.
func PanicOnError(err error, message string) {
	if err != nil {
		panic(fmt.Errorf("%s: %w", message, err))
	}
}

// Assert calls panic if assertion is false.
func Assert(assertion bool, message string) {
	if !assertion {
		panic(errors.New(message))
	}
}

// PanicIfFalse is an alias for [Assert].
func PanicIfFalse(assertion bool, message string) {
	Assert(assertion, message)
}

// PanicIfTrue calls panic if assertion is true.
func PanicIfTrue(assertion bool, message string) {
	Assert(!assertion, message)
}

// PanicIfNil calls panic if the given interface is nil.
func PanicIfNil(v any, message string) {
	PanicIfTrue(v == nil, message)
}

// Try0 panics if err is not nil.
func Try0(err error) {
	PanicOnError(err, "Try0")
}

// Try1 panics if err is not nil and otherwise returns v1.
func Try1[T1 any](v1 T1, err error) T1 {
	PanicOnError(err, "Try1")
	return v1
}

// ErrPanic is the error returned by [Catch] when the panic
// value was not an error.
var ErrPanic = errors.New("runtimex: panic")

// Catch runs fn and converts a panic raised by fn into an error. When
// the panic value is an error, the returned error wraps it.
func Catch(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			switch v := r.(type) {
			case error:
				err = v
			default:
				err = fmt.Errorf("%w: %v", ErrPanic, v)
			}
		}
	}()
	fn()
	return
}
