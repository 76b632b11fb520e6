package errorsx

import (
	"encoding/json"
	"errors"
)

// ErrWrapper wraps a Go error and binds it to a failure string and
// to the operation that failed.
type ErrWrapper struct {
	// Failure is one of the FailureXXX strings or any other
	// string like `unknown_failure: ...`.
	Failure string

	// Operation is the operation that failed.
	//
	// If possible, the Operation string SHOULD be a _major_
	// operation (resolve, connect, tls_handshake, http_round_trip)
	// rather than a _minor_ one (read, write, close).
	Operation string

	// WrappedErr is the error that we're wrapping.
	WrappedErr error
}

// Error returns the failure string.
func (e *ErrWrapper) Error() string {
	return e.Failure
}

// Unwrap allows to access the underlying error.
func (e *ErrWrapper) Unwrap() error {
	return e.WrappedErr
}

// MarshalJSON converts an ErrWrapper to a JSON value.
func (e *ErrWrapper) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.Failure)
}

// Classifier maps a Go error to a failure string.
type Classifier func(err error) string

// NewErrWrapper creates a new ErrWrapper using the given
// classifier, operation name, and underlying error.
//
// This function panics if classifier is nil, or operation
// is the empty string or error is nil.
//
// If err is already wrapped, the new wrapper keeps its failure and
// keeps its operation when the latter is a major operation.
func NewErrWrapper(c Classifier, op string, err error) *ErrWrapper {
	var wrapper *ErrWrapper
	if errors.As(err, &wrapper) {
		return &ErrWrapper{
			Failure:    wrapper.Failure,
			Operation:  classifyOperation(wrapper, op),
			WrappedErr: err,
		}
	}
	if c == nil {
		panic("nil classifier")
	}
	if op == "" {
		panic("empty op")
	}
	if err == nil {
		panic("nil err")
	}
	return &ErrWrapper{
		Failure:    c(err),
		Operation:  op,
		WrappedErr: err,
	}
}

// MaybeNewErrWrapper is like NewErrWrapper except that this
// function won't panic if passed a nil error.
func MaybeNewErrWrapper(c Classifier, op string, err error) error {
	if err != nil {
		return NewErrWrapper(c, op, err)
	}
	return nil
}

func classifyOperation(ew *ErrWrapper, operation string) string {
	// Minor operations only make sense when we cannot attribute
	// the failure to any major operation.
	switch ew.Operation {
	case CloseOperation, ReadOperation, WriteOperation:
		return operation
	}
	return ew.Operation
}

// FailureOperation returns the failure and operation stored by the
// outermost ErrWrapper in err's chain, or [ClassifyGenericError] and
// [TopLevelOperation] when there is no wrapper.
func FailureOperation(err error) (failure, operation string) {
	var wrapper *ErrWrapper
	if errors.As(err, &wrapper) {
		return wrapper.Failure, wrapper.Operation
	}
	return ClassifyGenericError(err), TopLevelOperation
}
