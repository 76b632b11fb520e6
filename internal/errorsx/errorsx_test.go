package errorsx

import (
	"context"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestClassifyGenericError(t *testing.T) {
	type testcase struct {
		name   string
		err    error
		expect string
	}

	cases := []testcase{{
		name:   "already wrapped",
		err:    &ErrWrapper{Failure: FailureEOFError},
		expect: FailureEOFError,
	}, {
		name:   "wrapped twice with fmt",
		err:    fmt.Errorf("read: %w", &ErrWrapper{Failure: FailureConnectionReset}),
		expect: FailureConnectionReset,
	}, {
		name:   "context.Canceled",
		err:    context.Canceled,
		expect: FailureInterrupted,
	}, {
		name:   "context.DeadlineExceeded",
		err:    context.DeadlineExceeded,
		expect: FailureGenericTimeoutError,
	}, {
		name:   "io.EOF",
		err:    io.EOF,
		expect: FailureEOFError,
	}, {
		name:   "ECONNREFUSED",
		err:    &net.OpError{Op: "dial", Err: errECONNREFUSED},
		expect: FailureConnectionRefused,
	}, {
		name:   "ECONNRESET",
		err:    &net.OpError{Op: "read", Err: errECONNRESET},
		expect: FailureConnectionReset,
	}, {
		name:   "ETIMEDOUT",
		err:    errETIMEDOUT,
		expect: FailureGenericTimeoutError,
	}, {
		name:   "i/o timeout suffix",
		err:    errors.New("read tcp 10.0.0.1:443: i/o timeout"),
		expect: FailureGenericTimeoutError,
	}, {
		name:   "no such host suffix",
		err:    &net.DNSError{Err: DNSNoSuchHostSuffix, Name: "www.example.com"},
		expect: FailureDNSNXDOMAINError,
	}, {
		name:   "server misbehaving",
		err:    ErrDNSMisbehaving,
		expect: FailureDNSServerMisbehaving,
	}, {
		name:   "no answer",
		err:    ErrDNSNoAnswer,
		expect: FailureDNSNoAnswer,
	}, {
		name:   "closed connection",
		err:    net.ErrClosed,
		expect: FailureConnectionAlreadyClosed,
	}, {
		name:   "unknown failure is scrubbed",
		err:    errors.New("antani 10.0.0.1:53 mascetti"),
		expect: "unknown_failure: antani [scrubbed] mascetti",
	}}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.expect, ClassifyGenericError(tc.err)); diff != "" {
				t.Fatal(diff)
			}
		})
	}
}

func TestClassifyResolverError(t *testing.T) {
	if ClassifyResolverError(&ErrWrapper{Failure: FailureEOFError}) != FailureEOFError {
		t.Fatal("unexpected result")
	}
	if ClassifyResolverError(ErrDNSBogon) != FailureDNSBogonError {
		t.Fatal("unexpected result")
	}
	if ClassifyResolverError(ErrDNSRefused) != FailureDNSRefusedError {
		t.Fatal("unexpected result")
	}
	if ClassifyResolverError(ErrDNSNoSuchHost) != FailureDNSNXDOMAINError {
		t.Fatal("unexpected result")
	}
}

func TestClassifyTLSHandshakeError(t *testing.T) {
	type testcase struct {
		name   string
		err    error
		expect string
	}

	cases := []testcase{{
		name:   "x509.HostnameError",
		err:    x509.HostnameError{},
		expect: FailureSSLInvalidHostname,
	}, {
		name:   "x509.UnknownAuthorityError",
		err:    x509.UnknownAuthorityError{},
		expect: FailureSSLUnknownAuthority,
	}, {
		name:   "x509.CertificateInvalidError",
		err:    x509.CertificateInvalidError{},
		expect: FailureSSLInvalidCertificate,
	}, {
		name:   "fallback",
		err:    io.EOF,
		expect: FailureEOFError,
	}}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.expect, ClassifyTLSHandshakeError(tc.err)); diff != "" {
				t.Fatal(diff)
			}
		})
	}
}

func TestNewErrWrapper(t *testing.T) {
	t.Run("panics with nil classifier", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Fatal("expected a panic")
			}
		}()
		NewErrWrapper(nil, ConnectOperation, io.EOF)
	})

	t.Run("keeps the major operation of the child", func(t *testing.T) {
		child := NewErrWrapper(ClassifyGenericError, TLSHandshakeOperation, io.EOF)
		outer := NewErrWrapper(ClassifyGenericError, HTTPRoundTripOperation, child)
		if outer.Operation != TLSHandshakeOperation {
			t.Fatal("unexpected operation", outer.Operation)
		}
		if outer.Failure != FailureEOFError {
			t.Fatal("unexpected failure", outer.Failure)
		}
	})

	t.Run("replaces a minor operation of the child", func(t *testing.T) {
		child := NewErrWrapper(ClassifyGenericError, ReadOperation, io.EOF)
		outer := NewErrWrapper(ClassifyGenericError, HTTPRoundTripOperation, child)
		if outer.Operation != HTTPRoundTripOperation {
			t.Fatal("unexpected operation", outer.Operation)
		}
	})

	t.Run("MaybeNewErrWrapper with nil error", func(t *testing.T) {
		if MaybeNewErrWrapper(ClassifyGenericError, ConnectOperation, nil) != nil {
			t.Fatal("expected nil")
		}
	})

	t.Run("FailureOperation", func(t *testing.T) {
		err := fmt.Errorf("get: %w", NewErrWrapper(ClassifyGenericError, ConnectOperation, errECONNREFUSED))
		failure, operation := FailureOperation(err)
		if failure != FailureConnectionRefused || operation != ConnectOperation {
			t.Fatal("unexpected result", failure, operation)
		}
		failure, operation = FailureOperation(io.EOF)
		if failure != FailureEOFError || operation != TopLevelOperation {
			t.Fatal("unexpected result", failure, operation)
		}
	})
}

func TestKind(t *testing.T) {
	type testcase struct {
		failure string
		expect  FailureKind
	}

	cases := []testcase{
		{FailureConnectionRefused, KindConnectRefused},
		{FailureConnectionReset, KindConnectReset},
		{FailureGenericTimeoutError, KindTimeout},
		{FailureEOFError, KindEOF},
		{FailureDNSNXDOMAINError, KindDNS},
		{FailureDNSLookupError, KindDNS},
		{FailureSSLInvalidHostname, KindTLS},
		{FailureSSLUnknownAuthority, KindTLS},
		{"certificate verify failed: self signed certificate", KindUnknown},
		{"unknown_failure: antani", KindUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.failure, func(t *testing.T) {
			if got := Kind(tc.failure); got != tc.expect {
				t.Fatal("expected", tc.expect, "got", got)
			}
		})
	}
}

func TestIsTCPIPFailure(t *testing.T) {
	type testcase struct {
		failure   string
		operation string
		expect    bool
	}

	cases := []testcase{
		{FailureGenericTimeoutError, ConnectOperation, true},
		{FailureGenericTimeoutError, UnknownOperation, true},
		{FailureConnectionRefused, UnknownOperation, true},
		{FailureConnectionReset, ConnectOperation, true},
		{FailureConnectionReset, TLSHandshakeOperation, false},
		{FailureGenericTimeoutError, TLSHandshakeOperation, false},
		{FailureEOFError, ConnectOperation, false},
		{FailureSSLInvalidCertificate, UnknownOperation, false},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("%s/%s", tc.failure, tc.operation), func(t *testing.T) {
			if got := IsTCPIPFailure(tc.failure, tc.operation); got != tc.expect {
				t.Fatal("expected", tc.expect, "got", got)
			}
		})
	}
}
