package errorsx

import "strings"

// FailureKind is the network layer a failure string belongs to.
type FailureKind int

const (
	// KindUnknown is any failure we do not recognize, including
	// free text such as "certificate verify failed: ...".
	KindUnknown = FailureKind(iota)

	// KindDNS is a name resolution failure.
	KindDNS

	// KindConnectRefused is connection_refused.
	KindConnectRefused

	// KindConnectReset is connection_reset.
	KindConnectReset

	// KindTimeout is generic_timeout_error.
	KindTimeout

	// KindEOF is eof_error.
	KindEOF

	// KindTLS is a TLS handshake or certificate failure.
	KindTLS
)

// String implements fmt.Stringer.
func (k FailureKind) String() string {
	switch k {
	case KindDNS:
		return "dns"
	case KindConnectRefused:
		return "connect_refused"
	case KindConnectReset:
		return "connect_reset"
	case KindTimeout:
		return "timeout"
	case KindEOF:
		return "eof"
	case KindTLS:
		return "tls"
	default:
		return "unknown"
	}
}

// Kind maps a failure string to its [FailureKind].
func Kind(failure string) FailureKind {
	switch {
	case failure == FailureConnectionRefused:
		return KindConnectRefused
	case failure == FailureConnectionReset:
		return KindConnectReset
	case failure == FailureGenericTimeoutError:
		return KindTimeout
	case failure == FailureEOFError:
		return KindEOF
	case strings.HasPrefix(failure, "dns_"):
		return KindDNS
	case strings.HasPrefix(failure, "ssl_"):
		return KindTLS
	default:
		return KindUnknown
	}
}

// IsTCPIPFailure returns whether failure, which occurred during the
// given operation, means the endpoint was unreachable at the TCP/IP
// layer. Timeout, refused and reset count as TCP/IP failures when they
// occur while connecting or when we do not know the operation.
func IsTCPIPFailure(failure, operation string) bool {
	switch Kind(failure) {
	case KindTimeout, KindConnectRefused, KindConnectReset:
	default:
		return false
	}
	switch operation {
	case ConnectOperation, UnknownOperation:
		return true
	default:
		return false
	}
}
