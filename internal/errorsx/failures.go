// Package errorsx contains the failure strings produced by the signal
// collector, the code to map Go errors to them, and the code to map
// them back to the network layer they originate from.
//
// See https://github.com/ooni/spec/blob/master/data-formats/df-007-errors.md.
package errorsx

// These are the failure strings we know about.
const (
	FailureConnectionAlreadyClosed = "connection_already_closed"
	FailureConnectionRefused       = "connection_refused"
	FailureConnectionReset         = "connection_reset"
	FailureDNSBogonError           = "dns_bogon_error"
	FailureDNSLookupError          = "dns_lookup_error"
	FailureDNSNXDOMAINError        = "dns_nxdomain_error"
	FailureDNSNoAnswer             = "dns_no_answer"
	FailureDNSRefusedError         = "dns_refused_error"
	FailureDNSServerMisbehaving    = "dns_server_misbehaving"
	FailureDNSServfailError        = "dns_servfail_error"
	FailureEOFError                = "eof_error"
	FailureGenericTimeoutError     = "generic_timeout_error"
	FailureHostUnreachable         = "host_unreachable"
	FailureInterrupted             = "interrupted"
	FailureNetworkUnreachable      = "network_unreachable"
	FailureSSLFailedHandshake      = "ssl_failed_handshake"
	FailureSSLInvalidCertificate   = "ssl_invalid_certificate"
	FailureSSLInvalidHostname      = "ssl_invalid_hostname"
	FailureSSLUnknownAuthority     = "ssl_unknown_authority"
)

// FailureUnknownPrefix is the prefix of failures we could not map
// to any of the strings above.
const FailureUnknownPrefix = "unknown_failure"

// Operations that may fail.
const (
	// ResolveOperation is the operation where we resolve a domain name.
	ResolveOperation = "resolve"

	// ConnectOperation is the operation where we do a TCP connect.
	ConnectOperation = "connect"

	// TLSHandshakeOperation is the TLS handshake.
	TLSHandshakeOperation = "tls_handshake"

	// HTTPRoundTripOperation is the HTTP round trip.
	HTTPRoundTripOperation = "http_round_trip"

	// CloseOperation is when we close a socket.
	CloseOperation = "close"

	// ReadOperation is when we read from a socket.
	ReadOperation = "read"

	// WriteOperation is when we write to a socket.
	WriteOperation = "write"

	// TopLevelOperation is used when we cannot attribute the
	// failure to a more specific operation.
	TopLevelOperation = "top_level"

	// UnknownOperation is the operation of failures whose
	// origin nobody recorded.
	UnknownOperation = ""
)
