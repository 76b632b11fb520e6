package errorsx

import (
	"context"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ooni/wcanalysis/internal/scrubber"
)

// We use these strings to string-match errors in the standard library
// and map such errors to failure strings.
const (
	DNSNoSuchHostSuffix        = "no such host"
	DNSServerMisbehavingSuffix = "server misbehaving"
	DNSNoAnswerSuffix          = "no answer from DNS server"
)

var (
	// ErrDNSBogon indicates that we found a bogon address.
	ErrDNSBogon = errors.New("dns: detected bogon address")

	// ErrDNSRefused indicates that the server returned REFUSED.
	ErrDNSRefused = errors.New("dns: refused")

	// ErrDNSServfail indicates that the server returned SERVFAIL.
	ErrDNSServfail = errors.New("dns: servfail")

	// ErrDNSNoSuchHost indicates that the server returned NXDOMAIN.
	ErrDNSNoSuchHost = fmt.Errorf("dns: %s", DNSNoSuchHostSuffix)

	// ErrDNSMisbehaving indicates that the server returned another error rcode.
	ErrDNSMisbehaving = fmt.Errorf("dns: %s", DNSServerMisbehavingSuffix)

	// ErrDNSNoAnswer indicates a successful response without answers.
	ErrDNSNoAnswer = fmt.Errorf("dns: %s", DNSNoAnswerSuffix)
)

// ClassifyGenericError maps an error occurred during an operation to
// a failure string. If the input error is an *ErrWrapper we return
// its Failure without classifying again.
//
// If everything else fails, this classifier returns a string
// like "unknown_failure: XXX" where XXX has been scrubbed.
func ClassifyGenericError(err error) string {
	var errwrapper *ErrWrapper
	if errors.As(err, &errwrapper) {
		return errwrapper.Failure
	}
	if failure := classifySyscallError(err); failure != "" {
		return failure
	}
	switch {
	case errors.Is(err, context.Canceled):
		return FailureInterrupted
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, os.ErrDeadlineExceeded):
		return FailureGenericTimeoutError
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return FailureEOFError
	}
	if failure := classifyWithStringSuffix(err); failure != "" {
		return failure
	}
	formatted := fmt.Sprintf("%s: %s", FailureUnknownPrefix, err.Error())
	return scrubber.Scrub(formatted)
}

func classifySyscallError(err error) string {
	switch {
	case errors.Is(err, errECONNREFUSED):
		return FailureConnectionRefused
	case errors.Is(err, errECONNRESET), errors.Is(err, errECONNABORTED):
		return FailureConnectionReset
	case errors.Is(err, errEHOSTUNREACH):
		return FailureHostUnreachable
	case errors.Is(err, errENETUNREACH):
		return FailureNetworkUnreachable
	case errors.Is(err, errETIMEDOUT):
		return FailureGenericTimeoutError
	case errors.Is(err, errEINTR):
		return FailureInterrupted
	case errors.Is(err, errENOTCONN):
		return FailureConnectionAlreadyClosed
	default:
		return ""
	}
}

func classifyWithStringSuffix(err error) string {
	s := err.Error()
	switch {
	case strings.HasSuffix(s, "operation was canceled"):
		return FailureInterrupted
	case strings.HasSuffix(s, "EOF"):
		return FailureEOFError
	case strings.HasSuffix(s, "context deadline exceeded"),
		strings.HasSuffix(s, "i/o timeout"),
		strings.HasSuffix(s, "TLS handshake timeout"):
		return FailureGenericTimeoutError
	case strings.HasSuffix(s, DNSNoSuchHostSuffix):
		return FailureDNSNXDOMAINError
	case strings.HasSuffix(s, DNSServerMisbehavingSuffix):
		return FailureDNSServerMisbehaving
	case strings.HasSuffix(s, DNSNoAnswerSuffix):
		return FailureDNSNoAnswer
	case strings.HasSuffix(s, "use of closed network connection"):
		return FailureConnectionAlreadyClosed
	default:
		return ""
	}
}

// ClassifyResolverError maps DNS resolution errors to failure
// strings and otherwise falls back to [ClassifyGenericError].
func ClassifyResolverError(err error) string {
	var errwrapper *ErrWrapper
	if errors.As(err, &errwrapper) {
		return errwrapper.Failure
	}
	switch {
	case errors.Is(err, ErrDNSBogon):
		return FailureDNSBogonError
	case errors.Is(err, ErrDNSRefused):
		return FailureDNSRefusedError
	case errors.Is(err, ErrDNSServfail):
		return FailureDNSServfailError
	default:
		return ClassifyGenericError(err)
	}
}

// ClassifyTLSHandshakeError maps TLS handshake errors to failure
// strings and otherwise falls back to [ClassifyGenericError].
func ClassifyTLSHandshakeError(err error) string {
	var errwrapper *ErrWrapper
	if errors.As(err, &errwrapper) {
		return errwrapper.Failure
	}
	var x509HostnameError x509.HostnameError
	if errors.As(err, &x509HostnameError) {
		// Test case: https://wrong.host.badssl.com/
		return FailureSSLInvalidHostname
	}
	var x509UnknownAuthorityError x509.UnknownAuthorityError
	if errors.As(err, &x509UnknownAuthorityError) {
		// Test case: https://self-signed.badssl.com/
		return FailureSSLUnknownAuthority
	}
	var x509CertificateInvalidError x509.CertificateInvalidError
	if errors.As(err, &x509CertificateInvalidError) {
		// Test case: https://expired.badssl.com/
		return FailureSSLInvalidCertificate
	}
	return ClassifyGenericError(err)
}
