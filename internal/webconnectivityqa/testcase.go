package webconnectivityqa

import "github.com/ooni/wcanalysis/internal/webconnectivity"

// TestCase is a test case we could run with this package.
type TestCase struct {
	// Name is the test case name
	Name string

	// Input is the input URL
	Input string

	// Observations contains what the probe and the control observed. When
	// nil, we classify the Signals directly.
	Observations *webconnectivity.Observations

	// Signals contains the signals to classify when Observations is nil.
	Signals *webconnectivity.Signals

	// ExpectErr is true if we expected an error
	ExpectErr bool

	// ExpectTestKeys contains the expected test keys
	ExpectTestKeys *TestKeys

	// Checkers contains an OPTIONAL list of checkers
	// used to further validate the test keys.
	Checkers []Checker
}

// AllTestCases returns all the defined test cases.
func AllTestCases() []*TestCase {
	return []*TestCase{
		badSSLWithExpiredCertificate(),
		badSSLWithUnknownAuthority(),
		badSSLWithWrongServerName(),

		controlFailureWithSuccessfulHTTPWebsite(),
		controlFailureWithSuccessfulHTTPSWebsite(),
		controlFailureWithConnectionReset(),
		controlFailureWithContentComparison(),
		controlMissingWithoutFailure(),

		dnsBlockingBOGON(),
		dnsBlockingNoAnswer(),
		dnsBlockingNXDOMAIN(),
		dnsBlockingRefused(),
		dnsBlockingWithConnectionRefused(),

		dnsHijackingToProxyWithHTTPURL(),
		dnsHijackingToProxyWithHTTPSURL(),

		httpBlockingConnectionReset(),
		httpBlockingEOF(),
		httpBlockingTimeout(),

		httpDiffWithConsistentDNS(),
		httpDiffWithInconsistentDNS(),
		httpDiffWithSignals(),

		noRequestsWithWorkingControl(),

		redirectWithConsistentDNSAndThenConnectionRefusedForHTTP(),
		redirectWithConsistentDNSAndThenConnectionResetForHTTP(),
		redirectWithConsistentDNSAndThenEOFForHTTP(),
		redirectWithConsistentDNSAndThenNXDOMAIN(),
		redirectWithConsistentDNSAndThenTimeoutForHTTP(),

		successWithHTTP(),
		successWithHTTPS(),
		successWithSignals(),

		tcpBlockingConnectTimeout(),
		tcpBlockingConnectionRefusedWithInconsistentDNS(),
		tcpBlockingWithSignals(),

		tlsBlockingConnectionResetWithConsistentDNS(),
		tlsBlockingConnectionResetWithInconsistentDNS(),
		tlsBlockingEOF(),
		tlsBlockingMITM(),
		tlsBlockingTimeout(),

		websiteDownInvalidURL(),
		websiteDownNXDOMAIN(),
		websiteDownNXDOMAINWithHTTPFailure(),
		websiteDownServerMisbehaving(),
	}
}
