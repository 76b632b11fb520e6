package webconnectivityqa

import (
	"github.com/ooni/wcanalysis/internal/model"
	"github.com/ooni/wcanalysis/internal/webconnectivity"
)

// newTLSBlockingObservations returns the observations of a probe that
// resolves domain to addr, connects and fails the TLS handshake.
func newTLSBlockingObservations(addr, failure string) *webconnectivity.Observations {
	return &webconnectivity.Observations{
		Input: "https://www.example.com/",
		Queries: []*model.ArchivalDNSLookupResult{
			newQuery(exampleDomain, "A", nil, addr),
		},
		TCPConnect: []*model.ArchivalTCPConnectResult{
			newTCPConnect(addr, 443, nil),
		},
		TLSHandshakes: []*model.ArchivalTLSOrQUICHandshakeResult{
			newTLSHandshake(addr, exampleDomain, newFailure(failure)),
		},
		Requests: []*model.ArchivalHTTPRequestResult{
			newRequest("https://www.example.com/", newFailure(failure), nil),
		},
		Control: exampleControl(443),
	}
}

// tlsBlockingConnectionResetWithConsistentDNS is the case where the
// middlebox resets the connection after seeing the SNI.
func tlsBlockingConnectionResetWithConsistentDNS() *TestCase {
	return &TestCase{
		Name:         "tlsBlockingConnectionResetWithConsistentDNS",
		Input:        "https://www.example.com/",
		Observations: newTLSBlockingObservations(exampleAddr, "connection_reset"),
		ExpectErr:    false,
		ExpectTestKeys: &TestKeys{
			DNSConsistency:        "consistent",
			HTTPExperimentFailure: "connection_reset",
			XStatus:               8448, // StatusExperimentHTTP | StatusAnomalyReadWrite
			Accessible:            false,
			Blocking:              "http-failure",
		},
	}
}

// tlsBlockingConnectionResetWithInconsistentDNS is the case where the
// resolver returns an unrelated address whose server resets the
// connection during the TLS handshake.
func tlsBlockingConnectionResetWithInconsistentDNS() *TestCase {
	return &TestCase{
		Name:         "tlsBlockingConnectionResetWithInconsistentDNS",
		Input:        "https://www.example.com/",
		Observations: newTLSBlockingObservations(cdnAddr, "connection_reset"),
		ExpectErr:    false,
		ExpectTestKeys: &TestKeys{
			DNSConsistency:        "inconsistent",
			HTTPExperimentFailure: "connection_reset",
			XStatus:               8480, // StatusExperimentHTTP | StatusAnomalyReadWrite | StatusAnomalyDNS
			Accessible:            false,
			Blocking:              "dns",
		},
	}
}

// tlsBlockingEOF is the case where the middlebox closes the
// connection after seeing the SNI.
func tlsBlockingEOF() *TestCase {
	return &TestCase{
		Name:         "tlsBlockingEOF",
		Input:        "https://www.example.com/",
		Observations: newTLSBlockingObservations(exampleAddr, "eof_error"),
		ExpectErr:    false,
		ExpectTestKeys: &TestKeys{
			DNSConsistency:        "consistent",
			HTTPExperimentFailure: "eof_error",
			XStatus:               8448, // StatusExperimentHTTP | StatusAnomalyReadWrite
			Accessible:            false,
			Blocking:              "http-failure",
		},
	}
}

// tlsBlockingMITM is the case where the middlebox intercepts the TLS
// handshake with a certificate we do not trust.
func tlsBlockingMITM() *TestCase {
	return &TestCase{
		Name:         "tlsBlockingMITM",
		Input:        "https://www.example.com/",
		Observations: newTLSBlockingObservations(exampleAddr, "ssl_unknown_authority"),
		ExpectErr:    false,
		ExpectTestKeys: &TestKeys{
			DNSConsistency:        "consistent",
			HTTPExperimentFailure: "ssl_unknown_authority",
			XStatus:               9216, // StatusExperimentHTTP | StatusAnomalyTLSHandshake
			Accessible:            false,
			Blocking:              "http-failure",
		},
	}
}

// tlsBlockingTimeout is the case where the middlebox drops the
// segments after seeing the SNI.
func tlsBlockingTimeout() *TestCase {
	return &TestCase{
		Name:         "tlsBlockingTimeout",
		Input:        "https://www.example.com/",
		Observations: newTLSBlockingObservations(exampleAddr, "generic_timeout_error"),
		ExpectErr:    false,
		ExpectTestKeys: &TestKeys{
			DNSConsistency:        "consistent",
			HTTPExperimentFailure: "generic_timeout_error",
			XStatus:               8704, // StatusExperimentHTTP | StatusAnomalyUnknown
			Accessible:            false,
			Blocking:              "http-failure",
		},
	}
}
