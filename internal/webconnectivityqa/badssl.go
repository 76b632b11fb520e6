package webconnectivityqa

import (
	"github.com/ooni/wcanalysis/internal/model"
	"github.com/ooni/wcanalysis/internal/webconnectivity"
)

// newBadSSLCase returns a test case where both the probe and the control
// fail the TLS handshake because the website certificate is broken.
func newBadSSLCase(name, failure string) *TestCase {
	return &TestCase{
		Name:  name,
		Input: "https://www.example.com/",
		Observations: &webconnectivity.Observations{
			Input: "https://www.example.com/",
			Queries: []*model.ArchivalDNSLookupResult{
				newQuery(exampleDomain, "A", nil, exampleAddr),
			},
			TCPConnect: []*model.ArchivalTCPConnectResult{
				newTCPConnect(exampleAddr, 443, nil),
			},
			TLSHandshakes: []*model.ArchivalTLSOrQUICHandshakeResult{
				newTLSHandshake(exampleAddr, exampleDomain, newFailure(failure)),
			},
			Requests: []*model.ArchivalHTTPRequestResult{
				newRequest("https://www.example.com/", newFailure(failure), nil),
			},
			Control: exampleControlWithHTTPFailure(failure),
		},
		ExpectErr: false,
		ExpectTestKeys: &TestKeys{
			DNSConsistency:        "consistent",
			HTTPExperimentFailure: failure,
			XStatus:               16, // StatusAnomalyControlFailure
		},
	}
}

func badSSLWithExpiredCertificate() *TestCase {
	return newBadSSLCase("badSSLWithExpiredCertificate", "ssl_invalid_certificate")
}

func badSSLWithWrongServerName() *TestCase {
	return newBadSSLCase("badSSLWithWrongServerName", "ssl_invalid_hostname")
}

func badSSLWithUnknownAuthority() *TestCase {
	return newBadSSLCase("badSSLWithUnknownAuthority", "ssl_unknown_authority")
}
