package webconnectivityqa

import (
	"github.com/ooni/wcanalysis/internal/model"
	"github.com/ooni/wcanalysis/internal/webconnectivity"
)

// newHTTPBlockingCase returns a test case where the connection to the
// legit address succeeds and then the HTTP round trip fails.
func newHTTPBlockingCase(name, failure string, status int64) *TestCase {
	return &TestCase{
		Name:  name,
		Input: "http://www.example.com/",
		Observations: &webconnectivity.Observations{
			Input: "http://www.example.com/",
			Queries: []*model.ArchivalDNSLookupResult{
				newQuery(exampleDomain, "A", nil, exampleAddr),
			},
			TCPConnect: []*model.ArchivalTCPConnectResult{
				newTCPConnect(exampleAddr, 80, nil),
			},
			Requests: []*model.ArchivalHTTPRequestResult{
				newRequest("http://www.example.com/", newFailure(failure), nil),
			},
			Control: exampleControl(80),
		},
		ExpectErr: false,
		ExpectTestKeys: &TestKeys{
			DNSConsistency:        "consistent",
			HTTPExperimentFailure: failure,
			XStatus:               status,
			Accessible:            false,
			Blocking:              "http-failure",
		},
	}
}

// httpBlockingConnectionReset is the case where the censor resets
// the connection after seeing the Host header.
func httpBlockingConnectionReset() *TestCase {
	// StatusExperimentHTTP | StatusAnomalyReadWrite
	return newHTTPBlockingCase("httpBlockingConnectionReset", "connection_reset", 8448)
}

// httpBlockingEOF is the case where the censor closes the connection
// after seeing the Host header.
func httpBlockingEOF() *TestCase {
	// StatusExperimentHTTP | StatusAnomalyReadWrite
	return newHTTPBlockingCase("httpBlockingEOF", "eof_error", 8448)
}

// httpBlockingTimeout is the case where the censor drops the
// packets after seeing the Host header.
func httpBlockingTimeout() *TestCase {
	// StatusExperimentHTTP | StatusAnomalyUnknown
	return newHTTPBlockingCase("httpBlockingTimeout", "generic_timeout_error", 8704)
}
