package webconnectivityqa

import (
	"github.com/ooni/wcanalysis/internal/model"
	"github.com/ooni/wcanalysis/internal/optional"
	"github.com/ooni/wcanalysis/internal/webconnectivity"
)

// tcpBlockingConnectTimeout is the case where there's TCP/IP blocking
// where the SYN segments sent to the server are dropped.
func tcpBlockingConnectTimeout() *TestCase {
	return &TestCase{
		Name:  "tcpBlockingConnectTimeout",
		Input: "http://www.example.com/",
		Observations: &webconnectivity.Observations{
			Input: "http://www.example.com/",
			Queries: []*model.ArchivalDNSLookupResult{
				newQuery(exampleDomain, "A", nil, exampleAddr),
			},
			TCPConnect: []*model.ArchivalTCPConnectResult{
				newTCPConnect(exampleAddr, 80, newFailure("generic_timeout_error")),
			},
			Requests: []*model.ArchivalHTTPRequestResult{
				newRequest("http://www.example.com/", newFailure("generic_timeout_error"), nil),
			},
			Control: exampleControl(80),
		},
		ExpectErr: false,
		ExpectTestKeys: &TestKeys{
			DNSConsistency:        "consistent",
			HTTPExperimentFailure: "generic_timeout_error",
			XStatus:               4224, // StatusExperimentConnect | StatusAnomalyConnect
			Accessible:            false,
			Blocking:              "tcp_ip",
		},
	}
}

// tcpBlockingConnectionRefusedWithInconsistentDNS is the case where the
// ISP resolver returns an unrelated address that refuses connections.
func tcpBlockingConnectionRefusedWithInconsistentDNS() *TestCase {
	return &TestCase{
		Name:  "tcpBlockingConnectionRefusedWithInconsistentDNS",
		Input: "http://www.example.com/",
		Observations: &webconnectivity.Observations{
			Input: "http://www.example.com/",
			Queries: []*model.ArchivalDNSLookupResult{
				newQuery(exampleDomain, "A", nil, cdnAddr),
			},
			TCPConnect: []*model.ArchivalTCPConnectResult{
				newTCPConnect(cdnAddr, 80, newFailure("connection_refused")),
			},
			Requests: []*model.ArchivalHTTPRequestResult{
				newRequest("http://www.example.com/", newFailure("connection_refused"), nil),
			},
			Control: exampleControl(80),
		},
		ExpectErr: false,
		ExpectTestKeys: &TestKeys{
			DNSConsistency:        "inconsistent",
			HTTPExperimentFailure: "connection_refused",
			XStatus:               4256, // StatusExperimentConnect | StatusAnomalyConnect | StatusAnomalyDNS
			Accessible:            false,
			Blocking:              "dns",
		},
	}
}

// tcpBlockingWithSignals is the case where the signals say that DNS is
// consistent and fetching the webpage timed out.
func tcpBlockingWithSignals() *TestCase {
	return &TestCase{
		Name:  "tcpBlockingWithSignals",
		Input: "http://www.example.com/",
		Signals: &webconnectivity.Signals{
			DNSAnalysisResult: webconnectivity.DNSAnalysisResult{
				DNSConsistency: optional.Some(webconnectivity.DNSConsistent),
			},
			HTTPExperimentFailure: newFailure("generic_timeout_error"),
		},
		ExpectErr: false,
		ExpectTestKeys: &TestKeys{
			DNSConsistency:        "consistent",
			HTTPExperimentFailure: "generic_timeout_error",
			XStatus:               4224, // StatusExperimentConnect | StatusAnomalyConnect
			Accessible:            false,
			Blocking:              "tcp_ip",
		},
	}
}
