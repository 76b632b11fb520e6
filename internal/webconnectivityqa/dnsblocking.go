package webconnectivityqa

import (
	"github.com/ooni/wcanalysis/internal/model"
	"github.com/ooni/wcanalysis/internal/optional"
	"github.com/ooni/wcanalysis/internal/webconnectivity"
)

// newDNSBlockingCase returns a test case where the ISP resolver fails
// with the given failure while the control resolves the domain.
func newDNSBlockingCase(name, failure string) *TestCase {
	return &TestCase{
		Name:  name,
		Input: "http://www.example.com/",
		Observations: &webconnectivity.Observations{
			Input: "http://www.example.com/",
			Queries: []*model.ArchivalDNSLookupResult{
				newQuery(exampleDomain, "A", newFailure(failure)),
				newQuery(exampleDomain, "AAAA", newFailure(failure)),
			},
			Requests: []*model.ArchivalHTTPRequestResult{
				newRequest("http://www.example.com/", newFailure(failure), nil),
			},
			Control: exampleControl(80),
		},
		ExpectErr: false,
		ExpectTestKeys: &TestKeys{
			DNSExperimentFailure:  failure,
			DNSConsistency:        "inconsistent",
			HTTPExperimentFailure: failure,
			XStatus:               2080, // StatusExperimentDNS | StatusAnomalyDNS
			Accessible:            false,
			Blocking:              "dns",
		},
	}
}

// dnsBlockingNXDOMAIN is the case where the ISP resolver lies
// by returning NXDOMAIN for an existing domain.
func dnsBlockingNXDOMAIN() *TestCase {
	return newDNSBlockingCase("dnsBlockingNXDOMAIN", "dns_nxdomain_error")
}

// dnsBlockingRefused is the case where the ISP resolver refuses
// to resolve the domain.
func dnsBlockingRefused() *TestCase {
	return newDNSBlockingCase("dnsBlockingRefused", "dns_refused_error")
}

// dnsBlockingNoAnswer is the case where the ISP resolver returns
// a successful response without any answer.
func dnsBlockingNoAnswer() *TestCase {
	return newDNSBlockingCase("dnsBlockingNoAnswer", "dns_no_answer")
}

// dnsBlockingBOGON is the case where the ISP resolver returns
// localhost for the domain, so connecting fails.
func dnsBlockingBOGON() *TestCase {
	return &TestCase{
		Name:  "dnsBlockingBOGON",
		Input: "http://www.example.com/",
		Observations: &webconnectivity.Observations{
			Input: "http://www.example.com/",
			Queries: []*model.ArchivalDNSLookupResult{
				newQuery(exampleDomain, "A", nil, "127.0.0.1"),
			},
			TCPConnect: []*model.ArchivalTCPConnectResult{
				newTCPConnect("127.0.0.1", 80, newFailure("connection_refused")),
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

// dnsBlockingWithConnectionRefused is the case where the DNS is inconsistent
// and connecting to the resolved address is refused.
func dnsBlockingWithConnectionRefused() *TestCase {
	return &TestCase{
		Name:  "dnsBlockingWithConnectionRefused",
		Input: "http://www.example.com/",
		Signals: &webconnectivity.Signals{
			DNSAnalysisResult: webconnectivity.DNSAnalysisResult{
				DNSConsistency: optional.Some(webconnectivity.DNSInconsistent),
			},
			HTTPExperimentFailure: newFailure("connection_refused"),
		},
		ExpectErr: false,
		ExpectTestKeys: &TestKeys{
			DNSConsistency:        "inconsistent",
			HTTPExperimentFailure: "connection_refused",
			XStatus:               8352, // StatusExperimentHTTP | StatusAnomalyConnect | StatusAnomalyDNS
			Accessible:            false,
			Blocking:              "dns",
		},
	}
}
