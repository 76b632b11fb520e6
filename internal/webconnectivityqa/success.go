package webconnectivityqa

import (
	"github.com/ooni/wcanalysis/internal/model"
	"github.com/ooni/wcanalysis/internal/optional"
	"github.com/ooni/wcanalysis/internal/webconnectivity"
)

// successWithHTTP ensures we can successfully measure an HTTP URL.
func successWithHTTP() *TestCase {
	return &TestCase{
		Name:  "successWithHTTP",
		Input: "http://www.example.com/",
		Observations: &webconnectivity.Observations{
			Input: "http://www.example.com/",
			Queries: []*model.ArchivalDNSLookupResult{
				newQuery(exampleDomain, "A", nil, exampleAddr),
				newQuery(exampleDomain, "AAAA", newFailure("dns_no_answer")),
			},
			TCPConnect: []*model.ArchivalTCPConnectResult{
				newTCPConnect(exampleAddr, 80, nil),
			},
			Requests: []*model.ArchivalHTTPRequestResult{
				newRequest("http://www.example.com/", nil, webPageResponse()),
			},
			Control: exampleControl(80),
		},
		ExpectErr: false,
		ExpectTestKeys: &TestKeys{
			DNSConsistency:  "consistent",
			BodyLengthMatch: true,
			BodyProportion:  1,
			StatusCodeMatch: true,
			HeadersMatch:    true,
			TitleMatch:      true,
			XStatus:         2, // StatusSuccessCleartext
			Accessible:      true,
			Blocking:        false,
		},
	}
}

// successWithHTTPS ensures we can successfully measure an HTTPS URL.
func successWithHTTPS() *TestCase {
	return &TestCase{
		Name:  "successWithHTTPS",
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
				newTLSHandshake(exampleAddr, exampleDomain, nil),
			},
			Requests: []*model.ArchivalHTTPRequestResult{
				newRequest("https://www.example.com/", nil, webPageResponse()),
			},
			Control: exampleControl(443),
		},
		ExpectErr: false,
		ExpectTestKeys: &TestKeys{
			DNSConsistency:  "consistent",
			BodyLengthMatch: true,
			BodyProportion:  1,
			StatusCodeMatch: true,
			HeadersMatch:    true,
			TitleMatch:      true,
			XStatus:         1, // StatusSuccessSecure
			Accessible:      true,
			Blocking:        false,
		},
	}
}

// successWithSignals is the case where the signals say DNS is consistent
// and the webpage perfectly matches the control.
func successWithSignals() *TestCase {
	trueValue := true
	return &TestCase{
		Name:  "successWithSignals",
		Input: "http://www.example.com/",
		Signals: &webconnectivity.Signals{
			DNSAnalysisResult: webconnectivity.DNSAnalysisResult{
				DNSConsistency: optional.Some(webconnectivity.DNSConsistent),
			},
			HTTPAnalysisResult: webconnectivity.HTTPAnalysisResult{
				BodyLengthMatch: &trueValue,
				BodyProportion:  1,
				StatusCodeMatch: &trueValue,
				HeadersMatch:    &trueValue,
				TitleMatch:      &trueValue,
			},
		},
		ExpectErr: false,
		ExpectTestKeys: &TestKeys{
			DNSConsistency:  "consistent",
			BodyLengthMatch: true,
			BodyProportion:  1,
			StatusCodeMatch: true,
			HeadersMatch:    true,
			TitleMatch:      true,
			XStatus:         2, // StatusSuccessCleartext
			Accessible:      true,
			Blocking:        false,
		},
	}
}

// noRequestsWithWorkingControl is the case where the probe resolved and
// connected but recorded no HTTP request, so there is nothing to compare.
func noRequestsWithWorkingControl() *TestCase {
	return &TestCase{
		Name:  "noRequestsWithWorkingControl",
		Input: "http://www.example.com/",
		Observations: &webconnectivity.Observations{
			Input: "http://www.example.com/",
			Queries: []*model.ArchivalDNSLookupResult{
				newQuery(exampleDomain, "A", nil, exampleAddr),
			},
			TCPConnect: []*model.ArchivalTCPConnectResult{
				newTCPConnect(exampleAddr, 80, nil),
			},
			Control: exampleControl(80),
		},
		ExpectErr: false,
		ExpectTestKeys: &TestKeys{
			DNSConsistency: "consistent",
			XStatus:        16384, // StatusBugNoRequests
		},
	}
}
