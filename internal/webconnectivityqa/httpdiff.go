package webconnectivityqa

import (
	"github.com/ooni/wcanalysis/internal/model"
	"github.com/ooni/wcanalysis/internal/optional"
	"github.com/ooni/wcanalysis/internal/webconnectivity"
)

// httpDiffWithConsistentDNS is the case where a transparent proxy
// serves a blockpage from the legit address.
func httpDiffWithConsistentDNS() *TestCase {
	return &TestCase{
		Name:  "httpDiffWithConsistentDNS",
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
				newRequest("http://www.example.com/", nil, blockpageResponse()),
			},
			Control: exampleControl(80),
		},
		ExpectErr: false,
		ExpectTestKeys: &TestKeys{
			DNSConsistency:  "consistent",
			BodyLengthMatch: false,
			BodyProportion:  blockpageProportion(),
			StatusCodeMatch: false,
			HeadersMatch:    false,
			TitleMatch:      false,
			XStatus:         64, // StatusAnomalyHTTPDiff
			Accessible:      false,
			Blocking:        "http-diff",
		},
	}
}

// httpDiffWithInconsistentDNS is the case where the ISP resolver
// returns the address of the blockpage server.
func httpDiffWithInconsistentDNS() *TestCase {
	return &TestCase{
		Name:  "httpDiffWithInconsistentDNS",
		Input: "http://www.example.com/",
		Observations: &webconnectivity.Observations{
			Input: "http://www.example.com/",
			Queries: []*model.ArchivalDNSLookupResult{
				newQuery(exampleDomain, "A", nil, blockpageAddr),
			},
			TCPConnect: []*model.ArchivalTCPConnectResult{
				newTCPConnect(blockpageAddr, 80, nil),
			},
			Requests: []*model.ArchivalHTTPRequestResult{
				newRequest("http://www.example.com/", nil, blockpageResponse()),
			},
			Control: exampleControl(80),
		},
		ExpectErr: false,
		ExpectTestKeys: &TestKeys{
			DNSConsistency:  "inconsistent",
			BodyLengthMatch: false,
			BodyProportion:  blockpageProportion(),
			StatusCodeMatch: false,
			HeadersMatch:    false,
			TitleMatch:      false,
			XStatus:         96, // StatusAnomalyDNS | StatusAnomalyHTTPDiff
			Accessible:      false,
			Blocking:        "dns",
		},
	}
}

// httpDiffWithSignals is the case where the signals say that DNS is
// consistent and nothing about the webpage matches.
func httpDiffWithSignals() *TestCase {
	falseValue := false
	return &TestCase{
		Name:  "httpDiffWithSignals",
		Input: "http://www.example.com/",
		Signals: &webconnectivity.Signals{
			DNSAnalysisResult: webconnectivity.DNSAnalysisResult{
				DNSConsistency: optional.Some(webconnectivity.DNSConsistent),
			},
			HTTPAnalysisResult: webconnectivity.HTTPAnalysisResult{
				BodyLengthMatch: &falseValue,
				BodyProportion:  0.25,
				StatusCodeMatch: &falseValue,
				HeadersMatch:    &falseValue,
				TitleMatch:      &falseValue,
			},
		},
		ExpectErr: false,
		ExpectTestKeys: &TestKeys{
			DNSConsistency:  "consistent",
			BodyLengthMatch: false,
			BodyProportion:  0.25,
			StatusCodeMatch: false,
			HeadersMatch:    false,
			TitleMatch:      false,
			XStatus:         64, // StatusAnomalyHTTPDiff
			Accessible:      false,
			Blocking:        "http-diff",
		},
	}
}
