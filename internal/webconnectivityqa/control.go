package webconnectivityqa

import (
	"github.com/ooni/wcanalysis/internal/model"
	"github.com/ooni/wcanalysis/internal/webconnectivity"
)

// controlFailureWithSuccessfulHTTPWebsite is the case where the control
// cannot be reached but the probe fetches an HTTP website just fine.
func controlFailureWithSuccessfulHTTPWebsite() *TestCase {
	return &TestCase{
		Name:  "controlFailureWithSuccessfulHTTPWebsite",
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
				newRequest("http://www.example.com/", nil, webPageResponse()),
			},
			ControlFailure: newFailure("connection_reset"),
		},
		ExpectErr: false,
		ExpectTestKeys: &TestKeys{
			ControlFailure: "connection_reset",
			XStatus:        8, // StatusAnomalyControlUnreachable
		},
		Checkers: []Checker{&ControlFailureChecker{}},
	}
}

// controlFailureWithSuccessfulHTTPSWebsite is the case where the control
// cannot be reached but the probe fetches an HTTPS website just fine.
func controlFailureWithSuccessfulHTTPSWebsite() *TestCase {
	return &TestCase{
		Name:  "controlFailureWithSuccessfulHTTPSWebsite",
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
			ControlFailure: newFailure("generic_timeout_error"),
		},
		ExpectErr: false,
		ExpectTestKeys: &TestKeys{
			ControlFailure: "generic_timeout_error",
			XStatus:        8, // StatusAnomalyControlUnreachable
		},
		Checkers: []Checker{&ControlFailureChecker{}},
	}
}

// controlFailureWithConnectionReset is the case where both the control
// and the probe fail. Without the control we cannot blame the network.
func controlFailureWithConnectionReset() *TestCase {
	return &TestCase{
		Name:  "controlFailureWithConnectionReset",
		Input: "http://www.example.com/",
		Signals: &webconnectivity.Signals{
			ControlFailure:        newFailure("unknown_failure: control returned no response"),
			HTTPExperimentFailure: newFailure("connection_reset"),
		},
		ExpectErr: false,
		ExpectTestKeys: &TestKeys{
			ControlFailure:        "unknown_failure: control returned no response",
			HTTPExperimentFailure: "connection_reset",
			XStatus:               8, // StatusAnomalyControlUnreachable
		},
		Checkers: []Checker{&ControlFailureChecker{}},
	}
}

// controlFailureWithContentComparison is the case where the signals
// contain a content comparison even though the control failed. No
// analyzer produces these signals so classifying them fails.
func controlFailureWithContentComparison() *TestCase {
	matches := true
	return &TestCase{
		Name:  "controlFailureWithContentComparison",
		Input: "http://www.example.com/",
		Signals: &webconnectivity.Signals{
			ControlFailure: newFailure("connection_reset"),
			HTTPAnalysisResult: webconnectivity.HTTPAnalysisResult{
				BodyLengthMatch: &matches,
				BodyProportion:  1,
			},
		},
		ExpectErr: true,
	}
}

// controlMissingWithoutFailure is the case where we have neither
// the control response nor the reason why it is missing.
func controlMissingWithoutFailure() *TestCase {
	return &TestCase{
		Name:  "controlMissingWithoutFailure",
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
				newRequest("http://www.example.com/", nil, webPageResponse()),
			},
		},
		ExpectErr: false,
		ExpectTestKeys: &TestKeys{
			ControlFailure: "unknown_failure: control returned no response",
			XStatus:        8, // StatusAnomalyControlUnreachable
		},
		Checkers: []Checker{&ControlFailureChecker{}},
	}
}
