package webconnectivityqa

import (
	"github.com/ooni/wcanalysis/internal/model"
	"github.com/ooni/wcanalysis/internal/webconnectivity"
)

// newWebsiteDownControl returns a control response where the control
// resolver fails with the given failure.
func newWebsiteDownControl(failure string) *model.THResponse {
	return &model.THResponse{
		TCPConnect: map[string]model.THTCPConnectResult{},
		HTTPRequest: model.THHTTPRequestResult{
			BodyLength: -1,
			Failure:    newFailure("dns_lookup_error"),
			StatusCode: -1,
		},
		DNS: model.THDNSResult{
			Failure: newFailure(failure),
			Addrs:   []string{},
		},
	}
}

// websiteDownNXDOMAIN is the case where the domain does not exist
// anymore, so both the probe and the control get NXDOMAIN.
func websiteDownNXDOMAIN() *TestCase {
	return &TestCase{
		Name:  "websiteDownNXDOMAIN",
		Input: "http://www.example.com/",
		Observations: &webconnectivity.Observations{
			Input: "http://www.example.com/",
			Queries: []*model.ArchivalDNSLookupResult{
				newQuery(exampleDomain, "A", newFailure("dns_nxdomain_error")),
			},
			Control: newWebsiteDownControl(model.THDNSNameError),
		},
		ExpectErr: false,
		ExpectTestKeys: &TestKeys{
			DNSExperimentFailure: "dns_nxdomain_error",
			DNSConsistency:       "consistent",
			XStatus:              2052, // StatusExperimentDNS | StatusSuccessNXDOMAIN
			Accessible:           true,
			Blocking:             false,
		},
	}
}

// websiteDownNXDOMAINWithHTTPFailure is like websiteDownNXDOMAIN except
// that the probe still attempts the fetch, which fails to resolve.
func websiteDownNXDOMAINWithHTTPFailure() *TestCase {
	return &TestCase{
		Name:  "websiteDownNXDOMAINWithHTTPFailure",
		Input: "http://www.example.com/",
		Observations: &webconnectivity.Observations{
			Input: "http://www.example.com/",
			Queries: []*model.ArchivalDNSLookupResult{
				newQuery(exampleDomain, "A", newFailure("dns_nxdomain_error")),
				newQuery(exampleDomain, "AAAA", newFailure("dns_nxdomain_error")),
			},
			Requests: []*model.ArchivalHTTPRequestResult{
				newRequest("http://www.example.com/", newFailure("dns_nxdomain_error"), nil),
			},
			Control: newWebsiteDownControl(model.THDNSNameError),
		},
		ExpectErr: false,
		ExpectTestKeys: &TestKeys{
			DNSExperimentFailure:  "dns_nxdomain_error",
			DNSConsistency:        "consistent",
			HTTPExperimentFailure: "dns_nxdomain_error",
			XStatus:               2052, // StatusExperimentDNS | StatusSuccessNXDOMAIN
			Accessible:            true,
			Blocking:              false,
		},
	}
}

// websiteDownServerMisbehaving is the case where the authoritative
// servers of the domain are broken for the probe and the control.
func websiteDownServerMisbehaving() *TestCase {
	return &TestCase{
		Name:  "websiteDownServerMisbehaving",
		Input: "http://www.example.com/",
		Observations: &webconnectivity.Observations{
			Input: "http://www.example.com/",
			Queries: []*model.ArchivalDNSLookupResult{
				newQuery(exampleDomain, "A", newFailure("dns_server_misbehaving")),
			},
			Control: newWebsiteDownControl("dns_server_failure"),
		},
		ExpectErr: false,
		ExpectTestKeys: &TestKeys{
			DNSExperimentFailure: "dns_server_misbehaving",
			DNSConsistency:       "consistent",
			XStatus:              2560, // StatusExperimentDNS | StatusAnomalyUnknown
		},
	}
}

// websiteDownInvalidURL is the case where the input is not a valid URL.
func websiteDownInvalidURL() *TestCase {
	return &TestCase{
		Name:  "websiteDownInvalidURL",
		Input: "http://[::1",
		Observations: &webconnectivity.Observations{
			Input: "http://[::1",
		},
		ExpectErr: true,
	}
}
