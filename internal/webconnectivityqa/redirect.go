package webconnectivityqa

import (
	"github.com/ooni/wcanalysis/internal/model"
	"github.com/ooni/wcanalysis/internal/webconnectivity"
)

// newRedirectCase returns a test case where www.example.com redirects to
// www.example.org and fetching the latter fails with failure. The connect
// argument is the failure of connecting to www.example.org, if any, and
// the dnsFailure argument is the failure of resolving it, if any.
func newRedirectCase(name string, failure string, connect, dnsFailure *string, status int64, blocking string) *TestCase {
	obs := &webconnectivity.Observations{
		Input: "http://www.example.com/",
		Queries: []*model.ArchivalDNSLookupResult{
			newQuery(exampleDomain, "A", nil, exampleAddr),
		},
		TCPConnect: []*model.ArchivalTCPConnectResult{
			newTCPConnect(exampleAddr, 80, nil),
		},
		Requests: []*model.ArchivalHTTPRequestResult{
			newRequest("http://www.example.org/", newFailure(failure), nil),
			newRequest("http://www.example.com/", nil, redirectResponse("http://www.example.org/")),
		},
		Control: exampleControl(80),
	}
	if dnsFailure != nil {
		obs.Queries = append(obs.Queries, newQuery(exampleOrgDomain, "A", dnsFailure))
	} else {
		obs.Queries = append(obs.Queries, newQuery(exampleOrgDomain, "A", nil, exampleOrgAddr))
		obs.TCPConnect = append(obs.TCPConnect, newTCPConnect(exampleOrgAddr, 80, connect))
	}
	return &TestCase{
		Name:         name,
		Input:        "http://www.example.com/",
		Observations: obs,
		ExpectErr:    false,
		ExpectTestKeys: &TestKeys{
			DNSConsistency:        "consistent",
			HTTPExperimentFailure: failure,
			XStatus:               status,
			Accessible:            false,
			Blocking:              blocking,
		},
	}
}

// redirectWithConsistentDNSAndThenConnectionRefusedForHTTP is a scenario where the redirect
// consists of consistent DNS followed by connection refused for HTTP.
func redirectWithConsistentDNSAndThenConnectionRefusedForHTTP() *TestCase {
	return newRedirectCase(
		"redirectWithConsistentDNSAndThenConnectionRefusedForHTTP",
		"connection_refused",
		newFailure("connection_refused"),
		nil,
		8320, // StatusExperimentHTTP | StatusAnomalyConnect
		"http-failure",
	)
}

// redirectWithConsistentDNSAndThenConnectionResetForHTTP is a scenario where the redirect
// consists of consistent DNS followed by an RST after the Host header for HTTP.
func redirectWithConsistentDNSAndThenConnectionResetForHTTP() *TestCase {
	return newRedirectCase(
		"redirectWithConsistentDNSAndThenConnectionResetForHTTP",
		"connection_reset",
		nil,
		nil,
		8448, // StatusExperimentHTTP | StatusAnomalyReadWrite
		"http-failure",
	)
}

// redirectWithConsistentDNSAndThenEOFForHTTP is a scenario where the redirect
// consists of consistent DNS followed by a FIN after the Host header for HTTP.
func redirectWithConsistentDNSAndThenEOFForHTTP() *TestCase {
	return newRedirectCase(
		"redirectWithConsistentDNSAndThenEOFForHTTP",
		"eof_error",
		nil,
		nil,
		8448, // StatusExperimentHTTP | StatusAnomalyReadWrite
		"http-failure",
	)
}

// redirectWithConsistentDNSAndThenNXDOMAIN is a scenario where the redirect
// consists of consistent DNS followed by NXDOMAIN for the redirect target.
func redirectWithConsistentDNSAndThenNXDOMAIN() *TestCase {
	return newRedirectCase(
		"redirectWithConsistentDNSAndThenNXDOMAIN",
		"dns_nxdomain_error",
		nil,
		newFailure("dns_nxdomain_error"),
		8224, // StatusExperimentHTTP | StatusAnomalyDNS
		"dns",
	)
}

// redirectWithConsistentDNSAndThenTimeoutForHTTP is a scenario where the redirect
// consists of consistent DNS followed by a connect timeout for HTTP.
func redirectWithConsistentDNSAndThenTimeoutForHTTP() *TestCase {
	return newRedirectCase(
		"redirectWithConsistentDNSAndThenTimeoutForHTTP",
		"generic_timeout_error",
		newFailure("generic_timeout_error"),
		nil,
		8704, // StatusExperimentHTTP | StatusAnomalyUnknown
		"http-failure",
	)
}
