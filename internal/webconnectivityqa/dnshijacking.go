package webconnectivityqa

import (
	"github.com/ooni/wcanalysis/internal/model"
	"github.com/ooni/wcanalysis/internal/webconnectivity"
)

// dnsHijackingToProxyWithHTTPURL is the case where an ISP rule forces clients to always
// use an explicit passthrough proxy for a given domain. The proxy serves the legit webpage
// so the DNS is inconsistent but we still get the expected content.
func dnsHijackingToProxyWithHTTPURL() *TestCase {
	return &TestCase{
		Name:  "dnsHijackingToProxyWithHTTPURL",
		Input: "http://www.example.com/",
		Observations: &webconnectivity.Observations{
			Input: "http://www.example.com/",
			Queries: []*model.ArchivalDNSLookupResult{
				newQuery(exampleDomain, "A", nil, proxyAddr),
			},
			TCPConnect: []*model.ArchivalTCPConnectResult{
				newTCPConnect(proxyAddr, 80, nil),
			},
			Requests: []*model.ArchivalHTTPRequestResult{
				newRequest("http://www.example.com/", nil, webPageResponse()),
			},
			Control: exampleControl(80),
		},
		ExpectErr: false,
		ExpectTestKeys: &TestKeys{
			DNSConsistency:  "inconsistent",
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

// dnsHijackingToProxyWithHTTPSURL is like dnsHijackingToProxyWithHTTPURL but
// the TLS handshake with the proxy validates the proxy address.
func dnsHijackingToProxyWithHTTPSURL() *TestCase {
	return &TestCase{
		Name:  "dnsHijackingToProxyWithHTTPSURL",
		Input: "https://www.example.com/",
		Observations: &webconnectivity.Observations{
			Input: "https://www.example.com/",
			Queries: []*model.ArchivalDNSLookupResult{
				newQuery(exampleDomain, "A", nil, proxyAddr),
			},
			TCPConnect: []*model.ArchivalTCPConnectResult{
				newTCPConnect(proxyAddr, 443, nil),
			},
			TLSHandshakes: []*model.ArchivalTLSOrQUICHandshakeResult{
				newTLSHandshake(proxyAddr, exampleDomain, nil),
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
