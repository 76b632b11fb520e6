package webconnectivityqa

//
// Building blocks for the observations used by the test cases
//

import (
	"net"
	"strconv"

	"github.com/ooni/wcanalysis/internal/geoipx"
	"github.com/ooni/wcanalysis/internal/model"
	"github.com/ooni/wcanalysis/internal/testingx"
)

const (
	exampleDomain    = "www.example.com"
	exampleOrgDomain = "www.example.org"

	// exampleAddr is the address of www.example.com.
	exampleAddr = "93.184.216.34"

	// exampleOrgAddr is the address of www.example.org.
	exampleOrgAddr = "93.184.215.14"

	// proxyAddr is the address of a transparent proxy run by the ISP.
	proxyAddr = "130.192.182.17"

	// blockpageAddr is the private address of the ISP blockpage server.
	blockpageAddr = "10.10.34.35"

	// cdnAddr is an address in a network unrelated to www.example.com.
	cdnAddr = "104.16.249.249"
)

// ScenarioASNs maps the addresses used by the test cases to their
// networks so that running them does not depend on the geoip database.
func ScenarioASNs() geoipx.ASNLookupper {
	asns := testingx.ASNMap{
		exampleAddr:    15133,
		exampleOrgAddr: 15133,
		proxyAddr:      137,
		cdnAddr:        13335,
	}
	return asns.Lookup
}

const exampleWebPage = `<!doctype html>
<html>
<head>
    <title>Default Web Page</title>
</head>
<body>
<div>
    <h1>Default Web Page</h1>
    <p>This is the default web page of the default domain.</p>
    <p>You may use this domain in literature without prior coordination
    or asking for permission.</p>
</div>
</body>
</html>
`

const blockpageWebPage = `<!doctype html>
<html>
<head>
    <title>Access Denied</title>
</head>
<body>
<div>
    <h1>Access Denied</h1>
    <p>This website has been blocked by order of the authorities.</p>
</div>
</body>
</html>
`

// newFailure returns a pointer to the given failure string.
func newFailure(failure string) *string {
	return &failure
}

func newQuery(domain, queryType string, failure *string, addrs ...string) *model.ArchivalDNSLookupResult {
	query := &model.ArchivalDNSLookupResult{
		Engine:          "udp",
		Failure:         failure,
		Hostname:        domain,
		QueryType:       queryType,
		ResolverAddress: "8.8.8.8:53",
	}
	for _, addr := range addrs {
		if net.ParseIP(addr).To4() != nil {
			query.Answers = append(query.Answers, model.ArchivalDNSAnswer{AnswerType: "A", IPv4: addr})
			continue
		}
		query.Answers = append(query.Answers, model.ArchivalDNSAnswer{AnswerType: "AAAA", IPv6: addr})
	}
	return query
}

func newTCPConnect(addr string, port int, failure *string) *model.ArchivalTCPConnectResult {
	return &model.ArchivalTCPConnectResult{
		IP:   addr,
		Port: port,
		Status: model.ArchivalTCPConnectStatus{
			Failure: failure,
			Success: failure == nil,
		},
	}
}

func newTLSHandshake(addr, serverName string, failure *string) *model.ArchivalTLSOrQUICHandshakeResult {
	out := &model.ArchivalTLSOrQUICHandshakeResult{
		Network:    "tcp",
		Address:    net.JoinHostPort(addr, "443"),
		Failure:    failure,
		ServerName: serverName,
	}
	if failure == nil {
		out.CipherSuite = "TLS_AES_128_GCM_SHA256"
		out.NegotiatedProtocol = "http/1.1"
		out.TLSVersion = "TLSv1.3"
	}
	return out
}

func newRequest(URL string, failure *string, resp *model.ArchivalHTTPResponse) *model.ArchivalHTTPRequestResult {
	out := &model.ArchivalHTTPRequestResult{
		Failure: failure,
		Request: model.ArchivalHTTPRequest{
			Headers: map[string]model.MaybeBinary{
				"Host": model.Text(exampleDomain),
			},
			Method: "GET",
			URL:    URL,
		},
	}
	if resp != nil {
		out.Response = *resp
	}
	return out
}

// webPageResponse is the response of the legit web server.
func webPageResponse() *model.ArchivalHTTPResponse {
	return &model.ArchivalHTTPResponse{
		Body: model.Text(exampleWebPage),
		Code: 200,
		Headers: map[string]model.MaybeBinary{
			"Content-Type": model.Text("text/html; charset=utf-8"),
			"Date":         model.Text("Thu, 24 Aug 2023 14:35:29 GMT"),
			"X-Cache":      model.Text("HIT"),
		},
	}
}

// blockpageResponse is the response of the ISP blockpage server.
func blockpageResponse() *model.ArchivalHTTPResponse {
	return &model.ArchivalHTTPResponse{
		Body: model.Text(blockpageWebPage),
		Code: 451,
		Headers: map[string]model.MaybeBinary{
			"Content-Type": model.Text("text/html"),
			"X-Blocked-By": model.Text("ISP"),
		},
	}
}

// redirectResponse is a redirect to the given location.
func redirectResponse(location string) *model.ArchivalHTTPResponse {
	return &model.ArchivalHTTPResponse{
		Code: 302,
		Headers: map[string]model.MaybeBinary{
			"Location": model.Text(location),
		},
	}
}

// blockpageProportion is the body_proportion of the blockpage.
func blockpageProportion() float64 {
	return float64(len(blockpageWebPage)) / float64(len(exampleWebPage))
}

// exampleControl is the control response for www.example.com.
func exampleControl(port int) *model.THResponse {
	endpoint := net.JoinHostPort(exampleAddr, strconv.Itoa(port))
	out := &model.THResponse{
		TCPConnect: map[string]model.THTCPConnectResult{
			endpoint: {Status: true},
		},
		HTTPRequest: model.THHTTPRequestResult{
			BodyLength: int64(len(exampleWebPage)),
			Headers: map[string]string{
				"Content-Type": "text/html; charset=utf-8",
				"Date":         "Thu, 24 Aug 2023 14:35:29 GMT",
				"X-Cache":      "HIT",
			},
			StatusCode: 200,
			Title:      "Default Web Page",
		},
		DNS: model.THDNSResult{Addrs: []string{exampleAddr}},
		IPInfo: map[string]*model.THIPInfo{
			exampleAddr: {ASN: 15133, Flags: model.THIPInfoFlagResolvedByTH},
		},
	}
	if port == 443 {
		out.TLSHandshake = map[string]model.THTLSHandshakeResult{
			endpoint: {ServerName: exampleDomain, Status: true},
		}
	}
	return out
}

// exampleControlWithHTTPFailure is the control response for a website
// the control cannot fetch either.
func exampleControlWithHTTPFailure(failure string) *model.THResponse {
	out := exampleControl(443)
	endpoint := net.JoinHostPort(exampleAddr, "443")
	out.TLSHandshake[endpoint] = model.THTLSHandshakeResult{
		ServerName: exampleDomain,
		Status:     false,
		Failure:    newFailure(failure),
	}
	out.HTTPRequest = model.THHTTPRequestResult{
		BodyLength: -1,
		Failure:    newFailure(failure),
		StatusCode: -1,
	}
	return out
}
