package model

//
// Control vantage point (aka test helper)
//
// See https://github.com/ooni/spec/blob/master/nettests/ts-017-web-connectivity.md
//

// THDNSNameError is the error returned by the control on NXDOMAIN
const THDNSNameError = "dns_name_error"

// THTCPConnectResult is the result of the TCP connect
// attempt performed by the control vantage point.
type THTCPConnectResult struct {
	Status  bool    `json:"status"`
	Failure *string `json:"failure"`
}

// THTLSHandshakeResult is the result of the TLS handshake
// attempt performed by the control vantage point.
type THTLSHandshakeResult struct {
	ServerName string  `json:"server_name"`
	Status     bool    `json:"status"`
	Failure    *string `json:"failure"`
}

// THHTTPRequestResult is the result of the HTTP request
// performed by the control vantage point.
type THHTTPRequestResult struct {
	BodyLength int64             `json:"body_length"`
	Failure    *string           `json:"failure"`
	Title      string            `json:"title"`
	Headers    map[string]string `json:"headers"`
	StatusCode int64             `json:"status_code"`
}

// THDNSResult is the result of the DNS lookup
// performed by the control vantage point.
type THDNSResult struct {
	Failure *string  `json:"failure"`
	Addrs   []string `json:"addrs"`
}

// THIPInfo contains information about IP addresses resolved either
// by the probe or by the control.
type THIPInfo struct {
	// ASN contains the address' AS number.
	ASN int64 `json:"asn"`

	// Flags contains flags describing this address.
	Flags int64 `json:"flags"`
}

const (
	// THIPInfoFlagResolvedByProbe indicates that the probe has
	// resolved this IP address.
	THIPInfoFlagResolvedByProbe = 1 << iota

	// THIPInfoFlagResolvedByTH indicates that the control
	// has resolved this IP address.
	THIPInfoFlagResolvedByTH

	// THIPInfoFlagIsBogon indicates that the address is a bogon
	THIPInfoFlagIsBogon

	// THIPInfoFlagValidForDomain indicates that an IP address
	// is valid for the domain because it works with TLS
	THIPInfoFlagValidForDomain
)

// THResponse is the response from the control vantage point.
type THResponse struct {
	TCPConnect   map[string]THTCPConnectResult   `json:"tcp_connect"`
	TLSHandshake map[string]THTLSHandshakeResult `json:"tls_handshake,omitempty"`
	HTTPRequest  THHTTPRequestResult             `json:"http_request"`
	DNS          THDNSResult                     `json:"dns"`
	IPInfo       map[string]*THIPInfo            `json:"ip_info,omitempty"`
}
