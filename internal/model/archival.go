package model

//
// Archival format: the data collected by the probe, as submitted
// by the signal collector. We only model the fields we analyze.
//
// See https://github.com/ooni/spec/tree/master/data-formats
//

//
// DNS lookup
//

// ArchivalDNSLookupResult is the result of a DNS lookup.
//
// See https://github.com/ooni/spec/blob/master/data-formats/df-002-dnst.md.
type ArchivalDNSLookupResult struct {
	Answers         []ArchivalDNSAnswer `json:"answers"`
	Engine          string              `json:"engine"`
	Failure         *string             `json:"failure"`
	Hostname        string              `json:"hostname"`
	QueryType       string              `json:"query_type"`
	RawResponse     []byte              `json:"raw_response,omitempty"`
	Rcode           int64               `json:"rcode,omitempty"`
	ResolverAddress string              `json:"resolver_address"`
	T               float64             `json:"t"`
	TransactionID   int64               `json:"transaction_id,omitempty"`
}

// ArchivalDNSAnswer is a DNS answer.
type ArchivalDNSAnswer struct {
	ASN        int64   `json:"asn,omitempty"`
	ASOrgName  string  `json:"as_org_name,omitempty"`
	AnswerType string  `json:"answer_type"`
	Hostname   string  `json:"hostname,omitempty"`
	IPv4       string  `json:"ipv4,omitempty"`
	IPv6       string  `json:"ipv6,omitempty"`
	TTL        *uint32 `json:"ttl"`
}

//
// TCP connect
//

// ArchivalTCPConnectResult contains the result of a TCP connect.
//
// See https://github.com/ooni/spec/blob/master/data-formats/df-005-tcpconnect.md.
type ArchivalTCPConnectResult struct {
	IP            string                   `json:"ip"`
	Port          int                      `json:"port"`
	Status        ArchivalTCPConnectStatus `json:"status"`
	T             float64                  `json:"t"`
	TransactionID int64                    `json:"transaction_id,omitempty"`
}

// ArchivalTCPConnectStatus is the status of ArchivalTCPConnectResult.
type ArchivalTCPConnectStatus struct {
	Blocked *bool   `json:"blocked,omitempty"`
	Failure *string `json:"failure"`
	Success bool    `json:"success"`
}

//
// TLS handshake
//

// ArchivalTLSOrQUICHandshakeResult is the result of a TLS or QUIC handshake.
//
// See https://github.com/ooni/spec/blob/master/data-formats/df-006-tlshandshake.md
type ArchivalTLSOrQUICHandshakeResult struct {
	Network            string  `json:"network"`
	Address            string  `json:"address"`
	CipherSuite        string  `json:"cipher_suite"`
	Failure            *string `json:"failure"`
	NegotiatedProtocol string  `json:"negotiated_protocol"`
	NoTLSVerify        bool    `json:"no_tls_verify"`
	ServerName         string  `json:"server_name"`
	T                  float64 `json:"t"`
	TLSVersion         string  `json:"tls_version"`
	TransactionID      int64   `json:"transaction_id,omitempty"`
}

//
// HTTP
//

// ArchivalHTTPRequestResult is the result of sending an HTTP request.
//
// See https://github.com/ooni/spec/blob/master/data-formats/df-001-httpt.md.
type ArchivalHTTPRequestResult struct {
	Network       string               `json:"network,omitempty"`
	Address       string               `json:"address,omitempty"`
	Failure       *string              `json:"failure"`
	Request       ArchivalHTTPRequest  `json:"request"`
	Response      ArchivalHTTPResponse `json:"response"`
	T             float64              `json:"t"`
	TransactionID int64                `json:"transaction_id,omitempty"`
}

// ArchivalHTTPRequest contains an HTTP request.
type ArchivalHTTPRequest struct {
	Body            MaybeBinary            `json:"body"`
	BodyIsTruncated bool                   `json:"body_is_truncated"`
	HeadersList     []ArchivalHTTPHeader   `json:"headers_list"`
	Headers         map[string]MaybeBinary `json:"headers"`
	Method          string                 `json:"method"`
	URL             string                 `json:"url"`
}

// ArchivalHTTPResponse contains an HTTP response.
type ArchivalHTTPResponse struct {
	Body            MaybeBinary            `json:"body"`
	BodyIsTruncated bool                   `json:"body_is_truncated"`
	Code            int64                  `json:"code"`
	HeadersList     []ArchivalHTTPHeader   `json:"headers_list"`
	Headers         map[string]MaybeBinary `json:"headers"`
}

// ArchivalHTTPHeader is a single HTTP header.
type ArchivalHTTPHeader [2]MaybeBinary

// HeaderKeys returns the header names of the response, preferring
// Headers and falling back to HeadersList when Headers is empty.
func (r *ArchivalHTTPResponse) HeaderKeys() []string {
	var out []string
	if len(r.Headers) > 0 {
		for key := range r.Headers {
			out = append(out, key)
		}
		return out
	}
	for _, entry := range r.HeadersList {
		out = append(out, entry[0].String())
	}
	return out
}
