package netxlite

//
// Decode raw DNS responses
//

import (
	"github.com/miekg/dns"
	"github.com/ooni/wcanalysis/internal/errorsx"
	"github.com/ooni/wcanalysis/internal/model"
)

// DecodeDNSResponse decodes a raw DNS response and returns the IPv4
// and IPv6 addresses it contains. A non-success rcode maps to the same
// errors a resolver would have returned, and a success without
// addresses maps to [errorsx.ErrDNSNoAnswer].
func DecodeDNSResponse(raw []byte) ([]string, error) {
	reply := new(dns.Msg)
	if err := reply.Unpack(raw); err != nil {
		return nil, err
	}
	switch reply.Rcode {
	case dns.RcodeSuccess:
	case dns.RcodeNameError:
		return nil, errorsx.ErrDNSNoSuchHost
	case dns.RcodeRefused:
		return nil, errorsx.ErrDNSRefused
	case dns.RcodeServerFailure:
		return nil, errorsx.ErrDNSServfail
	default:
		return nil, errorsx.ErrDNSMisbehaving
	}
	var addrs []string
	for _, answer := range reply.Answer {
		switch avalue := answer.(type) {
		case *dns.A:
			addrs = append(addrs, avalue.A.String())
		case *dns.AAAA:
			addrs = append(addrs, avalue.AAAA.String())
		}
	}
	if len(addrs) <= 0 {
		return nil, errorsx.ErrDNSNoAnswer
	}
	return addrs, nil
}

// LookupAddrs returns the addresses of a DNS lookup. We prefer the
// parsed answers and fall back to decoding the raw response, which is
// what we have when the collector only saved the wire bytes.
func LookupAddrs(result *model.ArchivalDNSLookupResult) []string {
	var addrs []string
	for _, answer := range result.Answers {
		switch answer.AnswerType {
		case "A":
			addrs = append(addrs, answer.IPv4)
		case "AAAA":
			addrs = append(addrs, answer.IPv6)
		}
	}
	if len(addrs) > 0 || len(result.RawResponse) <= 0 {
		return addrs
	}
	addrs, _ = DecodeDNSResponse(result.RawResponse)
	return addrs
}

// LookupFailure returns the failure of a DNS lookup. When the collector
// saved the raw response but not the failure, we classify the failure
// from the response itself.
func LookupFailure(result *model.ArchivalDNSLookupResult) *string {
	if result.Failure != nil || len(result.RawResponse) <= 0 {
		return result.Failure
	}
	if len(result.Answers) > 0 {
		return nil
	}
	_, err := DecodeDNSResponse(result.RawResponse)
	if err == nil {
		return nil
	}
	failure := errorsx.ClassifyResolverError(err)
	return &failure
}
