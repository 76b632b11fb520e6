package webconnectivity

//
// DNS analysis
//

import (
	"net"

	"github.com/ooni/wcanalysis/internal/errorsx"
	"github.com/ooni/wcanalysis/internal/geoipx"
	"github.com/ooni/wcanalysis/internal/model"
	"github.com/ooni/wcanalysis/internal/netxlite"
	"github.com/ooni/wcanalysis/internal/optional"
	"github.com/ooni/wcanalysis/internal/webconnectivity/internal"
)

const (
	// AnalysisDNSBogon indicates we got any bogon reply
	AnalysisDNSBogon = 1 << iota

	// AnalysisDNSUnexpectedFailure indicates the control could
	// resolve a domain while the probe couldn't
	AnalysisDNSUnexpectedFailure

	// AnalysisDNSUnexpectedAddrs indicates the control resolved
	// different addresses from the probe
	AnalysisDNSUnexpectedAddrs
)

// Log logs the results of the analysis.
func (dar DNSAnalysisResult) Log(logger model.Logger) {
	var consistency *string
	if dar.DNSConsistency.IsSome() {
		v := string(dar.DNSConsistency.Unwrap())
		consistency = &v
	}
	logger.Infof("DNSConsistency: %+v", internal.StringPointerToString(consistency))
}

// DNSExperimentFailure returns the failure of the first probe query for
// domain that failed. We skip AAAA queries failing with dns_no_answer
// because IPv4-only domains are common. We also skip DoH failures since
// they tell us about the DoH service rather than about domain. An empty
// domain matches every query.
func DNSExperimentFailure(domain string, queries []*model.ArchivalDNSLookupResult) *string {
	for _, query := range queries {
		if !queryMatchesDomain(query, domain) {
			continue
		}
		failure := netxlite.LookupFailure(query)
		if failure == nil {
			continue
		}
		if query.QueryType == "AAAA" && *failure == errorsx.FailureDNSNoAnswer {
			continue
		}
		if query.Engine == "doh" {
			continue
		}
		return failure
	}
	return nil
}

func queryMatchesDomain(query *model.ArchivalDNSLookupResult, domain string) bool {
	return domain == "" || netxlite.NormalizeHostname(query.Hostname) == netxlite.NormalizeHostname(domain)
}

// probeAddrs returns all the addresses the probe resolved for domain.
func probeAddrs(domain string, queries []*model.ArchivalDNSLookupResult) (out []string) {
	for _, query := range queries {
		if queryMatchesDomain(query, domain) {
			out = append(out, netxlite.LookupAddrs(query)...)
		}
	}
	return
}

// AnalyzeDNS compares the probe DNS lookups for domain with the control
// DNS result and returns the DNS consistency along with the flags that
// explain it. A nil control means the consistency is unknown. The lookup
// function maps addresses to ASNs; nil means [geoipx.LookupASN].
func AnalyzeDNS(
	logger model.Logger,
	domain string,
	queries []*model.ArchivalDNSLookupResult,
	handshakes []*model.ArchivalTLSOrQUICHandshakeResult,
	control *model.THDNSResult,
	lookup geoipx.ASNLookupper,
) (out DNSAnalysisResult, flags int64) {
	logger = model.ValidLoggerOrDefault(logger)
	if lookup == nil {
		lookup = geoipx.LookupASN
	}
	if control == nil {
		logger.Info("DNS: no control result")
		return
	}
	if net.ParseIP(domain) != nil {
		// nothing to resolve, hence nothing to compare
		out.DNSConsistency = optional.Some(DNSConsistent)
		return
	}
	flags = analyzeDNSFlags(logger, domain, queries, handshakes, control, lookup)
	if flags != 0 {
		logger.Warn("DNSConsistency: inconsistent")
		out.DNSConsistency = optional.Some(DNSInconsistent)
	} else {
		logger.Info("DNSConsistency: consistent")
		out.DNSConsistency = optional.Some(DNSConsistent)
	}
	return
}

func analyzeDNSFlags(
	logger model.Logger,
	domain string,
	queries []*model.ArchivalDNSLookupResult,
	handshakes []*model.ArchivalTLSOrQUICHandshakeResult,
	control *model.THDNSResult,
	lookup geoipx.ASNLookupper,
) int64 {
	probeFailure := DNSExperimentFailure(domain, queries)
	addrs := probeAddrs(domain, queries)
	controlFailure := controlDNSFailure(control)

	if probeFailure != nil && len(addrs) <= 0 {
		switch {
		case controlFailure == nil:
			logger.Warnf("DNS: unexpected failure %s", *probeFailure)
			return AnalysisDNSUnexpectedFailure
		case errorsx.Kind(*probeFailure) == errorsx.Kind(*controlFailure) &&
			sameDNSFailureClass(*probeFailure, *controlFailure):
			return 0
		default:
			logger.Warnf("DNS: probe failure %s differs from control failure %s",
				*probeFailure, *controlFailure)
			return AnalysisDNSUnexpectedFailure
		}
	}

	if len(addrs) <= 0 {
		// neither a failure nor addresses: nothing to compare
		return 0
	}

	if hasBogons(addrs) && !hasBogons(control.Addrs) {
		for _, addr := range addrs {
			if netxlite.IsBogon(addr) {
				logger.Warnf("DNS: got BOGON answer %s for domain %s", addr, domain)
			}
		}
		return AnalysisDNSBogon
	}

	if controlFailure != nil {
		// the control did not resolve anything so we cannot
		// say whether the probe addresses are legit
		return 0
	}

	if intersects(addrs, control.Addrs) {
		return 0
	}

	withoutHandshake := findAddrsWithoutTLSHandshake(domain, addrs, handshakes)
	if len(withoutHandshake) <= 0 {
		return 0
	}
	for _, addr := range withoutHandshake {
		logger.Infof("DNS: address %s: cannot confirm using TLS handshake", addr)
	}

	probeASNs := geoipx.ASNSet(lookup, withoutHandshake)
	for asn := range geoipx.ASNSet(lookup, control.Addrs) {
		if probeASNs[asn] {
			return 0
		}
	}
	for asn := range probeASNs {
		logger.Warnf("DNS: AS%d: only seen by probe", asn)
	}
	return AnalysisDNSUnexpectedAddrs
}

// controlDNSFailure returns the control DNS failure using the probe
// failure strings. A control that resolved no addresses failed with
// dns_no_answer.
func controlDNSFailure(control *model.THDNSResult) *string {
	if control.Failure != nil {
		failure := *control.Failure
		if failure == model.THDNSNameError {
			failure = errorsx.FailureDNSNXDOMAINError
		}
		return &failure
	}
	if len(control.Addrs) <= 0 {
		failure := errorsx.FailureDNSNoAnswer
		return &failure
	}
	return nil
}

// sameDNSFailureClass returns whether the probe and control failures have
// the same meaning. NXDOMAIN only matches NXDOMAIN, while the other DNS
// failures only tell us that resolving did not work.
func sameDNSFailureClass(probe, control string) bool {
	nx := errorsx.FailureDNSNXDOMAINError
	if probe == nx || control == nx {
		return probe == control
	}
	return true
}

func hasBogons(addrs []string) bool {
	for _, addr := range addrs {
		if netxlite.IsBogon(addr) {
			return true
		}
	}
	return false
}

func intersects(probe, control []string) bool {
	set := make(map[string]bool)
	for _, addr := range control {
		set[addr] = true
	}
	for _, addr := range probe {
		if set[addr] {
			return true
		}
	}
	return false
}

// findAddrsWithoutTLSHandshake returns the addresses for which we could
// not complete a verified TLS handshake using domain as the SNI.
func findAddrsWithoutTLSHandshake(
	domain string, addrs []string, handshakes []*model.ArchivalTLSOrQUICHandshakeResult) (out []string) {
	validated := make(map[string]bool)
	for _, hs := range handshakes {
		if hs.Failure != nil || hs.NoTLSVerify {
			continue
		}
		if netxlite.NormalizeHostname(hs.ServerName) != netxlite.NormalizeHostname(domain) {
			continue
		}
		ip, _, err := net.SplitHostPort(hs.Address)
		if err != nil {
			continue
		}
		validated[ip] = true
	}
	for _, addr := range addrs {
		if !validated[addr] {
			out = append(out, addr)
		}
	}
	return
}
