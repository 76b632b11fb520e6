package netxlite

//
// Bogon
//
// This file helps us to decide if an IP address is a bogon.
//

import (
	"net/netip"

	"github.com/ooni/wcanalysis/internal/runtimex"
)

// IsBogon returns whether an IP address is bogon. Passing to this
// function a non-IP address causes it to return true.
func IsBogon(address string) bool {
	addr, err := netip.ParseAddr(address)
	return err != nil || isBogon(addr)
}

// IsLoopback returns whether an IP address is loopback. Passing to this
// function a non-IP address causes it to return true.
func IsLoopback(address string) bool {
	addr, err := netip.ParseAddr(address)
	return err != nil || addr.IsLoopback()
}

var (
	bogons4 []netip.Prefix
	bogons6 []netip.Prefix
)

func expandBogons(cidrs []string) (out []netip.Prefix) {
	for _, cidr := range cidrs {
		prefix, err := netip.ParsePrefix(cidr)
		runtimex.PanicOnError(err, "netip.ParsePrefix failed")
		out = append(out, prefix)
	}
	return
}

func init() {
	// List extracted from https://ipinfo.io/bogon
	bogons4 = expandBogons([]string{
		"0.0.0.0/8",          // "This" network
		"10.0.0.0/8",         // Private-use networks
		"100.64.0.0/10",      // Carrier-grade NAT
		"127.0.0.0/8",        // Loopback
		"127.0.53.53/32",     // Name collision occurrence
		"169.254.0.0/16",     // Link local
		"172.16.0.0/12",      // Private-use networks
		"192.0.0.0/24",       // IETF protocol assignments
		"192.0.2.0/24",       // TEST-NET-1
		"192.168.0.0/16",     // Private-use networks
		"198.18.0.0/15",      // Network interconnect device benchmark testing
		"198.51.100.0/24",    // TEST-NET-2
		"203.0.113.0/24",     // TEST-NET-3
		"224.0.0.0/4",        // Multicast
		"240.0.0.0/4",        // Reserved for future use
		"255.255.255.255/32", // Limited broadcast
	})
	bogons6 = expandBogons([]string{
		"::/128",           // Node-scope unicast unspecified address
		"::1/128",          // Node-scope unicast loopback address
		"::ffff:0:0/96",    // IPv4-mapped addresses
		"::/96",            // IPv4-compatible addresses
		"100::/64",         // Remotely triggered black hole addresses
		"2001:10::/28",     // ORCHID
		"2001:db8::/32",    // Documentation prefix
		"fc00::/7",         // Unique local addresses (ULA)
		"fe80::/10",        // Link-local unicast
		"fec0::/10",        // Site-local unicast (deprecated)
		"ff00::/8",         // Multicast
		"2002::/24",        // 6to4 bogon (0.0.0.0/8)
		"2002:a00::/24",    // 6to4 bogon (10.0.0.0/8)
		"2002:7f00::/24",   // 6to4 bogon (127.0.0.0/8)
		"2002:a9fe::/32",   // 6to4 bogon (169.254.0.0/16)
		"2002:ac10::/28",   // 6to4 bogon (172.16.0.0/12)
		"2002:c0a8::/32",   // 6to4 bogon (192.168.0.0/16)
		"2001::/40",        // Teredo bogon (0.0.0.0/8)
		"2001:0:a00::/40",  // Teredo bogon (10.0.0.0/8)
		"2001:0:7f00::/40", // Teredo bogon (127.0.0.0/8)
	})
}

func isBogon(addr netip.Addr) bool {
	if addr.IsLoopback() || addr.IsLinkLocalUnicast() || addr.IsLinkLocalMulticast() {
		return true
	}
	bogons := bogons6
	if addr.Is4() {
		bogons = bogons4
	}
	for _, prefix := range bogons {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}
