// Package geoipx contains code to use the embedded MaxMind-like databases.
package geoipx

import (
	"net"
	"sync"

	"github.com/ooni/probe-assets/assets"
	"github.com/ooni/wcanalysis/internal/runtimex"
	"github.com/oschwald/maxminddb-golang"
)

const (
	// DefaultASN is the ASN returned when the lookup fails.
	DefaultASN = 0

	// DefaultNetworkName is the network name returned when the lookup fails.
	DefaultNetworkName = ""
)

// openDatabase opens the embedded database once and shares it
// among all the lookups, which only read from it.
var openDatabase = sync.OnceValue(func() *maxminddb.Reader {
	db, err := maxminddb.FromBytes(assets.OOMMDBDatabaseBytes)
	runtimex.PanicOnError(err, "cannot load embedded geoip2 database")
	return db
})

// LookupASN maps [ip] to an AS number and an AS organization name.
func LookupASN(ip string) (asn uint, org string, err error) {
	asn, org = DefaultASN, DefaultNetworkName
	record, err := assets.OOMMDBLooup(openDatabase(), net.ParseIP(ip))
	if err != nil {
		return
	}
	asn = record.AutonomousSystemNumber
	if record.AutonomousSystemOrganization != "" {
		org = record.AutonomousSystemOrganization
	}
	return
}

// ASNLookupper is the signature of [LookupASN].
type ASNLookupper func(ip string) (asn uint, org string, err error)

// ASNSet returns the set of ASNs of the given addresses using the
// given lookupper. Addresses we cannot map are skipped.
func ASNSet(lookup ASNLookupper, addrs []string) map[uint]bool {
	out := make(map[uint]bool)
	for _, addr := range addrs {
		asn, _, err := lookup(addr)
		if err != nil || asn == DefaultASN {
			continue
		}
		out[asn] = true
	}
	return out
}
