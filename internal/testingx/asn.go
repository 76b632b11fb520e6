// Package testingx contains code useful for testing.
package testingx

import (
	"errors"

	"github.com/ooni/wcanalysis/internal/geoipx"
)

// ErrNoSuchASN is returned by [ASNMap] for unknown addresses.
var ErrNoSuchASN = errors.New("testingx: no such ASN")

// ASNMap maps IP addresses to ASNs without using the geoip database.
type ASNMap map[string]uint

// Lookup implements [geoipx.ASNLookupper].
func (m ASNMap) Lookup(ip string) (asn uint, org string, err error) {
	asn, found := m[ip]
	if !found {
		return geoipx.DefaultASN, geoipx.DefaultNetworkName, ErrNoSuchASN
	}
	return asn, "", nil
}
