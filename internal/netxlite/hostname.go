package netxlite

import (
	"strings"

	"github.com/ooni/wcanalysis/internal/idnax"
)

// NormalizeHostname returns the lowercase ASCII form of hostname
// without the trailing dot so that names in queries, SNIs and URLs
// compare equal. On IDNA failure we fall back to lowercasing.
func NormalizeHostname(hostname string) string {
	hostname = strings.TrimSuffix(hostname, ".")
	if ascii, err := idnax.ToASCII(hostname); err == nil {
		return ascii
	}
	return strings.ToLower(hostname)
}
