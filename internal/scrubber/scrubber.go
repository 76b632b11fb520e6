// Package scrubber removes IP addresses and endpoints from strings
// such as error messages before they end up in a verdict or a log.
package scrubber

import (
	"net/netip"
	"regexp"
	"strings"
)

// Replacement is the string that replaces addresses.
const Replacement = "[scrubbed]"

// candidate matches sequences that might be an IP address or an
// endpoint, including bracketed IPv6 and %3A-encoded colons.
var candidate = regexp.MustCompile(`(?i)\[?(?:[0-9a-f]|%3a|[:.])+\]?(?::[0-9]{1,5})?`)

// Scrub replaces every IPv4 or IPv6 address or endpoint in s.
func Scrub(s string) string {
	return candidate.ReplaceAllStringFunc(s, func(match string) string {
		// the candidate may have swallowed trailing punctuation
		// as in "dial tcp 8.8.8.8:443: connection refused"
		trimmed := strings.TrimRight(match, ":.")
		for _, value := range []string{match, trimmed} {
			if value != "" && isAddressOrEndpoint(value) {
				return Replacement + match[len(value):]
			}
		}
		return match
	})
}

// ScrubBytes is like [Scrub] but for bytes.
func ScrubBytes(b []byte) []byte {
	return []byte(Scrub(string(b)))
}

func isAddressOrEndpoint(s string) bool {
	s = strings.ReplaceAll(s, "%3a", ":")
	s = strings.ReplaceAll(s, "%3A", ":")
	if _, err := netip.ParseAddrPort(s); err == nil {
		return true
	}
	s = strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")
	if _, err := netip.ParseAddr(s); err == nil {
		return true
	}
	return false
}
