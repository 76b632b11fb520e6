// Package measurexlite contains helpers to process web measurements.
package measurexlite

//
// Code to process web results (e.g., from web connectivity)
//

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// We use {1,512} rather than {1,128} to get longer titles
// e.g. <http://www.isa.gov.il/Pages/default.aspx>'s one
var webTitleRegexp = regexp.MustCompile(`(?i)<title>([^<]{1,512})</title>`)

// WebGetTitle returns the title or an empty string.
func WebGetTitle(measurementBody string) string {
	v := webTitleRegexp.FindStringSubmatch(measurementBody)
	if len(v) < 2 {
		return ""
	}
	return v[1]
}

// WebTitleWords returns the set of lowercase words of title having
// at least minLength runes.
func WebTitleWords(title string, minLength int) map[string]bool {
	words := make(map[string]bool)
	for _, word := range strings.Fields(title) {
		if utf8.RuneCountInString(word) >= minLength {
			words[strings.ToLower(word)] = true
		}
	}
	return words
}
