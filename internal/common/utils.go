package common

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// TitleCase normalizes a place name or admin region to title case.
func TitleCase(s string) string {
	return titleCaser.String(strings.TrimSpace(s))
}

// NormalizeCountry upper-cases a country code. Codes are expected to be
// 2-letter ISO codes when known.
func NormalizeCountry(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// HasAny returns true if s contains any of the substrings.
func HasAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
