// Package normalize canonicalizes free-text country and job-title input.
package normalize

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// synonym maps a lowercase token to its canonical replacement.
type synonym struct {
	token string
	value string
}

// countrySynonyms is scanned in order; the first hit wins.
var countrySynonyms = []synonym{
	{"deutschland", "DE"}, {"germany", "DE"}, {"deu", "DE"}, {"de", "DE"},
	{"switzerland", "CH"}, {"schweiz", "CH"}, {"suisse", "CH"}, {"svizzera", "CH"}, {"ch", "CH"},
	{"austria", "AT"}, {"österreich", "AT"}, {"at", "AT"},
	{"europe", "EU"}, {"eu", "EU"},
	{"uk", "UK"}, {"gb", "UK"}, {"england", "UK"}, {"united kingdom", "UK"},
	{"usa", "US"}, {"united states", "US"}, {"america", "US"}, {"us", "US"},
	{"spain", "ES"}, {"es", "ES"}, {"france", "FR"}, {"fr", "FR"}, {"italy", "IT"}, {"it", "IT"},
	{"netherlands", "NL"}, {"nl", "NL"}, {"belgium", "BE"}, {"be", "BE"}, {"sweden", "SE"}, {"se", "SE"},
}

var countryIndex = func() map[string]string {
	m := make(map[string]string, len(countrySynonyms))
	for _, s := range countrySynonyms {
		if _, ok := m[s.token]; !ok {
			m[s.token] = s.value
		}
	}
	return m
}()

// Country maps free-text country input to a two-letter code.
//
// Exact synonyms win, then bare two-letter input, then the first synonym found
// inside the text. Two-letter synonyms only count as whole words during that
// scan. Unknown input is returned trimmed but otherwise unchanged.
func Country(input string) string {
	trimmed := strings.TrimSpace(norm.NFC.String(input))
	if trimmed == "" {
		return ""
	}
	t := strings.ToLower(trimmed)

	if code, ok := countryIndex[t]; ok {
		return code
	}
	if isTwoLetterCode(t) {
		return strings.ToUpper(t)
	}

	words := make(map[string]bool)
	for _, w := range splitAlnum(t) {
		words[w] = true
	}
	for _, s := range countrySynonyms {
		if utf8.RuneCountInString(s.token) <= 2 {
			if words[s.token] {
				return s.value
			}
			continue
		}
		if strings.Contains(t, s.token) {
			return s.value
		}
	}
	return trimmed
}

// CountryCodeFromLocation returns the country code of a "City, Country" style
// location, reading tokens right to left. It returns "" when nothing matches.
func CountryCodeFromLocation(location string) string {
	tokens := splitAlnum(strings.ToLower(norm.NFC.String(location)))
	for i := len(tokens) - 1; i >= 0; i-- {
		if code, ok := countryIndex[tokens[i]]; ok {
			return code
		}
		if isTwoLetterCode(tokens[i]) {
			return strings.ToUpper(tokens[i])
		}
	}
	return ""
}

func isTwoLetterCode(s string) bool {
	if utf8.RuneCountInString(s) != 2 {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// splitAlnum splits s on runs of anything that is not a letter or digit.
func splitAlnum(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
