// Package countryutils detects CEMAC member countries in free text.
package countryutils

import (
	"regexp"
	"strings"

	"github.com/cloudflare/ahocorasick"
)

// cemac maps every accepted spelling to its ISO3 code.
var cemac = map[string]string{
	"CM": "CMR", "CMR": "CMR", "CAMEROON": "CMR",
	"GA": "GAB", "GAB": "GAB", "GABON": "GAB",
	"TD": "TCD", "TCD": "TCD", "CHAD": "TCD",
	"CG": "COG", "COG": "COG", "CONGO": "COG",
	"GQ": "GNQ", "GNQ": "GNQ", "EQUATORIAL GUINEA": "GNQ",
	"CF": "CAF", "CAF": "CAF", "CENTRAL AFRICAN REPUBLIC": "CAF",
}

// longKeys is ordered so that a full name wins over an ISO3 code found in the
// same text, and longer names win over the shorter ones they contain.
var longKeys = []string{
	"CENTRAL AFRICAN REPUBLIC",
	"EQUATORIAL GUINEA",
	"CAMEROON",
	"GABON",
	"CONGO",
	"CHAD",
	"CMR", "GAB", "TCD", "COG", "GNQ", "CAF",
}

var (
	twoLetterRE = regexp.MustCompile(`\b[A-Z]{2}\b`)
	longMatcher = newMatcher(longKeys)
	// Names and ISO3 codes must stand alone: "CAF" in "CAFE" or "GAB" in
	// "GABRIEL" is not a country.
	longBounded = boundedPatterns(longKeys)
)

func newMatcher(keys []string) *ahocorasick.Matcher {
	patterns := make([][]byte, len(keys))
	for i, k := range keys {
		patterns[i] = []byte(k)
	}
	return ahocorasick.NewMatcher(patterns)
}

func boundedPatterns(keys []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(keys))
	for i, k := range keys {
		out[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(k) + `\b`)
	}
	return out
}

// Detect returns the ISO3 code of the first CEMAC country mentioned in text.
// Standalone two-letter codes are scanned first and always win; full names and
// ISO3 codes are only considered when no two-letter code is present.
func Detect(text string) (string, bool) {
	if text == "" {
		return "", false
	}
	upper := strings.ToUpper(text)

	for _, code := range twoLetterRE.FindAllString(upper, -1) {
		if iso3, ok := cemac[code]; ok {
			return iso3, true
		}
	}

	hits := longMatcher.Match([]byte(upper))
	if len(hits) == 0 {
		return "", false
	}
	best := -1
	for _, idx := range hits {
		if !longBounded[idx].MatchString(upper) {
			continue
		}
		if best == -1 || idx < best {
			best = idx
		}
	}
	if best == -1 {
		return "", false
	}
	return cemac[longKeys[best]], true
}

// Normalize maps any accepted spelling ("CM", "cameroon", "CMR") to ISO3.
func Normalize(value string) (string, bool) {
	iso3, ok := cemac[strings.ToUpper(strings.TrimSpace(value))]
	return iso3, ok
}

// IsCEMAC reports whether iso3 is one of the six member codes.
func IsCEMAC(iso3 string) bool {
	v, ok := cemac[strings.ToUpper(iso3)]
	return ok && len(iso3) == 3 && v == strings.ToUpper(iso3)
}
