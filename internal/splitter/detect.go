package splitter

import (
	"regexp"
	"strings"
)

var (
	identifierTypeRE = regexp.MustCompile(`(?i)Identifier\s*[:\s]*fin\.(\d{3}(?:\.[A-Z0-9]+)?)`)
	inlineTypeRE     = regexp.MustCompile(`(?i)\b(?:FIN|MT)[\s\-._:/]*(\d{3})\b`)
)

// DetectType returns the type code of a message block, such as "202",
// "202.COV" or "910". The "Identifier: fin.NNN" header wins over inline
// "MT103" or "FIN 910" tokens. The code is returned as written, without
// checking whether it is supported.
func DetectType(block string) (string, bool) {
	if block == "" {
		return "", false
	}
	if m := identifierTypeRE.FindStringSubmatch(block); m != nil {
		return strings.ToUpper(m[1]), true
	}
	if m := inlineTypeRE.FindStringSubmatch(block); m != nil {
		return m[1], true
	}
	return "", false
}
