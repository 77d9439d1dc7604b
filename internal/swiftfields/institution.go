// Package swiftfields holds the extraction heuristics shared by every SWIFT
// message type: institution codes, transaction references and BICs.
package swiftfields

import (
	"regexp"
	"strings"

	"fjacquet/swift-csv/internal/textutils"
)

const (
	labelWindow    = 800
	fullTextWindow = 1200
	minCodeLength  = 6
	maxCodeLength  = 11
	donorSeparator = "/"
)

var (
	institutionLabelRE = regexp.MustCompile(`(?i)(?:Identifier\s*Code|Code\s*d['\x60\x{2019} ]?\s*identifiant)`)
	codeTokenRE        = regexp.MustCompile(`\b[A-Z0-9]{6,11}\b`)
	looseCodeTokenRE   = regexp.MustCompile(`\b[A-Z][A-Z0-9]{5,10}\b`)
)

// labelFragments are prefixes of words that belong to the field label itself.
var labelFragments = []string{"IDENTIFIANT", "IDENTIF", "PARTYIDENT", "PARTY"}

// NameResolver maps an institution code to a bank name.
type NameResolver interface {
	MapCodeToName(code string) (string, bool)
}

// codeStrategy is one step of the institution code cascade.
type codeStrategy func(block, full string) (string, bool)

var codeStrategies = []codeStrategy{
	func(block, _ string) (string, bool) { return labelledCode(block, labelWindow) },
	func(block, _ string) (string, bool) { return looseCode(block) },
	func(_, full string) (string, bool) { return labelledCode(full, fullTextWindow) },
}

// ExtractInstitutionCode finds the identifier code of an F52A-family block.
// The labelled search runs on the block, then a loose scan of the block, and
// finally the labelled search over the full message because the field may be
// cut by a page break.
func ExtractInstitutionCode(block, full string) (string, bool) {
	for _, strategy := range codeStrategies {
		if code, ok := strategy(block, full); ok {
			return code, true
		}
	}
	return "", false
}

func labelledCode(text string, window int) (string, bool) {
	if text == "" {
		return "", false
	}
	text = textutils.StripMarkup(text)
	loc := institutionLabelRE.FindStringIndex(text)
	if loc == nil {
		return "", false
	}
	after := textutils.Window(text, loc[1], window)

	var digitsOnly string
	for _, tok := range codeTokenRE.FindAllString(after, -1) {
		if isLabelFragment(tok) {
			continue
		}
		if textutils.HasLetter(tok) {
			return tok, true
		}
		if digitsOnly == "" {
			digitsOnly = tok
		}
	}
	// A BIC always has letters, but some exports print a numeric national
	// clearing code under the label; it is kept as the donor code rather
	// than losing the donor.
	if digitsOnly != "" {
		return digitsOnly, true
	}
	return "", false
}

func looseCode(block string) (string, bool) {
	if block == "" {
		return "", false
	}
	for _, tok := range looseCodeTokenRE.FindAllString(textutils.StripMarkup(block), -1) {
		if !isLabelFragment(tok) {
			return tok, true
		}
	}
	return "", false
}

func isLabelFragment(tok string) bool {
	upper := strings.ToUpper(tok)
	for _, prefix := range labelFragments {
		if strings.HasPrefix(upper, prefix) {
			return true
		}
	}
	return false
}

// IsLikelyCode reports whether s has the shape of a bare institution code.
func IsLikelyCode(s string) bool {
	if len(s) < minCodeLength || len(s) > maxCodeLength {
		return false
	}
	return codeTokenRE.MatchString(s) && codeTokenRE.FindString(s) == s
}

// ResolveInstitution renders a donor as "CODE/Name" when resolver knows the
// code and as "CODE" otherwise.
func ResolveInstitution(code string, resolver NameResolver) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return ""
	}
	if resolver != nil {
		if name, ok := resolver.MapCodeToName(code); ok && strings.TrimSpace(name) != "" {
			return code + donorSeparator + strings.TrimSpace(name)
		}
	}
	return code
}

// SplitDonor splits "CODE/Name" into its parts. A donor without a name yields
// the code twice so that unmapped codes stay visible as payer_name.
func SplitDonor(donor string) (code, name string) {
	donor = strings.TrimSpace(donor)
	if donor == "" {
		return "", ""
	}
	code, name, found := strings.Cut(donor, donorSeparator)
	code = strings.TrimSpace(code)
	name = strings.TrimSpace(name)
	if !found || name == "" {
		return code, code
	}
	return code, name
}
