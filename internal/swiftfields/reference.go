package swiftfields

import (
	"regexp"
	"strings"

	"fjacquet/swift-csv/internal/textutils"
)

const labelFollowWindow = 400

var (
	referenceLineRE     = regexp.MustCompile(`(?mi)^\s*(?::20:|F20[:\s]*)(.*)$`)
	referenceTokenRE    = regexp.MustCompile(`(?i)[A-Z0-9\-_]{3,}`)
	transactionRefRE    = regexp.MustCompile(`(?mi)Transaction\s+Reference(?:\s+Number)?\s*[:\s]*([A-Z0-9\-_]{3,})`)
	fieldCaptionRE      = regexp.MustCompile(`(?i)\b(?:reference|r\x{e9}f\x{e9}rence|number|num\x{e9}ro)\b`)
	bareReferenceLabel  = regexp.MustCompile(`(?mi)(?:F20[:\s]*|:20:)\s*$`)
	groupedAmountRE     = regexp.MustCompile(`\b\d{1,3}(?:[.\s]\d{3})*(?:[.,]\d{1,2})\b`)
	decimalAmountRE     = regexp.MustCompile(`\d+[.,]\d{2}`)
	amountWords         = []string{"amount", "currency", "montant"}
	referenceBlockOrder = []string{"F20", ":20", "Block 4", "Block4"}
)

// LooksLikeAmount reports whether s reads as a money amount rather than a
// reference: it names an amount or currency, or carries a decimal-looking number.
func LooksLikeAmount(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	lower := strings.ToLower(s)
	for _, w := range amountWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return groupedAmountRE.MatchString(s) || decimalAmountRE.MatchString(s)
}

// ReferenceBlock returns the region the reference is searched in, trying the
// F20 field, a ":20" tag, the Block 4 body and finally the whole text.
func ReferenceBlock(text string) string {
	if block, ok := textutils.FieldBlockOr(text, referenceBlockOrder...); ok {
		return block
	}
	return text
}

// ExtractReference recovers the transaction reference of a message.
//
// The F20 value is read first, whether it sits on the label line or on the
// next non-empty line. A header "Transaction Reference: X" comes next, then
// the line following a bare F20 label anywhere in the text. Candidates that
// look like amounts are rejected.
func ExtractReference(text string) (string, bool) {
	if text == "" {
		return "", false
	}
	steps := []func(string) (string, bool){
		fieldReference,
		labelledLineReference,
		headerReference,
		followingLineReference,
	}
	for _, step := range steps {
		if ref, ok := step(text); ok {
			return ref, true
		}
	}
	return "", false
}

func referenceToken(candidate string) (string, bool) {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" || LooksLikeAmount(candidate) {
		return "", false
	}
	tok := referenceTokenRE.FindString(candidate)
	if tok == "" {
		return "", false
	}
	return strings.ToUpper(tok), true
}

// fieldReference reads the first value line of the F20 (or :20) field block,
// skipping a printed caption such as "Transaction Reference Number".
func fieldReference(text string) (string, bool) {
	block, ok := textutils.FieldBlockOr(text, "F20", ":20")
	if !ok {
		return "", false
	}
	for _, ln := range textutils.NonEmptyLines(block) {
		if fieldCaptionRE.MatchString(ln) {
			continue
		}
		return referenceToken(ln)
	}
	return "", false
}

// labelledLineReference scans the reference region for a ":20:" or "F20" line.
func labelledLineReference(text string) (string, bool) {
	region := ReferenceBlock(text)
	loc := referenceLineRE.FindStringSubmatchIndex(region)
	if loc == nil {
		return "", false
	}
	candidate := strings.TrimSpace(region[loc[2]:loc[3]])
	if candidate == "" {
		candidate = nextNonEmptyLine(region[loc[1]:])
	}
	return referenceToken(candidate)
}

func headerReference(text string) (string, bool) {
	m := transactionRefRE.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	candidate := strings.TrimSpace(m[1])
	if LooksLikeAmount(candidate) {
		return "", false
	}
	return strings.ToUpper(candidate), true
}

func followingLineReference(text string) (string, bool) {
	loc := bareReferenceLabel.FindStringIndex(text)
	if loc == nil {
		return "", false
	}
	return referenceToken(nextNonEmptyLine(textutils.Window(text, loc[1], labelFollowWindow)))
}

func nextNonEmptyLine(s string) string {
	for _, ln := range strings.Split(s, "\n") {
		if ln = strings.TrimSpace(ln); ln != "" {
			return ln
		}
	}
	return ""
}
