package swiftfields

import (
	"regexp"
	"strings"

	"fjacquet/swift-csv/internal/textutils"
)

const headerWindow = 400

var (
	// BICPattern matches a BIC: 4-letter bank, 2-letter country, 2-char
	// location and an optional 3-char branch.
	BICPattern = regexp.MustCompile(`\b[A-Z]{4}[A-Z]{2}[A-Z0-9]{2}(?:[A-Z0-9]{3})?\b`)

	receiverLabelRE = regexp.MustCompile(`(?i)Receiver\s*[:\-]?\s*`)
	senderLabelRE   = regexp.MustCompile(`(?i)Sender\s*[:\-]?\s*`)
	nextHeaderRE    = regexp.MustCompile(`\n[A-Z][a-z]`)
)

// FindBIC returns the first BIC-shaped token of s.
func FindBIC(s string) (string, bool) {
	bic := BICPattern.FindString(s)
	return bic, bic != ""
}

// ExtractReceiverBIC finds the receiving institution of a message. The
// "Receiver:" header segment is searched first, then the text following the
// word RECEIVER, then the whole message.
func ExtractReceiverBIC(text string) (string, bool) {
	return headerBIC(text, receiverLabelRE, "RECEIVER")
}

// ExtractSenderBIC is ExtractReceiverBIC for the "Sender:" header.
func ExtractSenderBIC(text string) (string, bool) {
	return headerBIC(text, senderLabelRE, "SENDER")
}

func headerBIC(text string, label *regexp.Regexp, word string) (string, bool) {
	if text == "" {
		return "", false
	}
	if loc := label.FindStringIndex(text); loc != nil {
		segment := text[loc[1]:]
		if end := nextHeaderRE.FindStringIndex(segment); end != nil {
			segment = segment[:end[0]]
		}
		if bic, ok := FindBIC(segment); ok {
			return bic, true
		}
	}
	if idx := strings.Index(strings.ToUpper(text), word); idx >= 0 {
		if bic, ok := FindBIC(textutils.Window(text, idx+len(word), headerWindow)); ok {
			return bic, true
		}
	}
	return FindBIC(text)
}
