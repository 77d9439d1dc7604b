// Package textutils provides the low-level text primitives shared by the SWIFT
// extractors: PDF text normalization, field-block location and regex helpers.
package textutils

import (
	"regexp"
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"
)

var (
	pageNumberRE = regexp.MustCompile(`(?mi)^\s*page\s+\d+\s*(?:of\s*\d+)?\s*$`)
	blankRunRE   = regexp.MustCompile(`\n{3,}`)
	markupTagRE  = regexp.MustCompile(`<[^>]+>`)
	whitespaceRE = regexp.MustCompile(`\s+`)

	labelPatterns sync.Map // label -> *regexp.Regexp
)

// NormalizeText cleans raw PDF text before splitting: Unicode NFC composition,
// carriage returns turned into newlines, "page N of M" lines removed and runs
// of three or more newlines collapsed to a single blank line.
func NormalizeText(raw string) string {
	text := norm.NFC.String(raw)
	text = strings.ReplaceAll(text, "\r", "\n")
	text = pageNumberRE.ReplaceAllString(text, "")
	return blankRunRE.ReplaceAllString(text, "\n\n")
}

// GetFieldBlock returns the text that belongs to a SWIFT field such as "F52A"
// or "F20". The label is matched case-insensitively, any colons and whitespace
// right after it are skipped, and the block runs until the next line that
// starts with a field tag (F + two digits + optional letter) or the end of text.
// The result is trimmed. ok is false when the label does not occur.
func GetFieldBlock(text, label string) (block string, ok bool) {
	if text == "" || label == "" {
		return "", false
	}
	loc := labelPattern(label).FindStringIndex(text)
	if loc == nil {
		return "", false
	}

	start := loc[1]
	for start < len(text) && isLabelSeparator(text[start]) {
		start++
	}
	end := nextTagBoundary(text, start)
	return strings.TrimSpace(text[start:end]), true
}

// FieldBlockOr returns the block of the first label present in text.
func FieldBlockOr(text string, labels ...string) (string, bool) {
	for _, label := range labels {
		if block, ok := GetFieldBlock(text, label); ok && block != "" {
			return block, true
		}
	}
	return "", false
}

func labelPattern(label string) *regexp.Regexp {
	if re, ok := labelPatterns.Load(label); ok {
		return re.(*regexp.Regexp)
	}
	re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(label))
	actual, _ := labelPatterns.LoadOrStore(label, re)
	return actual.(*regexp.Regexp)
}

func nextTagBoundary(text string, from int) int {
	for i := from; i < len(text); i++ {
		if text[i] == '\n' && IsTagAt(text, i+1) {
			return i
		}
	}
	return len(text)
}

// IsTagAt reports whether a field tag starts at text[i]: an uppercase F, two
// digits, an optional uppercase letter, then a colon, a non-word byte or the
// end of text. Lowercase "f32a" is ordinary prose, not a boundary.
func IsTagAt(text string, i int) bool {
	if i < 0 || i+3 > len(text) {
		return false
	}
	if text[i] != 'F' {
		return false
	}
	if !isDigit(text[i+1]) || !isDigit(text[i+2]) {
		return false
	}
	j := i + 3
	if j < len(text) && text[j] >= 'A' && text[j] <= 'Z' {
		j++
	}
	if j >= len(text) {
		return true
	}
	return text[j] == ':' || !isWordByte(text[j])
}

// StripMarkup replaces XML-like tags (<Tag>) with spaces.
func StripMarkup(s string) string {
	return markupTagRE.ReplaceAllString(s, " ")
}

// CompactWhitespace collapses whitespace runs into single spaces.
func CompactWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRE.ReplaceAllString(s, " "))
}

// NonEmptyLines splits s into trimmed, non-empty lines.
func NonEmptyLines(s string) []string {
	var out []string
	for _, ln := range strings.Split(s, "\n") {
		if ln = strings.TrimSpace(ln); ln != "" {
			out = append(out, ln)
		}
	}
	return out
}

// Window returns at most n bytes of text starting at start.
func Window(text string, start, n int) string {
	if start < 0 {
		start = 0
	}
	if start >= len(text) {
		return ""
	}
	end := start + n
	if end > len(text) {
		end = len(text)
	}
	return text[start:end]
}

// FirstSubmatch tries the patterns in order and returns the trimmed first
// capture group of the first one that yields a non-empty value.
func FirstSubmatch(text string, patterns ...*regexp.Regexp) (string, bool) {
	for _, re := range patterns {
		m := re.FindStringSubmatch(text)
		if len(m) > 1 {
			if v := strings.TrimSpace(m[1]); v != "" {
				return v, true
			}
		}
	}
	return "", false
}

// HasLetter reports whether s contains an ASCII letter.
func HasLetter(s string) bool {
	for i := 0; i < len(s); i++ {
		if isLetter(s[i]) {
			return true
		}
	}
	return false
}

func isLabelSeparator(b byte) bool {
	switch b {
	case ':', ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

func isDigit(b byte) bool  { return b >= '0' && b <= '9' }
func isLetter(b byte) bool { return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') }

func isWordByte(b byte) bool {
	return isDigit(b) || isLetter(b) || b == '_' || b >= 0x80
}
