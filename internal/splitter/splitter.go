// Package splitter cuts the text of a PDF into individual SWIFT messages and
// detects the type of each one.
package splitter

import (
	"regexp"
	"strings"

	"fjacquet/swift-csv/internal/logging"
)

// StrategyWholeText names the fallback used when no strategy found two messages.
const StrategyWholeText = "whole-text"

// minReferenceBlock is the length a reference-tag block must exceed to count
// as a message rather than a stray prefix.
const minReferenceBlock = 10

var (
	messageHeadingRE   = regexp.MustCompile(`(?m)^\s*Message\s+\d+\b`)
	identifierHeaderRE = regexp.MustCompile(`(?mi)Identifier\s*[:\s]*fin\.\d{3}(?:\.[A-Z0-9]+)?`)
	senderHeaderRE     = regexp.MustCompile(`(?m)^Sender\s*:`)
	messageIDHeaderRE  = regexp.MustCompile(`(?m)^(?:Unique Message Identifier|Message Identifier)\b`)
	referenceTagRE     = regexp.MustCompile(`(?mi)(?::20:|\bF20[:\s])`)
	separatorLineRE    = regexp.MustCompile(`(?m)^\s*(?:\*{3,}|-{3,})\s*$`)
	underscoreRuleRE   = regexp.MustCompile(`(?m)^\s*_{5,}\s*$`)
)

// Strategy is one splitting heuristic. Split returns the candidate blocks; the
// strategy wins when it yields at least two.
type Strategy struct {
	Name  string
	Split func(text string) []string
}

// DefaultStrategies lists the heuristics in priority order.
var DefaultStrategies = []Strategy{
	{Name: "message-heading", Split: SplitOnMessageHeadings},
	{Name: "identifier-header", Split: SplitOnIdentifierHeaders},
	{Name: "sender-header", Split: SplitOnSenderHeaders},
	{Name: "message-identifier", Split: SplitOnMessageIdentifiers},
	{Name: "reference-tag", Split: SplitOnReferenceTags},
	{Name: "separator-line", Split: SplitOnSeparatorLines},
	{Name: "underscore-rule", Split: SplitOnUnderscoreRules},
}

// Splitter runs the strategies and logs which one produced the blocks.
type Splitter struct {
	logger     logging.Logger
	strategies []Strategy
}

// NewSplitter creates a Splitter with the default strategies.
func NewSplitter(logger logging.Logger) *Splitter {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Splitter{logger: logger, strategies: DefaultStrategies}
}

// Split returns the message blocks of text and the name of the winning strategy.
func (s *Splitter) Split(text string) ([]string, string) {
	blocks, strategy := split(text, s.strategies)
	s.logger.Debug("Split text into messages",
		logging.Field{Key: logging.FieldStrategy, Value: strategy},
		logging.Field{Key: logging.FieldBlocks, Value: len(blocks)})
	return blocks, strategy
}

// SplitMessages splits text with the default strategies.
func SplitMessages(text string) []string {
	blocks, _ := split(text, DefaultStrategies)
	return blocks
}

func split(text string, strategies []Strategy) ([]string, string) {
	text = strings.ReplaceAll(text, "\r", "\n")
	if strings.TrimSpace(text) == "" {
		return nil, StrategyWholeText
	}
	for _, st := range strategies {
		if blocks := st.Split(text); len(blocks) >= 2 {
			return blocks, st.Name
		}
	}
	return []string{strings.TrimSpace(text)}, StrategyWholeText
}

// SplitOnMessageHeadings cuts at "Message N" headings.
func SplitOnMessageHeadings(text string) []string {
	return cutAtHeaders(text, messageHeadingRE)
}

// SplitOnIdentifierHeaders cuts at "Identifier: fin.NNN" headers.
func SplitOnIdentifierHeaders(text string) []string {
	return cutAtHeaders(text, identifierHeaderRE)
}

// SplitOnSenderHeaders cuts at "Sender:" lines, the layout of outgoing exports.
func SplitOnSenderHeaders(text string) []string {
	return cutAtHeaders(text, senderHeaderRE)
}

// SplitOnMessageIdentifiers cuts at "(Unique) Message Identifier" lines.
func SplitOnMessageIdentifiers(text string) []string {
	return cutAtHeaders(text, messageIDHeaderRE)
}

// SplitOnReferenceTags cuts at every ":20:" or "F20" tag. Text before the first
// tag is kept as its own block, and blocks of ten characters or fewer are dropped.
func SplitOnReferenceTags(text string) []string {
	matches := referenceTagRE.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}
	positions := make([]int, 0, len(matches)+2)
	if matches[0][0] != 0 {
		positions = append(positions, 0)
	}
	for _, m := range matches {
		positions = append(positions, m[0])
	}
	positions = append(positions, len(text))

	var blocks []string
	for i := 0; i < len(positions)-1; i++ {
		if b := strings.TrimSpace(text[positions[i]:positions[i+1]]); len(b) > minReferenceBlock {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

// SplitOnSeparatorLines returns the segments between lines of *** or ---.
func SplitOnSeparatorLines(text string) []string {
	matches := separatorLineRE.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}
	var blocks []string
	prev := 0
	for _, m := range matches {
		blocks = appendTrimmed(blocks, text[prev:m[0]])
		prev = m[1]
	}
	return appendTrimmed(blocks, text[prev:])
}

// SplitOnUnderscoreRules splits on page-like rules of five or more underscores.
func SplitOnUnderscoreRules(text string) []string {
	var blocks []string
	for _, part := range underscoreRuleRE.Split(text, -1) {
		blocks = appendTrimmed(blocks, part)
	}
	return blocks
}

// cutAtHeaders returns one block per header match, from the header up to the
// next one. Text before the first header is discarded.
func cutAtHeaders(text string, header *regexp.Regexp) []string {
	matches := header.FindAllStringIndex(text, -1)
	if len(matches) < 2 {
		return nil
	}
	var blocks []string
	for i, m := range matches {
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		blocks = appendTrimmed(blocks, text[m[0]:end])
	}
	return blocks
}

func appendTrimmed(blocks []string, s string) []string {
	if s = strings.TrimSpace(s); s != "" {
		blocks = append(blocks, s)
	}
	return blocks
}
