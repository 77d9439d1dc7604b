// Package mt103parser extracts MT103 customer credit transfers.
package mt103parser

import (
	"regexp"
	"strings"

	"fjacquet/swift-csv/internal/countryutils"
	"fjacquet/swift-csv/internal/logging"
	"fjacquet/swift-csv/internal/models"
	"fjacquet/swift-csv/internal/parser"
	"fjacquet/swift-csv/internal/swiftfields"
	"fjacquet/swift-csv/internal/textutils"
)

const shortLineLength = 40

var (
	donorFields      = []string{"F52A", "F52D"}
	customerFields   = []string{"F50F", "F50"}
	auxiliaryTags    = []string{models.TagF53A, models.TagF54A, models.TagF57A}
	bankWords        = []string{"BANK", "BANQUE", "ORABANK"}
	nameLabelPrefix  = []string{"IDENTIFIER", "CODE", "PARTYIDENTIFIER", "IDENTIFIANT"}
	customerSkip     = []string{"NUMBER", "PARTYIDENTIFIER", "COMPTE"}
	accountLineRE    = regexp.MustCompile(`^/[A-Z0-9/\-]+`)
	pureCodeRE       = regexp.MustCompile(`^[A-Z0-9]{6,11}$`)
	referenceShapeRE = regexp.MustCompile(`\d+/\d+|\w+/\w+|\d{2,}`)

	ibanPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?m)^\s*/?([A-Z]{2}[0-9A-Z]{8,34})\b`),
		regexp.MustCompile(`/([A-Z]{2}[0-9A-Z]{8,34})`),
		regexp.MustCompile(`([A-Z]{2}[0-9A-Z]{8,34})`),
	}
	hashNoiseRE = regexp.MustCompile(`(?s)#.*?#`)
)

// Parser extracts MT103 messages.
type Parser struct {
	parser.BaseParser
	trackAuxiliary bool
}

// NewParser creates an MT103 extractor. When trackAuxiliary is set the raw
// F53A, F54A and F57A fields are kept on the record for the rejection rule.
func NewParser(logger logging.Logger, lookup parser.BICLookup, trackAuxiliary bool) *Parser {
	return &Parser{
		BaseParser:     parser.NewBaseParser(logger, lookup),
		trackAuxiliary: trackAuxiliary,
	}
}

// Extract implements parser.MessageExtractor.
func (p *Parser) Extract(block, source string, direction models.Direction) *models.ExtractedRecord {
	return p.Guard(models.TypeMT103, source, func() *models.ExtractedRecord {
		return p.extract(block, source, direction)
	})
}

func (p *Parser) extract(block, source string, direction models.Direction) *models.ExtractedRecord {
	rec := models.NewRecord(models.TypeMT103, source)
	parser.ApplyHeaderBICs(rec, block)
	if ref, ok := reference(block); ok {
		rec.Reference = models.OptionalString(ref)
	}
	parser.ApplyValueFields(rec, block)
	p.applyDonor(rec, block)

	if !direction.IsOutgoing() {
		if account, ok := beneficiaryAccount(block); ok {
			rec.Beneficiary = models.OptionalString(account)
		}
	}
	if country, ok := countryutils.Detect(block); ok {
		rec.CountryISO3 = models.OptionalString(country)
	}

	if p.trackAuxiliary {
		for _, tag := range auxiliaryTags {
			if raw, ok := textutils.GetFieldBlock(block, tag); ok {
				rec.SetAuxiliary(tag, raw)
			}
		}
	}
	return rec
}

func (p *Parser) applyDonor(rec *models.ExtractedRecord, block string) {
	field, _ := textutils.FieldBlockOr(block, donorFields...)
	if code, ok := swiftfields.ExtractInstitutionCode(field, block); ok {
		p.ApplyDonor(rec, code)
		return
	}

	name, ok := "", false
	if f52, found := textutils.GetFieldBlock(block, "F52A"); found {
		name, ok = institutionName(f52)
	} else if f50, found := textutils.FieldBlockOr(block, customerFields...); found {
		name, ok = customerName(f50)
	}
	if ok {
		rec.Donor = name
		rec.PayerName = models.OptionalString(name)
		p.GetLogger().Debug("Ordering party has no code, using its name",
			logging.Field{Key: logging.FieldSource, Value: rec.SourceLabel})
	}
}

// reference falls back to the first F20 line shaped like a reference.
func reference(block string) (string, bool) {
	if ref, ok := swiftfields.ExtractReference(block); ok {
		return ref, true
	}
	f20, ok := textutils.GetFieldBlock(block, "F20")
	if !ok {
		return "", false
	}
	lines := textutils.NonEmptyLines(f20)
	for _, ln := range lines {
		if referenceShapeRE.MatchString(ln) {
			return ln, true
		}
	}
	if len(lines) > 0 {
		return lines[0], true
	}
	return "", false
}

// beneficiaryAccount reads the IBAN-shaped account of F59.
func beneficiaryAccount(block string) (string, bool) {
	f59, ok := textutils.GetFieldBlock(block, "F59")
	if !ok {
		return "", false
	}
	f59 = hashNoiseRE.ReplaceAllString(f59, "")
	m, ok := textutils.FirstSubmatch(f59, ibanPatterns...)
	if !ok {
		return "", false
	}
	return strings.ToUpper(strings.Join(strings.Fields(m), "")), true
}

// institutionName picks a readable bank name out of an F52A block that has
// no usable code: a BANK or BANQUE line, joined with a short following line,
// else the first two readable lines.
func institutionName(f52 string) (string, bool) {
	var lines []string
	for _, ln := range textutils.NonEmptyLines(textutils.StripMarkup(f52)) {
		upper := strings.ToUpper(ln)
		if hasAnyPrefix(upper, nameLabelPrefix) || accountLineRE.MatchString(ln) {
			continue
		}
		if pureCodeRE.MatchString(strings.ReplaceAll(ln, " ", "")) || len(ln) <= 1 {
			continue
		}
		lines = append(lines, ln)
	}
	if len(lines) == 0 {
		return "", false
	}
	for i, ln := range lines {
		if !containsAny(strings.ToUpper(ln), bankWords) {
			continue
		}
		if i+1 < len(lines) && len(lines[i+1]) < shortLineLength {
			return strings.TrimSpace(ln + " / " + lines[i+1]), true
		}
		return ln, true
	}
	return joinFirst(lines, 2), true
}

// customerName keeps lines with letters from an ordering customer block,
// skipping account lines and identifier captions.
func customerName(f50 string) (string, bool) {
	var lines []string
	for _, ln := range textutils.NonEmptyLines(f50) {
		if hasAnyPrefix(strings.ToUpper(ln), customerSkip) || accountLineRE.MatchString(ln) {
			continue
		}
		if len(ln) >= 4 && textutils.HasLetter(ln) {
			lines = append(lines, ln)
		}
	}
	if len(lines) == 0 {
		return "", false
	}
	return joinFirst(lines, 2), true
}

func joinFirst(lines []string, n int) string {
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.TrimSpace(strings.Join(lines, " "))
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
