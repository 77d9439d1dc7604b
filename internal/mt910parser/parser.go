// Package mt910parser extracts MT910 confirmations of credit.
package mt910parser

import (
	"errors"
	"regexp"
	"strings"

	"fjacquet/swift-csv/internal/countryutils"
	"fjacquet/swift-csv/internal/currencyutils"
	"fjacquet/swift-csv/internal/dateutils"
	"fjacquet/swift-csv/internal/logging"
	"fjacquet/swift-csv/internal/models"
	"fjacquet/swift-csv/internal/parser"
	"fjacquet/swift-csv/internal/parsererror"
	"fjacquet/swift-csv/internal/swiftfields"
	"fjacquet/swift-csv/internal/textutils"
)

var (
	block4StartRE = regexp.MustCompile(`(?i)Block\s*4`)
	block4EndRE   = regexp.MustCompile(`(?i)Block\s*5|Message Text|End of report|End of Message`)

	senderInstitutionRE   = regexp.MustCompile(`(?i)Sender Institution[:\s]*`)
	receiverInstitutionRE = regexp.MustCompile(`(?i)Receiver Institution[:\s]*`)
	senderEndRE           = regexp.MustCompile(`(?i)Receiver Institution\s*:|Message Text|Block 4`)
	receiverEndRE         = regexp.MustCompile(`(?i)Message Text|Block 4`)
	code11RE              = regexp.MustCompile(`(?i)\b[A-Z0-9]{11}\b`)
	tagStartRE            = regexp.MustCompile(`^:[0-9]{2}[A-Z]?:`)

	strict32aRE   = regexp.MustCompile(`^\s*(\d{6})\s*([A-Z]{3})\s*([0-9.,]+)\s*$`)
	loose32aRE    = regexp.MustCompile(`([A-Z]{3})\s*([0-9.,]+)`)
	freeAmountRE  = regexp.MustCompile(`(?i)Amount[:\s]*([0-9.,\s]+)\s*(?:Currency[:\s]*([A-Z]{3}))?`)
	valueDateRE   = regexp.MustCompile(`(?i)Value Date[:\s]*([0-3]?\d)[/\-]([01]?\d)[/\-]([0-9]{2,4})`)
	orderingIDsRE = regexp.MustCompile(`(?is)IdentifierCode.*?Code d['\x60\x{2019}]identifiant:?\s+([A-Z0-9]{8,11})`)
)

var errUnrecognized32A = errors.New("no currency and amount found")

// Parser extracts MT910 messages. Payer and beneficiary are the same F52A
// institution, and its BIC table country overrides any free-text guess.
type Parser struct {
	parser.BaseParser
}

// NewParser creates an MT910 extractor resolving codes through lookup.
func NewParser(logger logging.Logger, lookup parser.BICLookup) *Parser {
	return &Parser{BaseParser: parser.NewBaseParser(logger, lookup)}
}

// Extract implements parser.MessageExtractor. Direction does not change MT910 output.
func (p *Parser) Extract(block, source string, _ models.Direction) *models.ExtractedRecord {
	return p.Guard(models.TypeMT910, source, func() *models.ExtractedRecord {
		return p.extract(block, source)
	})
}

func (p *Parser) extract(block, source string) *models.ExtractedRecord {
	rec := models.NewRecord(models.TypeMT910, source)
	applyInstitutions(rec, block)

	body, hasBody := Block4(block)
	if hasBody {
		rec.Reference = models.OptionalString(Tag(body, "20"))
		rec.RelatedReference = models.OptionalString(Tag(body, "21"))
		if account := Tag(body, "25P"); account != "" {
			rec.SenderAccount = models.OptionalString(account)
		} else {
			rec.SenderAccount = models.OptionalString(Tag(body, "25"))
		}
		if err := applyTag32A(rec, Tag(body, "32A")); err != nil {
			p.GetLogger().WithError(err).Debug("Falling back to free-text value fields",
				logging.Field{Key: logging.FieldSource, Value: source})
		}
	}
	if rec.Reference == nil {
		if ref, ok := swiftfields.ExtractReference(block); ok {
			rec.Reference = models.OptionalString(ref)
		}
	}
	if rec.Amount == nil {
		if _, ok := textutils.GetFieldBlock(block, "F32A"); ok {
			var values models.ExtractedRecord
			parser.ApplyValueFields(&values, block)
			fillValueFields(rec, &values)
		}
	}
	applyFreeText(rec, block)

	if country, ok := countryutils.Detect(block); ok {
		rec.CountryISO3 = models.OptionalString(country)
	}

	if f50a, ok := textutils.GetFieldBlock(block, "F50A"); ok {
		if m := orderingIDsRE.FindStringSubmatch(f50a); m != nil {
			rec.OrderingIdentifier = strings.ToUpper(m[1])
		}
	}

	f52a, _ := textutils.GetFieldBlock(block, "F52A")
	code, ok := swiftfields.ExtractInstitutionCode(f52a, block)
	if !ok {
		p.GetLogger().Debug("No ordering institution code found",
			logging.Field{Key: logging.FieldSource, Value: source})
		return rec
	}
	p.ApplyDonor(rec, code)
	rec.Beneficiary = rec.PayerName
	if country, ok := p.CountryForCode(code); ok {
		rec.CountryISO3 = models.OptionalString(country)
	}
	return rec
}

// Block4 returns the text between a "Block 4" marker and the next report
// section, or the end of the message.
func Block4(text string) (string, bool) {
	loc := block4StartRE.FindStringIndex(text)
	if loc == nil {
		return "", false
	}
	body := text[loc[1]:]
	if end := block4EndRE.FindStringIndex(body); end != nil {
		body = body[:end[0]]
	}
	return strings.TrimSpace(body), true
}

// Tag returns the value of ":TAG:" in a Block 4 body. A tag at the start of
// a line wins over one embedded in a line. The value may sit on the next
// non-empty line, as PDF extraction often breaks after the tag; a following
// tag is never taken as the value.
func Tag(body, tag string) string {
	quoted := regexp.QuoteMeta(tag)
	lineRE := regexp.MustCompile(`(?m)^:` + quoted + `:\s*(.*)$`)
	inlineRE := regexp.MustCompile(`:` + quoted + `:\s*([^\r\n]+)`)
	v, _ := textutils.FirstSubmatch(body, lineRE, inlineRE)
	if tagStartRE.MatchString(v) {
		return ""
	}
	return v
}

// applyTag32A parses "<YYMMDD><CUR><amount>", falling back to a loose
// currency-then-amount scan. An empty value is not an error.
func applyTag32A(rec *models.ExtractedRecord, value string) error {
	if value == "" {
		return nil
	}
	var date, cur, amount string
	if m := strict32aRE.FindStringSubmatch(value); m != nil {
		date, cur, amount = m[1], m[2], m[3]
	} else if m := loose32aRE.FindStringSubmatch(value); m != nil {
		cur, amount = m[1], m[2]
	} else {
		return &parsererror.ParseError{Parser: "mt910", Field: "32A", Value: value, Err: errUnrecognized32A}
	}

	if d, ok := dateutils.ParseSwiftDate(date); ok {
		rec.ValueDate = models.OptionalString(dateutils.ToISODate(d))
	}
	if currencyutils.IsAllowedCurrency(cur) {
		rec.Currency = models.OptionalString(strings.ToUpper(cur))
	}
	if v, ok := currencyutils.ParseAmount(amount); ok {
		rec.Amount = &v
	}
	return nil
}

// fillValueFields copies the value date, currency and amount of from into the
// fields of rec that are still empty.
func fillValueFields(rec, from *models.ExtractedRecord) {
	if rec.ValueDate == nil {
		rec.ValueDate = from.ValueDate
	}
	if rec.Currency == nil {
		rec.Currency = from.Currency
	}
	if rec.Amount == nil {
		rec.Amount = from.Amount
	}
}

// applyFreeText fills what the tags left empty from "Amount:" and
// "Value Date:" labels anywhere in the message.
func applyFreeText(rec *models.ExtractedRecord, text string) {
	if rec.Amount == nil {
		if m := freeAmountRE.FindStringSubmatch(text); m != nil {
			if v, ok := currencyutils.ParseAmount(m[1]); ok {
				rec.Amount = &v
			}
			if rec.Currency == nil && currencyutils.IsAllowedCurrency(m[2]) {
				rec.Currency = models.OptionalString(strings.ToUpper(m[2]))
			}
		}
	}
	if rec.Currency == nil {
		if cur, ok := currencyutils.SelectCurrency(text); ok {
			rec.Currency = models.OptionalString(cur)
		}
	}
	if rec.ValueDate == nil {
		if m := valueDateRE.FindStringSubmatch(text); m != nil {
			if d, ok := dateutils.ParseDayMonthYear(m[1], m[2], m[3]); ok {
				rec.ValueDate = models.OptionalString(dateutils.ToISODate(d))
			}
		}
	}
}

// applyInstitutions reads the 11-character codes of the report header's
// Sender Institution and Receiver Institution blocks.
func applyInstitutions(rec *models.ExtractedRecord, text string) {
	if code, ok := institutionCode(text, senderInstitutionRE, senderEndRE); ok {
		rec.SenderBIC = models.OptionalString(code)
		rec.BankCode = models.OptionalString(code)
	}
	if code, ok := institutionCode(text, receiverInstitutionRE, receiverEndRE); ok {
		rec.ReceiverBIC = models.OptionalString(code)
		if rec.BankCode == nil {
			rec.BankCode = models.OptionalString(code)
		}
	}
}

func institutionCode(text string, start, end *regexp.Regexp) (string, bool) {
	loc := start.FindStringIndex(text)
	if loc == nil {
		return "", false
	}
	segment := text[loc[1]:]
	if e := end.FindStringIndex(segment); e != nil {
		segment = segment[:e[0]]
	}
	tokens := code11RE.FindAllString(segment, -1)
	if len(tokens) == 0 {
		return "", false
	}
	for _, tok := range tokens {
		if textutils.HasLetter(tok) {
			return strings.ToUpper(tok), true
		}
	}
	return strings.ToUpper(tokens[0]), true
}
