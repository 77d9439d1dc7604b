// Package mt202parser extracts MT202 and MT202.COV bank-to-bank transfers.
package mt202parser

import (
	"fjacquet/swift-csv/internal/logging"
	"fjacquet/swift-csv/internal/models"
	"fjacquet/swift-csv/internal/parser"
	"fjacquet/swift-csv/internal/splitter"
	"fjacquet/swift-csv/internal/swiftfields"
	"fjacquet/swift-csv/internal/textutils"
)

// donorFields are tried in order for the ordering institution.
var donorFields = []string{"F52A", "F52D", "F50F"}

// Parser extracts MT202 messages.
type Parser struct {
	parser.BaseParser
}

// NewParser creates an MT202 extractor resolving codes through lookup.
func NewParser(logger logging.Logger, lookup parser.BICLookup) *Parser {
	return &Parser{BaseParser: parser.NewBaseParser(logger, lookup)}
}

// Extract implements parser.MessageExtractor.
func (p *Parser) Extract(block, source string, direction models.Direction) *models.ExtractedRecord {
	mt := messageType(block)
	return p.Guard(mt, source, func() *models.ExtractedRecord {
		return p.extract(block, source, mt, direction)
	})
}

func (p *Parser) extract(block, source string, mt models.MessageType, direction models.Direction) *models.ExtractedRecord {
	rec := models.NewRecord(mt, source)
	parser.ApplyHeaderBICs(rec, block)
	if ref, ok := swiftfields.ExtractReference(block); ok {
		rec.Reference = models.OptionalString(ref)
	}
	parser.ApplyValueFields(rec, block)

	// Without any F52 family field the label search runs on the full text.
	field, _ := textutils.FieldBlockOr(block, donorFields...)
	if code, ok := swiftfields.ExtractInstitutionCode(field, block); ok {
		p.ApplyDonor(rec, code)
	} else {
		p.GetLogger().Debug("No ordering institution code found",
			logging.Field{Key: logging.FieldSource, Value: source})
	}

	if direction.IsOutgoing() {
		if beneficiary, ok := p.ResolveBeneficiaryBIC(block, "F58A"); ok {
			rec.Beneficiary = models.OptionalString(beneficiary)
		}
	}
	return rec
}

// messageType keeps a dotted suffix such as COV and defaults to plain 202.
func messageType(block string) models.MessageType {
	if code, ok := splitter.DetectType(block); ok {
		if mt := models.ParseMessageType(code); mt.Base() == string(models.TypeMT202) {
			return mt
		}
	}
	return models.TypeMT202
}
