package parser

import (
	"fjacquet/swift-csv/internal/logging"
	"fjacquet/swift-csv/internal/models"
)

// MessageExtractor turns the text of one SWIFT message into a record.
type MessageExtractor interface {
	// Extract parses block and returns a fully-keyed record. It never panics
	// past its own boundary: internal failures produce a record with Error set.
	// direction only changes the beneficiary rules of MT202 and MT103.
	Extract(block, source string, direction models.Direction) *models.ExtractedRecord
}

// LoggerConfigurable is implemented by components whose logger can be replaced.
type LoggerConfigurable interface {
	SetLogger(logger logging.Logger)
}

// BICLookup maps institution codes to bank names and ISO3 countries.
type BICLookup interface {
	MapCodeToName(code string) (string, bool)
	MapCodeToCountry(code string) (string, bool)
}
