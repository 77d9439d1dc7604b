// Package parser provides the base functionality and common interfaces shared by
// the per-type SWIFT message extractors.
package parser

import (
	"strings"

	"fjacquet/swift-csv/internal/logging"
	"fjacquet/swift-csv/internal/swiftfields"
)

// BaseParser provides common functionality for all message extractors: a
// logger and the BIC lookup used to turn institution codes into names and
// countries.
//
// Extractors should embed BaseParser to inherit common functionality:
//
//	type MyParser struct {
//		parser.BaseParser
//		// extractor-specific fields
//	}
type BaseParser struct {
	logger logging.Logger
	lookup BICLookup
}

// NewBaseParser creates a new BaseParser instance with the provided logger and lookup.
// If logger is nil, a default logger will be used. A nil lookup resolves nothing,
// so extraction degrades to bare codes without a country.
func NewBaseParser(logger logging.Logger, lookup BICLookup) BaseParser {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if lookup == nil {
		lookup = noLookup{}
	}

	return BaseParser{
		logger: logger,
		lookup: lookup,
	}
}

// SetLogger implements the LoggerConfigurable interface.
func (b *BaseParser) SetLogger(logger logging.Logger) {
	if logger != nil {
		b.logger = logger
	}
}

// GetLogger returns the current logger instance.
func (b *BaseParser) GetLogger() logging.Logger {
	return b.logger
}

// ResolveDonor renders code as "CODE/Name" when the lookup knows it.
func (b *BaseParser) ResolveDonor(code string) string {
	return swiftfields.ResolveInstitution(code, b.lookup)
}

// CountryForCode returns the ISO3 country of an institution code.
func (b *BaseParser) CountryForCode(code string) (string, bool) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", false
	}
	return b.lookup.MapCodeToCountry(code)
}

type noLookup struct{}

func (noLookup) MapCodeToName(string) (string, bool)    { return "", false }
func (noLookup) MapCodeToCountry(string) (string, bool) { return "", false }
