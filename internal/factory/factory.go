// Package factory maps detected SWIFT message types to their extractors.
package factory

import (
	"fmt"

	"fjacquet/swift-csv/internal/logging"
	"fjacquet/swift-csv/internal/models"
	"fjacquet/swift-csv/internal/mt103parser"
	"fjacquet/swift-csv/internal/mt202parser"
	"fjacquet/swift-csv/internal/mt910parser"
	"fjacquet/swift-csv/internal/parser"
)

// Options tune the extractors built by the registry.
type Options struct {
	// TrackAuxiliaryFields keeps raw MT103 F53A/F54A/F57A text for the
	// auxiliary rejection rule.
	TrackAuxiliaryFields bool
}

// GetExtractorWithLogger returns a new extractor for the base type of mt.
func GetExtractorWithLogger(mt models.MessageType, logger logging.Logger, lookup parser.BICLookup, opts Options) (parser.MessageExtractor, error) {
	switch mt.Base() {
	case "202":
		return mt202parser.NewParser(logger, lookup), nil
	case "103":
		return mt103parser.NewParser(logger, lookup, opts.TrackAuxiliaryFields), nil
	case "910":
		return mt910parser.NewParser(logger, lookup), nil
	default:
		return nil, fmt.Errorf("unknown message type: %s", mt)
	}
}

// Registry holds one extractor per supported base type. Extractors are
// stateless, so a Registry may be shared by concurrent extractions.
type Registry struct {
	extractors map[string]parser.MessageExtractor
}

// NewRegistry builds the extractors for 202, 103 and 910.
func NewRegistry(logger logging.Logger, lookup parser.BICLookup, opts Options) *Registry {
	r := &Registry{extractors: make(map[string]parser.MessageExtractor)}
	for _, mt := range []models.MessageType{models.TypeMT202, models.TypeMT103, models.TypeMT910} {
		ext, err := GetExtractorWithLogger(mt, logger, lookup, opts)
		if err != nil {
			continue
		}
		r.extractors[mt.Base()] = ext
	}
	return r
}

// For returns the extractor handling mt. The dotted suffix of 202.COV is ignored.
func (r *Registry) For(mt models.MessageType) (parser.MessageExtractor, bool) {
	ext, ok := r.extractors[mt.Base()]
	return ext, ok
}

// SetLogger replaces the logger of every registered extractor.
func (r *Registry) SetLogger(logger logging.Logger) {
	for _, ext := range r.extractors {
		if c, ok := ext.(parser.LoggerConfigurable); ok {
			c.SetLogger(logger)
		}
	}
}
