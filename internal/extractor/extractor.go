// Package extractor runs the per-document pipeline: read the PDF text, split
// it into messages, extract each supported message and apply the business
// rules that decide which records are kept.
package extractor

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"fjacquet/swift-csv/internal/factory"
	"fjacquet/swift-csv/internal/logging"
	"fjacquet/swift-csv/internal/metrics"
	"fjacquet/swift-csv/internal/models"
	"fjacquet/swift-csv/internal/parser"
	"fjacquet/swift-csv/internal/parsererror"
	"fjacquet/swift-csv/internal/pdfparser"
	"fjacquet/swift-csv/internal/splitter"
	"fjacquet/swift-csv/internal/textutils"
)

// Extractor turns SWIFT message PDFs into records. It holds no per-document
// state and can serve concurrent calls.
type Extractor struct {
	logger    logging.Logger
	pdf       pdfparser.PDFExtractor
	splitter  *splitter.Splitter
	registry  *factory.Registry
	lookup    parser.BICLookup
	direction models.Direction
	metrics   *metrics.Metrics
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithDirection sets the direction applied to MT202 and MT103 beneficiaries.
func WithDirection(d models.Direction) Option {
	return func(e *Extractor) { e.direction = d }
}

// WithPDFExtractor replaces the PDF text reader.
func WithPDFExtractor(p pdfparser.PDFExtractor) Option {
	return func(e *Extractor) { e.pdf = p }
}

// WithMetrics counts message and document outcomes in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Extractor) { e.metrics = m }
}

// New creates an Extractor dispatching to registry and resolving country
// fallbacks through lookup.
func New(logger logging.Logger, registry *factory.Registry, lookup parser.BICLookup, opts ...Option) *Extractor {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	e := &Extractor{
		logger:    logger,
		splitter:  splitter.NewSplitter(logger),
		registry:  registry,
		lookup:    lookup,
		direction: models.DirectionIncoming,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.pdf == nil {
		e.pdf = pdfparser.NewDefaultExtractor(logger)
	}
	return e
}

// Direction returns the configured direction.
func (e *Extractor) Direction() models.Direction {
	return e.direction
}

// ExtractFile reads the PDF at path and extracts every supported message.
// An unreadable document is returned as an error; problems inside single
// messages only produce error records.
func (e *Extractor) ExtractFile(path string) (*models.ExtractionResult, error) {
	start := time.Now()
	text, err := pdfparser.ReadDocument(path, e.pdf, e.logger)
	if err != nil {
		e.metrics.Document("failed")
		e.logger.WithError(err).Error("Failed to read PDF",
			logging.Field{Key: logging.FieldFile, Value: path})
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	result := e.ExtractText(text, filepath.Base(path))
	e.metrics.Document("ok")
	e.metrics.ObserveDocument(time.Since(start).Seconds())
	return result, nil
}

// ExtractReader extracts a PDF supplied as a byte stream. name labels the records.
func (e *Extractor) ExtractReader(r io.Reader, name string) (*models.ExtractionResult, error) {
	text, err := pdfparser.ExtractFromReader(r, e.pdf, e.logger)
	if err != nil {
		e.metrics.Document("failed")
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	result := e.ExtractText(text, name)
	e.metrics.Document("ok")
	return result, nil
}

// ExtractText runs the pipeline on already extracted text. source is the
// document name used in record labels.
func (e *Extractor) ExtractText(text, source string) *models.ExtractionResult {
	text = textutils.NormalizeText(text)
	blocks, _ := e.splitter.Split(text)

	result := &models.ExtractionResult{
		Source:  source,
		Records: make([]models.ExtractedRecord, 0, len(blocks)),
		Missing: models.NewMissingCodes(),
	}
	for i, block := range blocks {
		label := SourceLabel(source, i+1, len(blocks))
		rec := e.extractBlock(block, label, result.Missing)
		if rec == nil {
			continue
		}
		result.Records = append(result.Records, *rec)
	}

	e.logger.Info("Extracted SWIFT messages",
		logging.Field{Key: logging.FieldSource, Value: source},
		logging.Field{Key: logging.FieldBlocks, Value: len(blocks)},
		logging.Field{Key: logging.FieldCount, Value: len(result.Records)})
	if !result.Missing.IsZero() {
		e.logger.Warn("Some ordering institution codes could not be resolved",
			logging.Field{Key: logging.FieldSource, Value: source},
			logging.Field{Key: logging.FieldUnmapped, Value: strings.Join(result.Missing.Unmapped(), ",")},
			logging.Field{Key: logging.FieldEmpty, Value: len(result.Missing.Empty())})
	}
	return result
}

// SourceLabel names a record: the document alone when it holds a single
// message, "message N of file X" otherwise.
func SourceLabel(source string, n, total int) string {
	if total <= 1 {
		return source
	}
	return fmt.Sprintf("message %d of file %s", n, source)
}

// extractBlock returns nil when the block is dropped or rejected. The missing
// codes of kept records are accumulated into missing.
func (e *Extractor) extractBlock(block, label string, missing *models.MissingCodes) *models.ExtractedRecord {
	rec, mt := e.dispatch(block, label)
	if rec == nil {
		return nil
	}
	if rec.HasError() {
		e.metrics.Message(mt.String(), metrics.OutcomeFailed)
		return rec
	}

	if reason, rejected := RejectionReason(rec); rejected {
		e.logger.Debug("Message rejected",
			logging.Field{Key: logging.FieldSource, Value: label},
			logging.Field{Key: logging.FieldMessageType, Value: mt.String()},
			logging.Field{Key: logging.FieldReason, Value: reason})
		e.metrics.Message(mt.String(), metrics.OutcomeRejected)
		return nil
	}

	e.fillCountry(rec)
	e.trackMissing(rec, missing)
	e.metrics.Message(mt.String(), metrics.OutcomeExtracted)
	return rec
}

// trackMissing records an absent payer code as empty and a code without a
// bank name as unmapped. An outgoing MT202 beneficiary that stayed a bare
// code is unmapped too.
func (e *Extractor) trackMissing(rec *models.ExtractedRecord, missing *models.MissingCodes) {
	code := models.StringValue(rec.PayerCode)
	switch {
	case code == "":
		missing.AddEmpty(models.EmptyCodeMarker)
		e.metrics.Missing("empty")
	case models.StringValue(rec.PayerName) == code:
		missing.AddUnmapped(code)
		e.metrics.Missing("unmapped")
	}

	if e.direction.IsOutgoing() && rec.MessageType.Base() == "202" {
		if b := models.StringValue(rec.Beneficiary); isBareCode(b) {
			missing.AddUnmapped(b)
			e.metrics.Missing("unmapped")
		}
	}
}

func isBareCode(s string) bool {
	return len(s) >= 8 && len(s) <= 11 &&
		!strings.Contains(s, " ") &&
		strings.ToUpper(s) == s && textutils.HasLetter(s)
}

// dispatch detects the block type and runs its extractor. Unsupported or
// undetected types return a nil record.
func (e *Extractor) dispatch(block, label string) (rec *models.ExtractedRecord, mt models.MessageType) {
	code, ok := splitter.DetectType(block)
	if !ok {
		e.logger.Debug("Message dropped, type not detected",
			logging.Field{Key: logging.FieldSource, Value: label})
		e.metrics.Message(models.TypeUnknown.String(), metrics.OutcomeDropped)
		return nil, models.TypeUnknown
	}
	mt = models.ParseMessageType(code)
	ext, ok := e.registry.For(mt)
	if !mt.IsSupported() || !ok {
		e.logger.Debug("Message dropped, unsupported type",
			logging.Field{Key: logging.FieldSource, Value: label},
			logging.Field{Key: logging.FieldMessageType, Value: "fin." + code})
		e.metrics.Message(models.TypeUnknown.String(), metrics.OutcomeDropped)
		return nil, mt
	}

	defer func() {
		if r := recover(); r != nil {
			err := &parsererror.ExtractionError{Source: label, MessageType: mt.String(), Err: fmt.Errorf("panic: %v", r)}
			e.logger.WithError(err).Error("Message extraction failed",
				logging.Field{Key: logging.FieldSource, Value: label})
			rec = models.NewErrorRecord(mt, label, err)
		}
	}()
	rec = ext.Extract(block, label, e.direction)
	if rec == nil {
		rec = models.NewRecord(mt, label)
	}
	return rec, mt
}

// RejectionReason applies the business rules that drop fully parsed records.
func RejectionReason(rec *models.ExtractedRecord) (string, bool) {
	switch rec.MessageType.Base() {
	case "910":
		if rec.OrderingIdentifier == models.MT910BlockedOrderingCode {
			return "F50A identifier " + models.MT910BlockedOrderingCode, true
		}
	case "103":
		if rec.AuxiliaryContains(models.MT103BlockedAuxiliaryValues...) {
			return "blocked auxiliary institution", true
		}
	}
	return "", false
}

// fillCountry sets the country from the payer code when the extractor found none.
func (e *Extractor) fillCountry(rec *models.ExtractedRecord) {
	if rec.CountryISO3 != nil || rec.PayerCode == nil || e.lookup == nil {
		return
	}
	if country, ok := e.lookup.MapCodeToCountry(*rec.PayerCode); ok {
		rec.CountryISO3 = models.OptionalString(country)
	}
}
