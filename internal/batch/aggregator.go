// Package batch extracts a directory of SWIFT message PDFs in parallel and
// aggregates their records into one output and one run summary.
package batch

import (
	"strings"

	"fjacquet/swift-csv/internal/logging"
	"fjacquet/swift-csv/internal/models"
)

// Aggregator combines per-document results in input order.
type Aggregator struct {
	logger logging.Logger
}

// NewAggregator creates a new Aggregator instance.
func NewAggregator(logger logging.Logger) *Aggregator {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Aggregator{logger: logger}
}

// Combine concatenates the records of every successful document and merges
// their missing codes. Failed documents contribute nothing.
func (a *Aggregator) Combine(files []FileResult) ([]models.ExtractedRecord, *models.MissingCodes) {
	var records []models.ExtractedRecord
	missing := models.NewMissingCodes()

	for _, f := range files {
		if f.Err != nil || f.Result == nil {
			continue
		}
		records = append(records, f.Result.Records...)
		missing.Merge(f.Result.Missing)
	}

	a.detectAndLogDuplicates(records)
	return records, missing
}

// detectAndLogDuplicates warns about messages that appear more than once,
// typically because the same export was dropped into the directory twice.
// Duplicates are kept.
func (a *Aggregator) detectAndLogDuplicates(records []models.ExtractedRecord) int {
	seen := make(map[string]string)
	duplicates := 0

	for _, rec := range records {
		key, ok := duplicateKey(rec)
		if !ok {
			continue
		}
		if first, exists := seen[key]; exists {
			duplicates++
			a.logger.Warn("Potential duplicate message",
				logging.Field{Key: logging.FieldSource, Value: rec.SourceLabel},
				logging.Field{Key: "first_seen", Value: first},
				logging.Field{Key: "reference", Value: models.StringValue(rec.Reference)})
			continue
		}
		seen[key] = rec.SourceLabel
	}

	if duplicates > 0 {
		a.logger.Warn("Found potential duplicate messages",
			logging.Field{Key: logging.FieldCount, Value: duplicates})
	}
	return duplicates
}

// duplicateKey identifies a message by type, reference, value date and amount.
// Records without a reference or amount are never duplicates.
func duplicateKey(rec models.ExtractedRecord) (string, bool) {
	if rec.HasError() || rec.Reference == nil || rec.Amount == nil {
		return "", false
	}
	return strings.Join([]string{
		rec.MessageType.String(),
		strings.ToUpper(*rec.Reference),
		models.StringValue(rec.ValueDate),
		rec.Amount.String(),
	}, "|"), true
}
