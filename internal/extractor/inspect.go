package extractor

import (
	"fjacquet/swift-csv/internal/models"
	"fjacquet/swift-csv/internal/pdfparser"
	"fjacquet/swift-csv/internal/splitter"
	"fjacquet/swift-csv/internal/textutils"
)

// Block outcomes reported by Inspect.
const (
	StatusExtracted = "extracted"
	StatusDropped   = "dropped"
	StatusRejected  = "rejected"
	StatusFailed    = "failed"
)

// BlockReport describes what the pipeline did with one message block.
type BlockReport struct {
	Index  int
	Label  string
	Type   string
	Status string
	Reason string
	Record *models.ExtractedRecord
	Text   string
}

// Inspection is the block-by-block view of one document.
type Inspection struct {
	Source   string
	Strategy string
	Blocks   []BlockReport
}

// ReadText returns the normalized text of the PDF at path.
func (e *Extractor) ReadText(path string) (string, error) {
	return pdfparser.ReadDocument(path, e.pdf, e.logger)
}

// Inspect runs the pipeline over text like ExtractText but keeps a report of
// every block, including dropped and rejected ones.
func (e *Extractor) Inspect(text, source string) *Inspection {
	text = textutils.NormalizeText(text)
	blocks, strategy := e.splitter.Split(text)

	in := &Inspection{Source: source, Strategy: strategy, Blocks: make([]BlockReport, 0, len(blocks))}
	for i, block := range blocks {
		label := SourceLabel(source, i+1, len(blocks))
		report := BlockReport{Index: i + 1, Label: label, Text: block}
		report.Type, _ = splitter.DetectType(block)

		rec, _ := e.dispatch(block, label)
		switch {
		case rec == nil:
			report.Status = StatusDropped
		case rec.HasError():
			report.Status = StatusFailed
			report.Record = rec
		default:
			if reason, rejected := RejectionReason(rec); rejected {
				report.Status, report.Reason = StatusRejected, reason
			} else {
				report.Status = StatusExtracted
				e.fillCountry(rec)
			}
			report.Record = rec
		}
		in.Blocks = append(in.Blocks, report)
	}
	return in
}
