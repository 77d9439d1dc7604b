package batch

import (
	"time"

	"fjacquet/swift-csv/internal/common"
	"fjacquet/swift-csv/internal/models"
)

// SummaryFileName is written next to the combined records.
const SummaryFileName = "summary.yaml"

// Summary is the manifest of a batch run.
type Summary struct {
	RunID     string                 `yaml:"run_id"`
	StartedAt time.Time              `yaml:"started_at"`
	Output    string                 `yaml:"output,omitempty"`
	Documents int                    `yaml:"documents"`
	Failed    int                    `yaml:"failed"`
	Records   int                    `yaml:"records"`
	Totals    []models.CurrencyTotal `yaml:"totals"`
	Files     []FileSummary          `yaml:"files"`
	Missing   *models.MissingCodes   `yaml:"missing_codes"`
}

// FileSummary is one document line of the manifest.
type FileSummary struct {
	File       string `yaml:"file"`
	Records    int    `yaml:"records"`
	Errors     int    `yaml:"error_records,omitempty"`
	Error      string `yaml:"error,omitempty"`
	DurationMS int64  `yaml:"duration_ms"`
}

// Summary builds the manifest of the run. output names the combined records file.
func (r *Result) Summary(output string) Summary {
	s := Summary{
		RunID:     r.RunID,
		StartedAt: r.StartedAt,
		Output:    output,
		Documents: len(r.Files),
		Failed:    r.Failed(),
		Records:   len(r.Records),
		Totals:    models.SumByCurrency(r.Records),
		Files:     make([]FileSummary, 0, len(r.Files)),
		Missing:   r.Missing,
	}
	if s.Missing == nil {
		s.Missing = models.NewMissingCodes()
	}
	for _, f := range r.Files {
		fs := FileSummary{File: f.File, DurationMS: f.Duration.Milliseconds()}
		if f.Err != nil {
			fs.Error = f.Err.Error()
		}
		if f.Result != nil {
			fs.Records = len(f.Result.Records)
			for _, rec := range f.Result.Records {
				if rec.HasError() {
					fs.Errors++
				}
			}
		}
		s.Files = append(s.Files, fs)
	}
	return s
}

// WriteSummary writes the manifest as YAML to path.
func (r *Result) WriteSummary(path, output string) error {
	return common.WriteYAMLFile(path, r.Summary(output))
}
