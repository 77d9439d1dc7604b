package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"fjacquet/swift-csv/internal/common"
	"fjacquet/swift-csv/internal/logging"
	"fjacquet/swift-csv/internal/models"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DocumentExtractor extracts the records of one PDF.
type DocumentExtractor interface {
	ExtractFile(path string) (*models.ExtractionResult, error)
}

// FileResult is the outcome of one document.
type FileResult struct {
	File     string
	Result   *models.ExtractionResult
	Err      error
	Duration time.Duration
}

// Result is the outcome of a run. Files keep the input order.
type Result struct {
	RunID     string
	StartedAt time.Time
	Files     []FileResult
	Records   []models.ExtractedRecord
	Missing   *models.MissingCodes
}

// Failed returns the number of documents that could not be extracted.
func (r *Result) Failed() int {
	n := 0
	for _, f := range r.Files {
		if f.Err != nil {
			n++
		}
	}
	return n
}

// Runner extracts documents with a bounded number of workers.
type Runner struct {
	logger     logging.Logger
	extractor  DocumentExtractor
	aggregator *Aggregator
	workers    int
	newRunID   func() string
}

// NewRunner creates a Runner. workers below one means one.
func NewRunner(logger logging.Logger, extractor DocumentExtractor, workers int) *Runner {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if workers < 1 {
		workers = 1
	}
	return &Runner{
		logger:     logger,
		extractor:  extractor,
		aggregator: NewAggregator(logger),
		workers:    workers,
		newRunID:   func() string { return uuid.NewString() },
	}
}

// Run extracts files in parallel. A failing document is recorded in its
// FileResult and never stops the others. Run only returns an error when ctx
// is cancelled.
func (r *Runner) Run(ctx context.Context, files []string) (*Result, error) {
	res := &Result{
		RunID:     r.newRunID(),
		StartedAt: time.Now().UTC(),
		Files:     make([]FileResult, len(files)),
	}
	logger := r.logger.WithField(logging.FieldRunID, res.RunID)
	logger.Info("Starting batch run",
		logging.Field{Key: logging.FieldCount, Value: len(files)},
		logging.Field{Key: logging.FieldWorkers, Value: r.workers})

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, file := range files {
		g.Go(func() error {
			res.Files[i] = r.extractOne(gctx, logger, file)
			return nil
		})
	}
	_ = g.Wait()

	res.Records, res.Missing = r.aggregator.Combine(res.Files)
	logger.Info("Finished batch run",
		logging.Field{Key: logging.FieldCount, Value: len(res.Records)},
		logging.Field{Key: "failed", Value: res.Failed()},
		logging.Field{Key: logging.FieldDuration, Value: time.Since(res.StartedAt).Milliseconds()})

	if err := ctx.Err(); err != nil {
		return res, fmt.Errorf("batch run %s cancelled: %w", res.RunID, err)
	}
	return res, nil
}

func (r *Runner) extractOne(ctx context.Context, logger logging.Logger, file string) FileResult {
	fr := FileResult{File: file}
	if err := ctx.Err(); err != nil {
		fr.Err = err
		return fr
	}

	start := time.Now()
	fr.Result, fr.Err = r.extractor.ExtractFile(file)
	fr.Duration = time.Since(start)

	if fr.Err != nil {
		logger.WithError(fr.Err).Warn("Document failed",
			logging.Field{Key: logging.FieldFile, Value: file})
		return fr
	}
	logger.Debug("Document extracted",
		logging.Field{Key: logging.FieldFile, Value: file},
		logging.Field{Key: logging.FieldCount, Value: len(fr.Result.Records)},
		logging.Field{Key: logging.FieldDuration, Value: fr.Duration.Milliseconds()})
	return fr
}

// FindPDFs lists the PDF files directly inside dir, sorted by name.
func FindPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !common.IsPDFName(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}
