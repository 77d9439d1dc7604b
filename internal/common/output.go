package common

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/swift-csv/internal/logging"
	"fjacquet/swift-csv/internal/models"
	"fjacquet/swift-csv/internal/parsererror"

	"gopkg.in/yaml.v3"
)

// Format is an output encoding for extracted records.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates an output format name. "yml" is accepted for YAML.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", &parsererror.InvalidFormatError{
			FilePath:       "format",
			ExpectedFormat: "csv, json or yaml",
			Msg:            "unsupported output format " + s,
		}
	}
}

// Extension returns the file extension for the format, with its dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// RecordWriter encodes records in one of the supported formats.
type RecordWriter struct {
	logger    logging.Logger
	delimiter rune
}

// NewRecordWriter creates a RecordWriter. delimiter only applies to CSV.
func NewRecordWriter(logger logging.Logger, delimiter rune) *RecordWriter {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if delimiter == 0 {
		delimiter = DefaultDelimiter
	}
	return &RecordWriter{logger: logger, delimiter: delimiter}
}

// Write encodes records to w.
func (rw *RecordWriter) Write(w io.Writer, records []models.ExtractedRecord, format Format) error {
	if records == nil {
		records = []models.ExtractedRecord{}
	}
	switch format {
	case FormatCSV:
		return WriteRecordsCSV(w, records, rw.delimiter)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("error writing JSON data: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return fmt.Errorf("error writing YAML data: %w", err)
		}
		return enc.Close()
	default:
		return &parsererror.InvalidFormatError{
			FilePath:       "format",
			ExpectedFormat: "csv, json or yaml",
			Msg:            "unsupported output format " + string(format),
		}
	}
}

// WriteFile writes records to path, creating its directory. An empty path or
// "-" writes to stdout.
func (rw *RecordWriter) WriteFile(path string, records []models.ExtractedRecord, format Format) error {
	if path == "" || path == "-" {
		return rw.Write(os.Stdout, records, format)
	}

	if err := os.MkdirAll(filepath.Dir(path), models.PermissionDirectory); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}
	file, err := os.Create(path) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}

	if err := rw.Write(file, records, format); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("error closing output file: %w", err)
	}

	rw.logger.Info("Wrote records",
		logging.Field{Key: logging.FieldOutputFile, Value: path},
		logging.Field{Key: logging.FieldFormat, Value: string(format)},
		logging.Field{Key: logging.FieldCount, Value: len(records)})
	return nil
}

// WriteYAMLFile writes any value as a YAML document, used for run summaries.
func WriteYAMLFile(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), models.PermissionDirectory); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("error encoding YAML: %w", err)
	}
	if err := os.WriteFile(path, data, models.PermissionReportFile); err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	return nil
}
