// Package common holds the output writers shared by the CLI commands.
package common

import (
	"encoding/csv"
	"fmt"
	"io"

	"fjacquet/swift-csv/internal/models"

	"github.com/gocarina/gocsv"
)

// DefaultDelimiter separates CSV cells unless csv.delimiter says otherwise.
const DefaultDelimiter = ','

// WriteRecordsCSV writes records with a header row. Absent values are empty cells.
func WriteRecordsCSV(w io.Writer, records []models.ExtractedRecord, delimiter rune) error {
	if records == nil {
		records = []models.ExtractedRecord{}
	}
	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = delimiter

	if err := gocsv.MarshalCSV(records, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}
