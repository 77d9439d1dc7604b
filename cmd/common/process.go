// Package common contains shared functionality for command handlers
package common

import (
	"fmt"
	"strings"

	"fjacquet/swift-csv/internal/container"
	"fjacquet/swift-csv/internal/logging"
	"fjacquet/swift-csv/internal/models"
	"fjacquet/swift-csv/internal/validation"
)

// ProcessFile extracts the messages of one PDF and writes them to outputFile
// in the container's format. An empty outputFile or "-" writes to stdout.
func ProcessFile(c *container.Container, inputFile, outputFile string) (*models.ExtractionResult, error) {
	if err := validation.InputFile(inputFile); err != nil {
		return nil, err
	}
	log := c.GetLogger()
	log.Info("Extracting SWIFT messages",
		logging.Field{Key: logging.FieldInputFile, Value: inputFile},
		logging.Field{Key: logging.FieldOutputFile, Value: outputFile},
		logging.Field{Key: logging.FieldDirection, Value: string(c.Direction())})

	result, err := c.GetExtractor().ExtractFile(inputFile)
	if err != nil {
		return nil, err
	}
	LogMissing(log, result.Missing)

	if err := c.GetWriter().WriteFile(outputFile, result.Records, c.Format()); err != nil {
		return nil, fmt.Errorf("error writing records: %w", err)
	}
	return result, nil
}

// LogMissing logs the codes that could not be resolved to a bank name.
func LogMissing(log logging.Logger, missing *models.MissingCodes) {
	if missing == nil || missing.IsZero() {
		log.Info("All ordering institution codes resolved")
		return
	}
	log.Warn("Missing ordering institution codes",
		logging.Field{Key: logging.FieldUnmapped, Value: strings.Join(missing.Unmapped(), ",")},
		logging.Field{Key: logging.FieldEmpty, Value: strings.Join(missing.Empty(), ",")})
}
