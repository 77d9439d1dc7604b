package pdfparser

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"fjacquet/swift-csv/internal/logging"
	"fjacquet/swift-csv/internal/parsererror"
	"fjacquet/swift-csv/internal/textutils"
)

var pdfMagic = []byte("%PDF-")

// headerScan is how far into the file the %PDF- marker may appear.
const headerScan = 1024

// ValidateFormat reports whether the file starts with a PDF header.
// A missing or unreadable file is an error.
func ValidateFormat(pdfPath string) (bool, error) {
	f, err := os.Open(pdfPath) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		return false, fmt.Errorf("error opening input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	head := make([]byte, headerScan)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return false, fmt.Errorf("error reading input file: %w", err)
	}
	return bytes.Contains(head[:n], pdfMagic), nil
}

// ReadDocument validates pdfPath, extracts its text and normalizes it.
func ReadDocument(pdfPath string, extractor PDFExtractor, logger logging.Logger) (string, error) {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	ok, err := ValidateFormat(pdfPath)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", &parsererror.InvalidFormatError{
			FilePath:       pdfPath,
			ExpectedFormat: "PDF",
			Msg:            "file is not a valid PDF",
		}
	}

	logger.Debug("Reading PDF text",
		logging.Field{Key: logging.FieldFile, Value: pdfPath})
	raw, err := extractor.ExtractText(pdfPath)
	if err != nil {
		return "", err
	}
	return textutils.NormalizeText(raw), nil
}

// ExtractFromReader spools r to a temporary file and reads it like ReadDocument.
func ExtractFromReader(r io.Reader, extractor PDFExtractor, logger logging.Logger) (string, error) {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	tempFile, err := os.CreateTemp("", "swift-*.pdf")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary PDF file: %w", err)
	}
	defer func() {
		if err := os.Remove(tempFile.Name()); err != nil {
			logger.WithError(err).Warn("Failed to remove temporary file",
				logging.Field{Key: logging.FieldFile, Value: tempFile.Name()})
		}
	}()

	if _, err := io.Copy(tempFile, r); err != nil {
		_ = tempFile.Close()
		return "", fmt.Errorf("failed to write to temporary PDF file: %w", err)
	}
	// pdftotext must see the complete file.
	if err := tempFile.Close(); err != nil {
		return "", fmt.Errorf("failed to close temporary PDF file: %w", err)
	}
	return ReadDocument(tempFile.Name(), extractor, logger)
}
