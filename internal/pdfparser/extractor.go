// Package pdfparser reads the text layer of SWIFT message PDFs.
package pdfparser

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"

	"fjacquet/swift-csv/internal/logging"
	"fjacquet/swift-csv/internal/parsererror"

	"github.com/ledongthuc/pdf"
)

// ErrNoText is returned by a reader that opened a document but found no text layer.
var ErrNoText = errors.New("no text layer")

// PDFExtractor defines the interface for extracting text from PDF files.
// This interface allows for dependency injection and makes the extraction
// pipeline testable without real documents.
type PDFExtractor interface {
	// ExtractText extracts text content from a PDF file at the given path.
	ExtractText(pdfPath string) (string, error)
}

// LibraryExtractor reads pages with the pure-Go ledongthuc/pdf reader.
type LibraryExtractor struct{}

// NewLibraryExtractor creates a new LibraryExtractor instance.
func NewLibraryExtractor() *LibraryExtractor {
	return &LibraryExtractor{}
}

// ExtractText concatenates the plain text of every page, each preceded by a newline.
func (e *LibraryExtractor) ExtractText(pdfPath string) (text string, err error) {
	// The reader panics on some malformed object streams.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("pdf reader panic: %v", r)
		}
	}()

	f, r, err := pdf.Open(pdfPath)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer func() { _ = f.Close() }()

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		pageText, err := p.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read page %d: %w", i, err)
		}
		sb.WriteString("\n")
		sb.WriteString(pageText)
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", ErrNoText
	}
	return sb.String(), nil
}

// DefaultCommandTimeout bounds one pdftotext run.
const DefaultCommandTimeout = 60 * time.Second

// CommandExtractor runs the poppler pdftotext tool in layout mode.
type CommandExtractor struct {
	Binary  string
	Timeout time.Duration
}

// NewCommandExtractor creates a CommandExtractor using pdftotext from PATH.
func NewCommandExtractor() *CommandExtractor {
	return &CommandExtractor{Binary: "pdftotext", Timeout: DefaultCommandTimeout}
}

// ExtractText runs "pdftotext -layout <file> -" and returns its standard output.
func (e *CommandExtractor) ExtractText(pdfPath string) (string, error) {
	bin, err := exec.LookPath(e.Binary)
	if err != nil {
		return "", fmt.Errorf("error locating %s: %w", e.Binary, err)
	}
	timeout := e.Timeout
	if timeout <= 0 {
		timeout = DefaultCommandTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, "-layout", pdfPath, "-") // #nosec G204 -- binary is configured, path is an argument
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("error running pdftotext: %s: %w", msg, err)
		}
		return "", fmt.Errorf("error running pdftotext: %w", err)
	}
	if strings.TrimSpace(stdout.String()) == "" {
		return "", ErrNoText
	}
	return stdout.String(), nil
}

// FallbackExtractor tries each reader in order and returns the first success.
type FallbackExtractor struct {
	readers []PDFExtractor
	logger  logging.Logger
}

// NewFallbackExtractor creates a FallbackExtractor over the given readers.
func NewFallbackExtractor(logger logging.Logger, readers ...PDFExtractor) *FallbackExtractor {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &FallbackExtractor{readers: readers, logger: logger}
}

// NewDefaultExtractor reads with the library first and pdftotext second.
func NewDefaultExtractor(logger logging.Logger) *FallbackExtractor {
	return NewFallbackExtractor(logger, NewLibraryExtractor(), NewCommandExtractor())
}

// ExtractText returns *parsererror.DocumentUnreadableError when every reader fails.
func (e *FallbackExtractor) ExtractText(pdfPath string) (string, error) {
	causes := make([]error, 0, len(e.readers))
	for i, reader := range e.readers {
		text, err := reader.ExtractText(pdfPath)
		if err == nil {
			return text, nil
		}
		causes = append(causes, err)
		if i < len(e.readers)-1 {
			e.logger.WithError(err).Debug("PDF reader failed, trying next",
				logging.Field{Key: logging.FieldFile, Value: pdfPath})
		}
	}
	return "", &parsererror.DocumentUnreadableError{FilePath: pdfPath, Causes: causes}
}

// MockPDFExtractor implements PDFExtractor for testing purposes.
// It returns predefined mock data instead of actually extracting from PDF files.
// It is safe for concurrent use.
type MockPDFExtractor struct {
	MockText string
	MockErr  error
	Calls    []string

	mu sync.Mutex
}

// NewMockPDFExtractor creates a new MockPDFExtractor with the given mock data.
func NewMockPDFExtractor(mockText string, mockErr error) *MockPDFExtractor {
	return &MockPDFExtractor{
		MockText: mockText,
		MockErr:  mockErr,
	}
}

// ExtractText returns the predefined mock text or error.
func (e *MockPDFExtractor) ExtractText(pdfPath string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Calls = append(e.Calls, pdfPath)
	if e.MockErr != nil {
		return "", e.MockErr
	}
	return e.MockText, nil
}
