package parsererror

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseError(t *testing.T) {
	originalErr := errors.New("invalid decimal")
	err := &ParseError{Parser: "MT910", Field: ":32A:", Value: "xx", Err: originalErr}

	assert.Equal(t, "MT910: failed to parse :32A:='xx': invalid decimal", err.Error())
	assert.True(t, errors.Is(err, originalErr))
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{FilePath: "in.txt", Reason: "not a PDF"}
	assert.Equal(t, "validation failed for in.txt: not a PDF", err.Error())
}

func TestInvalidFormatError(t *testing.T) {
	tests := []struct {
		name     string
		err      *InvalidFormatError
		expected string
	}{
		{
			name:     "without snippet",
			err:      &InvalidFormatError{FilePath: "out.xls", ExpectedFormat: "csv, json or yaml", Msg: "unsupported output format"},
			expected: "invalid format in 'out.xls': unsupported output format. Expected: csv, json or yaml",
		},
		{
			name:     "with snippet",
			err:      &InvalidFormatError{FilePath: "a.pdf", ExpectedFormat: "PDF", Msg: "bad header", ActualContentSnippet: "PK"},
			expected: "invalid format in 'a.pdf': bad header. Expected: PDF. Content snippet: 'PK'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestDocumentUnreadableError(t *testing.T) {
	libErr := errors.New("malformed xref")
	cmdErr := fmt.Errorf("pdftotext: %w", os.ErrNotExist)
	err := &DocumentUnreadableError{FilePath: "scan.pdf", Causes: []error{libErr, cmdErr}}

	assert.Equal(t, "document 'scan.pdf' is unreadable: malformed xref; pdftotext: file does not exist", err.Error())
	assert.True(t, errors.Is(err, libErr))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	empty := &DocumentUnreadableError{FilePath: "x.pdf"}
	assert.Equal(t, "document 'x.pdf' is unreadable", empty.Error())
}

func TestMappingNotFoundError(t *testing.T) {
	err := &MappingNotFoundError{Tried: []string{"/a/bic.xlsx", "bic.xlsx"}}
	assert.Equal(t, "BIC mapping file not found; tried: /a/bic.xlsx, bic.xlsx", err.Error())

	var target *MappingNotFoundError
	wrapped := fmt.Errorf("resolve: %w", err)
	assert.True(t, errors.As(wrapped, &target))
	assert.Len(t, target.Tried, 2)
}

func TestExtractionError(t *testing.T) {
	cause := errors.New("index out of range")
	withType := &ExtractionError{Source: "message 2 of file a.pdf", MessageType: "fin.103", Err: cause}
	assert.Equal(t, "extraction failed for message 2 of file a.pdf (fin.103): index out of range", withType.Error())
	assert.Same(t, cause, errors.Unwrap(withType))

	noType := &ExtractionError{Source: "a.pdf", Err: cause}
	assert.Equal(t, "extraction failed for a.pdf: index out of range", noType.Error())
}
