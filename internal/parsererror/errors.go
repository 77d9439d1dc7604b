// Package parsererror holds the typed errors returned by the extraction pipeline.
package parsererror

import (
	"errors"
	"fmt"
	"strings"
)

// ParseError represents a failure to parse a single field value.
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError represents an input file rejected before extraction.
type ValidationError struct {
	FilePath string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.FilePath, e.Reason)
}

// InvalidFormatError represents an input or option that does not conform
// to the expected format.
type InvalidFormatError struct {
	FilePath             string
	ExpectedFormat       string
	ActualContentSnippet string
	Msg                  string
}

func (e *InvalidFormatError) Error() string {
	if e.ActualContentSnippet != "" {
		return fmt.Sprintf("invalid format in '%s': %s. Expected: %s. Content snippet: '%s'",
			e.FilePath, e.Msg, e.ExpectedFormat, e.ActualContentSnippet)
	}
	return fmt.Sprintf("invalid format in '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}

// DocumentUnreadableError is returned when no PDF reader could open a document.
// Causes holds the failure of every reader that was tried, in order.
type DocumentUnreadableError struct {
	FilePath string
	Causes   []error
}

func (e *DocumentUnreadableError) Error() string {
	if len(e.Causes) == 0 {
		return fmt.Sprintf("document '%s' is unreadable", e.FilePath)
	}
	msgs := make([]string, 0, len(e.Causes))
	for _, c := range e.Causes {
		msgs = append(msgs, c.Error())
	}
	return fmt.Sprintf("document '%s' is unreadable: %s", e.FilePath, strings.Join(msgs, "; "))
}

func (e *DocumentUnreadableError) Unwrap() error {
	return errors.Join(e.Causes...)
}

// MappingNotFoundError is returned when no BIC mapping spreadsheet exists
// at any candidate location.
type MappingNotFoundError struct {
	Tried []string
}

func (e *MappingNotFoundError) Error() string {
	return fmt.Sprintf("BIC mapping file not found; tried: %s", strings.Join(e.Tried, ", "))
}

// ExtractionError wraps an internal failure while extracting one message block.
type ExtractionError struct {
	Source      string
	MessageType string
	Err         error
}

func (e *ExtractionError) Error() string {
	if e.MessageType != "" {
		return fmt.Sprintf("extraction failed for %s (%s): %v", e.Source, e.MessageType, e.Err)
	}
	return fmt.Sprintf("extraction failed for %s: %v", e.Source, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
