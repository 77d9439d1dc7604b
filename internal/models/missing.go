package models

import "sort"

// MissingCodes accumulates donor-code resolution gaps across one or more PDFs.
// Unmapped holds codes found in a message but absent from the BIC table, and
// Empty holds a marker for messages where no code was found at all.
type MissingCodes struct {
	unmapped map[string]struct{}
	empty    map[string]struct{}
}

// NewMissingCodes returns an empty tracker.
func NewMissingCodes() *MissingCodes {
	return &MissingCodes{
		unmapped: make(map[string]struct{}),
		empty:    make(map[string]struct{}),
	}
}

// AddUnmapped records a code that has no bank name.
func (m *MissingCodes) AddUnmapped(code string) {
	if code == "" {
		return
	}
	m.unmapped[code] = struct{}{}
}

// AddEmpty records a message without any donor code.
func (m *MissingCodes) AddEmpty(marker string) {
	if marker == "" {
		marker = EmptyCodeMarker
	}
	m.empty[marker] = struct{}{}
}

// Merge adds every entry of other into m.
func (m *MissingCodes) Merge(other *MissingCodes) {
	if other == nil {
		return
	}
	for k := range other.unmapped {
		m.unmapped[k] = struct{}{}
	}
	for k := range other.empty {
		m.empty[k] = struct{}{}
	}
}

// Unmapped returns the sorted unmapped codes.
func (m *MissingCodes) Unmapped() []string {
	return sortedKeys(m.unmapped)
}

// Empty returns the sorted empty markers.
func (m *MissingCodes) Empty() []string {
	return sortedKeys(m.empty)
}

// IsZero reports whether nothing was recorded.
func (m *MissingCodes) IsZero() bool {
	return len(m.unmapped) == 0 && len(m.empty) == 0
}

// MarshalYAML renders the tracker as two sorted lists.
func (m *MissingCodes) MarshalYAML() (interface{}, error) {
	return missingView{Unmapped: m.Unmapped(), Empty: m.Empty()}, nil
}

type missingView struct {
	Unmapped []string `yaml:"unmapped" json:"unmapped"`
	Empty    []string `yaml:"empty" json:"empty"`
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// ExtractionResult is the output of extracting one PDF.
type ExtractionResult struct {
	Source  string
	Records []ExtractedRecord
	Missing *MissingCodes
}
