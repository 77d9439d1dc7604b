// Package bicmap resolves institution codes to bank names and countries using
// a spreadsheet of BIC codes.
package bicmap

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode"

	"fjacquet/swift-csv/internal/countryutils"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/xuri/excelize/v2"
)

const (
	code8Length = 8
	sampleSize  = 20
)

// Mapping is a loaded BIC table.
type Mapping struct {
	// ByCode8 maps the first eight characters of a code to a bank name.
	ByCode8 map[string]string
	// ByFull maps complete codes of eight or more characters to a bank name.
	ByFull map[string]string
	// Country maps the first eight characters of a code to an ISO3 country.
	Country map[string]string
	// Path is the absolute path of the source spreadsheet.
	Path string
}

// Match is one result of a fuzzy bank-name search.
type Match struct {
	Code     string
	Name     string
	Country  string
	Distance int
}

func newMapping(path string) *Mapping {
	return &Mapping{
		ByCode8: make(map[string]string),
		ByFull:  make(map[string]string),
		Country: make(map[string]string),
		Path:    path,
	}
}

// Len returns the number of distinct eight-character codes.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.ByCode8)
}

// MapCodeToName prefers an exact full-code entry, then the eight-character prefix.
func (m *Mapping) MapCodeToName(code string) (string, bool) {
	if m == nil {
		return "", false
	}
	code = normalizeCode(code)
	if code == "" {
		return "", false
	}
	if name := m.ByFull[code]; name != "" {
		return name, true
	}
	name, ok := m.ByCode8[key8(code)]
	return name, ok && name != ""
}

// MapCodeToCountry returns the ISO3 country registered for the code's prefix.
func (m *Mapping) MapCodeToCountry(code string) (string, bool) {
	if m == nil {
		return "", false
	}
	code = normalizeCode(code)
	if code == "" {
		return "", false
	}
	country, ok := m.Country[key8(code)]
	return country, ok && country != ""
}

// Find ranks bank names against query, closest first. A non-positive limit
// returns every match.
func (m *Mapping) Find(query string, limit int) []Match {
	if m == nil || strings.TrimSpace(query) == "" {
		return nil
	}
	codes := make([]string, 0, len(m.ByCode8))
	for code := range m.ByCode8 {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	names := make([]string, len(codes))
	for i, code := range codes {
		names[i] = m.ByCode8[code]
	}

	ranks := fuzzy.RankFindNormalizedFold(strings.TrimSpace(query), names)
	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].Distance != ranks[j].Distance {
			return ranks[i].Distance < ranks[j].Distance
		}
		return ranks[i].OriginalIndex < ranks[j].OriginalIndex
	})

	matches := make([]Match, 0, len(ranks))
	for _, r := range ranks {
		code := codes[r.OriginalIndex]
		matches = append(matches, Match{
			Code:     code,
			Name:     r.Target,
			Country:  m.Country[code],
			Distance: r.Distance,
		})
		if limit > 0 && len(matches) == limit {
			break
		}
	}
	return matches
}

// LoadFile reads the first sheet of an xlsx BIC table.
func LoadFile(path string) (*Mapping, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open BIC file %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return loadWorkbook(f, path)
}

// Load reads an xlsx BIC table from r. path is only recorded on the mapping.
func Load(r io.Reader, path string) (*Mapping, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open BIC workbook: %w", err)
	}
	defer func() { _ = f.Close() }()
	return loadWorkbook(f, path)
}

func loadWorkbook(f *excelize.File, path string) (*Mapping, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("BIC file %s has no sheet", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return buildMapping(rows, path)
}

// buildMapping turns sheet rows (header first) into a Mapping.
func buildMapping(rows [][]string, path string) (*Mapping, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("BIC file %s is empty", path)
	}
	cols := detectColumns(rows[0], rows[1:])
	if cols.code < 0 {
		return nil, fmt.Errorf("BIC file %s has no code column", path)
	}

	m := newMapping(path)
	// exact8 marks prefixes named by an 8-character row; branch rows sharing
	// the prefix must not rename them.
	exact8 := make(map[string]bool)
	for _, row := range rows[1:] {
		code := normalizeCode(cell(row, cols.code))
		if code == "" {
			continue
		}
		name := strings.TrimSpace(cell(row, cols.name))
		country := normalizeCountry(cell(row, cols.country))

		k := key8(code)
		switch {
		case name != "" && (k == code || !exact8[k]):
			m.ByCode8[k] = name
			exact8[k] = exact8[k] || k == code
		case name == "":
			if _, seen := m.ByCode8[k]; !seen {
				m.ByCode8[k] = code
			}
		}
		if country != "" {
			m.Country[k] = country
		}
		if len(code) >= code8Length {
			if name != "" {
				m.ByFull[code] = name
			} else {
				m.ByFull[code] = m.ByCode8[k]
			}
		}
	}
	return m, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func normalizeCode(code string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToUpper(r)
	}, code)
}

func normalizeCountry(value string) string {
	value = strings.ToUpper(strings.TrimSpace(value))
	if iso3, ok := countryutils.Normalize(value); ok {
		return iso3
	}
	return value
}

func key8(code string) string {
	if len(code) > code8Length {
		return code[:code8Length]
	}
	return code
}
