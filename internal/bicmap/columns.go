package bicmap

import (
	"regexp"
	"strings"
	"unicode"
)

// columns holds the detected column indexes; -1 means absent.
type columns struct {
	code    int
	name    int
	country int
}

// headerRule is one column-detection heuristic. It returns the chosen index
// or -1, never picking an index listed in taken.
type headerRule func(headers []string, rows [][]string, taken map[int]bool) int

var (
	exactCodeHeaders = []string{"CODE", "BIC", "CODE BIC", "BIC_CODE", "BIC8", "CODE8", "CODE_BIC", "CODEBIC"}
	exactNameHeaders = []string{"NOMS", "NOM", "NAME", "BANK", "INSTITUTION", "NOMINSTITUTION"}
	codeShapeRE      = regexp.MustCompile(`^[A-Z0-9]{6,12}$`)

	codeRules = []headerRule{
		exactHeader(exactCodeHeaders...),
		headerContains([]string{"BIC", "SWIFT"}, countryWords),
		headerContains([]string{"CODE"}, countryWords),
		codeShapedValues,
	}
	nameRules = []headerRule{
		exactHeader(exactNameHeaders...),
		headerContains([]string{"NOM", "NAME"}, nil),
		mostAlphabetic,
	}
	countryRules = []headerRule{
		headerContains(countryWords, nil),
	}
	countryWords = []string{"PAYS", "COUNTRY", "ISO3"}
)

// detectColumns runs the code, country and name rules in that order so that
// the name fallback cannot claim the code or country column.
func detectColumns(header []string, rows [][]string) columns {
	headers := make([]string, len(header))
	for i, h := range header {
		headers[i] = strings.ToUpper(strings.TrimSpace(h))
	}

	taken := map[int]bool{}
	cols := columns{code: -1, name: -1, country: -1}

	cols.code = firstRule(codeRules, headers, rows, taken)
	if cols.code >= 0 {
		taken[cols.code] = true
	}
	cols.country = firstRule(countryRules, headers, rows, taken)
	if cols.country >= 0 {
		taken[cols.country] = true
	}
	cols.name = firstRule(nameRules, headers, rows, taken)
	return cols
}

func firstRule(rules []headerRule, headers []string, rows [][]string, taken map[int]bool) int {
	for _, rule := range rules {
		if idx := rule(headers, rows, taken); idx >= 0 {
			return idx
		}
	}
	return -1
}

func exactHeader(names ...string) headerRule {
	return func(headers []string, _ [][]string, taken map[int]bool) int {
		for i, h := range headers {
			if taken[i] {
				continue
			}
			for _, n := range names {
				if h == n {
					return i
				}
			}
		}
		return -1
	}
}

func headerContains(words, exclude []string) headerRule {
	return func(headers []string, _ [][]string, taken map[int]bool) int {
		for i, h := range headers {
			if taken[i] || containsAny(h, exclude) {
				continue
			}
			if containsAny(h, words) {
				return i
			}
		}
		return -1
	}
}

// codeShapedValues picks the first column with a sampled value shaped like a code.
func codeShapedValues(headers []string, rows [][]string, taken map[int]bool) int {
	for i := range headers {
		if taken[i] {
			continue
		}
		for _, v := range sample(rows, i) {
			if codeShapeRE.MatchString(strings.ToUpper(v)) {
				return i
			}
		}
	}
	return -1
}

// mostAlphabetic picks the column whose sampled values have the highest share
// of letters.
func mostAlphabetic(headers []string, rows [][]string, taken map[int]bool) int {
	best, bestScore := -1, 0.0
	for i := range headers {
		if taken[i] {
			continue
		}
		if score := alphaFraction(sample(rows, i)); score > bestScore {
			best, bestScore = i, score
		}
	}
	return best
}

func sample(rows [][]string, idx int) []string {
	var out []string
	for _, row := range rows {
		if v := strings.TrimSpace(cell(row, idx)); v != "" {
			out = append(out, v)
			if len(out) == sampleSize {
				break
			}
		}
	}
	return out
}

func alphaFraction(values []string) float64 {
	letters, total := 0, 0
	for _, v := range values {
		for _, r := range v {
			total++
			if unicode.IsLetter(r) {
				letters++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(letters) / float64(total)
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
