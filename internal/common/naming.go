package common

import (
	"path/filepath"
	"strings"
)

// OutputFileName derives the output name of one input document:
// "dir/report.PDF" becomes "report.csv" for FormatCSV.
func OutputFileName(inputPath string, format Format) string {
	base := filepath.Base(inputPath)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	if base == "" || base == "." || base == string(filepath.Separator) {
		base = "records"
	}
	return base + format.Extension()
}

// IsPDFName reports whether name has a .pdf extension, in any case.
func IsPDFName(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".pdf")
}
