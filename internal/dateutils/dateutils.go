// Package dateutils provides the date parsing used by the SWIFT field extractors.
package dateutils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Common date format constants used throughout the application
const (
	DateLayoutISO       = "2006-01-02"
	DateLayoutEuropean  = "02.01.2006"
	DateLayoutUS        = "01/02/2006"
	DateLayoutFull      = "2006-01-02 15:04:05"
	DateLayoutWithMonth = "2-Jan-2006"
	DateLayoutSwift     = "060102"
)

// CommonFormats is a list of standard formats to try when parsing dates
var CommonFormats = []string{
	DateLayoutISO,
	DateLayoutFull,
	DateLayoutUS,
	DateLayoutEuropean,
	DateLayoutWithMonth,
	"2006/01/02",
	"20060102",
	"02 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 January 2006",
}

var (
	swiftDateRE   = regexp.MustCompile(`^\d{6}$`)
	labelledDate  = regexp.MustCompile(`(?i)\bDate[:\s]*([0-9]{6})\b`)
	firstSixDigit = regexp.MustCompile(`(\d{6})`)
	spacesRE      = regexp.MustCompile(`\s+`)
)

// ParseDate attempts to parse a date string using multiple common formats
// Returns the parsed time and the detected format
func ParseDate(dateStr string) (time.Time, string, error) {
	dateStr = CleanDateString(dateStr)

	for _, format := range CommonFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, format, nil
		}
	}

	return time.Time{}, "", fmt.Errorf("unable to parse date: %s", dateStr)
}

// ParseSwiftDate parses a SWIFT YYMMDD token, always in the 2000s.
// Other shapes go through ParseDate. Impossible calendar dates such as
// 250230 are rejected instead of being normalized into the next month.
func ParseSwiftDate(token string) (time.Time, bool) {
	token = strings.TrimSpace(token)
	if token == "" {
		return time.Time{}, false
	}
	if swiftDateRE.MatchString(token) {
		yy, _ := strconv.Atoi(token[0:2])
		mm, _ := strconv.Atoi(token[2:4])
		dd, _ := strconv.Atoi(token[4:6])
		return Date(2000+yy, mm, dd)
	}
	t, _, err := ParseDate(token)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Date builds a UTC date and reports false when the components do not name a
// real calendar day.
func Date(year, month, day int) (time.Time, bool) {
	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, false
	}
	return t, true
}

// ParseDayMonthYear parses separate day, month and year strings as printed in
// "Value Date: 15/01/25". Two-digit years are in the 2000s.
func ParseDayMonthYear(day, month, year string) (time.Time, bool) {
	d, err := strconv.Atoi(day)
	if err != nil {
		return time.Time{}, false
	}
	m, err := strconv.Atoi(month)
	if err != nil {
		return time.Time{}, false
	}
	if len(year) == 2 {
		year = "20" + year
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return time.Time{}, false
	}
	return Date(y, m, d)
}

// SelectDate finds the value date in an F32A-like block: a "Date:" labelled
// six-digit token first, else the first six-digit run.
func SelectDate(block string) (time.Time, bool) {
	if m := labelledDate.FindStringSubmatch(block); m != nil {
		if t, ok := ParseSwiftDate(m[1]); ok {
			return t, true
		}
	}
	if m := firstSixDigit.FindStringSubmatch(block); m != nil {
		return ParseSwiftDate(m[1])
	}
	return time.Time{}, false
}

// FormatDate formats a time.Time value according to the specified layout
// If no layout is provided, DateLayoutISO is used
func FormatDate(date time.Time, layout string) string {
	if layout == "" {
		layout = DateLayoutISO
	}
	return date.Format(layout)
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// CleanDateString removes unwanted characters and normalizes a date string
func CleanDateString(dateStr string) string {
	dateStr = strings.TrimSpace(dateStr)
	return spacesRE.ReplaceAllString(dateStr, " ")
}
