// Package currencyutils provides amount parsing, currency selection and amount display
// for the text of rendered SWIFT messages.
package currencyutils

import (
	"regexp"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

var (
	amountNoiseRE     = regexp.MustCompile(`[^0-9,.\-\s]`)
	whitespaceRE      = regexp.MustCompile(`\s+`)
	amountCandidateRE = regexp.MustCompile(`[0-9]+(?:[.,\s][0-9]{1,3})*(?:[.,][0-9]{1,2})?`)
	amountLineRE      = regexp.MustCompile(`(?im)^\s*(?:Montant|Amount)\s*[:\-]\s*(.*)$`)
	hashNoiseRE       = regexp.MustCompile(`(?s)#.*?#`)

	strictCurrencyRE = regexp.MustCompile(`(?i)Currency\s*[:\s]+Devise\s*[:\s]+([A-Z]{3})\b`)
	labelCurrencyRE  = regexp.MustCompile(`(?is)\b(?:Devise|Currency).{0,40}?([A-Z]{3})\b`)
	tokenCurrencyRE  = regexp.MustCompile(`\b([A-Z]{3})\b`)
)

// allowedCurrencies is the closed list of codes accepted as a message currency.
// CFA is not ISO 4217 but appears in CEMAC documents.
var allowedCurrencies = map[string]struct{}{
	"USD": {}, "EUR": {}, "GBP": {}, "JPY": {}, "CHF": {}, "CAD": {}, "AUD": {}, "NZD": {},
	"CNY": {}, "INR": {}, "RUB": {}, "BRL": {}, "MXN": {}, "SGD": {}, "HKD": {}, "KRW": {},
	"XAF": {}, "XOF": {}, "XPF": {}, "CFA": {},
	"ZAR": {}, "NGN": {}, "KES": {}, "EGP": {},
	"TND": {}, "MAD": {}, "AED": {}, "SAR": {}, "ILS": {},
	"THB": {}, "MYR": {}, "PHP": {}, "IDR": {}, "VND": {},
	"PKR": {}, "BDT": {}, "LKR": {},
}

// ParseAmount parses an amount written with either separator convention.
// "191.700,64", "191,700.64" and "191 700,64" all yield 191700.64.
// The second return value is false when nothing numeric remains.
func ParseAmount(s string) (decimal.Decimal, bool) {
	standardized := StandardizeAmount(s)
	if standardized == "" {
		return decimal.Zero, false
	}
	amount, err := decimal.NewFromString(standardized)
	if err != nil {
		return decimal.Zero, false
	}
	return amount, true
}

// StandardizeAmount rewrites an amount string into the form accepted by
// decimal.NewFromString.
//
// When both separators are present the later one is the decimal point. A lone
// comma is decimal only when one or two digits follow it. Repeated dots without
// any comma are thousands separators.
func StandardizeAmount(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = amountNoiseRE.ReplaceAllString(s, "")
	s = whitespaceRE.ReplaceAllString(s, "")

	hasComma := strings.Contains(s, ",")
	hasDot := strings.Contains(s, ".")

	switch {
	case hasComma && hasDot:
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case hasComma:
		tail := len(s) - strings.LastIndex(s, ",") - 1
		if tail == 1 || tail == 2 {
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case strings.Count(s, ".") > 1:
		s = strings.ReplaceAll(s, ".", "")
	}

	return s
}

// SelectAmount picks the transfer amount out of an F32A-like block.
// A "Montant:" or "Amount:" line is preferred; otherwise every numeric
// candidate of the block competes. The candidate with the most digits wins,
// the first one on ties.
func SelectAmount(block string) (decimal.Decimal, bool) {
	clean := hashNoiseRE.ReplaceAllString(block, "")

	candidate := ""
	if m := amountLineRE.FindStringSubmatch(clean); m != nil {
		candidate = longestNumber(amountCandidateRE.FindAllString(strings.TrimSpace(m[1]), -1))
	}
	if candidate == "" {
		candidate = longestNumber(amountCandidateRE.FindAllString(clean, -1))
	}
	if candidate == "" {
		return decimal.Zero, false
	}
	return ParseAmount(candidate)
}

func longestNumber(candidates []string) string {
	best, bestDigits := "", 0
	for _, c := range candidates {
		n := countDigits(c)
		if n > bestDigits {
			best, bestDigits = c, n
		}
	}
	return best
}

func countDigits(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			n++
		}
	}
	return n
}

// IsAllowedCurrency reports whether code is in the accepted currency list.
func IsAllowedCurrency(code string) bool {
	_, ok := allowedCurrencies[strings.ToUpper(strings.TrimSpace(code))]
	return ok
}

// SelectCurrency finds the message currency in block, trying in order the
// strict "Currency: Devise: XXX" layout, a code within 40 characters after a
// Devise or Currency label, and finally the first allowed three-letter token.
func SelectCurrency(block string) (string, bool) {
	clean := hashNoiseRE.ReplaceAllString(block, "")

	for _, re := range []*regexp.Regexp{strictCurrencyRE, labelCurrencyRE} {
		if m := re.FindStringSubmatch(clean); m != nil {
			if code := strings.ToUpper(m[1]); IsAllowedCurrency(code) {
				return code, true
			}
		}
	}
	for _, m := range tokenCurrencyRE.FindAllStringSubmatch(clean, -1) {
		if IsAllowedCurrency(m[1]) {
			return m[1], true
		}
	}
	return "", false
}

// Display formats amount in code for human output, using the currency's minor
// unit and symbol when go-money knows the code. Unknown codes fall back to
// "1234.56 CODE".
func Display(amount decimal.Decimal, code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	cur := money.GetCurrency(code)
	if cur == nil {
		if code == "" {
			return amount.StringFixed(2)
		}
		return amount.StringFixed(2) + " " + code
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, cur.Code).Display()
}
