package models

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// Money represents a monetary value with currency
type Money struct {
	Amount   decimal.Decimal `json:"amount" yaml:"amount"`
	Currency string          `json:"currency" yaml:"currency"`
}

// NewMoney creates a new Money instance with the given amount and currency
func NewMoney(amount decimal.Decimal, currency string) Money {
	return Money{
		Amount:   amount,
		Currency: currency,
	}
}

// RecordMoney returns the settled amount of rec. ok is false when the amount
// or the currency is missing.
func RecordMoney(rec *ExtractedRecord) (m Money, ok bool) {
	if rec == nil || rec.Amount == nil || rec.Currency == nil || *rec.Currency == "" {
		return Money{}, false
	}
	return NewMoney(*rec.Amount, *rec.Currency), true
}

// Add adds another Money value to this one
// Returns an error if currencies don't match
func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("cannot add different currencies: %s and %s", m.Currency, other.Currency)
	}
	return Money{
		Amount:   m.Amount.Add(other.Amount),
		Currency: m.Currency,
	}, nil
}

// String returns a string representation of the money value
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Amount.StringFixed(2), m.Currency)
}

// CurrencyTotal is the sum of the messages settled in one currency.
type CurrencyTotal struct {
	Currency string `yaml:"currency" json:"currency"`
	Amount   string `yaml:"amount" json:"amount"`
	Messages int    `yaml:"messages" json:"messages"`
}

// SumByCurrency totals the amounts of records, skipping error records and
// records without amount or currency. The result is sorted by currency.
func SumByCurrency(records []ExtractedRecord) []CurrencyTotal {
	sums := make(map[string]Money)
	counts := make(map[string]int)
	for i := range records {
		if records[i].HasError() {
			continue
		}
		m, ok := RecordMoney(&records[i])
		if !ok {
			continue
		}
		if cur, seen := sums[m.Currency]; seen {
			// same currency key, Add cannot fail
			m, _ = cur.Add(m)
		}
		sums[m.Currency] = m
		counts[m.Currency]++
	}

	totals := make([]CurrencyTotal, 0, len(sums))
	for code, m := range sums {
		totals = append(totals, CurrencyTotal{Currency: code, Amount: m.Amount.String(), Messages: counts[code]})
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Currency < totals[j].Currency })
	return totals
}
