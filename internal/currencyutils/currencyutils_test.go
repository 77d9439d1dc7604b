package currencyutils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name      string
		amountStr string
		expected  string
		ok        bool
	}{
		{"European format", "191.700,64", "191700.64", true},
		{"US format", "191,700.64", "191700.64", true},
		{"Space thousands", "191 700,64", "191700.64", true},
		{"No-break space thousands", "191\u00a0700,64", "191700.64", true},
		{"Comma decimal one digit", "1234,5", "1234.5", true},
		{"Comma thousands", "1,234", "1234", true},
		{"Several comma groups", "1,234,567", "1234567", true},
		{"Several dot groups", "1.234.567", "1234567", true},
		{"Plain decimal", "123.45", "123.45", true},
		{"Currency noise stripped", "XAF 1.000,00", "1000", true},
		{"Negative", "-12,50", "-12.5", true},
		{"Empty", "", "0", false},
		{"Letters only", "abc", "0", false},
		{"Lone minus", "-", "0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseAmount(tt.amountStr)
			assert.Equal(t, tt.ok, ok)
			assert.True(t, decimal.RequireFromString(tt.expected).Equal(got), "expected %s, got %s", tt.expected, got)
		})
	}
}

func TestStandardizeAmount(t *testing.T) {
	assert.Equal(t, "191700.64", StandardizeAmount("191.700,64"))
	assert.Equal(t, "1234.56", StandardizeAmount(" 1 234.56 "))
	assert.Equal(t, "1234", StandardizeAmount("1,234"))
}

func TestSelectAmount(t *testing.T) {
	tests := []struct {
		name     string
		block    string
		expected string
		ok       bool
	}{
		{
			name:     "labelled line preferred",
			block:    "Date: 250115\nCurrency: Devise: XAF\nAmount: Montant: 191.700,64",
			expected: "191700.64",
			ok:       true,
		},
		{
			name:     "most digits wins without label",
			block:    "250115 XAF 1.500.000,00",
			expected: "1500000",
			ok:       true,
		},
		{
			name:     "hash noise ignored",
			block:    "#9999999999#\nMontant: 10,5",
			expected: "10.5",
			ok:       true,
		},
		{
			name:  "nothing numeric",
			block: "Currency: XAF",
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SelectAmount(tt.block)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, decimal.RequireFromString(tt.expected).Equal(got), "expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestIsAllowedCurrency(t *testing.T) {
	assert.True(t, IsAllowedCurrency("XAF"))
	assert.True(t, IsAllowedCurrency(" eur "))
	assert.True(t, IsAllowedCurrency("CFA"))
	assert.False(t, IsAllowedCurrency("ABC"))
	assert.False(t, IsAllowedCurrency(""))
}

func TestSelectCurrency(t *testing.T) {
	tests := []struct {
		name     string
		block    string
		expected string
		ok       bool
	}{
		{"strict bilingual label", "Currency: Devise: XAF\nAmount: 10", "XAF", true},
		{"label within forty chars", "Currency: eur", "EUR", true},
		{"first allowed token", "DATE 250101 THE BANK XOF 100", "XOF", true},
		{"disallowed label skips to tokens", "Currency: ABC\nPaid USD", "USD", true},
		{"nothing allowed", "Currency: ABC", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SelectCurrency(tt.block)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "$1,234.56", Display(decimal.RequireFromString("1234.56"), "usd"))
	assert.Equal(t, "1234.50 CFA", Display(decimal.RequireFromString("1234.5"), "CFA"))
	assert.Equal(t, "7.00", Display(decimal.NewFromInt(7), ""))
}
