package textutils_test

import (
	"regexp"
	"testing"

	"fjacquet/swift-csv/internal/textutils"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "page markers removed",
			input:    "\nF20: REF1\nPage 1 of 2\nF32A: 250101",
			expected: "\nF20: REF1\n\nF32A: 250101",
		},
		{
			name:     "bare page marker case insensitive",
			input:    "A\n  PAGE 3  \nB",
			expected: "A\n\nB",
		},
		{
			name:     "carriage returns become newlines",
			input:    "A\rB",
			expected: "A\nB",
		},
		{
			name:     "blank runs collapsed",
			input:    "A\n\n\n\n\nB",
			expected: "A\n\nB",
		},
		{
			name:     "decomposed accents composed",
			input:    "Banque d'e\u0301tat",
			expected: "Banque d'\u00e9tat",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, textutils.NormalizeText(tt.input))
		})
	}
}

func TestGetFieldBlock(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		label    string
		expected string
		found    bool
	}{
		{
			name:     "stops before next tag",
			text:     "F52A: foo\nbar\nF59: baz",
			label:    "F52A",
			expected: "foo\nbar",
			found:    true,
		},
		{
			name:     "runs to end of text",
			text:     "F20: A\nF59:\n/CM21 1000\nJOHN DOE",
			label:    "F59",
			expected: "/CM21 1000\nJOHN DOE",
			found:    true,
		},
		{
			name:     "case insensitive label",
			text:     "header\nf32a: Date: 250101\nF33B: x",
			label:    "F32A",
			expected: "Date: 250101",
			found:    true,
		},
		{
			name:     "lowercase tag-like text stays in the block",
			text:     "F52A: foo\nf59: not a tag\nF59: baz",
			label:    "F52A",
			expected: "foo\nf59: not a tag",
			found:    true,
		},
		{
			name:     "next tag without colon",
			text:     "F52A\nIdentifierCode\nBEACCMCX\nF58A Beneficiary\nXXXX",
			label:    "F52A",
			expected: "IdentifierCode\nBEACCMCX",
			found:    true,
		},
		{
			name:     "value on following lines after colon",
			text:     "F20:\n\n  S0652501\nF21: NONREF",
			label:    "F20",
			expected: "S0652501",
			found:    true,
		},
		{
			name:     "digits after tag are not a boundary",
			text:     "F52A: x\nF5212 noise\nF59: y",
			label:    "F52A",
			expected: "x\nF5212 noise",
			found:    true,
		},
		{
			name:  "absent label",
			text:  "F20: A",
			label: "F52A",
			found: false,
		},
		{
			name:  "empty text",
			text:  "",
			label: "F20",
			found: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			block, ok := textutils.GetFieldBlock(tt.text, tt.label)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.expected, block)
		})
	}
}

func TestFieldBlockOr(t *testing.T) {
	text := "F52D: ORDERING BANK\nF58A: x"
	block, ok := textutils.FieldBlockOr(text, "F52A", "F52D")
	assert.True(t, ok)
	assert.Equal(t, "ORDERING BANK", block)

	_, ok = textutils.FieldBlockOr(text, "F50F")
	assert.False(t, ok)
}

func TestIsTagAt(t *testing.T) {
	assert.True(t, textutils.IsTagAt("F52A:", 0))
	assert.True(t, textutils.IsTagAt("F20", 0))
	assert.True(t, textutils.IsTagAt("x F59 y", 2))
	assert.False(t, textutils.IsTagAt("FAB", 0))
	assert.False(t, textutils.IsTagAt("F5", 0))
	assert.False(t, textutils.IsTagAt("F52AB", 0))
	assert.False(t, textutils.IsTagAt("f59: beneficiary", 0))
	assert.False(t, textutils.IsTagAt("F52a:", 0))
}

func TestSmallHelpers(t *testing.T) {
	assert.Equal(t, " CODE ", textutils.StripMarkup("<b>CODE</b>"))
	assert.Equal(t, "A B C", textutils.CompactWhitespace("  A \n B\tC "))
	assert.Equal(t, []string{"A", "B"}, textutils.NonEmptyLines("A\n\n  \n B "))
	assert.Equal(t, "cde", textutils.Window("abcdefg", 2, 3))
	assert.Equal(t, "fg", textutils.Window("abcdefg", 5, 10))
	assert.Equal(t, "", textutils.Window("abc", 9, 2))
	assert.True(t, textutils.HasLetter("12A4"))
	assert.False(t, textutils.HasLetter("1234"))
}

func TestFirstSubmatch(t *testing.T) {
	first := regexp.MustCompile(`Ref:[ \t]*(\S*)`)
	second := regexp.MustCompile(`Reference\s+(\S+)`)

	v, ok := textutils.FirstSubmatch("Ref: \nReference ABC", first, second)
	assert.True(t, ok)
	assert.Equal(t, "ABC", v)

	_, ok = textutils.FirstSubmatch("nothing", first, second)
	assert.False(t, ok)
}
