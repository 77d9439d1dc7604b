package splitter

import (
	"strings"
	"testing"

	"fjacquet/swift-csv/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoIdentifiers = `Swift Export
Identifier: fin.202
F20: REF1
F32A: 250101XAF100,
Identifier: fin.202.COV
F20: REF2
F32A: 250102XAF200,`

func TestSplitMessages_IdentifierHeaders(t *testing.T) {
	blocks := SplitMessages(twoIdentifiers)

	require.Len(t, blocks, 2)
	assert.True(t, strings.HasPrefix(blocks[0], "Identifier: fin.202\n"))
	assert.True(t, strings.HasPrefix(blocks[1], "Identifier: fin.202.COV"))
	assert.Contains(t, blocks[1], "REF2")
	assert.NotContains(t, blocks[0], "Swift Export")
}

func TestSplitMessages_Strategies(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "message headings win over identifiers",
			text:     "Message 1\nIdentifier: fin.103\nA\nMessage 2\nIdentifier: fin.910\nB",
			expected: []string{"Message 1\nIdentifier: fin.103\nA", "Message 2\nIdentifier: fin.910\nB"},
		},
		{
			name:     "sender headers",
			text:     "Sender: AAAACMCX\nMT202 one\nSender: BBBBCMCX\nMT202 two",
			expected: []string{"Sender: AAAACMCX\nMT202 one", "Sender: BBBBCMCX\nMT202 two"},
		},
		{
			name:     "message identifier headers",
			text:     "Unique Message Identifier: X1\nbody1\nMessage Identifier: X2\nbody2",
			expected: []string{"Unique Message Identifier: X1\nbody1", "Message Identifier: X2\nbody2"},
		},
		{
			name:     "reference tags keep prefix and drop tiny blocks",
			text:     "MT103 export header\n:20:REFERENCE-ONE\n:20:X\n:20:REFERENCE-TWO",
			expected: []string{"MT103 export header", ":20:REFERENCE-ONE", ":20:REFERENCE-TWO"},
		},
		{
			name:     "separator lines",
			text:     "first message\n*****\nsecond message\n-----\n",
			expected: []string{"first message", "second message"},
		},
		{
			name:     "underscore rules",
			text:     "page one text\n________\npage two text",
			expected: []string{"page one text", "page two text"},
		},
		{
			name:     "single message",
			text:     "  Identifier: fin.910\nBlock 4\n:20:ONLY  ",
			expected: []string{"Identifier: fin.910\nBlock 4\n:20:ONLY"},
		},
		{
			name:     "carriage returns normalised",
			text:     "Message 1\rA\rMessage 2\rB",
			expected: []string{"Message 1\nA", "Message 2\nB"},
		},
		{
			name:     "blank text",
			text:     " \n ",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitMessages(tt.text))
		})
	}
}

func TestSplitOnReferenceTags_NoTags(t *testing.T) {
	assert.Nil(t, SplitOnReferenceTags("no tags at all"))
}

func TestSplitter_LogsWinningStrategy(t *testing.T) {
	logger := logging.NewMockLogger()
	s := NewSplitter(logger)

	blocks, strategy := s.Split(twoIdentifiers)

	assert.Len(t, blocks, 2)
	assert.Equal(t, "identifier-header", strategy)

	entries := logger.GetEntriesByLevel("DEBUG")
	require.Len(t, entries, 1)
	v, ok := entries[0].FieldValue(logging.FieldStrategy)
	require.True(t, ok)
	assert.Equal(t, "identifier-header", v)
}

func TestSplitter_WholeTextFallback(t *testing.T) {
	_, strategy := NewSplitter(logging.NewMockLogger()).Split("just one message")
	assert.Equal(t, StrategyWholeText, strategy)
}

func TestDetectType(t *testing.T) {
	tests := []struct {
		name     string
		block    string
		expected string
		ok       bool
	}{
		{"identifier header", "Identifier: fin.202\nF20: X", "202", true},
		{"cover suffix", "identifier : FIN.202.cov", "202.COV", true},
		{"header beats inline", "MT103 mentioned\nIdentifier: fin.910", "910", true},
		{"inline MT", "Swift MT103 message", "103", true},
		{"inline FIN with separator", "FIN-910 confirmation", "910", true},
		{"unsupported still detected", "Identifier: fin.555", "555", true},
		{"nothing", "plain text", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DetectType(tt.block)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestSplitThenDetect_RoundTrip(t *testing.T) {
	doc := "Header\nIdentifier: fin.103\nF32A: 250101XAF100,\nF50K: JOHN DOE"
	whole, ok := DetectType(doc)
	require.True(t, ok)

	blocks := SplitMessages(doc)
	require.Len(t, blocks, 1)
	got, ok := DetectType(blocks[0])
	require.True(t, ok)
	assert.Equal(t, whole, got)
}
