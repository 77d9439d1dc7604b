package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseMessageType(t *testing.T) {
	tests := []struct {
		code     string
		expected MessageType
		display  string
	}{
		{"202", TypeMT202, "fin.202"},
		{"202.cov", TypeMT202COV, "fin.202.COV"},
		{"202.ABC", MessageType("202.ABC"), "fin.202.ABC"},
		{"103", TypeMT103, "fin.103"},
		{"103.STP", TypeMT103, "fin.103"},
		{"910", TypeMT910, "fin.910"},
		{"555", TypeUnknown, "unknown"},
		{"", TypeUnknown, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			mt := ParseMessageType(tt.code)
			assert.Equal(t, tt.expected, mt)
			assert.Equal(t, tt.display, mt.String())
		})
	}
}

func TestMessageType_BaseAndSuffix(t *testing.T) {
	assert.Equal(t, "202", TypeMT202COV.Base())
	assert.Equal(t, "COV", TypeMT202COV.Suffix())
	assert.Equal(t, "", TypeMT910.Suffix())
	assert.True(t, TypeMT103.IsSupported())
	assert.False(t, TypeUnknown.IsSupported())
}

func TestMessageType_TextRoundTrip(t *testing.T) {
	var mt MessageType
	require.NoError(t, mt.UnmarshalText([]byte("fin.202.COV")))
	assert.Equal(t, TypeMT202COV, mt)
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("")
	require.NoError(t, err)
	assert.Equal(t, DirectionIncoming, d)

	d, err = ParseDirection("OUTGOING")
	require.NoError(t, err)
	assert.True(t, d.IsOutgoing())

	_, err = ParseDirection("sideways")
	assert.Error(t, err)
}

func TestExtractedRecord_AllKeysPresent(t *testing.T) {
	rec := NewRecord(TypeMT910, "a.pdf")
	amount := decimal.RequireFromString("191700.64")
	rec.Amount = &amount
	rec.Currency = OptionalString("XAF")

	data, err := json.Marshal(rec)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	for _, key := range []string{
		"message_type", "bank_code", "sender_bic", "receiver_bic", "reference",
		"related_reference", "sender_account", "value_date", "currency", "amount",
		"payer_code", "payer_name", "beneficiary", "country_iso3", "source_label", "error",
	} {
		assert.Contains(t, decoded, key)
	}
	assert.Nil(t, decoded["beneficiary"])
	assert.Equal(t, "fin.910", decoded["message_type"])
	assert.Equal(t, "191700.64", decoded["amount"])
	assert.NotContains(t, decoded, "Donor")

	out, err := yaml.Marshal(rec)
	require.NoError(t, err)
	assert.Contains(t, string(out), "beneficiary: null")
	assert.Contains(t, string(out), "message_type: fin.910")
}

func TestNewErrorRecord(t *testing.T) {
	rec := NewErrorRecord(TypeMT103, "message 2 of file b.pdf", errors.New("boom"))
	assert.True(t, rec.HasError())
	assert.Equal(t, "boom", StringValue(rec.Error))
	assert.Nil(t, rec.Amount)
	assert.Equal(t, "message 2 of file b.pdf", rec.SourceLabel)
}

func TestAuxiliaryContains(t *testing.T) {
	rec := NewRecord(TypeMT103, "x")
	assert.False(t, rec.AuxiliaryContains(MT103BlockedAuxiliaryValues...))

	rec.SetAuxiliary(TagF53A, "")
	assert.Nil(t, rec.AuxiliaryFields)

	rec.SetAuxiliary(TagF57A, "Banque de France\nPARIS")
	assert.True(t, rec.AuxiliaryContains(MT103BlockedAuxiliaryValues...))
}

func TestOptionalString(t *testing.T) {
	assert.Nil(t, OptionalString("   "))
	assert.Equal(t, "X", *OptionalString(" X "))
	assert.Equal(t, "", StringValue(nil))
}

func TestMissingCodes(t *testing.T) {
	a := NewMissingCodes()
	assert.True(t, a.IsZero())
	a.AddUnmapped("ZZZZCMCX")
	a.AddUnmapped("")
	a.AddEmpty("")

	b := NewMissingCodes()
	b.AddUnmapped("AAAACMCX")
	b.AddUnmapped("ZZZZCMCX")
	a.Merge(b)
	a.Merge(nil)

	assert.Equal(t, []string{"AAAACMCX", "ZZZZCMCX"}, a.Unmapped())
	assert.Equal(t, []string{EmptyCodeMarker}, a.Empty())

	out, err := yaml.Marshal(a)
	require.NoError(t, err)
	assert.Contains(t, string(out), "unmapped:")
	assert.Contains(t, string(out), "- AAAACMCX")
}
