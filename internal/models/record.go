package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ExtractedRecord is the normalized content of one SWIFT message.
// Optional fields are pointers so that JSON and YAML output always carry
// every key, with null for values that could not be recovered.
type ExtractedRecord struct {
	MessageType      MessageType      `json:"message_type" yaml:"message_type" csv:"message_type"`
	BankCode         *string          `json:"bank_code" yaml:"bank_code" csv:"bank_code"`
	SenderBIC        *string          `json:"sender_bic" yaml:"sender_bic" csv:"sender_bic"`
	ReceiverBIC      *string          `json:"receiver_bic" yaml:"receiver_bic" csv:"receiver_bic"`
	Reference        *string          `json:"reference" yaml:"reference" csv:"reference"`
	RelatedReference *string          `json:"related_reference" yaml:"related_reference" csv:"related_reference"`
	SenderAccount    *string          `json:"sender_account" yaml:"sender_account" csv:"sender_account"`
	ValueDate        *string          `json:"value_date" yaml:"value_date" csv:"value_date"`
	Currency         *string          `json:"currency" yaml:"currency" csv:"currency"`
	Amount           *decimal.Decimal `json:"amount" yaml:"amount" csv:"amount"`
	PayerCode        *string          `json:"payer_code" yaml:"payer_code" csv:"payer_code"`
	PayerName        *string          `json:"payer_name" yaml:"payer_name" csv:"payer_name"`
	Beneficiary      *string          `json:"beneficiary" yaml:"beneficiary" csv:"beneficiary"`
	CountryISO3      *string          `json:"country_iso3" yaml:"country_iso3" csv:"country_iso3"`
	SourceLabel      string           `json:"source_label" yaml:"source_label" csv:"source_label"`
	Error            *string          `json:"error" yaml:"error" csv:"error"`

	// Donor is the resolved ordering institution, "CODE/Name" or "CODE".
	Donor string `json:"-" yaml:"-" csv:"-"`
	// AuxiliaryFields holds raw F53A/F54A/F57A text when tracking is enabled.
	AuxiliaryFields map[string]string `json:"-" yaml:"-" csv:"-"`
	// OrderingIdentifier is the F50A identifier code of an MT910.
	OrderingIdentifier string `json:"-" yaml:"-" csv:"-"`
}

// NewRecord returns an empty record of the given type.
func NewRecord(mt MessageType, source string) *ExtractedRecord {
	return &ExtractedRecord{MessageType: mt, SourceLabel: source}
}

// NewErrorRecord returns a minimal record carrying only the failure text.
func NewErrorRecord(mt MessageType, source string, err error) *ExtractedRecord {
	rec := NewRecord(mt, source)
	if err != nil {
		rec.Error = OptionalString(err.Error())
	}
	return rec
}

// HasError reports whether extraction of this record failed.
func (r *ExtractedRecord) HasError() bool {
	return r.Error != nil
}

// SetAuxiliary stores raw text of an auxiliary tag.
func (r *ExtractedRecord) SetAuxiliary(tag, raw string) {
	if raw == "" {
		return
	}
	if r.AuxiliaryFields == nil {
		r.AuxiliaryFields = make(map[string]string)
	}
	r.AuxiliaryFields[tag] = raw
}

// AuxiliaryContains reports whether any tracked auxiliary field contains one of needles.
func (r *ExtractedRecord) AuxiliaryContains(needles ...string) bool {
	for _, raw := range r.AuxiliaryFields {
		upper := strings.ToUpper(raw)
		for _, n := range needles {
			if strings.Contains(upper, strings.ToUpper(n)) {
				return true
			}
		}
	}
	return false
}

// OptionalString returns nil for an empty (after trimming) string.
func OptionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// StringValue dereferences p, returning "" for nil.
func StringValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
