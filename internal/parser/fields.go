package parser

import (
	"fmt"
	"regexp"
	"strings"

	"fjacquet/swift-csv/internal/currencyutils"
	"fjacquet/swift-csv/internal/dateutils"
	"fjacquet/swift-csv/internal/logging"
	"fjacquet/swift-csv/internal/models"
	"fjacquet/swift-csv/internal/parsererror"
	"fjacquet/swift-csv/internal/swiftfields"
	"fjacquet/swift-csv/internal/textutils"
)

var hashNoiseRE = regexp.MustCompile(`(?s)#.*?#`)

// Guard runs extract and turns a panic into a record carrying only the
// failure text, so that one broken message never aborts a document.
func (b *BaseParser) Guard(mt models.MessageType, source string, extract func() *models.ExtractedRecord) (rec *models.ExtractedRecord) {
	defer func() {
		if r := recover(); r != nil {
			err := &parsererror.ExtractionError{
				Source:      source,
				MessageType: mt.String(),
				Err:         fmt.Errorf("panic: %v", r),
			}
			b.logger.WithError(err).Error("Message extraction failed",
				logging.Field{Key: logging.FieldSource, Value: source},
				logging.Field{Key: logging.FieldMessageType, Value: mt.String()})
			rec = models.NewErrorRecord(mt, source, err)
		}
	}()

	rec = extract()
	if rec == nil {
		rec = models.NewRecord(mt, source)
	}
	return rec
}

// ApplyValueFields fills value date, currency and amount from the F32A block,
// or from the whole text when the block is absent.
func ApplyValueFields(rec *models.ExtractedRecord, text string) {
	block, ok := textutils.GetFieldBlock(text, "F32A")
	if !ok {
		block = text
	}
	block = hashNoiseRE.ReplaceAllString(block, "")

	if d, ok := dateutils.SelectDate(block); ok {
		rec.ValueDate = models.OptionalString(dateutils.ToISODate(d))
	}
	if cur, ok := currencyutils.SelectCurrency(block); ok {
		rec.Currency = models.OptionalString(cur)
	}
	if amount, ok := currencyutils.SelectAmount(block); ok {
		rec.Amount = &amount
	}
}

// ApplyHeaderBICs fills receiver, sender and bank code from the message header.
func ApplyHeaderBICs(rec *models.ExtractedRecord, text string) {
	if bic, ok := swiftfields.ExtractReceiverBIC(text); ok {
		rec.ReceiverBIC = models.OptionalString(bic)
		rec.BankCode = models.OptionalString(bic)
	}
	if bic, ok := swiftfields.ExtractSenderBIC(text); ok {
		rec.SenderBIC = models.OptionalString(bic)
	}
}

// ApplyDonor resolves code through the lookup and stores payer code and name.
// The bank code defaults to the donor code when the header gave none.
func (b *BaseParser) ApplyDonor(rec *models.ExtractedRecord, code string) {
	donor := b.ResolveDonor(code)
	if donor == "" {
		return
	}
	payerCode, payerName := swiftfields.SplitDonor(donor)
	rec.Donor = donor
	rec.PayerCode = models.OptionalString(payerCode)
	rec.PayerName = models.OptionalString(payerName)
	if rec.BankCode == nil {
		rec.BankCode = models.OptionalString(payerCode)
	}
}

// ResolveBeneficiaryBIC finds the BIC of an institution field and renders its
// bank name, or the bare code when the lookup does not know it.
func (b *BaseParser) ResolveBeneficiaryBIC(text, tag string) (string, bool) {
	block, ok := textutils.GetFieldBlock(text, tag)
	if !ok {
		return "", false
	}
	bic, ok := swiftfields.FindBIC(block)
	if !ok {
		return "", false
	}
	if name, ok := b.lookup.MapCodeToName(bic); ok && strings.TrimSpace(name) != "" {
		return strings.TrimSpace(name), true
	}
	return bic, true
}
