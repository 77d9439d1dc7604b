package inspect_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/swift-csv/cmd/inspect"
	"fjacquet/swift-csv/cmd/root"
	"fjacquet/swift-csv/internal/config"
	"fjacquet/swift-csv/internal/container"
	"fjacquet/swift-csv/internal/extractor"
	"fjacquet/swift-csv/internal/logging"
	"fjacquet/swift-csv/internal/models"
	"fjacquet/swift-csv/internal/pdfparser"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const document = `Identifier: fin.202
F20: Transaction Reference Number
REF202001
F32A: Value Date/Currency/Interbank Settled Amount
Date: 250115
Currency: Devise: USD
Amount: Montant: 1.500,00
F52A: Ordering Institution
IdentifierCode: Code d'identifiant: AFRICMCX100
Identifier: fin.555
F20: Statement
STMT0001`

func setup(t *testing.T, flags root.CommonFlags) *bytes.Buffer {
	t.Helper()
	cfg := &config.Config{}
	cfg.BIC.File = filepath.Join(t.TempDir(), "missing.xlsx")
	c, err := container.NewContainer(cfg,
		container.WithLogger(logging.NewMockLogger()),
		container.WithPDFExtractor(pdfparser.NewMockPDFExtractor(document, nil)))
	require.NoError(t, err)

	origFlags, origContainer := root.SharedFlags, root.GetContainer()
	var out bytes.Buffer
	inspect.Cmd.SetOut(&out)
	t.Cleanup(func() {
		root.SharedFlags = origFlags
		root.SetContainer(origContainer)
		inspect.Cmd.SetOut(nil)
	})
	root.SharedFlags = flags
	root.SetContainer(c)
	return &out
}

func TestInspectCommand_Metadata(t *testing.T) {
	assert.Equal(t, "inspect", inspect.Cmd.Use)
	assert.NotNil(t, inspect.Cmd.Flags().Lookup("text"))
	assert.Contains(t, inspect.Cmd.Long, "Example")
}

func TestInspectCommand_Run(t *testing.T) {
	input := filepath.Join(t.TempDir(), "messages.pdf")
	require.NoError(t, os.WriteFile(input, []byte("%PDF-1.4\n"), 0600))
	out := setup(t, root.CommonFlags{Input: input})

	require.NoError(t, inspect.Cmd.RunE(inspect.Cmd, nil))

	text := out.String()
	assert.Contains(t, text, "messages.pdf: 2 block(s), split by identifier-header")
	assert.Contains(t, text, "[1] fin.202  extracted  message 1 of file messages.pdf")
	assert.Contains(t, text, "[2] fin.555  dropped")
	assert.Contains(t, text, "REF202001")
	assert.Contains(t, text, "$1,500.00")
	assert.Contains(t, text, "more line(s)")
}

func TestInspectCommand_Errors(t *testing.T) {
	setup(t, root.CommonFlags{})
	err := inspect.Cmd.RunE(inspect.Cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "input file must be specified")

	notPDF := filepath.Join(t.TempDir(), "notes.pdf")
	require.NoError(t, os.WriteFile(notPDF, []byte("plain"), 0600))
	setup(t, root.CommonFlags{Input: notPDF})
	err = inspect.Cmd.RunE(inspect.Cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}

func TestPrint(t *testing.T) {
	amount := decimal.RequireFromString("12.5")
	in := &extractor.Inspection{
		Source:   "x.pdf",
		Strategy: "whole-text",
		Blocks: []extractor.BlockReport{
			{Index: 1, Label: "x.pdf", Status: extractor.StatusDropped, Text: "no type here"},
			{
				Index: 2, Label: "x.pdf", Type: "910", Status: extractor.StatusRejected, Reason: "blocked",
				Record: &models.ExtractedRecord{Amount: &amount, Currency: models.OptionalString("USD")},
				Text:   "a\nb\nc\nd\ne",
			},
			{
				Index: 3, Label: "x.pdf", Type: "103", Status: extractor.StatusFailed,
				Record: &models.ExtractedRecord{Error: models.OptionalString("boom")},
			},
		},
	}

	var full, short bytes.Buffer
	require.NoError(t, inspect.Print(&full, in, true))
	require.NoError(t, inspect.Print(&short, in, false))

	assert.Contains(t, short.String(), "[1] undetected  dropped")
	assert.Contains(t, short.String(), "(blocked)")
	assert.Contains(t, short.String(), "$12.50")
	assert.Contains(t, short.String(), "error: boom")
	assert.Contains(t, short.String(), "... 2 more line(s)")
	assert.NotContains(t, full.String(), "more line(s)")
	assert.True(t, strings.Contains(full.String(), "    | e"))
}
