package bic_test

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/swift-csv/cmd/bic"
	"fjacquet/swift-csv/cmd/root"
	"fjacquet/swift-csv/internal/bicmap"
	"fjacquet/swift-csv/internal/config"
	"fjacquet/swift-csv/internal/container"
	"fjacquet/swift-csv/internal/logging"
	"fjacquet/swift-csv/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeBICFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), bicmap.FileNamePrimary)
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	rows := [][]interface{}{
		{"BIC", "Name", "Country"},
		{"BEACCMCX", "Banque des Etats de l'Afrique Centrale", "CMR"},
		{"CCEICMCX", "Afriland First Bank", "CMR"},
		{"BGFIGQGQ", "BGFI Bank Guinee Equatoriale", "GNQ"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}
	require.NoError(t, f.SaveAs(path))
	return path
}

func install(t *testing.T, bicFile string) {
	t.Helper()
	cfg := &config.Config{}
	cfg.BIC.File = bicFile
	c, err := container.NewContainer(cfg, container.WithLogger(logging.NewMockLogger()))
	require.NoError(t, err)

	orig := root.GetContainer()
	t.Cleanup(func() { root.SetContainer(orig) })
	root.SetContainer(c)
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	bic.Cmd.SetOut(&out)
	bic.Cmd.SetArgs(args)
	t.Cleanup(func() {
		bic.Cmd.SetOut(nil)
		bic.Cmd.SetArgs(nil)
	})
	_, err := bic.Cmd.ExecuteC()
	return out.String(), err
}

func TestBicCommand_Metadata(t *testing.T) {
	assert.Equal(t, "bic", bic.Cmd.Use)
	names := []string{}
	for _, sub := range bic.Cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"lookup", "find"}, names)
}

func TestLookupCommand(t *testing.T) {
	install(t, writeBICFile(t))

	out, err := run(t, "lookup", "cceicmcx100", "ZZZZZZZZ")

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "CCEICMCX100")
	assert.Contains(t, lines[1], "Afriland First Bank")
	assert.Contains(t, lines[1], "CMR")
	assert.Regexp(t, `^ZZZZZZZZ\s+-\s+-$`, lines[2])
}

func TestFindCommand(t *testing.T) {
	install(t, writeBICFile(t))

	out, err := run(t, "find", "--limit", "1", "afriland")

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "CCEICMCX")

	out, err = run(t, "find", "qqqqqq")
	require.NoError(t, err)
	assert.Contains(t, out, `No bank matches "qqqqqq"`)
}

func TestLookupCommand_MissingTable(t *testing.T) {
	install(t, filepath.Join(t.TempDir(), "absent.xlsx"))

	_, err := run(t, "lookup", "CCEICMCX")

	require.Error(t, err)
	var notFound *parsererror.MappingNotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestLookup_Writer(t *testing.T) {
	m, err := bicmap.LoadFile(writeBICFile(t))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, bic.Lookup(&buf, m, []string{"BGFIGQGQ"}))
	assert.Contains(t, buf.String(), "BGFI Bank Guinee Equatoriale")
	assert.Contains(t, buf.String(), "GNQ")
}
