package batch_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/swift-csv/cmd/batch"
	"fjacquet/swift-csv/cmd/root"
	"fjacquet/swift-csv/internal/config"
	"fjacquet/swift-csv/internal/container"
	"fjacquet/swift-csv/internal/logging"
	"fjacquet/swift-csv/internal/pdfparser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const message910 = `Identifier: fin.910
Sender Institution: BEACCMCXXXX
Receiver Institution: AFRICMCX100
Block 4
:20:CONF910001
:21:REL12345
:25:/CM21000123/
:32A:250120XAF2500000,
F52A: Ordering Institution
IdentifierCode: Code d'identifiant: AFRICMCX100`

func newContainer(t *testing.T, format string) *container.Container {
	t.Helper()
	cfg := &config.Config{}
	cfg.Output.Format = format
	cfg.BIC.File = filepath.Join(t.TempDir(), "missing.xlsx")
	cfg.Batch.Workers = 2
	c, err := container.NewContainer(cfg,
		container.WithLogger(logging.NewMockLogger()),
		container.WithPDFExtractor(pdfparser.NewMockPDFExtractor(message910, nil)))
	require.NoError(t, err)
	return c
}

func TestBatchCommand_CommandMetadata(t *testing.T) {
	assert.Equal(t, "batch", batch.Cmd.Use)
	assert.Contains(t, batch.Cmd.Short, "Batch process")
	assert.NotNil(t, batch.Cmd.RunE)
}

func TestBatchCommand_LongDescription(t *testing.T) {
	assert.Contains(t, batch.Cmd.Long, "input directory")
	assert.Contains(t, batch.Cmd.Long, "summary.yaml")
	assert.Contains(t, batch.Cmd.Long, "Example")
}

func TestRun_WritesRecordsAndSummary(t *testing.T) {
	c := newContainer(t, "csv")
	in, out := t.TempDir(), filepath.Join(t.TempDir(), "out")
	require.NoError(t, os.WriteFile(filepath.Join(in, "a.pdf"), []byte("%PDF-1.4\n"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(in, "b.PDF"), []byte("%PDF-1.4\n"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(in, "broken.pdf"), []byte("not a pdf"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(in, "notes.txt"), []byte("ignored"), 0600))

	result, err := batch.Run(context.Background(), c, in, out)

	require.NoError(t, err)
	assert.Len(t, result.Files, 3)
	assert.Equal(t, 1, result.Failed())
	assert.Len(t, result.Records, 2)

	data, err := os.ReadFile(filepath.Join(out, "records.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 3)

	raw, err := os.ReadFile(filepath.Join(out, "summary.yaml"))
	require.NoError(t, err)
	var summary map[string]interface{}
	require.NoError(t, yaml.Unmarshal(raw, &summary))
	assert.Equal(t, result.RunID, summary["run_id"])
	assert.Equal(t, "records.csv", summary["output"])
	assert.Equal(t, 3, summary["documents"])
	assert.Equal(t, 1, summary["failed"])
	assert.Equal(t, 2, summary["records"])

	totals, ok := summary["totals"].([]interface{})
	require.True(t, ok)
	require.Len(t, totals, 1)
	xaf := totals[0].(map[string]interface{})
	assert.Equal(t, "XAF", xaf["currency"])
	assert.Equal(t, "5000000", xaf["amount"])
	assert.Equal(t, 2, xaf["messages"])
}

func TestRun_JSONOutputName(t *testing.T) {
	c := newContainer(t, "json")
	in, out := t.TempDir(), t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(in, "a.pdf"), []byte("%PDF-1.4\n"), 0600))

	_, err := batch.Run(context.Background(), c, in, out)

	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(out, "records.json"))
	assert.FileExists(t, filepath.Join(out, "summary.yaml"))
}

func TestRun_Errors(t *testing.T) {
	c := newContainer(t, "csv")

	_, err := batch.Run(context.Background(), c, "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be specified")

	_, err = batch.Run(context.Background(), c, filepath.Join(t.TempDir(), "absent"), t.TempDir())
	require.Error(t, err)

	in := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(in, "broken.pdf"), []byte("nope"), 0600))
	result, err := batch.Run(context.Background(), c, in, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all 1 documents failed")
	require.NotNil(t, result)
}

func TestRun_EmptyDirectory(t *testing.T) {
	c := newContainer(t, "csv")
	out := t.TempDir()

	result, err := batch.Run(context.Background(), c, t.TempDir(), out)

	require.NoError(t, err)
	assert.Empty(t, result.Records)
	assert.FileExists(t, filepath.Join(out, "summary.yaml"))
}

func TestBatchCommand_UsesSharedFlags(t *testing.T) {
	c := newContainer(t, "csv")
	in, out := t.TempDir(), t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(in, "a.pdf"), []byte("%PDF-1.4\n"), 0600))

	origFlags, origContainer := root.SharedFlags, root.GetContainer()
	t.Cleanup(func() {
		root.SharedFlags = origFlags
		root.SetContainer(origContainer)
	})
	root.SharedFlags = root.CommonFlags{Input: in, Output: out}
	root.SetContainer(c)

	require.NoError(t, batch.Cmd.RunE(batch.Cmd, nil))
	assert.FileExists(t, filepath.Join(out, "records.csv"))
}
