package validation_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/swift-csv/internal/parsererror"
	"fjacquet/swift-csv/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputFile(t *testing.T) {
	tmpDir := t.TempDir()
	pdf := filepath.Join(tmpDir, "messages.PDF")
	require.NoError(t, os.WriteFile(pdf, []byte("%PDF-1.4"), 0600))
	txt := filepath.Join(tmpDir, "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("x"), 0600))
	dirPDF := filepath.Join(tmpDir, "folder.pdf")
	require.NoError(t, os.Mkdir(dirPDF, 0750))

	tests := []struct {
		name        string
		path        string
		errContains string
	}{
		{name: "pdf file", path: pdf},
		{name: "empty path", path: "", errContains: "input file must be specified"},
		{name: "missing file", path: filepath.Join(tmpDir, "absent.pdf"), errContains: "file does not exist"},
		{name: "not a pdf", path: txt, errContains: "not a PDF file"},
		{name: "directory", path: dirPDF, errContains: "not a regular file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.InputFile(tt.path)
			if tt.errContains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
			var verr *parsererror.ValidationError
			assert.True(t, errors.As(err, &verr))
		})
	}
}

func TestInputDir(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "a.pdf")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0600))

	assert.NoError(t, validation.InputDir(tmpDir))
	assert.ErrorContains(t, validation.InputDir(""), "input directory must be specified")
	assert.ErrorContains(t, validation.InputDir(filepath.Join(tmpDir, "absent")), "directory does not exist")
	assert.ErrorContains(t, validation.InputDir(file), "not a directory")
}

func TestOutputDir(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "records.csv")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0600))

	assert.NoError(t, validation.OutputDir(tmpDir))
	assert.NoError(t, validation.OutputDir(filepath.Join(tmpDir, "new")))
	assert.ErrorContains(t, validation.OutputDir(""), "output directory must be specified")
	assert.ErrorContains(t, validation.OutputDir(file), "exists and is not a directory")
}
