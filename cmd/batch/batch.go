// Package batch handles batch processing of files
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/swift-csv/cmd/common"
	"fjacquet/swift-csv/cmd/root"
	"fjacquet/swift-csv/internal/batch"
	intcommon "fjacquet/swift-csv/internal/common"
	"fjacquet/swift-csv/internal/container"
	"fjacquet/swift-csv/internal/logging"
	"fjacquet/swift-csv/internal/models"
	"fjacquet/swift-csv/internal/validation"

	"github.com/spf13/cobra"
)

// RecordsBaseName names the combined records file written in the output directory.
const RecordsBaseName = "records"

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Batch process PDF files from a directory",
	Long: `Batch process every PDF in an input directory and write the combined
records, plus a summary.yaml manifest, to an output directory.

Documents are extracted in parallel (batch.workers). A document that cannot be
read is reported in the manifest and does not stop the others.

Example:
  swift-csv batch -i input_dir/ -o output_dir/`,
	RunE: batchFunc,
}

func init() {
	// Override the usage text for the input/output flags in batch context
	Cmd.SetUsageTemplate(`Usage:{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasExample}}

Examples:
{{.Example}}{{end}}{{if .HasAvailableLocalFlags}}

Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

Global Flags (for batch, -i/-o refer to directories):
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}
`)
}

func batchFunc(cmd *cobra.Command, args []string) error {
	c, err := root.RequireContainer()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	result, err := Run(ctx, c, root.SharedFlags.Input, root.SharedFlags.Output)
	if err != nil {
		return err
	}
	c.GetLogger().Info(fmt.Sprintf("Batch processing completed. %d records from %d documents.",
		len(result.Records), len(result.Files)))
	return nil
}

// Run extracts every PDF of inputDir and writes the combined records and the
// manifest into outputDir. It fails only when no document could be read.
func Run(ctx context.Context, c *container.Container, inputDir, outputDir string) (*batch.Result, error) {
	logger := c.GetLogger()
	if err := validation.InputDir(inputDir); err != nil {
		return nil, err
	}
	if err := validation.OutputDir(outputDir); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(outputDir, models.PermissionDirectory); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	files, err := batch.FindPDFs(inputDir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		logger.Warn("No PDF files found",
			logging.Field{Key: logging.FieldFile, Value: inputDir})
	}

	result, err := c.GetRunner().Run(ctx, files)
	if err != nil {
		return nil, err
	}
	common.LogMissing(logger, result.Missing)

	recordsFile := filepath.Join(outputDir, intcommon.OutputFileName(RecordsBaseName, c.Format()))
	if err := c.GetWriter().WriteFile(recordsFile, result.Records, c.Format()); err != nil {
		return nil, fmt.Errorf("error writing records: %w", err)
	}
	summaryFile := filepath.Join(outputDir, batch.SummaryFileName)
	if err := result.WriteSummary(summaryFile, filepath.Base(recordsFile)); err != nil {
		return nil, fmt.Errorf("error writing summary: %w", err)
	}
	logger.Info("Wrote batch summary",
		logging.Field{Key: logging.FieldFile, Value: summaryFile},
		logging.Field{Key: logging.FieldRunID, Value: result.RunID})

	if len(files) > 0 && result.Failed() == len(files) {
		return result, fmt.Errorf("all %d documents failed", len(files))
	}
	return result, nil
}
