// Package inspect prints how a PDF is split and classified, as a debugging aid
package inspect

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"fjacquet/swift-csv/cmd/root"
	"fjacquet/swift-csv/internal/currencyutils"
	"fjacquet/swift-csv/internal/extractor"
	"fjacquet/swift-csv/internal/models"
	"fjacquet/swift-csv/internal/validation"

	"github.com/spf13/cobra"
)

const previewLines = 3

var showText bool

// Cmd represents the inspect command
var Cmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show the message blocks found in a PDF",
	Long: `Show how a PDF export is split into message blocks, the type detected for
each block and what extraction made of it.

Example:
  swift-csv inspect -i messages.pdf
  swift-csv inspect -i messages.pdf --text`,
	RunE: inspectFunc,
}

func init() {
	Cmd.Flags().BoolVar(&showText, "text", false, "Print the full text of every block")
}

func inspectFunc(cmd *cobra.Command, args []string) error {
	c, err := root.RequireContainer()
	if err != nil {
		return err
	}
	input := root.SharedFlags.Input
	if err := validation.InputFile(input); err != nil {
		return err
	}
	text, err := c.GetExtractor().ReadText(input)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", input, err)
	}
	return Print(cmd.OutOrStdout(), c.GetExtractor().Inspect(text, filepath.Base(input)), showText)
}

// Print writes a human readable report of in.
func Print(w io.Writer, in *extractor.Inspection, full bool) error {
	if _, err := fmt.Fprintf(w, "%s: %d block(s), split by %s\n", in.Source, len(in.Blocks), in.Strategy); err != nil {
		return err
	}
	for _, b := range in.Blocks {
		typ := "undetected"
		if b.Type != "" {
			typ = "fin." + b.Type
		}
		line := fmt.Sprintf("\n[%d] %s  %s  %s", b.Index, typ, b.Status, b.Label)
		if b.Reason != "" {
			line += "  (" + b.Reason + ")"
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
		if b.Record != nil {
			if _, err := fmt.Fprint(w, describe(b.Record)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprint(w, indent(preview(b.Text, full))); err != nil {
			return err
		}
	}
	return nil
}

func describe(rec *models.ExtractedRecord) string {
	if rec.HasError() {
		return "    error: " + models.StringValue(rec.Error) + "\n"
	}
	var sb strings.Builder
	field := func(name, value string) {
		if value != "" {
			fmt.Fprintf(&sb, "    %-12s %s\n", name+":", value)
		}
	}
	field("reference", models.StringValue(rec.Reference))
	field("value date", models.StringValue(rec.ValueDate))
	if rec.Amount != nil {
		field("amount", currencyutils.Display(*rec.Amount, models.StringValue(rec.Currency)))
	}
	field("payer", rec.Donor)
	field("beneficiary", models.StringValue(rec.Beneficiary))
	field("country", models.StringValue(rec.CountryISO3))
	return sb.String()
}

func preview(text string, full bool) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if full || len(lines) <= previewLines {
		return strings.Join(lines, "\n")
	}
	return strings.Join(lines[:previewLines], "\n") + fmt.Sprintf("\n... %d more line(s)", len(lines)-previewLines)
}

func indent(text string) string {
	if text == "" {
		return ""
	}
	return "    | " + strings.ReplaceAll(text, "\n", "\n    | ") + "\n"
}
