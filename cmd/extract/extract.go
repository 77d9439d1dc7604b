// Package extract handles the single-document extraction command
package extract

import (
	"fjacquet/swift-csv/cmd/common"
	"fjacquet/swift-csv/cmd/root"
	"fjacquet/swift-csv/internal/logging"

	"github.com/spf13/cobra"
)

// Cmd represents the extract command
var Cmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract SWIFT messages from a PDF",
	Long: `Extract the MT202, MT202.COV, MT103 and MT910 messages of one PDF export
and write one record per message.

Example:
  swift-csv extract -i messages.pdf -o messages.csv
  swift-csv extract -i messages.pdf --format json --direction outgoing`,
	RunE: extractFunc,
}

func extractFunc(cmd *cobra.Command, args []string) error {
	c, err := root.RequireContainer()
	if err != nil {
		return err
	}
	result, err := common.ProcessFile(c, root.SharedFlags.Input, root.SharedFlags.Output)
	if err != nil {
		return err
	}
	c.GetLogger().Info("Extraction completed successfully!",
		logging.Field{Key: logging.FieldCount, Value: len(result.Records)})
	return nil
}
