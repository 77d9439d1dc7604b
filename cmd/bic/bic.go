// Package bic provides commands to query the BIC mapping spreadsheet
package bic

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"fjacquet/swift-csv/cmd/root"
	"fjacquet/swift-csv/internal/bicmap"

	"github.com/spf13/cobra"
)

var limit int

// Cmd represents the bic command
var Cmd = &cobra.Command{
	Use:   "bic",
	Short: "Query the BIC mapping",
	Long: `Query the BIC spreadsheet used to resolve ordering institution codes.

Example:
  swift-csv bic lookup AFRICMCX100 BEACCMCX
  swift-csv bic find "afriland first"`,
}

// LookupCmd resolves codes to bank names and countries.
var LookupCmd = &cobra.Command{
	Use:   "lookup CODE...",
	Short: "Show the bank name and country of BIC codes",
	Args:  cobra.MinimumNArgs(1),
	RunE:  lookupFunc,
}

// FindCmd searches bank names.
var FindCmd = &cobra.Command{
	Use:   "find QUERY",
	Short: "Fuzzy search bank names",
	Args:  cobra.MinimumNArgs(1),
	RunE:  findFunc,
}

func init() {
	FindCmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum number of matches (0 for all)")
	Cmd.AddCommand(LookupCmd)
	Cmd.AddCommand(FindCmd)
}

func mapping() (*bicmap.Mapping, error) {
	c, err := root.RequireContainer()
	if err != nil {
		return nil, err
	}
	return c.GetResolver().Resolve("")
}

func lookupFunc(cmd *cobra.Command, args []string) error {
	m, err := mapping()
	if err != nil {
		return err
	}
	return Lookup(cmd.OutOrStdout(), m, args)
}

func findFunc(cmd *cobra.Command, args []string) error {
	m, err := mapping()
	if err != nil {
		return err
	}
	return Find(cmd.OutOrStdout(), m, strings.Join(args, " "), limit)
}

// Lookup prints one line per code. Unknown values are shown as "-".
func Lookup(w io.Writer, m *bicmap.Mapping, codes []string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "CODE\tNAME\tCOUNTRY")
	for _, code := range codes {
		name, ok := m.MapCodeToName(code)
		if !ok {
			name = "-"
		}
		country, ok := m.MapCodeToCountry(code)
		if !ok {
			country = "-"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", strings.ToUpper(code), name, country)
	}
	return tw.Flush()
}

// Find prints the bank names matching query, closest first.
func Find(w io.Writer, m *bicmap.Mapping, query string, limit int) error {
	matches := m.Find(query, limit)
	if len(matches) == 0 {
		_, err := fmt.Fprintf(w, "No bank matches %q\n", query)
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "CODE\tNAME\tCOUNTRY\tDISTANCE")
	for _, match := range matches {
		country := match.Country
		if country == "" {
			country = "-"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%d\n", match.Code, match.Name, country, match.Distance)
	}
	return tw.Flush()
}
