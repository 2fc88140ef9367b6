package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/adscout/internal/output"
)

var exportEmailOnly bool

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export <records.json>",
	Short: "Print saved records as CSV",
	Long: `Export loads a JSON file written by scrape and prints the same rows as
CSV on stdout, optionally only the leads with an email address.

Example:
  adscout export instagram_data/moda/positive_profiles_20250101_120000.json
  adscout export leads.json --with-email > contacts.csv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := output.LoadJSON(args[0])
		if err != nil {
			return err
		}

		if exportEmailOnly {
			kept := records[:0]
			for _, r := range records {
				if r.Email != "" {
					kept = append(kept, r)
				}
			}
			records = kept
		}

		if err := output.WriteCSV(os.Stdout, records); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
		fmt.Fprintf(os.Stderr, "✓ Exported %d records\n", len(records))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().BoolVar(&exportEmailOnly, "with-email", false, "only leads with an email address")
}
