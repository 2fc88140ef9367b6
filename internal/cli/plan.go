package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/adscout/internal/planner"
)

var planJSON bool

// planCmd represents the plan command
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Rank tasks by impact and effort",
	Long: `Plan asks for a list of tasks, then rates each one for impact and effort
on a 1-10 scale. Priority is 2 x impact - effort:

  >= 15  CRITICAL
  >= 10  HIGH
  >=  5  MEDIUM
  else   LOW

Example:
  adscout plan
  adscout plan --json > tasks.json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tasks, err := planner.Interview(os.Stdin, os.Stderr)
		if err != nil {
			return fmt.Errorf("plan: %w", err)
		}
		ranked := planner.Prioritize(tasks)

		if planJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(ranked)
		}
		fmt.Println()
		fmt.Print(planner.Render(ranked))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.Flags().BoolVar(&planJSON, "json", false, "print the ranked tasks as JSON")
}
