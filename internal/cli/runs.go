package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ppiankov/adscout/internal/store"
)

var (
	runsLimit int
	runsKnown bool
)

// runsCmd represents the runs command
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded scrape runs",
	Long: `Runs lists the run history kept in the SQLite database given with --db
(or store.path in the config), newest first.

Example:
  adscout runs --db ~/.adscout/runs.db --limit 5`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("db") {
			cfg.Store.Path = dbPath
		}
		if cfg.Store.Path == "" {
			return fmt.Errorf("no run history configured: pass --db or set store.path")
		}

		ctx := context.Background()
		db, err := store.Open(ctx, cfg.Store.Path)
		if err != nil {
			return err
		}
		defer db.Close()

		if runsKnown {
			seen, err := db.SeenUsernames(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("%d distinct leads across all runs\n", len(seen))
			return nil
		}

		runs, err := db.ListRuns(ctx, runsLimit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Fprintln(os.Stderr, "No runs recorded.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "STARTED\tSTATUS\tNICHE\tADS\tPROFILES\tCSV")
		for _, r := range runs {
			label := r.Niche
			if r.Hashtag != "" {
				label = "#" + r.Hashtag
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
				r.StartedAt.Local().Format("2006-01-02 15:04"), r.Status, label, r.Stats.Ads, r.Stats.Profiles, r.CSVPath)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.Flags().StringVar(&dbPath, "db", "", "SQLite run history path")
	runsCmd.Flags().IntVar(&runsLimit, "limit", 20, "maximum runs to list")
	runsCmd.Flags().BoolVar(&runsKnown, "known", false, "count distinct leads across all runs instead of listing runs")
}
