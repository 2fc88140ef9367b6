package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/ppiankov/adscout/internal/model"
)

// PrintSummary writes the end-of-run report
func PrintSummary(w io.Writer, run *Run) {
	s := run.Stats
	mark := "✓"
	if run.Status != model.RunCompleted {
		mark = "✗"
	}

	fmt.Fprintf(w, "\n%s Run %s %s in %s\n", mark, run.ID, run.Status, run.FinishedAt.Sub(run.StartedAt).Round(time.Second))
	if run.Hashtag != "" {
		fmt.Fprintf(w, "  Hashtag:        #%s\n", run.Hashtag)
	} else {
		fmt.Fprintf(w, "  Niche:          %s\n", run.Niche)
		fmt.Fprintf(w, "  Accounts:       %d (%d skipped, not business)\n", s.Accounts, s.SkippedAccounts)
	}
	fmt.Fprintf(w, "  Posts:          %d inspected, %d ads", s.Posts, s.Ads)
	if s.CaptionFailures > 0 {
		fmt.Fprintf(w, ", %d unreadable captions", s.CaptionFailures)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Comments:       %d read, %d candidates, %d positive\n", s.Comments, s.Candidates, s.Positives)
	fmt.Fprintf(w, "  Profiles:       %d", s.Profiles)
	if s.LookupFailures > 0 {
		fmt.Fprintf(w, " (%d with minimal data)", s.LookupFailures)
	}
	fmt.Fprintln(w)
	if s.Degraded > 0 {
		fmt.Fprintf(w, "  Degraded steps: %d (see log)\n", s.Degraded)
	}
	if run.Paths.CSV != "" {
		fmt.Fprintf(w, "  CSV:            %s\n", run.Paths.CSV)
		fmt.Fprintf(w, "  JSON:           %s\n", run.Paths.JSON)
	}
}
