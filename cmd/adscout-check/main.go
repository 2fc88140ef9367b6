// Command adscout-check runs the ad and comment classifiers over sample
// text, for tuning keyword lists and the positivity threshold without a
// browser.
//
// Lines starting with "caption:" are classified as post captions, every
// other line as a comment.
//
//	adscout-check < samples.txt
//	echo "Amei esse produto!" | adscout-check
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/adscout/internal/classify"
	"github.com/ppiankov/adscout/internal/model"
)

func main() {
	cfg := model.DefaultConfig().Classifier
	ads := classify.NewAdClassifier(cfg.AdKeywords)
	positivity := classify.NewPositivityClassifier(cfg, classify.NewVader())

	in := bufio.NewScanner(os.Stdin)
	for in.Scan() {
		line := strings.TrimSpace(in.Text())
		if line == "" {
			continue
		}

		if caption, ok := strings.CutPrefix(line, "caption:"); ok {
			res := ads.Classify(model.PostSignals{Caption: strings.TrimSpace(caption)})
			if res.IsAd {
				fmt.Printf("  ✓ AD       %-10q %s\n", res.Keyword, caption)
			} else {
				fmt.Printf("  - not ad   %-10s %s\n", "", caption)
			}
			continue
		}

		res := positivity.Classify(line)
		switch {
		case !res.Candidate:
			fmt.Printf("  - skipped            %s\n", line)
		case res.Positive:
			fmt.Printf("  ✓ POSITIVE %+.3f %-6s %s\n", res.Score, res.Keyword, line)
		default:
			fmt.Printf("  ✗ negative %+.3f        %s\n", res.Score, line)
		}
	}
	if err := in.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "read input: %v\n", err)
		os.Exit(1)
	}
}
