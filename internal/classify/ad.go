// Package classify decides whether a post is an advertisement and whether a
// comment is positive. Keyword lists come from configuration.
package classify

import (
	"strings"

	"github.com/ppiankov/adscout/internal/model"
)

// AdClassifier flags posts as advertisements
type AdClassifier struct {
	keywords []string
}

// NewAdClassifier creates a classifier over the given caption keywords
func NewAdClassifier(keywords []string) *AdClassifier {
	return &AdClassifier{keywords: lowerAll(keywords)}
}

// Classify returns IsAd when the caption holds any ad keyword or either
// structural marker is present. An unreadable caption is never an ad.
func (c *AdClassifier) Classify(sig model.PostSignals) model.AdResult {
	if sig.CaptionErr != nil {
		return model.AdResult{CaptionFailed: true}
	}

	result := model.AdResult{
		Keyword:         firstMatch(strings.ToLower(sig.Caption), c.keywords),
		PaidPartnership: sig.PaidPartnership,
		CallToAction:    sig.CallToAction,
	}
	result.IsAd = result.Keyword != "" || result.PaidPartnership || result.CallToAction
	return result
}

// firstMatch returns the first keyword contained in lower, or ""
func firstMatch(lower string, keywords []string) string {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(lower, kw) {
			return kw
		}
	}
	return ""
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, strings.ToLower(s))
	}
	return out
}
