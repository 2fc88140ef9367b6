package classify

import "github.com/jonreiter/govader"

// Vader scores text with the VADER valence lexicon. Score returns the
// compound polarity in [-1, 1].
type Vader struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVader loads the bundled lexicon
func NewVader() *Vader {
	return &Vader{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (v *Vader) Score(text string) float64 {
	return v.analyzer.PolarityScores(text).Compound
}
