package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ppiankov/adscout/internal/model"
)

type fixedScorer struct {
	score float64
	calls int
}

func (s *fixedScorer) Score(string) float64 {
	s.calls++
	return s.score
}

func newTestPositivity(score float64) (*PositivityClassifier, *fixedScorer) {
	scorer := &fixedScorer{score: score}
	return NewPositivityClassifier(model.DefaultConfig().Classifier, scorer), scorer
}

func TestPositivity_ShortAndMentionSkipped(t *testing.T) {
	c, scorer := newTestPositivity(0.9)

	for _, text := range []string{"", "ok", "  hi  ", "@maria love it", "@joao"} {
		got := c.Classify(text)
		assert.False(t, got.Candidate, text)
		assert.False(t, got.Positive, text)
	}
	assert.Zero(t, scorer.calls)
}

func TestPositivity_ThresholdIsExclusive(t *testing.T) {
	c, _ := newTestPositivity(0.3)
	assert.False(t, c.Classify("this is fine").Positive)

	c, _ = newTestPositivity(0.31)
	got := c.Classify("this is fine")
	assert.True(t, got.Positive)
	assert.Equal(t, 0.31, got.Score)
	assert.Empty(t, got.Keyword)
}

func TestPositivity_KeywordOverridesNegativeScore(t *testing.T) {
	c, scorer := newTestPositivity(-0.8)

	got := c.Classify("Amei, mas demorou muito")
	assert.True(t, got.Candidate)
	assert.True(t, got.Positive)
	assert.Equal(t, "amei", got.Keyword)
	assert.Equal(t, 1, scorer.calls)
}

func TestPositivity_NeutralComment(t *testing.T) {
	c, _ := newTestPositivity(0.0)

	got := c.Classify("where did you buy it")
	assert.True(t, got.Candidate)
	assert.False(t, got.Positive)
}
