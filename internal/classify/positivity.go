package classify

import (
	"strings"
	"unicode/utf8"

	"github.com/ppiankov/adscout/internal/model"
)

// Scorer computes a compound sentiment score in [-1, 1]
type Scorer interface {
	Score(text string) float64
}

// PositivityClassifier decides whether a comment is positive
type PositivityClassifier struct {
	scorer        Scorer
	keywords      []string
	threshold     float64
	minLength     int
	mentionPrefix string
}

// NewPositivityClassifier creates a classifier from configuration
func NewPositivityClassifier(cfg model.ClassifierConfig, scorer Scorer) *PositivityClassifier {
	return &PositivityClassifier{
		scorer:        scorer,
		keywords:      lowerAll(cfg.PositiveKeywords),
		threshold:     cfg.PositiveThreshold,
		minLength:     cfg.MinCommentLength,
		mentionPrefix: cfg.MentionPrefix,
	}
}

// Candidate reports whether a comment enters positivity evaluation at all.
// Very short comments and comments opening with a mention are discarded.
func (c *PositivityClassifier) Candidate(text string) bool {
	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) < c.minLength {
		return false
	}
	if c.mentionPrefix != "" && strings.HasPrefix(trimmed, c.mentionPrefix) {
		return false
	}
	return true
}

// Classify scores a comment. Either signal alone is enough: the score
// above the threshold, or any positive keyword.
func (c *PositivityClassifier) Classify(text string) model.PositivityResult {
	if !c.Candidate(text) {
		return model.PositivityResult{}
	}

	score := c.scorer.Score(text)
	keyword := firstMatch(strings.ToLower(text), c.keywords)

	return model.PositivityResult{
		Candidate: true,
		Positive:  score > c.threshold || keyword != "",
		Score:     score,
		Keyword:   keyword,
	}
}
