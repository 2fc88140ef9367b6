package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ppiankov/adscout/internal/model"
)

// Summarizer produces the markdown digest of a run
type Summarizer struct {
	provider Provider
}

// NewSummarizer creates a summarizer over an OpenAI-compatible provider
func NewSummarizer(config Config) (*Summarizer, error) {
	p, err := NewOpenAIProvider(config)
	if err != nil {
		return nil, err
	}
	return &Summarizer{provider: p}, nil
}

// NewSummarizerWithProvider wraps an existing provider
func NewSummarizerWithProvider(p Provider) *Summarizer {
	return &Summarizer{provider: p}
}

// Generate returns the digest document for a run
func (s *Summarizer) Generate(ctx context.Context, niche string, stats model.RunStats, records []model.ProfileRecord) (string, error) {
	if len(records) == 0 {
		return "", fmt.Errorf("no leads to summarize")
	}

	resp, err := s.provider.Digest(ctx, DigestRequest{
		Niche:       niche,
		Stats:       stats,
		Records:     records,
		AllowedURLs: AllowedURLs(records),
	})
	if err != nil {
		return "", fmt.Errorf("%s digest: %w", s.provider.Name(), err)
	}

	return RenderMarkdown(niche, resp, time.Now()), nil
}

// RenderMarkdown formats a digest document
func RenderMarkdown(niche string, resp *DigestResponse, at time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Lead digest: %s\n\n", niche)
	fmt.Fprintf(&b, "_Generated %s by %s (%d tokens)_\n\n", at.Format("2006-01-02 15:04"), resp.Model, resp.TokensUsed)
	b.WriteString(resp.Text)
	b.WriteString("\n")
	return b.String()
}
