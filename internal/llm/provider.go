// Package llm writes an optional lead digest with an OpenAI-compatible
// model. The digest never feeds back into classification.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/adscout/internal/model"
)

// maxPromptLeads caps how many leads are described in the prompt
const maxPromptLeads = 30

// Provider generates digests
type Provider interface {
	Name() string
	Digest(ctx context.Context, req DigestRequest) (*DigestResponse, error)
}

// DigestRequest is the input of one digest
type DigestRequest struct {
	Niche   string
	Stats   model.RunStats
	Records []model.ProfileRecord

	// AllowedURLs is the only set of URLs the digest may cite
	AllowedURLs []string

	Prompt    string // Overrides BuildPrompt when set
	Model     string
	MaxTokens int
}

// DigestResponse is the generated digest
type DigestResponse struct {
	Text       string
	CitedURLs  []string
	Model      string
	TokensUsed int
}

// Config holds provider settings
type Config struct {
	Model     string
	APIKey    string
	BaseURL   string // OpenAI-compatible endpoint; empty for api.openai.com
	Timeout   int    // seconds
	MaxTokens int
	Proxy     string
}

// ConfigFromModel converts model.LLMConfig, routing through proxy
func ConfigFromModel(c model.LLMConfig, proxy string) Config {
	return Config{
		Model:     c.Model,
		APIKey:    c.APIKey,
		BaseURL:   c.BaseURL,
		Timeout:   c.Timeout,
		MaxTokens: c.MaxTokens,
		Proxy:     proxy,
	}
}

// AllowedURLs returns the profile and post URLs of records
func AllowedURLs(records []model.ProfileRecord) []string {
	seen := make(map[string]bool)
	var urls []string
	add := func(u string) {
		if u != "" && !seen[u] {
			seen[u] = true
			urls = append(urls, u)
		}
	}
	for _, r := range records {
		add(r.ProfileURL)
		add(r.SourceComment.PostURL)
	}
	return urls
}

// BuildPrompt describes the run and its leads
func BuildPrompt(req DigestRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, `You are reviewing sales leads collected from Instagram for the niche %q.
Each lead left a positive comment on a sponsored post in that niche.

RULES:
1. Only cite URLs that appear in the lead list below.
2. Do not invent facts about a lead beyond the fields given.
3. Group leads by apparent type (business, creator, consumer) when the bio allows it.

Run statistics:
- Accounts inspected: %d
- Posts inspected: %d, ads among them: %d
- Comments read: %d, positive: %d
- Distinct leads: %d (with email: %d)

Leads:
`, req.Niche, req.Stats.Accounts, req.Stats.Posts, req.Stats.Ads,
		req.Stats.Comments, req.Stats.Positives, len(req.Records), countEmails(req.Records))

	for i, r := range req.Records {
		if i >= maxPromptLeads {
			fmt.Fprintf(&b, "... and %d more leads\n", len(req.Records)-maxPromptLeads)
			break
		}
		fmt.Fprintf(&b, "- @%s (%d followers%s) %s\n  bio: %s\n  comment: %q\n",
			r.Username, r.Followers, emailNote(r.Email), r.ProfileURL, oneLine(r.Bio), r.SourceComment.Text)
	}

	b.WriteString("\nWrite a short markdown digest: 3-5 bullet points on who these leads are and which to contact first.")
	return b.String()
}

func countEmails(records []model.ProfileRecord) int {
	n := 0
	for _, r := range records {
		if r.Email != "" {
			n++
		}
	}
	return n
}

func emailNote(email string) string {
	if email == "" {
		return ""
	}
	return ", email " + email
}

func oneLine(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return "(empty)"
	}
	return s
}
