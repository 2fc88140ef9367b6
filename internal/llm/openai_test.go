package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/adscout/internal/model"
)

func chatServer(t *testing.T, content string, gotPrompt *string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req openai.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if gotPrompt != nil && len(req.Messages) > 1 {
			*gotPrompt = req.Messages[1].Content
		}

		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			ID:     "chatcmpl-1",
			Object: "chat.completion",
			Model:  req.Model,
			Choices: []openai.ChatCompletionChoice{{
				Message:      openai.ChatCompletionMessage{Role: "assistant", Content: content},
				FinishReason: "stop",
			}},
			Usage: openai.Usage{TotalTokens: 42},
		})
	}))
}

func testRecords() []model.ProfileRecord {
	return []model.ProfileRecord{{
		Profile: model.Profile{
			Username:   "loja",
			Bio:        "moda praia\ncontato: a@loja.com",
			Followers:  900,
			Email:      "a@loja.com",
			ProfileURL: "https://www.instagram.com/loja/",
		},
		SourceComment: model.Comment{Text: "amei", PostURL: "https://www.instagram.com/p/1/"},
	}}
}

func TestOpenAIProvider_Digest(t *testing.T) {
	var prompt string
	srv := chatServer(t, "- Contact @loja first: https://www.instagram.com/loja/.", &prompt)
	defer srv.Close()

	p, err := NewOpenAIProvider(Config{APIKey: "test-key", BaseURL: srv.URL, Timeout: 5})
	require.NoError(t, err)

	records := testRecords()
	resp, err := p.Digest(context.Background(), DigestRequest{
		Niche:       "moda",
		Records:     records,
		AllowedURLs: AllowedURLs(records),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"https://www.instagram.com/loja/"}, resp.CitedURLs)
	assert.Equal(t, openai.GPT4oMini, resp.Model)
	assert.Equal(t, 42, resp.TokensUsed)
	assert.Contains(t, prompt, `"moda"`)
	assert.Contains(t, prompt, "@loja (900 followers, email a@loja.com)")
	assert.Contains(t, prompt, "bio: moda praia contato: a@loja.com")
}

func TestOpenAIProvider_RejectsForeignURL(t *testing.T) {
	srv := chatServer(t, "See https://evil.example.com/x", nil)
	defer srv.Close()

	p, err := NewOpenAIProvider(Config{APIKey: "test-key", BaseURL: srv.URL})
	require.NoError(t, err)

	records := testRecords()
	_, err = p.Digest(context.Background(), DigestRequest{Records: records, AllowedURLs: AllowedURLs(records)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "evil.example.com")
}

func TestNewOpenAIProvider_RequiresKey(t *testing.T) {
	_, err := NewOpenAIProvider(Config{})
	assert.Error(t, err)
}

func TestSummarizer_Generate(t *testing.T) {
	srv := chatServer(t, "- one lead", nil)
	defer srv.Close()

	s, err := NewSummarizer(Config{APIKey: "test-key", BaseURL: srv.URL, Model: "gpt-4o-mini"})
	require.NoError(t, err)

	doc, err := s.Generate(context.Background(), "moda", model.RunStats{Profiles: 1}, testRecords())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(doc, "# Lead digest: moda\n"))
	assert.Contains(t, doc, "- one lead")

	_, err = s.Generate(context.Background(), "moda", model.RunStats{}, nil)
	assert.Error(t, err)
}

func TestExtractURLs(t *testing.T) {
	got := extractURLs("a https://x.com/a. b (https://y.com/b) https://x.com/a!")
	assert.Equal(t, []string{"https://x.com/a", "https://y.com/b"}, got)
}

func TestRenderMarkdown(t *testing.T) {
	at := time.Date(2025, 1, 2, 3, 4, 0, 0, time.UTC)
	doc := RenderMarkdown("fitness", &DigestResponse{Text: "body", Model: "m", TokensUsed: 7}, at)
	assert.Equal(t, "# Lead digest: fitness\n\n_Generated 2025-01-02 03:04 by m (7 tokens)_\n\nbody\n", doc)
}
