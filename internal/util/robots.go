package util

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/temoto/robotstxt"

	"github.com/ppiankov/adscout/internal/fault"
)

// RobotsGuard refuses navigation to paths a site's robots.txt disallows.
// robots.txt is fetched once per host and kept for the guard's lifetime.
type RobotsGuard struct {
	client *http.Client
	agent  string

	mu    sync.Mutex
	hosts map[string]*robotstxt.RobotsData
}

// NewRobotsGuard creates a guard matching rules for the product token of
// userAgent
func NewRobotsGuard(client *http.Client, userAgent string) *RobotsGuard {
	if client == nil {
		client = http.DefaultClient
	}
	return &RobotsGuard{
		client: client,
		agent:  ProductToken(userAgent),
		hosts:  make(map[string]*robotstxt.RobotsData),
	}
}

// Allow returns nil when rawURL may be visited. An unreachable robots.txt
// allows everything.
func (g *RobotsGuard) Allow(ctx context.Context, rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse URL: %w", err)
	}

	data := g.rules(ctx, u)
	if data == nil {
		return nil
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	if !data.TestAgent(path, g.agent) {
		return fault.New(fault.KindNavigationTimeout, "robots "+u.Host+path, fmt.Errorf("disallowed for %s", g.agent))
	}
	return nil
}

func (g *RobotsGuard) rules(ctx context.Context, u *url.URL) *robotstxt.RobotsData {
	g.mu.Lock()
	defer g.mu.Unlock()

	if data, ok := g.hosts[u.Host]; ok {
		return data
	}

	data, err := g.fetch(ctx, fmt.Sprintf("%s://%s/robots.txt", u.Scheme, u.Host))
	if err != nil {
		data = nil
	}
	g.hosts[u.Host] = data
	return data
}

func (g *RobotsGuard) fetch(ctx context.Context, robotsURL string) (*robotstxt.RobotsData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", g.agent)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch robots.txt: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("parse robots.txt: %w", err)
	}
	return data, nil
}

// ProductToken extracts the product name of a user agent string,
// "Mozilla/5.0 (X11)" becomes "Mozilla"
func ProductToken(ua string) string {
	parts := strings.Fields(ua)
	if len(parts) == 0 {
		return "*"
	}
	return strings.Split(parts[0], "/")[0]
}
