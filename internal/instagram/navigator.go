// Package instagram drives a browser session through the site: login,
// hashtag and keyword discovery, account pages, posts and comments. Every
// selector comes from configuration.
package instagram

import (
	"context"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ppiankov/adscout/internal/browser"
	"github.com/ppiankov/adscout/internal/classify"
	"github.com/ppiankov/adscout/internal/model"
)

// Guard vetoes navigation to a URL
type Guard interface {
	Allow(ctx context.Context, rawURL string) error
}

// Throttle blocks until another page load is permitted
type Throttle interface {
	Wait(ctx context.Context) error
}

// Options are the optional collaborators of a Navigator
type Options struct {
	Guard    Guard
	Throttle Throttle
	Business classify.BusinessPredicate
	Logger   *zap.Logger
	Sleep    func(ctx context.Context, d time.Duration) error
}

// Navigator is the navigator and extractor stages over one session
type Navigator struct {
	session     browser.Session
	base        string
	sel         model.Selectors
	limits      model.ScrapeConfig
	waitTimeout time.Duration

	guard    Guard
	throttle Throttle
	business classify.BusinessPredicate
	logger   *zap.Logger
	sleep    func(ctx context.Context, d time.Duration) error
}

// New creates a navigator over session
func New(session browser.Session, cfg *model.Config, opts Options) *Navigator {
	n := &Navigator{
		session:     session,
		base:        strings.TrimRight(cfg.Site.BaseURL, "/"),
		sel:         cfg.Site.Selectors,
		limits:      cfg.Scrape,
		waitTimeout: cfg.Browser.WaitTimeout,
		guard:       opts.Guard,
		throttle:    opts.Throttle,
		business:    opts.Business,
		logger:      opts.Logger,
		sleep:       opts.Sleep,
	}
	if n.business == nil {
		n.business = classify.NewBusinessPredicate(cfg.Business)
	}
	if n.logger == nil {
		n.logger = zap.NewNop()
	}
	if n.sleep == nil {
		n.sleep = Sleep
	}
	return n
}

// Sleep waits for d or until ctx is done
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// open loads rawURL and waits the fixed settle delay
func (n *Navigator) open(ctx context.Context, rawURL string) error {
	if n.guard != nil {
		if err := n.guard.Allow(ctx, rawURL); err != nil {
			return err
		}
	}
	if n.throttle != nil {
		if err := n.throttle.Wait(ctx); err != nil {
			return err
		}
	}

	n.logger.Debug("navigate", zap.String("url", rawURL))
	if err := n.session.Navigate(ctx, rawURL); err != nil {
		return err
	}
	return n.sleep(ctx, n.limits.PageSettle)
}

// clickIfPresent clicks the first match of selector, waiting up to the
// configured timeout. Absence is not an error; a cancelled settle is.
func (n *Navigator) clickIfPresent(ctx context.Context, selector string, settle time.Duration) (bool, error) {
	el, err := n.session.WaitFor(ctx, selector, n.waitTimeout)
	if err != nil {
		return false, nil
	}
	if err := el.Click(); err != nil {
		n.logger.Debug("click failed", zap.String("selector", selector), zap.Error(err))
		return false, nil
	}
	return true, n.sleep(ctx, settle)
}

// hrefs returns the unique absolute href values of selector's matches, in
// document order, stopping at limit when limit > 0
func (n *Navigator) hrefs(ctx context.Context, selector string, limit int, keep func(string) bool) ([]string, error) {
	els, err := n.session.FindAll(ctx, selector)
	if err != nil {
		return nil, err
	}

	var out []string
	seen := make(map[string]bool)
	for _, el := range els {
		href, err := el.Attribute("href")
		if err != nil || href == "" {
			continue
		}
		abs := n.absolute(href)
		if abs == "" || seen[abs] || (keep != nil && !keep(abs)) {
			continue
		}
		seen[abs] = true
		out = append(out, abs)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (n *Navigator) absolute(href string) string {
	base, err := url.Parse(n.base + "/")
	if err != nil {
		return ""
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}

// text reads the text of selector's first match; "" when absent
func (n *Navigator) text(ctx context.Context, selector string) (string, bool) {
	el, err := n.session.Find(ctx, selector)
	if err != nil {
		n.logger.Debug("element missing", zap.String("selector", selector), zap.Error(err))
		return "", false
	}
	s, err := el.Text()
	if err != nil {
		n.logger.Debug("element text unreadable", zap.String("selector", selector), zap.Error(err))
		return "", false
	}
	return strings.TrimSpace(s), true
}

// count returns the number of matches of selector, 0 on failure
func (n *Navigator) count(ctx context.Context, selector string) int {
	els, err := n.session.FindAll(ctx, selector)
	if err != nil {
		return 0
	}
	return len(els)
}
