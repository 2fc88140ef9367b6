package instagram

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/ppiankov/adscout/internal/extract"
	"github.com/ppiankov/adscout/internal/model"
)

// reservedPaths are first path segments that are site sections, not users
var reservedPaths = map[string]bool{
	"explore": true, "p": true, "reel": true, "reels": true, "stories": true,
	"accounts": true, "direct": true, "about": true, "legal": true, "developer": true,
	"web": true, "challenge": true, "emails": true, "session": true, "tv": true,
}

// AccountPosts is what RecentPosts learned about one account
type AccountPosts struct {
	Username string
	Signals  model.AccountSignals
	Business bool     // Predicate verdict
	Posts    []string // Empty when Business is false
}

// HashtagPosts returns the first limit unique post links of a hashtag feed
func (n *Navigator) HashtagPosts(ctx context.Context, tag string, limit int) ([]string, error) {
	tag = strings.TrimPrefix(strings.TrimSpace(tag), "#")
	if limit <= 0 {
		limit = n.limits.HashtagLimit
	}

	if err := n.open(ctx, fmt.Sprintf("%s/explore/tags/%s/", n.base, url.PathEscape(tag))); err != nil {
		return nil, err
	}

	posts, err := n.hrefs(ctx, n.sel.PostLinks, limit, isPostURL)
	if err != nil {
		return nil, err
	}
	n.logger.Info("hashtag posts", zap.String("tag", tag), zap.Int("posts", len(posts)))
	return posts, nil
}

// SearchAccounts returns up to max usernames from the keyword search page
func (n *Navigator) SearchAccounts(ctx context.Context, niche string, max int) ([]string, error) {
	if max <= 0 {
		max = n.limits.SearchLimit
	}

	target := fmt.Sprintf("%s/explore/search/keyword/?q=%s", n.base, url.QueryEscape(strings.TrimSpace(niche)))
	if err := n.open(ctx, target); err != nil {
		return nil, err
	}

	clicked, err := n.clickIfPresent(ctx, n.sel.AccountsTab, n.limits.PageSettle)
	if err != nil {
		return nil, err
	}
	if !clicked {
		n.logger.Debug("accounts tab not found, using current results")
	}

	links, err := n.hrefs(ctx, n.sel.AccountLinks, 0, nil)
	if err != nil {
		return nil, err
	}

	var accounts []string
	seen := make(map[string]bool)
	for _, link := range links {
		name := n.usernameFromURL(link)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		accounts = append(accounts, name)
		if len(accounts) >= max {
			break
		}
	}

	n.logger.Info("accounts found", zap.String("niche", niche), zap.Int("accounts", len(accounts)))
	return accounts, nil
}

// RecentPosts opens an account page, evaluates the business predicate and
// collects up to max post links when it passes
func (n *Navigator) RecentPosts(ctx context.Context, username string, max int) (AccountPosts, error) {
	if max <= 0 {
		max = n.limits.MaxPostsPerAccount
	}
	result := AccountPosts{Username: username, Signals: model.AccountSignals{Username: username}}

	pageURL := model.ProfileURL(n.base, username)
	if err := n.open(ctx, pageURL); err != nil {
		return result, err
	}

	result.Signals.ContactIndicators = n.count(ctx, n.sel.ContactIndicator)
	if page, err := n.session.HTML(ctx); err == nil {
		if links, err := extract.ExternalLinks(page, pageURL); err == nil {
			result.Signals.ExternalLinks = len(links)
		}
	}

	result.Business = n.business(result.Signals)
	if !result.Business {
		n.logger.Info("not a business account, skipping", zap.String("username", username))
		return result, nil
	}

	posts, err := n.hrefs(ctx, n.sel.PostLinks, max, isPostURL)
	if err != nil {
		return result, err
	}
	result.Posts = posts

	n.logger.Info("recent posts", zap.String("username", username), zap.Int("posts", len(posts)))
	return result, nil
}

// usernameFromURL returns the handle of a single-segment profile URL on the
// site, or ""
func (n *Navigator) usernameFromURL(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	base, err := url.Parse(n.base)
	if err != nil || !strings.EqualFold(u.Host, base.Host) {
		return ""
	}

	path := strings.Trim(u.Path, "/")
	if path == "" || strings.Contains(path, "/") || reservedPaths[strings.ToLower(path)] {
		return ""
	}
	return path
}

func isPostURL(link string) bool {
	return strings.Contains(link, "/p/")
}
