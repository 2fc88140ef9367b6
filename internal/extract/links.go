// Package extract parses raw page HTML. It complements selector queries
// with a full-document view for things selectors cannot express well.
package extract

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// Link is an anchor found in a page
type Link struct {
	URL      string `json:"url"`
	Host     string `json:"host"`
	Text     string `json:"text,omitempty"`
	External bool   `json:"external"` // Host outside the site's own domain
}

// redirectHosts wrap outbound links as ?u=<target>
var redirectHosts = map[string]bool{
	"l.instagram.com": true,
	"lm.facebook.com": true,
	"l.facebook.com":  true,
}

// Links returns the unique http(s) anchors of htmlContent, resolved against
// pageURL. Outbound redirect wrappers are unwrapped to their target.
func Links(htmlContent, pageURL string) ([]Link, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil, err
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, err
	}
	site := registrable(base.Hostname())

	var links []Link
	seen := make(map[string]bool)

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			if resolved := resolve(base, attr(n, "href")); resolved != nil {
				key := resolved.String()
				if !seen[key] {
					seen[key] = true
					host := resolved.Hostname()
					links = append(links, Link{
						URL:      key,
						Host:     host,
						Text:     CleanText(textOf(n)),
						External: registrable(host) != site,
					})
				}
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return links, nil
}

// ExternalLinks filters Links down to outbound ones
func ExternalLinks(htmlContent, pageURL string) ([]Link, error) {
	all, err := Links(htmlContent, pageURL)
	if err != nil {
		return nil, err
	}

	var out []Link
	for _, l := range all {
		if l.External {
			out = append(out, l)
		}
	}
	return out, nil
}

func resolve(base *url.URL, href string) *url.URL {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return nil
	}

	lower := strings.ToLower(href)
	if strings.HasPrefix(lower, "javascript:") || strings.HasPrefix(lower, "mailto:") || strings.HasPrefix(lower, "tel:") {
		return nil
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return nil
	}

	resolved := base.ResolveReference(parsed)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return nil
	}

	if redirectHosts[resolved.Hostname()] {
		if target := resolved.Query().Get("u"); target != "" {
			if inner, err := url.Parse(target); err == nil && (inner.Scheme == "http" || inner.Scheme == "https") {
				return inner
			}
		}
	}

	return resolved
}

// registrable approximates the registrable domain as the last two labels
func registrable(host string) string {
	host = strings.TrimSuffix(strings.ToLower(host), ".")
	parts := strings.Split(host, ".")
	if len(parts) <= 2 {
		return host
	}
	return strings.Join(parts[len(parts)-2:], ".")
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textOf(n *html.Node) string {
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
			buf.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return buf.String()
}
