package instagram

import (
	"context"
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/ppiankov/adscout/internal/fault"
	"github.com/ppiankov/adscout/internal/model"
)

var errBlankProfile = errors.New("no profile fields found")

// Profile reads a user's profile page. Missing fields take their zero
// value, but a page where every selector missed is a KindExtraction fault.
func (n *Navigator) Profile(ctx context.Context, username string) (model.Profile, error) {
	p := model.Profile{
		Username:   username,
		ProfileURL: model.ProfileURL(n.base, username),
	}

	if err := n.open(ctx, p.ProfileURL); err != nil {
		return p, err
	}

	p.Bio, _ = n.text(ctx, n.sel.Bio)
	p.Followers = ParseCount(n.followers(ctx))
	following, _ := n.text(ctx, n.sel.Following)
	p.Following = ParseCount(following)
	posts, _ := n.text(ctx, n.sel.PostsCount)
	p.Posts = ParseCount(posts)

	name, _ := n.text(ctx, n.sel.DisplayName)
	if name != "" {
		p.DisplayName = name
	} else {
		p.DisplayName = username
	}

	p.IsPrivate = n.count(ctx, n.sel.PrivateMarker) > 0

	if p.Bio == "" && name == "" && p.Followers == 0 && p.Following == 0 && p.Posts == 0 && !p.IsPrivate {
		return p, fault.New(fault.KindExtraction, "profile "+username, errBlankProfile)
	}
	return p, nil
}

// Lookup implements the aggregator's profile lookup
func (n *Navigator) Lookup(ctx context.Context, username string) (model.Profile, error) {
	return n.Profile(ctx, username)
}

// followers prefers the title attribute, which carries the exact count
// when the text is abbreviated
func (n *Navigator) followers(ctx context.Context) string {
	el, err := n.session.Find(ctx, n.sel.Followers)
	if err != nil {
		return ""
	}
	if title, err := el.Attribute("title"); err == nil && strings.TrimSpace(title) != "" {
		return title
	}
	text, _ := el.Text()
	return text
}

var countPattern = regexp.MustCompile(`^(\d[\d.,]*)\s*([\p{L}]*)`)

// ParseCount turns a displayed count into a number: "1,234", "1.234",
// "1.2k", "3M", "1,5 mil", "2 mi". Unparsable input yields 0.
func ParseCount(s string) int64 {
	m := countPattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(s)))
	if m == nil {
		return 0
	}
	digits, suffix := m[1], m[2]

	mult := multiplier(suffix)
	if mult == 1 {
		// Without a suffix both separators group thousands
		plain := strings.NewReplacer(",", "", ".", "").Replace(digits)
		v, err := strconv.ParseInt(plain, 10, 64)
		if err != nil {
			return 0
		}
		return v
	}

	decimal := strings.ReplaceAll(strings.TrimRight(digits, ".,"), ",", ".")
	if i := strings.LastIndex(decimal, "."); i >= 0 {
		decimal = strings.ReplaceAll(decimal[:i], ".", "") + decimal[i:]
	}
	v, err := strconv.ParseFloat(decimal, 64)
	if err != nil {
		return 0
	}
	return int64(math.Round(v * mult))
}

func multiplier(suffix string) float64 {
	switch suffix {
	case "k", "mil", "thousand":
		return 1e3
	case "m", "mi", "mln", "million", "milhão", "milhões":
		return 1e6
	case "b", "bi", "bilhão", "bilhões", "billion":
		return 1e9
	default:
		return 1
	}
}
