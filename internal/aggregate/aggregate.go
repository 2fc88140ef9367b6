// Package aggregate turns positive comments into deduplicated, enriched
// profile records in first-seen order.
package aggregate

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ppiankov/adscout/internal/fault"
	"github.com/ppiankov/adscout/internal/model"
)

// ProfileLookup fetches the profile attributes of a username
type ProfileLookup interface {
	Lookup(ctx context.Context, username string) (model.Profile, error)
}

// LookupFunc adapts a function to ProfileLookup
type LookupFunc func(ctx context.Context, username string) (model.Profile, error)

func (f LookupFunc) Lookup(ctx context.Context, username string) (model.Profile, error) {
	return f(ctx, username)
}

// Aggregator is an insertion-ordered map from username to record
type Aggregator struct {
	lookup  ProfileLookup
	policy  fault.Policy
	baseURL string
	logger  *zap.Logger
	now     func() time.Time

	index   map[string]int
	records []model.ProfileRecord
	failed  int
}

// New creates an aggregator. baseURL is used to build profile URLs when the
// lookup does not supply one.
func New(lookup ProfileLookup, policy fault.Policy, baseURL string, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{
		lookup:  lookup,
		policy:  policy,
		baseURL: baseURL,
		logger:  logger,
		now:     time.Now,
		index:   make(map[string]int),
	}
}

// Seen reports whether a record already exists for username
func (a *Aggregator) Seen(username string) bool {
	_, ok := a.index[identifier(username)]
	return ok
}

// Add records the author of a positive comment. A username already present
// is a no-op: the first comment stays as the evidence. It returns true when
// a new record was appended. The error is non-nil only for abort-class
// lookup failures.
func (a *Aggregator) Add(ctx context.Context, c model.Comment) (bool, error) {
	id := identifier(c.Author)
	if id == "" {
		return false, nil
	}
	if _, ok := a.index[id]; ok {
		a.logger.Debug("duplicate commenter skipped", zap.String("username", c.Author))
		return false, nil
	}

	minimal := model.Profile{
		Username:    c.Author,
		DisplayName: c.Author,
		ProfileURL:  model.ProfileURL(a.baseURL, c.Author),
	}

	profile, err := a.lookup.Lookup(ctx, c.Author)
	if err != nil {
		a.failed++
	}
	profile, err = fault.Resolve(a.policy, a.logger, "lookup profile "+c.Author, profile, err, minimal)
	if err != nil {
		return false, err
	}

	a.index[id] = len(a.records)
	a.records = append(a.records, model.ProfileRecord{
		Profile:       merge(profile, minimal),
		SourceComment: c,
		CollectedAt:   a.now().UTC().Truncate(time.Second),
	})
	return true, nil
}

// Records returns the records in insertion order
func (a *Aggregator) Records() []model.ProfileRecord {
	out := make([]model.ProfileRecord, len(a.records))
	copy(out, a.records)
	return out
}

// LookupFailures counts lookups that degraded to a minimal profile
func (a *Aggregator) LookupFailures() int {
	return a.failed
}

// merge fills blanks in p from the minimal profile and derives the email
func merge(p, minimal model.Profile) model.Profile {
	if p.Username == "" {
		p.Username = minimal.Username
	}
	if p.DisplayName == "" {
		p.DisplayName = p.Username
	}
	if p.ProfileURL == "" {
		p.ProfileURL = minimal.ProfileURL
	}
	if p.Email == "" {
		p.Email = ExtractEmail(p.Bio)
	}
	return p
}

// identifier normalizes a username for deduplication. Handles are case
// insensitive on the site.
func identifier(username string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(username), "@")))
}
