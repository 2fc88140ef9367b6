package aggregate

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ppiankov/adscout/internal/cache"
	"github.com/ppiankov/adscout/internal/model"
)

const profileNamespace = "profile"

// CachedLookup serves profiles from a cache before falling through to the
// wrapped lookup. Failed lookups are not cached.
type CachedLookup struct {
	next   ProfileLookup
	store  cache.Cache
	ttl    time.Duration
	logger *zap.Logger

	hits, misses int
}

// NewCachedLookup wraps next with store
func NewCachedLookup(next ProfileLookup, store cache.Cache, ttl time.Duration, logger *zap.Logger) *CachedLookup {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedLookup{next: next, store: store, ttl: ttl, logger: logger}
}

func (c *CachedLookup) Lookup(ctx context.Context, username string) (model.Profile, error) {
	key := cache.Key(profileNamespace, username)

	var p model.Profile
	if cache.GetJSON(c.store, key, &p) {
		c.hits++
		c.logger.Debug("profile cache hit", zap.String("username", username))
		return p, nil
	}
	c.misses++

	p, err := c.next.Lookup(ctx, username)
	if err != nil {
		return p, err
	}

	if err := cache.SetJSON(c.store, key, p, c.ttl); err != nil {
		c.logger.Warn("profile cache write failed", zap.String("username", username), zap.Error(err))
	}
	return p, nil
}

// Stats returns cache hits and misses
func (c *CachedLookup) Stats() (hits, misses int) {
	return c.hits, c.misses
}
