// Package worker paces the pipeline: a token bucket caps page loads per
// minute and randomized pauses separate profiles, posts and accounts.
package worker

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/ppiankov/adscout/internal/model"
)

// Pause names a point in the pipeline that waits a random delay
type Pause int

const (
	PauseProfile Pause = iota // Between profile lookups
	PausePost                 // Between posts
	PauseAccount              // Between accounts
)

func (p Pause) String() string {
	switch p {
	case PauseProfile:
		return "profile"
	case PausePost:
		return "post"
	case PauseAccount:
		return "account"
	default:
		return "unknown"
	}
}

// Pacer is open-loop: delays never adapt to server responses
type Pacer struct {
	pages  *rate.Limiter
	ranges map[Pause]model.DelayRange

	mu    sync.Mutex
	rand  func() float64
	sleep func(ctx context.Context, d time.Duration) error
	total time.Duration
}

// NewPacer creates a pacer from configuration. A non-positive page rate
// disables the page-load ceiling.
func NewPacer(cfg model.PacingConfig) *Pacer {
	limit := rate.Inf
	if cfg.PagesPerMin > 0 {
		limit = rate.Limit(cfg.PagesPerMin / 60)
	}

	burst := cfg.PageLoadBurst
	if burst <= 0 {
		burst = 1
	}

	return &Pacer{
		pages: rate.NewLimiter(limit, burst),
		ranges: map[Pause]model.DelayRange{
			PauseProfile: cfg.Profile,
			PausePost:    cfg.Post,
			PauseAccount: cfg.Account,
		},
		rand:  rand.Float64,
		sleep: sleepCtx,
	}
}

// Wait blocks until another page load fits under the ceiling
func (p *Pacer) Wait(ctx context.Context) error {
	return p.pages.Wait(ctx)
}

// Delay draws a delay for kind uniformly from its configured range
func (p *Pacer) Delay(kind Pause) time.Duration {
	r := p.ranges[kind]
	if r.Max <= r.Min {
		return r.Min
	}

	p.mu.Lock()
	f := p.rand()
	p.mu.Unlock()

	return r.Min + time.Duration(f*float64(r.Max-r.Min))
}

// Pause sleeps a random delay for kind, returning early when ctx is done
func (p *Pacer) Pause(ctx context.Context, kind Pause) error {
	d := p.Delay(kind)

	p.mu.Lock()
	p.total += d
	p.mu.Unlock()

	return p.sleep(ctx, d)
}

// Slept returns the sum of all pauses taken
func (p *Pacer) Slept() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.total
}

func sleepCtx(ctx context.Context, d time.Duration) error {
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
