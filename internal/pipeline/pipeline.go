// Package pipeline runs discovery, ad detection, comment classification
// and aggregation over one browser session, then persists the records.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ppiankov/adscout/internal/aggregate"
	"github.com/ppiankov/adscout/internal/classify"
	"github.com/ppiankov/adscout/internal/fault"
	"github.com/ppiankov/adscout/internal/instagram"
	"github.com/ppiankov/adscout/internal/model"
	"github.com/ppiankov/adscout/internal/worker"
)

// Navigator is the browsing surface the pipeline needs
type Navigator interface {
	SearchAccounts(ctx context.Context, niche string, max int) ([]string, error)
	HashtagPosts(ctx context.Context, tag string, limit int) ([]string, error)
	RecentPosts(ctx context.Context, username string, max int) (instagram.AccountPosts, error)
	InspectPost(ctx context.Context, postURL string) (model.PostSignals, error)
	Comments(ctx context.Context, postURL string) ([]model.Comment, error)
}

// Pacer waits between pipeline steps
type Pacer interface {
	Pause(ctx context.Context, kind worker.Pause) error
}

// Options are the optional collaborators of a Pipeline
type Options struct {
	Pacer  Pacer
	Scorer classify.Scorer // Defaults to VADER
	Policy fault.Policy    // Defaults to fault.DefaultPolicy
	Logger *zap.Logger
	Out    io.Writer // Operator progress lines; nil discards them
}

// Pipeline orchestrates a complete scrape
type Pipeline struct {
	nav        Navigator
	agg        *aggregate.Aggregator
	ads        *classify.AdClassifier
	positivity *classify.PositivityClassifier
	pacer      Pacer
	policy     fault.Policy
	limits     model.ScrapeConfig
	logger     *zap.Logger
	out        io.Writer
}

type noPause struct{}

func (noPause) Pause(context.Context, worker.Pause) error { return nil }

// New creates a pipeline. agg receives every positive comment.
func New(nav Navigator, agg *aggregate.Aggregator, cfg *model.Config, opts Options) *Pipeline {
	p := &Pipeline{
		nav:    nav,
		agg:    agg,
		ads:    classify.NewAdClassifier(cfg.Classifier.AdKeywords),
		pacer:  opts.Pacer,
		policy: opts.Policy,
		limits: cfg.Scrape,
		logger: opts.Logger,
		out:    opts.Out,
	}
	scorer := opts.Scorer
	if scorer == nil {
		scorer = classify.NewVader()
	}
	p.positivity = classify.NewPositivityClassifier(cfg.Classifier, scorer)
	if p.pacer == nil {
		p.pacer = noPause{}
	}
	if p.policy == nil {
		p.policy = fault.DefaultPolicy()
	}
	if p.logger == nil {
		p.logger = zap.NewNop()
	}
	if p.out == nil {
		p.out = io.Discard
	}
	return p
}

// Scrape walks accounts (or the hashtag grid) and fills run. The run's
// records and status are set even when Scrape returns an error, so partial
// results can be persisted.
func (p *Pipeline) Scrape(ctx context.Context, run *Run) (err error) {
	defer func() {
		run.FinishedAt = time.Now()
		run.Records = p.agg.Records()
		run.Stats.Profiles = len(run.Records)
		run.Stats.LookupFailures = p.agg.LookupFailures()
		switch {
		case err == nil:
			run.Status = model.RunCompleted
		case errors.Is(err, context.Canceled):
			run.Status = model.RunInterrupted
		default:
			run.Status = model.RunFailed
		}
	}()

	if run.Hashtag != "" {
		return p.scrapeHashtag(ctx, run)
	}
	return p.scrapeNiche(ctx, run)
}

func (p *Pipeline) scrapeHashtag(ctx context.Context, run *Run) error {
	tag := strings.TrimPrefix(run.Hashtag, "#")
	fmt.Fprintf(p.out, "⚙️  Collecting posts for #%s...\n", tag)

	posts, err := p.nav.HashtagPosts(ctx, tag, p.limits.HashtagLimit)
	posts, err = resolve(p, run, "hashtag posts", posts, err, nil)
	if err != nil {
		return err
	}
	return p.processPosts(ctx, run, posts)
}

func (p *Pipeline) scrapeNiche(ctx context.Context, run *Run) error {
	fmt.Fprintf(p.out, "⚙️  Searching accounts for %q...\n", run.Niche)

	accounts, err := p.nav.SearchAccounts(ctx, run.Niche, p.limits.SearchLimit)
	accounts, err = resolve(p, run, "search accounts", accounts, err, nil)
	if err != nil {
		return err
	}
	if p.limits.MaxAccounts > 0 && len(accounts) > p.limits.MaxAccounts {
		accounts = accounts[:p.limits.MaxAccounts]
	}
	run.Stats.Accounts = len(accounts)
	fmt.Fprintf(p.out, "✓ Found %d accounts\n", len(accounts))

	for i, username := range accounts {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprintf(p.out, "⚙️  [%d/%d] @%s\n", i+1, len(accounts), username)

		ap, err := p.nav.RecentPosts(ctx, username, p.limits.MaxPostsPerAccount)
		ap, err = resolve(p, run, "recent posts "+username, ap, err, instagram.AccountPosts{Username: username})
		if err != nil {
			return err
		}
		if !ap.Business {
			run.Stats.SkippedAccounts++
		}

		if err := p.processPosts(ctx, run, ap.Posts); err != nil {
			return err
		}

		if i < len(accounts)-1 {
			if err := p.pacer.Pause(ctx, worker.PauseAccount); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *Pipeline) processPosts(ctx context.Context, run *Run, posts []string) error {
	for _, postURL := range posts {
		if err := ctx.Err(); err != nil {
			return err
		}
		isAd, err := p.processPost(ctx, run, postURL)
		if err != nil {
			return err
		}
		if isAd {
			if err := p.pacer.Pause(ctx, worker.PausePost); err != nil {
				return err
			}
		}
	}
	return nil
}

// processPost classifies one post and, for ads, feeds its positive
// commenters to the aggregator
func (p *Pipeline) processPost(ctx context.Context, run *Run, postURL string) (bool, error) {
	sig, err := p.nav.InspectPost(ctx, postURL)
	sig, err = resolve(p, run, "inspect post", sig, err, model.PostSignals{URL: postURL, CaptionErr: err})
	if err != nil {
		return false, err
	}
	run.Stats.Posts++

	ad := p.ads.Classify(sig)
	if ad.CaptionFailed {
		run.Stats.CaptionFailures++
	}
	if !ad.IsAd {
		p.logger.Debug("not an ad", zap.String("post", postURL))
		return false, nil
	}
	run.Stats.Ads++
	fmt.Fprintf(p.out, "  ✓ Ad: %s\n", postURL)

	comments, err := p.nav.Comments(ctx, postURL)
	comments, err = resolve(p, run, "comments", comments, err, nil)
	if err != nil {
		return true, err
	}

	for _, c := range comments {
		if err := ctx.Err(); err != nil {
			return true, err
		}
		run.Stats.Comments++

		verdict := p.positivity.Classify(c.Text)
		if verdict.Candidate {
			run.Stats.Candidates++
		}
		if !verdict.Positive {
			continue
		}
		run.Stats.Positives++
		c.Score = verdict.Score
		if c.PostURL == "" {
			c.PostURL = postURL
		}

		if p.agg.Seen(c.Author) {
			continue
		}
		added, err := p.agg.Add(ctx, c)
		if err != nil {
			return true, err
		}
		if added {
			fmt.Fprintf(p.out, "    ✓ Lead @%s\n", c.Author)
			if err := p.pacer.Pause(ctx, worker.PauseProfile); err != nil {
				return true, err
			}
		}
	}
	return true, nil
}

// resolve applies the fault policy and counts degraded operations.
// Cancellation is never degraded.
func resolve[T any](p *Pipeline, run *Run, op string, v T, err error, fallback T) (T, error) {
	if err != nil && errors.Is(err, context.Canceled) {
		return fallback, err
	}
	out, rerr := fault.Resolve(p.policy, p.logger, op, v, err, fallback)
	if err != nil && rerr == nil {
		run.Stats.Degraded++
	}
	return out, rerr
}
