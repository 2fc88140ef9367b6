package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ppiankov/adscout/internal/aggregate"
	"github.com/ppiankov/adscout/internal/browser"
	"github.com/ppiankov/adscout/internal/cache"
	"github.com/ppiankov/adscout/internal/classify"
	"github.com/ppiankov/adscout/internal/fault"
	"github.com/ppiankov/adscout/internal/instagram"
	"github.com/ppiankov/adscout/internal/llm"
	"github.com/ppiankov/adscout/internal/model"
	"github.com/ppiankov/adscout/internal/pipeline"
	"github.com/ppiankov/adscout/internal/store"
	"github.com/ppiankov/adscout/internal/util"
	"github.com/ppiankov/adscout/internal/worker"
)

var (
	hashtag       string
	maxAccounts   int
	maxPosts      int
	noCache       bool
	respectRobots bool
	headless      bool
	dbPath        string
	dataDir       string
	llmEnabled    bool
	llmModel      string
)

// scrapeCmd represents the scrape command
var scrapeCmd = &cobra.Command{
	Use:   "scrape [niche]",
	Short: "Collect leads from comments on sponsored posts in a niche",
	Long: `Scrape logs in, searches accounts for the niche, inspects their recent
posts, and for every sponsored post reads the comments. Authors of positive
comments are looked up and saved once each.

Credentials come from ADSCOUT_USERNAME / ADSCOUT_PASSWORD (or .env) and
are prompted for when missing. The niche is prompted for when not given.
Ctrl-C stops the run and saves what was collected.

Example:
  adscout scrape "moda praia"
  adscout scrape fitness --max-accounts 10 --max-posts 5
  adscout scrape --hashtag verao2025 --headless
  adscout scrape skincare --db ~/.adscout/runs.db --llm`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	scrapeCmd.Flags().StringVar(&hashtag, "hashtag", "", "read posts from a hashtag grid instead of searching accounts")
	scrapeCmd.Flags().IntVar(&maxAccounts, "max-accounts", 5, "accounts to inspect")
	scrapeCmd.Flags().IntVar(&maxPosts, "max-posts", 3, "recent posts to inspect per account")
	scrapeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the profile cache")
	scrapeCmd.Flags().BoolVar(&respectRobots, "respect-robots", false, "refuse pages disallowed by robots.txt")
	scrapeCmd.Flags().BoolVar(&headless, "headless", false, "run Chrome without a window")
	scrapeCmd.Flags().StringVar(&dbPath, "db", "", "SQLite run history path (optional)")
	scrapeCmd.Flags().StringVar(&dataDir, "data-dir", "", "output directory (default from config)")

	scrapeCmd.Flags().BoolVar(&llmEnabled, "llm", false, "write an LLM digest of the leads (needs OPENAI_API_KEY)")
	scrapeCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

// applyScrapeFlags lets explicitly set flags win over config and env
func applyScrapeFlags(cmd *cobra.Command, cfg *model.Config) {
	flags := cmd.Flags()
	if flags.Changed("max-accounts") {
		cfg.Scrape.MaxAccounts = maxAccounts
	}
	if flags.Changed("max-posts") {
		cfg.Scrape.MaxPostsPerAccount = maxPosts
	}
	if flags.Changed("no-cache") {
		cfg.Cache.Enabled = !noCache
	}
	if flags.Changed("respect-robots") {
		cfg.Scrape.RespectRobots = respectRobots
	}
	if flags.Changed("headless") {
		cfg.Browser.Headless = headless
	}
	if flags.Changed("db") {
		cfg.Store.Path = dbPath
	}
	if flags.Changed("data-dir") {
		cfg.Output.DataDir = dataDir
	}
	if flags.Changed("llm") {
		cfg.LLM.Enabled = llmEnabled
	}
	if flags.Changed("llm-model") {
		cfg.LLM.Model = llmModel
	}
}

func runScrape(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyScrapeFlags(cmd, cfg)

	in := newPrompter(os.Stdin, os.Stderr)
	creds, err := credentials(in)
	if err != nil {
		return err
	}

	niche := ""
	if len(args) == 1 {
		niche = strings.TrimSpace(args[0])
	}
	tag := strings.TrimPrefix(strings.TrimSpace(hashtag), "#")
	if niche == "" && tag == "" {
		if niche, err = in.ask("Niche to search (e.g. moda praia): ", true); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(os.Stderr, "⚙️  Starting browser...\n")
	session, err := browser.Launch(ctx, cfg.Browser, logger)
	if err != nil {
		return fmt.Errorf("start browser: %w", err)
	}
	defer func() {
		if err := session.Close(); err != nil {
			logger.Warn("browser close failed", zap.Error(err))
		}
	}()

	pacer := worker.NewPacer(cfg.Pacing)
	opts := instagram.Options{
		Throttle: pacer,
		Business: classify.NewBusinessPredicate(cfg.Business),
		Logger:   logger,
	}
	if cfg.Scrape.RespectRobots {
		opts.Guard = util.NewRobotsGuard(util.HTTPClient(10*time.Second, cfg.Browser.Proxy), cfg.Browser.UserAgent)
	}
	nav := instagram.New(session, cfg, opts)

	fmt.Fprintf(os.Stderr, "⚙️  Logging in as %s...\n", creds.Username)
	if err := nav.Login(ctx, creds); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	fmt.Fprintf(os.Stderr, "✓ Logged in\n")

	var lookup aggregate.ProfileLookup = nav
	if cfg.Cache.Enabled {
		cached := aggregate.NewCachedLookup(nav, cache.FromConfig(cfg.Cache), cfg.Cache.DiskTTL, logger)
		defer func() {
			hits, misses := cached.Stats()
			logger.Debug("profile cache", zap.Int("hits", hits), zap.Int("misses", misses))
		}()
		lookup = cached
	}
	agg := aggregate.New(lookup, fault.DefaultPolicy(), cfg.Site.BaseURL, logger)

	p := pipeline.New(nav, agg, cfg, pipeline.Options{
		Pacer:  pacer,
		Logger: logger,
		Out:    os.Stderr,
	})

	run := pipeline.NewRun(niche, tag)
	scrapeErr := p.Scrape(ctx, run)
	logger.Debug("pacing", zap.Duration("slept", pacer.Slept()))
	if run.Status == model.RunInterrupted {
		fmt.Fprintf(os.Stderr, "\n✗ Interrupted, saving %d profiles collected so far\n", len(run.Records))
	}

	persister, closeStore := newPersister(ctx, cfg)
	defer closeStore()
	persistErr := persister.Persist(ctx, run)

	pipeline.PrintSummary(os.Stderr, run)

	if errors.Is(scrapeErr, context.Canceled) {
		scrapeErr = nil
	}
	return errors.Join(scrapeErr, persistErr)
}

// credentials reads ADSCOUT_USERNAME / ADSCOUT_PASSWORD, prompting for
// whatever is missing
func credentials(in *prompter) (instagram.Credentials, error) {
	creds := instagram.Credentials{
		Username: viper.GetString("username"),
		Password: viper.GetString("password"),
	}
	var err error
	if creds.Username == "" {
		if creds.Username, err = in.ask("Instagram username: ", true); err != nil {
			return creds, err
		}
	}
	if creds.Password == "" {
		if creds.Password, err = in.secret("Instagram password: "); err != nil {
			return creds, err
		}
	}
	return creds, nil
}

// newPersister wires the optional digest and run history
func newPersister(ctx context.Context, cfg *model.Config) (*pipeline.Persister, func()) {
	p := &pipeline.Persister{
		DataDir: cfg.Output.DataDir,
		Prefix:  cfg.Output.FilePrefix,
		Logger:  logger,
		Out:     os.Stderr,
	}
	closeStore := func() {}

	if cfg.LLM.Enabled {
		s, err := llm.NewSummarizer(llm.ConfigFromModel(cfg.LLM, cfg.Browser.Proxy))
		if err != nil {
			fmt.Fprintf(os.Stderr, "✗ LLM digest disabled: %v\n", err)
		} else {
			p.Digester = s
		}
	}

	if cfg.Store.Path != "" {
		db, err := store.Open(context.WithoutCancel(ctx), cfg.Store.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "✗ Run history disabled: %v\n", err)
		} else {
			p.Store = db
			closeStore = func() {
				if err := db.Close(); err != nil {
					logger.Warn("close run history", zap.Error(err))
				}
			}
		}
	}
	return p, closeStore
}
