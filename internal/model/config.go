package model

import "time"

// Config is the complete adscout configuration
type Config struct {
	Browser    BrowserConfig    `yaml:"browser" mapstructure:"browser"`
	Site       SiteConfig       `yaml:"site" mapstructure:"site"`
	Scrape     ScrapeConfig     `yaml:"scrape" mapstructure:"scrape"`
	Pacing     PacingConfig     `yaml:"pacing" mapstructure:"pacing"`
	Classifier ClassifierConfig `yaml:"classifier" mapstructure:"classifier"`
	Business   BusinessConfig   `yaml:"business" mapstructure:"business"`
	Output     OutputConfig     `yaml:"output" mapstructure:"output"`
	Cache      CacheConfig      `yaml:"cache" mapstructure:"cache"`
	Store      StoreConfig      `yaml:"store" mapstructure:"store"`
	LLM        LLMConfig        `yaml:"llm" mapstructure:"llm"`
}

// BrowserConfig controls the Chrome instance driven by rod
type BrowserConfig struct {
	Headless     bool          `yaml:"headless" mapstructure:"headless"`
	ControlURL   string        `yaml:"control_url,omitempty" mapstructure:"control_url"` // Attach to a running Chrome instead of launching
	Bin          string        `yaml:"bin,omitempty" mapstructure:"bin"`
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent"`
	WindowWidth  int           `yaml:"window_width" mapstructure:"window_width"`
	WindowHeight int           `yaml:"window_height" mapstructure:"window_height"`
	WaitTimeout  time.Duration `yaml:"wait_timeout" mapstructure:"wait_timeout"` // Bounded poll for wait-until queries
	NavTimeout   time.Duration `yaml:"nav_timeout" mapstructure:"nav_timeout"`
	Proxy        string        `yaml:"proxy,omitempty" mapstructure:"proxy"`
}

// SiteConfig describes the target site. Selectors are data, not logic.
type SiteConfig struct {
	BaseURL   string    `yaml:"base_url" mapstructure:"base_url"`
	Selectors Selectors `yaml:"selectors" mapstructure:"selectors"`
}

// Selectors are the page queries used by the navigator. Values starting
// with "/" or "(" are XPath, anything else is CSS.
type Selectors struct {
	CookieConsent    string `yaml:"cookie_consent" mapstructure:"cookie_consent"`
	UsernameField    string `yaml:"username_field" mapstructure:"username_field"`
	PasswordField    string `yaml:"password_field" mapstructure:"password_field"`
	SubmitButton     string `yaml:"submit_button" mapstructure:"submit_button"`
	NotNowButton     string `yaml:"not_now_button" mapstructure:"not_now_button"`
	PostLinks        string `yaml:"post_links" mapstructure:"post_links"`
	AccountsTab      string `yaml:"accounts_tab" mapstructure:"accounts_tab"`
	AccountLinks     string `yaml:"account_links" mapstructure:"account_links"`
	ContactIndicator string `yaml:"contact_indicator" mapstructure:"contact_indicator"`
	Caption          string `yaml:"caption" mapstructure:"caption"`
	PaidPartnership  string `yaml:"paid_partnership" mapstructure:"paid_partnership"`
	CallToAction     string `yaml:"call_to_action" mapstructure:"call_to_action"`
	ViewAllComments  string `yaml:"view_all_comments" mapstructure:"view_all_comments"`
	LoadMoreComments string `yaml:"load_more_comments" mapstructure:"load_more_comments"`
	CommentText      string `yaml:"comment_text" mapstructure:"comment_text"`
	CommentAuthor    string `yaml:"comment_author" mapstructure:"comment_author"`
	Bio              string `yaml:"bio" mapstructure:"bio"`
	Followers        string `yaml:"followers" mapstructure:"followers"`
	Following        string `yaml:"following" mapstructure:"following"`
	PostsCount       string `yaml:"posts_count" mapstructure:"posts_count"`
	DisplayName      string `yaml:"display_name" mapstructure:"display_name"`
	PrivateMarker    string `yaml:"private_marker" mapstructure:"private_marker"`
}

// ScrapeConfig bounds the amount of work done per run
type ScrapeConfig struct {
	MaxAccounts        int           `yaml:"max_accounts" mapstructure:"max_accounts"`
	MaxPostsPerAccount int           `yaml:"max_posts_per_account" mapstructure:"max_posts_per_account"`
	SearchLimit        int           `yaml:"search_limit" mapstructure:"search_limit"`   // Accounts collected from the search page
	HashtagLimit       int           `yaml:"hashtag_limit" mapstructure:"hashtag_limit"` // Posts taken from the hashtag grid
	ExpandAttempts     int           `yaml:"expand_attempts" mapstructure:"expand_attempts"`
	ExpandDelay        time.Duration `yaml:"expand_delay" mapstructure:"expand_delay"`
	PageSettle         time.Duration `yaml:"page_settle" mapstructure:"page_settle"`   // Fixed wait after each navigation
	LoginSettle        time.Duration `yaml:"login_settle" mapstructure:"login_settle"` // Fixed wait after submitting credentials
	RespectRobots      bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
}

// DelayRange is a closed interval a random pause is drawn from
type DelayRange struct {
	Min time.Duration `yaml:"min" mapstructure:"min"`
	Max time.Duration `yaml:"max" mapstructure:"max"`
}

// PacingConfig is the open-loop rate limiting policy
type PacingConfig struct {
	Profile       DelayRange `yaml:"profile" mapstructure:"profile"`
	Post          DelayRange `yaml:"post" mapstructure:"post"`
	Account       DelayRange `yaml:"account" mapstructure:"account"`
	PagesPerMin   float64    `yaml:"pages_per_minute" mapstructure:"pages_per_minute"` // Ceiling on page loads
	PageLoadBurst int        `yaml:"page_load_burst" mapstructure:"page_load_burst"`
}

// ClassifierConfig holds the keyword lists and thresholds. Lists mix
// languages on purpose and are matched as lowercase substrings.
type ClassifierConfig struct {
	AdKeywords        []string `yaml:"ad_keywords" mapstructure:"ad_keywords"`
	PositiveKeywords  []string `yaml:"positive_keywords" mapstructure:"positive_keywords"`
	PositiveThreshold float64  `yaml:"positive_threshold" mapstructure:"positive_threshold"`
	MinCommentLength  int      `yaml:"min_comment_length" mapstructure:"min_comment_length"`
	MentionPrefix     string   `yaml:"mention_prefix" mapstructure:"mention_prefix"`
}

// BusinessConfig tunes the business-account predicate
type BusinessConfig struct {
	Enabled          bool `yaml:"enabled" mapstructure:"enabled"` // When false every account passes
	ContactIndicator bool `yaml:"contact_indicator" mapstructure:"contact_indicator"`
	ExternalLink     bool `yaml:"external_link" mapstructure:"external_link"`
}

// OutputConfig controls persisted artifacts
type OutputConfig struct {
	DataDir    string `yaml:"data_dir" mapstructure:"data_dir"`
	FilePrefix string `yaml:"file_prefix" mapstructure:"file_prefix"`
	Verbose    bool   `yaml:"-" mapstructure:"verbose"`
}

// CacheConfig controls the profile lookup cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// StoreConfig controls the optional SQLite run history
type StoreConfig struct {
	Path string `yaml:"path,omitempty" mapstructure:"path"` // Empty disables the history
}

// LLMConfig controls the optional lead digest
type LLMConfig struct {
	Enabled   bool   `yaml:"enabled" mapstructure:"enabled"`
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"-" mapstructure:"api_key"`
	BaseURL   string `yaml:"base_url,omitempty" mapstructure:"base_url"` // OpenAI-compatible endpoint
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"`             // seconds
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// DefaultAdKeywords are the caption markers that flag a post as an ad
func DefaultAdKeywords() []string {
	return []string{
		"ad", "anúncio", "publicidade", "patrocinado", "parceria paga",
		"sponsored", "promocional", "promoção", "#ad", "#parceriaremunerada",
		"#publi", "link na bio", "compre agora", "shop now",
	}
}

// DefaultPositiveKeywords are the comment markers that force a positive verdict
func DefaultPositiveKeywords() []string {
	return []string{
		"amei", "incrível", "excelente", "ótimo", "perfeito", "adorei",
		"maravilhoso", "top", "love", "amazing", "great", "perfect", "awesome",
	}
}

// DefaultSelectors returns the Instagram selectors
func DefaultSelectors() Selectors {
	return Selectors{
		CookieConsent:    "//button[contains(text(), 'Accept') or contains(text(), 'Allow')]",
		UsernameField:    "input[name='username']",
		PasswordField:    "input[name='password']",
		SubmitButton:     "//button[@type='submit']",
		NotNowButton:     "//button[contains(text(), 'Not Now')]",
		PostLinks:        "//a[contains(@href, '/p/')]",
		AccountsTab:      "//span[contains(text(), 'Accounts')]",
		AccountLinks:     "//a[contains(@href, '/') and not(contains(@href, '/explore/'))]",
		ContactIndicator: "//div[contains(text(), 'Contact') or contains(text(), 'Email') or contains(text(), 'Business')]",
		Caption:          "//div[contains(@class, 'C4VMK')]/span",
		PaidPartnership:  "//span[contains(text(), 'Paid partnership') or contains(text(), 'Parceria paga')]",
		CallToAction:     "//a[contains(text(), 'Shop Now') or contains(text(), 'Learn More') or contains(text(), 'Comprar') or contains(text(), 'Saiba mais')]",
		ViewAllComments:  "//span[contains(text(), 'View all comments') or contains(text(), 'View more comments')]",
		LoadMoreComments: "//button[contains(text(), 'Load more comments')]",
		CommentText:      "//ul/li/div/div/div[2]/span",
		CommentAuthor:    "//ul/li/div/div/div/h3/div/span/a",
		Bio:              "//div[contains(@class, '-vDIg')]/span",
		Followers:        "//a[contains(@href, '/followers/')]/span",
		Following:        "//a[contains(@href, '/following/')]/span",
		PostsCount:       "//span[contains(@class, 'g47SY')]",
		DisplayName:      "//h1",
		PrivateMarker:    "//h2[contains(text(), 'This Account is Private') or contains(text(), 'Esta conta é privada')]",
	}
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() *Config {
	return &Config{
		Browser: BrowserConfig{
			Headless:     false,
			UserAgent:    "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/90.0.4430.212 Safari/537.36",
			WindowWidth:  1920,
			WindowHeight: 1080,
			WaitTimeout:  10 * time.Second,
			NavTimeout:   30 * time.Second,
		},
		Site: SiteConfig{
			BaseURL:   "https://www.instagram.com",
			Selectors: DefaultSelectors(),
		},
		Scrape: ScrapeConfig{
			MaxAccounts:        5,
			MaxPostsPerAccount: 3,
			SearchLimit:        10,
			HashtagLimit:       9,
			ExpandAttempts:     3,
			ExpandDelay:        2 * time.Second,
			PageSettle:         3 * time.Second,
			LoginSettle:        5 * time.Second,
		},
		Pacing: PacingConfig{
			Profile:       DelayRange{Min: 1500 * time.Millisecond, Max: 3500 * time.Millisecond},
			Post:          DelayRange{Min: 2 * time.Second, Max: 5 * time.Second},
			Account:       DelayRange{Min: 3 * time.Second, Max: 7 * time.Second},
			PagesPerMin:   20,
			PageLoadBurst: 3,
		},
		Classifier: ClassifierConfig{
			AdKeywords:        DefaultAdKeywords(),
			PositiveKeywords:  DefaultPositiveKeywords(),
			PositiveThreshold: 0.3,
			MinCommentLength:  3,
			MentionPrefix:     "@",
		},
		Business: BusinessConfig{
			Enabled:          true,
			ContactIndicator: true,
			ExternalLink:     true,
		},
		Output: OutputConfig{
			DataDir:    "instagram_data",
			FilePrefix: "positive_profiles",
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       ".adscout-cache",
			MemoryTTL: time.Hour,
			DiskTTL:   24 * time.Hour,
		},
		LLM: LLMConfig{
			Model:     "gpt-4o-mini",
			Timeout:   30,
			MaxTokens: 600,
		},
	}
}
