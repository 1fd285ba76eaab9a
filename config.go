package devlog

import (
	"log/slog"

	"github.com/eringen/devlog/content"
)

// SiteConfig holds all configuration for a devlog site.
type SiteConfig struct {
	Name        string `mapstructure:"name"`        // Site name (default "Blog")
	URL         string `mapstructure:"url"`         // Canonical URL (default "http://localhost:3000")
	Description string `mapstructure:"description"` // Site description for RSS and meta tags
	Author      string `mapstructure:"author"`      // Author name for JSON-LD

	Addr       string `mapstructure:"addr"`        // Listen address (default ":3000")
	ContentDir string `mapstructure:"content_dir"` // Markdown/MDX source directory (default "blogs")
	StaticDir  string `mapstructure:"static_dir"`  // User static assets served under /public (default "public")
	DateSchema string `mapstructure:"date_schema"` // "date" (default) or "created_updated"

	RecentCount     int `mapstructure:"recent_count"`      // Posts on the home page (default 3, negative hides the panel)
	PopularTagCount int `mapstructure:"popular_tag_count"` // Tags on the home page (default 3, negative hides the panel)

	CacheDatabasePath string `mapstructure:"cache_database_path"` // Build cache SQLite path (default "data/build-cache.db")
	DisableCache      bool   `mapstructure:"disable_cache"`       // Parse every file on every load

	Watch bool `mapstructure:"watch"` // Reload when the content directory changes

	SearchRateLimit int `mapstructure:"search_rate_limit"` // Title searches per IP per minute (default 120, negative disables)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.ContentDir == "" {
		c.ContentDir = "blogs"
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
	if c.RecentCount == 0 {
		c.RecentCount = 3
	}
	if c.PopularTagCount == 0 {
		c.PopularTagCount = 3
	}
	if c.SearchRateLimit == 0 {
		c.SearchRateLimit = 120
	}
	if c.CacheDatabasePath == "" {
		c.CacheDatabasePath = "data/build-cache.db"
	}
}

// DefaultConfig returns a SiteConfig with every default applied.
func DefaultConfig() SiteConfig {
	var c SiteConfig
	c.setDefaults()
	return c
}

// Schema parses DateSchema.
func (c SiteConfig) Schema() (content.DateSchema, error) {
	return content.ParseDateSchema(c.DateSchema)
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App after the built-in routes are registered.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithViews replaces the default page components.
func WithViews(v ViewFuncs) Option {
	return func(a *App) {
		a.Views = v
	}
}

// WithLogger sets the logger used by the app and its request log.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		a.Logger = l
	}
}
