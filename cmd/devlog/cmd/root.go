// Package cmd implements the devlog command line.
package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eringen/devlog"
)

var (
	cfgFile string
	verbose bool
	cfg     devlog.SiteConfig
)

// GetConfig returns the loaded configuration.
func GetConfig() devlog.SiteConfig {
	return cfg
}

var rootCmd = &cobra.Command{
	Use:   "devlog",
	Short: "devlog: a Markdown blog engine",
	Long: `devlog serves a directory of Markdown/MDX posts as a blog: a home page
with the latest posts and popular tags, per-tag listings with title search,
an RSS feed and a sitemap.

Commands:
  serve    Start the blog server
  tags     Print the tag index
  posts    List posts, optionally filtered by tag or title
  cache    Inspect or purge the build cache
  new      Create a new site directory`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig, initLogger)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().String("content-dir", "", "directory holding the posts")
	cobra.CheckErr(bindFlag("content_dir", rootCmd, "content-dir"))
}

// bindFlag ties a config key to a flag of cmd, local or persistent, so the
// flag wins over config files and the environment when it is set.
func bindFlag(key string, cmd *cobra.Command, name string) error {
	f := cmd.Flags().Lookup(name)
	if f == nil {
		f = cmd.PersistentFlags().Lookup(name)
	}
	if f == nil {
		return fmt.Errorf("bind %s: command %q has no --%s flag", key, cmd.Name(), name)
	}
	return viper.BindPFlag(key, f)
}

func initLogger() {
	level := slog.LevelInfo
	switch strings.ToLower(viper.GetString("log_level")) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

func initConfig() {
	// .env values land in the process environment and are picked up below
	// through the DEVLOG_ prefix.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to read .env", "error", err)
	}

	setDefaults(devlog.DefaultConfig())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
	}

	// DEVLOG_CONTENT_DIR -> content_dir
	viper.SetEnvPrefix("DEVLOG")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("config file error", "error", err)
		}
	}

	if err := viper.Unmarshal(&cfg); err != nil {
		slog.Warn("failed to parse config", "error", err)
	}
}

// setDefaults registers every config key with viper so AutomaticEnv can
// resolve it during Unmarshal.
func setDefaults(d devlog.SiteConfig) {
	viper.SetDefault("name", d.Name)
	viper.SetDefault("url", d.URL)
	viper.SetDefault("description", d.Description)
	viper.SetDefault("author", d.Author)
	viper.SetDefault("addr", d.Addr)
	viper.SetDefault("content_dir", d.ContentDir)
	viper.SetDefault("static_dir", d.StaticDir)
	viper.SetDefault("date_schema", "date")
	viper.SetDefault("recent_count", d.RecentCount)
	viper.SetDefault("popular_tag_count", d.PopularTagCount)
	viper.SetDefault("cache_database_path", d.CacheDatabasePath)
	viper.SetDefault("disable_cache", d.DisableCache)
	viper.SetDefault("watch", d.Watch)
	viper.SetDefault("search_rate_limit", d.SearchRateLimit)
	viper.SetDefault("log_level", "info")
}
