// Package devlog is a personal blog engine built with Go, Echo, and templ.
// It loads Markdown/MDX posts with YAML front matter from a content
// directory, derives the tag index and post lists every page needs, and
// serves the pages together with an RSS feed and a sitemap.
//
// Pages are rendered through the ViewFuncs struct; DefaultViews wires the
// components from the views package, and callers may swap any of them.
package devlog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/eringen/devlog/content"
	"github.com/eringen/devlog/views"
)

// ViewFuncs holds the templ components the handlers render.
type ViewFuncs struct {
	Home        func(p views.HomePage) templ.Component
	PostList    func(p views.PostListPage) templ.Component
	Post        func(p views.PostPage) templ.Component
	TagList     func(p views.TagListPage) templ.Component
	NotFound    func(p views.StatusPage) templ.Component
	ServerError func(p views.StatusPage) templ.Component
}

// DefaultViews returns the built-in components.
func DefaultViews() ViewFuncs {
	return ViewFuncs{
		Home:        views.Home,
		PostList:    views.PostList,
		Post:        views.Post,
		TagList:     views.TagList,
		NotFound:    views.NotFound,
		ServerError: views.ServerError,
	}
}

// App is the central devlog application. It wires together the build cache,
// the content library, handlers, middleware, and templates.
type App struct {
	Config  SiteConfig
	Echo    *echo.Echo
	Store   *Store
	Library *Library
	Views   ViewFuncs
	Logger  *slog.Logger

	customRoutes  []func(*App)
	searchLimiter *SearchLimiter
}

// New creates a new devlog App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
		Views:  DefaultViews(),
		Logger: slog.Default(),
	}
	a.Echo.HideBanner = true
	a.Echo.HidePort = true

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Init opens the build cache, loads the content directory, and registers
// middleware and routes. Start calls it; tests call it directly and drive
// a.Echo with httptest.
func (a *App) Init(ctx context.Context) error {
	schema, err := a.Config.Schema()
	if err != nil {
		return fmt.Errorf("devlog: %w", err)
	}
	if _, err := os.Stat(a.Config.ContentDir); err != nil {
		return fmt.Errorf("devlog: content directory: %w", err)
	}

	loaderOpts := []content.LoaderOption{content.WithLogger(a.Logger)}
	if !a.Config.DisableCache {
		store, err := NewStore(a.Config.CacheDatabasePath)
		if err != nil {
			a.Logger.Warn("build cache unavailable, parsing every file", "path", a.Config.CacheDatabasePath, "error", err)
		} else {
			a.Store = store
			loaderOpts = append(loaderOpts, content.WithCache(store))
		}
	}

	loader := content.NewLoader(a.Config.ContentDir, schema, loaderOpts...)
	a.Library = NewLibrary(loader, a.Logger)
	if err := a.Library.Load(ctx); err != nil {
		return fmt.Errorf("devlog: load content: %w", err)
	}

	if a.Config.SearchRateLimit > 0 {
		a.searchLimiter = NewSearchLimiter(a.Config.SearchRateLimit, time.Minute)
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// Start initializes the app and serves until ctx is cancelled.
func (a *App) Start(ctx context.Context) error {
	if err := a.Init(ctx); err != nil {
		return err
	}

	if a.searchLimiter != nil {
		go a.searchLimiter.run(ctx)
	}

	if a.Config.Watch {
		go func() {
			if err := a.Library.Watch(ctx, 500*time.Millisecond); err != nil {
				a.Logger.Error("content watcher stopped", "error", err)
			}
		}()
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.Echo.Shutdown(shutdownCtx); err != nil {
			a.Logger.Error("shutdown", "error", err)
		}
	}()

	a.Logger.Info("listening", "addr", a.Config.Addr, "url", a.Config.URL)
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Framework stylesheet, then the user's static dir.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/devlog.css", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))
	e.Static("/public", a.Config.StaticDir)
	e.GET("/robots.txt", a.handleRobots)

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/", a.handleHome)
	e.GET("/blog/", a.handleBlog, a.searchLimitMiddleware)
	e.GET("/blogs", handleBlogRedirect)
	e.GET("/blogs/*", a.handlePost)
	e.GET("/tag/", a.handleTagList)
	e.GET("/tags/*", a.handleTag, a.searchLimitMiddleware)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
