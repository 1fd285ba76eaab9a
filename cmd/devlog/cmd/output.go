package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"gopkg.in/yaml.v3"

	"github.com/eringen/devlog"
	"github.com/eringen/devlog/content"
)

// writeOutput encodes v as JSON or YAML, or calls text for the default
// human-readable form.
func writeOutput(w io.Writer, format string, v any, text func(io.Writer) error) error {
	switch format {
	case "", "text":
		return text(w)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown output format %q (want text, json or yaml)", format)
}

// loadDocuments runs the content loader with the configured schema, using
// the build cache unless it is disabled.
func loadDocuments(ctx context.Context, c devlog.SiteConfig) ([]content.Document, error) {
	schema, err := c.Schema()
	if err != nil {
		return nil, err
	}
	opts := []content.LoaderOption{content.WithLogger(slog.Default())}
	if !c.DisableCache {
		store, err := devlog.NewStore(c.CacheDatabasePath)
		if err != nil {
			slog.Warn("build cache unavailable, parsing every file", "path", c.CacheDatabasePath, "error", err)
		} else {
			defer store.Close()
			opts = append(opts, content.WithCache(store))
		}
	}
	return content.NewLoader(c.ContentDir, schema, opts...).Load(ctx)
}
