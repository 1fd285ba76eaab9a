package content

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/eringen/devlog/markdown"
)

var (
	ErrMissingTitle = errors.New("missing required field \"title\"")
	ErrMissingDate  = errors.New("missing required date field")
	ErrInvalidDate  = errors.New("invalid date")
	ErrEmptyTag     = errors.New("tag with empty title")
	ErrDuplicateURL = errors.New("duplicate document url")
	ErrRootIndex    = errors.New("index file at the content root has no post url; move it into a subdirectory or rename it")
)

// LoadError ties a load failure to the source file that caused it.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Compiler turns a Markdown body into HTML.
type Compiler interface {
	Compile(src []byte) (string, error)
}

// Cache stores parsed documents between loads, keyed by relative path and
// source checksum.
type Cache interface {
	Lookup(path, checksum string) (Document, bool, error)
	Save(path, checksum string, doc Document) error
	Retain(paths []string) error
}

// Loader reads every *.md and *.mdx file below a directory.
type Loader struct {
	dir      string
	schema   DateSchema
	compiler Compiler
	cache    Cache
	logger   *slog.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithCache makes the loader reuse documents whose source is unchanged.
func WithCache(c Cache) LoaderOption {
	return func(l *Loader) {
		l.cache = c
	}
}

// WithCompiler replaces the default goldmark body compiler.
func WithCompiler(c Compiler) LoaderOption {
	return func(l *Loader) {
		l.compiler = c
	}
}

// WithLogger sets the logger used for cache diagnostics.
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = logger
	}
}

// NewLoader creates a Loader for dir using the given date schema.
func NewLoader(dir string, schema DateSchema, opts ...LoaderOption) *Loader {
	l := &Loader{
		dir:      dir,
		schema:   schema,
		compiler: markdown.New(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Dir returns the content directory.
func (l *Loader) Dir() string {
	return l.dir
}

// Load parses every document. Validation failures from all files are joined
// into the returned error; on any failure no documents are returned.
func (l *Loader) Load(ctx context.Context) ([]Document, error) {
	var paths []string
	err := filepath.WalkDir(l.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != l.dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if isContentFile(d.Name()) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", l.dir, err)
	}

	docs := make([]Document, 0, len(paths))
	seen := make(map[string]string, len(paths))
	rels := make([]string, 0, len(paths))
	var errs []error
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rel, err := filepath.Rel(l.dir, path)
		if err != nil {
			return nil, err
		}
		rel = filepath.ToSlash(rel)
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		doc, err := l.loadOne(rel, src)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if prev, ok := seen[doc.URL]; ok {
			errs = append(errs, &LoadError{Path: rel, Err: fmt.Errorf("%w %s (also used by %s)", ErrDuplicateURL, doc.URL, prev)})
			continue
		}
		seen[doc.URL] = rel
		rels = append(rels, rel)
		docs = append(docs, doc)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	if l.cache != nil {
		if err := l.cache.Retain(rels); err != nil {
			l.logger.Warn("build cache prune failed", "error", err)
		}
	}
	return docs, nil
}

func (l *Loader) loadOne(rel string, src []byte) (Document, error) {
	sum := l.checksum(src)
	if l.cache != nil {
		doc, ok, err := l.cache.Lookup(rel, sum)
		if err != nil {
			l.logger.Warn("build cache lookup failed", "path", rel, "error", err)
		} else if ok {
			l.logger.Debug("build cache hit", "path", rel)
			return doc, nil
		}
	}
	doc, err := l.Parse(rel, src)
	if err != nil {
		return Document{}, err
	}
	if l.cache != nil {
		if err := l.cache.Save(rel, sum, doc); err != nil {
			l.logger.Warn("build cache save failed", "path", rel, "error", err)
		}
	}
	return doc, nil
}

// checksum covers the schema as well as the source, since the schema decides
// which fields are read.
func (l *Loader) checksum(src []byte) string {
	h := sha256.New()
	h.Write([]byte(l.schema.String()))
	h.Write([]byte{0})
	h.Write(src)
	return hex.EncodeToString(h.Sum(nil))
}

type frontMatter struct {
	Title       string `yaml:"title"`
	Date        string `yaml:"date"`
	CreatedDate string `yaml:"created_date"`
	UpdatedDate string `yaml:"updated_date"`
	Description string `yaml:"description"`
	Tags        []Tag  `yaml:"tags"`
}

// Parse builds a Document from a source file. rel is the path relative to the
// content directory and determines the document URL.
func (l *Loader) Parse(rel string, src []byte) (Document, error) {
	var fm frontMatter
	if URLForPath(rel) == RootURL {
		return Document{}, &LoadError{Path: rel, Err: ErrRootIndex}
	}
	body, err := frontmatter.Parse(bytes.NewReader(src), &fm)
	if err != nil {
		return Document{}, &LoadError{Path: rel, Err: fmt.Errorf("front matter: %w", err)}
	}
	doc := Document{
		Title:       strings.TrimSpace(fm.Title),
		Schema:      l.schema,
		Description: strings.TrimSpace(fm.Description),
		URL:         URLForPath(rel),
		SourcePath:  rel,
	}
	if doc.Title == "" {
		return Document{}, &LoadError{Path: rel, Err: ErrMissingTitle}
	}
	if err := l.applyDates(&doc, fm); err != nil {
		return Document{}, &LoadError{Path: rel, Err: err}
	}
	doc.Tags = make([]Tag, 0, len(fm.Tags))
	for _, t := range fm.Tags {
		if t.Title == "" {
			return Document{}, &LoadError{Path: rel, Err: ErrEmptyTag}
		}
		doc.Tags = append(doc.Tags, t)
	}
	html, err := l.compiler.Compile(body)
	if err != nil {
		return Document{}, &LoadError{Path: rel, Err: fmt.Errorf("compile body: %w", err)}
	}
	doc.Body = Body{Raw: string(body), HTML: html}
	return doc, nil
}

func (l *Loader) applyDates(doc *Document, fm frontMatter) error {
	switch l.schema {
	case SchemaCreatedUpdated:
		created, err := requiredDate("created_date", fm.CreatedDate)
		if err != nil {
			return err
		}
		doc.CreatedDate = created
		if strings.TrimSpace(fm.UpdatedDate) != "" {
			updated, err := ParseDate(fm.UpdatedDate)
			if err != nil {
				return fmt.Errorf("updated_date: %w", err)
			}
			doc.UpdatedDate = updated
		}
	default:
		date, err := requiredDate("date", fm.Date)
		if err != nil {
			return err
		}
		doc.Date = date
	}
	return nil
}

func requiredDate(field, v string) (time.Time, error) {
	if strings.TrimSpace(v) == "" {
		return time.Time{}, fmt.Errorf("%w %q", ErrMissingDate, field)
	}
	t, err := ParseDate(v)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", field, err)
	}
	return t, nil
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate accepts a calendar date or a timestamp in the common front matter
// layouts.
func ParseDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w %q (use YYYY-MM-DD or RFC3339)", ErrInvalidDate, v)
}

func isContentFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".mdx":
		return true
	}
	return false
}
