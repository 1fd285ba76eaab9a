package devlog

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/eringen/devlog/content"
)

// Snapshot is one loaded document collection. Its Documents slice is never
// modified after the snapshot is published, so it can be shared by any number
// of concurrent readers.
type Snapshot struct {
	Documents []content.Document
	LoadedAt  time.Time

	byURL map[string]int
}

func newSnapshot(docs []content.Document, at time.Time) *Snapshot {
	s := &Snapshot{
		Documents: docs,
		LoadedAt:  at,
		byURL:     make(map[string]int, len(docs)),
	}
	for i, d := range docs {
		s.byURL[d.URL] = i
	}
	return s
}

// Document returns the document served at url.
func (s *Snapshot) Document(url string) (content.Document, bool) {
	i, ok := s.byURL[url]
	if !ok {
		return content.Document{}, false
	}
	return s.Documents[i], true
}

// Library owns the current Snapshot. Load replaces it wholesale; readers
// keep whatever snapshot they already hold.
type Library struct {
	mu     sync.RWMutex
	snap   *Snapshot
	loadMu sync.Mutex
	loader *content.Loader
	logger *slog.Logger
}

// NewLibrary creates an empty Library backed by loader.
func NewLibrary(loader *content.Loader, logger *slog.Logger) *Library {
	if logger == nil {
		logger = slog.Default()
	}
	return &Library{
		snap:   newSnapshot(nil, time.Time{}),
		loader: loader,
		logger: logger,
	}
}

// Load reads the content directory and publishes the result. On failure the
// previous snapshot stays in place.
func (l *Library) Load(ctx context.Context) error {
	l.loadMu.Lock()
	defer l.loadMu.Unlock()

	start := time.Now()
	docs, err := l.loader.Load(ctx)
	if err != nil {
		return err
	}
	snap := newSnapshot(docs, time.Now())

	l.mu.Lock()
	l.snap = snap
	l.mu.Unlock()

	l.logger.Info("content loaded", "dir", l.loader.Dir(), "documents", len(docs), "took", time.Since(start))
	return nil
}

// Snapshot returns the current snapshot. It is never nil.
func (l *Library) Snapshot() *Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.snap
}
