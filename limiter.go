package devlog

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// SearchLimiter caps title searches per client IP within a sliding window.
// The search box re-queries on every keystroke, so the cap is generous; it
// only stops scripted hammering of the filter endpoints.
type SearchLimiter struct {
	mu     sync.Mutex
	hits   map[string][]time.Time
	max    int
	window time.Duration
}

// NewSearchLimiter creates a SearchLimiter that allows max searches per window.
func NewSearchLimiter(max int, window time.Duration) *SearchLimiter {
	return &SearchLimiter{
		hits:   make(map[string][]time.Time),
		max:    max,
		window: window,
	}
}

// Allow reports whether ip is under the limit and, if so, records the search.
func (l *SearchLimiter) Allow(ip string) bool {
	now := time.Now()
	cutoff := now.Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	kept := recent(l.hits[ip], cutoff)
	if len(kept) >= l.max {
		l.hits[ip] = kept
		return false
	}
	l.hits[ip] = append(kept, now)
	return true
}

// Prune forgets every IP whose searches have all left the window.
func (l *SearchLimiter) Prune() {
	cutoff := time.Now().Add(-l.window)
	l.mu.Lock()
	defer l.mu.Unlock()
	for ip, hits := range l.hits {
		if kept := recent(hits, cutoff); len(kept) == 0 {
			delete(l.hits, ip)
		} else {
			l.hits[ip] = kept
		}
	}
}

// Tracked returns how many IPs currently have searches on record.
func (l *SearchLimiter) Tracked() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.hits)
}

// run prunes once per window until ctx is done.
func (l *SearchLimiter) run(ctx context.Context) {
	ticker := time.NewTicker(l.window)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Prune()
		}
	}
}

func recent(hits []time.Time, cutoff time.Time) []time.Time {
	kept := hits[:0]
	for _, t := range hits {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}

// searchLimitMiddleware applies the limiter to requests that carry a ?q
// filter. Plain page views are never limited.
func (a *App) searchLimitMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if a.searchLimiter == nil || c.QueryParam("q") == "" {
			return next(c)
		}
		if !a.searchLimiter.Allow(c.RealIP()) {
			return echo.NewHTTPError(http.StatusTooManyRequests, "too many searches, slow down")
		}
		return next(c)
	}
}
