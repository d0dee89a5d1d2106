// Package ratelimit implements fixed-window submission counters keyed by
// client identifier.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// SharedKey is the bucket used when no client identifier could be derived.
const SharedKey = "unknown"

// Config holds the window settings shared by all limiter implementations.
type Config struct {
	// Submissions admitted per window (inclusive)
	Limit int
	// Window duration
	Window time.Duration
}

// DefaultConfig admits 5 submissions per hour.
func DefaultConfig() Config {
	return Config{Limit: 5, Window: time.Hour}
}

func (c Config) normalized() Config {
	def := DefaultConfig()
	if c.Limit <= 0 {
		c.Limit = def.Limit
	}
	if c.Window <= 0 {
		c.Window = def.Window
	}
	return c
}

// record tracks the count of a single key within its current window
type record struct {
	mu          sync.Mutex
	count       int
	windowStart time.Time
}

// MemoryLimiter is a process-local fixed-window limiter.
type MemoryLimiter struct {
	config  Config
	records sync.Map // key -> *record
	now     func() time.Time
}

// MemoryOption configures a MemoryLimiter.
type MemoryOption func(*MemoryLimiter)

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(l *MemoryLimiter) {
		l.now = now
	}
}

// NewMemoryLimiter creates an in-memory limiter.
func NewMemoryLimiter(cfg Config, opts ...MemoryOption) *MemoryLimiter {
	l := &MemoryLimiter{
		config: cfg.normalized(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Admit starts a fresh window for new or expired keys, otherwise counts the
// call and admits while the count is at or below the limit.
func (l *MemoryLimiter) Admit(_ context.Context, key string) bool {
	count, _ := l.hit(normalizeKey(key))
	return count <= l.config.Limit
}

// hit increments the counter for key and returns the new count and the window end.
func (l *MemoryLimiter) hit(key string) (int, time.Time) {
	now := l.now()

	recI, _ := l.records.LoadOrStore(key, &record{windowStart: now})
	rec := recI.(*record)

	rec.mu.Lock()
	defer rec.mu.Unlock()

	// Reset if window expired
	if rec.count == 0 || !now.Before(rec.windowStart.Add(l.config.Window)) {
		rec.count = 0
		rec.windowStart = now
	}

	rec.count++
	return rec.count, rec.windowStart.Add(l.config.Window)
}

// Cleanup drops every record whose window has expired and returns how many were removed.
// A hit racing with the delete lands on the orphaned record, which can only over-admit.
func (l *MemoryLimiter) Cleanup() int {
	now := l.now()
	removed := 0
	l.records.Range(func(key, value any) bool {
		rec := value.(*record)
		rec.mu.Lock()
		if !now.Before(rec.windowStart.Add(l.config.Window)) {
			l.records.Delete(key)
			removed++
		}
		rec.mu.Unlock()
		return true
	})
	return removed
}

// StartJanitor runs Cleanup every interval until ctx is done.
func (l *MemoryLimiter) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				l.Cleanup()
			}
		}
	}()
}

func normalizeKey(key string) string {
	if key == "" {
		return SharedKey
	}
	return key
}
