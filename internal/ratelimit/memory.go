package ratelimit

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	count int
	reset time.Time
}

// MemoryLimiter implements a fixed-window in-memory rate limiter.
type MemoryLimiter struct {
	mu       sync.Mutex
	counters map[string]*memoryEntry
}

// NewMemoryLimiter constructs a MemoryLimiter.
func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{
		counters: make(map[string]*memoryEntry),
	}
}

// Allow checks whether the request should be allowed in the client's current
// window. The first request of a window, or the first after the previous
// window expired, opens a fresh window anchored at now.
func (l *MemoryLimiter) Allow(_ context.Context, key string, limit int, window time.Duration, now time.Time) (Result, error) {
	if limit <= 0 || key == "" || window <= 0 {
		return Result{Allowed: true}, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	entry := l.counters[key]
	if entry == nil || now.After(entry.reset) {
		entry = &memoryEntry{count: 1, reset: now.Add(window)}
		l.counters[key] = entry
		return Result{Allowed: true, Remaining: limit - 1, Reset: entry.reset}, nil
	}
	if entry.count >= limit {
		return Result{Allowed: false, Remaining: 0, Reset: entry.reset}, nil
	}
	entry.count++
	return Result{Allowed: true, Remaining: limit - entry.count, Reset: entry.reset}, nil
}

// Sweep removes windows that expired before now and reports how many were
// evicted. Keeps the table bounded under churning client keys.
func (l *MemoryLimiter) Sweep(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	evicted := 0
	for key, entry := range l.counters {
		if now.After(entry.reset) {
			delete(l.counters, key)
			evicted++
		}
	}
	return evicted
}

// Janitor sweeps expired windows at the given interval until ctx is done.
func (l *MemoryLimiter) Janitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			l.Sweep(now)
		}
	}
}
