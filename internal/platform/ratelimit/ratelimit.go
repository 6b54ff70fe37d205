// Package ratelimit counts requests per key in fixed windows
package ratelimit

import (
	"context"
	"sync"
	"time"
)

const defaultWindow = time.Minute

// Decision is the outcome of one Allow call
type Decision struct {
	Allowed   bool
	Count     int
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Limiter admits or rejects one hit for key
type Limiter interface {
	Allow(ctx context.Context, key string, limit int) Decision
}

func decide(count, limit int, resetAt time.Time) Decision {
	return Decision{
		Allowed:   count <= limit,
		Count:     count,
		Limit:     limit,
		Remaining: max(limit-count, 0),
		ResetAt:   resetAt,
	}
}

// Memory is a process local Limiter
type Memory struct {
	mu        sync.Mutex
	window    time.Duration
	items     map[string]window
	nextSweep time.Time
	now       func() time.Time
}

type window struct {
	count   int
	resetAt time.Time
}

// NewMemory returns a Memory limiter, window <= 0 means one minute
func NewMemory(w time.Duration) *Memory {
	if w <= 0 {
		w = defaultWindow
	}
	return &Memory{window: w, items: map[string]window{}, now: time.Now}
}

// Allow counts one hit. limit <= 0 is treated as 1
func (m *Memory) Allow(_ context.Context, key string, limit int) Decision {
	limit = max(limit, 1)
	now := m.now().UTC()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.sweep(now)
	cur, ok := m.items[key]
	if !ok || now.After(cur.resetAt) {
		cur = window{resetAt: now.Add(m.window)}
	}
	cur.count++
	m.items[key] = cur
	return decide(cur.count, limit, cur.resetAt)
}

// sweep drops expired windows, at most once per window. Callers hold mu
func (m *Memory) sweep(now time.Time) {
	if now.Before(m.nextSweep) {
		return
	}
	m.nextSweep = now.Add(m.window)
	for k, v := range m.items {
		if now.After(v.resetAt) {
			delete(m.items, k)
		}
	}
}
