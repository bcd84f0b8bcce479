// Package ratelimit counts attempts per key in fixed windows.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/thejerf/abtime"
)

// Limiter reports whether another attempt for key is allowed in the
// current window. Each call counts as an attempt.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type window struct {
	start time.Time
	count int
}

// Memory is a process-local fixed-window limiter.
type Memory struct {
	limit  int
	period time.Duration
	clock  abtime.AbstractTime

	mu        sync.Mutex
	windows   map[string]*window
	lastSweep time.Time
}

// NewMemory allows limit attempts per key every period. A nil clock means
// real time.
func NewMemory(limit int, period time.Duration, clock abtime.AbstractTime) *Memory {
	if clock == nil {
		clock = abtime.NewRealTime()
	}
	return &Memory{
		limit:   limit,
		period:  period,
		clock:   clock,
		windows: map[string]*window{},
	}
}

func (m *Memory) Allow(_ context.Context, key string) (bool, error) {
	now := m.clock.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.windows[key]
	if !ok || now.Sub(w.start) >= m.period {
		if now.Sub(m.lastSweep) >= m.period {
			m.sweep(now)
		}
		w = &window{start: now}
		m.windows[key] = w
	}
	w.count++
	return w.count <= m.limit, nil
}

// sweep drops expired windows so idle keys do not accumulate. It runs at
// most once per period, so a flood of new keys costs one scan per window
// rather than one per key.
func (m *Memory) sweep(now time.Time) {
	m.lastSweep = now
	for k, w := range m.windows {
		if now.Sub(w.start) >= m.period {
			delete(m.windows, k)
		}
	}
}
