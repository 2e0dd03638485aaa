// Package ratelimit implements a process-local fixed-window request limiter.
//
// Counters reset wholesale at window boundaries; this is not a sliding
// window or token bucket. State is volatile and per-process: horizontally
// scaled deployments each enforce their own independent quota.
package ratelimit

import (
	"container/list"
	"sync"
	"time"
)

// Clock supplies the current time. Injected so tests can drive the window.
type Clock func() time.Time

// entry tracks the request count for one client key within its window.
type entry struct {
	key         string
	count       int
	windowStart time.Time
}

// FixedWindowLimiter bounds requests per key per window. The tracked key
// set is capped: when a new key would exceed maxKeys, the least recently
// seen key is evicted.
type FixedWindowLimiter struct {
	mu      sync.Mutex
	window  time.Duration
	limit   int
	maxKeys int
	now     Clock

	entries map[string]*list.Element
	order   *list.List // front = most recently seen
}

// NewFixedWindowLimiter builds a limiter admitting up to limit requests per
// key per window, tracking at most maxKeys distinct keys. A nil clock uses
// time.Now.
func NewFixedWindowLimiter(limit int, window time.Duration, maxKeys int, now Clock) *FixedWindowLimiter {
	if now == nil {
		now = time.Now
	}
	return &FixedWindowLimiter{
		window:  window,
		limit:   limit,
		maxKeys: maxKeys,
		now:     now,
		entries: make(map[string]*list.Element),
		order:   list.New(),
	}
}

// Allow reports whether a request for key is admitted. A rejected request
// never consumes quota: the counter is only incremented on admission.
func (l *FixedWindowLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	elem, ok := l.entries[key]
	if !ok {
		l.insert(key, now)
		return true
	}

	e := elem.Value.(*entry)
	l.order.MoveToFront(elem)

	if now.Sub(e.windowStart) > l.window {
		e.count = 1
		e.windowStart = now
		return true
	}

	if e.count >= l.limit {
		return false
	}

	e.count++
	return true
}

// Remaining returns how many requests key may still make in its current
// window. Unknown keys have the full limit available.
func (l *FixedWindowLimiter) Remaining(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	elem, ok := l.entries[key]
	if !ok {
		return l.limit
	}
	e := elem.Value.(*entry)
	if l.now().Sub(e.windowStart) > l.window {
		return l.limit
	}
	rem := l.limit - e.count
	if rem < 0 {
		rem = 0
	}
	return rem
}

// ResetAt returns when the current window for key expires.
func (l *FixedWindowLimiter) ResetAt(key string) time.Time {
	l.mu.Lock()
	defer l.mu.Unlock()

	if elem, ok := l.entries[key]; ok {
		return elem.Value.(*entry).windowStart.Add(l.window)
	}
	return l.now().Add(l.window)
}

// Len returns the number of tracked keys.
func (l *FixedWindowLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.order.Len()
}

func (l *FixedWindowLimiter) insert(key string, now time.Time) {
	if l.maxKeys > 0 && l.order.Len() >= l.maxKeys {
		oldest := l.order.Back()
		if oldest != nil {
			delete(l.entries, oldest.Value.(*entry).key)
			l.order.Remove(oldest)
		}
	}
	l.entries[key] = l.order.PushFront(&entry{key: key, count: 1, windowStart: now})
}
