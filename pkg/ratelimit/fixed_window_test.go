package ratelimit_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/Alfiasnyah78/labubu-projectv2/pkg/ratelimit"

	"github.com/stretchr/testify/assert"
)

// fakeClock drives the limiter's view of time from the test.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)}
}

func TestFixedWindowAdmitsUpToLimit(t *testing.T) {
	clock := newFakeClock()
	l := ratelimit.NewFixedWindowLimiter(10, time.Hour, 100, clock.Now)

	for i := 1; i <= 10; i++ {
		assert.True(t, l.Allow("1.2.3.4"), "request %d should be admitted", i)
	}
	assert.False(t, l.Allow("1.2.3.4"), "11th request within the window should be rejected")
}

func TestFixedWindowResetsAfterWindowElapses(t *testing.T) {
	clock := newFakeClock()
	l := ratelimit.NewFixedWindowLimiter(10, time.Hour, 100, clock.Now)

	for i := 0; i < 10; i++ {
		l.Allow("1.2.3.4")
	}
	assert.False(t, l.Allow("1.2.3.4"))

	clock.Advance(time.Hour + time.Second)
	assert.True(t, l.Allow("1.2.3.4"), "first request of the new window should be admitted")
	assert.Equal(t, 9, l.Remaining("1.2.3.4"))
}

func TestFixedWindowRejectionDoesNotConsumeQuota(t *testing.T) {
	clock := newFakeClock()
	l := ratelimit.NewFixedWindowLimiter(2, time.Hour, 100, clock.Now)

	assert.True(t, l.Allow("k"))
	assert.True(t, l.Allow("k"))

	// Hammering the limiter while capped must not extend the rejection
	// beyond the window.
	for i := 0; i < 50; i++ {
		assert.False(t, l.Allow("k"))
	}
	assert.Equal(t, 0, l.Remaining("k"))

	clock.Advance(time.Hour + time.Minute)
	assert.True(t, l.Allow("k"))
}

func TestFixedWindowKeysAreIndependent(t *testing.T) {
	clock := newFakeClock()
	l := ratelimit.NewFixedWindowLimiter(1, time.Hour, 100, clock.Now)

	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))
	assert.True(t, l.Allow("b"), "a different key has its own bucket")
}

func TestFixedWindowEvictsLeastRecentlySeenKey(t *testing.T) {
	clock := newFakeClock()
	l := ratelimit.NewFixedWindowLimiter(1, time.Hour, 3, clock.Now)

	l.Allow("a")
	l.Allow("b")
	l.Allow("c")
	assert.Equal(t, 3, l.Len())

	// Touch "a" so "b" becomes the coldest, then insert a fourth key.
	assert.False(t, l.Allow("a"))
	l.Allow("d")

	assert.Equal(t, 3, l.Len())
	assert.True(t, l.Allow("b"), "evicted key starts a fresh bucket")
	assert.False(t, l.Allow("a"), "retained key keeps its exhausted bucket")
}

func TestFixedWindowResetAt(t *testing.T) {
	clock := newFakeClock()
	l := ratelimit.NewFixedWindowLimiter(10, time.Hour, 100, clock.Now)

	l.Allow("k")
	assert.Equal(t, clock.Now().Add(time.Hour), l.ResetAt("k"))
}

func BenchmarkAllow(b *testing.B) {
	l := ratelimit.NewFixedWindowLimiter(10, time.Hour, 1024, nil)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		l.Allow(fmt.Sprintf("10.0.%d.%d", i%256, i%1024))
	}
}
