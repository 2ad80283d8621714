package datekey

import (
	"sync"
	"time"
)

// Clock supplies the current instant. It is injected everywhere "today" matters.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ManualClock is a settable clock for tests and replays.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

func NewManualClock(t time.Time) *ManualClock {
	return &ManualClock{now: t}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// AdvanceDays moves the clock forward by calendar days in loc, keeping the wall time.
func (c *ManualClock) AdvanceDays(n int, loc *time.Location) {
	c.mu.Lock()
	c.now = c.now.In(loc).AddDate(0, 0, n)
	c.mu.Unlock()
}

// Today is FromTime(clock.Now(), loc).
func Today(clock Clock, loc *time.Location) Key {
	return FromTime(clock.Now(), loc)
}
