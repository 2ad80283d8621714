// Package engine owns the daily tracking rules: counters that reset at local
// midnight, habit completion and streaks, once-per-day goal events, and the
// mood log. All state lives in a storage.Provider; the engine keeps none.
package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/aura/internal/datekey"
	"github.com/julianstephens/aura/internal/storage"
)

type Engine struct {
	// mu serializes every read-modify-write against the store
	mu           sync.Mutex
	store        storage.Provider
	clock        datekey.Clock
	loc          *time.Location
	historyLimit int
	newID        func() string
}

type Option func(*Engine)

// WithClock replaces the system clock, e.g. with a datekey.ManualClock in tests
func WithClock(c datekey.Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithLocation sets the timezone that defines a "day"
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) { e.loc = loc }
}

// WithHistoryLimit caps how many past daily totals are kept per metric
func WithHistoryLimit(n int) Option {
	return func(e *Engine) { e.historyLimit = n }
}

// WithIDGenerator replaces uuid generation for habit and mood ids
func WithIDGenerator(f func() string) Option {
	return func(e *Engine) { e.newID = f }
}

func New(store storage.Provider, opts ...Option) *Engine {
	e := &Engine{
		store:        store,
		clock:        datekey.SystemClock{},
		loc:          time.Local,
		historyLimit: defaultHistoryLimit,
		newID:        func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.loc == nil {
		e.loc = time.Local
	}
	return e
}

// Today returns the current DateKey in the engine's timezone
func (e *Engine) Today() datekey.Key {
	return datekey.Today(e.clock, e.loc)
}

func (e *Engine) Location() *time.Location {
	return e.loc
}

func (e *Engine) Now() time.Time {
	return e.clock.Now().In(e.loc)
}

// Warning is a recoverable problem found while reading stored state. The
// operation still completed, using the documented fallback.
type Warning struct {
	Key string
	Err error
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %v", w.Key, w.Err)
}
