package engine

import (
	"fmt"
	"math"
	"strconv"

	"github.com/julianstephens/aura/internal/datekey"
	"github.com/julianstephens/aura/internal/errors"
	"github.com/julianstephens/aura/internal/logger"
	"github.com/julianstephens/aura/internal/models"
)

// CounterResult is what a counter write reports back to the caller
type CounterResult struct {
	Metric Metric
	Day    datekey.Key
	Value  int
	Goal   int
	// GoalAchievedNow is true only for the write that first reaches the goal today
	GoalAchievedNow bool
	Warnings        []Warning
}

// counterState is the raw stored state of a counter
type counterState struct {
	value int
	day   datekey.Key
}

// todayValue applies the lazy reset: a value stamped with another day reads as 0
func (s counterState) todayValue(today datekey.Key) int {
	if s.day != today {
		return 0
	}
	return s.value
}

// Read returns today's value of m. It never writes: a stale counter reads as 0
// until the next write stamps today.
func (e *Engine) Read(m Metric) (int, error) {
	if err := m.validate(); err != nil {
		return 0, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	st, err := e.loadCounter(m)
	if err != nil {
		return 0, err
	}
	return st.todayValue(e.Today()), nil
}

// Set stores value as today's count for m.
func (e *Engine) Set(m Metric, value int) (CounterResult, error) {
	if err := m.validate(); err != nil {
		return CounterResult{}, err
	}
	if value < 0 {
		return CounterResult{}, errors.InvalidArgumentf("%s value must not be negative, got %d", m, value)
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.writeCounter(m, value, nil)
}

// Increment adds delta (which may be negative) to today's count. The result is
// clamped at 0; a sum beyond the int range fails with errors.ErrRange.
func (e *Engine) Increment(m Metric, delta int) (CounterResult, error) {
	if err := m.validate(); err != nil {
		return CounterResult{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.incrementLocked(m, delta, nil)
}

func (e *Engine) incrementLocked(m Metric, delta int, extra map[string]string) (CounterResult, error) {
	st, err := e.loadCounter(m)
	if err != nil {
		return CounterResult{}, err
	}
	current := st.todayValue(e.Today())

	next, err := addClamped(current, delta)
	if err != nil {
		return CounterResult{}, fmt.Errorf("%s: %w", m, err)
	}
	return e.writeCounter(m, next, extra)
}

// addClamped returns max(0, a+b) for a >= 0, or ErrRange if a+b overflows
func addClamped(a, b int) (int, error) {
	if b > 0 && a > math.MaxInt-b {
		return 0, errors.Rangef("%d + %d overflows", a, b)
	}
	// a >= 0, so a+b cannot underflow
	sum := a + b
	if sum < 0 {
		return 0, nil
	}
	return sum, nil
}

func (e *Engine) loadCounter(m Metric) (counterState, error) {
	var st counterState

	raw, ok, err := e.store.Get(m.valueKey())
	if err != nil {
		return st, fmt.Errorf("read %s: %w", m.valueKey(), err)
	}
	if ok {
		n, perr := strconv.Atoi(raw)
		if perr != nil || n < 0 {
			logger.Warn("Unreadable counter value, using 0", "key", m.valueKey(), "value", raw)
			n = 0
		}
		st.value = n
	}

	rawDay, ok, err := e.store.Get(m.dayKey())
	if err != nil {
		return st, fmt.Errorf("read %s: %w", m.dayKey(), err)
	}
	if ok && rawDay != "" {
		day, perr := datekey.Parse(rawDay)
		if perr != nil {
			// An unknown day can never be today, so the value reads as 0
			logger.Warn("Unreadable counter day", "key", m.dayKey(), "value", rawDay)
		} else {
			st.day = day
		}
	}
	return st, nil
}

// writeCounter persists value for today together with lastUpdateDay, the
// archived total of a stale day, the goal flag when it is crossed, and any
// extra keys, all in one batch.
func (e *Engine) writeCounter(m Metric, value int, extra map[string]string) (CounterResult, error) {
	today := e.Today()
	res := CounterResult{Metric: m, Day: today, Value: value}

	st, err := e.loadCounter(m)
	if err != nil {
		return res, err
	}

	batch := map[string]string{
		m.valueKey(): strconv.Itoa(value),
		m.dayKey():   today.String(),
	}
	for k, v := range extra {
		batch[k] = v
	}

	if !st.day.IsZero() && st.day.Before(today) && st.value > 0 {
		hist, err := loadCollection[models.HistoryEntry](e.store, m.historyKey())
		if err != nil {
			return res, err
		}
		res.Warnings = append(res.Warnings, hist.warnings()...)
		hist.items = appendHistory(hist.items, models.HistoryEntry{Day: st.day, Value: st.value}, e.historyLimit)
		hb, err := hist.batch()
		if err != nil {
			return res, err
		}
		for k, v := range hb {
			batch[k] = v
		}
		logger.Debug("Counter rolled over", "metric", m, "day", st.day, "value", st.value)
	}

	goal, err := e.goalLocked(m)
	if err != nil {
		return res, err
	}
	res.Goal = goal

	if value >= goal {
		fired, err := e.goalFlagSet(m, today)
		if err != nil {
			return res, err
		}
		if !fired {
			batch[m.goalFlagKey(today)] = "true"
			res.GoalAchievedNow = true
		}
	}

	if err := e.store.SetMany(batch); err != nil {
		return res, fmt.Errorf("write %s: %w", m, err)
	}
	if res.GoalAchievedNow {
		logger.Debug("Goal achieved", "metric", m, "day", today, "value", value, "goal", goal)
	}
	return res, nil
}

// appendHistory keeps entries ordered by day with one entry per day, newest
// last, trimmed to limit.
func appendHistory(entries []models.HistoryEntry, entry models.HistoryEntry, limit int) []models.HistoryEntry {
	out := make([]models.HistoryEntry, 0, len(entries)+1)
	inserted := false
	for _, h := range entries {
		if !inserted && entry.Day.Before(h.Day) {
			out = append(out, entry)
			inserted = true
		}
		if h.Day == entry.Day {
			continue
		}
		out = append(out, h)
	}
	if !inserted {
		out = append(out, entry)
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out
}

// History returns the archived daily totals of m, oldest first.
func (e *Engine) History(m Metric) ([]models.HistoryEntry, []Warning, error) {
	if err := m.validate(); err != nil {
		return nil, nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	hist, err := loadCollection[models.HistoryEntry](e.store, m.historyKey())
	if err != nil {
		return nil, nil, err
	}
	return hist.items, hist.warnings(), nil
}

// Reset sets today's count of m to 0 and clears today's goal flag so the goal
// can be celebrated again.
func (e *Engine) Reset(m Metric) (CounterResult, error) {
	if err := m.validate(); err != nil {
		return CounterResult{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.writeCounter(m, 0, map[string]string{m.goalFlagKey(e.Today()): "false"})
}
