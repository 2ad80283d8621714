package engine

import (
	"strings"

	"github.com/julianstephens/aura/internal/constants"
	"github.com/julianstephens/aura/internal/datekey"
	"github.com/julianstephens/aura/internal/errors"
	"github.com/julianstephens/aura/internal/models"
)

// HabitStatus is a habit as seen on a given day
type HabitStatus struct {
	models.Habit
	CompletedToday bool
	Streak         int
	StreakAtRisk   bool
	BestRun        int
}

func statusOf(h models.Habit, today datekey.Key) HabitStatus {
	return HabitStatus{
		Habit:          h,
		CompletedToday: h.IsCompletedOn(today),
		Streak:         ComputeStreak(h.CompletedDates, today),
		StreakAtRisk:   StreakAtRisk(h.CompletedDates, today),
		BestRun:        BestRun(h.CompletedDates),
	}
}

// HabitStats summarizes all habits for today
type HabitStats struct {
	Total          int
	CompletedToday int
	// CompletionRate is CompletedToday as a whole percentage of Total
	CompletionRate int
	LongestStreak  int
	Habits         []HabitStatus
	Warnings       []Warning
}

func (e *Engine) loadHabits() (*collection[models.Habit], error) {
	c, err := loadCollection[models.Habit](e.store, constants.KeyHabits)
	if err != nil {
		return nil, err
	}
	for i := range c.items {
		c.items[i].NormalizeDates()
	}
	return c, nil
}

// findHabit matches ref against ids first, then names case-insensitively
func findHabit(habits []models.Habit, ref string) int {
	ref = strings.TrimSpace(ref)
	for i, h := range habits {
		if h.ID == ref {
			return i
		}
	}
	for i, h := range habits {
		if strings.EqualFold(h.Name, ref) {
			return i
		}
	}
	return -1
}

func nameTaken(habits []models.Habit, name string, except int) bool {
	for i, h := range habits {
		if i != except && strings.EqualFold(h.Name, name) {
			return true
		}
	}
	return false
}

// AddHabit creates a habit. Names must be non-empty and unique (ignoring case).
func (e *Engine) AddHabit(name, description string) (models.Habit, []Warning, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Habit{}, nil, errors.InvalidArgumentf("habit name must not be empty")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	c, err := e.loadHabits()
	if err != nil {
		return models.Habit{}, nil, err
	}
	warnings := c.warnings()
	if nameTaken(c.items, name, -1) {
		return models.Habit{}, warnings, errors.InvalidArgumentf("habit %q already exists", name)
	}

	h := models.Habit{
		ID:             e.newID(),
		Name:           name,
		Description:    strings.TrimSpace(description),
		CreatedAt:      e.clock.Now().UTC(),
		CompletedDates: []datekey.Key{},
	}
	c.items = append(c.items, h)
	if err := c.save(e.store); err != nil {
		return models.Habit{}, warnings, err
	}
	return h, warnings, nil
}

// ListHabits returns every habit with its status for today, in creation order.
func (e *Engine) ListHabits() ([]HabitStatus, []Warning, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	c, err := e.loadHabits()
	if err != nil {
		return nil, nil, err
	}
	today := e.Today()
	out := make([]HabitStatus, len(c.items))
	for i, h := range c.items {
		out[i] = statusOf(h, today)
	}
	return out, c.warnings(), nil
}

// SetHabitCompleted marks or unmarks today for the habit named or identified
// by ref. A missing habit yields errors.ErrNotFound and changes nothing.
func (e *Engine) SetHabitCompleted(ref string, done bool) (HabitStatus, []Warning, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	c, err := e.loadHabits()
	if err != nil {
		return HabitStatus{}, nil, err
	}
	warnings := c.warnings()

	i := findHabit(c.items, ref)
	if i < 0 {
		return HabitStatus{}, warnings, errors.NotFoundf("habit %q", ref)
	}

	today := e.Today()
	before := c.items[i]
	if done {
		c.items[i] = MarkCompleted(before, today)
	} else {
		c.items[i] = MarkIncomplete(before, today)
	}

	if len(before.CompletedDates) != len(c.items[i].CompletedDates) {
		if err := c.save(e.store); err != nil {
			return HabitStatus{}, warnings, err
		}
	}
	return statusOf(c.items[i], today), warnings, nil
}

// EditHabit changes the name and/or description of a habit. nil leaves a field as is.
func (e *Engine) EditHabit(ref string, name, description *string) (models.Habit, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	c, err := e.loadHabits()
	if err != nil {
		return models.Habit{}, err
	}
	i := findHabit(c.items, ref)
	if i < 0 {
		return models.Habit{}, errors.NotFoundf("habit %q", ref)
	}

	h := c.items[i]
	if name != nil {
		n := strings.TrimSpace(*name)
		if n == "" {
			return models.Habit{}, errors.InvalidArgumentf("habit name must not be empty")
		}
		if nameTaken(c.items, n, i) {
			return models.Habit{}, errors.InvalidArgumentf("habit %q already exists", n)
		}
		h.Name = n
	}
	if description != nil {
		h.Description = strings.TrimSpace(*description)
	}
	c.items[i] = h

	if err := c.save(e.store); err != nil {
		return models.Habit{}, err
	}
	return h, nil
}

// DeleteHabit removes a habit and its history entirely.
func (e *Engine) DeleteHabit(ref string) (models.Habit, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	c, err := e.loadHabits()
	if err != nil {
		return models.Habit{}, err
	}
	i := findHabit(c.items, ref)
	if i < 0 {
		return models.Habit{}, errors.NotFoundf("habit %q", ref)
	}

	removed := c.items[i]
	c.items = append(c.items[:i], c.items[i+1:]...)
	if err := c.save(e.store); err != nil {
		return models.Habit{}, err
	}
	return removed, nil
}

// HabitStats computes today's completion figures across all habits.
func (e *Engine) HabitStats() (HabitStats, error) {
	habits, warnings, err := e.ListHabits()
	if err != nil {
		return HabitStats{}, err
	}
	stats := HabitStats{Total: len(habits), Habits: habits, Warnings: warnings}
	for _, h := range habits {
		if h.CompletedToday {
			stats.CompletedToday++
		}
		if h.Streak > stats.LongestStreak {
			stats.LongestStreak = h.Streak
		}
	}
	if stats.Total > 0 {
		stats.CompletionRate = stats.CompletedToday * 100 / stats.Total
	}
	return stats, nil
}
