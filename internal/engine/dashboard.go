package engine

import (
	"fmt"

	"github.com/julianstephens/aura/internal/datekey"
	"github.com/julianstephens/aura/internal/models"
)

// CounterView is a counter as displayed on the dashboard
type CounterView struct {
	Value      int
	Goal       int
	Percent    int // capped at 100
	Achieved   bool
	Celebrated bool // the goal event already fired today
}

// NewCounterView computes the display figures for value against goal
func NewCounterView(value, goal int) CounterView {
	v := CounterView{Value: value, Goal: goal, Achieved: value >= goal}
	if goal > 0 {
		v.Percent = int(int64(value) * 100 / int64(goal))
		if v.Percent > 100 || v.Percent < 0 {
			v.Percent = 100
		}
	}
	return v
}

// Dashboard is everything the status screen shows, read in one pass
type Dashboard struct {
	Day             datekey.Key
	Settings        models.Settings
	Steps           CounterView
	Hydration       CounterView
	StepMetrics     StepMetrics
	HabitsCompleted int
	HabitsTotal     int
	Mood            *models.MoodEntry
	Warnings        []Warning
}

// Snapshot reads the whole dashboard without writing anything.
func (e *Engine) Snapshot() (Dashboard, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	today := e.Today()
	d := Dashboard{Day: today}

	settings, err := e.settingsLocked()
	if err != nil {
		return d, err
	}
	d.Settings = settings

	for _, m := range Metrics() {
		st, err := e.loadCounter(m)
		if err != nil {
			return d, err
		}
		goal, err := e.goalLocked(m)
		if err != nil {
			return d, err
		}
		view := NewCounterView(st.todayValue(today), goal)
		if view.Celebrated, err = e.goalFlagSet(m, today); err != nil {
			return d, err
		}
		switch m {
		case Steps:
			d.Steps = view
			d.StepMetrics = DeriveStepMetrics(view.Value)
		case Hydration:
			d.Hydration = view
		}
	}

	habits, err := e.loadHabits()
	if err != nil {
		return d, err
	}
	d.Warnings = append(d.Warnings, habits.warnings()...)
	d.HabitsTotal = len(habits.items)
	for _, h := range habits.items {
		if h.IsCompletedOn(today) {
			d.HabitsCompleted++
		}
	}

	moods, err := e.loadMoods()
	if err != nil {
		return d, err
	}
	d.Warnings = append(d.Warnings, moods.warnings()...)
	d.Mood = todayMood(moods.items, today, e.loc)

	return d, nil
}

// ClearAll deletes every stored key: counters, goals, habits, moods and settings.
func (e *Engine) ClearAll() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.store.Clear(); err != nil {
		return fmt.Errorf("clear store: %w", err)
	}
	return nil
}
