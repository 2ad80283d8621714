package engine

import (
	"fmt"
	"strings"

	"github.com/julianstephens/aura/internal/constants"
	"github.com/julianstephens/aura/internal/datekey"
	"github.com/julianstephens/aura/internal/errors"
	"github.com/julianstephens/aura/internal/logger"
	"github.com/julianstephens/aura/internal/storage"
)

// Goal returns the daily goal for m, or its default when unset or unreadable.
func (e *Engine) Goal(m Metric) (int, error) {
	if err := m.validate(); err != nil {
		return 0, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.goalLocked(m)
}

func (e *Engine) goalLocked(m Metric) (int, error) {
	goal, err := storage.GetInt(e.store, m.goalKey(), m.DefaultGoal())
	if err != nil {
		return 0, err
	}
	if goal <= 0 {
		logger.Warn("Stored goal is not positive, using default", "metric", m, "goal", goal)
		return m.DefaultGoal(), nil
	}
	return goal, nil
}

// SetGoal stores a new daily goal. Today's goal flag is left alone, so lowering
// the goal below today's value fires on the next write.
func (e *Engine) SetGoal(m Metric, goal int) error {
	if err := m.validate(); err != nil {
		return err
	}
	if goal <= 0 {
		return errors.InvalidArgumentf("goal must be positive, got %d", goal)
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := storage.SetInt(e.store, m.goalKey(), goal); err != nil {
		return fmt.Errorf("write %s: %w", m.goalKey(), err)
	}
	return nil
}

func (e *Engine) goalFlagSet(m Metric, day datekey.Key) (bool, error) {
	return storage.GetBool(e.store, m.goalFlagKey(day), false)
}

// CheckAndFire reports whether value reaching goal on day is the first time
// today: the flag for (m, day) is set and true returned at most once.
func (e *Engine) CheckAndFire(m Metric, value, goal int, day datekey.Key) (bool, error) {
	if err := m.validate(); err != nil {
		return false, err
	}
	if goal <= 0 {
		return false, errors.InvalidArgumentf("goal must be positive, got %d", goal)
	}
	if day.IsZero() {
		return false, errors.InvalidArgumentf("day must be set")
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if value < goal {
		return false, nil
	}
	fired, err := e.goalFlagSet(m, day)
	if err != nil {
		return false, err
	}
	if fired {
		return false, nil
	}
	if err := storage.SetBool(e.store, m.goalFlagKey(day), true); err != nil {
		return false, fmt.Errorf("write goal flag: %w", err)
	}
	return true, nil
}

// PruneGoalFlags deletes goal flags for days before the given day and returns
// how many were removed. Flags with an unreadable day are removed too.
func (e *Engine) PruneGoalFlags(before datekey.Key) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	keys, err := e.store.Keys(constants.GoalFlagPrefix)
	if err != nil {
		return 0, fmt.Errorf("list goal flags: %w", err)
	}

	var stale []string
	for _, k := range keys {
		i := strings.LastIndex(k, ".")
		day, err := datekey.Parse(k[i+1:])
		if err != nil || day.Before(before) {
			stale = append(stale, k)
		}
	}
	if len(stale) == 0 {
		return 0, nil
	}
	if err := e.store.Delete(stale...); err != nil {
		return 0, fmt.Errorf("delete goal flags: %w", err)
	}
	return len(stale), nil
}
