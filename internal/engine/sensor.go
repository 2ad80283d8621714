package engine

import (
	"fmt"
	"math"
	"strconv"

	"github.com/julianstephens/aura/internal/constants"
	"github.com/julianstephens/aura/internal/datekey"
	"github.com/julianstephens/aura/internal/errors"
	"github.com/julianstephens/aura/internal/logger"
	"github.com/julianstephens/aura/internal/storage"
)

// StepMetrics are figures derived from a step count
type StepMetrics struct {
	Calories      int
	ActiveMinutes int
	DistanceKm    float64
}

func DeriveStepMetrics(steps int) StepMetrics {
	if steps < 0 {
		steps = 0
	}
	return StepMetrics{
		Calories:      int(math.Floor(float64(steps) * constants.CaloriesPerStep)),
		ActiveMinutes: steps / constants.StepsPerActiveMinute,
		DistanceKm:    float64(steps) * constants.KilometersPerStep,
	}
}

// RecordSensorReading turns a cumulative hardware step count into today's
// steps. The baseline is the last total already counted:
//   - the first reading of a day only sets the baseline
//   - a total below the baseline means the device rebooted; it rebases
//   - while steps are paused readings only move the baseline
//
// Otherwise the difference is added to today's steps, so manual adjustments
// made between readings are kept.
func (e *Engine) RecordSensorReading(total int) (CounterResult, error) {
	if total < 0 {
		return CounterResult{}, errors.InvalidArgumentf("sensor total must not be negative, got %d", total)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	today := e.Today()
	rebase := map[string]string{
		constants.KeySensorBaseline:    strconv.Itoa(total),
		constants.KeySensorBaselineDay: today.String(),
	}

	baseline, known, err := e.sensorBaseline(today)
	if err != nil {
		return CounterResult{}, err
	}

	paused, err := storage.GetBool(e.store, constants.SettingsPrefix+constants.SettingStepsPaused, constants.DefaultStepsPaused)
	if err != nil {
		return CounterResult{}, err
	}

	switch {
	case !known, total < baseline, paused:
		if known && total < baseline {
			logger.Debug("Step sensor reset detected", "baseline", baseline, "total", total)
		}
		return e.rebaseSensor(today, rebase)
	default:
		return e.incrementLocked(Steps, total-baseline, rebase)
	}
}

// sensorBaseline returns the baseline recorded today, if any
func (e *Engine) sensorBaseline(today datekey.Key) (int, bool, error) {
	day, err := storage.GetString(e.store, constants.KeySensorBaselineDay, "")
	if err != nil {
		return 0, false, err
	}
	if day != today.String() {
		return 0, false, nil
	}
	raw, ok, err := e.store.Get(constants.KeySensorBaseline)
	if err != nil {
		return 0, false, fmt.Errorf("read %s: %w", constants.KeySensorBaseline, err)
	}
	if !ok {
		return 0, false, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		logger.Warn("Unreadable step sensor baseline, rebasing", "value", raw)
		return 0, false, nil
	}
	return n, true, nil
}

// rebaseSensor stores the new baseline and reports today's unchanged steps
func (e *Engine) rebaseSensor(today datekey.Key, rebase map[string]string) (CounterResult, error) {
	if err := e.store.SetMany(rebase); err != nil {
		return CounterResult{}, fmt.Errorf("write sensor baseline: %w", err)
	}
	st, err := e.loadCounter(Steps)
	if err != nil {
		return CounterResult{}, err
	}
	goal, err := e.goalLocked(Steps)
	if err != nil {
		return CounterResult{}, err
	}
	return CounterResult{Metric: Steps, Day: today, Value: st.todayValue(today), Goal: goal}, nil
}
