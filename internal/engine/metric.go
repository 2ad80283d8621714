package engine

import (
	"github.com/julianstephens/aura/internal/constants"
	"github.com/julianstephens/aura/internal/datekey"
	"github.com/julianstephens/aura/internal/errors"
)

const defaultHistoryLimit = constants.HistoryLimit

// Metric names a daily counter
type Metric string

const (
	Steps     Metric = constants.MetricSteps
	Hydration Metric = constants.MetricHydration
)

// Metrics lists every counter the engine tracks
func Metrics() []Metric {
	return []Metric{Steps, Hydration}
}

// ParseMetric accepts "steps" or "hydration" (also "water")
func ParseMetric(s string) (Metric, error) {
	switch s {
	case constants.MetricSteps:
		return Steps, nil
	case constants.MetricHydration, "water":
		return Hydration, nil
	}
	return "", errors.InvalidArgumentf("unknown metric %q", s)
}

func (m Metric) validate() error {
	switch m {
	case Steps, Hydration:
		return nil
	}
	return errors.InvalidArgumentf("unknown metric %q", string(m))
}

// DefaultGoal is the goal used until the user sets one
func (m Metric) DefaultGoal() int {
	if m == Hydration {
		return constants.DefaultHydrationGoal
	}
	return constants.DefaultStepsGoal
}

func (m Metric) key(suffix string) string {
	return string(m) + "." + suffix
}

func (m Metric) valueKey() string   { return m.key(constants.SuffixValue) }
func (m Metric) dayKey() string     { return m.key(constants.SuffixLastUpdateDay) }
func (m Metric) goalKey() string    { return m.key(constants.SuffixGoal) }
func (m Metric) historyKey() string { return m.key(constants.SuffixHistory) }

// goalFlagKey is goalAchieved.<metric>.<YYYY-MM-DD>
func (m Metric) goalFlagKey(day datekey.Key) string {
	return constants.GoalFlagPrefix + string(m) + "." + day.String()
}
