package engine

import (
	"math"
	"testing"

	"github.com/julianstephens/aura/internal/constants"
	"github.com/julianstephens/aura/internal/errors"
	"github.com/julianstephens/aura/internal/models"
)

func TestRecordSensorReading(t *testing.T) {
	env := setupTestEngine(t)

	steps := func() int {
		t.Helper()
		v, err := env.engine.Read(Steps)
		if err != nil {
			t.Fatal(err)
		}
		return v
	}

	// First reading of the day only sets the baseline
	res, err := env.engine.RecordSensorReading(52000)
	if err != nil {
		t.Fatalf("RecordSensorReading failed: %v", err)
	}
	if res.Value != 0 || steps() != 0 {
		t.Errorf("first reading counted steps: %d", res.Value)
	}

	if res, _ = env.engine.RecordSensorReading(52300); res.Value != 300 {
		t.Errorf("after +300: %d", res.Value)
	}

	// A manual adjustment between readings is kept
	if _, err := env.engine.Increment(Steps, 1000); err != nil {
		t.Fatal(err)
	}
	if res, _ = env.engine.RecordSensorReading(52400); res.Value != 1400 {
		t.Errorf("after manual +1000 and sensor +100: %d, want 1400", res.Value)
	}

	// Reboot: total drops below the baseline, nothing is added
	if res, _ = env.engine.RecordSensorReading(40); res.Value != 1400 {
		t.Errorf("after reboot: %d, want 1400", res.Value)
	}
	if res, _ = env.engine.RecordSensorReading(100); res.Value != 1460 {
		t.Errorf("after reboot +60: %d, want 1460", res.Value)
	}
	if got := mustGet(t, env.store, constants.KeySensorBaseline); got != "100" {
		t.Errorf("baseline = %s, want 100", got)
	}
}

func TestSensorBaselineIsPerDay(t *testing.T) {
	env := setupTestEngine(t)
	_, _ = env.engine.RecordSensorReading(1000)
	_, _ = env.engine.RecordSensorReading(1500)

	env.nextDay(1)
	res, err := env.engine.RecordSensorReading(9000)
	if err != nil {
		t.Fatal(err)
	}
	if res.Value != 0 {
		t.Errorf("first reading of a new day = %d, want 0", res.Value)
	}
	hist, _, _ := env.engine.History(Steps)
	if len(hist) != 0 {
		t.Errorf("a rebase must not archive history yet: %+v", hist)
	}

	res, _ = env.engine.RecordSensorReading(9250)
	if res.Value != 250 {
		t.Errorf("day 2 steps = %d, want 250", res.Value)
	}
	hist, _, _ = env.engine.History(Steps)
	if len(hist) != 1 || hist[0].Value != 500 {
		t.Errorf("history = %+v, want day 1 with 500", hist)
	}
}

func TestSensorPaused(t *testing.T) {
	env := setupTestEngine(t)
	_, _ = env.engine.RecordSensorReading(100)

	if _, err := env.engine.UpdateSettings(func(s *models.Settings) { s.StepsPaused = true }); err != nil {
		t.Fatal(err)
	}
	if res, _ := env.engine.RecordSensorReading(900); res.Value != 0 {
		t.Errorf("paused reading counted %d steps", res.Value)
	}

	_, _ = env.engine.UpdateSettings(func(s *models.Settings) { s.StepsPaused = false })
	// Steps taken while paused are never counted
	if res, _ := env.engine.RecordSensorReading(950); res.Value != 50 {
		t.Errorf("after resume = %d, want 50", res.Value)
	}
}

func TestSensorRejectsNegative(t *testing.T) {
	env := setupTestEngine(t)
	if _, err := env.engine.RecordSensorReading(-1); !errors.Is(err, errors.ErrInvalidArgument) {
		t.Errorf("error = %v, want ErrInvalidArgument", err)
	}
}

func TestSensorUnreadableBaselineRebases(t *testing.T) {
	env := setupTestEngine(t)
	_ = env.store.SetMany(map[string]string{
		constants.KeySensorBaseline:    "lots",
		constants.KeySensorBaselineDay: env.engine.Today().String(),
	})
	res, err := env.engine.RecordSensorReading(700)
	if err != nil || res.Value != 0 {
		t.Errorf("RecordSensorReading = %d, %v", res.Value, err)
	}
	if got := mustGet(t, env.store, constants.KeySensorBaseline); got != "700" {
		t.Errorf("baseline = %s, want 700", got)
	}
}

func TestDeriveStepMetrics(t *testing.T) {
	tests := []struct {
		steps   int
		cal     int
		minutes int
		km      float64
	}{
		{0, 0, 0, 0},
		{-5, 0, 0, 0},
		{99, 3, 0, 0.075438},
		{10000, 400, 100, 7.62},
	}
	for _, tt := range tests {
		got := DeriveStepMetrics(tt.steps)
		if got.Calories != tt.cal || got.ActiveMinutes != tt.minutes {
			t.Errorf("DeriveStepMetrics(%d) = %+v", tt.steps, got)
		}
		if math.Abs(got.DistanceKm-tt.km) > 1e-9 {
			t.Errorf("DeriveStepMetrics(%d).DistanceKm = %f, want %f", tt.steps, got.DistanceKm, tt.km)
		}
	}
}
