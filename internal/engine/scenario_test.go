package engine

import (
	"sync"
	"testing"
	"time"

	"github.com/julianstephens/aura/internal/datekey"
	"github.com/julianstephens/aura/internal/models"
	"github.com/julianstephens/aura/internal/storage"
)

// Add a habit, complete it, roll into the next day and complete it again
func TestHabitAcrossDays(t *testing.T) {
	env := setupTestEngine(t)

	if _, _, err := env.engine.AddHabit("Drink water", ""); err != nil {
		t.Fatal(err)
	}
	st, _, err := env.engine.SetHabitCompleted("Drink water", true)
	if err != nil {
		t.Fatal(err)
	}
	if st.Streak != 1 {
		t.Fatalf("day 1 streak = %d, want 1", st.Streak)
	}

	env.nextDay(1)
	habits, _, err := env.engine.ListHabits()
	if err != nil {
		t.Fatal(err)
	}
	h := habits[0]
	if h.CompletedToday || h.Streak != 0 || !h.StreakAtRisk {
		t.Errorf("day 2 before completing = %+v", h)
	}

	st, _, _ = env.engine.SetHabitCompleted("Drink water", true)
	if st.Streak != 2 || st.StreakAtRisk || st.BestRun != 2 {
		t.Errorf("day 2 after completing = %+v", st)
	}

	// Skipping a day breaks the streak
	env.nextDay(2)
	habits, _, _ = env.engine.ListHabits()
	if habits[0].Streak != 0 || habits[0].StreakAtRisk {
		t.Errorf("after a missed day = %+v", habits[0])
	}
}

func TestConcurrentIncrements(t *testing.T) {
	env := setupTestEngine(t)

	const workers, each = 8, 25
	var wg sync.WaitGroup
	fired := make(chan bool, workers*each)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < each; j++ {
				res, err := env.engine.Increment(Hydration, 1)
				if err != nil {
					t.Error(err)
					return
				}
				fired <- res.GoalAchievedNow
			}
		}()
	}
	wg.Wait()
	close(fired)

	got, _ := env.engine.Read(Hydration)
	if got != workers*each {
		t.Errorf("Read = %d, want %d", got, workers*each)
	}
	n := 0
	for f := range fired {
		if f {
			n++
		}
	}
	if n != 1 {
		t.Errorf("goal fired %d times, want once", n)
	}
}

// slowStore widens the window between reading and writing settings
type slowStore struct {
	*storage.MemoryStore
}

func (s slowStore) Get(key string) (string, bool, error) {
	time.Sleep(time.Millisecond)
	return s.MemoryStore.Get(key)
}

func (s slowStore) Keys(prefix string) ([]string, error) {
	time.Sleep(time.Millisecond)
	return s.MemoryStore.Keys(prefix)
}

func TestConcurrentSettingsUpdates(t *testing.T) {
	for round := 0; round < 10; round++ {
		e := newTestEngine(slowStore{storage.NewMemoryStore()}, datekey.NewManualClock(day1))

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			if _, err := e.UpdateSettings(func(s *models.Settings) { s.StepsPaused = true }); err != nil {
				t.Error(err)
			}
		}()
		go func() {
			defer wg.Done()
			if _, err := e.UpdateSettings(func(s *models.Settings) { s.HydrationReminderEnabled = true }); err != nil {
				t.Error(err)
			}
		}()
		wg.Wait()

		s, err := e.GetSettings()
		if err != nil {
			t.Fatal(err)
		}
		if !s.StepsPaused || !s.HydrationReminderEnabled {
			t.Fatalf("round %d lost an update: %+v", round, s)
		}
	}
}

func TestSnapshot(t *testing.T) {
	env := setupTestEngine(t)

	_, _ = env.engine.Set(Steps, 5000)
	_, _ = env.engine.Set(Hydration, 9)
	_, _, _ = env.engine.AddHabit("Stretch", "")
	_, _, _ = env.engine.AddHabit("Read", "")
	_, _, _ = env.engine.SetHabitCompleted("Read", true)
	_, _, _ = env.engine.LogMood(models.MoodNeutral, "")

	d, err := env.engine.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if d.Day != env.engine.Today() {
		t.Errorf("Day = %s", d.Day)
	}
	if d.Steps.Value != 5000 || d.Steps.Percent != 50 || d.Steps.Achieved {
		t.Errorf("Steps = %+v", d.Steps)
	}
	if d.Hydration.Percent != 100 || !d.Hydration.Achieved {
		t.Errorf("Hydration = %+v", d.Hydration)
	}
	if d.StepMetrics.Calories != 200 || d.StepMetrics.ActiveMinutes != 50 {
		t.Errorf("StepMetrics = %+v", d.StepMetrics)
	}
	if d.HabitsTotal != 2 || d.HabitsCompleted != 1 {
		t.Errorf("habits = %d/%d", d.HabitsCompleted, d.HabitsTotal)
	}
	if d.Mood == nil {
		t.Error("Mood missing")
	}
	if d.Steps.Celebrated || !d.Hydration.Celebrated {
		t.Errorf("celebrated steps=%v hydration=%v, want false/true", d.Steps.Celebrated, d.Hydration.Celebrated)
	}

	// The next day reads as a fresh dashboard without any write
	env.nextDay(1)
	before, _ := env.store.Keys("")
	d, _ = env.engine.Snapshot()
	after, _ := env.store.Keys("")
	if d.Steps.Value != 0 || d.HabitsCompleted != 0 || d.Mood != nil || d.Hydration.Celebrated {
		t.Errorf("next day dashboard = %+v", d)
	}
	if len(before) != len(after) {
		t.Errorf("Snapshot wrote keys: %v -> %v", before, after)
	}
}

func TestNewCounterView(t *testing.T) {
	tests := []struct {
		value, goal int
		want        CounterView
	}{
		{0, 8, CounterView{Value: 0, Goal: 8}},
		{4, 8, CounterView{Value: 4, Goal: 8, Percent: 50}},
		{20, 8, CounterView{Value: 20, Goal: 8, Percent: 100, Achieved: true}},
	}
	for _, tt := range tests {
		if got := NewCounterView(tt.value, tt.goal); got != tt.want {
			t.Errorf("NewCounterView(%d, %d) = %+v, want %+v", tt.value, tt.goal, got, tt.want)
		}
	}
}

func TestClearAll(t *testing.T) {
	env := setupTestEngine(t)
	_, _ = env.engine.Set(Steps, 10)
	_, _, _ = env.engine.AddHabit("Walk", "")

	if err := env.engine.ClearAll(); err != nil {
		t.Fatal(err)
	}
	keys, _ := env.store.Keys("")
	if len(keys) != 0 {
		t.Errorf("keys after ClearAll: %v", keys)
	}
	habits, _, _ := env.engine.ListHabits()
	if len(habits) != 0 {
		t.Errorf("habits after ClearAll: %+v", habits)
	}
}
