package engine

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/aura/internal/errors"
	"github.com/julianstephens/aura/internal/models"
)

func TestLogMood(t *testing.T) {
	env := setupTestEngine(t)

	if _, _, err := env.engine.LogMood(models.Mood(0), ""); !errors.Is(err, errors.ErrInvalidArgument) {
		t.Errorf("LogMood(0) error = %v, want ErrInvalidArgument", err)
	}

	entry, _, err := env.engine.LogMood(models.MoodHappy, "  sunny walk ")
	if err != nil {
		t.Fatalf("LogMood failed: %v", err)
	}
	if entry.Mood != models.MoodHappy || entry.Note != "sunny walk" || !entry.Timestamp.Equal(day1) {
		t.Errorf("LogMood = %+v", entry)
	}
}

func TestTodayMoodIsLatestOfToday(t *testing.T) {
	env := setupTestEngine(t)

	if m, _, err := env.engine.TodayMood(); err != nil || m != nil {
		t.Fatalf("TodayMood with no entries = %+v, %v", m, err)
	}

	_, _, _ = env.engine.LogMood(models.MoodSad, "morning")
	env.clock.Advance(3 * time.Hour)
	_, _, _ = env.engine.LogMood(models.MoodVeryHappy, "afternoon")

	m, _, err := env.engine.TodayMood()
	if err != nil || m == nil || m.Note != "afternoon" {
		t.Fatalf("TodayMood = %+v, %v", m, err)
	}

	env.nextDay(1)
	if m, _, _ := env.engine.TodayMood(); m != nil {
		t.Errorf("TodayMood on a new day = %+v, want nil", m)
	}
}

func TestListAndDeleteMoods(t *testing.T) {
	env := setupTestEngine(t)
	for i, mood := range []models.Mood{models.MoodNeutral, models.MoodHappy, models.MoodSad} {
		env.clock.Advance(time.Duration(i+1) * time.Minute)
		if _, _, err := env.engine.LogMood(mood, ""); err != nil {
			t.Fatal(err)
		}
	}

	list, _, err := env.engine.ListMoods(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0].Mood != models.MoodSad || list[1].Mood != models.MoodHappy {
		t.Errorf("ListMoods(2) = %+v, want newest first", list)
	}

	removed, err := env.engine.DeleteMood(list[0].ID)
	if err != nil || removed.Mood != models.MoodSad {
		t.Fatalf("DeleteMood = %+v, %v", removed, err)
	}
	if _, err := env.engine.DeleteMood(list[0].ID); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("second DeleteMood error = %v, want ErrNotFound", err)
	}

	all, _, _ := env.engine.ListMoods(0)
	if len(all) != 2 {
		t.Errorf("ListMoods(0) returned %d entries, want 2", len(all))
	}
}

func TestMoodTrend(t *testing.T) {
	env := setupTestEngine(t)

	// Day 1: 2 and 4, day 2: nothing, day 3: 5
	_, _, _ = env.engine.LogMood(models.MoodSad, "")
	_, _, _ = env.engine.LogMood(models.MoodHappy, "")
	env.nextDay(2)
	_, _, _ = env.engine.LogMood(models.MoodVeryHappy, "")

	if _, _, err := env.engine.MoodTrend(0); !errors.Is(err, errors.ErrInvalidArgument) {
		t.Errorf("MoodTrend(0) error = %v", err)
	}

	points, _, err := env.engine.MoodTrend(7)
	if err != nil {
		t.Fatalf("MoodTrend failed: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("MoodTrend = %+v, want 2 days", points)
	}
	if points[0].Day.String() != "2024-05-01" || points[0].Average != 3 || points[0].Count != 2 {
		t.Errorf("first point = %+v", points[0])
	}
	if points[1].Day.String() != "2024-05-03" || points[1].Average != 5 {
		t.Errorf("second point = %+v", points[1])
	}

	// A 1-day window only sees today
	points, _, _ = env.engine.MoodTrend(1)
	if len(points) != 1 || points[0].Day.String() != "2024-05-03" {
		t.Errorf("MoodTrend(1) = %+v", points)
	}
}

func TestMoodSummary(t *testing.T) {
	env := setupTestEngine(t)

	if _, ok, _, err := env.engine.MoodSummary(); ok || err != nil {
		t.Errorf("MoodSummary with no data = ok %v, err %v", ok, err)
	}

	for i := 0; i < 9; i++ {
		env.clock.Advance(time.Hour)
		note := ""
		if i == 8 {
			note = "great day"
		}
		_, _, _ = env.engine.LogMood(models.MoodHappy, note)
	}

	summary, ok, _, err := env.engine.MoodSummary()
	if err != nil || !ok {
		t.Fatalf("MoodSummary = ok %v, err %v", ok, err)
	}
	if !strings.HasPrefix(summary, "My Mood Summary") {
		t.Errorf("summary header missing:\n%s", summary)
	}
	if n := strings.Count(summary, "😊 Happy"); n != SummaryEntries {
		t.Errorf("summary lists %d entries, want %d", n, SummaryEntries)
	}
	if !strings.Contains(summary, "   Note: great day") {
		t.Errorf("summary missing note:\n%s", summary)
	}
	if !strings.Contains(summary, "May 01, 2024 at") {
		t.Errorf("summary timestamps not formatted:\n%s", summary)
	}
}

func TestMoodTrendWideWindow(t *testing.T) {
	env := setupTestEngine(t)
	_, _, _ = env.engine.LogMood(models.MoodHappy, "")
	env.nextDay(3)
	_, _, _ = env.engine.LogMood(models.MoodSad, "")

	for _, days := range []int{365, 1_000_000_000, math.MaxInt} {
		points, _, err := env.engine.MoodTrend(days)
		if err != nil {
			t.Fatalf("MoodTrend(%d) failed: %v", days, err)
		}
		if len(points) != 2 || points[0].Day.String() != "2024-05-01" || points[1].Day.String() != "2024-05-04" {
			t.Errorf("MoodTrend(%d) = %+v", days, points)
		}
	}
}

func TestMoodTrendIgnoresFutureEntries(t *testing.T) {
	env := setupTestEngine(t)
	env.nextDay(2)
	_, _, _ = env.engine.LogMood(models.MoodHappy, "")
	env.clock.Set(day1)

	points, _, err := env.engine.MoodTrend(7)
	if err != nil {
		t.Fatal(err)
	}
	if len(points) != 0 {
		t.Errorf("MoodTrend = %+v, want none", points)
	}
}
