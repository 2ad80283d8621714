package engine

import (
	"sort"

	"github.com/julianstephens/aura/internal/datekey"
	"github.com/julianstephens/aura/internal/models"
)

// MarkCompleted returns h with day added to its completed dates. Marking an
// already completed day returns an equal record.
func MarkCompleted(h models.Habit, day datekey.Key) models.Habit {
	if h.IsCompletedOn(day) {
		return h
	}
	dates := make([]datekey.Key, 0, len(h.CompletedDates)+1)
	dates = append(dates, h.CompletedDates...)
	dates = append(dates, day)
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	h.CompletedDates = dates
	return h
}

// MarkIncomplete returns h with day removed from its completed dates.
func MarkIncomplete(h models.Habit, day datekey.Key) models.Habit {
	if !h.IsCompletedOn(day) {
		return h
	}
	dates := make([]datekey.Key, 0, len(h.CompletedDates)-1)
	for _, d := range h.CompletedDates {
		if d != day {
			dates = append(dates, d)
		}
	}
	h.CompletedDates = dates
	return h
}

// ComputeStreak counts consecutive completed days ending at today. The walk
// starts at today, so a habit not yet done today has a streak of 0 even when
// yesterday was done; see StreakAtRisk.
func ComputeStreak(completed []datekey.Key, today datekey.Key) int {
	set := make(map[datekey.Key]struct{}, len(completed))
	for _, d := range completed {
		set[d] = struct{}{}
	}

	streak := 0
	for cursor := today; ; cursor = cursor.Previous() {
		if _, ok := set[cursor]; !ok {
			break
		}
		streak++
	}
	return streak
}

// StreakAtRisk is true when today is not done yet but yesterday was, i.e. the
// streak shown as 0 can still be continued today.
func StreakAtRisk(completed []datekey.Key, today datekey.Key) bool {
	var hasToday, hasYesterday bool
	yesterday := today.Previous()
	for _, d := range completed {
		switch d {
		case today:
			hasToday = true
		case yesterday:
			hasYesterday = true
		}
	}
	return !hasToday && hasYesterday
}

// BestRun returns the longest run of consecutive days in completed.
func BestRun(completed []datekey.Key) int {
	if len(completed) == 0 {
		return 0
	}
	dates := append([]datekey.Key(nil), completed...)
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	best, run := 1, 1
	for i := 1; i < len(dates); i++ {
		switch {
		case dates[i] == dates[i-1]:
			continue
		case dates[i] == dates[i-1].Next():
			run++
		default:
			run = 1
		}
		if run > best {
			best = run
		}
	}
	return best
}
