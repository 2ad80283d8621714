package models

import (
	"sort"
	"time"

	"github.com/julianstephens/aura/internal/datekey"
)

// Habit represents a user-defined practice tracked once per day
type Habit struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	Description    string        `json:"description"`
	CreatedAt      time.Time     `json:"created_at"`
	CompletedDates []datekey.Key `json:"completed_dates"` // sorted ascending, unique
}

// IsCompletedOn reports whether day is in CompletedDates
func (h Habit) IsCompletedOn(day datekey.Key) bool {
	i := sort.Search(len(h.CompletedDates), func(i int) bool {
		return !h.CompletedDates[i].Before(day)
	})
	return i < len(h.CompletedDates) && h.CompletedDates[i] == day
}

// NormalizeDates sorts CompletedDates and drops duplicates and zero keys.
// Records read from older files may not satisfy the set invariant.
func (h *Habit) NormalizeDates() {
	if len(h.CompletedDates) == 0 {
		return
	}
	dates := make([]datekey.Key, 0, len(h.CompletedDates))
	for _, d := range h.CompletedDates {
		if !d.IsZero() {
			dates = append(dates, d)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	out := dates[:0]
	for i, d := range dates {
		if i > 0 && d == dates[i-1] {
			continue
		}
		out = append(out, d)
	}
	h.CompletedDates = out
}
