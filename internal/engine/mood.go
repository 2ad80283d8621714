package engine

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/aura/internal/constants"
	"github.com/julianstephens/aura/internal/datekey"
	"github.com/julianstephens/aura/internal/errors"
	"github.com/julianstephens/aura/internal/models"
)

// SummaryEntries is how many recent moods go into a shared summary
const SummaryEntries = 7

// MoodPoint is the average mood of one day
type MoodPoint struct {
	Day     datekey.Key
	Average float64
	Count   int
}

func (e *Engine) loadMoods() (*collection[models.MoodEntry], error) {
	return loadCollection[models.MoodEntry](e.store, constants.KeyMoods)
}

// newestFirst returns a copy of entries sorted by timestamp, latest first
func newestFirst(entries []models.MoodEntry) []models.MoodEntry {
	out := append([]models.MoodEntry(nil), entries...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out
}

// LogMood records a mood at the current time. Several entries per day are allowed.
func (e *Engine) LogMood(mood models.Mood, note string) (models.MoodEntry, []Warning, error) {
	if !mood.Valid() {
		return models.MoodEntry{}, nil, errors.InvalidArgumentf("mood must be between 1 and 5, got %d", int(mood))
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	c, err := e.loadMoods()
	if err != nil {
		return models.MoodEntry{}, nil, err
	}
	warnings := c.warnings()

	entry := models.MoodEntry{
		ID:        e.newID(),
		Mood:      mood,
		Note:      strings.TrimSpace(note),
		Timestamp: e.clock.Now().UTC(),
	}
	c.items = append(c.items, entry)
	if err := c.save(e.store); err != nil {
		return models.MoodEntry{}, warnings, err
	}
	return entry, warnings, nil
}

// ListMoods returns up to limit entries, newest first. limit <= 0 means all.
func (e *Engine) ListMoods(limit int) ([]models.MoodEntry, []Warning, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	c, err := e.loadMoods()
	if err != nil {
		return nil, nil, err
	}
	out := newestFirst(c.items)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, c.warnings(), nil
}

// TodayMood returns the latest entry logged today, or nil if there is none.
func (e *Engine) TodayMood() (*models.MoodEntry, []Warning, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	c, err := e.loadMoods()
	if err != nil {
		return nil, nil, err
	}
	entry := todayMood(c.items, e.Today(), e.loc)
	return entry, c.warnings(), nil
}

func todayMood(entries []models.MoodEntry, today datekey.Key, loc *time.Location) *models.MoodEntry {
	var latest *models.MoodEntry
	for i := range entries {
		m := entries[i]
		if datekey.FromTime(m.Timestamp, loc) != today {
			continue
		}
		if latest == nil || m.Timestamp.After(latest.Timestamp) {
			latest = &m
		}
	}
	return latest
}

// DeleteMood removes the entry with the given id.
func (e *Engine) DeleteMood(id string) (models.MoodEntry, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	c, err := e.loadMoods()
	if err != nil {
		return models.MoodEntry{}, err
	}
	for i, m := range c.items {
		if m.ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			if err := c.save(e.store); err != nil {
				return models.MoodEntry{}, err
			}
			return m, nil
		}
	}
	return models.MoodEntry{}, errors.NotFoundf("mood entry %q", id)
}

// MoodTrend averages moods per day over the last days days (today included),
// oldest first. Days without entries are omitted.
func (e *Engine) MoodTrend(days int) ([]MoodPoint, []Warning, error) {
	if days <= 0 {
		return nil, nil, errors.InvalidArgumentf("days must be positive, got %d", days)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	c, err := e.loadMoods()
	if err != nil {
		return nil, nil, err
	}

	type acc struct{ sum, n int }
	byDay := make(map[datekey.Key]*acc)
	for _, m := range c.items {
		d := datekey.FromTime(m.Timestamp, e.loc)
		a, ok := byDay[d]
		if !ok {
			a = &acc{}
			byDay[d] = a
		}
		a.sum += int(m.Mood)
		a.n++
	}

	today := e.Today()
	var points []MoodPoint
	for d, a := range byDay {
		if age := d.DaysUntil(today); age < 0 || age >= days {
			continue
		}
		points = append(points, MoodPoint{Day: d, Average: float64(a.sum) / float64(a.n), Count: a.n})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Day.Before(points[j].Day) })
	return points, c.warnings(), nil
}

// MoodSummary renders the most recent entries as shareable plain text.
// ok is false when there is nothing to share.
func (e *Engine) MoodSummary() (summary string, ok bool, warnings []Warning, err error) {
	entries, warnings, err := e.ListMoods(SummaryEntries)
	if err != nil || len(entries) == 0 {
		return "", false, warnings, err
	}

	var b strings.Builder
	b.WriteString("My Mood Summary 😊\n")
	b.WriteString("Recent entries:\n\n")
	for _, m := range entries {
		fmt.Fprintf(&b, "%s %s - %s\n", m.Mood.Emoji(), m.Mood, m.Timestamp.In(e.loc).Format(constants.DateTimeFormat))
		if m.Note != "" {
			fmt.Fprintf(&b, "   Note: %s\n", m.Note)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Shared from %s\n", constants.AppName)
	return b.String(), true, warnings, nil
}
