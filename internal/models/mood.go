package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Mood is a fixed five-point scale, Very Sad (1) to Very Happy (5)
type Mood int

const (
	MoodVerySad   Mood = 1
	MoodSad       Mood = 2
	MoodNeutral   Mood = 3
	MoodHappy     Mood = 4
	MoodVeryHappy Mood = 5
)

var moodNames = map[Mood]string{
	MoodVerySad:   "Very Sad",
	MoodSad:       "Sad",
	MoodNeutral:   "Neutral",
	MoodHappy:     "Happy",
	MoodVeryHappy: "Very Happy",
}

var moodEmoji = map[Mood]string{
	MoodVerySad:   "😢",
	MoodSad:       "😔",
	MoodNeutral:   "😐",
	MoodHappy:     "😊",
	MoodVeryHappy: "😄",
}

// AllMoods lists the scale from lowest to highest
func AllMoods() []Mood {
	return []Mood{MoodVerySad, MoodSad, MoodNeutral, MoodHappy, MoodVeryHappy}
}

func (m Mood) Valid() bool {
	return m >= MoodVerySad && m <= MoodVeryHappy
}

func (m Mood) String() string {
	if name, ok := moodNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mood(%d)", int(m))
}

func (m Mood) Emoji() string {
	return moodEmoji[m]
}

// ParseMood accepts a scale number ("4"), a name ("very happy", "very-happy") or an emoji.
func ParseMood(s string) (Mood, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		m := Mood(n)
		if !m.Valid() {
			return 0, fmt.Errorf("mood must be between 1 and 5, got %d", n)
		}
		return m, nil
	}

	norm := strings.ToLower(strings.NewReplacer("-", " ", "_", " ").Replace(s))
	for m, name := range moodNames {
		if strings.ToLower(name) == norm {
			return m, nil
		}
	}
	for m, e := range moodEmoji {
		if e == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown mood %q", s)
}

// MoodEntry is an immutable mood log record
type MoodEntry struct {
	ID        string    `json:"id"`
	Mood      Mood      `json:"mood"`
	Note      string    `json:"note"`
	Timestamp time.Time `json:"timestamp"`
}
