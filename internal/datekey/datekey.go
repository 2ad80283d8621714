// Package datekey identifies calendar days in the user's local timezone.
//
// A Key carries no time-of-day or location. Two instants map to the same Key
// iff they fall on the same local calendar day. Arithmetic is done on the
// calendar, not in 24h steps, so Previous always lands on the prior date even
// across a daylight-saving shift.
package datekey

import (
	"fmt"
	"time"

	"github.com/julianstephens/aura/internal/constants"
)

// Key is a calendar date. The zero Key is invalid and sorts before every real day.
type Key struct {
	year  int
	month time.Month
	day   int
}

// New builds a Key from calendar components, normalizing overflow the way time.Date does.
func New(year int, month time.Month, day int) Key {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Key{year: t.Year(), month: t.Month(), day: t.Day()}
}

// FromTime truncates t to its calendar day in loc. A nil loc means UTC.
func FromTime(t time.Time, loc *time.Location) Key {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return Key{year: y, month: m, day: d}
}

// Parse reads a YYYY-MM-DD string.
func Parse(s string) (Key, error) {
	t, err := time.Parse(constants.DateFormat, s)
	if err != nil {
		return Key{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", s, err)
	}
	return New(t.Year(), t.Month(), t.Day()), nil
}

// MustParse is Parse for literals in tests and tables.
func MustParse(s string) Key {
	k, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return k
}

func (k Key) Year() int         { return k.year }
func (k Key) Month() time.Month { return k.month }
func (k Key) Day() int          { return k.day }
func (k Key) IsZero() bool      { return k == Key{} }
func (k Key) Equal(o Key) bool  { return k == o }
func (k Key) Before(o Key) bool { return k.Compare(o) < 0 }
func (k Key) After(o Key) bool  { return k.Compare(o) > 0 }
func (k Key) ordinal() int      { return k.year*10000 + int(k.month)*100 + k.day }
func (k Key) Previous() Key     { return k.AddDays(-1) }
func (k Key) Next() Key         { return k.AddDays(1) }
func (k Key) AddDays(n int) Key { return New(k.year, k.month, k.day+n) }

// Compare returns -1, 0 or +1 following calendar order.
func (k Key) Compare(o Key) int {
	a, b := k.ordinal(), o.ordinal()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// DaysUntil returns the number of calendar days from k to o (negative if o is earlier).
func (k Key) DaysUntil(o Key) int {
	a := time.Date(k.year, k.month, k.day, 0, 0, 0, 0, time.UTC)
	b := time.Date(o.year, o.month, o.day, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// Midnight returns local midnight of the day in loc.
func (k Key) Midnight(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(k.year, k.month, k.day, 0, 0, 0, 0, loc)
}

func (k Key) String() string {
	if k.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", k.year, int(k.month), k.day)
}

func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Key) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*k = Key{}
		return nil
	}
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
