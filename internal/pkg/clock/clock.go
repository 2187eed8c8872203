package clock

import (
	"strings"
	"time"
)

// DayLayout is the format of a day bucket.
const DayLayout = "2006-01-02"

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// System returns the wall clock.
func System() Clock { return systemClock{} }

// Fixed always reports t. Useful in tests.
type Fixed time.Time

func (f Fixed) Now() time.Time { return time.Time(f) }

// DayOf returns the calendar day of t in loc as YYYY-MM-DD.
// A nil loc means UTC.
func DayOf(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DayLayout)
}

// LoadLocation resolves name, treating empty as UTC.
func LoadLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "utc") {
		return time.UTC, nil
	}
	return time.LoadLocation(name)
}
