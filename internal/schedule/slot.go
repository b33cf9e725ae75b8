// Package schedule implements slot validation and conflict analysis for
// appointment rescheduling. Everything here is pure and clock-injectable so
// it can be tested without a UI harness.
package schedule

import (
	"fmt"
	"time"
)

// Slot is a (day, hour, minute) coordinate representing a candidate
// appointment start time. Slots are transient: they exist only for the
// duration of a drag gesture.
type Slot struct {
	Day    time.Time // calendar day; the time-of-day portion is ignored
	Hour   int
	Minute int
}

// SlotOf returns the slot a timestamp falls in.
func SlotOf(t time.Time) Slot {
	return Slot{
		Day:    time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()),
		Hour:   t.Hour(),
		Minute: t.Minute(),
	}
}

// Time composes the slot's timestamp in the day's location.
func (s Slot) Time() time.Time {
	return time.Date(s.Day.Year(), s.Day.Month(), s.Day.Day(), s.Hour, s.Minute, 0, 0, s.Day.Location())
}

// Key returns a stable string form used for cache keys and logging.
func (s Slot) Key() string {
	return fmt.Sprintf("%s %02d:%02d", s.Day.Format("2006-01-02"), s.Hour, s.Minute)
}

// Equal returns true if both slots name the same calendar coordinate.
func (s Slot) Equal(o Slot) bool {
	return s.Hour == o.Hour && s.Minute == o.Minute &&
		s.Day.Year() == o.Day.Year() && s.Day.Month() == o.Day.Month() && s.Day.Day() == o.Day.Day()
}

// TimeToMinutes converts "HH:MM" to minutes since midnight.
// Returns 0 for invalid input.
func TimeToMinutes(t string) int {
	if len(t) < 5 {
		return 0
	}
	hours := int(t[0]-'0')*10 + int(t[1]-'0')
	mins := int(t[3]-'0')*10 + int(t[4]-'0')
	return hours*60 + mins
}

// MinutesToTime converts minutes since midnight to "HH:MM" format.
func MinutesToTime(m int) string {
	if m < 0 {
		m = 0
	}
	if m >= 24*60 {
		m = 24*60 - 1
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
