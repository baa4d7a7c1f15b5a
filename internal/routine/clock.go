// Package routine tracks completion of the daily task list, closes the day
// when the last task is decided, and escalates alerts through time-of-day
// severity zones.
package routine

import (
	"fmt"
	"time"

	"github.com/amigoslakokido/lakokido-HACCP-system-sub001/internal/errs"
)

// ClockTime is a time of day in minutes from midnight.
type ClockTime int

// ParseClockTime parses "HH:MM".
func ParseClockTime(s string) (ClockTime, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, &errs.ValidationError{Field: "clock time", Reason: fmt.Sprintf("%q is not HH:MM", s)}
	}
	return ClockTime(t.Hour()*60 + t.Minute()), nil
}

// MustClockTime is ParseClockTime for compile-time constants in defaults.
func MustClockTime(s string) ClockTime {
	c, err := ParseClockTime(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// On anchors the clock time to the calendar day of t.
func (c ClockTime) On(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), int(c)/60, int(c)%60, 0, 0, t.Location())
}

func minutesOfDay(t time.Time) ClockTime {
	return ClockTime(t.Hour()*60 + t.Minute())
}
