// Package appointment defines the core domain types for figaro.
package appointment

import (
	"errors"
	"time"
)

// Validation errors.
var (
	ErrMissingID       = errors.New("appointment id cannot be empty")
	ErrInvalidDuration = errors.New("duration must be a positive number of minutes")
	ErrMissingStart    = errors.New("appointment has no start time")
)

// Status represents the state of an appointment.
//
// The backend owns the full status vocabulary; this client only needs to
// special-case completed and cancelled (neither may be rescheduled). Any
// other value is carried through opaquely so a backend-side addition does
// not break the client.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ParseStatus returns the Status for a backend status string.
// Unknown values are preserved as-is.
func ParseStatus(s string) Status {
	return Status(s)
}

// Known returns true if the status is one of the values this client
// special-cases.
func (s Status) Known() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// Draggable returns true if an appointment with this status may be moved.
func (s Status) Draggable() bool {
	return s != StatusCompleted && s != StatusCancelled
}

// Appointment is the unit being scheduled. It is a read/write projection of
// backend state: created and mutated by the booking backend, held here in
// memory and kept consistent via optimistic updates and refreshes.
type Appointment struct {
	ID              string
	StartTime       time.Time // location-aware
	DurationMinutes int
	BarberID        string
	ClientID        string
	ClientName      string // display only
	Service         string // display only
	Status          Status
}

// Validate checks the fields this client depends on.
func (a *Appointment) Validate() error {
	if a.ID == "" {
		return ErrMissingID
	}
	if a.StartTime.IsZero() {
		return ErrMissingStart
	}
	if a.DurationMinutes <= 0 {
		return ErrInvalidDuration
	}
	return nil
}

// EndTime returns the end of the appointment interval.
func (a *Appointment) EndTime() time.Time {
	return a.StartTime.Add(time.Duration(a.DurationMinutes) * time.Minute)
}

// Draggable returns true if the appointment may be picked up and moved.
func (a *Appointment) Draggable() bool {
	return a.Status.Draggable()
}

// DateKey returns the appointment's local calendar date in YYYY-MM-DD form.
func (a *Appointment) DateKey() string {
	return a.StartTime.Format("2006-01-02")
}

// StartsAt returns true if the appointment starts at the given day, hour and
// minute in its own location.
func (a *Appointment) StartsAt(day time.Time, hour, minute int) bool {
	s := a.StartTime
	return s.Year() == day.Year() &&
		s.Month() == day.Month() &&
		s.Day() == day.Day() &&
		s.Hour() == hour &&
		s.Minute() == minute
}

// OverlapsInterval returns true if the appointment's interval intersects
// [start, end).
func (a *Appointment) OverlapsInterval(start, end time.Time) bool {
	return a.StartTime.Before(end) && a.EndTime().After(start)
}
