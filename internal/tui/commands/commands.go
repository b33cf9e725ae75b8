// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/figaroapp/figaro/internal/appointment"
	"github.com/figaroapp/figaro/internal/drag"
)

// Booking is the backend surface the TUI talks to.
type Booking interface {
	ListAppointments(ctx context.Context, from, to time.Time) ([]*appointment.Appointment, error)
	UpdateAppointment(ctx context.Context, id string, newStart time.Time, dragDrop bool) error
}

// Cache is the local snapshot surface used for stale-first startup
// and offline fallback.
type Cache interface {
	SaveWindow(ctx context.Context, from, to time.Time, appts []*appointment.Appointment) error
	LoadWindow(ctx context.Context, from, to time.Time) ([]*appointment.Appointment, error)
}

// Source identifies where a batch of appointments came from.
type Source int

const (
	SourceBackend Source = iota
	SourceSnapshot
)

// AppointmentsLoadedMsg is sent when a week of appointments is loaded.
type AppointmentsLoadedMsg struct {
	From         time.Time
	To           time.Time
	Appointments []*appointment.Appointment
	Origin       Source
}

// UpdateResultMsg is sent when a reschedule request completes.
type UpdateResultMsg struct {
	AppointmentID string
	Generation    uint64
	Err           error
}

// HoverTickMsg is sent after the hover debounce interval elapses.
// Generation ties the tick to the drag gesture that scheduled it.
type HoverTickMsg struct {
	Generation uint64
}

// RefreshDueMsg is sent when a deferred post-commit refresh should run.
type RefreshDueMsg struct{}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// LoadWeek fetches a week of appointments from the backend, persisting the
// result to the snapshot cache. If the backend is unreachable it falls back
// to the cached window so the calendar still renders.
func LoadWeek(booking Booking, cache Cache, weekStart time.Time) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		from := weekStart
		to := weekStart.AddDate(0, 0, 6)

		appts, err := booking.ListAppointments(ctx, from, to)
		if err != nil {
			if cache == nil {
				return ErrMsg{Err: err}
			}
			cached, cacheErr := cache.LoadWindow(ctx, from, to)
			if cacheErr != nil || cached == nil {
				return ErrMsg{Err: err}
			}
			return AppointmentsLoadedMsg{From: from, To: to, Appointments: cached, Origin: SourceSnapshot}
		}

		if cache != nil {
			// Snapshot failures are not fatal, the live data already loaded.
			_ = cache.SaveWindow(ctx, from, to, appts)
		}

		return AppointmentsLoadedMsg{From: from, To: to, Appointments: appts, Origin: SourceBackend}
	}
}

// LoadCachedWeek loads a week from the snapshot cache only. Used at startup
// to paint stale data immediately while the backend fetch is in flight.
func LoadCachedWeek(cache Cache, weekStart time.Time) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		from := weekStart
		to := weekStart.AddDate(0, 0, 6)

		appts, err := cache.LoadWindow(ctx, from, to)
		if err != nil || len(appts) == 0 {
			// Nothing cached, the backend fetch will populate the grid.
			return nil
		}
		return AppointmentsLoadedMsg{From: from, To: to, Appointments: appts, Origin: SourceSnapshot}
	}
}

// Reschedule sends the appointment move to the backend. Generation is echoed
// back so stale results from an abandoned gesture can be discarded.
func Reschedule(booking Booking, id string, newStart time.Time, generation uint64) tea.Cmd {
	return func() tea.Msg {
		err := booking.UpdateAppointment(context.Background(), id, newStart, true)
		return UpdateResultMsg{AppointmentID: id, Generation: generation, Err: err}
	}
}

// HoverTick schedules a hover evaluation after the debounce interval.
func HoverTick(generation uint64) tea.Cmd {
	return tea.Tick(drag.HoverInterval, func(time.Time) tea.Msg {
		return HoverTickMsg{Generation: generation}
	})
}

// RefreshAfter schedules a backend refresh after the given delay.
func RefreshAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return RefreshDueMsg{}
	})
}

// ClearStatusAfter clears the status line after the given delay.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
