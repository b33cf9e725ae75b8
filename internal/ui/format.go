package ui

import (
	"fmt"
	"strings"

	"github.com/figaroapp/figaro/internal/appointment"
	"github.com/figaroapp/figaro/internal/schedule"
)

// Stats holds aggregated statistics for a set of appointments.
type Stats struct {
	BookedMinutes  int
	TotalBookings  int
	CompletedCount int
	CancelledCount int
	DayStats       map[string]DayStats
}

// DayStats holds statistics for a single day.
type DayStats struct {
	BookedMinutes int
	Bookings      int
}

// BusiestDay returns the day with the most booked minutes.
func (s Stats) BusiestDay() (day string, minutes int) {
	for d, ds := range s.DayStats {
		if ds.BookedMinutes > minutes {
			minutes = ds.BookedMinutes
			day = d
		}
	}
	return day, minutes
}

// Occupancy returns booked minutes as a percentage of the available
// working minutes.
func (s Stats) Occupancy(availableMinutes int) int {
	if availableMinutes <= 0 {
		return 0
	}
	pct := (s.BookedMinutes * 100) / availableMinutes
	if pct > 100 {
		pct = 100
	}
	return pct
}

// AccumulateStats updates stats based on an appointment.
func AccumulateStats(stats *Stats, a *appointment.Appointment, dayKey string) {
	stats.TotalBookings++

	if stats.DayStats == nil {
		stats.DayStats = make(map[string]DayStats)
	}
	ds := stats.DayStats[dayKey]
	ds.Bookings++

	switch a.Status {
	case appointment.StatusCancelled:
		stats.CancelledCount++
	case appointment.StatusCompleted:
		stats.CompletedCount++
		stats.BookedMinutes += a.DurationMinutes
		ds.BookedMinutes += a.DurationMinutes
	default:
		stats.BookedMinutes += a.DurationMinutes
		ds.BookedMinutes += a.DurationMinutes
	}
	stats.DayStats[dayKey] = ds
}

// PrintAppointmentRow prints a single appointment row with consistent
// formatting.
func PrintAppointmentRow(a *appointment.Appointment, maxNameWidth int) {
	symbol := statusSymbol(a.Status)

	name := a.ClientName
	if len(name) > maxNameWidth {
		name = name[:maxNameWidth-3] + "..."
	}

	row := fmt.Sprintf("  %s  %s-%s  %-*s  %s",
		symbol,
		a.StartTime.Format("15:04"),
		a.EndTime().Format("15:04"),
		maxNameWidth, name,
		a.Service,
	)

	switch a.Status {
	case appointment.StatusCancelled:
		fmt.Println(formatCancelled(row))
	case appointment.StatusCompleted:
		fmt.Println(formatDone(row))
	default:
		fmt.Println(formatBooked(row))
	}
}

// PrintStats prints the stats summary line.
func PrintStats(stats Stats, availableMinutes int) {
	booked := formatStats(fmt.Sprintf("Booked: %s", FormatDuration(stats.BookedMinutes)))
	fmt.Printf("%s | Bookings: %d", booked, stats.TotalBookings)
	if availableMinutes > 0 {
		fmt.Printf(" | Occupancy: %s", formatStats(fmt.Sprintf("%d%%", stats.Occupancy(availableMinutes))))
	}
	fmt.Println()

	if stats.CompletedCount > 0 || stats.CancelledCount > 0 {
		fmt.Println(formatMuted(fmt.Sprintf("Completed: %d  |  Cancelled: %d",
			stats.CompletedCount, stats.CancelledCount)))
	}
}

// OccupancyBar creates an ASCII bar showing how full a day is.
func OccupancyBar(bookedMinutes, availableMinutes, width int) string {
	if availableMinutes <= 0 {
		return "[" + strings.Repeat("░", width) + "]"
	}

	filled := (bookedMinutes * width) / availableMinutes
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	pct := (bookedMinutes * 100) / availableMinutes
	if pct > 100 {
		pct = 100
	}
	return fmt.Sprintf("[%s] %s", formatBooked(bar), formatStats(fmt.Sprintf("%d%%", pct)))
}

// FormatDuration formats minutes as a human-readable duration.
func FormatDuration(minutes int) string {
	if minutes == 0 {
		return "0m"
	}
	hours := minutes / 60
	mins := minutes % 60
	if hours == 0 {
		return fmt.Sprintf("%dm", mins)
	}
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh%dm", hours, mins)
}

// workingMinutesPerDay returns the length of the configured working day.
func workingMinutesPerDay(dayStart, dayEnd string) int {
	mins := schedule.TimeToMinutes(dayEnd) - schedule.TimeToMinutes(dayStart)
	if mins < 0 {
		return 0
	}
	return mins
}

// statusSymbol returns the status indicator for an appointment.
func statusSymbol(s appointment.Status) string {
	switch s {
	case appointment.StatusScheduled:
		return "○"
	case appointment.StatusCompleted:
		return "✓"
	case appointment.StatusCancelled:
		return "✗"
	default:
		return "?"
	}
}
