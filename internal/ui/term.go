package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the UI.
var (
	// Scheduled bookings: bold cyan
	colorBooked = color.New(color.FgCyan, color.Bold)

	// Completed bookings: green
	colorDone = color.New(color.FgGreen)

	// Cancelled bookings: dim red
	colorCancelled = color.New(color.FgRed, color.Faint)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Stats: yellow to make them pop
	colorStats = color.New(color.FgYellow)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

// formatBooked formats text for a scheduled booking.
func formatBooked(s string) string {
	return colorBooked.Sprint(s)
}

// formatDone formats text for a completed booking.
func formatDone(s string) string {
	return colorDone.Sprint(s)
}

// formatCancelled formats text for a cancelled booking.
func formatCancelled(s string) string {
	return colorCancelled.Sprint(s)
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatStats formats text for statistics.
func formatStats(s string) string {
	return colorStats.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
