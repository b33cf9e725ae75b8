// Package tui provides the terminal user interface for figaro.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/figaroapp/figaro/internal/tui/theme"
)

// Default column width - will be recalculated dynamically.
const defaultColWidth = 18

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	// Theme colors as lipgloss colors
	colorBg          lipgloss.Color
	colorBgHighlight lipgloss.Color
	colorBgSelection lipgloss.Color
	colorFg          lipgloss.Color
	colorFgMuted     lipgloss.Color
	colorAccent      lipgloss.Color
	colorWarning     lipgloss.Color

	colorTextOnAccent  lipgloss.Color
	colorTextOnWarning lipgloss.Color
	colorTextOnBooked  lipgloss.Color

	// Derived backgrounds for appointment blocks
	colorBookedBg     lipgloss.Color
	colorBookedBgAlt  lipgloss.Color
	colorBookedPastBg lipgloss.Color
	colorDoneBg       lipgloss.Color
	colorValidBg      lipgloss.Color
	colorInvalidBg    lipgloss.Color
	colorMagnetBg     lipgloss.Color

	// Title style
	TitleStyle lipgloss.Style

	// Header styles
	HeaderStyle         lipgloss.Style
	DayHeaderStyle      lipgloss.Style
	DayHeaderTodayStyle lipgloss.Style

	// Time column
	TimeColumnStyle lipgloss.Style

	// Appointment cell styles
	ApptCellStyle     lipgloss.Style
	ApptBookedStyle   lipgloss.Style
	ApptBookedAlt     lipgloss.Style // Alternate shade for adjacent appointments
	ApptPastStyle     lipgloss.Style // Appointments earlier today / past days
	ApptDoneStyle     lipgloss.Style // Completed appointments
	ApptCancelled     lipgloss.Style // Cancelled appointments (kept visible, muted)
	ApptDraggingStyle lipgloss.Style // The appointment being dragged
	ApptUpdatingStyle lipgloss.Style // Optimistic update awaiting the backend

	// Drop target styles
	HoverValidStyle   lipgloss.Style
	HoverInvalidStyle lipgloss.Style
	MagnetStyle       lipgloss.Style // Hovered valid slot within magnetic range

	// Empty cell
	EmptyCellStyle lipgloss.Style

	// Cursor style
	CursorStyle lipgloss.Style

	// Status message
	StatusStyle lipgloss.Style

	// Stale data banner
	StaleStyle lipgloss.Style

	// Help text
	HelpStyle lipgloss.Style

	// Modal styles
	ModalStyle             lipgloss.Style
	ModalBgColor           lipgloss.Color
	ModalTitleStyle        lipgloss.Style
	ModalBodyStyle         lipgloss.Style
	ModalMetaStyle         lipgloss.Style
	ModalWarnStyle         lipgloss.Style
	ModalButtonStyle       lipgloss.Style
	ModalButtonActiveStyle lipgloss.Style
	ModalHintStyle         lipgloss.Style

	// App container
	AppStyle lipgloss.Style

	// Separator style
	SeparatorStyle lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	s := &Styles{}
	palette := theme.NewPalette(t)

	s.colorBg = palette.Bg
	s.colorBgHighlight = palette.BgHighlight
	s.colorBgSelection = palette.BgSelection
	s.colorFg = palette.Fg
	s.colorFgMuted = palette.FgMuted
	s.colorAccent = palette.Accent
	s.colorWarning = palette.Warning

	s.colorTextOnAccent = palette.TextOnAccent
	s.colorTextOnWarning = palette.TextOnWarning
	s.colorTextOnBooked = palette.TextOnBooked

	s.colorBookedBg = palette.BookedBg
	s.colorBookedBgAlt = palette.BookedBgAlt
	s.colorBookedPastBg = palette.BookedPastBg
	s.colorDoneBg = palette.DoneBg
	s.colorValidBg = palette.ValidBg
	s.colorInvalidBg = palette.InvalidBg
	s.colorMagnetBg = palette.MagnetBg

	// Title style
	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.colorAccent).
		Background(s.colorBg)

	s.HeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.colorAccent).
		Background(s.colorBg)

	// Day column header
	s.DayHeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Align(lipgloss.Center).
		Foreground(s.colorFg).
		Background(s.colorBg).
		Width(defaultColWidth)

	s.DayHeaderTodayStyle = s.DayHeaderStyle.
		Foreground(s.colorAccent).
		Bold(true)

	// Time column
	s.TimeColumnStyle = lipgloss.NewStyle().
		Foreground(s.colorAccent).
		Background(s.colorBg).
		Width(timeColWidth)

	// Appointment cell styles
	s.ApptCellStyle = lipgloss.NewStyle().
		Width(defaultColWidth).
		Align(lipgloss.Left)

	s.ApptBookedStyle = s.ApptCellStyle.
		Background(s.colorBookedBg).
		Foreground(s.colorFg).
		Bold(true)

	s.ApptBookedAlt = s.ApptCellStyle.
		Background(s.colorBookedBgAlt).
		Foreground(s.colorFg).
		Bold(true)

	s.ApptPastStyle = s.ApptCellStyle.
		Background(s.colorBookedPastBg).
		Foreground(s.colorFg)

	s.ApptDoneStyle = s.ApptCellStyle.
		Background(s.colorDoneBg).
		Foreground(s.colorFg)

	s.ApptCancelled = s.ApptCellStyle.
		Background(s.colorBgHighlight).
		Foreground(s.colorFgMuted).
		Strikethrough(true)

	s.ApptDraggingStyle = s.ApptCellStyle.
		Background(s.colorAccent).
		Foreground(s.colorTextOnAccent).
		Bold(true)

	// In-flight optimistic updates render italic until the backend settles
	s.ApptUpdatingStyle = s.ApptCellStyle.
		Background(s.colorBookedBg).
		Foreground(s.colorFg).
		Italic(true)

	// Drop target highlights
	s.HoverValidStyle = s.ApptCellStyle.
		Background(s.colorValidBg).
		Foreground(s.colorFg).
		Bold(true)

	s.HoverInvalidStyle = s.ApptCellStyle.
		Background(s.colorInvalidBg).
		Foreground(s.colorFg).
		Bold(true)

	s.MagnetStyle = s.ApptCellStyle.
		Background(s.colorMagnetBg).
		Foreground(s.colorBg).
		Bold(true)

	// Empty cell
	s.EmptyCellStyle = lipgloss.NewStyle().
		Width(defaultColWidth).
		Foreground(s.colorFgMuted).
		Background(s.colorBg)

	// Cursor style
	s.CursorStyle = lipgloss.NewStyle().
		Width(defaultColWidth).
		Background(s.colorBgSelection).
		Foreground(s.colorAccent).
		Bold(true)

	// Status message
	s.StatusStyle = lipgloss.NewStyle().
		Foreground(s.colorWarning).
		Background(s.colorBg).
		Bold(true)

	// Stale banner - shown while rendering snapshot data
	s.StaleStyle = lipgloss.NewStyle().
		Foreground(s.colorBg).
		Background(s.colorWarning).
		Bold(true).
		Padding(0, 1)

	// Help text
	s.HelpStyle = lipgloss.NewStyle().
		Foreground(s.colorFg).
		Background(s.colorBg)

	// Modal styles - use high-contrast theme colors
	modal := palette.Modal
	s.ModalBgColor = modal.Bg

	s.ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(modal.Border).
		Background(modal.Bg).
		Foreground(modal.Text).
		Padding(1, 1).
		Width(60).
		Align(lipgloss.Left)

	s.ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(modal.Text).
		Background(modal.Bg)

	s.ModalBodyStyle = lipgloss.NewStyle().
		Foreground(modal.Text).
		Background(modal.Bg)

	s.ModalMetaStyle = lipgloss.NewStyle().
		Foreground(modal.Muted).
		Background(modal.Bg)

	s.ModalWarnStyle = lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Dark: string(s.colorWarning), Light: string(s.colorWarning)}).
		Background(modal.Bg).
		Bold(true)

	s.ModalButtonStyle = lipgloss.NewStyle().
		Background(modal.Panel).
		Foreground(modal.Text).
		Padding(0, 3)

	s.ModalButtonActiveStyle = lipgloss.NewStyle().
		Background(modal.Highlight).
		Foreground(modal.ReverseText).
		Padding(0, 3).
		Underline(true)

	s.ModalHintStyle = lipgloss.NewStyle().
		Foreground(modal.Muted).
		Background(modal.Bg)

	// App container. No padding: mouse coordinates map straight onto the
	// grid, so the view renders flush with the terminal origin.
	s.AppStyle = lipgloss.NewStyle().
		Background(s.colorBg)

	// Separator style
	s.SeparatorStyle = lipgloss.NewStyle().
		Foreground(s.colorBgSelection).
		Background(s.colorBg)

	return s
}

// ApptBookedStyleWidth returns the booked appointment style with the given width.
func (s *Styles) ApptBookedStyleWidth(width int) lipgloss.Style {
	return s.ApptBookedStyle.Width(width)
}

// EmptyCellStyleWidth returns the empty cell style with the given width.
func (s *Styles) EmptyCellStyleWidth(width int) lipgloss.Style {
	return s.EmptyCellStyle.Width(width)
}

// CursorStyleWidth returns the cursor style with the given width.
func (s *Styles) CursorStyleWidth(width int) lipgloss.Style {
	return s.CursorStyle.Width(width)
}

// DayHeaderStyleWidth returns the day header style with the given width.
func (s *Styles) DayHeaderStyleWidth(width int) lipgloss.Style {
	return s.DayHeaderStyle.Width(width)
}

// DayHeaderTodayStyleWidth returns the today header style with the given width.
func (s *Styles) DayHeaderTodayStyleWidth(width int) lipgloss.Style {
	return s.DayHeaderTodayStyle.Width(width)
}
