package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/figaroapp/figaro/internal/appointment"
	"github.com/figaroapp/figaro/internal/drag"
)

// Footer: status line + help line.
const footerLines = 2

// View renders the week grid with header, footer, and any active modal.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderTitle())
	b.WriteString("\n")
	if m.stale {
		b.WriteString(m.styles.StaleStyle.Render("Offline: showing last saved schedule"))
		b.WriteString("\n")
	}
	b.WriteString(m.renderDayHeaders())
	b.WriteString("\n")
	b.WriteString(m.renderGrid())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	base := m.styles.AppStyle.Render(b.String())

	if m.mode == ModeModal && m.modalType != ModalNone {
		modal := m.renderModal()
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal,
			lipgloss.WithWhitespaceBackground(m.styles.ModalBgColor))
	}

	return base
}

func (m Model) renderTitle() string {
	weekEnd := m.weekStart.AddDate(0, 0, 6)
	title := fmt.Sprintf("Figaro  %s - %s",
		m.weekStart.Format("2 Jan"), weekEnd.Format("2 Jan 2006"))
	if m.loading {
		title += "  " + m.spinner.View()
	}
	if n := m.manager.PendingCount(); n > 0 {
		title += fmt.Sprintf("  [%d updating]", n)
	}
	return m.styles.TitleStyle.Render(title)
}

func (m Model) renderDayHeaders() string {
	cols := make([]string, 0, daysPerWeek+1)
	cols = append(cols, m.styles.TimeColumnStyle.Render(""))

	today := m.now()
	for d := 0; d < daysPerWeek; d++ {
		day := m.weekStart.AddDate(0, 0, d)
		label := day.Format("Mon 2")
		style := m.styles.DayHeaderStyleWidth(m.layout.colWidth)
		if day.Year() == today.Year() && day.YearDay() == today.YearDay() {
			style = m.styles.DayHeaderTodayStyleWidth(m.layout.colWidth)
		}
		cols = append(cols, style.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (m Model) renderGrid() string {
	rows := m.layout.rows()
	visible := m.visibleRows()
	lines := make([]string, 0, visible)

	for row := m.scrollOffset; row < rows && row < m.scrollOffset+visible; row++ {
		lines = append(lines, m.renderRow(row))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderRow(row int) string {
	minutes := m.layout.dayStartMin + row*slotMinutes
	label := fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)

	cols := make([]string, 0, daysPerWeek+1)
	cols = append(cols, m.styles.TimeColumnStyle.Render(label))

	for d := 0; d < daysPerWeek; d++ {
		cols = append(cols, m.renderCell(Cell{Day: d, Row: row}))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (m Model) renderCell(c Cell) string {
	w := m.layout.colWidth
	slot := m.layout.slotFor(m.weekStart, c)
	appt := m.apptCovering(c)

	// Drop target highlight wins over everything else.
	if m.mode == ModeDrag {
		if hovered := m.session.Hovered(); hovered != nil && hovered.Equal(slot) {
			label := m.dropLabel(appt)
			switch {
			case m.session.HoverValid() && m.session.NearMagnetic():
				return m.styles.MagnetStyle.Width(w).Render(truncate(label, w))
			case m.session.HoverValid():
				return m.styles.HoverValidStyle.Width(w).Render(truncate(label, w))
			default:
				return m.styles.HoverInvalidStyle.Width(w).Render(truncate(label, w))
			}
		}
	}

	if appt != nil {
		style, label := m.apptCellContent(appt, slot.Time())
		cell := style.Width(w).Render(truncate(label, w))
		if m.mode == ModeNormal && c == m.cursor {
			return m.styles.CursorStyleWidth(w).Render(truncate(label, w))
		}
		return cell
	}

	if m.mode == ModeNormal && c == m.cursor {
		return m.styles.CursorStyleWidth(w).Render("")
	}
	return m.styles.EmptyCellStyleWidth(w).Render("·")
}

// apptCellContent picks the style and label for an appointment cell.
func (m Model) apptCellContent(a *appointment.Appointment, cellStart time.Time) (lipgloss.Style, string) {
	var label string
	if a.StartTime.Equal(cellStart) || a.StartTime.After(cellStart) {
		label = fmt.Sprintf("%s %s", a.ClientName, a.Service)
	} else {
		// Continuation row of a multi-slot appointment.
		label = "│"
	}

	dragged := m.session.Appointment()
	switch {
	case dragged != nil && dragged.ID == a.ID && m.session.State() != drag.StateIdle:
		return m.styles.ApptDraggingStyle, label
	case m.manager.IsUpdating(a.ID):
		return m.styles.ApptUpdatingStyle, label
	case a.Status == appointment.StatusCompleted:
		return m.styles.ApptDoneStyle, label
	case a.Status == appointment.StatusCancelled:
		return m.styles.ApptCancelled, label
	case a.EndTime().Before(m.now()):
		return m.styles.ApptPastStyle, label
	default:
		return m.styles.ApptBookedStyle, label
	}
}

// dropLabel names the appointment occupying a hovered slot, if any.
func (m Model) dropLabel(occupant *appointment.Appointment) string {
	dragged := m.session.Appointment()
	if dragged != nil {
		return fmt.Sprintf("%s %s", dragged.ClientName, dragged.Service)
	}
	if occupant != nil {
		return occupant.ClientName
	}
	return ""
}

func (m Model) renderFooter() string {
	status := m.statusMsg
	if status == "" && m.err != nil {
		status = fmt.Sprintf("Error: %v", m.err)
	}

	help := "arrows move · drag appointments with the mouse · enter details · r refresh · [/] weeks · q quit"
	if m.mode == ModeDrag {
		help = "drop on a highlighted slot · esc cancel"
	}

	return m.styles.StatusStyle.Render(status) + "\n" + m.styles.HelpStyle.Render(help)
}

// truncate shortens a string to fit a cell width, ANSI-aware.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= max {
		return s
	}
	if max == 1 {
		return ansi.Truncate(s, 1, "")
	}
	return ansi.Truncate(s, max, "…")
}
