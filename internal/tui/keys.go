package tui

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/figaroapp/figaro/internal/appointment"
	"github.com/figaroapp/figaro/internal/dateutil"
	"github.com/figaroapp/figaro/internal/tui/commands"
)

// handleKeyMsg routes key presses by interaction mode.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeModal:
		return m.handleModalKeys(msg)
	case ModeDrag:
		return m.handleDragKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.cursor.Row > 0 {
			m.cursor.Row--
			if m.cursor.Row < m.scrollOffset {
				m.scrollOffset = m.cursor.Row
			}
		}
		return m, nil

	case "down", "j":
		if m.cursor.Row < m.layout.rows()-1 {
			m.cursor.Row++
			if m.cursor.Row >= m.scrollOffset+m.visibleRows() {
				m.scrollOffset = m.cursor.Row - m.visibleRows() + 1
			}
		}
		return m, nil

	case "left", "h":
		if m.cursor.Day > 0 {
			m.cursor.Day--
		}
		return m, nil

	case "right", "l":
		if m.cursor.Day < daysPerWeek-1 {
			m.cursor.Day++
		}
		return m, nil

	case "H", "[":
		m.weekStart = m.weekStart.AddDate(0, 0, -7)
		cmd := m.reload()
		return m, cmd

	case "L", "]":
		m.weekStart = m.weekStart.AddDate(0, 0, 7)
		cmd := m.reload()
		return m, cmd

	case "t":
		monday, _ := dateutil.WeekRange(m.now())
		if !monday.Equal(m.weekStart) {
			m.weekStart = monday
			cmd := m.reload()
			return m, cmd
		}
		return m, nil

	case "r":
		cmd := m.reload()
		return m, cmd

	case "enter":
		if appt := m.apptCovering(m.cursor); appt != nil {
			m.mode = ModeModal
			m.modalType = ModalDetail
			m.detailAppt = appt
		}
		return m, nil

	case "y":
		appt := m.apptCovering(m.cursor)
		if appt == nil {
			return m, nil
		}
		text := fmt.Sprintf("%s - %s (%s, %d min)",
			appt.StartTime.Format("Mon 2 Jan 15:04"), appt.ClientName, appt.Service, appt.DurationMinutes)
		if err := clipboard.WriteAll(text); err != nil {
			return m.flashStatus("Clipboard unavailable", 3*time.Second)
		}
		return m.flashStatus("Copied to clipboard", 2*time.Second)
	}

	return m, nil
}

func (m Model) handleDragKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.session.Cancel()
		m.mode = ModeNormal
		LogDrag(m.session, "cancel_key")
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modalType {
	case ModalDetail:
		switch msg.String() {
		case "esc", "q", "enter":
			m.closeModal()
		case "ctrl+c":
			return m, tea.Quit
		}
		return m, nil

	case ModalConflict:
		switch msg.String() {
		case "left", "right", "tab", "h", "l":
			m.modalChoice = 1 - m.modalChoice
			return m, nil

		case "esc", "n":
			return m.abortConflict()

		case "enter":
			if m.modalChoice == 0 {
				return m.confirmConflict()
			}
			return m.abortConflict()

		case "y":
			return m.confirmConflict()

		case "ctrl+c":
			return m, tea.Quit
		}
		return m, nil
	}

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	return m, nil
}

// confirmConflict applies a deferred risky move and fires the backend call.
func (m Model) confirmConflict() (tea.Model, tea.Cmd) {
	appt := m.session.Appointment()
	m.closeModal()
	m.proposal = nil
	if appt == nil {
		m.session.Finish()
		return m, nil
	}

	newStart := m.proposalStart
	generation := m.session.Generation()
	update := m.manager.Apply(appt.ID, newStart)
	m.session.Finish()

	if update == nil {
		return m.flashStatus("Another update for this appointment is in flight.", 3*time.Second)
	}

	m.index = appointment.BuildIndex(m.manager.All())
	m.validator.InvalidateCache()
	LogReconcile(appt.ID, true, "confirmed_risky_move")
	return m, commands.Reschedule(m.booking, appt.ID, newStart, generation)
}

// abortConflict abandons a deferred move; nothing was applied.
func (m Model) abortConflict() (tea.Model, tea.Cmd) {
	m.closeModal()
	m.session.Finish()
	m.proposal = nil
	return m.flashStatus("Move cancelled", 2*time.Second)
}

func (m *Model) closeModal() {
	m.mode = ModeNormal
	m.modalType = ModalNone
	m.detailAppt = nil
}

// reload kicks off a backend fetch for the current week.
func (m *Model) reload() tea.Cmd {
	m.loading = true
	return tea.Batch(commands.LoadWeek(m.booking, m.cache, m.weekStart), m.spinner.Tick)
}

// visibleRows returns how many slot rows fit in the terminal.
func (m *Model) visibleRows() int {
	avail := m.height - m.gridTop() - footerLines
	if avail < 1 {
		return 1
	}
	if avail > m.layout.rows() {
		return m.layout.rows()
	}
	return avail
}
