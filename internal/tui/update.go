package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/figaroapp/figaro/internal/appointment"
	"github.com/figaroapp/figaro/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		LogKeyPress(msg)
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout.colWidth = m.calculateColWidth()
		return m, nil

	case commands.AppointmentsLoadedMsg:
		// A backend load supersedes snapshot data; a snapshot load never
		// overwrites fresher backend data.
		if msg.Origin == commands.SourceSnapshot && !m.loading && !m.stale {
			return m, nil
		}
		m.setAppointments(msg.Appointments)
		m.loading = false
		m.stale = msg.Origin == commands.SourceSnapshot
		LogProjection(m.manager, "loaded")
		return m, nil

	case commands.UpdateResultMsg:
		outcome, ok := m.manager.CommitOrRollback(msg.AppointmentID, msg.Err)
		if !ok {
			// No pending update for this id: a stale result from an
			// abandoned gesture. Nothing to reconcile.
			LogStaleResult(msg.AppointmentID, msg.Generation)
			return m, nil
		}
		m.index = appointment.BuildIndex(m.manager.All())
		m.validator.InvalidateCache()
		if m.session.Generation() == msg.Generation && m.mode == ModeDrag {
			m.session.Finish()
			m.mode = ModeNormal
		}
		if outcome.Committed {
			m.statusMsg = "Appointment moved"
			m.statusTime = m.now().Add(3 * time.Second)
			LogReconcile(msg.AppointmentID, true, "")
			return m, tea.Batch(
				commands.RefreshAfter(outcome.RefreshAfter),
				commands.ClearStatusAfter(3*time.Second),
			)
		}
		m.statusMsg = outcome.Message
		m.statusTime = m.now().Add(5 * time.Second)
		LogReconcile(msg.AppointmentID, false, outcome.Message)
		return m, tea.Batch(
			commands.LoadWeek(m.booking, m.cache, m.weekStart),
			commands.ClearStatusAfter(5*time.Second),
		)

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case commands.HoverTickMsg:
		if m.session.EvaluatePending(msg.Generation, m.manager.All()) {
			LogHover(m.session)
		}
		return m, nil

	case commands.RefreshDueMsg:
		return m, commands.LoadWeek(m.booking, m.cache, m.weekStart)

	case commands.ErrMsg:
		m.err = msg.Err
		m.loading = false
		m.statusMsg = fmt.Sprintf("Error: %v", msg.Err)
		m.statusTime = m.now().Add(5 * time.Second)
		return m, commands.ClearStatusAfter(5 * time.Second)

	case commands.StatusMsgCmd:
		m.statusMsg = msg.Msg
		m.statusTime = m.now().Add(3 * time.Second)
		return m, commands.ClearStatusAfter(3 * time.Second)

	case commands.ClearStatusMsg:
		if m.now().After(m.statusTime) {
			m.statusMsg = ""
		}
		return m, nil
	}

	return m, nil
}

// calculateColWidth divides the available width across the seven day columns.
func (m *Model) calculateColWidth() int {
	if m.width <= 0 {
		return defaultColWidth
	}
	w := (m.width - timeColWidth) / daysPerWeek
	if w < 8 {
		w = 8
	}
	if w > 24 {
		w = 24
	}
	return w
}
