package tui

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/figaroapp/figaro/internal/appointment"
	"github.com/figaroapp/figaro/internal/drag"
	"github.com/figaroapp/figaro/internal/reconcile"
	"github.com/figaroapp/figaro/internal/tui/commands"
)

// handleMouseMsg routes mouse events: left press picks up an appointment,
// motion hovers it across the grid, release drops it.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode == ModeModal {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if m.scrollOffset > 0 {
			m.scrollOffset--
		}
		return m, nil
	case tea.MouseButtonWheelDown:
		if m.scrollOffset < m.layout.rows()-1 {
			m.scrollOffset++
		}
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		return m.mousePress(msg.X, msg.Y)

	case tea.MouseActionMotion:
		if m.mode != ModeDrag {
			return m, nil
		}
		return m.mouseMotion(msg.X, msg.Y)

	case tea.MouseActionRelease:
		if m.mode != ModeDrag {
			return m, nil
		}
		return m.mouseRelease(msg.X, msg.Y)
	}

	return m, nil
}

func (m Model) mousePress(x, y int) (tea.Model, tea.Cmd) {
	cell, ok := m.layout.cellAt(x, y-m.gridTop()+m.scrollOffset)
	if !ok {
		return m, nil
	}
	m.cursor = cell

	appt := m.apptCovering(cell)
	if appt == nil {
		return m, nil
	}
	if m.manager.IsUpdating(appt.ID) {
		return m.flashStatus("This appointment is still being updated.", 3*time.Second)
	}

	if err := m.session.Start(appt); err != nil {
		if errors.Is(err, drag.ErrNotDraggable) {
			return m.flashStatus("This appointment can no longer be moved.", 3*time.Second)
		}
		return m, nil
	}

	m.mode = ModeDrag
	LogDrag(m.session, "start")
	return m, nil
}

func (m Model) mouseMotion(x, y int) (tea.Model, tea.Cmd) {
	cell, ok := m.layout.cellAt(x, y-m.gridTop()+m.scrollOffset)
	if !ok {
		return m, nil
	}

	slot := m.layout.slotFor(m.weekStart, cell)
	pointer := pointerPx(x, y)
	center := m.layout.cellCenterPx(cell, m.gridTop(), m.scrollOffset)

	if m.session.Hover(slot, pointer, center) {
		return m, commands.HoverTick(m.session.Generation())
	}
	return m, nil
}

func (m Model) mouseRelease(x, y int) (tea.Model, tea.Cmd) {
	appt := m.session.Appointment()

	cell, ok := m.layout.cellAt(x, y-m.gridTop()+m.scrollOffset)
	if !ok {
		// Released outside the grid: abandon the gesture.
		m.session.Cancel()
		m.mode = ModeNormal
		LogDrag(m.session, "cancel_offgrid")
		return m, nil
	}

	slot := m.layout.slotFor(m.weekStart, cell)
	result, err := m.session.Drop(slot, m.manager.All())
	if err != nil {
		m.mode = ModeNormal
		return m, nil
	}

	if !result.Accepted {
		m.mode = ModeNormal
		LogDrag(m.session, "drop_rejected")
		return m.flashStatus(result.Reason, 4*time.Second)
	}

	newStart := slot.Time()
	proposal, err := m.manager.Propose(appt.ID, newStart, m.analyzer)
	if err != nil {
		m.session.Finish()
		m.mode = ModeNormal
		if errors.Is(err, reconcile.ErrUpdateInFlight) {
			return m.flashStatus("Another update for this appointment is in flight.", 3*time.Second)
		}
		return m.flashStatus("Failed to move appointment. Please try again.", 3*time.Second)
	}

	if proposal.Decision == reconcile.DecisionDefer {
		// Risky move: nothing applied yet, ask first.
		_ = m.session.Defer()
		m.mode = ModeModal
		m.modalType = ModalConflict
		m.proposal = &proposal
		m.proposalStart = newStart
		m.modalChoice = 1 // default to cancel
		LogDrag(m.session, "deferred")
		return m, nil
	}

	// Low risk: already applied optimistically, fire the backend call.
	_ = m.session.Commit()
	m.index = appointment.BuildIndex(m.manager.All())
	LogDrag(m.session, "committing")
	return m, commands.Reschedule(m.booking, appt.ID, newStart, m.session.Generation())
}

// flashStatus sets a transient status message.
func (m Model) flashStatus(text string, d time.Duration) (tea.Model, tea.Cmd) {
	m.statusMsg = text
	m.statusTime = m.now().Add(d)
	return m, commands.ClearStatusAfter(d)
}
