package tui

import (
	"fmt"
	"strings"

	"github.com/figaroapp/figaro/internal/schedule"
)

// renderModal renders the current modal.
func (m Model) renderModal() string {
	switch m.modalType {
	case ModalDetail:
		return m.renderDetailModal()
	case ModalConflict:
		return m.renderConflictModal()
	default:
		return ""
	}
}

// renderDetailModal shows the full details of the selected appointment.
func (m Model) renderDetailModal() string {
	a := m.detailAppt
	if a == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.ModalTitleStyle.Render(a.ClientName))
	b.WriteString("\n\n")

	rows := [][2]string{
		{"Service", a.Service},
		{"Barber", a.BarberID},
		{"When", a.StartTime.Format("Mon 2 Jan 15:04")},
		{"Duration", fmt.Sprintf("%d min", a.DurationMinutes)},
		{"Status", string(a.Status)},
	}
	for _, r := range rows {
		if r[1] == "" {
			continue
		}
		b.WriteString(m.styles.ModalMetaStyle.Render(fmt.Sprintf("%-9s", r[0])))
		b.WriteString(m.styles.ModalBodyStyle.Render(r[1]))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.ModalHintStyle.Render("enter/esc close"))

	return m.styles.ModalStyle.Render(b.String())
}

// renderConflictModal asks for confirmation before a risky move goes out.
func (m Model) renderConflictModal() string {
	if m.proposal == nil {
		return ""
	}
	an := m.proposal.Analysis
	who := "this appointment"
	if a := m.session.Appointment(); a != nil {
		who = a.ClientName
	}

	var b strings.Builder
	b.WriteString(m.styles.ModalTitleStyle.Render("Confirm move"))
	b.WriteString("\n\n")
	b.WriteString(m.styles.ModalBodyStyle.Render(fmt.Sprintf(
		"Move %s to %s?", who, m.proposalStart.Format("Mon 2 Jan 15:04"))))
	b.WriteString("\n\n")

	for _, c := range an.Conflicts {
		b.WriteString(m.styles.ModalWarnStyle.Render("! " + describeConflict(c)))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.ModalMetaStyle.Render(fmt.Sprintf("Risk score: %d", an.RiskScore)))
	b.WriteString("\n\n")

	keep := m.styles.ModalButtonStyle.Render("  Move anyway  ")
	cancel := m.styles.ModalButtonActiveStyle.Render("  Cancel  ")
	if m.modalChoice == 0 {
		keep = m.styles.ModalButtonActiveStyle.Render("  Move anyway  ")
		cancel = m.styles.ModalButtonStyle.Render("  Cancel  ")
	}
	b.WriteString(keep + "  " + cancel)
	b.WriteString("\n\n")
	b.WriteString(m.styles.ModalHintStyle.Render("←/→ select · enter confirm · esc cancel"))

	return m.styles.ModalStyle.Render(b.String())
}

func describeConflict(c schedule.Conflict) string {
	switch c.Type {
	case schedule.ConflictOverlap:
		if c.Other != nil {
			return fmt.Sprintf("Overlaps %s at %s", c.Other.ClientName, c.Other.StartTime.Format("15:04"))
		}
		return "Overlaps another appointment"
	case schedule.ConflictBufferViolation:
		if c.Other != nil {
			return fmt.Sprintf("Too close to %s's appointment", c.Other.ClientName)
		}
		return "Too close to another appointment"
	case schedule.ConflictOutsideHours:
		return "Outside working hours"
	default:
		return string(c.Type)
	}
}
