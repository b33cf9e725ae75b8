// Package drag owns the lifecycle of a single drag gesture: start, debounced
// hover with magnetic snap, drop, and cancellation. The session is an
// explicit struct passed to collaborators so the state machine can be tested
// without a UI harness.
package drag

import (
	"errors"
	"fmt"
	"time"

	"github.com/figaroapp/figaro/internal/appointment"
	"github.com/figaroapp/figaro/internal/schedule"
)

// Session errors.
var (
	ErrNotDraggable    = errors.New("appointment cannot be moved")
	ErrAlreadyDragging = errors.New("another drag is already in progress")
	ErrNotDragging     = errors.New("no drag in progress")
)

// HoverInterval is the debounce cadence for hover evaluation: one evaluation
// per animation frame bounds the cost of validity and magnetic computation
// during fast pointer movement.
const HoverInterval = 16 * time.Millisecond

// State is a drag gesture state.
type State int

const (
	StateIdle State = iota
	StateDragging
	StateHoveringValid
	StateHoveringInvalid
	StateDropped
	StateCommitting
	StateDeferred
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	case StateHoveringValid:
		return "hovering_valid"
	case StateHoveringInvalid:
		return "hovering_invalid"
	case StateDropped:
		return "dropped"
	case StateCommitting:
		return "committing"
	case StateDeferred:
		return "deferred"
	default:
		return "unknown"
	}
}

// Active returns true while a gesture is in flight (before drop resolution).
func (s State) Active() bool {
	switch s {
	case StateDragging, StateHoveringValid, StateHoveringInvalid:
		return true
	default:
		return false
	}
}

// hoverEval is the latest pending hover evaluation. A single slot: a new
// hover replaces an unevaluated one, so at most one evaluation runs per tick.
type hoverEval struct {
	slot    schedule.Slot
	pointer Point
	center  Point
}

// DropResult describes the outcome of releasing the pointer over a slot.
type DropResult struct {
	Accepted bool
	Slot     schedule.Slot
	Reason   string // user-facing rejection message when !Accepted
}

// Session is the ephemeral state of one drag gesture.
type Session struct {
	validator *schedule.Validator
	now       func() time.Time

	state      State
	generation uint64

	appt *appointment.Appointment

	hovered      *schedule.Slot
	hoverValid   bool
	magneticDist float64
	nearMagnetic bool

	pending *hoverEval
}

// NewSession creates an idle drag session. now is injectable for testing.
func NewSession(validator *schedule.Validator, now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}
	return &Session{validator: validator, now: now}
}

// State returns the current gesture state.
func (s *Session) State() State { return s.state }

// Generation returns the current session generation id. Any asynchronous
// result tagged with an older generation must be discarded: this is the only
// cancellation mechanism, there is no explicit request cancellation.
func (s *Session) Generation() uint64 { return s.generation }

// Appointment returns the appointment being dragged, or nil.
func (s *Session) Appointment() *appointment.Appointment { return s.appt }

// Hovered returns the currently hovered slot, or nil.
func (s *Session) Hovered() *schedule.Slot { return s.hovered }

// HoverValid returns the validity classification of the hovered slot.
func (s *Session) HoverValid() bool { return s.hoverValid }

// NearMagnetic returns true when the pointer is close enough to a valid
// slot's center to snap visually.
func (s *Session) NearMagnetic() bool { return s.nearMagnetic }

// MagneticDistance returns the last computed pointer-to-center distance.
func (s *Session) MagneticDistance() float64 { return s.magneticDist }

// Start picks up an appointment and enters Dragging. Completed and cancelled
// appointments are never draggable.
func (s *Session) Start(a *appointment.Appointment) error {
	if s.state.Active() {
		return ErrAlreadyDragging
	}
	if a == nil || !a.Draggable() {
		return ErrNotDraggable
	}

	s.generation++
	s.state = StateDragging
	s.appt = a
	s.hovered = nil
	s.hoverValid = false
	s.magneticDist = 0
	s.nearMagnetic = false
	s.pending = nil
	return nil
}

// Hover records a pointer movement over a grid cell. Redundant events over
// the same cell are dropped before entering the debounce queue; otherwise
// the event replaces any unevaluated one as the latest pending evaluation.
// Returns true if an evaluation was queued and a debounce tick is needed.
func (s *Session) Hover(slot schedule.Slot, pointer, cellCenter Point) bool {
	if !s.state.Active() {
		return false
	}
	if s.hovered != nil && s.hovered.Equal(slot) && s.pending == nil {
		return false
	}
	if s.pending != nil && s.pending.slot.Equal(slot) {
		// Same target, fresher pointer position.
		s.pending.pointer = pointer
		s.pending.center = cellCenter
		return false
	}

	queued := s.pending == nil
	s.pending = &hoverEval{slot: slot, pointer: pointer, center: cellCenter}
	return queued
}

// EvaluatePending runs the debounced hover evaluation. gen is the generation
// the debounce timer was armed with; a stale generation is discarded
// unapplied. Returns true if the evaluation ran.
func (s *Session) EvaluatePending(gen uint64, all []*appointment.Appointment) bool {
	if gen != s.generation || !s.state.Active() || s.pending == nil {
		return false
	}

	eval := s.pending
	s.pending = nil

	slot := eval.slot
	s.hovered = &slot
	s.hoverValid = s.validator.IsSlotValid(slot, s.appt, all)

	if s.hoverValid {
		s.state = StateHoveringValid
		s.magneticDist = Distance(eval.pointer, eval.center)
		s.nearMagnetic = s.magneticDist <= MagneticRadius
	} else {
		s.state = StateHoveringInvalid
		s.magneticDist = 0
		s.nearMagnetic = false
	}
	return true
}

// Drop releases the pointer over a slot. Hover-time validity is only a hint,
// so the slot is re-validated here. An invalid drop resolves straight back
// to Idle with a user-visible reason; a valid one enters Dropped, awaiting
// the commit-or-defer decision.
func (s *Session) Drop(slot schedule.Slot, all []*appointment.Appointment) (DropResult, error) {
	if !s.state.Active() {
		return DropResult{}, ErrNotDragging
	}

	s.pending = nil
	if s.validator.IsSlotValid(slot, s.appt, all) {
		s.state = StateDropped
		return DropResult{Accepted: true, Slot: slot}, nil
	}

	reason := s.rejectionReason(slot, all)
	s.reset()
	return DropResult{Accepted: false, Slot: slot, Reason: reason}, nil
}

// rejectionReason explains an invalid drop in terms a user can act on,
// computed from the minutes between the rejected time and now.
func (s *Session) rejectionReason(slot schedule.Slot, all []*appointment.Appointment) string {
	now := s.now()
	target := slot.Time()
	delta := target.Sub(now)

	switch {
	case delta < 0:
		return "That time is in the past. Pick an upcoming slot."
	case delta < schedule.MinLeadTime:
		minutes := int(delta.Minutes())
		return fmt.Sprintf("Only %d minutes from now. Appointments must be scheduled at least %d minutes in advance.",
			minutes, int(schedule.MinLeadTime.Minutes()))
	default:
		return "That time slot is already taken."
	}
}

// Commit marks the gesture as Committing (optimistic update in flight).
func (s *Session) Commit() error {
	if s.state != StateDropped {
		return ErrNotDragging
	}
	s.state = StateCommitting
	return nil
}

// Defer marks the gesture as Deferred: the conflict-resolution collaborator
// now owns the decision and nothing has been applied.
func (s *Session) Defer() error {
	if s.state != StateDropped {
		return ErrNotDragging
	}
	s.state = StateDeferred
	return nil
}

// Finish resolves a Committing or Deferred gesture back to Idle.
func (s *Session) Finish() {
	if s.state == StateCommitting || s.state == StateDeferred || s.state == StateDropped {
		s.reset()
	}
}

// Cancel aborts an active gesture (pointer left the surface, escape key).
// Always lands in Idle; there is no persistent error state.
func (s *Session) Cancel() {
	if s.state.Active() {
		s.reset()
	}
}

func (s *Session) reset() {
	s.state = StateIdle
	s.appt = nil
	s.hovered = nil
	s.hoverValid = false
	s.magneticDist = 0
	s.nearMagnetic = false
	s.pending = nil
}
