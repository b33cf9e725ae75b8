// Package reconcile applies tentative appointment moves to the local
// projection immediately, tracks enough information to roll each one back,
// and reconciles with the backend's asynchronous accept/reject response.
package reconcile

import (
	"errors"
	"sort"
	"time"

	"github.com/figaroapp/figaro/internal/api"
	"github.com/figaroapp/figaro/internal/appointment"
	"github.com/figaroapp/figaro/internal/schedule"
)

// Manager errors.
var (
	ErrUpdateInFlight = errors.New("an update is already pending for this appointment")
	ErrUnknownID      = errors.New("appointment not in projection")
)

// SettleDelay is how long to wait before refreshing after a successful
// update, giving backend-side effects time to settle instead of trusting the
// optimistic value forever.
const SettleDelay = time.Second

// OptimisticUpdate records one tentative move: everything needed to restore
// the projection if the backend rejects it.
type OptimisticUpdate struct {
	AppointmentID     string
	OriginalStartTime time.Time
	NewStartTime      time.Time
}

// Decision is the analyze-before-apply gate.
type Decision int

const (
	// DecisionCommit applies optimistically and calls the backend.
	DecisionCommit Decision = iota
	// DecisionDefer surfaces the conflicts and applies nothing: showing a
	// half-applied move while asking "are you sure" would only confuse.
	DecisionDefer
)

// Proposal is the outcome of proposing a move.
type Proposal struct {
	Decision Decision
	Analysis schedule.Analysis
	Update   *OptimisticUpdate // nil when deferred
}

// Outcome reports how a backend response was reconciled.
type Outcome struct {
	Committed    bool
	Kind         api.Kind
	Message      string
	RefreshAfter time.Duration // 0 means refresh immediately
}

// Manager owns the in-memory appointment projection. It is the projection's
// only local writer; refreshes also land here. Both run on the UI event
// loop, which serializes them.
type Manager struct {
	appts    map[string]*appointment.Appointment
	pending  map[string]*OptimisticUpdate
	updating map[string]bool
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{
		appts:    make(map[string]*appointment.Appointment),
		pending:  make(map[string]*OptimisticUpdate),
		updating: make(map[string]bool),
	}
}

// SetAppointments replaces the projection with a fresh server snapshot.
// The manager stores copies so nothing else can write to its projection.
func (m *Manager) SetAppointments(appts []*appointment.Appointment) {
	m.appts = make(map[string]*appointment.Appointment, len(appts))
	for _, a := range appts {
		if a == nil {
			continue
		}
		cp := *a
		m.appts[a.ID] = &cp
	}
}

// Get returns the projected appointment with the given id, or nil.
func (m *Manager) Get(id string) *appointment.Appointment {
	return m.appts[id]
}

// All returns the projection ordered by start time.
func (m *Manager) All() []*appointment.Appointment {
	out := make([]*appointment.Appointment, 0, len(m.appts))
	for _, a := range m.appts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StartTime.Equal(out[j].StartTime) {
			return out[i].ID < out[j].ID
		}
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out
}

// IsUpdating returns true while an optimistic update for the appointment is
// awaiting its backend response.
func (m *Manager) IsUpdating(id string) bool {
	return m.updating[id]
}

// Propose evaluates a tentative move. Analysis runs before anything is
// applied; optimism is granted only when confidence is high. When the risk
// score clears the confirmation threshold nothing is applied and the
// conflict set is handed back for the user to resolve.
func (m *Manager) Propose(id string, newStart time.Time, opts schedule.Options) (Proposal, error) {
	current, ok := m.appts[id]
	if !ok {
		return Proposal{}, ErrUnknownID
	}

	candidate := *current
	candidate.StartTime = newStart
	analysis := schedule.Analyze(&candidate, m.All(), opts)

	if analysis.RequiresConfirmation() {
		return Proposal{Decision: DecisionDefer, Analysis: analysis}, nil
	}

	update := m.Apply(id, newStart)
	if update == nil {
		return Proposal{}, ErrUpdateInFlight
	}
	return Proposal{Decision: DecisionCommit, Analysis: analysis, Update: update}, nil
}

// Apply records an optimistic update and mutates the projection. Returns nil
// if one is already outstanding for the appointment: only one in-flight move
// per appointment, so two drags of the same appointment cannot race.
func (m *Manager) Apply(id string, newStart time.Time) *OptimisticUpdate {
	if _, inFlight := m.pending[id]; inFlight {
		return nil
	}
	a, ok := m.appts[id]
	if !ok {
		return nil
	}

	update := &OptimisticUpdate{
		AppointmentID:     id,
		OriginalStartTime: a.StartTime,
		NewStartTime:      newStart,
	}
	m.pending[id] = update
	m.updating[id] = true
	a.StartTime = newStart
	return update
}

// CommitOrRollback reconciles the backend response for an appointment's
// pending update. On success the update record is simply discarded: the
// projection already matches. On failure the original start time is
// restored and the error classified for the user.
func (m *Manager) CommitOrRollback(id string, serverErr error) (Outcome, bool) {
	update, ok := m.pending[id]
	if !ok {
		return Outcome{}, false
	}
	delete(m.pending, id)
	delete(m.updating, id)

	if serverErr == nil {
		return Outcome{Committed: true, RefreshAfter: SettleDelay}, true
	}

	if a, ok := m.appts[id]; ok {
		a.StartTime = update.OriginalStartTime
	}
	kind := api.Classify(serverErr)
	return Outcome{
		Committed: false,
		Kind:      kind,
		Message:   kind.Message(),
	}, true
}

// PendingCount returns the number of in-flight optimistic updates.
func (m *Manager) PendingCount() int {
	return len(m.pending)
}
