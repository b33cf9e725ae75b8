package schedule

import (
	"time"

	"github.com/figaroapp/figaro/internal/appointment"
)

// MinLeadTime is the minimum gap between "now" and a candidate slot.
// Slots closer than this are rejected regardless of any other state: nobody
// could act on such a booking in time.
const MinLeadTime = 15 * time.Minute

// Validator classifies candidate slots as acceptable drop targets.
// Its checks are deliberately coarse: fast feedback during a drag, not
// authoritative conflict resolution. Full overlap reasoning happens in the
// analyzer at drop time.
type Validator struct {
	now   func() time.Time
	cache *ValidationCache
}

// NewValidator creates a Validator. now is injectable for testing.
func NewValidator(now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}
	return &Validator{
		now:   now,
		cache: NewValidationCache(),
	}
}

// IsSlotValid reports whether the slot is an acceptable drop target for the
// dragged appointment. Rules run in order and short-circuit:
//
//  1. the slot must be at least MinLeadTime after now
//  2. the slot must differ from the appointment's current slot
//  3. no other appointment may start at the exact same slot
func (v *Validator) IsSlotValid(slot Slot, dragged *appointment.Appointment, all []*appointment.Appointment) bool {
	if cached, ok := v.cache.Get(slot, dragged.ID); ok {
		return cached
	}

	valid := v.validate(slot, dragged, all)
	v.cache.Put(slot, dragged.ID, valid)
	return valid
}

func (v *Validator) validate(slot Slot, dragged *appointment.Appointment, all []*appointment.Appointment) bool {
	if slot.Time().Before(v.now().Add(MinLeadTime)) {
		return false
	}

	// Dragging onto itself is not a move.
	if slot.Equal(SlotOf(dragged.StartTime)) {
		return false
	}

	for _, other := range all {
		if other == nil || other.ID == dragged.ID {
			continue
		}
		if other.StartsAt(slot.Day, slot.Hour, slot.Minute) {
			return false
		}
	}

	return true
}

// InvalidateCache drops all memoized results. Call it whenever a fresh
// appointment snapshot arrives: the cache must never bridge two different
// snapshots of the appointment set.
func (v *Validator) InvalidateCache() {
	v.cache.Clear()
}

// CacheLen exposes the cache entry count for observability.
func (v *Validator) CacheLen() int {
	return v.cache.Len()
}
