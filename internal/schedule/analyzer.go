package schedule

import (
	"time"

	"github.com/figaroapp/figaro/internal/appointment"
)

// RiskConfirmThreshold is the risk score above which a move requires
// explicit user confirmation instead of an automatic commit.
const RiskConfirmThreshold = 30

// Risk contribution per conflict type. Exact overlaps are worse than
// buffer-only violations; working-hours violations sit in between.
const (
	riskOverlap      = 40
	riskOutsideHours = 20
	riskBuffer       = 15
)

// ConflictType tags a detected conflict.
type ConflictType string

const (
	ConflictOverlap         ConflictType = "overlap"
	ConflictBufferViolation ConflictType = "buffer_violation"
	ConflictOutsideHours    ConflictType = "outside_hours"
)

// Conflict records one detected scheduling problem.
type Conflict struct {
	Type  ConflictType
	Other *appointment.Appointment // nil for outside_hours
}

// Analysis is the result of analyzing a tentative appointment time.
// It is computed fresh on every drop attempt and never cached: the
// appointment set may have changed since the last computation.
type Analysis struct {
	HasConflicts bool
	Conflicts    []Conflict
	RiskScore    int // 0..100
}

// RequiresConfirmation returns true if the risk is high enough that the
// move must not proceed without the user's say-so.
func (a Analysis) RequiresConfirmation() bool {
	return a.RiskScore > RiskConfirmThreshold
}

// HoursRange is a working-hours window in "HH:MM" form.
type HoursRange struct {
	Start string
	End   string
}

// Options configures conflict analysis.
type Options struct {
	BufferMinutes           int
	WorkingHours            HoursRange
	CheckBarberAvailability bool // restrict comparisons to the same barber
	AllowAdjacent           bool // tolerate gaps smaller than the buffer
}

// Analyze computes overlapping and adjacent conflicts for a candidate
// appointment time against all other appointments, plus a working-hours
// check. Pure and synchronous.
func Analyze(candidate *appointment.Appointment, all []*appointment.Appointment, opts Options) Analysis {
	var analysis Analysis

	start := candidate.StartTime
	end := candidate.EndTime()
	buffer := time.Duration(opts.BufferMinutes) * time.Minute

	for _, other := range all {
		if other == nil || other.ID == candidate.ID {
			continue
		}
		if other.Status == appointment.StatusCancelled {
			// Cancelled appointments free their slot.
			continue
		}
		if opts.CheckBarberAvailability && other.BarberID != candidate.BarberID {
			continue
		}

		if other.OverlapsInterval(start, end) {
			analysis.Conflicts = append(analysis.Conflicts, Conflict{Type: ConflictOverlap, Other: other})
			continue
		}

		if opts.AllowAdjacent || buffer <= 0 {
			continue
		}
		// Overlap was ruled out above, so exactly one of these gaps is
		// positive; within-buffer adjacency counts on either side.
		gapAfter := other.StartTime.Sub(end)
		gapBefore := start.Sub(other.EndTime())
		if (gapAfter >= 0 && gapAfter < buffer) || (gapBefore >= 0 && gapBefore < buffer) {
			analysis.Conflicts = append(analysis.Conflicts, Conflict{Type: ConflictBufferViolation, Other: other})
		}
	}

	if outsideWorkingHours(start, end, opts.WorkingHours) {
		analysis.Conflicts = append(analysis.Conflicts, Conflict{Type: ConflictOutsideHours})
	}

	analysis.HasConflicts = len(analysis.Conflicts) > 0
	analysis.RiskScore = riskScore(analysis.Conflicts)
	return analysis
}

func outsideWorkingHours(start, end time.Time, hours HoursRange) bool {
	if hours.Start == "" || hours.End == "" {
		return false
	}
	startMins := start.Hour()*60 + start.Minute()
	endMins := end.Hour()*60 + end.Minute()
	if endMins == 0 && end.Day() != start.Day() {
		endMins = 24 * 60
	}
	return startMins < TimeToMinutes(hours.Start) || endMins > TimeToMinutes(hours.End)
}

// riskScore aggregates conflict severity into the 0..100 range.
// Monotone in the conflict set: adding a conflict never lowers the score.
func riskScore(conflicts []Conflict) int {
	score := 0
	for _, c := range conflicts {
		switch c.Type {
		case ConflictOverlap:
			score += riskOverlap
		case ConflictOutsideHours:
			score += riskOutsideHours
		case ConflictBufferViolation:
			score += riskBuffer
		}
	}
	if score > 100 {
		score = 100
	}
	return score
}
