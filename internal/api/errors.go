package api

import (
	"errors"
	"strings"
)

// Kind classifies a backend rejection into a user-facing category.
type Kind int

const (
	KindUnclassified Kind = iota
	KindTooSoon
	KindInPast
	KindSlotOccupied
	KindOutsideHours
	KindTooFarAhead
)

// APIError is a structured error payload from the booking backend.
type APIError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Code
}

// Classify maps a backend error onto a Kind by substring matching.
//
// The backend does not expose a stable structured error schema, so the
// observed message substrings are the contract. Order matters: "in the past"
// must be checked before the generic availability phrases.
func Classify(err error) Kind {
	if err == nil {
		return KindUnclassified
	}

	msg := strings.ToLower(err.Error())
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		msg = strings.ToLower(apiErr.Code + " " + apiErr.Message)
	}

	switch {
	case strings.Contains(msg, "minimum lead"):
		return KindTooSoon
	case strings.Contains(msg, "in the past"):
		return KindInPast
	case strings.Contains(msg, "not available"), strings.Contains(msg, "conflict"):
		return KindSlotOccupied
	case strings.Contains(msg, "business hours"):
		return KindOutsideHours
	case strings.Contains(msg, "advance"):
		return KindTooFarAhead
	default:
		return KindUnclassified
	}
}

// Message returns the user-facing message for a rejection kind.
func (k Kind) Message() string {
	switch k {
	case KindTooSoon:
		return "Appointments must be scheduled at least 15 minutes in advance."
	case KindInPast:
		return "That time has already passed."
	case KindSlotOccupied:
		return "That time slot is no longer available."
	case KindOutsideHours:
		return "That time is outside business hours."
	case KindTooFarAhead:
		return "That date is beyond the advance booking window."
	default:
		return "Failed to move appointment. Please try again."
	}
}

func (k Kind) String() string {
	switch k {
	case KindTooSoon:
		return "too_soon"
	case KindInPast:
		return "in_past"
	case KindSlotOccupied:
		return "slot_occupied"
	case KindOutsideHours:
		return "outside_business_hours"
	case KindTooFarAhead:
		return "too_far_ahead"
	default:
		return "unclassified"
	}
}
