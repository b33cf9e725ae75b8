package api

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil error", nil, KindUnclassified},
		{"minimum lead time", errors.New("rejected: minimum lead time is 15 minutes"), KindTooSoon},
		{"in the past", errors.New("start time is in the past"), KindInPast},
		{"not available", errors.New("slot not available"), KindSlotOccupied},
		{"conflict", errors.New("appointment conflict detected"), KindSlotOccupied},
		{"business hours", errors.New("outside business hours"), KindOutsideHours},
		{"advance window", errors.New("exceeds maximum advance booking window"), KindTooFarAhead},
		{"unknown", errors.New("internal server error"), KindUnclassified},
		{
			"structured payload",
			&APIError{Code: "slot_conflict", Message: "the requested time is not available", Status: 409},
			KindSlotOccupied,
		},
		{
			"wrapped structured payload",
			fmt.Errorf("updating appointment: %w", &APIError{Code: "lead_time", Message: "violates minimum lead time", Status: 422}),
			KindTooSoon,
		},
		{
			"lead time beats advance substring",
			errors.New("must be booked with minimum lead time, i.e. in advance"),
			KindTooSoon,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestKindMessage(t *testing.T) {
	// Every kind has a specific, actionable message; only the unclassified
	// fallback asks for a retry.
	kinds := []Kind{KindTooSoon, KindInPast, KindSlotOccupied, KindOutsideHours, KindTooFarAhead}
	for _, k := range kinds {
		if k.Message() == KindUnclassified.Message() {
			t.Errorf("%v should not share the generic fallback message", k)
		}
		if k.Message() == "" {
			t.Errorf("%v has no message", k)
		}
	}
	if KindUnclassified.Message() != "Failed to move appointment. Please try again." {
		t.Errorf("unexpected fallback message: %q", KindUnclassified.Message())
	}
}
