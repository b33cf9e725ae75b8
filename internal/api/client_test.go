package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestUpdateAppointment(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody updateRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decoding request body: %v", err)
		}
		if r.Header.Get("X-Request-ID") == "" {
			t.Error("expected a request id header")
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c, err := NewClient(srv.URL, "test-token", 0)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	newStart := time.Date(2025, 6, 11, 10, 0, 0, 0, time.UTC)
	if err := c.UpdateAppointment(context.Background(), "appt-1", newStart, true); err != nil {
		t.Fatalf("UpdateAppointment failed: %v", err)
	}

	if gotMethod != http.MethodPatch {
		t.Errorf("method = %s, want PATCH", gotMethod)
	}
	if gotPath != "/appointments/appt-1" {
		t.Errorf("path = %s, want /appointments/appt-1", gotPath)
	}
	if !gotBody.StartTime.Equal(newStart) {
		t.Errorf("start_time = %v, want %v", gotBody.StartTime, newStart)
	}
	if !gotBody.IsDragDrop {
		t.Error("is_drag_drop flag should be set for drag gestures")
	}
}

func TestUpdateAppointment_ErrorClassification(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(APIError{
			Code:    "slot_conflict",
			Message: "the requested time is not available",
		})
	}))
	defer srv.Close()

	c, _ := NewClient(srv.URL, "", 0)
	err := c.UpdateAppointment(context.Background(), "appt-1", time.Now(), true)
	if err == nil {
		t.Fatal("expected an error for a 409 response")
	}
	if kind := Classify(err); kind != KindSlotOccupied {
		t.Errorf("Classify = %v, want slot_occupied", kind)
	}
}

func TestUpdateAppointment_UnparseableError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	c, _ := NewClient(srv.URL, "", 0)
	err := c.UpdateAppointment(context.Background(), "appt-1", time.Now(), false)
	if err == nil {
		t.Fatal("expected an error for a 502 response")
	}
	if kind := Classify(err); kind != KindUnclassified {
		t.Errorf("Classify = %v, want unclassified", kind)
	}
}

func TestListAppointments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("from"); got != "2025-06-09" {
			t.Errorf("from = %s, want 2025-06-09", got)
		}
		if got := r.URL.Query().Get("to"); got != "2025-06-15" {
			t.Errorf("to = %s, want 2025-06-15", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tkn" {
			t.Errorf("authorization = %q, want bearer token", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]appointmentDTO{
			{
				ID:              "a1",
				StartTime:       time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC),
				DurationMinutes: 30,
				BarberID:        "b1",
				ClientID:        "c1",
				Status:          "scheduled",
			},
			{
				ID:              "a2",
				StartTime:       time.Date(2025, 6, 11, 10, 0, 0, 0, time.UTC),
				DurationMinutes: 45,
				BarberID:        "b1",
				ClientID:        "c2",
				Status:          "no_show",
			},
		})
	}))
	defer srv.Close()

	c, _ := NewClient(srv.URL, "tkn", 0)
	from := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	appts, err := c.ListAppointments(context.Background(), from, to)
	if err != nil {
		t.Fatalf("ListAppointments failed: %v", err)
	}
	if len(appts) != 2 {
		t.Fatalf("got %d appointments, want 2", len(appts))
	}
	if appts[0].ID != "a1" || appts[0].DurationMinutes != 30 {
		t.Errorf("unexpected first appointment: %+v", appts[0])
	}
	// Opaque status survives the wire.
	if string(appts[1].Status) != "no_show" {
		t.Errorf("status = %q, want opaque no_show", appts[1].Status)
	}
}
