package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/figaroapp/figaro/internal/appointment"
)

type fakeBooking struct {
	list    func(from, to time.Time) ([]*appointment.Appointment, error)
	update  func(id string, newStart time.Time, dragDrop bool) error
	updates int
}

func (f *fakeBooking) ListAppointments(ctx context.Context, from, to time.Time) ([]*appointment.Appointment, error) {
	if f.list == nil {
		return nil, errors.New("not implemented")
	}
	return f.list(from, to)
}

func (f *fakeBooking) UpdateAppointment(ctx context.Context, id string, newStart time.Time, dragDrop bool) error {
	f.updates++
	if f.update == nil {
		return errors.New("not implemented")
	}
	return f.update(id, newStart, dragDrop)
}

type fakeCache struct {
	saved  []*appointment.Appointment
	stored []*appointment.Appointment
	load   func(from, to time.Time) ([]*appointment.Appointment, error)
}

func (f *fakeCache) SaveWindow(ctx context.Context, from, to time.Time, appts []*appointment.Appointment) error {
	f.saved = appts
	return nil
}

func (f *fakeCache) LoadWindow(ctx context.Context, from, to time.Time) ([]*appointment.Appointment, error) {
	if f.load != nil {
		return f.load(from, to)
	}
	return f.stored, nil
}

func testAppt(id string, start time.Time) *appointment.Appointment {
	return &appointment.Appointment{
		ID:              id,
		StartTime:       start,
		DurationMinutes: 30,
		ClientName:      "Test Client",
		Service:         "Haircut",
		Status:          appointment.StatusScheduled,
	}
}

func TestLoadWeekReturnsBackendData(t *testing.T) {
	weekStart := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	appt := testAppt("a1", weekStart.Add(9*time.Hour))

	booking := &fakeBooking{
		list: func(from, to time.Time) ([]*appointment.Appointment, error) {
			if !from.Equal(weekStart) {
				t.Errorf("from = %v, want %v", from, weekStart)
			}
			if !to.Equal(weekStart.AddDate(0, 0, 6)) {
				t.Errorf("to = %v, want week end", to)
			}
			return []*appointment.Appointment{appt}, nil
		},
	}
	cache := &fakeCache{}

	msg := LoadWeek(booking, cache, weekStart)()

	loaded, ok := msg.(AppointmentsLoadedMsg)
	if !ok {
		t.Fatalf("msg type = %T, want AppointmentsLoadedMsg", msg)
	}
	if loaded.Origin != SourceBackend {
		t.Errorf("origin = %v, want SourceBackend", loaded.Origin)
	}
	if len(loaded.Appointments) != 1 || loaded.Appointments[0].ID != "a1" {
		t.Fatalf("unexpected appointments: %+v", loaded.Appointments)
	}
	if len(cache.saved) != 1 {
		t.Errorf("expected fetched window persisted to cache, saved %d", len(cache.saved))
	}
}

func TestLoadWeekFallsBackToSnapshot(t *testing.T) {
	weekStart := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	cached := testAppt("a1", weekStart.Add(10*time.Hour))

	booking := &fakeBooking{
		list: func(from, to time.Time) ([]*appointment.Appointment, error) {
			return nil, errors.New("connection refused")
		},
	}
	cache := &fakeCache{stored: []*appointment.Appointment{cached}}

	msg := LoadWeek(booking, cache, weekStart)()

	loaded, ok := msg.(AppointmentsLoadedMsg)
	if !ok {
		t.Fatalf("msg type = %T, want AppointmentsLoadedMsg", msg)
	}
	if loaded.Origin != SourceSnapshot {
		t.Errorf("origin = %v, want SourceSnapshot", loaded.Origin)
	}
	if len(loaded.Appointments) != 1 || loaded.Appointments[0].ID != "a1" {
		t.Fatalf("unexpected appointments: %+v", loaded.Appointments)
	}
}

func TestLoadWeekErrorWhenNothingCached(t *testing.T) {
	weekStart := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	booking := &fakeBooking{
		list: func(from, to time.Time) ([]*appointment.Appointment, error) {
			return nil, errors.New("connection refused")
		},
	}
	cache := &fakeCache{
		load: func(from, to time.Time) ([]*appointment.Appointment, error) {
			return nil, nil
		},
	}

	msg := LoadWeek(booking, cache, weekStart)()

	errMsg, ok := msg.(ErrMsg)
	if !ok {
		t.Fatalf("msg type = %T, want ErrMsg", msg)
	}
	if errMsg.Err == nil {
		t.Fatal("ErrMsg.Err is nil")
	}
}

func TestLoadCachedWeek(t *testing.T) {
	weekStart := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	cached := testAppt("a1", weekStart.Add(10*time.Hour))
	cache := &fakeCache{stored: []*appointment.Appointment{cached}}

	msg := LoadCachedWeek(cache, weekStart)()

	loaded, ok := msg.(AppointmentsLoadedMsg)
	if !ok {
		t.Fatalf("msg type = %T, want AppointmentsLoadedMsg", msg)
	}
	if loaded.Origin != SourceSnapshot {
		t.Errorf("origin = %v, want SourceSnapshot", loaded.Origin)
	}
}

func TestLoadCachedWeekEmptyReturnsNil(t *testing.T) {
	weekStart := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	cache := &fakeCache{}

	if msg := LoadCachedWeek(cache, weekStart)(); msg != nil {
		t.Fatalf("expected nil msg for empty cache, got %T", msg)
	}
}

func TestRescheduleEchoesGeneration(t *testing.T) {
	newStart := time.Date(2025, 6, 3, 14, 0, 0, 0, time.UTC)

	booking := &fakeBooking{
		update: func(id string, start time.Time, dragDrop bool) error {
			if id != "a1" {
				t.Errorf("id = %q, want a1", id)
			}
			if !start.Equal(newStart) {
				t.Errorf("start = %v, want %v", start, newStart)
			}
			if !dragDrop {
				t.Error("expected drag_drop flag set")
			}
			return nil
		},
	}

	msg := Reschedule(booking, "a1", newStart, 7)()

	result, ok := msg.(UpdateResultMsg)
	if !ok {
		t.Fatalf("msg type = %T, want UpdateResultMsg", msg)
	}
	if result.Generation != 7 {
		t.Errorf("generation = %d, want 7", result.Generation)
	}
	if result.Err != nil {
		t.Errorf("unexpected error: %v", result.Err)
	}
}

func TestRescheduleCarriesError(t *testing.T) {
	wantErr := errors.New("slot not available")
	booking := &fakeBooking{
		update: func(string, time.Time, bool) error { return wantErr },
	}

	msg := Reschedule(booking, "a1", time.Now(), 1)()

	result, ok := msg.(UpdateResultMsg)
	if !ok {
		t.Fatalf("msg type = %T, want UpdateResultMsg", msg)
	}
	if !errors.Is(result.Err, wantErr) {
		t.Errorf("err = %v, want %v", result.Err, wantErr)
	}
}
