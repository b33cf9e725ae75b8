package appointment

// Index provides fast appointment lookup by id and by local calendar date.
// It is a pure projection of its input: rebuild it whenever the visible
// appointment set changes.
type Index struct {
	ByID   map[string]*Appointment
	ByDate map[string][]*Appointment

	// Skipped holds the ids of appointments excluded from the index because
	// their start time was missing. Callers should log these.
	Skipped []string
}

// BuildIndex constructs an Index from the given appointments.
// Appointments without a start time are excluded and reported via Skipped.
func BuildIndex(appts []*Appointment) *Index {
	idx := &Index{
		ByID:   make(map[string]*Appointment, len(appts)),
		ByDate: make(map[string][]*Appointment),
	}

	for _, a := range appts {
		if a == nil {
			continue
		}
		if a.StartTime.IsZero() {
			idx.Skipped = append(idx.Skipped, a.ID)
			continue
		}
		idx.ByID[a.ID] = a
		key := a.DateKey()
		idx.ByDate[key] = append(idx.ByDate[key], a)
	}

	return idx
}

// Get returns the appointment with the given id, or nil.
func (idx *Index) Get(id string) *Appointment {
	return idx.ByID[id]
}

// OnDate returns the appointments starting on the given local date key
// (YYYY-MM-DD).
func (idx *Index) OnDate(key string) []*Appointment {
	return idx.ByDate[key]
}

// Len returns the number of indexed appointments.
func (idx *Index) Len() int {
	return len(idx.ByID)
}
