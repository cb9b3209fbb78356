package appointment

import (
	"context"
	"sync"
)

// MemoryRepository holds appointments in process memory. The slot check and
// the write happen under one lock.
type MemoryRepository struct {
	mu           sync.RWMutex
	appointments []Appointment
	nextID       int
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{nextID: 1}
}

func (r *MemoryRepository) ListAppointments(ctx context.Context) ([]Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Appointment, len(r.appointments))
	copy(out, r.appointments)
	return out, nil
}

func (r *MemoryRepository) GetAppointment(ctx context.Context, id int) (*Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.appointments {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, ErrAppointmentNotFound
}

func (r *MemoryRepository) ListByDoctor(ctx context.Context, doctorID int, date string) ([]Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []Appointment{}
	for _, a := range r.appointments {
		if a.DoctorID != doctorID {
			continue
		}
		if date != "" && a.Date != date {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *MemoryRepository) Book(ctx context.Context, a Appointment) (*Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.slotTaken(a.DoctorID, a.Date, a.Time, 0) {
		return nil, ErrSlotTaken
	}

	a.ID = r.nextID
	a.Status = StatusScheduled
	r.nextID++
	r.appointments = append(r.appointments, a)
	return &a, nil
}

func (r *MemoryRepository) UpdateStatus(ctx context.Context, id int, status string) (*Appointment, string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.appointments {
		a := &r.appointments[i]
		if a.ID != id {
			continue
		}

		old := a.Status
		if status == StatusScheduled && old != StatusScheduled && r.slotTaken(a.DoctorID, a.Date, a.Time, a.ID) {
			return nil, old, ErrSlotTaken
		}
		a.Status = status

		updated := *a
		return &updated, old, nil
	}
	return nil, "", ErrAppointmentNotFound
}

// slotTaken must be called with mu held; exceptID is skipped
func (r *MemoryRepository) slotTaken(doctorID int, date, time string, exceptID int) bool {
	for _, a := range r.appointments {
		if a.ID != exceptID && a.occupies(doctorID, date, time) {
			return true
		}
	}
	return false
}
