package patient

import (
	"context"
	"sync"
)

// MemoryRepository keeps patients in process memory. Ids come from a counter
// and are never reused after a delete.
type MemoryRepository struct {
	mu       sync.RWMutex
	patients []Patient
	nextID   int
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{nextID: 1}
}

func (r *MemoryRepository) ListPatients(ctx context.Context) ([]Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Patient, len(r.patients))
	copy(out, r.patients)
	return out, nil
}

func (r *MemoryRepository) GetPatient(ctx context.Context, id int) (*Patient, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, ErrPatientNotFound
	}
	p := r.patients[i]
	return &p, nil
}

func (r *MemoryRepository) CreatePatient(ctx context.Context, p Patient) (*Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p.ID = r.nextID
	r.nextID++
	r.patients = append(r.patients, p)
	return &p, nil
}

func (r *MemoryRepository) UpdatePatient(ctx context.Context, id int, p Patient) (*Patient, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, ErrPatientNotFound
	}
	p.ID = id
	r.patients[i] = p
	return &p, nil
}

func (r *MemoryRepository) DeletePatient(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return ErrPatientNotFound
	}
	r.patients = append(r.patients[:i], r.patients[i+1:]...)
	return nil
}

// indexOf must be called with mu held
func (r *MemoryRepository) indexOf(id int) int {
	for i := range r.patients {
		if r.patients[i].ID == id {
			return i
		}
	}
	return -1
}
