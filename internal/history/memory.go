package history

import (
	"context"
	"sync"
)

type MemoryRepository struct {
	mu      sync.RWMutex
	records []PatientHistory
	nextID  int
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{nextID: 1}
}

func (r *MemoryRepository) ListHistory(ctx context.Context) ([]PatientHistory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]PatientHistory, len(r.records))
	copy(out, r.records)
	return out, nil
}

func (r *MemoryRepository) ListByPatient(ctx context.Context, patientID int) ([]PatientHistory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []PatientHistory{}
	for _, h := range r.records {
		if h.PatientID == patientID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (r *MemoryRepository) CreateHistory(ctx context.Context, h PatientHistory) (*PatientHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	h.ID = r.nextID
	r.nextID++
	r.records = append(r.records, h)
	return &h, nil
}
