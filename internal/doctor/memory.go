package doctor

import (
	"context"
	"sync"
)

// MemoryRepository starts with DefaultDoctors; new ids are max(existing)+1
type MemoryRepository struct {
	mu      sync.RWMutex
	doctors []Doctor
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{doctors: DefaultDoctors()}
}

func (r *MemoryRepository) ListDoctors(ctx context.Context) ([]Doctor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Doctor, len(r.doctors))
	copy(out, r.doctors)
	return out, nil
}

func (r *MemoryRepository) GetDoctor(ctx context.Context, id int) (*Doctor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, d := range r.doctors {
		if d.ID == id {
			return &d, nil
		}
	}
	return nil, ErrDoctorNotFound
}

func (r *MemoryRepository) CreateDoctor(ctx context.Context, d Doctor) (*Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	maxID := 0
	for _, existing := range r.doctors {
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}
	d.ID = maxID + 1
	r.doctors = append(r.doctors, d)
	return &d, nil
}
