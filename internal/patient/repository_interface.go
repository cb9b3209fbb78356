package patient

import "context"

// RepositoryInterface defines the contract for patient data access
type RepositoryInterface interface {
	ListPatients(ctx context.Context) ([]Patient, error)
	GetPatient(ctx context.Context, id int) (*Patient, error)
	CreatePatient(ctx context.Context, p Patient) (*Patient, error)
	UpdatePatient(ctx context.Context, id int, p Patient) (*Patient, error)
	DeletePatient(ctx context.Context, id int) error
}

// Ensure both backends implement RepositoryInterface
var (
	_ RepositoryInterface = (*Repository)(nil)
	_ RepositoryInterface = (*MemoryRepository)(nil)
)
