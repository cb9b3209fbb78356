package doctor

import "context"

// RepositoryInterface defines the contract for doctor data access
type RepositoryInterface interface {
	ListDoctors(ctx context.Context) ([]Doctor, error)
	GetDoctor(ctx context.Context, id int) (*Doctor, error)
	CreateDoctor(ctx context.Context, d Doctor) (*Doctor, error)
}

var (
	_ RepositoryInterface = (*Repository)(nil)
	_ RepositoryInterface = (*MemoryRepository)(nil)
)
