package history

import "context"

// RepositoryInterface defines the contract for visit history storage
type RepositoryInterface interface {
	ListHistory(ctx context.Context) ([]PatientHistory, error)
	ListByPatient(ctx context.Context, patientID int) ([]PatientHistory, error)
	CreateHistory(ctx context.Context, h PatientHistory) (*PatientHistory, error)
}

var (
	_ RepositoryInterface = (*Repository)(nil)
	_ RepositoryInterface = (*MemoryRepository)(nil)
)
