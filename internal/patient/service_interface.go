package patient

import "context"

// ServiceInterface defines the contract for patient business logic operations
type ServiceInterface interface {
	ListPatients(ctx context.Context) ([]Patient, error)
	GetPatient(ctx context.Context, id int) (*Patient, error)
	CreatePatient(ctx context.Context, req PatientRequest) (*Patient, error)
	UpdatePatient(ctx context.Context, id int, req PatientRequest) (*Patient, error)
	DeletePatient(ctx context.Context, id int) error
}

var _ ServiceInterface = (*Service)(nil)
