package appointment

import "context"

// RepositoryInterface defines the contract for appointment storage.
// Book and UpdateStatus must check the slot and write in one atomic step.
type RepositoryInterface interface {
	ListAppointments(ctx context.Context) ([]Appointment, error)
	GetAppointment(ctx context.Context, id int) (*Appointment, error)
	ListByDoctor(ctx context.Context, doctorID int, date string) ([]Appointment, error)
	Book(ctx context.Context, a Appointment) (*Appointment, error)
	UpdateStatus(ctx context.Context, id int, status string) (updated *Appointment, oldStatus string, err error)
}

var (
	_ RepositoryInterface = (*Repository)(nil)
	_ RepositoryInterface = (*MemoryRepository)(nil)
)
