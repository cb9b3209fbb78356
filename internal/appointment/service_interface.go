package appointment

import (
	"context"

	"github.com/clinic-management/clinic-service/internal/doctor"
	"github.com/clinic-management/clinic-service/internal/history"
	"github.com/clinic-management/clinic-service/internal/patient"
)

// ServiceInterface defines the contract for appointment operations
type ServiceInterface interface {
	ListAppointments(ctx context.Context) ([]Appointment, error)
	GetAppointment(ctx context.Context, id int) (*Appointment, error)
	DoctorSchedule(ctx context.Context, doctorID int, date string) ([]Appointment, error)
	BookAppointment(ctx context.Context, req CreateAppointmentRequest) (*Appointment, error)
	UpdateStatus(ctx context.Context, id int, req UpdateStatusRequest) (*Appointment, error)
}

var _ ServiceInterface = (*Service)(nil)

// PatientLookup resolves the patient being booked
type PatientLookup interface {
	GetPatient(ctx context.Context, id int) (*patient.Patient, error)
}

// DoctorLookup resolves the doctor being booked
type DoctorLookup interface {
	GetDoctor(ctx context.Context, id int) (*doctor.Doctor, error)
}

// HistoryRecorder stores the visit entry created on booking
type HistoryRecorder interface {
	RecordAutomatic(ctx context.Context, h history.PatientHistory) (*history.PatientHistory, error)
}
