package http

import (
	"github.com/clinic-management/clinic-service/internal/appointment"
	"github.com/clinic-management/clinic-service/internal/doctor"
	"github.com/clinic-management/clinic-service/internal/history"
	"github.com/clinic-management/clinic-service/internal/patient"
	"gorm.io/gorm"
)

// Repositories is one storage backend for every clinic entity
type Repositories struct {
	Patients     patient.RepositoryInterface
	Doctors      doctor.RepositoryInterface
	Appointments appointment.RepositoryInterface
	History      history.RepositoryInterface
}

// NewMemoryRepositories keeps all state in process memory
func NewMemoryRepositories() Repositories {
	return Repositories{
		Patients:     patient.NewMemoryRepository(),
		Doctors:      doctor.NewMemoryRepository(),
		Appointments: appointment.NewMemoryRepository(),
		History:      history.NewMemoryRepository(),
	}
}

// NewGormRepositories stores everything in postgres through gorm
func NewGormRepositories(gdb *gorm.DB) Repositories {
	return Repositories{
		Patients:     patient.NewRepository(gdb),
		Doctors:      doctor.NewRepository(gdb),
		Appointments: appointment.NewRepository(gdb),
		History:      history.NewRepository(gdb),
	}
}
