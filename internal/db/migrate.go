package db

import (
	"github.com/clinic-management/clinic-service/internal/appointment"
	"github.com/clinic-management/clinic-service/internal/doctor"
	"github.com/clinic-management/clinic-service/internal/history"
	"github.com/clinic-management/clinic-service/internal/patient"
	"gorm.io/gorm"
)

// Migrate brings every clinic table up to date and seeds the doctor roster
func Migrate(gdb *gorm.DB) error {
	steps := []func(*gorm.DB) error{
		patient.Migrate,
		doctor.Migrate,
		appointment.Migrate,
		history.Migrate,
	}
	for _, step := range steps {
		if err := step(gdb); err != nil {
			return err
		}
	}
	return nil
}
