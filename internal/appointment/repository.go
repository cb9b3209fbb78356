package appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const uniqueViolation = "23505"

// Repository stores appointments in postgres. A partial unique index on
// (doctor_id, date, time) for Scheduled rows backs the in-transaction check.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates the appointments table and the scheduled-slot index
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Appointment{}); err != nil {
		return fmt.Errorf("failed to migrate appointments: %w", err)
	}

	err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_scheduled_slot
		ON appointments (doctor_id, "date", "time")
		WHERE status = 'Scheduled'`).Error
	if err != nil {
		return fmt.Errorf("failed to create scheduled slot index: %w", err)
	}
	return nil
}

func (r *Repository) ListAppointments(ctx context.Context) ([]Appointment, error) {
	appointments := []Appointment{}
	if err := r.db.WithContext(ctx).Order("id").Find(&appointments).Error; err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (r *Repository) GetAppointment(ctx context.Context, id int) (*Appointment, error) {
	var a Appointment
	err := r.db.WithContext(ctx).First(&a, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &a, nil
}

func (r *Repository) ListByDoctor(ctx context.Context, doctorID int, date string) ([]Appointment, error) {
	q := r.db.WithContext(ctx).Where("doctor_id = ?", doctorID)
	if date != "" {
		q = q.Where(`"date" = ?`, date)
	}

	appointments := []Appointment{}
	if err := q.Order("id").Find(&appointments).Error; err != nil {
		return nil, fmt.Errorf("failed to list doctor schedule: %w", err)
	}
	return appointments, nil
}

func (r *Repository) Book(ctx context.Context, a Appointment) (*Appointment, error) {
	a.ID = 0
	a.Status = StatusScheduled

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := slotTaken(tx, a.DoctorID, a.Date, a.Time, 0)
		if err != nil {
			return err
		}
		if taken {
			return ErrSlotTaken
		}
		return tx.Create(&a).Error
	})
	if err != nil {
		if errors.Is(err, ErrSlotTaken) || isUniqueViolation(err) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("failed to book appointment: %w", err)
	}
	return &a, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id int, status string) (*Appointment, string, error) {
	var (
		a   Appointment
		old string
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&a, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAppointmentNotFound
		}
		if err != nil {
			return err
		}

		old = a.Status
		if status == StatusScheduled && old != StatusScheduled {
			taken, err := slotTaken(tx, a.DoctorID, a.Date, a.Time, a.ID)
			if err != nil {
				return err
			}
			if taken {
				return ErrSlotTaken
			}
		}

		a.Status = status
		return tx.Model(&Appointment{}).Where("id = ?", id).Update("status", status).Error
	})

	switch {
	case err == nil:
		return &a, old, nil
	case errors.Is(err, ErrAppointmentNotFound):
		return nil, "", err
	case errors.Is(err, ErrSlotTaken), isUniqueViolation(err):
		return nil, old, ErrSlotTaken
	default:
		return nil, old, fmt.Errorf("failed to update appointment status: %w", err)
	}
}

func slotTaken(tx *gorm.DB, doctorID int, date, time string, exceptID int) (bool, error) {
	var n int64
	err := tx.Model(&Appointment{}).
		Where(`doctor_id = ? AND "date" = ? AND "time" = ? AND status = ? AND id <> ?`,
			doctorID, date, time, StatusScheduled, exceptID).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("failed to check slot: %w", err)
	}
	return n > 0, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
