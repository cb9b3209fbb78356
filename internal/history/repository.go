package history

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&PatientHistory{}); err != nil {
		return fmt.Errorf("failed to migrate patient_history: %w", err)
	}
	return nil
}

// visit_date is a date column; read it back in the same layout it was written
const selectColumns = "id, patient_id, doctor_id, diagnosis, prescription, notes, to_char(visit_date, 'YYYY-MM-DD') AS visit_date"

func (r *Repository) ListHistory(ctx context.Context) ([]PatientHistory, error) {
	records := []PatientHistory{}
	err := r.db.WithContext(ctx).Select(selectColumns).Order("id").Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	return records, nil
}

func (r *Repository) ListByPatient(ctx context.Context, patientID int) ([]PatientHistory, error) {
	records := []PatientHistory{}
	err := r.db.WithContext(ctx).
		Select(selectColumns).
		Where("patient_id = ?", patientID).
		Order("id").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list history for patient %d: %w", patientID, err)
	}
	return records, nil
}

func (r *Repository) CreateHistory(ctx context.Context, h PatientHistory) (*PatientHistory, error) {
	h.ID = 0
	if err := r.db.WithContext(ctx).Create(&h).Error; err != nil {
		return nil, fmt.Errorf("failed to insert history: %w", err)
	}
	return &h, nil
}
