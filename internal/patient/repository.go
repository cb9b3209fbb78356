package patient

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Repository stores patients in postgres through gorm
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates or updates the patients table
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Patient{}); err != nil {
		return fmt.Errorf("failed to migrate patients: %w", err)
	}
	return nil
}

func (r *Repository) ListPatients(ctx context.Context) ([]Patient, error) {
	patients := []Patient{}
	if err := r.db.WithContext(ctx).Order("id").Find(&patients).Error; err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

func (r *Repository) GetPatient(ctx context.Context, id int) (*Patient, error) {
	var p Patient
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPatientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &p, nil
}

func (r *Repository) CreatePatient(ctx context.Context, p Patient) (*Patient, error) {
	p.ID = 0
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, fmt.Errorf("failed to insert patient: %w", err)
	}
	return &p, nil
}

func (r *Repository) UpdatePatient(ctx context.Context, id int, p Patient) (*Patient, error) {
	// map form so zero values (age 0, empty disease) are written too
	res := r.db.WithContext(ctx).Model(&Patient{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":    p.Name,
		"age":     p.Age,
		"phone":   p.Phone,
		"address": p.Address,
		"disease": p.Disease,
	})
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update patient: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrPatientNotFound
	}

	p.ID = id
	return &p, nil
}

func (r *Repository) DeletePatient(ctx context.Context, id int) error {
	res := r.db.WithContext(ctx).Delete(&Patient{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete patient: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrPatientNotFound
	}
	return nil
}
