package doctor

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates the doctors table and seeds the default roster when it is empty
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Doctor{}); err != nil {
		return fmt.Errorf("failed to migrate doctors: %w", err)
	}

	var count int64
	if err := db.Model(&Doctor{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count doctors: %w", err)
	}
	if count > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		seed := DefaultDoctors()
		if err := tx.Create(&seed).Error; err != nil {
			return fmt.Errorf("failed to seed doctors: %w", err)
		}
		// explicit ids leave the serial behind
		return tx.Exec("SELECT setval(pg_get_serial_sequence('doctors', 'id'), (SELECT MAX(id) FROM doctors))").Error
	})
}

func (r *Repository) ListDoctors(ctx context.Context) ([]Doctor, error) {
	doctors := []Doctor{}
	if err := r.db.WithContext(ctx).Order("id").Find(&doctors).Error; err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

func (r *Repository) GetDoctor(ctx context.Context, id int) (*Doctor, error) {
	var d Doctor
	err := r.db.WithContext(ctx).First(&d, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrDoctorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	return &d, nil
}

func (r *Repository) CreateDoctor(ctx context.Context, d Doctor) (*Doctor, error) {
	d.ID = 0
	if err := r.db.WithContext(ctx).Create(&d).Error; err != nil {
		return nil, fmt.Errorf("failed to insert doctor: %w", err)
	}
	return &d, nil
}
