package doctor

import (
	"context"
	"fmt"

	"github.com/clinic-management/clinic-service/internal/messaging"
	"github.com/clinic-management/clinic-service/internal/telemetry"
	"github.com/clinic-management/clinic-service/internal/validation"
	"github.com/sirupsen/logrus"
)

// ServiceInterface defines the contract for doctor operations
type ServiceInterface interface {
	ListDoctors(ctx context.Context) ([]Doctor, error)
	GetDoctor(ctx context.Context, id int) (*Doctor, error)
	CreateDoctor(ctx context.Context, req CreateDoctorRequest) (*Doctor, error)
}

type CreateDoctorRequest struct {
	Name      string `json:"name" validate:"required"`
	Specialty string `json:"specialty" validate:"required"`
}

type Service struct {
	repo      RepositoryInterface
	publisher messaging.PublisherInterface
	metrics   *telemetry.Metrics
	log       logrus.FieldLogger
}

func NewService(repo RepositoryInterface, publisher messaging.PublisherInterface, metrics *telemetry.Metrics, log logrus.FieldLogger) *Service {
	if publisher == nil {
		publisher = messaging.NoopPublisher{}
	}
	return &Service{
		repo:      repo,
		publisher: publisher,
		metrics:   metrics,
		log:       log.WithField("component", "doctor"),
	}
}

func (s *Service) ListDoctors(ctx context.Context) ([]Doctor, error) {
	doctors, err := s.repo.ListDoctors(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	if doctors == nil {
		doctors = []Doctor{}
	}
	return doctors, nil
}

func (s *Service) GetDoctor(ctx context.Context, id int) (*Doctor, error) {
	d, err := s.repo.GetDoctor(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	return d, nil
}

func (s *Service) CreateDoctor(ctx context.Context, req CreateDoctorRequest) (*Doctor, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	d, err := s.repo.CreateDoctor(ctx, Doctor{Name: req.Name, Specialty: req.Specialty})
	if err != nil {
		return nil, fmt.Errorf("failed to create doctor: %w", err)
	}

	s.metrics.RecordDoctorOperation(ctx, "create")

	evt := messaging.DoctorCreatedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventDoctorCreated),
		Data: messaging.DoctorCreatedData{
			DoctorID:  d.ID,
			Name:      d.Name,
			Specialty: d.Specialty,
		},
	}
	if err := s.publisher.Publish(ctx, messaging.EventDoctorCreated, evt); err != nil {
		s.log.WithError(err).Warn("Failed to publish doctor.created event")
	}

	s.log.WithFields(logrus.Fields{"doctor_id": d.ID, "specialty": d.Specialty}).Info("Doctor created")
	return d, nil
}
