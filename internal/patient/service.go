package patient

import (
	"context"
	"fmt"

	"github.com/clinic-management/clinic-service/internal/messaging"
	"github.com/clinic-management/clinic-service/internal/telemetry"
	"github.com/clinic-management/clinic-service/internal/validation"
	"github.com/sirupsen/logrus"
)

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
		log:       log.WithField("component", "patient"),
	}
}

func (s *Service) ListPatients(ctx context.Context) ([]Patient, error) {
	patients, err := s.repo.ListPatients(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	if patients == nil {
		patients = []Patient{}
	}
	return patients, nil
}

func (s *Service) GetPatient(ctx context.Context, id int) (*Patient, error) {
	p, err := s.repo.GetPatient(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return p, nil
}

func (s *Service) CreatePatient(ctx context.Context, req PatientRequest) (*Patient, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	p, err := s.repo.CreatePatient(ctx, req.toPatient(0))
	if err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}

	s.metrics.RecordPatientOperation(ctx, "create")
	s.publish(ctx, messaging.EventPatientCreated, p)
	s.log.WithField("patient_id", p.ID).Info("Patient created")

	return p, nil
}

func (s *Service) UpdatePatient(ctx context.Context, id int, req PatientRequest) (*Patient, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	p, err := s.repo.UpdatePatient(ctx, id, req.toPatient(id))
	if err != nil {
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}

	s.metrics.RecordPatientOperation(ctx, "update")
	s.publish(ctx, messaging.EventPatientUpdated, p)

	return p, nil
}

func (s *Service) DeletePatient(ctx context.Context, id int) error {
	if err := s.repo.DeletePatient(ctx, id); err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}

	s.metrics.RecordPatientOperation(ctx, "delete")
	s.publish(ctx, messaging.EventPatientDeleted, &Patient{ID: id})
	s.log.WithField("patient_id", id).Info("Patient deleted")

	return nil
}

// publish is best effort; a broker failure never fails the request
func (s *Service) publish(ctx context.Context, eventType string, p *Patient) {
	evt := messaging.PatientEvent{
		BaseEvent: messaging.NewBaseEvent(eventType),
		Data: messaging.PatientData{
			PatientID: p.ID,
			Name:      p.Name,
			Age:       p.Age,
			Disease:   p.Disease,
		},
	}
	if err := s.publisher.Publish(ctx, eventType, evt); err != nil {
		s.log.WithError(err).WithField("event", eventType).Warn("Failed to publish patient event")
	}
}
