package history

import (
	"context"
	"fmt"
	"time"

	"github.com/clinic-management/clinic-service/internal/messaging"
	"github.com/clinic-management/clinic-service/internal/telemetry"
	"github.com/clinic-management/clinic-service/internal/validation"
	"github.com/sirupsen/logrus"
)

// ServiceInterface defines the contract for visit history operations
type ServiceInterface interface {
	ListHistory(ctx context.Context) ([]PatientHistory, error)
	ListByPatient(ctx context.Context, patientID int) ([]PatientHistory, error)
	CreateHistory(ctx context.Context, req CreateHistoryRequest) (*PatientHistory, error)
	RecordAutomatic(ctx context.Context, h PatientHistory) (*PatientHistory, error)
}

var _ ServiceInterface = (*Service)(nil)

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
		log:       log.WithField("component", "history"),
	}
}

func (s *Service) ListHistory(ctx context.Context) ([]PatientHistory, error) {
	records, err := s.repo.ListHistory(ctx)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []PatientHistory{}
	}
	return records, nil
}

func (s *Service) ListByPatient(ctx context.Context, patientID int) ([]PatientHistory, error) {
	records, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []PatientHistory{}
	}
	return records, nil
}

func (s *Service) CreateHistory(ctx context.Context, req CreateHistoryRequest) (*PatientHistory, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	return s.record(ctx, PatientHistory{
		PatientID:    req.PatientID,
		DoctorID:     req.DoctorID,
		Diagnosis:    req.Diagnosis,
		Prescription: req.Prescription,
		Notes:        req.Notes,
		VisitDate:    req.VisitDate,
	}, false)
}

// RecordAutomatic stores a history entry generated by an appointment booking
func (s *Service) RecordAutomatic(ctx context.Context, h PatientHistory) (*PatientHistory, error) {
	if _, err := time.Parse("2006-01-02", h.VisitDate); err != nil {
		return nil, ErrInvalidVisitDate
	}
	return s.record(ctx, h, true)
}

func (s *Service) record(ctx context.Context, h PatientHistory, automatic bool) (*PatientHistory, error) {
	created, err := s.repo.CreateHistory(ctx, h)
	if err != nil {
		return nil, fmt.Errorf("failed to record history: %w", err)
	}

	s.metrics.RecordHistoryOperation(ctx, "create", automatic)

	evt := messaging.HistoryRecordedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventHistoryRecorded),
		Data: messaging.HistoryRecordedData{
			HistoryID: created.ID,
			PatientID: created.PatientID,
			DoctorID:  created.DoctorID,
			VisitDate: created.VisitDate,
			Automatic: automatic,
		},
	}
	if err := s.publisher.Publish(ctx, messaging.EventHistoryRecorded, evt); err != nil {
		s.log.WithError(err).Warn("Failed to publish history.recorded event")
	}

	return created, nil
}
