package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clinic-management/clinic-service/internal/history"
	"github.com/clinic-management/clinic-service/internal/messaging"
	"github.com/clinic-management/clinic-service/internal/telemetry"
	"github.com/clinic-management/clinic-service/internal/validation"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("github.com/clinic-management/clinic-service/appointment")

type Service struct {
	repo      RepositoryInterface
	patients  PatientLookup
	doctors   DoctorLookup
	history   HistoryRecorder
	publisher messaging.PublisherInterface
	metrics   *telemetry.Metrics
	log       logrus.FieldLogger
}

type Dependencies struct {
	Repository RepositoryInterface
	Patients   PatientLookup
	Doctors    DoctorLookup
	History    HistoryRecorder
	Publisher  messaging.PublisherInterface
	Metrics    *telemetry.Metrics
	Log        logrus.FieldLogger
}

func NewService(deps Dependencies) *Service {
	publisher := deps.Publisher
	if publisher == nil {
		publisher = messaging.NoopPublisher{}
	}
	return &Service{
		repo:      deps.Repository,
		patients:  deps.Patients,
		doctors:   deps.Doctors,
		history:   deps.History,
		publisher: publisher,
		metrics:   deps.Metrics,
		log:       deps.Log.WithField("component", "appointment"),
	}
}

func (s *Service) ListAppointments(ctx context.Context) ([]Appointment, error) {
	appointments, err := s.repo.ListAppointments(ctx)
	if err != nil {
		return nil, err
	}
	if appointments == nil {
		appointments = []Appointment{}
	}
	return appointments, nil
}

func (s *Service) GetAppointment(ctx context.Context, id int) (*Appointment, error) {
	return s.repo.GetAppointment(ctx, id)
}

// DoctorSchedule lists a doctor's appointments, optionally for one date.
// An unknown doctor has an empty schedule.
func (s *Service) DoctorSchedule(ctx context.Context, doctorID int, date string) ([]Appointment, error) {
	appointments, err := s.repo.ListByDoctor(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}
	if appointments == nil {
		appointments = []Appointment{}
	}
	return appointments, nil
}

// BookAppointment stores a Scheduled appointment and records a visit
// history entry for it. A failed history write does not undo the booking.
func (s *Service) BookAppointment(ctx context.Context, req CreateAppointmentRequest) (*Appointment, error) {
	ctx, span := tracer.Start(ctx, "appointment.Book")
	defer span.End()

	span.SetAttributes(
		attribute.Int("patient.id", req.PatientID),
		attribute.Int("doctor.id", req.DoctorID),
	)

	if err := validation.Struct(req); err != nil {
		span.SetStatus(codes.Error, "validation failed")
		return nil, err
	}

	p, err := s.patients.GetPatient(ctx, req.PatientID)
	if err != nil {
		span.SetStatus(codes.Error, "patient lookup failed")
		return nil, fmt.Errorf("failed to look up patient: %w", err)
	}

	if _, err := s.doctors.GetDoctor(ctx, req.DoctorID); err != nil {
		span.SetStatus(codes.Error, "doctor lookup failed")
		return nil, fmt.Errorf("failed to look up doctor: %w", err)
	}

	a, err := s.repo.Book(ctx, Appointment{
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		Date:      req.Date,
		Time:      req.Time,
	})
	if err != nil {
		if errors.Is(err, ErrSlotTaken) {
			s.metrics.RecordDoubleBooking(ctx, req.DoctorID)
			span.SetAttributes(attribute.Bool("appointment.double_booked", true))
			s.log.WithFields(logrus.Fields{
				"doctor_id": req.DoctorID,
				"date":      req.Date,
				"time":      req.Time,
			}).Info("Rejected double booking")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "booking failed")
		return nil, err
	}

	span.SetAttributes(attribute.Int("appointment.id", a.ID))
	s.metrics.RecordAppointmentOperation(ctx, "book")

	_, err = s.history.RecordAutomatic(ctx, history.PatientHistory{
		PatientID:    p.ID,
		DoctorID:     a.DoctorID,
		Diagnosis:    p.Disease,
		Prescription: history.PendingPrescription,
		Notes:        history.ScheduledNote,
		VisitDate:    a.Date,
	})
	if err != nil {
		s.log.WithError(err).WithField("appointment_id", a.ID).Error("Failed to record visit history for booking")
	}

	evt := messaging.AppointmentBookedEvent{
		BaseEvent: messaging.NewBaseEvent(messaging.EventAppointmentBooked),
		Data: messaging.AppointmentBookedData{
			AppointmentID: a.ID,
			PatientID:     a.PatientID,
			DoctorID:      a.DoctorID,
			Date:          a.Date,
			Time:          a.Time,
		},
	}
	if err := s.publisher.Publish(ctx, messaging.EventAppointmentBooked, evt); err != nil {
		s.log.WithError(err).Warn("Failed to publish appointment.booked event")
	}

	span.SetStatus(codes.Ok, "booked")
	return a, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id int, req UpdateStatusRequest) (*Appointment, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	a, old, err := s.repo.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		return nil, err
	}

	s.metrics.RecordAppointmentOperation(ctx, "status_change")

	if old != a.Status {
		evt := messaging.AppointmentStatusChangedEvent{
			BaseEvent: messaging.NewBaseEvent(messaging.EventAppointmentStatusChanged),
			Data: messaging.AppointmentStatusChangedData{
				AppointmentID: a.ID,
				OldStatus:     old,
				NewStatus:     a.Status,
				ChangedAt:     time.Now().UTC(),
			},
		}
		if err := s.publisher.Publish(ctx, messaging.EventAppointmentStatusChanged, evt); err != nil {
			s.log.WithError(err).Warn("Failed to publish appointment.status_changed event")
		}
	}

	s.log.WithFields(logrus.Fields{
		"appointment_id": a.ID,
		"old_status":     old,
		"new_status":     a.Status,
	}).Info("Appointment status updated")

	return a, nil
}
