package appointment

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/clinic-management/clinic-service/internal/doctor"
	"github.com/clinic-management/clinic-service/internal/history"
	"github.com/clinic-management/clinic-service/internal/messaging"
	"github.com/clinic-management/clinic-service/internal/patient"
	"github.com/clinic-management/clinic-service/internal/testutil"
	"github.com/clinic-management/clinic-service/internal/validation"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockHistory implements HistoryRecorder for testing
type mockHistory struct {
	recordFunc func(ctx context.Context, h history.PatientHistory) (*history.PatientHistory, error)
}

func (m *mockHistory) RecordAutomatic(ctx context.Context, h history.PatientHistory) (*history.PatientHistory, error) {
	if m.recordFunc != nil {
		return m.recordFunc(ctx, h)
	}
	return nil, errors.New("not implemented")
}

type fixture struct {
	svc       *Service
	patients  *patient.MemoryRepository
	history   *history.Service
	publisher *testutil.MockPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)
	pub := testutil.NewMockPublisher()

	patients := patient.NewMemoryRepository()
	_, err := patients.CreatePatient(context.Background(), patient.Patient{Name: "Ali", Age: 30, Disease: "Flu"})
	require.NoError(t, err)

	hist := history.NewService(history.NewMemoryRepository(), pub, nil, log)

	svc := NewService(Dependencies{
		Repository: NewMemoryRepository(),
		Patients:   patients,
		Doctors:    doctor.NewMemoryRepository(),
		History:    hist,
		Publisher:  pub,
		Log:        log,
	})

	return &fixture{svc: svc, patients: patients, history: hist, publisher: pub}
}

func booking(patientID, doctorID int, date, tm string) CreateAppointmentRequest {
	return CreateAppointmentRequest{PatientID: patientID, DoctorID: doctorID, Date: date, Time: tm}
}

func TestBookAppointment_Success(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.svc.BookAppointment(ctx, booking(1, 2, "2025-03-01", "10:30"))
	require.NoError(t, err)

	assert.Equal(t, 1, a.ID)
	assert.Equal(t, StatusScheduled, a.Status)
	f.publisher.AssertEventCount(t, messaging.EventAppointmentBooked, 1)
}

func TestBookAppointment_CreatesHistory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.BookAppointment(ctx, booking(1, 2, "2025-03-01", "10:30"))
	require.NoError(t, err)

	records, err := f.history.ListByPatient(ctx, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)

	h := records[0]
	assert.Equal(t, 2, h.DoctorID)
	assert.Equal(t, "Flu", h.Diagnosis)
	assert.Equal(t, "Pending", h.Prescription)
	assert.Equal(t, "Appointment scheduled", h.Notes)
	assert.Equal(t, "2025-03-01", h.VisitDate)
}

func TestBookAppointment_UnknownPatient(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.BookAppointment(context.Background(), booking(99, 1, "2025-03-01", "10:30"))
	assert.ErrorIs(t, err, patient.ErrPatientNotFound)
}

func TestBookAppointment_UnknownDoctor(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.BookAppointment(context.Background(), booking(1, 99, "2025-03-01", "10:30"))
	assert.ErrorIs(t, err, doctor.ErrDoctorNotFound)
}

func TestBookAppointment_PatientCheckedBeforeDoctor(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.BookAppointment(context.Background(), booking(99, 99, "2025-03-01", "10:30"))
	assert.ErrorIs(t, err, patient.ErrPatientNotFound)
}

func TestBookAppointment_DoubleBooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.BookAppointment(ctx, booking(1, 1, "2025-03-01", "10:30"))
	require.NoError(t, err)

	_, err = f.svc.BookAppointment(ctx, booking(1, 1, "2025-03-01", "10:30"))
	assert.ErrorIs(t, err, ErrSlotTaken)

	// different time, date or doctor is fine
	_, err = f.svc.BookAppointment(ctx, booking(1, 1, "2025-03-01", "11:00"))
	assert.NoError(t, err)
	_, err = f.svc.BookAppointment(ctx, booking(1, 1, "2025-03-02", "10:30"))
	assert.NoError(t, err)
	_, err = f.svc.BookAppointment(ctx, booking(1, 2, "2025-03-01", "10:30"))
	assert.NoError(t, err)

	all, err := f.svc.ListAppointments(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	records, err := f.history.ListByPatient(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, records, 4, "rejected booking must not add history")
}

func TestBookAppointment_CancelledSlotCanBeRebooked(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.svc.BookAppointment(ctx, booking(1, 1, "2025-03-01", "10:30"))
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(ctx, a.ID, UpdateStatusRequest{Status: StatusCancelled})
	require.NoError(t, err)

	b, err := f.svc.BookAppointment(ctx, booking(1, 1, "2025-03-01", "10:30"))
	require.NoError(t, err)
	assert.Equal(t, 2, b.ID)
}

func TestBookAppointment_Validation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		req  CreateAppointmentRequest
	}{
		{"bad date", booking(1, 1, "01-03-2025", "10:30")},
		{"bad time", booking(1, 1, "2025-03-01", "10.30")},
		{"hour out of range", booking(1, 1, "2025-03-01", "25:00")},
		{"missing patient", booking(0, 1, "2025-03-01", "10:30")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.BookAppointment(context.Background(), tt.req)
			assert.True(t, validation.IsValidationError(err), "got %v", err)
		})
	}
}

func TestBookAppointment_HistoryFailureKeepsBooking(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	patients := patient.NewMemoryRepository()
	_, err := patients.CreatePatient(context.Background(), patient.Patient{Name: "Ali", Age: 30})
	require.NoError(t, err)

	svc := NewService(Dependencies{
		Repository: NewMemoryRepository(),
		Patients:   patients,
		Doctors:    doctor.NewMemoryRepository(),
		History: &mockHistory{
			recordFunc: func(ctx context.Context, h history.PatientHistory) (*history.PatientHistory, error) {
				return nil, errors.New("disk full")
			},
		},
		Log: log,
	})

	a, err := svc.BookAppointment(context.Background(), booking(1, 1, "2025-03-01", "09:00"))
	require.NoError(t, err)
	assert.Equal(t, StatusScheduled, a.Status)

	all, err := svc.ListAppointments(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestBookAppointment_ConcurrentSameSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const attempts = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		rejected  int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.BookAppointment(ctx, booking(1, 3, "2025-05-05", "14:00"))
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				succeeded++
			} else if errors.Is(err, ErrSlotTaken) {
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, rejected)
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a, err := f.svc.BookAppointment(ctx, booking(1, 1, "2025-03-01", "10:30"))
	require.NoError(t, err)

	updated, err := f.svc.UpdateStatus(ctx, a.ID, UpdateStatusRequest{Status: StatusCompleted})
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, updated.Status)
	f.publisher.AssertEventCount(t, messaging.EventAppointmentStatusChanged, 1)

	got, err := f.svc.GetAppointment(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, got.Status)
}

func TestUpdateStatus_Errors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.UpdateStatus(ctx, 1, UpdateStatusRequest{Status: StatusCompleted})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)

	a, err := f.svc.BookAppointment(ctx, booking(1, 1, "2025-03-01", "10:30"))
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(ctx, a.ID, UpdateStatusRequest{Status: "Done"})
	assert.True(t, validation.IsValidationError(err))

	_, err = f.svc.UpdateStatus(ctx, a.ID, UpdateStatusRequest{Status: "scheduled"})
	assert.True(t, validation.IsValidationError(err), "status is case sensitive")
}

func TestUpdateStatus_RescheduleIntoTakenSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.BookAppointment(ctx, booking(1, 1, "2025-03-01", "10:30"))
	require.NoError(t, err)
	_, err = f.svc.UpdateStatus(ctx, first.ID, UpdateStatusRequest{Status: StatusCancelled})
	require.NoError(t, err)

	_, err = f.svc.BookAppointment(ctx, booking(1, 1, "2025-03-01", "10:30"))
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(ctx, first.ID, UpdateStatusRequest{Status: StatusScheduled})
	assert.ErrorIs(t, err, ErrSlotTaken)

	// re-asserting Scheduled on an already Scheduled appointment is allowed
	second, err := f.svc.GetAppointment(ctx, 2)
	require.NoError(t, err)
	_, err = f.svc.UpdateStatus(ctx, second.ID, UpdateStatusRequest{Status: StatusScheduled})
	assert.NoError(t, err)
}

func TestDoctorSchedule(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, req := range []CreateAppointmentRequest{
		booking(1, 1, "2025-03-01", "09:00"),
		booking(1, 1, "2025-03-02", "09:00"),
		booking(1, 2, "2025-03-01", "09:00"),
	} {
		_, err := f.svc.BookAppointment(ctx, req)
		require.NoError(t, err)
	}

	all, err := f.svc.DoctorSchedule(ctx, 1, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	day, err := f.svc.DoctorSchedule(ctx, 1, "2025-03-02")
	require.NoError(t, err)
	require.Len(t, day, 1)
	assert.Equal(t, 2, day[0].ID)

	unknown, err := f.svc.DoctorSchedule(ctx, 404, "")
	require.NoError(t, err)
	assert.NotNil(t, unknown)
	assert.Empty(t, unknown)
}
