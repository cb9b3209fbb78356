package patient

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/clinic-management/clinic-service/internal/messaging"
	"github.com/clinic-management/clinic-service/internal/testutil"
	"github.com/clinic-management/clinic-service/internal/validation"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func newTestService(t *testing.T) (*Service, *testutil.MockPublisher) {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	pub := testutil.NewMockPublisher()
	return NewService(NewMemoryRepository(), pub, nil, log), pub
}

func TestServiceCreatePatient_Success(t *testing.T) {
	svc, pub := newTestService(t)

	p, err := svc.CreatePatient(context.Background(), PatientRequest{Name: "Ali", Age: intPtr(30), Disease: "Flu"})
	require.NoError(t, err)

	assert.Equal(t, 1, p.ID)
	assert.Equal(t, "Ali", p.Name)
	assert.Equal(t, 30, p.Age)
	pub.AssertEventCount(t, messaging.EventPatientCreated, 1)
}

func TestServiceCreatePatient_Validation(t *testing.T) {
	svc, pub := newTestService(t)

	tests := []struct {
		name string
		req  PatientRequest
	}{
		{"missing name", PatientRequest{Age: intPtr(20)}},
		{"missing age", PatientRequest{Name: "Ali"}},
		{"negative age", PatientRequest{Name: "Ali", Age: intPtr(-1)}},
		{"age too high", PatientRequest{Name: "Ali", Age: intPtr(151)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreatePatient(context.Background(), tt.req)
			assert.True(t, validation.IsValidationError(err), "expected validation error, got %v", err)
		})
	}

	pub.AssertEventNotPublished(t, messaging.EventPatientCreated)
}

func TestServiceCreatePatient_AgeZeroAllowed(t *testing.T) {
	svc, _ := newTestService(t)

	p, err := svc.CreatePatient(context.Background(), PatientRequest{Name: "Newborn", Age: intPtr(0)})
	require.NoError(t, err)
	assert.Equal(t, 0, p.Age)
}

func TestServiceUpdatePatient_ReplacesRecord(t *testing.T) {
	svc, pub := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreatePatient(ctx, PatientRequest{Name: "Ali", Age: intPtr(30), Phone: "0300", Disease: "Flu"})
	require.NoError(t, err)

	updated, err := svc.UpdatePatient(ctx, created.ID, PatientRequest{Name: "Ali Khan", Age: intPtr(31)})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Ali Khan", updated.Name)
	assert.Empty(t, updated.Phone)
	assert.Empty(t, updated.Disease)
	pub.AssertEventCount(t, messaging.EventPatientUpdated, 1)
}

func TestServiceUpdatePatient_NotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.UpdatePatient(context.Background(), 42, PatientRequest{Name: "X", Age: intPtr(1)})
	assert.True(t, errors.Is(err, ErrPatientNotFound))
}

func TestServiceDeletePatient(t *testing.T) {
	svc, pub := newTestService(t)
	ctx := context.Background()

	p, err := svc.CreatePatient(ctx, PatientRequest{Name: "Ali", Age: intPtr(30)})
	require.NoError(t, err)

	require.NoError(t, svc.DeletePatient(ctx, p.ID))
	pub.AssertEventCount(t, messaging.EventPatientDeleted, 1)

	_, err = svc.GetPatient(ctx, p.ID)
	assert.ErrorIs(t, err, ErrPatientNotFound)

	assert.ErrorIs(t, svc.DeletePatient(ctx, p.ID), ErrPatientNotFound)
}

func TestServiceCreatePatient_PublishFailureIgnored(t *testing.T) {
	svc, pub := newTestService(t)
	pub.Err = errors.New("broker down")

	p, err := svc.CreatePatient(context.Background(), PatientRequest{Name: "Ali", Age: intPtr(30)})
	require.NoError(t, err)
	assert.Equal(t, 1, p.ID)
}

func TestServiceListPatients_EmptyNotNil(t *testing.T) {
	svc, _ := newTestService(t)

	patients, err := svc.ListPatients(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, patients)
	assert.Empty(t, patients)
}
