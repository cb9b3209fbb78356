package doctor

import (
	"context"
	"io"
	"testing"

	"github.com/clinic-management/clinic-service/internal/messaging"
	"github.com/clinic-management/clinic-service/internal/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestServiceListDoctors_Seeded(t *testing.T) {
	svc := NewService(NewMemoryRepository(), nil, nil, discardLogger())

	doctors, err := svc.ListDoctors(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultDoctors(), doctors)
}

func TestServiceCreateDoctor_PublishesEvent(t *testing.T) {
	pub := testutil.NewMockPublisher()
	svc := NewService(NewMemoryRepository(), pub, nil, discardLogger())

	d, err := svc.CreateDoctor(context.Background(), CreateDoctorRequest{Name: "Dr Zara", Specialty: "Eyes"})
	require.NoError(t, err)
	assert.Equal(t, 4, d.ID)

	pub.AssertEventCount(t, messaging.EventDoctorCreated, 1)
	evt, ok := pub.Last().EventData.(messaging.DoctorCreatedEvent)
	require.True(t, ok)
	assert.Equal(t, 4, evt.Data.DoctorID)
}

func TestServiceGetDoctor_NotFound(t *testing.T) {
	svc := NewService(NewMemoryRepository(), nil, nil, discardLogger())

	_, err := svc.GetDoctor(context.Background(), 99)
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestMemoryRepository_MaxPlusOne(t *testing.T) {
	repo := &MemoryRepository{doctors: []Doctor{{ID: 7, Name: "Dr Old", Specialty: "General"}}}

	d, err := repo.CreateDoctor(context.Background(), Doctor{Name: "Dr New", Specialty: "Skin"})
	require.NoError(t, err)
	assert.Equal(t, 8, d.ID)
}
