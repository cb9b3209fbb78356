//go:build integration

package patient

import (
	"context"
	"testing"

	"github.com/clinic-management/clinic-service/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepository(t *testing.T) *Repository {
	t.Helper()
	db := testutil.SetupTestDB(t)
	require.NoError(t, Migrate(db))
	testutil.ResetTables(t, db, "patients")
	return NewRepository(db)
}

func TestRepositoryCreateAndGet_Integration(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	created, err := repo.CreatePatient(ctx, Patient{Name: "Ali", Age: 30, Disease: "Flu"})
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)

	got, err := repo.GetPatient(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ali", got.Name)
	assert.Equal(t, "Flu", got.Disease)
}

func TestRepositoryUpdatePatient_Integration(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	created, err := repo.CreatePatient(ctx, Patient{Name: "Ali", Age: 30, Disease: "Flu"})
	require.NoError(t, err)

	_, err = repo.UpdatePatient(ctx, created.ID, Patient{Name: "Ali", Age: 0})
	require.NoError(t, err)

	got, err := repo.GetPatient(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Age)
	assert.Empty(t, got.Disease)

	_, err = repo.UpdatePatient(ctx, 999, Patient{Name: "X"})
	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestRepositoryDeletePatient_Integration(t *testing.T) {
	repo := setupRepository(t)
	ctx := context.Background()

	created, err := repo.CreatePatient(ctx, Patient{Name: "Ali", Age: 30})
	require.NoError(t, err)

	require.NoError(t, repo.DeletePatient(ctx, created.ID))
	assert.ErrorIs(t, repo.DeletePatient(ctx, created.ID), ErrPatientNotFound)

	patients, err := repo.ListPatients(ctx)
	require.NoError(t, err)
	assert.Empty(t, patients)
}
