package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name   string `json:"name" validate:"required"`
	Age    *int   `json:"age" validate:"required,gte=0,lte=150"`
	Date   string `json:"date" validate:"required,datetime=2006-01-02"`
	Status string `json:"status" validate:"omitempty,oneof=Scheduled Completed Cancelled"`
}

func intPtr(i int) *int { return &i }

func TestStruct_Valid(t *testing.T) {
	err := Struct(sample{Name: "Ali", Age: intPtr(0), Date: "2025-01-31"})
	assert.NoError(t, err)
}

func TestStruct_ReportsJSONFieldNames(t *testing.T) {
	err := Struct(sample{Age: intPtr(200), Date: "31/01/2025", Status: "Pending"})
	require.Error(t, err)
	assert.True(t, IsValidationError(err))

	var ve *Error
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Fields, "name is required")
	assert.Contains(t, ve.Fields, "age must be at most 150")
	assert.Contains(t, ve.Fields, "date must match layout 2006-01-02")
	assert.Contains(t, ve.Fields, "status must be one of [Scheduled Completed Cancelled]")
}

func TestStruct_MissingPointerIsRequired(t *testing.T) {
	err := Struct(sample{Name: "Sara", Date: "2025-01-31"})
	require.Error(t, err)
	assert.Equal(t, "age is required", err.Error())
}

func TestIsValidationError_OtherError(t *testing.T) {
	assert.False(t, IsValidationError(errors.New("boom")))
}
