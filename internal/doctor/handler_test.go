package doctor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockService struct {
	listDoctorsFunc  func(ctx context.Context) ([]Doctor, error)
	getDoctorFunc    func(ctx context.Context, id int) (*Doctor, error)
	createDoctorFunc func(ctx context.Context, req CreateDoctorRequest) (*Doctor, error)
}

func (m *mockService) ListDoctors(ctx context.Context) ([]Doctor, error) {
	if m.listDoctorsFunc != nil {
		return m.listDoctorsFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *mockService) GetDoctor(ctx context.Context, id int) (*Doctor, error) {
	if m.getDoctorFunc != nil {
		return m.getDoctorFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockService) CreateDoctor(ctx context.Context, req CreateDoctorRequest) (*Doctor, error) {
	if m.createDoctorFunc != nil {
		return m.createDoctorFunc(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func TestHandlerListDoctors(t *testing.T) {
	handler := NewHandler(&mockService{
		listDoctorsFunc: func(ctx context.Context) ([]Doctor, error) {
			return DefaultDoctors(), nil
		},
	})

	rr := httptest.NewRecorder()
	handler.ListDoctors(rr, httptest.NewRequest(http.MethodGet, "/doctors/", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var got []Doctor
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Len(t, got, 3)
	assert.Equal(t, "Dr Ahmed", got[0].Name)
}

func TestHandlerCreateDoctor(t *testing.T) {
	handler := NewHandler(NewService(NewMemoryRepository(), nil, nil, discardLogger()))

	body := bytes.NewBufferString(`{"name":"Dr Zara","specialty":"Eyes"}`)
	rr := httptest.NewRecorder()
	handler.CreateDoctor(rr, httptest.NewRequest(http.MethodPost, "/doctors/", body))

	require.Equal(t, http.StatusCreated, rr.Code)
	var got Doctor
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Equal(t, 4, got.ID)
	assert.Equal(t, "Eyes", got.Specialty)
}

func TestHandlerCreateDoctor_Errors(t *testing.T) {
	handler := NewHandler(NewService(NewMemoryRepository(), nil, nil, discardLogger()))

	tests := []struct {
		name     string
		body     string
		expected int
	}{
		{"malformed json", `{"name":`, http.StatusBadRequest},
		{"missing specialty", `{"name":"Dr X"}`, http.StatusUnprocessableEntity},
		{"missing name", `{"specialty":"Heart"}`, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			handler.CreateDoctor(rr, httptest.NewRequest(http.MethodPost, "/doctors/", bytes.NewBufferString(tt.body)))
			assert.Equal(t, tt.expected, rr.Code)
		})
	}
}

func TestHandlerGetDoctor(t *testing.T) {
	handler := NewHandler(NewService(NewMemoryRepository(), nil, nil, discardLogger()))

	tests := []struct {
		id       string
		expected int
	}{
		{"2", http.StatusOK},
		{"42", http.StatusNotFound},
		{"two", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/doctors/"+tt.id, nil), map[string]string{"id": tt.id})
			rr := httptest.NewRecorder()
			handler.GetDoctor(rr, req)
			assert.Equal(t, tt.expected, rr.Code)
		})
	}
}
