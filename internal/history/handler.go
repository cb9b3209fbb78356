package history

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/clinic-management/clinic-service/internal/validation"
	"github.com/gorilla/mux"
)

type Handler struct {
	service ServiceInterface
}

func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.ListHistory(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, records)
}

// ListPatientHistory returns an empty array for a patient with no visits
func (h *Handler) ListPatientHistory(w http.ResponseWriter, r *http.Request) {
	patientID, err := strconv.Atoi(mux.Vars(r)["patient_id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_id", "Patient ID must be an integer")
		return
	}

	records, err := h.service.ListByPatient(r.Context(), patientID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}
	respondJSON(w, http.StatusOK, records)
}

func (h *Handler) CreateHistory(w http.ResponseWriter, r *http.Request) {
	var req CreateHistoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	record, err := h.service.CreateHistory(r.Context(), req)
	if err != nil {
		if validation.IsValidationError(err) {
			respondError(w, http.StatusUnprocessableEntity, "validation_error", err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "creation_failed", err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, record)
}

func respondJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, statusCode int, errorType, message string) {
	respondJSON(w, statusCode, map[string]interface{}{
		"error":   errorType,
		"message": message,
	})
}
