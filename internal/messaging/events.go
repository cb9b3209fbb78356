package messaging

import (
	"time"

	"github.com/google/uuid"
)

// Event routing keys
const (
	EventPatientCreated = "patient.created"
	EventPatientUpdated = "patient.updated"
	EventPatientDeleted = "patient.deleted"

	EventDoctorCreated = "doctor.created"

	EventAppointmentBooked        = "appointment.booked"
	EventAppointmentStatusChanged = "appointment.status_changed"

	EventHistoryRecorded = "history.recorded"
)

// ServiceName is stamped on every event
const ServiceName = "clinic-service"

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventType   string    `json:"event_type"`
	EventID     string    `json:"event_id"`
	Timestamp   time.Time `json:"timestamp"`
	ServiceName string    `json:"service_name"`
}

// PatientEvent is published for patient create/update/delete
type PatientEvent struct {
	BaseEvent
	Data PatientData `json:"data"`
}

type PatientData struct {
	PatientID int    `json:"patient_id"`
	Name      string `json:"name,omitempty"`
	Age       int    `json:"age,omitempty"`
	Disease   string `json:"disease,omitempty"`
}

// DoctorCreatedEvent represents a doctor registration
type DoctorCreatedEvent struct {
	BaseEvent
	Data DoctorCreatedData `json:"data"`
}

type DoctorCreatedData struct {
	DoctorID  int    `json:"doctor_id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
}

// AppointmentBookedEvent represents a new Scheduled appointment
type AppointmentBookedEvent struct {
	BaseEvent
	Data AppointmentBookedData `json:"data"`
}

type AppointmentBookedData struct {
	AppointmentID int    `json:"appointment_id"`
	PatientID     int    `json:"patient_id"`
	DoctorID      int    `json:"doctor_id"`
	Date          string `json:"date"`
	Time          string `json:"time"`
}

// AppointmentStatusChangedEvent represents a status transition
type AppointmentStatusChangedEvent struct {
	BaseEvent
	Data AppointmentStatusChangedData `json:"data"`
}

type AppointmentStatusChangedData struct {
	AppointmentID int       `json:"appointment_id"`
	OldStatus     string    `json:"old_status"`
	NewStatus     string    `json:"new_status"`
	ChangedAt     time.Time `json:"changed_at"`
}

// HistoryRecordedEvent represents a new visit history entry
type HistoryRecordedEvent struct {
	BaseEvent
	Data HistoryRecordedData `json:"data"`
}

type HistoryRecordedData struct {
	HistoryID int    `json:"history_id"`
	PatientID int    `json:"patient_id"`
	DoctorID  int    `json:"doctor_id"`
	VisitDate string `json:"visit_date"`
	Automatic bool   `json:"automatic"`
}

// NewBaseEvent creates a base event with common fields
func NewBaseEvent(eventType string) BaseEvent {
	return BaseEvent{
		EventType:   eventType,
		EventID:     uuid.NewString(),
		Timestamp:   time.Now().UTC(),
		ServiceName: ServiceName,
	}
}

// Envelope exposes the common fields of any event embedding BaseEvent
func (e BaseEvent) Envelope() BaseEvent {
	return e
}
