package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/clinic-management/clinic-service"

// Metrics holds the business metrics of the clinic service.
// A nil *Metrics records nothing.
type Metrics struct {
	PatientTotal     metric.Int64Counter
	DoctorTotal      metric.Int64Counter
	AppointmentTotal metric.Int64Counter
	DoubleBookings   metric.Int64Counter
	HistoryTotal     metric.Int64Counter

	LoginAttempts     metric.Int64Counter
	AuthFailuresTotal metric.Int64Counter
}

// InitMetrics creates the instruments on the global meter provider
func InitMetrics() (*Metrics, error) {
	return NewMetrics(otel.Meter(meterName))
}

// NewMetrics creates the instruments on the given meter
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	var (
		m   Metrics
		err error
	)

	counters := []struct {
		dst  *metric.Int64Counter
		name string
		desc string
		unit string
	}{
		{&m.PatientTotal, "patient_total", "Total number of patient operations", "{operation}"},
		{&m.DoctorTotal, "doctor_total", "Total number of doctor operations", "{operation}"},
		{&m.AppointmentTotal, "appointment_total", "Total number of appointment operations", "{operation}"},
		{&m.DoubleBookings, "appointment_double_booking_total", "Bookings rejected because the doctor slot was taken", "{rejection}"},
		{&m.HistoryTotal, "history_total", "Total number of visit history operations", "{operation}"},
		{&m.LoginAttempts, "login_attempts_total", "Total number of login attempts", "{attempt}"},
		{&m.AuthFailuresTotal, "auth_failures_total", "Total number of authentication failures", "{failure}"},
	}

	for _, c := range counters {
		*c.dst, err = meter.Int64Counter(c.name,
			metric.WithDescription(c.desc),
			metric.WithUnit(c.unit),
		)
		if err != nil {
			return nil, err
		}
	}

	return &m, nil
}

// RecordPatientOperation records a patient operation metric
func (m *Metrics) RecordPatientOperation(ctx context.Context, operation string) {
	if m == nil {
		return
	}
	m.PatientTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", operation)))
}

// RecordDoctorOperation records a doctor operation metric
func (m *Metrics) RecordDoctorOperation(ctx context.Context, operation string) {
	if m == nil {
		return
	}
	m.DoctorTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", operation)))
}

// RecordAppointmentOperation records an appointment operation metric
func (m *Metrics) RecordAppointmentOperation(ctx context.Context, operation string) {
	if m == nil {
		return
	}
	m.AppointmentTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", operation)))
}

// RecordDoubleBooking records a rejected booking for a taken slot
func (m *Metrics) RecordDoubleBooking(ctx context.Context, doctorID int) {
	if m == nil {
		return
	}
	m.DoubleBookings.Add(ctx, 1, metric.WithAttributes(attribute.Int("doctor_id", doctorID)))
}

// RecordHistoryOperation records a history operation metric
func (m *Metrics) RecordHistoryOperation(ctx context.Context, operation string, automatic bool) {
	if m == nil {
		return
	}
	m.HistoryTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.Bool("automatic", automatic),
	))
}

// RecordLogin records a login attempt and its outcome
func (m *Metrics) RecordLogin(ctx context.Context, success bool) {
	if m == nil {
		return
	}
	m.LoginAttempts.Add(ctx, 1, metric.WithAttributes(attribute.Bool("success", success)))
}

// RecordAuthFailure records an authentication failure metric
func (m *Metrics) RecordAuthFailure(ctx context.Context, reason string) {
	if m == nil {
		return
	}
	m.AuthFailuresTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}
