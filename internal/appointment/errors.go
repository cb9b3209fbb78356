package appointment

import "errors"

var (
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrSlotTaken means another Scheduled appointment holds the doctor/date/time
	ErrSlotTaken = errors.New("doctor already booked for this time")
)
