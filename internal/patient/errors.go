package patient

import "errors"

var (
	// ErrPatientNotFound is returned when no patient has the requested id
	ErrPatientNotFound = errors.New("patient not found")
)
