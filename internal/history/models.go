package history

// PatientHistory is one visit record of a patient
type PatientHistory struct {
	ID           int    `json:"id" gorm:"primaryKey;autoIncrement"`
	PatientID    int    `json:"patient_id" gorm:"not null;index"`
	DoctorID     int    `json:"doctor_id" gorm:"not null"`
	Diagnosis    string `json:"diagnosis"`
	Prescription string `json:"prescription"`
	Notes        string `json:"notes"`
	VisitDate    string `json:"visit_date" gorm:"type:date;not null"`
}

func (PatientHistory) TableName() string {
	return "patient_history"
}

// CreateHistoryRequest is the body of POST /history/
type CreateHistoryRequest struct {
	PatientID    int    `json:"patient_id" validate:"required,gt=0"`
	DoctorID     int    `json:"doctor_id" validate:"required,gt=0"`
	Diagnosis    string `json:"diagnosis"`
	Prescription string `json:"prescription"`
	Notes        string `json:"notes"`
	VisitDate    string `json:"visit_date" validate:"required,datetime=2006-01-02"`
}

// Values written by auto-history on booking
const (
	PendingPrescription = "Pending"
	ScheduledNote       = "Appointment scheduled"
)
