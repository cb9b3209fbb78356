package appointment

const (
	StatusScheduled = "Scheduled"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

// Appointment books a patient into a doctor's date/time slot
type Appointment struct {
	ID        int    `json:"id" gorm:"primaryKey;autoIncrement"`
	PatientID int    `json:"patient_id" gorm:"not null"`
	DoctorID  int    `json:"doctor_id" gorm:"not null;index"`
	Date      string `json:"date" gorm:"type:varchar(10);not null"`
	Time      string `json:"time" gorm:"type:varchar(5);not null"`
	Status    string `json:"status" gorm:"type:varchar(16);not null;default:Scheduled"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// occupies reports whether a holds the doctor/date/time slot
func (a Appointment) occupies(doctorID int, date, time string) bool {
	return a.Status == StatusScheduled && a.DoctorID == doctorID && a.Date == date && a.Time == time
}

type CreateAppointmentRequest struct {
	PatientID int    `json:"patient_id" validate:"required"`
	DoctorID  int    `json:"doctor_id" validate:"required"`
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	Time      string `json:"time" validate:"required,datetime=15:04"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Scheduled Completed Cancelled"`
}
