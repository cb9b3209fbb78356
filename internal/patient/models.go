package patient

// Patient is a registered clinic patient
type Patient struct {
	ID      int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name    string `json:"name" gorm:"not null"`
	Age     int    `json:"age" gorm:"not null"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Disease string `json:"disease"`
}

func (Patient) TableName() string {
	return "patients"
}

// PatientRequest is the body of create and replace requests
type PatientRequest struct {
	Name    string `json:"name" validate:"required"`
	Age     *int   `json:"age" validate:"required,gte=0,lte=150"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Disease string `json:"disease"`
}

// toPatient copies the request onto a patient record with the given id
func (r PatientRequest) toPatient(id int) Patient {
	p := Patient{
		ID:      id,
		Name:    r.Name,
		Phone:   r.Phone,
		Address: r.Address,
		Disease: r.Disease,
	}
	if r.Age != nil {
		p.Age = *r.Age
	}
	return p
}
