package doctor

// Doctor is a clinic doctor that appointments are booked against
type Doctor struct {
	ID        int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string `json:"name" gorm:"not null"`
	Specialty string `json:"specialty" gorm:"not null"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// DefaultDoctors is the roster every fresh store starts with
func DefaultDoctors() []Doctor {
	return []Doctor{
		{ID: 1, Name: "Dr Ahmed", Specialty: "General"},
		{ID: 2, Name: "Dr Sara", Specialty: "Skin"},
		{ID: 3, Name: "Dr Ali", Specialty: "Heart"},
	}
}
