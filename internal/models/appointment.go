package models

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "Pending"
	StatusConfirmed AppointmentStatus = "Confirmed"
	StatusCancelled AppointmentStatus = "Cancelled"
	StatusCompleted AppointmentStatus = "Completed"
)

// Appointment represents a scheduled visit with a doctor. Date and Time are
// stored as ISO strings ("2006-01-02" and 24-hour "15:04") so slot equality
// and past/future checks are plain string comparisons.
type Appointment struct {
	BaseModel
	PatientID string            `gorm:"size:36;index" json:"patientId"`
	DoctorID  string            `gorm:"size:36;index:idx_doctor_day" json:"doctorId"`
	Date      string            `gorm:"size:10;index:idx_doctor_day" json:"date"`
	Time      string            `gorm:"size:5" json:"time"`
	Reason    string            `gorm:"type:text" json:"reason,omitempty"`
	Status    AppointmentStatus `gorm:"size:20;default:'Pending'" json:"status"`

	// Relations
	Patient User `gorm:"foreignKey:PatientID" json:"-"`
	Doctor  User `gorm:"foreignKey:DoctorID" json:"-"`
}
