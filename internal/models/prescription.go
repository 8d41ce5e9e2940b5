package models

import (
	"time"
)

// Prescription is issued by a doctor against an appointment. Issuing one
// completes the appointment and generates a consultation bill.
type Prescription struct {
	BaseModel
	AppointmentID *string   `gorm:"size:36;index" json:"appointmentId,omitempty"`
	DoctorID      string    `gorm:"size:36;index" json:"doctorId"`
	PatientID     string    `gorm:"size:36;index" json:"patientId"`
	Diagnosis     string    `gorm:"type:text" json:"diagnosis"`
	Medications   string    `gorm:"type:text" json:"medications"` // list of medications with dosage
	Notes         string    `gorm:"type:text" json:"notes,omitempty"`
	IsPaid        bool      `gorm:"default:false" json:"isPaid"`
	DateIssued    time.Time `json:"dateIssued"`

	// Relations
	Appointment *Appointment `gorm:"foreignKey:AppointmentID" json:"-"`
	Doctor      User         `gorm:"foreignKey:DoctorID" json:"-"`
	Patient     User         `gorm:"foreignKey:PatientID" json:"-"`
}

// MedicalHistory represents a doctor-recorded entry in a patient's chart.
type MedicalHistory struct {
	BaseModel
	PatientID      string  `gorm:"size:36;index" json:"patientId"`
	DoctorID       *string `gorm:"size:36" json:"doctorId,omitempty"`
	Diagnosis      string  `gorm:"type:text" json:"diagnosis"`
	Medications    string  `gorm:"type:text" json:"medications"`
	Allergies      string  `gorm:"type:text" json:"allergies,omitempty"`
	TreatmentNotes string  `gorm:"type:text" json:"treatmentNotes,omitempty"`

	// Relations
	Patient User  `gorm:"foreignKey:PatientID" json:"-"`
	Doctor  *User `gorm:"foreignKey:DoctorID" json:"-"`
}
