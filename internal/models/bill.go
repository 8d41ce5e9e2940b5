package models

import (
	"time"
)

// Bill represents a monetary charge for a patient, optionally tied to a
// prescription. Payment happens through the external checkout gateway; the
// gateway session id is kept so the return callback can be reconciled.
type Bill struct {
	BaseModel
	PatientID      string  `gorm:"size:36;index" json:"patientId"`
	PrescriptionID *string `gorm:"size:36;uniqueIndex" json:"prescriptionId,omitempty"`
	Amount         float64 `gorm:"type:decimal(10,2)" json:"amount"`
	Description    string  `gorm:"type:text" json:"description"`
	IsPaid         bool    `gorm:"default:false" json:"isPaid"`
	SessionID      string  `gorm:"size:255" json:"-"`

	DateIssued time.Time `json:"dateIssued"`

	// Relations
	Patient      User          `gorm:"foreignKey:PatientID" json:"-"`
	Prescription *Prescription `gorm:"foreignKey:PrescriptionID" json:"-"`
}
