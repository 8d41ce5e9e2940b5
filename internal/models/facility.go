package models

// Location represents a hospital site managed by admins.
type Location struct {
	BaseModel
	Name    string `gorm:"size:100;not null" json:"name"`
	Address string `gorm:"type:text" json:"address"`

	// Relations
	Departments []Department `gorm:"foreignKey:LocationID;constraint:OnDelete:CASCADE" json:"departments,omitempty"`
}

// Department represents a clinical department at a location. Doctors are
// attached to a department when they register.
type Department struct {
	BaseModel
	LocationID  string `gorm:"size:36;index" json:"locationId"`
	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	// Relations
	Location *Location `gorm:"foreignKey:LocationID" json:"location,omitempty"`
}
