package models

import (
	"golang.org/x/crypto/bcrypt"
)

// Role enum
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// User represents a user in the system
type User struct {
	BaseModel
	Email     string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password  string `gorm:"size:255;not null" json:"-"` // Never send password in JSON
	FirstName string `gorm:"size:100" json:"firstName"`
	LastName  string `gorm:"size:100" json:"lastName"`
	Role      Role   `gorm:"size:20;default:'patient'" json:"role"`
	Place     string `gorm:"size:100" json:"place,omitempty"`

	// Patient profile fields
	Age        *int   `json:"age,omitempty"`
	Gender     string `gorm:"size:10" json:"gender,omitempty"`
	Phone      string `gorm:"size:15" json:"phone,omitempty"`
	Address    string `gorm:"type:text" json:"address,omitempty"`
	BloodGroup string `gorm:"size:3" json:"bloodGroup,omitempty"`

	// Doctor profile fields
	DepartmentID *string     `gorm:"size:36;index" json:"departmentId,omitempty"`
	Department   *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`

	// Relations (not always preloaded)
	RefreshTokens       []RefreshToken   `gorm:"foreignKey:UserID" json:"-"`
	DoctorAppointments  []Appointment    `gorm:"foreignKey:DoctorID;constraint:OnDelete:CASCADE" json:"-"`
	PatientAppointments []Appointment    `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"-"`
	MedicalHistories    []MedicalHistory `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"-"`
}

// UserSanitized represents the user data that is safe to send in API responses.
type UserSanitized struct {
	ID           string      `json:"id"`
	Email        string      `json:"email"`
	FirstName    string      `json:"firstName"`
	LastName     string      `json:"lastName"`
	Role         Role        `json:"role"`
	Place        string      `json:"place,omitempty"`
	Age          *int        `json:"age,omitempty"`
	Gender       string      `json:"gender,omitempty"`
	Phone        string      `json:"phone,omitempty"`
	Address      string      `json:"address,omitempty"`
	BloodGroup   string      `json:"bloodGroup,omitempty"`
	DepartmentID *string     `json:"departmentId,omitempty"`
	Department   *Department `json:"department,omitempty"`
}

// DisplayName returns the user's presentable name, with the doctor honorific.
func (u *User) DisplayName() string {
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		name = u.Email
	}
	if u.Role == RoleDoctor {
		return "Dr. " + name
	}
	return name
}

// SetPassword hashes a password and sets it on the user
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword compares a password with the user's hashed password
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// Sanitize creates a UserSanitized struct from a User model, excluding sensitive data.
func (u *User) Sanitize() UserSanitized {
	return UserSanitized{
		ID:           u.ID,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Role:         u.Role,
		Place:        u.Place,
		Age:          u.Age,
		Gender:       u.Gender,
		Phone:        u.Phone,
		Address:      u.Address,
		BloodGroup:   u.BloodGroup,
		DepartmentID: u.DepartmentID,
		Department:   u.Department,
	}
}
