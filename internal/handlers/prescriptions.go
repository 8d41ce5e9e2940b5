package handlers

import (
	"errors"
	"time"

	"ehospitality-server/internal/middleware"
	"ehospitality-server/internal/models"
	"ehospitality-server/internal/scheduling"
	"ehospitality-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Every prescription generates a flat consultation charge.
const (
	consultationFee         = 500.00
	consultationDescription = "Consultation Fee"
)

// PrescriptionHandler handles prescriptions and medical history entries.
type PrescriptionHandler struct {
	DB        *gorm.DB
	Scheduler *scheduling.Service
}

// NewPrescriptionHandler creates a new PrescriptionHandler.
func NewPrescriptionHandler(db *gorm.DB) *PrescriptionHandler {
	return &PrescriptionHandler{DB: db, Scheduler: scheduling.NewService(db)}
}

// CreatePrescriptionRequest represents the request body for issuing a prescription.
type CreatePrescriptionRequest struct {
	PatientID     string `json:"patientId" binding:"required,uuid"`
	AppointmentID string `json:"appointmentId" binding:"required,uuid"`
	Diagnosis     string `json:"diagnosis" binding:"required"`
	Medications   string `json:"medications" binding:"required"`
	Notes         string `json:"notes"`
}

// CreatePrescription handles a doctor issuing a prescription against one of
// their appointments. In one transaction the prescription is stored, the
// consultation bill is generated, and the appointment is completed.
func (h *PrescriptionHandler) CreatePrescription(c *gin.Context) {
	var req CreatePrescriptionRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	doctorID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var appointment models.Appointment
	if err := h.DB.Where("id = ? AND doctor_id = ? AND patient_id = ?",
		req.AppointmentID, doctorID, req.PatientID).First(&appointment).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	prescription := models.Prescription{
		AppointmentID: &appointment.ID,
		DoctorID:      doctorID,
		PatientID:     req.PatientID,
		Diagnosis:     req.Diagnosis,
		Medications:   req.Medications,
		Notes:         req.Notes,
		DateIssued:    time.Now(),
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&prescription).Error; err != nil {
			return err
		}
		bill := models.Bill{
			PatientID:      req.PatientID,
			PrescriptionID: &prescription.ID,
			Amount:         consultationFee,
			Description:    consultationDescription,
			DateIssued:     time.Now(),
		}
		if err := tx.Create(&bill).Error; err != nil {
			return err
		}
		return h.Scheduler.CompleteTx(tx, &appointment)
	})
	if err != nil {
		if errors.Is(err, scheduling.ErrNotAllowed) {
			utils.Conflict(c, "Appointment is not open for a prescription")
		} else {
			utils.InternalServerError(c, "Failed to create prescription: "+err.Error())
		}
		return
	}

	utils.Created(c, "Prescription submitted successfully. Bill generated.", prescription)
}

// GetMyPrescriptions handles a patient listing their own prescriptions.
func (h *PrescriptionHandler) GetMyPrescriptions(c *gin.Context) {
	patientID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var prescriptions []models.Prescription
	if err := h.DB.Where("patient_id = ?", patientID).
		Order("date_issued desc").
		Find(&prescriptions).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch prescriptions: "+err.Error())
		return
	}

	utils.Success(c, "Prescriptions fetched successfully", prescriptions)
}

// GetPrescriptionsForPatient handles a doctor listing the prescriptions
// issued to one of their patients.
func (h *PrescriptionHandler) GetPrescriptionsForPatient(c *gin.Context) {
	var prescriptions []models.Prescription
	if err := h.DB.Where("patient_id = ?", c.Param("patientId")).
		Order("date_issued desc").
		Find(&prescriptions).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch prescriptions: "+err.Error())
		return
	}

	utils.Success(c, "Prescriptions fetched successfully", prescriptions)
}

// CreateMedicalHistoryRequest represents the request body for a chart entry.
type CreateMedicalHistoryRequest struct {
	Diagnosis      string `json:"diagnosis" binding:"required"`
	Medications    string `json:"medications" binding:"required"`
	Allergies      string `json:"allergies"`
	TreatmentNotes string `json:"treatmentNotes"`
}

// CreateMedicalHistory handles a doctor adding an entry to a patient's chart.
func (h *PrescriptionHandler) CreateMedicalHistory(c *gin.Context) {
	var req CreateMedicalHistoryRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	doctorID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var patient models.User
	if err := h.DB.Where("id = ? AND role = ?", c.Param("patientId"), models.RolePatient).
		First(&patient).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	entry := models.MedicalHistory{
		PatientID:      patient.ID,
		DoctorID:       &doctorID,
		Diagnosis:      req.Diagnosis,
		Medications:    req.Medications,
		Allergies:      req.Allergies,
		TreatmentNotes: req.TreatmentNotes,
	}
	if err := h.DB.Create(&entry).Error; err != nil {
		utils.InternalServerError(c, "Failed to create medical history entry: "+err.Error())
		return
	}

	utils.Created(c, "Medical history entry created successfully", entry)
}

// GetPatientHistory handles a doctor viewing a patient's chart.
func (h *PrescriptionHandler) GetPatientHistory(c *gin.Context) {
	var history []models.MedicalHistory
	if err := h.DB.Where("patient_id = ?", c.Param("patientId")).
		Order("created_at desc").
		Find(&history).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch medical history: "+err.Error())
		return
	}

	utils.Success(c, "Medical history fetched successfully", history)
}

// GetMyMedicalHistory handles a patient viewing their own chart.
func (h *PrescriptionHandler) GetMyMedicalHistory(c *gin.Context) {
	patientID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	var history []models.MedicalHistory
	if err := h.DB.Where("patient_id = ?", patientID).
		Order("created_at desc").
		Find(&history).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch medical history: "+err.Error())
		return
	}

	utils.Success(c, "Medical history fetched successfully", history)
}
