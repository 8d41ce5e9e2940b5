package handlers

import (
	"errors"

	"ehospitality-server/internal/middleware"
	"ehospitality-server/internal/models"
	"ehospitality-server/internal/scheduling"
	"ehospitality-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AppointmentHandler handles appointment related requests.
type AppointmentHandler struct {
	DB        *gorm.DB
	Scheduler *scheduling.Service
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(db *gorm.DB) *AppointmentHandler {
	return &AppointmentHandler{DB: db, Scheduler: scheduling.NewService(db)}
}

// AppointmentView is the appointment representation sent to clients: the slot
// time in patient-facing 12-hour form plus the display names of both parties.
type AppointmentView struct {
	models.Appointment
	TimeDisplay string `json:"timeDisplay"`
	PatientName string `json:"patientName,omitempty"`
	DoctorName  string `json:"doctorName,omitempty"`
}

func toView(appt models.Appointment) AppointmentView {
	view := AppointmentView{
		Appointment: appt,
		TimeDisplay: scheduling.FormatClock(appt.Time),
	}
	if appt.Patient.ID != "" {
		view.PatientName = appt.Patient.DisplayName()
	}
	if appt.Doctor.ID != "" {
		view.DoctorName = appt.Doctor.DisplayName()
	}
	return view
}

func toViews(appts []models.Appointment) []AppointmentView {
	views := make([]AppointmentView, len(appts))
	for i, appt := range appts {
		views[i] = toView(appt)
	}
	return views
}

// GetAvailableSlots handles fetching the bookable slots for a doctor on a
// date. An optional exclude parameter names an appointment to leave out of
// the booked set (used while rescheduling).
func (h *AppointmentHandler) GetAvailableSlots(c *gin.Context) {
	doctorID := c.Query("doctorId")
	date := c.Query("date")
	if doctorID == "" || date == "" {
		utils.BadRequest(c, "doctorId and date query parameters are required")
		return
	}

	// Verify doctor exists and is a doctor
	var doctor models.User
	if err := h.DB.Where("id = ? AND role = ?", doctorID, models.RoleDoctor).First(&doctor).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Doctor not found or user is not a doctor")
		} else {
			utils.InternalServerError(c, "Database error verifying doctor: "+err.Error())
		}
		return
	}

	slots, err := h.Scheduler.AvailableSlots(doctorID, date, c.Query("exclude"))
	if err != nil {
		if errors.Is(err, scheduling.ErrMalformedDate) {
			utils.BadRequest(c, err.Error())
		} else {
			utils.InternalServerError(c, "Failed to compute available slots: "+err.Error())
		}
		return
	}

	utils.Success(c, "Available slots fetched successfully", gin.H{
		"doctorId": doctorID,
		"date":     date,
		"slots":    slots,
	})
}

// CreateAppointmentRequest represents the request body for booking an appointment.
type CreateAppointmentRequest struct {
	DoctorID string `json:"doctorId" binding:"required,uuid"`
	Date     string `json:"date" binding:"required"`
	Time     string `json:"time" binding:"required"` // 12-hour slot string, e.g. "09:15 AM"
	Reason   string `json:"reason"`
}

// CreateAppointment handles a patient booking a slot with a doctor.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	patientID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "Patient ID not found in token")
		return
	}

	// Verify doctor exists and is a doctor
	var doctor models.User
	if err := h.DB.Where("id = ? AND role = ?", req.DoctorID, models.RoleDoctor).First(&doctor).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Doctor not found or user is not a doctor")
		} else {
			utils.InternalServerError(c, "Database error verifying doctor: "+err.Error())
		}
		return
	}

	appt, err := h.Scheduler.Book(patientID, req.DoctorID, req.Date, req.Time, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, scheduling.ErrMalformedTime), errors.Is(err, scheduling.ErrMalformedDate):
			utils.BadRequest(c, err.Error())
		case errors.Is(err, scheduling.ErrSlotTaken):
			utils.Conflict(c, "Selected slot is already booked")
		default:
			utils.InternalServerError(c, "Failed to create appointment: "+err.Error())
		}
		return
	}

	utils.Created(c, "Appointment created successfully", toView(*appt))
}

// GetAppointmentsForUser handles fetching appointments for the logged-in user.
// Stale Pending/Confirmed appointments are expired before the list is built.
func (h *AppointmentHandler) GetAppointmentsForUser(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}
	userRole, _ := middleware.GetUserRoleFromContext(c)

	var appointments []models.Appointment
	query := h.DB.Preload("Patient").Preload("Doctor").Order("date desc, time desc")

	var err error
	switch userRole {
	case models.RolePatient:
		if err = h.Scheduler.ExpireStaleForPatient(userID); err == nil {
			err = query.Where("patient_id = ?", userID).Find(&appointments).Error
		}
	case models.RoleDoctor:
		if err = h.Scheduler.ExpireStaleForDoctor(userID); err == nil {
			err = query.Where("doctor_id = ?", userID).Find(&appointments).Error
		}
	case models.RoleAdmin:
		err = query.Find(&appointments).Error
	default:
		utils.Forbidden(c, "User role not permitted to view appointments")
		return
	}
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	utils.Success(c, "Appointments fetched successfully", toViews(appointments))
}

// ListAppointments handles the admin view of all appointments, optionally
// filtered by doctor or patient name.
func (h *AppointmentHandler) ListAppointments(c *gin.Context) {
	query := h.DB.Preload("Patient").Preload("Doctor").Order("date desc, time desc")

	if doctorName := c.Query("doctor"); doctorName != "" {
		pattern := "%" + doctorName + "%"
		query = query.Where("doctor_id IN (?)",
			h.DB.Model(&models.User{}).Select("id").
				Where("role = ? AND (first_name LIKE ? OR last_name LIKE ?)", models.RoleDoctor, pattern, pattern))
	}
	if patientName := c.Query("patient"); patientName != "" {
		pattern := "%" + patientName + "%"
		query = query.Where("patient_id IN (?)",
			h.DB.Model(&models.User{}).Select("id").
				Where("role = ? AND (first_name LIKE ? OR last_name LIKE ?)", models.RolePatient, pattern, pattern))
	}

	var appointments []models.Appointment
	if err := query.Find(&appointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	utils.Success(c, "Appointments fetched successfully", toViews(appointments))
}

// GetAppointmentByID handles fetching a single appointment by its ID.
// Accessible by involved patient, doctor, or an admin.
func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	appointmentID := c.Param("id")

	var appointment models.Appointment
	if err := h.DB.Preload("Patient").Preload("Doctor").First(&appointment, "id = ?", appointmentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)

	isInvolved := userID == appointment.PatientID || userID == appointment.DoctorID
	if userRole != models.RoleAdmin && !isInvolved {
		// Surfaced as not-found so outsiders cannot probe for bookings.
		utils.NotFound(c, "Appointment not found")
		return
	}

	utils.Success(c, "Appointment fetched successfully", toView(appointment))
}

// UpdateAppointmentStatusRequest represents the doctor's status action.
type UpdateAppointmentStatusRequest struct {
	Action string `json:"action" binding:"required,oneof=confirm cancel"`
}

// UpdateAppointmentStatus handles a doctor confirming or cancelling one of
// their appointments.
func (h *AppointmentHandler) UpdateAppointmentStatus(c *gin.Context) {
	var req UpdateAppointmentStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	doctorID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	appt, err := h.Scheduler.Transition(c.Param("id"), doctorID, req.Action)
	if err != nil {
		switch {
		case errors.Is(err, scheduling.ErrNotFound):
			utils.NotFound(c, "Appointment not found")
		case errors.Is(err, scheduling.ErrNotAllowed):
			utils.Conflict(c, "Appointment status does not permit this action")
		default:
			utils.InternalServerError(c, "Failed to update appointment status: "+err.Error())
		}
		return
	}

	utils.Success(c, "Appointment status updated successfully", toView(*appt))
}

// RescheduleAppointmentRequest represents the request body for rescheduling.
type RescheduleAppointmentRequest struct {
	NewDate string `json:"newDate" binding:"required"`
	NewTime string `json:"newTime" binding:"required"` // 12-hour slot string
}

// RescheduleAppointment handles a patient moving their appointment to a new
// slot. The appointment goes back to Pending for the doctor to re-confirm.
func (h *AppointmentHandler) RescheduleAppointment(c *gin.Context) {
	var req RescheduleAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	patientID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	appt, err := h.Scheduler.Reschedule(c.Param("id"), patientID, req.NewDate, req.NewTime)
	if err != nil {
		switch {
		case errors.Is(err, scheduling.ErrMalformedTime), errors.Is(err, scheduling.ErrMalformedDate):
			utils.BadRequest(c, err.Error())
		case errors.Is(err, scheduling.ErrNotFound):
			utils.NotFound(c, "Appointment not found")
		case errors.Is(err, scheduling.ErrNotAllowed):
			utils.Conflict(c, "Only pending or confirmed appointments can be rescheduled")
		case errors.Is(err, scheduling.ErrSlotTaken):
			utils.Conflict(c, "Selected time slot is not available")
		default:
			utils.InternalServerError(c, "Failed to reschedule appointment: "+err.Error())
		}
		return
	}

	utils.Success(c, "Appointment rescheduled successfully", toView(*appt))
}

// CancelAppointment handles a patient cancelling their appointment.
// Cancelling an already-cancelled appointment succeeds without effect.
func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	patientID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	if err := h.Scheduler.Cancel(c.Param("id"), patientID); err != nil {
		if errors.Is(err, scheduling.ErrNotFound) {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Failed to cancel appointment: "+err.Error())
		}
		return
	}

	utils.Success(c, "Appointment cancelled successfully", nil)
}
