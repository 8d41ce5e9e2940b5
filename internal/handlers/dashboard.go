package handlers

import (
	"ehospitality-server/internal/middleware"
	"ehospitality-server/internal/models"
	"ehospitality-server/internal/scheduling"
	"ehospitality-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DashboardHandler builds the role-specific landing views.
type DashboardHandler struct {
	DB        *gorm.DB
	Scheduler *scheduling.Service
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{DB: db, Scheduler: scheduling.NewService(db)}
}

// PatientDashboard handles the patient landing view: the next few confirmed
// upcoming appointments plus the latest health resources.
func (h *DashboardHandler) PatientDashboard(c *gin.Context) {
	patientID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	if err := h.Scheduler.ExpireStaleForPatient(patientID); err != nil {
		utils.InternalServerError(c, "Failed to refresh appointment statuses: "+err.Error())
		return
	}

	var upcoming []models.Appointment
	if err := h.DB.Preload("Doctor").
		Where("patient_id = ? AND status = ?", patientID, models.StatusConfirmed).
		Order("date, time").
		Limit(3).
		Find(&upcoming).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch upcoming appointments: "+err.Error())
		return
	}

	var resources []models.HealthResource
	if err := h.DB.Order("created_at desc").Limit(3).Find(&resources).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch health resources: "+err.Error())
		return
	}

	utils.Success(c, "Patient dashboard fetched successfully", gin.H{
		"upcomingAppointments": toViews(upcoming),
		"healthResources":      resources,
	})
}

// DoctorDashboard handles the doctor landing view. Stale appointments are
// expired first, then the open appointments and headline counts are built.
func (h *DashboardHandler) DoctorDashboard(c *gin.Context) {
	doctorID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return
	}

	if err := h.Scheduler.ExpireStaleForDoctor(doctorID); err != nil {
		utils.InternalServerError(c, "Failed to refresh appointment statuses: "+err.Error())
		return
	}

	var upcoming []models.Appointment
	if err := h.DB.Preload("Patient").
		Where("doctor_id = ? AND status NOT IN ?", doctorID,
			[]models.AppointmentStatus{models.StatusCancelled, models.StatusCompleted}).
		Order("date, time").
		Find(&upcoming).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	today := h.Scheduler.Today()
	var todayCount int64
	for _, appt := range upcoming {
		if appt.Date == today {
			todayCount++
		}
	}

	var patientsCount int64
	if err := h.DB.Model(&models.Appointment{}).
		Where("doctor_id = ?", doctorID).
		Distinct("patient_id").
		Count(&patientsCount).Error; err != nil {
		utils.InternalServerError(c, "Failed to count patients: "+err.Error())
		return
	}

	utils.Success(c, "Doctor dashboard fetched successfully", gin.H{
		"appointments":      toViews(upcoming),
		"todayAppointments": todayCount,
		"patientsCount":     patientsCount,
	})
}

// AdminDashboard handles the admin landing view: headline counts across the
// whole system.
func (h *DashboardHandler) AdminDashboard(c *gin.Context) {
	var totalPatients, totalDoctors, totalAppointments, pendingBills int64

	if err := h.DB.Model(&models.User{}).Where("role = ?", models.RolePatient).Count(&totalPatients).Error; err != nil {
		utils.InternalServerError(c, "Failed to count patients: "+err.Error())
		return
	}
	if err := h.DB.Model(&models.User{}).Where("role = ?", models.RoleDoctor).Count(&totalDoctors).Error; err != nil {
		utils.InternalServerError(c, "Failed to count doctors: "+err.Error())
		return
	}
	if err := h.DB.Model(&models.Appointment{}).Count(&totalAppointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to count appointments: "+err.Error())
		return
	}
	if err := h.DB.Model(&models.Bill{}).Where("is_paid = ?", false).Count(&pendingBills).Error; err != nil {
		utils.InternalServerError(c, "Failed to count pending bills: "+err.Error())
		return
	}

	utils.Success(c, "Admin dashboard fetched successfully", gin.H{
		"totalPatients":     totalPatients,
		"totalDoctors":      totalDoctors,
		"totalAppointments": totalAppointments,
		"pendingBills":      pendingBills,
	})
}
