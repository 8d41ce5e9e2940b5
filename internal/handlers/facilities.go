package handlers

import (
	"ehospitality-server/internal/models"
	"ehospitality-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// FacilityHandler handles locations and departments (admin management,
// public listing for registration and booking).
type FacilityHandler struct {
	DB *gorm.DB
}

// NewFacilityHandler creates a new FacilityHandler.
func NewFacilityHandler(db *gorm.DB) *FacilityHandler {
	return &FacilityHandler{DB: db}
}

// LocationRequest represents the request body for creating or updating a location.
type LocationRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
}

// CreateLocation handles adding a hospital location (admin).
func (h *FacilityHandler) CreateLocation(c *gin.Context) {
	var req LocationRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	location := models.Location{Name: req.Name, Address: req.Address}
	if err := h.DB.Create(&location).Error; err != nil {
		utils.InternalServerError(c, "Failed to create location: "+err.Error())
		return
	}

	utils.Created(c, "Location added successfully", location)
}

// GetLocations handles listing all locations with their departments.
func (h *FacilityHandler) GetLocations(c *gin.Context) {
	var locations []models.Location
	if err := h.DB.Preload("Departments").Find(&locations).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch locations: "+err.Error())
		return
	}

	utils.Success(c, "Locations fetched successfully", locations)
}

// UpdateLocation handles editing a location (admin).
func (h *FacilityHandler) UpdateLocation(c *gin.Context) {
	var req LocationRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var location models.Location
	if err := h.DB.First(&location, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Location not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	location.Name = req.Name
	location.Address = req.Address
	if err := h.DB.Save(&location).Error; err != nil {
		utils.InternalServerError(c, "Failed to update location: "+err.Error())
		return
	}

	utils.Success(c, "Location updated successfully", location)
}

// DeleteLocation handles removing a location and its departments (admin).
func (h *FacilityHandler) DeleteLocation(c *gin.Context) {
	var location models.Location
	if err := h.DB.First(&location, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Location not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if err := h.DB.Delete(&location).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete location: "+err.Error())
		return
	}

	utils.Success(c, "Location deleted successfully", nil)
}

// DepartmentRequest represents the request body for creating or updating a department.
type DepartmentRequest struct {
	LocationID  string `json:"locationId" binding:"required,uuid"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CreateDepartment handles adding a department to a location (admin).
func (h *FacilityHandler) CreateDepartment(c *gin.Context) {
	var req DepartmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var location models.Location
	if err := h.DB.First(&location, "id = ?", req.LocationID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Location not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	department := models.Department{
		LocationID:  location.ID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := h.DB.Create(&department).Error; err != nil {
		utils.InternalServerError(c, "Failed to create department: "+err.Error())
		return
	}

	utils.Created(c, "Department added successfully", department)
}

// GetDepartments handles listing all departments with their location. Used
// by the public registration form to attach doctors to a department.
func (h *FacilityHandler) GetDepartments(c *gin.Context) {
	var departments []models.Department
	if err := h.DB.Preload("Location").Find(&departments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch departments: "+err.Error())
		return
	}

	utils.Success(c, "Departments fetched successfully", departments)
}

// UpdateDepartment handles editing a department (admin).
func (h *FacilityHandler) UpdateDepartment(c *gin.Context) {
	var req DepartmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var department models.Department
	if err := h.DB.First(&department, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Department not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	var location models.Location
	if err := h.DB.First(&location, "id = ?", req.LocationID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Location not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	department.LocationID = location.ID
	department.Name = req.Name
	department.Description = req.Description
	if err := h.DB.Save(&department).Error; err != nil {
		utils.InternalServerError(c, "Failed to update department: "+err.Error())
		return
	}

	utils.Success(c, "Department updated successfully", department)
}

// DeleteDepartment handles removing a department (admin).
func (h *FacilityHandler) DeleteDepartment(c *gin.Context) {
	var department models.Department
	if err := h.DB.First(&department, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Department not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if err := h.DB.Delete(&department).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete department: "+err.Error())
		return
	}

	utils.Success(c, "Department deleted successfully", nil)
}
