package handlers

import (
	"fmt"
	"io"
	"net/http"

	"ehospitality-server/internal/models"
	"ehospitality-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthResourceHandler handles the educational resources published by admins
// and read by patients.
type HealthResourceHandler struct {
	DB *gorm.DB
}

// NewHealthResourceHandler creates a new HealthResourceHandler.
func NewHealthResourceHandler(db *gorm.DB) *HealthResourceHandler {
	return &HealthResourceHandler{DB: db}
}

// GetResources handles listing all health resources, newest first.
func (h *HealthResourceHandler) GetResources(c *gin.Context) {
	var resources []models.HealthResource
	if err := h.DB.Order("created_at desc").Find(&resources).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch health resources: "+err.Error())
		return
	}

	utils.Success(c, "Health resources fetched successfully", resources)
}

// CreateResource handles an admin publishing a resource. The request is a
// multipart form: title is required, description and link are optional, and
// an optional "file" field attaches a document stored alongside the record.
func (h *HealthResourceHandler) CreateResource(c *gin.Context) {
	title := c.PostForm("title")
	if title == "" {
		utils.BadRequest(c, "Title is required")
		return
	}

	resource := models.HealthResource{
		Title:       title,
		Description: c.PostForm("description"),
		Link:        c.PostForm("link"),
	}

	file, header, err := c.Request.FormFile("file")
	if err == nil {
		defer file.Close()
		fileData, readErr := io.ReadAll(file)
		if readErr != nil {
			utils.InternalServerError(c, "Error reading file content: "+readErr.Error())
			return
		}
		resource.FileName = header.Filename
		resource.FileType = header.Header.Get("Content-Type")
		resource.FileData = fileData
	} else if err != http.ErrMissingFile {
		utils.BadRequest(c, "Error retrieving file from form: "+err.Error())
		return
	}

	if err := h.DB.Create(&resource).Error; err != nil {
		utils.InternalServerError(c, "Failed to create health resource: "+err.Error())
		return
	}

	utils.Created(c, "Health resource published successfully", resource)
}

// DownloadResourceFile streams the attached document of a resource.
func (h *HealthResourceHandler) DownloadResourceFile(c *gin.Context) {
	var resource models.HealthResource
	if err := h.DB.First(&resource, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Health resource not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if len(resource.FileData) == 0 {
		utils.NotFound(c, "This resource has no attached file")
		return
	}

	c.Writer.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", resource.FileName))
	c.Data(http.StatusOK, resource.FileType, resource.FileData)
}

// DeleteResource handles an admin removing a resource.
func (h *HealthResourceHandler) DeleteResource(c *gin.Context) {
	var resource models.HealthResource
	if err := h.DB.First(&resource, "id = ?", c.Param("id")).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Health resource not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if err := h.DB.Delete(&resource).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete health resource: "+err.Error())
		return
	}

	utils.Success(c, "Health resource deleted successfully", nil)
}
