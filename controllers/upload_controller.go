package controllers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/brandworks/crm-api/config"
	"github.com/brandworks/crm-api/models"
	"github.com/brandworks/crm-api/services"
	"github.com/brandworks/crm-api/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func imageService(c *gin.Context) (services.ImageService, bool) {
	svc := services.GetImageService()
	if svc == nil {
		respondInternalError(c, "Image storage is not configured", errors.New("image service not initialized"))
		return nil, false
	}
	return svc, true
}

// withURL fills the computed download URL of each upload
func withURL(c *gin.Context, svc services.ImageService, uploads []models.EmployeeUpload) error {
	for i := range uploads {
		url, err := svc.GetImageURL(c.Request.Context(), uploads[i].StorageKey)
		if err != nil {
			return err
		}
		uploads[i].URL = url
	}
	return nil
}

// CreateEmployeeUpload handles POST /api/employee-uploads - multipart fields file, employee_id, title
func CreateEmployeeUpload(c *gin.Context) {
	svc, ok := imageService(c)
	if !ok {
		return
	}

	employeeID, err := strconv.ParseUint(c.PostForm("employee_id"), 10, 64)
	if err != nil || employeeID == 0 {
		respondValidation(c, []utils.FieldError{{Field: "employee_id", Rule: "required", Message: "employee_id must be a positive integer"}})
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondValidation(c, []utils.FieldError{{Field: "file", Rule: "required", Message: "file is required"}})
		return
	}

	db := config.GetDB()
	if _, err := services.FindEmployee(db, uint(employeeID)); err != nil {
		respondServiceError(c, "EMPLOYEE", err)
		return
	}

	stored, err := svc.UploadImage(c.Request.Context(), fileHeader)
	if err != nil {
		var uploadErr *utils.FileUploadError
		if errors.As(err, &uploadErr) {
			respondError(c, http.StatusBadRequest, uploadErr.Code, uploadErr.Message)
			return
		}
		respondInternalError(c, "Failed to store image", err)
		return
	}

	upload := models.EmployeeUpload{
		EmployeeID:   uint(employeeID),
		Title:        strings.TrimSpace(c.PostForm("title")),
		OriginalName: filepath.Base(fileHeader.Filename),
		StorageKey:   stored.Key,
		ContentType:  stored.ContentType,
		Size:         stored.Size,
	}
	if err := db.Create(&upload).Error; err != nil {
		if delErr := svc.DeleteImage(c.Request.Context(), stored.Key); delErr != nil {
			zap.L().Warn("failed to remove orphaned image", zap.String("key", stored.Key), zap.Error(delErr))
		}
		respondInternalError(c, "Failed to save upload", err)
		return
	}

	uploads := []models.EmployeeUpload{upload}
	if err := withURL(c, svc, uploads); err != nil {
		respondInternalError(c, "Failed to generate image URL", err)
		return
	}
	respondOK(c, http.StatusCreated, uploads[0])
}

// ListEmployeeUploads handles GET /api/employee-uploads - filter: employee_id
func ListEmployeeUploads(c *gin.Context) {
	svc, ok := imageService(c)
	if !ok {
		return
	}
	employeeID, ok := parseOptionalID(c, "employee_id")
	if !ok {
		return
	}

	query := config.GetDB().Model(&models.EmployeeUpload{})
	if employeeID != nil {
		query = query.Where("employee_id = ?", *employeeID)
	}

	var uploads []models.EmployeeUpload
	if err := query.Order("created_at DESC, id DESC").Find(&uploads).Error; err != nil {
		respondInternalError(c, "Failed to retrieve uploads", err)
		return
	}
	if err := withURL(c, svc, uploads); err != nil {
		respondInternalError(c, "Failed to generate image URL", err)
		return
	}
	respondOK(c, http.StatusOK, uploads)
}

// GetEmployeeUpload handles GET /api/employee-uploads/:id
func GetEmployeeUpload(c *gin.Context) {
	svc, ok := imageService(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var upload models.EmployeeUpload
	if !loadRecord(c, &upload, id, "UPLOAD") {
		return
	}
	uploads := []models.EmployeeUpload{upload}
	if err := withURL(c, svc, uploads); err != nil {
		respondInternalError(c, "Failed to generate image URL", err)
		return
	}
	respondOK(c, http.StatusOK, uploads[0])
}

// DeleteEmployeeUpload handles DELETE /api/employee-uploads/:id - removes the stored object too
func DeleteEmployeeUpload(c *gin.Context) {
	svc, ok := imageService(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var upload models.EmployeeUpload
	if !loadRecord(c, &upload, id, "UPLOAD") {
		return
	}
	res := config.GetDB().Delete(&models.EmployeeUpload{}, id)
	if res.Error != nil {
		respondInternalError(c, "Failed to delete upload", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		respondServiceError(c, "UPLOAD", services.ErrNotFound)
		return
	}

	// The record is gone; a leftover object is only logged.
	if err := svc.DeleteImage(c.Request.Context(), upload.StorageKey); err != nil {
		zap.L().Warn("failed to remove deleted upload image", zap.String("key", upload.StorageKey), zap.Error(err))
	}
	respondOK(c, http.StatusOK, gin.H{"id": id, "deleted": true})
}

// GetUploadedImage handles GET /api/uploads/:filename - serves locally stored images
func GetUploadedImage(c *gin.Context) {
	filename := c.Param("filename")

	// Validate filename is not empty
	if filename == "" {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "Filename is required")
		return
	}

	// Prevent directory traversal
	if strings.Contains(filename, "..") || strings.Contains(filename, "/") || strings.Contains(filename, "\\") {
		respondError(c, http.StatusBadRequest, "INVALID_FILENAME", "Invalid filename")
		return
	}

	contentType, ok := utils.AllowedImageTypes[strings.ToLower(filepath.Ext(filename))]
	if !ok {
		respondError(c, http.StatusBadRequest, "INVALID_FILE_TYPE", "Only JPEG, PNG and GIF images are supported")
		return
	}

	filePath := filepath.Join(utils.UploadDir, filename)
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		respondError(c, http.StatusNotFound, "FILE_NOT_FOUND", "Image not found")
		return
	}

	c.Header("Content-Type", contentType)
	c.Header("Cache-Control", "public, max-age=86400") // Cache for 24 hours
	c.File(filePath)
}
