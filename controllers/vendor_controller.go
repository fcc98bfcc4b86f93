package controllers

import (
	"net/http"
	"strings"

	"github.com/brandworks/crm-api/config"
	"github.com/brandworks/crm-api/models"
	"github.com/brandworks/crm-api/utils"
	"github.com/gin-gonic/gin"
)

// VendorRequest represents the request body for creating or updating a vendor
type VendorRequest struct {
	Name          string `json:"name" binding:"required"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email" binding:"omitempty,email"`
	Category      string `json:"category"`
	Address       string `json:"address"`
	Notes         string `json:"notes"`
}

func (r VendorRequest) apply(v *models.Vendor) {
	v.Name = r.Name
	v.ContactPerson = r.ContactPerson
	v.Phone = r.Phone
	v.Email = r.Email
	v.Category = r.Category
	v.Address = r.Address
	v.Notes = r.Notes
}

// ListVendors handles GET /api/vendors - filters: category, search
func ListVendors(c *gin.Context) {
	pagination := utils.ParsePagination(c)
	query := config.GetDB().Model(&models.Vendor{})
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		respondInternalError(c, "Failed to count vendors", err)
		return
	}

	var vendors []models.Vendor
	err := query.Order("name ASC, id ASC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit).
		Find(&vendors).Error
	if err != nil {
		respondInternalError(c, "Failed to retrieve vendors", err)
		return
	}
	respondList(c, vendors, pagination, total)
}

// GetVendor handles GET /api/vendors/:id
func GetVendor(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var vendor models.Vendor
	if !loadRecord(c, &vendor, id, "VENDOR") {
		return
	}
	respondOK(c, http.StatusOK, vendor)
}

// CreateVendor handles POST /api/vendors
func CreateVendor(c *gin.Context) {
	var req VendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	var vendor models.Vendor
	req.apply(&vendor)
	if err := config.GetDB().Create(&vendor).Error; err != nil {
		respondInternalError(c, "Failed to create vendor", err)
		return
	}
	respondOK(c, http.StatusCreated, vendor)
}

// UpdateVendor handles PUT /api/vendors/:id
func UpdateVendor(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req VendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	var vendor models.Vendor
	if !loadRecord(c, &vendor, id, "VENDOR") {
		return
	}
	req.apply(&vendor)
	if err := config.GetDB().Save(&vendor).Error; err != nil {
		respondInternalError(c, "Failed to update vendor", err)
		return
	}
	respondOK(c, http.StatusOK, vendor)
}

// DeleteVendor handles DELETE /api/vendors/:id
func DeleteVendor(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	deleteRecord(c, &models.Vendor{}, id, "VENDOR")
}
