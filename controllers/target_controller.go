package controllers

import (
	"net/http"
	"time"

	"github.com/brandworks/crm-api/config"
	"github.com/brandworks/crm-api/models"
	"github.com/brandworks/crm-api/services"
	"github.com/brandworks/crm-api/utils"
	"github.com/gin-gonic/gin"
)

// TargetRequest represents the request body for setting a monthly target
type TargetRequest struct {
	ExecutiveID uint    `json:"executive_id" binding:"required"`
	Month       string  `json:"month" binding:"required,year_month"`
	Amount      float64 `json:"amount" binding:"gte=0"`
}

func (r TargetRequest) apply(c *gin.Context, t *models.Target) bool {
	if _, err := services.FindEmployee(config.GetDB(), r.ExecutiveID); err != nil {
		respondServiceError(c, "TARGET", err)
		return false
	}
	t.ExecutiveID = r.ExecutiveID
	t.Month = r.Month
	t.Amount = money(r.Amount)
	return true
}

// saveTarget creates or updates t, mapping the (executive, month) unique index to 409
func saveTarget(c *gin.Context, t *models.Target, status int) {
	db := config.GetDB()
	var err error
	if t.ID == 0 {
		err = db.Create(t).Error
	} else {
		err = db.Save(t).Error
	}
	if err != nil {
		if services.IsDuplicateError(err) {
			respondServiceError(c, "TARGET", services.ErrDuplicateTarget)
			return
		}
		respondInternalError(c, "Failed to save target", err)
		return
	}
	respondOK(c, status, t)
}

// ListTargets handles GET /api/targets - filters: executive_id, month, year
func ListTargets(c *gin.Context) {
	executiveID, ok := parseOptionalID(c, "executive_id")
	if !ok {
		return
	}

	query := config.GetDB().Model(&models.Target{})
	if executiveID != nil {
		query = query.Where("executive_id = ?", *executiveID)
	}
	if month := c.Query("month"); month != "" {
		if _, err := time.Parse("2006-01", month); err != nil {
			respondValidation(c, []utils.FieldError{{Field: "month", Rule: "year_month", Message: "month must use the format YYYY-MM"}})
			return
		}
		query = query.Where("month = ?", month)
	}
	if year := c.Query("year"); year != "" {
		if _, err := time.Parse("2006", year); err != nil {
			respondInvalidParam(c, "year", err)
			return
		}
		query = query.Where("month LIKE ?", year+"-%")
	}

	var targets []models.Target
	if err := query.Preload("Executive").Order("month DESC, executive_id ASC").Find(&targets).Error; err != nil {
		respondInternalError(c, "Failed to retrieve targets", err)
		return
	}
	respondOK(c, http.StatusOK, targets)
}

// GetTarget handles GET /api/targets/:id
func GetTarget(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var target models.Target
	if !loadRecord(c, &target, id, "TARGET", "Executive") {
		return
	}
	respondOK(c, http.StatusOK, target)
}

// CreateTarget handles POST /api/targets - 409 when the executive already has a target that month
func CreateTarget(c *gin.Context) {
	var req TargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	var target models.Target
	if !req.apply(c, &target) {
		return
	}
	saveTarget(c, &target, http.StatusCreated)
}

// UpdateTarget handles PUT /api/targets/:id
func UpdateTarget(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req TargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	var target models.Target
	if !loadRecord(c, &target, id, "TARGET") {
		return
	}
	if !req.apply(c, &target) {
		return
	}
	saveTarget(c, &target, http.StatusOK)
}

// DeleteTarget handles DELETE /api/targets/:id
func DeleteTarget(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	deleteRecord(c, &models.Target{}, id, "TARGET")
}
