package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/brandworks/crm-api/config"
	"github.com/brandworks/crm-api/models"
	"github.com/brandworks/crm-api/services"
	"github.com/brandworks/crm-api/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

// InteractionRequest records calls or WhatsApp messages made on a day
type InteractionRequest struct {
	ExecutiveID uint   `json:"executive_id" binding:"required"`
	Type        string `json:"type" binding:"required,interaction_type"`
	Count       int    `json:"count" binding:"required,gt=0"`
	Date        string `json:"date" binding:"required,datetime=2006-01-02"`
	Notes       string `json:"notes"`
}

// ListInteractions handles GET /api/interactions - filters: executive_id, type, from, to
func ListInteractions(c *gin.Context) {
	executiveID, ok := parseOptionalID(c, "executive_id")
	if !ok {
		return
	}
	dates, err := utils.ParseDateRange(c)
	if err != nil {
		respondInvalidParam(c, "from", err)
		return
	}

	query := config.GetDB().Model(&models.Interaction{})
	if executiveID != nil {
		query = query.Where("executive_id = ?", *executiveID)
	}
	if raw := c.Query("type"); raw != "" {
		kind := models.InteractionType(strings.ToLower(raw))
		if kind != models.InteractionCall && kind != models.InteractionWhatsApp {
			respondValidation(c, []utils.FieldError{{Field: "type", Rule: "interaction_type", Message: "unknown type " + strconv.Quote(raw)}})
			return
		}
		query = query.Where("type = ?", kind)
	}
	if dates.From != nil {
		query = query.Where("occurred_on >= ?", datatypes.Date(*dates.From))
	}
	if dates.To != nil {
		query = query.Where("occurred_on < ?", datatypes.Date(*dates.To))
	}

	var interactions []models.Interaction
	if err := query.Order("occurred_on DESC, id DESC").Find(&interactions).Error; err != nil {
		respondInternalError(c, "Failed to retrieve interactions", err)
		return
	}
	respondOK(c, http.StatusOK, interactions)
}

// CreateInteraction handles POST /api/interactions
func CreateInteraction(c *gin.Context) {
	var req InteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	db := config.GetDB()
	if _, err := services.FindEmployee(db, req.ExecutiveID); err != nil {
		respondServiceError(c, "INTERACTION", err)
		return
	}
	day, err := utils.ParseDate(req.Date)
	if err != nil {
		respondInvalidParam(c, "date", err)
		return
	}

	interaction := models.Interaction{
		ExecutiveID: req.ExecutiveID,
		Type:        models.InteractionType(strings.ToLower(req.Type)),
		Count:       req.Count,
		OccurredOn:  datatypes.Date(day),
		Notes:       req.Notes,
	}
	if err := db.Create(&interaction).Error; err != nil {
		respondInternalError(c, "Failed to record interaction", err)
		return
	}
	respondOK(c, http.StatusCreated, interaction)
}

// DeleteInteraction handles DELETE /api/interactions/:id
func DeleteInteraction(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	deleteRecord(c, &models.Interaction{}, id, "INTERACTION")
}
