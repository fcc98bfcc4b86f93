package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/brandworks/crm-api/config"
	"github.com/brandworks/crm-api/models"
	"github.com/brandworks/crm-api/services"
	"github.com/brandworks/crm-api/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

// ProspectiveClientRequest represents the request body for creating or updating a lead
type ProspectiveClientRequest struct {
	ExecutiveID  uint   `json:"executive_id" binding:"required"`
	BusinessName string `json:"business_name" binding:"required"`
	ContactName  string `json:"contact_name"`
	Phone        string `json:"phone" binding:"required"`
	Requirement  string `json:"requirement"`
	Status       string `json:"status" binding:"omitempty,client_status"`
	FollowUpDate string `json:"follow_up_date" binding:"omitempty,datetime=2006-01-02"`
	Notes        string `json:"notes"`
}

// ClientStatusRequest changes the sales stage of a lead
type ClientStatusRequest struct {
	Status       string `json:"status" binding:"required,client_status"`
	FollowUpDate string `json:"follow_up_date" binding:"omitempty,datetime=2006-01-02"`
}

func applyClientStatus(c *gin.Context, client *models.ProspectiveClient, rawStatus, rawDate string) bool {
	status := models.ClientNew
	if rawStatus != "" {
		status, _ = models.ParseClientStatus(rawStatus)
	}
	followUp, err := utils.ParseOptionalDate(rawDate)
	if err != nil {
		respondInvalidParam(c, "follow_up_date", err)
		return false
	}
	if err := client.SetStatus(status, followUp); err != nil {
		respondServiceError(c, "PROSPECTIVE_CLIENT", err)
		return false
	}
	return true
}

func (r ProspectiveClientRequest) apply(c *gin.Context, client *models.ProspectiveClient) bool {
	if _, err := services.FindEmployee(config.GetDB(), r.ExecutiveID); err != nil {
		respondServiceError(c, "PROSPECTIVE_CLIENT", err)
		return false
	}
	client.ExecutiveID = r.ExecutiveID
	client.BusinessName = r.BusinessName
	client.ContactName = r.ContactName
	client.Phone = r.Phone
	client.Requirement = r.Requirement
	client.Notes = r.Notes
	return applyClientStatus(c, client, r.Status, r.FollowUpDate)
}

// ListProspectiveClients handles GET /api/prospective-clients - filters: executive_id, status
func ListProspectiveClients(c *gin.Context) {
	executiveID, ok := parseOptionalID(c, "executive_id")
	if !ok {
		return
	}
	pagination := utils.ParsePagination(c)

	query := config.GetDB().Model(&models.ProspectiveClient{})
	if executiveID != nil {
		query = query.Where("executive_id = ?", *executiveID)
	}
	if raw := c.Query("status"); raw != "" {
		status, ok := models.ParseClientStatus(raw)
		if !ok {
			respondValidation(c, []utils.FieldError{{Field: "status", Rule: "client_status", Message: "unknown status " + strconv.Quote(raw)}})
			return
		}
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		respondInternalError(c, "Failed to count prospective clients", err)
		return
	}

	var clients []models.ProspectiveClient
	err := query.Preload("Executive").
		Order("created_at DESC, id DESC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit).
		Find(&clients).Error
	if err != nil {
		respondInternalError(c, "Failed to retrieve prospective clients", err)
		return
	}
	respondList(c, clients, pagination, total)
}

// ListFollowUps handles GET /api/prospective-clients/follow-ups?date=YYYY-MM-DD.
// Returns followup leads due on or before the date, today when omitted.
func ListFollowUps(c *gin.Context) {
	day := time.Now().UTC().Truncate(24 * time.Hour)
	if raw := c.Query("date"); raw != "" {
		parsed, err := utils.ParseDate(raw)
		if err != nil {
			respondInvalidParam(c, "date", err)
			return
		}
		day = parsed
	}
	executiveID, ok := parseOptionalID(c, "executive_id")
	if !ok {
		return
	}

	query := config.GetDB().
		Where("status = ? AND follow_up_date IS NOT NULL AND follow_up_date <= ?", models.ClientFollowUp, datatypes.Date(day))
	if executiveID != nil {
		query = query.Where("executive_id = ?", *executiveID)
	}

	var clients []models.ProspectiveClient
	if err := query.Preload("Executive").Order("follow_up_date ASC, id ASC").Find(&clients).Error; err != nil {
		respondInternalError(c, "Failed to retrieve follow-ups", err)
		return
	}
	respondOK(c, http.StatusOK, clients)
}

// GetProspectiveClient handles GET /api/prospective-clients/:id
func GetProspectiveClient(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var client models.ProspectiveClient
	if !loadRecord(c, &client, id, "PROSPECTIVE_CLIENT", "Executive") {
		return
	}
	respondOK(c, http.StatusOK, client)
}

// CreateProspectiveClient handles POST /api/prospective-clients
func CreateProspectiveClient(c *gin.Context) {
	var req ProspectiveClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	var client models.ProspectiveClient
	if !req.apply(c, &client) {
		return
	}
	if err := config.GetDB().Create(&client).Error; err != nil {
		respondInternalError(c, "Failed to create prospective client", err)
		return
	}
	respondOK(c, http.StatusCreated, client)
}

// UpdateProspectiveClient handles PUT /api/prospective-clients/:id
func UpdateProspectiveClient(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req ProspectiveClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	var client models.ProspectiveClient
	if !loadRecord(c, &client, id, "PROSPECTIVE_CLIENT") {
		return
	}
	if !req.apply(c, &client) {
		return
	}
	if err := config.GetDB().Save(&client).Error; err != nil {
		respondInternalError(c, "Failed to update prospective client", err)
		return
	}
	respondOK(c, http.StatusOK, client)
}

// UpdateProspectiveClientStatus handles PATCH /api/prospective-clients/:id/status
func UpdateProspectiveClientStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req ClientStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	var client models.ProspectiveClient
	if !loadRecord(c, &client, id, "PROSPECTIVE_CLIENT") {
		return
	}
	if !applyClientStatus(c, &client, req.Status, req.FollowUpDate) {
		return
	}

	err := config.GetDB().Model(&client).Updates(map[string]interface{}{
		"status":         client.Status,
		"follow_up_date": client.FollowUpDate,
	}).Error
	if err != nil {
		respondInternalError(c, "Failed to update prospective client", err)
		return
	}
	respondOK(c, http.StatusOK, client)
}

// DeleteProspectiveClient handles DELETE /api/prospective-clients/:id
func DeleteProspectiveClient(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	deleteRecord(c, &models.ProspectiveClient{}, id, "PROSPECTIVE_CLIENT")
}
