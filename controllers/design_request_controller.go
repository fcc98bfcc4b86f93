package controllers

import (
	"net/http"
	"strconv"

	"github.com/brandworks/crm-api/config"
	"github.com/brandworks/crm-api/models"
	"github.com/brandworks/crm-api/services"
	"github.com/brandworks/crm-api/utils"
	"github.com/gin-gonic/gin"
)

// CreateDesignRequestRequest represents the request body for raising a design request
type CreateDesignRequestRequest struct {
	ExecutiveID  uint   `json:"executive_id" binding:"required"`
	BusinessName string `json:"business_name" binding:"required"`
	ContactName  string `json:"contact_name"`
	Phone        string `json:"phone"`
	Requirements string `json:"requirements" binding:"required"`
}

// UpdateDesignRequestRequest represents the editable fields of a design request
type UpdateDesignRequestRequest struct {
	BusinessName string `json:"business_name" binding:"required"`
	ContactName  string `json:"contact_name"`
	Phone        string `json:"phone"`
	Requirements string `json:"requirements" binding:"required"`
}

// DesignStatusRequest moves a request to another status
type DesignStatusRequest struct {
	Status string `json:"status" binding:"required,design_status"`
}

// ClaimRequest is a designer taking a pending request
type ClaimRequest struct {
	DesignerID uint `json:"designer_id" binding:"required"`
}

// PauseRequest stops the designer timer
type PauseRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// AssignServiceRequest hands a completed design to the service team
type AssignServiceRequest struct {
	ServiceAssigneeID uint   `json:"service_assignee_id" binding:"required"`
	Notes             string `json:"notes"`
}

func designService() *services.DesignService {
	return services.NewDesignService(config.GetDB())
}

func respondDesign(c *gin.Context, status int, request *models.DesignRequest, err error) {
	if err != nil {
		respondServiceError(c, "DESIGN_REQUEST", err)
		return
	}
	respondOK(c, status, request)
}

// ListDesignRequests handles GET /api/design-requests - filters: status, designer_id, executive_id
func ListDesignRequests(c *gin.Context) {
	filter := services.DesignFilter{}

	if raw := c.Query("status"); raw != "" {
		status, ok := models.ParseDesignStatus(raw)
		if !ok {
			respondValidation(c, []utils.FieldError{{Field: "status", Rule: "design_status", Message: "unknown status " + strconv.Quote(raw)}})
			return
		}
		filter.Status = &status
	}
	var ok bool
	if filter.DesignerID, ok = parseOptionalID(c, "designer_id"); !ok {
		return
	}
	if filter.ExecutiveID, ok = parseOptionalID(c, "executive_id"); !ok {
		return
	}

	pagination := utils.ParsePagination(c)
	filter.Offset = pagination.Offset()
	filter.Limit = pagination.Limit

	requests, total, err := designService().List(filter)
	if err != nil {
		respondInternalError(c, "Failed to retrieve design requests", err)
		return
	}
	respondList(c, requests, pagination, total)
}

// GetDesignServiceQueue handles GET /api/design-requests/service-queue - filter: assignee_id
func GetDesignServiceQueue(c *gin.Context) {
	assigneeID, ok := parseOptionalID(c, "assignee_id")
	if !ok {
		return
	}

	requests, err := designService().ServiceQueue(assigneeID)
	if err != nil {
		respondInternalError(c, "Failed to retrieve the service queue", err)
		return
	}
	respondOK(c, http.StatusOK, requests)
}

// GetDesignRequest handles GET /api/design-requests/:id
func GetDesignRequest(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	request, err := designService().Get(id)
	respondDesign(c, http.StatusOK, request, err)
}

// CreateDesignRequest handles POST /api/design-requests
func CreateDesignRequest(c *gin.Context) {
	var req CreateDesignRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	svc := designService()
	request := models.DesignRequest{
		ExecutiveID:  req.ExecutiveID,
		BusinessName: req.BusinessName,
		ContactName:  req.ContactName,
		Phone:        req.Phone,
		Requirements: req.Requirements,
	}
	if err := svc.Create(&request); err != nil {
		respondServiceError(c, "DESIGN_REQUEST", err)
		return
	}

	created, err := svc.Get(request.ID)
	respondDesign(c, http.StatusCreated, created, err)
}

// UpdateDesignRequest handles PUT /api/design-requests/:id
func UpdateDesignRequest(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req UpdateDesignRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	request, err := designService().UpdateDetails(id, services.DesignDetails{
		BusinessName: req.BusinessName,
		ContactName:  req.ContactName,
		Phone:        req.Phone,
		Requirements: req.Requirements,
	})
	respondDesign(c, http.StatusOK, request, err)
}

// UpdateDesignStatus handles PATCH /api/design-requests/:id/status
func UpdateDesignStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req DesignStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	status, _ := models.ParseDesignStatus(req.Status)
	request, err := designService().SetStatus(id, status)
	respondDesign(c, http.StatusOK, request, err)
}

// ClaimDesignRequest handles POST /api/design-requests/:id/claim
func ClaimDesignRequest(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req ClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	request, err := designService().Claim(id, req.DesignerID)
	respondDesign(c, http.StatusOK, request, err)
}

// PauseDesignRequest handles POST /api/design-requests/:id/pause
func PauseDesignRequest(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req PauseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	request, err := designService().Pause(id, req.Reason)
	respondDesign(c, http.StatusOK, request, err)
}

// ResumeDesignRequest handles POST /api/design-requests/:id/resume - a no-op without an open pause
func ResumeDesignRequest(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	request, err := designService().Resume(id)
	respondDesign(c, http.StatusOK, request, err)
}

// AssignDesignService handles POST /api/design-requests/:id/assign-service
func AssignDesignService(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req AssignServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	request, err := designService().AssignService(id, req.ServiceAssigneeID, req.Notes)
	respondDesign(c, http.StatusOK, request, err)
}

// MarkDesignProcessed handles POST /api/design-requests/:id/processed
func MarkDesignProcessed(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	request, err := designService().MarkProcessed(id)
	respondDesign(c, http.StatusOK, request, err)
}

// DeleteDesignRequest handles DELETE /api/design-requests/:id
func DeleteDesignRequest(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := designService().Delete(id); err != nil {
		respondServiceError(c, "DESIGN_REQUEST", err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"id": id, "deleted": true})
}
