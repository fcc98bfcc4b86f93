package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/brandworks/crm-api/config"
	"github.com/brandworks/crm-api/models"
	"github.com/brandworks/crm-api/services"
	"github.com/brandworks/crm-api/utils"
	"github.com/gin-gonic/gin"
)

// AppointmentRequest represents the request body for booking or rescheduling a meeting
type AppointmentRequest struct {
	ExecutiveID  uint      `json:"executive_id" binding:"required"`
	BusinessName string    `json:"business_name" binding:"required"`
	ContactName  string    `json:"contact_name"`
	Phone        string    `json:"phone"`
	ScheduledAt  time.Time `json:"scheduled_at" binding:"required"`
	Location     string    `json:"location"`
	Purpose      string    `json:"purpose"`
	Status       string    `json:"status" binding:"omitempty,appointment_status"`
}

func (r AppointmentRequest) apply(c *gin.Context, a *models.Appointment) bool {
	if _, err := services.FindEmployee(config.GetDB(), r.ExecutiveID); err != nil {
		respondServiceError(c, "APPOINTMENT", err)
		return false
	}
	a.ExecutiveID = r.ExecutiveID
	a.BusinessName = r.BusinessName
	a.ContactName = r.ContactName
	a.Phone = r.Phone
	a.ScheduledAt = r.ScheduledAt
	a.Location = r.Location
	a.Purpose = r.Purpose
	if r.Status != "" {
		a.Status = models.AppointmentStatus(strings.ToLower(r.Status))
	} else if a.Status == "" {
		a.Status = models.AppointmentScheduled
	}
	return true
}

// ListAppointments handles GET /api/appointments - filters: executive_id, from, to, status
func ListAppointments(c *gin.Context) {
	executiveID, ok := parseOptionalID(c, "executive_id")
	if !ok {
		return
	}
	dates, err := utils.ParseDateRange(c)
	if err != nil {
		respondInvalidParam(c, "from", err)
		return
	}
	pagination := utils.ParsePagination(c)

	query := config.GetDB().Model(&models.Appointment{})
	if executiveID != nil {
		query = query.Where("executive_id = ?", *executiveID)
	}
	if dates.From != nil {
		query = query.Where("scheduled_at >= ?", *dates.From)
	}
	if dates.To != nil {
		query = query.Where("scheduled_at < ?", *dates.To)
	}
	if raw := c.Query("status"); raw != "" {
		status := models.AppointmentStatus(strings.ToLower(raw))
		switch status {
		case models.AppointmentScheduled, models.AppointmentCompleted, models.AppointmentCancelled:
		default:
			respondValidation(c, []utils.FieldError{{Field: "status", Rule: "appointment_status", Message: "unknown status " + strconv.Quote(raw)}})
			return
		}
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		respondInternalError(c, "Failed to count appointments", err)
		return
	}

	var appointments []models.Appointment
	err = query.Preload("Executive").
		Order("scheduled_at ASC, id ASC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit).
		Find(&appointments).Error
	if err != nil {
		respondInternalError(c, "Failed to retrieve appointments", err)
		return
	}
	respondList(c, appointments, pagination, total)
}

// GetAppointment handles GET /api/appointments/:id
func GetAppointment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var appointment models.Appointment
	if !loadRecord(c, &appointment, id, "APPOINTMENT", "Executive") {
		return
	}
	respondOK(c, http.StatusOK, appointment)
}

// CreateAppointment handles POST /api/appointments
func CreateAppointment(c *gin.Context) {
	var req AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	var appointment models.Appointment
	if !req.apply(c, &appointment) {
		return
	}
	if err := config.GetDB().Create(&appointment).Error; err != nil {
		respondInternalError(c, "Failed to create appointment", err)
		return
	}
	respondOK(c, http.StatusCreated, appointment)
}

// UpdateAppointment handles PUT /api/appointments/:id
func UpdateAppointment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	var appointment models.Appointment
	if !loadRecord(c, &appointment, id, "APPOINTMENT") {
		return
	}
	if !req.apply(c, &appointment) {
		return
	}
	if err := config.GetDB().Save(&appointment).Error; err != nil {
		respondInternalError(c, "Failed to update appointment", err)
		return
	}
	respondOK(c, http.StatusOK, appointment)
}

// DeleteAppointment handles DELETE /api/appointments/:id
func DeleteAppointment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	deleteRecord(c, &models.Appointment{}, id, "APPOINTMENT")
}
