package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/brandworks/crm-api/config"
	"github.com/brandworks/crm-api/models"
	"github.com/brandworks/crm-api/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// sessionQuery applies the employee_id/from/to filters shared by both histories.
// column is the timestamp the date range applies to.
func sessionQuery(c *gin.Context, model interface{}, column string) (*gorm.DB, bool) {
	employeeID, ok := parseOptionalID(c, "employee_id")
	if !ok {
		return nil, false
	}
	dates, err := utils.ParseDateRange(c)
	if err != nil {
		respondInvalidParam(c, "from", err)
		return nil, false
	}

	query := config.GetDB().Model(model)
	if employeeID != nil {
		query = query.Where("employee_id = ?", *employeeID)
	}
	if dates.From != nil {
		query = query.Where(column+" >= ?", *dates.From)
	}
	if dates.To != nil {
		query = query.Where(column+" < ?", *dates.To)
	}
	return query.Order(column + " DESC, id DESC"), true
}

// ListLoginRecords handles GET /api/executiveLogins - filters: employee_id, from, to
func ListLoginRecords(c *gin.Context) {
	query, ok := sessionQuery(c, &models.LoginRecord{}, "login_at")
	if !ok {
		return
	}
	pagination := utils.ParsePagination(c)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		respondInternalError(c, "Failed to count login records", err)
		return
	}
	var records []models.LoginRecord
	if err := query.Offset(pagination.Offset()).Limit(pagination.Limit).Find(&records).Error; err != nil {
		respondInternalError(c, "Failed to retrieve login records", err)
		return
	}
	respondList(c, records, pagination, total)
}

// ListLogoutRecords handles GET /api/logout-history - filters: employee_id, from, to
func ListLogoutRecords(c *gin.Context) {
	query, ok := sessionQuery(c, &models.LogoutRecord{}, "logout_at")
	if !ok {
		return
	}
	pagination := utils.ParsePagination(c)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		respondInternalError(c, "Failed to count logout records", err)
		return
	}
	var records []models.LogoutRecord
	if err := query.Offset(pagination.Offset()).Limit(pagination.Limit).Find(&records).Error; err != nil {
		respondInternalError(c, "Failed to retrieve logout records", err)
		return
	}
	respondList(c, records, pagination, total)
}

// DownloadLogoutRecords handles GET /api/logout-history/download - the filtered
// history as a JSON attachment
func DownloadLogoutRecords(c *gin.Context) {
	query, ok := sessionQuery(c, &models.LogoutRecord{}, "logout_at")
	if !ok {
		return
	}

	records := []models.LogoutRecord{}
	if err := query.Find(&records).Error; err != nil {
		respondInternalError(c, "Failed to retrieve logout records", err)
		return
	}

	payload, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		respondInternalError(c, "Failed to encode logout records", err)
		return
	}

	filename := fmt.Sprintf("logout-history-%s.json", time.Now().Format(utils.DateLayout))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}
