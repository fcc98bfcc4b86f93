package controllers

import (
	"errors"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/brandworks/crm-api/config"
	"github.com/brandworks/crm-api/models"
	"github.com/brandworks/crm-api/services"
	"github.com/brandworks/crm-api/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func respondOK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

func respondList(c *gin.Context, data interface{}, p utils.Pagination, total int64) {
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       data,
		"pagination": p.Response(total),
	})
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func respondValidation(c *gin.Context, details []utils.FieldError) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "VALIDATION_ERROR",
			"message": "Invalid request data",
			"details": details,
		},
	})
}

// respondBindError reports a failed ShouldBind* call
func respondBindError(c *gin.Context, err error) {
	respondValidation(c, utils.ValidationDetails(err))
}

// respondInvalidParam reports a malformed path or query parameter
func respondInvalidParam(c *gin.Context, field string, err error) {
	respondValidation(c, []utils.FieldError{{Field: field, Rule: "format", Message: err.Error()}})
}

func respondInternalError(c *gin.Context, message string, err error) {
	zap.L().Error(message,
		zap.Error(err),
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
	)

	body := gin.H{
		"code":    "INTERNAL_ERROR",
		"message": message,
	}
	if cfg := config.GetConfig(); cfg != nil && cfg.ExposeErrorStack {
		body["details"] = err.Error()
		body["stack"] = string(debug.Stack())
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"error":   body,
	})
}

// domainValidation ties rule violations raised below the HTTP layer to the
// request field that caused them
var domainValidation = []struct {
	err   error
	field string
	rule  string
}{
	{models.ErrUnknownRemark, "remark", "row_remark"},
	{models.ErrAssigneeRequired, "assigned_to", "required"},
	{models.ErrCompletionMismatch, "is_completed", "remark"},
	{models.ErrDiscountExceedsTotal, "discount", "ltefield"},
	{models.ErrAdvanceExceedsTotal, "advance", "ltefield"},
	{models.ErrNegativeAmount, "amount", "gte"},
	{models.ErrFollowUpDateRequired, "follow_up_date", "required"},
	{services.ErrPaymentExceedsBalance, "amount", "ltefield"},
	{services.ErrWrongRole, "employee_id", "role"},
}

// conflicts are lifecycle and uniqueness violations, all reported as 409
var conflicts = []struct {
	err  error
	code string
}{
	{models.ErrInvalidTransition, "INVALID_TRANSITION"},
	{models.ErrRemarkTransition, "INVALID_TRANSITION"},
	{services.ErrOrderLocked, "ORDER_LOCKED"},
	{services.ErrDuplicateOrderNumber, "DUPLICATE_ORDER_NUMBER"},
	{services.ErrNotInProgress, "NOT_IN_PROGRESS"},
	{services.ErrAlreadyPaused, "ALREADY_PAUSED"},
	{services.ErrConcurrentUpdate, "CONCURRENT_UPDATE"},
	{services.ErrNoOpenSession, "NO_OPEN_SESSION"},
	{services.ErrInsufficientStock, "INSUFFICIENT_STOCK"},
	{services.ErrDuplicateTarget, "DUPLICATE_TARGET"},
}

// respondServiceError maps a service or model error to the envelope.
// entity prefixes the not-found code, e.g. ORDER -> ORDER_NOT_FOUND.
func respondServiceError(c *gin.Context, entity string, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		respondError(c, http.StatusNotFound, entity+"_NOT_FOUND", err.Error())
		return
	case errors.Is(err, services.ErrRowNotFound):
		respondError(c, http.StatusNotFound, "ROW_NOT_FOUND", err.Error())
		return
	case errors.Is(err, services.ErrEmployeeNotFound):
		respondError(c, http.StatusNotFound, "EMPLOYEE_NOT_FOUND", err.Error())
		return
	case errors.Is(err, services.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", err.Error())
		return
	}

	var uploadErr *utils.FileUploadError
	if errors.As(err, &uploadErr) {
		respondError(c, http.StatusBadRequest, uploadErr.Code, uploadErr.Message)
		return
	}

	for _, v := range domainValidation {
		if errors.Is(err, v.err) {
			respondValidation(c, []utils.FieldError{{Field: v.field, Rule: v.rule, Message: err.Error()}})
			return
		}
	}
	for _, cf := range conflicts {
		if errors.Is(err, cf.err) {
			respondError(c, http.StatusConflict, cf.code, err.Error())
			return
		}
	}

	respondInternalError(c, "Failed to process request", err)
}

// parseID reads the :id path parameter, answering 400 when it is malformed
func parseID(c *gin.Context) (uint, bool) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		respondInvalidParam(c, "id", err)
		return 0, false
	}
	return id, true
}

// parseOptionalID reads an optional numeric query parameter
func parseOptionalID(c *gin.Context, key string) (*uint, bool) {
	id, err := utils.ParseUintQuery(c, key)
	if err != nil {
		respondInvalidParam(c, key, err)
		return nil, false
	}
	return id, true
}

// loadRecord fetches dest by primary key. It answers 404 or 500 itself and
// reports whether the handler may continue.
func loadRecord(c *gin.Context, dest interface{}, id uint, entity string, preloads ...string) bool {
	query := config.GetDB()
	for _, p := range preloads {
		query = query.Preload(p)
	}
	if err := query.First(dest, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondServiceError(c, entity, services.ErrNotFound)
			return false
		}
		respondInternalError(c, "Failed to load "+strings.ToLower(entity), err)
		return false
	}
	return true
}

// deleteRecord hard-deletes model by primary key and answers the request
func deleteRecord(c *gin.Context, model interface{}, id uint, entity string) {
	res := config.GetDB().Delete(model, id)
	if res.Error != nil {
		respondInternalError(c, "Failed to delete "+strings.ToLower(entity), res.Error)
		return
	}
	if res.RowsAffected == 0 {
		respondServiceError(c, entity, services.ErrNotFound)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"id": id, "deleted": true})
}
