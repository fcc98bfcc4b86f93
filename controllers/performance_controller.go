package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/brandworks/crm-api/config"
	"github.com/brandworks/crm-api/services"
	"github.com/brandworks/crm-api/utils"
	"github.com/gin-gonic/gin"
)

// GetPerformance handles GET /api/performance?executive_id=&from=&to=
func GetPerformance(c *gin.Context) {
	executiveID, ok := parseOptionalID(c, "executive_id")
	if !ok {
		return
	}
	dates, err := utils.ParseDateRange(c)
	if err != nil {
		respondInvalidParam(c, "from", err)
		return
	}

	report, err := services.NewPerformanceService(config.GetDB()).Report(services.PerformanceQuery{
		ExecutiveID: executiveID,
		From:        dates.From,
		To:          dates.To,
	})
	if err != nil {
		respondInternalError(c, "Failed to compute performance", err)
		return
	}
	respondOK(c, http.StatusOK, report)
}

// GetMonthlyPerformance handles GET /api/performance/monthly?executive_id=&year=
func GetMonthlyPerformance(c *gin.Context) {
	executiveID, ok := parseOptionalID(c, "executive_id")
	if !ok {
		return
	}

	year := time.Now().Year()
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1970 || parsed > 9999 {
			respondValidation(c, []utils.FieldError{{Field: "year", Rule: "format", Message: "year must be a four digit year"}})
			return
		}
		year = parsed
	}

	buckets, err := services.NewPerformanceService(config.GetDB()).Monthly(executiveID, year)
	if err != nil {
		respondInternalError(c, "Failed to compute monthly performance", err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{
		"year":         year,
		"executive_id": executiveID,
		"months":       buckets,
	})
}

// GetDashboardCounts handles GET /api/dashboard/counts
func GetDashboardCounts(c *gin.Context) {
	counts, err := services.NewPerformanceService(config.GetDB()).Counts()
	if err != nil {
		respondInternalError(c, "Failed to compute dashboard counts", err)
		return
	}
	respondOK(c, http.StatusOK, counts)
}
