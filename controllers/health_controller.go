package controllers

import (
	"net/http"
	"time"

	"github.com/brandworks/crm-api/config"
	"github.com/gin-gonic/gin"
)

// Health handles GET /api/health
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"status": "ok",
			"time":   time.Now().UTC(),
		},
	})
}

// DatabaseStatus handles GET /api/database/status - pings the database
func DatabaseStatus(c *gin.Context) {
	db := config.GetDB()
	if db == nil {
		respondError(c, http.StatusServiceUnavailable, "DATABASE_UNAVAILABLE", "Database is not connected")
		return
	}

	sqlDB, err := db.DB()
	if err != nil {
		respondError(c, http.StatusServiceUnavailable, "DATABASE_UNAVAILABLE", err.Error())
		return
	}
	if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		respondError(c, http.StatusServiceUnavailable, "DATABASE_UNAVAILABLE", err.Error())
		return
	}

	tables, err := db.Migrator().GetTables()
	if err != nil {
		respondInternalError(c, "Failed to query tables", err)
		return
	}

	stats := sqlDB.Stats()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"status":           "connected",
			"dialect":          db.Dialector.Name(),
			"open_connections": stats.OpenConnections,
			"in_use":           stats.InUse,
			"idle":             stats.Idle,
			"tables":           tables,
		},
	})
}
