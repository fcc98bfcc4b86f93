package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/brandworks/crm-api/models"
	"github.com/brandworks/crm-api/tests/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func targetRouter() *gin.Engine {
	router := gin.New()
	api := router.Group("/api")
	api.GET("/targets", ListTargets)
	api.POST("/targets", CreateTarget)
	api.GET("/targets/:id", GetTarget)
	api.PUT("/targets/:id", UpdateTarget)
	api.DELETE("/targets/:id", DeleteTarget)
	api.GET("/interactions", ListInteractions)
	api.POST("/interactions", CreateInteraction)
	api.DELETE("/interactions/:id", DeleteInteraction)
	return router
}

func TestTargets(t *testing.T) {
	db, _ := setupControllerTest(t)
	ravi := testutil.CreateEmployee(t, db, "Ravi", models.RoleExecutive)
	meera := testutil.CreateEmployee(t, db, "Meera", models.RoleExecutive)
	router := targetRouter()

	w := performRequest(router, http.MethodPost, "/api/targets", map[string]interface{}{
		"executive_id": ravi.ID,
		"month":        "2026-10",
		"amount":       200000,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var october models.Target
	decodeData(t, w, &october)
	assert.Equal(t, "200000", october.Amount.String())

	w = performRequest(router, http.MethodPost, "/api/targets", map[string]interface{}{
		"executive_id": ravi.ID,
		"month":        "2026-10",
		"amount":       1,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "DUPLICATE_TARGET", decodeEnvelope(t, w).Error.Code)

	w = performRequest(router, http.MethodPost, "/api/targets", map[string]interface{}{
		"executive_id": ravi.ID,
		"month":        "2026-11",
		"amount":       150000,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var november models.Target
	decodeData(t, w, &november)

	w = performRequest(router, http.MethodPost, "/api/targets", map[string]interface{}{
		"executive_id": meera.ID,
		"month":        "2025-10",
		"amount":       90000,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Moving November onto October collides with the unique index
	w = performRequest(router, http.MethodPut, fmt.Sprintf("/api/targets/%d", november.ID), map[string]interface{}{
		"executive_id": ravi.ID,
		"month":        "2026-10",
		"amount":       150000,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "DUPLICATE_TARGET", decodeEnvelope(t, w).Error.Code)

	tests := []struct {
		name  string
		body  map[string]interface{}
		field string
	}{
		{"bad month", map[string]interface{}{"executive_id": ravi.ID, "month": "2026-13", "amount": 1}, "month"},
		{"day included", map[string]interface{}{"executive_id": ravi.ID, "month": "2026-10-01", "amount": 1}, "month"},
		{"negative amount", map[string]interface{}{"executive_id": ravi.ID, "month": "2026-12", "amount": -5}, "amount"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(router, http.MethodPost, "/api/targets", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.field, decodeEnvelope(t, w).Error.Details[0].Field)
		})
	}

	var targets []models.Target
	w = performRequest(router, http.MethodGet, "/api/targets?year=2026", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &targets)
	require.Len(t, targets, 2)
	assert.Equal(t, "2026-11", targets[0].Month)

	w = performRequest(router, http.MethodGet, fmt.Sprintf("/api/targets?executive_id=%d&month=2025-10", meera.ID), nil)
	decodeData(t, w, &targets)
	require.Len(t, targets, 1)
	require.NotNil(t, targets[0].Executive)
	assert.Equal(t, "Meera", targets[0].Executive.Name)

	w = performRequest(router, http.MethodGet, "/api/targets?month=10-2026", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(router, http.MethodDelete, fmt.Sprintf("/api/targets/%d", october.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = performRequest(router, http.MethodGet, fmt.Sprintf("/api/targets/%d", october.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "TARGET_NOT_FOUND", decodeEnvelope(t, w).Error.Code)
}

func TestInteractions(t *testing.T) {
	db, _ := setupControllerTest(t)
	ravi := testutil.CreateEmployee(t, db, "Ravi", models.RoleExecutive)
	router := targetRouter()

	type interactionView struct {
		ID    uint                   `json:"id"`
		Type  models.InteractionType `json:"type"`
		Count int                    `json:"count"`
	}
	record := func(kind string, count int, date string) interactionView {
		w := performRequest(router, http.MethodPost, "/api/interactions", map[string]interface{}{
			"executive_id": ravi.ID,
			"type":         kind,
			"count":        count,
			"date":         date,
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var created interactionView
		decodeData(t, w, &created)
		return created
	}

	call := record("Call", 12, "2026-10-05")
	assert.Equal(t, models.InteractionCall, call.Type)
	record("whatsapp", 30, "2026-10-06")

	tests := []struct {
		name  string
		body  map[string]interface{}
		field string
	}{
		{"unknown type", map[string]interface{}{"executive_id": ravi.ID, "type": "email", "count": 1, "date": "2026-10-05"}, "type"},
		{"zero count", map[string]interface{}{"executive_id": ravi.ID, "type": "call", "count": 0, "date": "2026-10-05"}, "count"},
		{"missing date", map[string]interface{}{"executive_id": ravi.ID, "type": "call", "count": 1}, "date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(router, http.MethodPost, "/api/interactions", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.field, decodeEnvelope(t, w).Error.Details[0].Field)
		})
	}

	var listed []interactionView
	w := performRequest(router, http.MethodGet, "/api/interactions?type=call", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w, &listed)
	require.Len(t, listed, 1)
	assert.Equal(t, call.ID, listed[0].ID)

	w = performRequest(router, http.MethodGet, "/api/interactions?from=2026-10-06&to=2026-10-31", nil)
	decodeData(t, w, &listed)
	require.Len(t, listed, 1)
	assert.Equal(t, models.InteractionWhatsApp, listed[0].Type)

	w = performRequest(router, http.MethodGet, "/api/interactions?from=2026-10-07&to=2026-10-01", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(router, http.MethodDelete, fmt.Sprintf("/api/interactions/%d", call.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = performRequest(router, http.MethodDelete, fmt.Sprintf("/api/interactions/%d", call.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "INTERACTION_NOT_FOUND", decodeEnvelope(t, w).Error.Code)
}
