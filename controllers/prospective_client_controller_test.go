package controllers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/brandworks/crm-api/models"
	"github.com/brandworks/crm-api/tests/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clientRouter() *gin.Engine {
	router := gin.New()
	api := router.Group("/api")
	api.GET("/prospective-clients", ListProspectiveClients)
	api.POST("/prospective-clients", CreateProspectiveClient)
	api.GET("/prospective-clients/follow-ups", ListFollowUps)
	api.GET("/prospective-clients/:id", GetProspectiveClient)
	api.PUT("/prospective-clients/:id", UpdateProspectiveClient)
	api.DELETE("/prospective-clients/:id", DeleteProspectiveClient)
	api.PATCH("/prospective-clients/:id/status", UpdateProspectiveClientStatus)
	return router
}

// clientView decodes the date-only field without depending on its wire layout
type clientView struct {
	ID           uint                `json:"id"`
	ExecutiveID  uint                `json:"executive_id"`
	BusinessName string              `json:"business_name"`
	Status       models.ClientStatus `json:"status"`
	FollowUpDate *time.Time          `json:"follow_up_date"`
}

func TestCreateProspectiveClient(t *testing.T) {
	db, _ := setupControllerTest(t)
	ravi := testutil.CreateEmployee(t, db, "Ravi", models.RoleExecutive)
	router := clientRouter()

	w := performRequest(router, http.MethodPost, "/api/prospective-clients", map[string]interface{}{
		"executive_id":  ravi.ID,
		"business_name": "Cafe Mocha",
		"phone":         "9847000001",
		"requirement":   "Glow sign board",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created clientView
	decodeData(t, w, &created)
	assert.Equal(t, models.ClientNew, created.Status)
	assert.Nil(t, created.FollowUpDate)

	tests := []struct {
		name   string
		body   map[string]interface{}
		status int
		code   string
		field  string
	}{
		{
			name:   "followup without date",
			body:   map[string]interface{}{"executive_id": ravi.ID, "business_name": "B", "phone": "1", "status": "Follow Up"},
			status: http.StatusBadRequest,
			code:   "VALIDATION_ERROR",
			field:  "follow_up_date",
		},
		{
			name:   "unknown status",
			body:   map[string]interface{}{"executive_id": ravi.ID, "business_name": "B", "phone": "1", "status": "maybe"},
			status: http.StatusBadRequest,
			code:   "VALIDATION_ERROR",
			field:  "status",
		},
		{
			name:   "malformed follow up date",
			body:   map[string]interface{}{"executive_id": ravi.ID, "business_name": "B", "phone": "1", "follow_up_date": "20/10/2026"},
			status: http.StatusBadRequest,
			code:   "VALIDATION_ERROR",
			field:  "follow_up_date",
		},
		{
			name:   "missing phone",
			body:   map[string]interface{}{"executive_id": ravi.ID, "business_name": "B"},
			status: http.StatusBadRequest,
			code:   "VALIDATION_ERROR",
			field:  "phone",
		},
		{
			name:   "unknown executive",
			body:   map[string]interface{}{"executive_id": 999, "business_name": "B", "phone": "1"},
			status: http.StatusNotFound,
			code:   "EMPLOYEE_NOT_FOUND",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(router, http.MethodPost, "/api/prospective-clients", tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			env := decodeEnvelope(t, w)
			assert.Equal(t, tt.code, env.Error.Code)
			if tt.field != "" {
				require.NotEmpty(t, env.Error.Details)
				assert.Equal(t, tt.field, env.Error.Details[0].Field)
			}
		})
	}
}

func TestProspectiveClientFollowUps(t *testing.T) {
	db, _ := setupControllerTest(t)
	ravi := testutil.CreateEmployee(t, db, "Ravi", models.RoleExecutive)
	meera := testutil.CreateEmployee(t, db, "Meera", models.RoleExecutive)
	router := clientRouter()

	create := func(executiveID uint, name string) clientView {
		w := performRequest(router, http.MethodPost, "/api/prospective-clients", map[string]interface{}{
			"executive_id":  executiveID,
			"business_name": name,
			"phone":         "9847000001",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var c clientView
		decodeData(t, w, &c)
		return c
	}
	setStatus := func(id uint, body map[string]interface{}) *httptest.ResponseRecorder {
		return performRequest(router, http.MethodPatch, fmt.Sprintf("/api/prospective-clients/%d/status", id), body)
	}

	mocha := create(ravi.ID, "Cafe Mocha")
	tailor := create(ravi.ID, "City Tailors")
	bakery := create(meera.ID, "Bake House")
	closed := create(meera.ID, "Metro Gym")

	res := setStatus(mocha.ID, map[string]interface{}{"status": "followup"})
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, "follow_up_date", decodeEnvelope(t, res).Error.Details[0].Field)

	res = setStatus(mocha.ID, map[string]interface{}{"status": "followup", "follow_up_date": "2026-10-18"})
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())
	res = setStatus(tailor.ID, map[string]interface{}{"status": "follow_up", "follow_up_date": "2026-10-25"})
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())
	res = setStatus(bakery.ID, map[string]interface{}{"status": "Follow Up", "follow_up_date": "2026-10-20"})
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())
	res = setStatus(closed.ID, map[string]interface{}{"status": "sale_closed", "follow_up_date": "2026-10-01"})
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())

	var stored models.ProspectiveClient
	require.NoError(t, db.First(&stored, closed.ID).Error)
	assert.Equal(t, models.ClientSaleClosed, stored.Status)
	assert.Nil(t, stored.FollowUpDate)

	w := performRequest(router, http.MethodGet, "/api/prospective-clients/follow-ups?date=2026-10-20", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var due []clientView
	decodeData(t, w, &due)
	require.Len(t, due, 2)
	assert.Equal(t, mocha.ID, due[0].ID)
	assert.Equal(t, bakery.ID, due[1].ID)
	require.NotNil(t, due[0].FollowUpDate)
	assert.Equal(t, "2026-10-18", due[0].FollowUpDate.UTC().Format("2006-01-02"))

	w = performRequest(router, http.MethodGet, fmt.Sprintf("/api/prospective-clients/follow-ups?date=2026-10-31&executive_id=%d", ravi.ID), nil)
	decodeData(t, w, &due)
	assert.Len(t, due, 2)

	w = performRequest(router, http.MethodGet, "/api/prospective-clients/follow-ups?date=tomorrow", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "date", decodeEnvelope(t, w).Error.Details[0].Field)

	w = performRequest(router, http.MethodGet, "/api/prospective-clients?status=follow-up", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(3), decodeEnvelope(t, w).Pagination.Total)

	w = performRequest(router, http.MethodGet, "/api/prospective-clients?status=lost", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "status", decodeEnvelope(t, w).Error.Details[0].Field)

	w = performRequest(router, http.MethodGet, fmt.Sprintf("/api/prospective-clients?executive_id=%d", meera.ID), nil)
	assert.Equal(t, int64(2), decodeEnvelope(t, w).Pagination.Total)

	// leaving followup drops the call date
	res = setStatus(tailor.ID, map[string]interface{}{"status": "contacted"})
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())
	require.NoError(t, db.First(&stored, tailor.ID).Error)
	assert.Equal(t, models.ClientContacted, stored.Status)
	assert.Nil(t, stored.FollowUpDate)

	w = performRequest(router, http.MethodGet, fmt.Sprintf("/api/prospective-clients/follow-ups?date=2026-10-31&executive_id=%d", ravi.ID), nil)
	decodeData(t, w, &due)
	require.Len(t, due, 1)
	assert.Equal(t, mocha.ID, due[0].ID)
}

func TestUpdateAndDeleteProspectiveClient(t *testing.T) {
	db, _ := setupControllerTest(t)
	ravi := testutil.CreateEmployee(t, db, "Ravi", models.RoleExecutive)
	router := clientRouter()

	w := performRequest(router, http.MethodPost, "/api/prospective-clients", map[string]interface{}{
		"executive_id":   ravi.ID,
		"business_name":  "Cafe Mocha",
		"phone":          "9847000001",
		"status":         "followup",
		"follow_up_date": "2026-11-02",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created clientView
	decodeData(t, w, &created)
	require.NotNil(t, created.FollowUpDate)

	path := fmt.Sprintf("/api/prospective-clients/%d", created.ID)
	w = performRequest(router, http.MethodPut, path, map[string]interface{}{
		"executive_id":  ravi.ID,
		"business_name": "Cafe Mocha & Co",
		"phone":         "9847000001",
		"status":        "contacted",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated clientView
	decodeData(t, w, &updated)
	assert.Equal(t, "Cafe Mocha & Co", updated.BusinessName)
	assert.Equal(t, models.ClientContacted, updated.Status)
	assert.Nil(t, updated.FollowUpDate)

	w = performRequest(router, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = performRequest(router, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = performRequest(router, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "PROSPECTIVE_CLIENT_NOT_FOUND", decodeEnvelope(t, w).Error.Code)
}
