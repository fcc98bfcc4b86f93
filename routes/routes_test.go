package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/brandworks/crm-api/models"
	"github.com/brandworks/crm-api/tests/testutil"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type response struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code string `json:"code"`
	} `json:"error"`
}

func do(t *testing.T, router http.Handler, method, path, token string, body interface{}) (*httptest.ResponseRecorder, response) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var res response
	if w.Body.Len() > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &res)
	}
	return w, res
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	router, err := NewRouter(testutil.TestConfig(t), zap.NewNop())
	require.NoError(t, err)
	return router
}

func TestNewRouter_Health(t *testing.T) {
	testutil.NewTestDB(t)
	router := newTestRouter(t)

	w, res := do(t, router, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, res.Success)

	w, _ = do(t, router, http.MethodGet, "/api/database/status", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, router, http.MethodGet, "/api/nothing-here", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNewRouter_LoginFlow(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := newTestRouter(t)
	anu := testutil.CreateEmployee(t, db, "Anu", models.RoleDesigner)

	w, res := do(t, router, http.MethodGet, "/api/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "INVALID_TOKEN", res.Error.Code)

	w, res = do(t, router, http.MethodPost, "/api/login", "", map[string]string{"name": "anu", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", res.Error.Code)

	w, res = do(t, router, http.MethodPost, "/api/login", "", map[string]string{"name": "anu", "password": testutil.DefaultPassword})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var login struct {
		Token string      `json:"token"`
		Role  models.Role `json:"role"`
		Route string      `json:"route"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &login))
	require.NotEmpty(t, login.Token)
	assert.Equal(t, models.RoleDesigner, login.Role)
	assert.Equal(t, models.RoleDesigner.Route(), login.Route)

	w, res = do(t, router, http.MethodGet, "/api/me", login.Token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var me struct {
		Employee models.Employee `json:"employee"`
		Role     models.Role     `json:"role"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &me))
	assert.Equal(t, anu.ID, me.Employee.ID)
	assert.Equal(t, models.RoleDesigner, me.Role)

	w, _ = do(t, router, http.MethodGet, "/api/me", login.Token+"x", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = do(t, router, http.MethodPost, "/api/logout", login.Token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w, res = do(t, router, http.MethodPost, "/api/logout", login.Token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "NO_OPEN_SESSION", res.Error.Code)

	var logouts int64
	require.NoError(t, db.Model(&models.LogoutRecord{}).Where("employee_id = ?", anu.ID).Count(&logouts).Error)
	assert.Equal(t, int64(1), logouts)
}

func TestNewRouter_StaticSegmentsBeforeID(t *testing.T) {
	testutil.NewTestDB(t)
	router := newTestRouter(t)

	for _, path := range []string{
		"/api/design-requests/service-queue",
		"/api/prospective-clients/follow-ups",
		"/api/pending-services",
		"/api/logout-history/download",
	} {
		w, _ := do(t, router, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestNewRouter_CORS(t *testing.T) {
	testutil.NewTestDB(t)
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/orders", nil)
	req.Header.Set("Origin", "https://dashboard.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSConfig(t *testing.T) {
	cfg := testutil.TestConfig(t)

	open := corsConfig(cfg)
	assert.True(t, open.AllowAllOrigins)
	assert.False(t, open.AllowCredentials)

	cfg.CORSOrigins = []string{"https://crm.example.com"}
	restricted := corsConfig(cfg)
	assert.False(t, restricted.AllowAllOrigins)
	assert.True(t, restricted.AllowCredentials)
	assert.Equal(t, []string{"https://crm.example.com"}, restricted.AllowOrigins)
	assert.Contains(t, restricted.ExposeHeaders, "Content-Disposition")
}
