package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/brandworks/crm-api/config"
	"github.com/brandworks/crm-api/services"
	"github.com/brandworks/crm-api/tests/testutil"
	"github.com/brandworks/crm-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	services.PasswordCost = bcrypt.MinCost
	if err := utils.RegisterValidators(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to register validators: %v\n", err)
		os.Exit(1)
	}
	os.Exit(m.Run())
}

// setupControllerTest installs a fresh database and configuration
func setupControllerTest(t *testing.T) (*gorm.DB, *config.Config) {
	t.Helper()
	cfg := testutil.TestConfig(t)
	db := testutil.NewTestDB(t)
	return db, cfg
}

type envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Pagination struct {
		Page       int   `json:"page"`
		Limit      int   `json:"limit"`
		Total      int64 `json:"total"`
		TotalPages int   `json:"totalPages"`
	} `json:"pagination"`
	Error struct {
		Code    string             `json:"code"`
		Message string             `json:"message"`
		Details []utils.FieldError `json:"details"`
	} `json:"error"`
}

// performRequest sends body (marshalled to JSON unless it is already a reader)
func performRequest(router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case io.Reader:
		reader = b
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "body: %s", w.Body.String())
	return env
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	env := decodeEnvelope(t, w)
	require.True(t, env.Success, "body: %s", w.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, dest))
}
