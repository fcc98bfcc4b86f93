package controllers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/brandworks/crm-api/models"
	"github.com/brandworks/crm-api/services"
	"github.com/brandworks/crm-api/tests/testutil"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderRouter() *gin.Engine {
	router := gin.New()
	api := router.Group("/api")
	api.GET("/orders", ListOrders)
	api.GET("/orders/:id", GetOrder)
	api.POST("/orders", CreateOrder)
	api.PUT("/orders/:id", UpdateOrder)
	api.DELETE("/orders/:id", DeleteOrder)
	api.POST("/orders/:id/payments", AddPayment)
	api.PATCH("/orders/:id/rows/:index", UpdateOrderRow)
	api.GET("/pending-services", ListPendingServices)
	return router
}

func orderBody(executiveID uint, number string, rows ...map[string]interface{}) map[string]interface{} {
	if len(rows) == 0 {
		rows = []map[string]interface{}{{"requirement": "Flex banner", "quantity": 10, "rate": 100}}
	}
	return map[string]interface{}{
		"order_number":  number,
		"order_date":    "2026-03-10",
		"executive_id":  executiveID,
		"business_name": "Sunrise Bakery",
		"phone":         "9800000000",
		"rows":          rows,
	}
}

func TestCreateOrder(t *testing.T) {
	db, _ := setupControllerTest(t)
	executive := testutil.CreateEmployee(t, db, "Ravi", models.RoleExecutive)
	router := orderRouter()

	tests := []struct {
		name           string
		body           map[string]interface{}
		expectedStatus int
		expectedCode   string
		expectedField  string
		checkResponse  func(t *testing.T, order models.Order)
	}{
		{
			name: "Successfully create order",
			body: func() map[string]interface{} {
				b := orderBody(executive.ID, "ORD-1",
					map[string]interface{}{"requirement": "Shop signage", "quantity": 10, "rate": 100},
					map[string]interface{}{"requirement": "Cards", "quantity": 2, "rate": 50, "remark": "Printing"},
				)
				b["discount"] = 100
				b["advance"] = 400
				b["balance"] = 1
				return b
			}(),
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, order models.Order) {
				assert.Equal(t, "ORD-1", order.OrderNumber)
				assert.True(t, decimal.NewFromInt(1100).Equal(order.Total))
				assert.True(t, decimal.NewFromInt(1000).Equal(order.DiscountedTotal))
				assert.True(t, decimal.NewFromInt(600).Equal(order.Balance), "balance is derived server-side")
				require.Len(t, order.Rows, 2)
				assert.Equal(t, models.RemarkPrinting, order.Rows[1].Remark)
				require.NotNil(t, order.Executive)
				assert.Equal(t, "Ravi", order.Executive.Name)
			},
		},
		{
			name: "Fail with no rows",
			body: func() map[string]interface{} {
				b := orderBody(executive.ID, "ORD-2")
				b["rows"] = []interface{}{}
				return b
			}(),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
			expectedField:  "rows",
		},
		{
			name:           "Fail with zero quantity",
			body:           orderBody(executive.ID, "ORD-3", map[string]interface{}{"requirement": "Banner", "quantity": 0, "rate": 10}),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
			expectedField:  "quantity",
		},
		{
			name:           "Fail with unknown remark",
			body:           orderBody(executive.ID, "ORD-4", map[string]interface{}{"requirement": "Banner", "quantity": 1, "rate": 10, "remark": "shipped"}),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
			expectedField:  "remark",
		},
		{
			name:           "Fail with assigned-to row without assignee",
			body:           orderBody(executive.ID, "ORD-5", map[string]interface{}{"requirement": "Banner", "quantity": 1, "rate": 10, "remark": "assigned to"}),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
			expectedField:  "assigned_to",
		},
		{
			name:           "Fail with discount above total",
			body:           func() map[string]interface{} { b := orderBody(executive.ID, "ORD-6"); b["discount"] = 5000; return b }(),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
			expectedField:  "discount",
		},
		{
			name: "Fail with bad order date",
			body: func() map[string]interface{} {
				b := orderBody(executive.ID, "ORD-7")
				b["order_date"] = "10/03/2026"
				return b
			}(),
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
			expectedField:  "order_date",
		},
		{
			name:           "Fail with unknown executive",
			body:           orderBody(9999, "ORD-8"),
			expectedStatus: http.StatusNotFound,
			expectedCode:   "EMPLOYEE_NOT_FOUND",
		},
		{
			name:           "Fail with duplicate order number",
			body:           orderBody(executive.ID, "ORD-1"),
			expectedStatus: http.StatusConflict,
			expectedCode:   "DUPLICATE_ORDER_NUMBER",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(router, http.MethodPost, "/api/orders", tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())

			if tt.checkResponse != nil {
				var order models.Order
				decodeData(t, w, &order)
				tt.checkResponse(t, order)
				return
			}

			env := decodeEnvelope(t, w)
			assert.False(t, env.Success)
			assert.Equal(t, tt.expectedCode, env.Error.Code)
			if tt.expectedField != "" {
				require.NotEmpty(t, env.Error.Details)
				assert.Equal(t, tt.expectedField, env.Error.Details[0].Field)
			}
		})
	}
}

func TestOrderRowCompletionWorkflow(t *testing.T) {
	db, _ := setupControllerTest(t)
	executive := testutil.CreateEmployee(t, db, "Ravi", models.RoleExecutive)
	router := orderRouter()

	w := performRequest(router, http.MethodPost, "/api/orders", orderBody(executive.ID, "ORD-100",
		map[string]interface{}{"requirement": "Shop signage", "quantity": 10, "rate": 100},
		map[string]interface{}{"requirement": "Brochures", "quantity": 100, "rate": 2},
	))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var order models.Order
	decodeData(t, w, &order)

	var pending []services.PendingService
	decodeData(t, performRequest(router, http.MethodGet, "/api/pending-services", nil), &pending)
	require.Len(t, pending, 2)
	assert.True(t, decimal.NewFromInt(1000).Equal(pending[0].Row.Total))

	w = performRequest(router, http.MethodPatch, fmt.Sprintf("/api/orders/%d/rows/0", order.ID), map[string]interface{}{"is_completed": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated models.Order
	decodeData(t, w, &updated)
	assert.Equal(t, models.RemarkCompleted, updated.Rows[0].Remark)
	assert.True(t, updated.Rows[0].IsCompleted)

	decodeData(t, performRequest(router, http.MethodGet, "/api/pending-services", nil), &pending)
	require.Len(t, pending, 1)
	assert.Equal(t, 1, pending[0].RowIndex)

	var reloaded models.Order
	decodeData(t, performRequest(router, http.MethodGet, fmt.Sprintf("/api/orders/%d", order.ID), nil), &reloaded)
	assert.Len(t, reloaded.Rows, 2)

	// remark filter
	decodeData(t, performRequest(router, http.MethodGet, "/api/pending-services?remark=printing", nil), &pending)
	assert.Empty(t, pending)
	w = performRequest(router, http.MethodGet, "/api/pending-services?remark=shipped", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateOrderRow_Errors(t *testing.T) {
	db, _ := setupControllerTest(t)
	executive := testutil.CreateEmployee(t, db, "Ravi", models.RoleExecutive)
	router := orderRouter()

	w := performRequest(router, http.MethodPost, "/api/orders", orderBody(executive.ID, "ORD-R"))
	require.Equal(t, http.StatusCreated, w.Code)
	var order models.Order
	decodeData(t, w, &order)

	tests := []struct {
		name           string
		path           string
		body           map[string]interface{}
		expectedStatus int
		expectedCode   string
	}{
		{"negative index", fmt.Sprintf("/api/orders/%d/rows/-1", order.ID), map[string]interface{}{"is_completed": true}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"row out of range", fmt.Sprintf("/api/orders/%d/rows/3", order.ID), map[string]interface{}{"is_completed": true}, http.StatusNotFound, "ROW_NOT_FOUND"},
		{"missing order", "/api/orders/9999/rows/0", map[string]interface{}{"is_completed": true}, http.StatusNotFound, "ORDER_NOT_FOUND"},
		{"empty update", fmt.Sprintf("/api/orders/%d/rows/0", order.ID), map[string]interface{}{}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"assigned to without name", fmt.Sprintf("/api/orders/%d/rows/0", order.ID), map[string]interface{}{"remark": "assigned-to"}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"contradicting flag", fmt.Sprintf("/api/orders/%d/rows/0", order.ID), map[string]interface{}{"remark": "printing", "is_completed": true}, http.StatusBadRequest, "VALIDATION_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(router, http.MethodPatch, tt.path, tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			assert.Equal(t, tt.expectedCode, decodeEnvelope(t, w).Error.Code)
		})
	}
}

func TestOrderPaymentsLockOrder(t *testing.T) {
	db, _ := setupControllerTest(t)
	executive := testutil.CreateEmployee(t, db, "Ravi", models.RoleExecutive)
	router := orderRouter()

	w := performRequest(router, http.MethodPost, "/api/orders", orderBody(executive.ID, "ORD-PAY"))
	require.Equal(t, http.StatusCreated, w.Code)
	var order models.Order
	decodeData(t, w, &order)
	paymentsPath := fmt.Sprintf("/api/orders/%d/payments", order.ID)

	// editing is allowed before any payment
	edit := orderBody(executive.ID, "ORD-PAY", map[string]interface{}{"requirement": "Flex banner", "quantity": 12, "rate": 100})
	w = performRequest(router, http.MethodPut, fmt.Sprintf("/api/orders/%d", order.ID), edit)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = performRequest(router, http.MethodPost, paymentsPath, map[string]interface{}{"amount": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performRequest(router, http.MethodPost, paymentsPath, map[string]interface{}{"amount": 5000})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "amount", decodeEnvelope(t, w).Error.Details[0].Field)

	w = performRequest(router, http.MethodPost, paymentsPath, map[string]interface{}{"amount": 200, "method": "cash", "paid_at": "2026-03-12"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var paid models.Order
	decodeData(t, w, &paid)
	assert.True(t, decimal.NewFromInt(200).Equal(paid.Advance))
	assert.True(t, decimal.NewFromInt(1000).Equal(paid.Balance))
	require.Len(t, paid.Payments, 1)

	w = performRequest(router, http.MethodPut, fmt.Sprintf("/api/orders/%d", order.ID), edit)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "ORDER_LOCKED", decodeEnvelope(t, w).Error.Code)

	w = performRequest(router, http.MethodPost, "/api/orders/9999/payments", map[string]interface{}{"amount": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListAndDeleteOrders(t *testing.T) {
	db, _ := setupControllerTest(t)
	ravi := testutil.CreateEmployee(t, db, "Ravi", models.RoleExecutive)
	kiran := testutil.CreateEmployee(t, db, "Kiran", models.RoleExecutive)
	testutil.CaseSensitiveLike(t, db)
	router := orderRouter()

	for i := 1; i <= 3; i++ {
		w := performRequest(router, http.MethodPost, "/api/orders", orderBody(ravi.ID, fmt.Sprintf("ORD-R%d", i)))
		require.Equal(t, http.StatusCreated, w.Code)
	}
	w := performRequest(router, http.MethodPost, "/api/orders", orderBody(kiran.ID, "ORD-K1"))
	require.Equal(t, http.StatusCreated, w.Code)

	w = performRequest(router, http.MethodGet, fmt.Sprintf("/api/orders?executive_id=%d&limit=2", ravi.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)
	assert.Equal(t, int64(3), env.Pagination.Total)
	assert.Equal(t, 2, env.Pagination.TotalPages)

	w = performRequest(router, http.MethodGet, "/api/orders?search=K1", nil)
	var orders []models.Order
	decodeData(t, w, &orders)
	require.Len(t, orders, 1)

	w = performRequest(router, http.MethodGet, "/api/orders?search=ord-k", nil)
	decodeData(t, w, &orders)
	require.Len(t, orders, 1)
	assert.Equal(t, "ORD-K1", orders[0].OrderNumber)

	w = performRequest(router, http.MethodGet, "/api/orders?from=2026-03-11", nil)
	decodeData(t, w, &orders)
	assert.Empty(t, orders)

	w = performRequest(router, http.MethodGet, "/api/orders?executive_id=abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var first models.Order
	require.NoError(t, db.First(&first).Error)
	w = performRequest(router, http.MethodDelete, fmt.Sprintf("/api/orders/%d", first.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = performRequest(router, http.MethodDelete, fmt.Sprintf("/api/orders/%d", first.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = performRequest(router, http.MethodGet, "/api/orders/9999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "ORDER_NOT_FOUND", decodeEnvelope(t, w).Error.Code)

	w = performRequest(router, http.MethodGet, "/api/orders/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
