package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/brandworks/crm-api/config"
	"github.com/brandworks/crm-api/models"
	"github.com/brandworks/crm-api/services"
	"github.com/brandworks/crm-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// OrderRowRequest is one line item in an order request
type OrderRowRequest struct {
	Requirement  string  `json:"requirement" binding:"required"`
	Quantity     int     `json:"quantity" binding:"required,gt=0"`
	Rate         float64 `json:"rate" binding:"gte=0"`
	DeliveryDate string  `json:"delivery_date" binding:"omitempty,datetime=2006-01-02"`
	Remark       string  `json:"remark" binding:"omitempty,row_remark"`
	AssignedTo   string  `json:"assigned_to"`
}

// OrderRequest represents the request body for creating or replacing an order.
// Totals and balance are computed server-side.
type OrderRequest struct {
	OrderNumber  string            `json:"order_number" binding:"required"`
	OrderDate    string            `json:"order_date" binding:"required,datetime=2006-01-02"`
	ExecutiveID  uint              `json:"executive_id" binding:"required"`
	BusinessName string            `json:"business_name" binding:"required"`
	ContactName  string            `json:"contact_name"`
	Phone        string            `json:"phone"`
	Email        string            `json:"email" binding:"omitempty,email"`
	Address      string            `json:"address"`
	Rows         []OrderRowRequest `json:"rows" binding:"required,min=1,dive"`
	Discount     float64           `json:"discount" binding:"gte=0"`
	Advance      float64           `json:"advance" binding:"gte=0"`
}

// PaymentRequest represents money received against an order
type PaymentRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Method string  `json:"method"`
	Note   string  `json:"note"`
	PaidAt string  `json:"paid_at" binding:"omitempty,datetime=2006-01-02"`
}

// RowUpdateRequest changes the remark and/or completion of one row
type RowUpdateRequest struct {
	Remark      *string `json:"remark" binding:"omitempty,row_remark"`
	IsCompleted *bool   `json:"is_completed"`
	AssignedTo  *string `json:"assigned_to"`
}

func money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

func (r OrderRequest) toModel() (*models.Order, error) {
	orderDate, err := utils.ParseDate(r.OrderDate)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		OrderNumber:  strings.TrimSpace(r.OrderNumber),
		OrderDate:    orderDate,
		ExecutiveID:  r.ExecutiveID,
		BusinessName: r.BusinessName,
		ContactName:  r.ContactName,
		Phone:        r.Phone,
		Email:        r.Email,
		Address:      r.Address,
		Discount:     money(r.Discount),
		Advance:      money(r.Advance),
		Rows:         make([]models.OrderRow, 0, len(r.Rows)),
	}

	for _, row := range r.Rows {
		delivery, err := utils.ParseOptionalDate(row.DeliveryDate)
		if err != nil {
			return nil, err
		}
		remark := models.RemarkPending
		if row.Remark != "" {
			remark, _ = models.ParseRowRemark(row.Remark)
		}
		assignee := strings.TrimSpace(row.AssignedTo)
		if remark == models.RemarkAssignedTo && assignee == "" {
			return nil, models.ErrAssigneeRequired
		}
		order.Rows = append(order.Rows, models.OrderRow{
			Requirement:  row.Requirement,
			Quantity:     row.Quantity,
			Rate:         money(row.Rate),
			DeliveryDate: delivery,
			Remark:       remark,
			AssignedTo:   assignee,
		})
	}
	return order, nil
}

func bindOrder(c *gin.Context) (*models.Order, bool) {
	var req OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return nil, false
	}
	order, err := req.toModel()
	if err != nil {
		respondServiceError(c, "ORDER", err)
		return nil, false
	}
	return order, true
}

// ListOrders handles GET /api/orders - filters: executive_id, from, to, search; paginated
func ListOrders(c *gin.Context) {
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

	orders, total, err := services.NewOrderService(config.GetDB()).List(services.OrderFilter{
		ExecutiveID: executiveID,
		From:        dates.From,
		To:          dates.To,
		Search:      strings.TrimSpace(c.Query("search")),
		Offset:      pagination.Offset(),
		Limit:       pagination.Limit,
	})
	if err != nil {
		respondInternalError(c, "Failed to retrieve orders", err)
		return
	}

	respondList(c, orders, pagination, total)
}

// GetOrder handles GET /api/orders/:id
func GetOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	order, err := services.NewOrderService(config.GetDB()).Get(id)
	if err != nil {
		respondServiceError(c, "ORDER", err)
		return
	}
	respondOK(c, http.StatusOK, order)
}

// CreateOrder handles POST /api/orders
func CreateOrder(c *gin.Context) {
	order, ok := bindOrder(c)
	if !ok {
		return
	}

	svc := services.NewOrderService(config.GetDB())
	if err := svc.Create(order); err != nil {
		respondServiceError(c, "ORDER", err)
		return
	}

	created, err := svc.Get(order.ID)
	if err != nil {
		respondInternalError(c, "Failed to load order details", err)
		return
	}
	respondOK(c, http.StatusCreated, created)
}

// UpdateOrder handles PUT /api/orders/:id - 409 once a payment has been recorded
func UpdateOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	changes, ok := bindOrder(c)
	if !ok {
		return
	}

	order, err := services.NewOrderService(config.GetDB()).Update(id, changes)
	if err != nil {
		respondServiceError(c, "ORDER", err)
		return
	}
	respondOK(c, http.StatusOK, order)
}

// DeleteOrder handles DELETE /api/orders/:id - removes rows and payments too
func DeleteOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := services.NewOrderService(config.GetDB()).Delete(id); err != nil {
		respondServiceError(c, "ORDER", err)
		return
	}
	respondOK(c, http.StatusOK, gin.H{"id": id, "deleted": true})
}

// AddPayment handles POST /api/orders/:id/payments
func AddPayment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	payment := models.Payment{
		Amount: money(req.Amount),
		Method: req.Method,
		Note:   req.Note,
	}
	if req.PaidAt != "" {
		paidAt, err := utils.ParseDate(req.PaidAt)
		if err != nil {
			respondInvalidParam(c, "paid_at", err)
			return
		}
		payment.PaidAt = paidAt
	}

	order, err := services.NewOrderService(config.GetDB()).AddPayment(id, payment)
	if err != nil {
		respondServiceError(c, "ORDER", err)
		return
	}
	respondOK(c, http.StatusCreated, order)
}

// UpdateOrderRow handles PATCH /api/orders/:id/rows/:index - the row completion workflow
func UpdateOrderRow(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		respondValidation(c, []utils.FieldError{{Field: "index", Rule: "gte", Message: "index must be a non-negative integer"}})
		return
	}

	var req RowUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if req.Remark == nil && req.IsCompleted == nil && req.AssignedTo == nil {
		respondValidation(c, []utils.FieldError{{Field: "remark", Rule: "required_without_all", Message: "one of remark, is_completed or assigned_to is required"}})
		return
	}

	update := models.RowUpdate{IsCompleted: req.IsCompleted, AssignedTo: req.AssignedTo}
	if req.Remark != nil {
		remark, _ := models.ParseRowRemark(*req.Remark)
		update.Remark = &remark
	}

	order, err := services.NewOrderService(config.GetDB()).UpdateRow(id, index, update)
	if err != nil {
		respondServiceError(c, "ORDER", err)
		return
	}
	respondOK(c, http.StatusOK, order)
}

// ListPendingServices handles GET /api/pending-services - every unfinished row with its order
func ListPendingServices(c *gin.Context) {
	executiveID, ok := parseOptionalID(c, "executive_id")
	if !ok {
		return
	}

	filter := services.PendingFilter{ExecutiveID: executiveID}
	if raw := c.Query("remark"); raw != "" {
		remark, ok := models.ParseRowRemark(raw)
		if !ok {
			respondValidation(c, []utils.FieldError{{Field: "remark", Rule: "row_remark", Message: "unknown remark " + strconv.Quote(raw)}})
			return
		}
		filter.Remark = &remark
	}

	pending, err := services.NewOrderService(config.GetDB()).PendingServices(filter)
	if err != nil {
		respondInternalError(c, "Failed to retrieve pending services", err)
		return
	}
	respondOK(c, http.StatusOK, pending)
}
