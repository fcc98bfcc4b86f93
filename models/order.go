package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Order is a customer order taken by an executive
type Order struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	OrderNumber     string          `gorm:"uniqueIndex;not null" json:"order_number"`
	OrderDate       time.Time       `gorm:"not null;index" json:"order_date"`
	ExecutiveID     uint            `gorm:"not null;index" json:"executive_id"`
	Executive       *Employee       `gorm:"foreignKey:ExecutiveID" json:"executive,omitempty"`
	BusinessName    string          `gorm:"not null" json:"business_name"`
	ContactName     string          `json:"contact_name"`
	Phone           string          `json:"phone"`
	Email           string          `json:"email"`
	Address         string          `json:"address"`
	Rows            []OrderRow      `gorm:"foreignKey:OrderID" json:"rows"`
	Total           decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"total"`
	Discount        decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"discount"`
	DiscountedTotal decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"discounted_total"`
	Advance         decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"advance"` // initial advance plus every recorded payment
	Balance         decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"balance"` // discounted_total - advance
	Payments        []Payment       `gorm:"foreignKey:OrderID" json:"payments"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// Recalculate derives row totals and the order financials from the rows,
// the discount and the advance. It is the only place balance is computed.
func (o *Order) Recalculate() error {
	if o.Discount.IsNegative() || o.Advance.IsNegative() {
		return ErrNegativeAmount
	}

	total := decimal.Zero
	for i := range o.Rows {
		row := &o.Rows[i]
		if row.Rate.IsNegative() {
			return ErrNegativeAmount
		}
		row.Total = row.Rate.Mul(decimal.NewFromInt(int64(row.Quantity))).Round(2)
		total = total.Add(row.Total)
	}

	if o.Discount.GreaterThan(total) {
		return ErrDiscountExceedsTotal
	}
	discounted := total.Sub(o.Discount)
	if o.Advance.GreaterThan(discounted) {
		return ErrAdvanceExceedsTotal
	}

	o.Total = total
	o.DiscountedTotal = discounted
	o.Balance = discounted.Sub(o.Advance)
	return nil
}

// Locked reports whether the order has become payment history.
// Payments must be loaded.
func (o *Order) Locked() bool {
	return len(o.Payments) > 0
}

// OrderRow is one line item of an order
type OrderRow struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	OrderID      uint            `gorm:"not null;index" json:"order_id"`
	Position     int             `gorm:"not null" json:"position"` // 0-based index inside the order
	Requirement  string          `gorm:"type:text;not null" json:"requirement"`
	Quantity     int             `gorm:"not null" json:"quantity"`
	Rate         decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"rate"`
	Total        decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"total"`
	DeliveryDate *datatypes.Date `json:"delivery_date"`
	IsCompleted  bool            `gorm:"not null;index" json:"is_completed"`
	Remark       RowRemark       `gorm:"not null" json:"remark"`
	AssignedTo   string          `json:"assigned_to"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// TableName specifies the table name for the OrderRow model
func (OrderRow) TableName() string {
	return "order_rows"
}

// RowUpdate is a remark and/or completion change for a row. Nil fields are left alone.
type RowUpdate struct {
	Remark      *RowRemark
	IsCompleted *bool
	AssignedTo  *string
}

// Apply moves the row to its next remark. Completion always follows the
// remark: completed rows are is_completed, everything else is not.
func (r *OrderRow) Apply(u RowUpdate) error {
	current := r.Remark
	if current == "" {
		current = RemarkPending
	}

	next := current
	switch {
	case u.Remark != nil:
		next = *u.Remark
	case u.IsCompleted != nil && *u.IsCompleted:
		next = RemarkCompleted
	case u.IsCompleted != nil && current == RemarkCompleted:
		next = RemarkPending
	}

	if !next.Valid() {
		return ErrUnknownRemark
	}
	if !current.CanTransitionTo(next) {
		return ErrRemarkTransition
	}

	completed := next == RemarkCompleted
	if u.IsCompleted != nil && *u.IsCompleted != completed {
		return ErrCompletionMismatch
	}

	assignee := r.AssignedTo
	if u.AssignedTo != nil {
		assignee = strings.TrimSpace(*u.AssignedTo)
	}
	if next == RemarkAssignedTo && assignee == "" {
		return ErrAssigneeRequired
	}

	r.Remark = next
	r.IsCompleted = completed
	r.AssignedTo = assignee
	return nil
}

// Payment is money received against an order after it was taken
type Payment struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	OrderID   uint            `gorm:"not null;index" json:"order_id"`
	Amount    decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	Method    string          `json:"method"` // cash, upi, bank-transfer, cheque
	Note      string          `json:"note"`
	PaidAt    time.Time       `gorm:"not null" json:"paid_at"`
	CreatedAt time.Time       `json:"created_at"`
}

// TableName specifies the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
