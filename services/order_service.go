package services

import (
	"errors"
	"strings"
	"time"

	"github.com/brandworks/crm-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderFilter narrows an order listing
type OrderFilter struct {
	ExecutiveID *uint
	From        *time.Time
	To          *time.Time // exclusive
	Search      string
	Offset      int
	Limit       int
}

// PendingFilter narrows the pending services listing
type PendingFilter struct {
	ExecutiveID *uint
	Remark      *models.RowRemark
}

// PendingService is an unfinished order row together with its order context
type PendingService struct {
	OrderID      uint            `json:"order_id"`
	OrderNumber  string          `json:"order_number"`
	OrderDate    time.Time       `json:"order_date"`
	ExecutiveID  uint            `json:"executive_id"`
	BusinessName string          `json:"business_name"`
	ContactName  string          `json:"contact_name"`
	Phone        string          `json:"phone"`
	RowIndex     int             `json:"row_index"`
	Row          models.OrderRow `json:"row"`
}

// OrderService owns every write to orders, rows and payments
type OrderService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewOrderService creates an order service on db
func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db, now: time.Now}
}

func preloadOrder(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Executive").
		Preload("Rows", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("paid_at ASC, id ASC") })
}

// Get loads an order with its executive, rows and payments
func (s *OrderService) Get(id uint) (*models.Order, error) {
	return s.get(s.db, id)
}

func (s *OrderService) get(db *gorm.DB, id uint) (*models.Order, error) {
	var order models.Order
	if err := preloadOrder(db).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// List returns one page of orders, newest first, and the total match count
func (s *OrderService) List(f OrderFilter) ([]models.Order, int64, error) {
	query := s.db.Model(&models.Order{})
	if f.ExecutiveID != nil {
		query = query.Where("executive_id = ?", *f.ExecutiveID)
	}
	if f.From != nil {
		query = query.Where("order_date >= ?", *f.From)
	}
	if f.To != nil {
		query = query.Where("order_date < ?", *f.To)
	}
	if f.Search != "" {
		like := "%" + strings.ToLower(f.Search) + "%"
		query = query.Where("LOWER(order_number) LIKE ? OR LOWER(business_name) LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []models.Order
	err := preloadOrder(query).
		Order("order_date DESC, id DESC").
		Offset(f.Offset).
		Limit(f.Limit).
		Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// Create stores a new order. Row positions, totals and the balance are
// derived here; whatever the caller put in them is overwritten.
func (s *OrderService) Create(order *models.Order) error {
	if _, err := FindEmployee(s.db, order.ExecutiveID); err != nil {
		return err
	}

	prepareRows(order.Rows)
	if err := order.Recalculate(); err != nil {
		return err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
	if IsDuplicateError(err) {
		return ErrDuplicateOrderNumber
	}
	return err
}

// Update replaces the header and rows of an order that has no payments yet
func (s *OrderService) Update(id uint, changes *models.Order) (*models.Order, error) {
	if _, err := FindEmployee(s.db, changes.ExecutiveID); err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		existing, err := s.get(tx, id)
		if err != nil {
			return err
		}
		if existing.Locked() {
			return ErrOrderLocked
		}

		existing.OrderNumber = changes.OrderNumber
		existing.OrderDate = changes.OrderDate
		existing.ExecutiveID = changes.ExecutiveID
		existing.Executive = nil
		existing.BusinessName = changes.BusinessName
		existing.ContactName = changes.ContactName
		existing.Phone = changes.Phone
		existing.Email = changes.Email
		existing.Address = changes.Address
		existing.Discount = changes.Discount
		existing.Advance = changes.Advance
		existing.Rows = changes.Rows

		prepareRows(existing.Rows)
		if err := existing.Recalculate(); err != nil {
			return err
		}

		if err := tx.Where("order_id = ?", id).Delete(&models.OrderRow{}).Error; err != nil {
			return err
		}
		for i := range existing.Rows {
			existing.Rows[i].ID = 0
			existing.Rows[i].OrderID = id
		}
		if len(existing.Rows) > 0 {
			if err := tx.Create(&existing.Rows).Error; err != nil {
				return err
			}
		}

		return tx.Omit(clause.Associations).Save(existing).Error
	})
	if err != nil {
		if IsDuplicateError(err) {
			return nil, ErrDuplicateOrderNumber
		}
		return nil, err
	}
	return s.Get(id)
}

// Delete removes an order with its rows and payments
func (s *OrderService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Order{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderRow{}).Error; err != nil {
			return err
		}
		return tx.Where("order_id = ?", id).Delete(&models.Payment{}).Error
	})
}

// AddPayment records money received and moves it from balance to advance
func (s *OrderService) AddPayment(id uint, payment models.Payment) (*models.Order, error) {
	if !payment.Amount.IsPositive() {
		return nil, models.ErrNegativeAmount
	}
	if payment.PaidAt.IsZero() {
		payment.PaidAt = s.now()
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if payment.Amount.GreaterThan(order.Balance) {
			return ErrPaymentExceedsBalance
		}

		payment.ID = 0
		payment.OrderID = id
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		advance := order.Advance.Add(payment.Amount)
		return tx.Model(&models.Order{}).Where("id = ?", id).Updates(map[string]interface{}{
			"advance": advance,
			"balance": order.DiscountedTotal.Sub(advance),
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return s.Get(id)
}

// UpdateRow applies a remark/completion change to the row at index.
// Concurrent edits of the same row are last-write-wins.
func (s *OrderService) UpdateRow(id uint, index int, update models.RowUpdate) (*models.Order, error) {
	var row models.OrderRow
	err := s.db.Where("order_id = ? AND position = ?", id, index).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if _, getErr := s.Get(id); getErr != nil {
			return nil, getErr
		}
		return nil, ErrRowNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := row.Apply(update); err != nil {
		return nil, err
	}

	err = s.db.Model(&models.OrderRow{}).Where("id = ?", row.ID).Updates(map[string]interface{}{
		"remark":       row.Remark,
		"is_completed": row.IsCompleted,
		"assigned_to":  row.AssignedTo,
		"updated_at":   s.now(),
	}).Error
	if err != nil {
		return nil, err
	}
	return s.Get(id)
}

// PendingServices lists every row that is not completed, oldest orders first.
// Completed rows stay on their order; they are only left out here.
func (s *OrderService) PendingServices(f PendingFilter) ([]PendingService, error) {
	rowScope := func(db *gorm.DB) *gorm.DB {
		db = db.Where("is_completed = ?", false)
		if f.Remark != nil {
			db = db.Where("remark = ?", *f.Remark)
		}
		return db
	}

	pendingOrderIDs := rowScope(s.db.Model(&models.OrderRow{})).Select("order_id")
	query := s.db.Where("id IN (?)", pendingOrderIDs)
	if f.ExecutiveID != nil {
		query = query.Where("executive_id = ?", *f.ExecutiveID)
	}

	var orders []models.Order
	err := query.
		Preload("Rows", func(db *gorm.DB) *gorm.DB { return rowScope(db).Order("position ASC") }).
		Order("order_date ASC, id ASC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}

	pending := make([]PendingService, 0)
	for _, order := range orders {
		for _, row := range order.Rows {
			pending = append(pending, PendingService{
				OrderID:      order.ID,
				OrderNumber:  order.OrderNumber,
				OrderDate:    order.OrderDate,
				ExecutiveID:  order.ExecutiveID,
				BusinessName: order.BusinessName,
				ContactName:  order.ContactName,
				Phone:        order.Phone,
				RowIndex:     row.Position,
				Row:          row,
			})
		}
	}
	return pending, nil
}

// prepareRows numbers rows by their index and normalizes remark/completion
func prepareRows(rows []models.OrderRow) {
	for i := range rows {
		rows[i].Position = i
		if rows[i].Remark == "" {
			rows[i].Remark = models.RemarkPending
		}
		rows[i].IsCompleted = rows[i].Remark == models.RemarkCompleted
		if rows[i].Total.IsZero() {
			rows[i].Total = decimal.Zero
		}
	}
}
