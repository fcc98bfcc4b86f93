package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem is a stocked material or product
type InventoryItem struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Name         string          `gorm:"not null;index" json:"name"`
	Category     string          `gorm:"index" json:"category"`
	Quantity     int             `gorm:"not null" json:"quantity"`
	Unit         string          `json:"unit"` // pcs, sheets, rolls, sqft
	UnitPrice    decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"unit_price"`
	ReorderLevel int             `gorm:"not null" json:"reorder_level"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// TableName specifies the table name for the InventoryItem model
func (InventoryItem) TableName() string {
	return "inventory_items"
}

// LowStock reports whether the item has reached its reorder level
func (i InventoryItem) LowStock() bool {
	return i.Quantity <= i.ReorderLevel
}
