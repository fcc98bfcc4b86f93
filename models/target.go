package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Target is the monthly sales target of an executive
type Target struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	ExecutiveID uint            `gorm:"not null;uniqueIndex:idx_target_executive_month" json:"executive_id"`
	Executive   *Employee       `gorm:"foreignKey:ExecutiveID" json:"executive,omitempty"`
	Month       string          `gorm:"size:7;not null;uniqueIndex:idx_target_executive_month" json:"month"` // YYYY-MM
	Amount      decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TableName specifies the table name for the Target model
func (Target) TableName() string {
	return "targets"
}
