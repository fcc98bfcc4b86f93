package models

import (
	"time"

	"gorm.io/datatypes"
)

// Interaction records how many calls or WhatsApp messages an executive made on a day
type Interaction struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	ExecutiveID uint            `gorm:"not null;index" json:"executive_id"`
	Type        InteractionType `gorm:"not null;index" json:"type"`
	Count       int             `gorm:"column:interaction_count;not null" json:"count"`
	OccurredOn  datatypes.Date  `gorm:"not null;index" json:"occurred_on"`
	Notes       string          `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time       `json:"created_at"`
}

// TableName specifies the table name for the Interaction model
func (Interaction) TableName() string {
	return "interactions"
}
