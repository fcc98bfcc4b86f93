package models

import "time"

// Vendor is an outside supplier (printing, fabrication, installation)
type Vendor struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"not null;index" json:"name"`
	ContactPerson string    `json:"contact_person"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	Category      string    `gorm:"index" json:"category"`
	Address       string    `json:"address"`
	Notes         string    `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Vendor model
func (Vendor) TableName() string {
	return "vendors"
}
