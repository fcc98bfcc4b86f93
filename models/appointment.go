package models

import "time"

// Appointment is a client meeting booked by an executive
type Appointment struct {
	ID           uint              `gorm:"primaryKey" json:"id"`
	ExecutiveID  uint              `gorm:"not null;index" json:"executive_id"`
	Executive    *Employee         `gorm:"foreignKey:ExecutiveID" json:"executive,omitempty"`
	BusinessName string            `gorm:"not null" json:"business_name"`
	ContactName  string            `json:"contact_name"`
	Phone        string            `json:"phone"`
	ScheduledAt  time.Time         `gorm:"not null;index" json:"scheduled_at"`
	Location     string            `json:"location"`
	Purpose      string            `gorm:"type:text" json:"purpose"`
	Status       AppointmentStatus `gorm:"not null;index" json:"status"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// TableName specifies the table name for the Appointment model
func (Appointment) TableName() string {
	return "appointments"
}
