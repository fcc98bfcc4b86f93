package models

import "time"

// EmployeeUpload is an image (ID card, photo, document scan) attached to an employee
type EmployeeUpload struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	EmployeeID   uint      `gorm:"not null;index" json:"employee_id"`
	Title        string    `json:"title"`
	OriginalName string    `gorm:"not null" json:"original_name"`
	StorageKey   string    `gorm:"not null;uniqueIndex" json:"storage_key"`
	ContentType  string    `gorm:"not null" json:"content_type"`
	Size         int64     `gorm:"not null" json:"size"`
	URL          string    `gorm:"-" json:"url,omitempty"` // computed from the storage backend
	CreatedAt    time.Time `json:"created_at"`
}

// TableName specifies the table name for the EmployeeUpload model
func (EmployeeUpload) TableName() string {
	return "employee_uploads"
}
