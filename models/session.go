package models

import "time"

// LoginRecord is written on every successful login
type LoginRecord struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	EmployeeID uint       `gorm:"not null;index" json:"employee_id"`
	Name       string     `gorm:"not null" json:"name"`
	Role       Role       `gorm:"not null" json:"role"`
	LoginAt    time.Time  `gorm:"not null;index" json:"login_at"`
	LogoutAt   *time.Time `json:"logout_at"`
	IP         string     `json:"ip"`
	UserAgent  string     `json:"user_agent"`
}

// TableName specifies the table name for the LoginRecord model
func (LoginRecord) TableName() string {
	return "login_records"
}

// LogoutRecord closes a session and keeps how long it lasted
type LogoutRecord struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	EmployeeID     uint       `gorm:"not null;index" json:"employee_id"`
	Name           string     `gorm:"not null" json:"name"`
	Role           Role       `gorm:"not null" json:"role"`
	LoginAt        *time.Time `json:"login_at"`
	LogoutAt       time.Time  `gorm:"not null;index" json:"logout_at"`
	SessionSeconds int64      `gorm:"not null" json:"session_seconds"`
}

// TableName specifies the table name for the LogoutRecord model
func (LogoutRecord) TableName() string {
	return "logout_records"
}
