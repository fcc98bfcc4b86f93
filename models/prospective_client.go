package models

import (
	"time"

	"gorm.io/datatypes"
)

// ProspectiveClient is a sales lead owned by an executive
type ProspectiveClient struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	ExecutiveID  uint            `gorm:"not null;index" json:"executive_id"`
	Executive    *Employee       `gorm:"foreignKey:ExecutiveID" json:"executive,omitempty"`
	BusinessName string          `gorm:"not null" json:"business_name"`
	ContactName  string          `json:"contact_name"`
	Phone        string          `gorm:"not null" json:"phone"`
	Requirement  string          `gorm:"type:text" json:"requirement"`
	Status       ClientStatus    `gorm:"not null;index" json:"status"`
	FollowUpDate *datatypes.Date `gorm:"index" json:"follow_up_date"`
	Notes        string          `gorm:"type:text" json:"notes"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// TableName specifies the table name for the ProspectiveClient model
func (ProspectiveClient) TableName() string {
	return "prospective_clients"
}

// SetStatus changes the lead status. A followup always carries the date of
// the next call; any other status clears it.
func (p *ProspectiveClient) SetStatus(status ClientStatus, followUp *datatypes.Date) error {
	if status != ClientFollowUp {
		p.Status = status
		p.FollowUpDate = nil
		return nil
	}
	if followUp == nil {
		return ErrFollowUpDateRequired
	}
	p.Status = status
	p.FollowUpDate = followUp
	return nil
}
