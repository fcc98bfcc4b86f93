package models

import (
	"time"
)

// DesignRequest is a design job raised by an executive and worked by a designer
type DesignRequest struct {
	ID                 uint          `gorm:"primaryKey" json:"id"`
	ExecutiveID        uint          `gorm:"not null;index" json:"executive_id"`
	Executive          *Employee     `gorm:"foreignKey:ExecutiveID" json:"executive,omitempty"`
	BusinessName       string        `gorm:"not null" json:"business_name"`
	ContactName        string        `json:"contact_name"`
	Phone              string        `json:"phone"`
	Requirements       string        `gorm:"type:text;not null" json:"requirements"`
	Status             DesignStatus  `gorm:"not null;index" json:"status"`
	AssignedDesignerID *uint         `gorm:"index" json:"assigned_designer_id"`
	AssignedDesigner   *Employee     `gorm:"foreignKey:AssignedDesignerID" json:"assigned_designer,omitempty"`
	StartedAt          *time.Time    `json:"started_at"`
	CompletedAt        *time.Time    `json:"completed_at"`
	TotalPauseTime     int64         `gorm:"not null" json:"total_pause_time"` // seconds
	Pauses             []DesignPause `gorm:"foreignKey:DesignRequestID" json:"pauses"`
	ServiceAssigneeID  *uint         `gorm:"index" json:"service_assignee_id"`
	ServiceAssignee    *Employee     `gorm:"foreignKey:ServiceAssigneeID" json:"service_assignee,omitempty"`
	ServiceNotes       string        `gorm:"type:text" json:"service_notes"`
	ServiceAssignedAt  *time.Time    `json:"service_assigned_at"`
	ProcessedAt        *time.Time    `json:"processed_at"`
	Version            int64         `gorm:"not null" json:"version"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
}

// TableName specifies the table name for the DesignRequest model
func (DesignRequest) TableName() string {
	return "design_requests"
}

// ActivePause returns the most recent pause that has not been resumed, or nil
func (d *DesignRequest) ActivePause() *DesignPause {
	var active *DesignPause
	for i := range d.Pauses {
		p := &d.Pauses[i]
		if p.ResumeTime != nil {
			continue
		}
		if active == nil || p.PauseTime.After(active.PauseTime) ||
			(p.PauseTime.Equal(active.PauseTime) && p.ID > active.ID) {
			active = p
		}
	}
	return active
}

// Transition moves the request to next and stamps the matching timestamp.
// Moving to the current status is a no-op, except that a completed request
// without completed_at gets one.
func (d *DesignRequest) Transition(next DesignStatus, at time.Time) error {
	if !next.Valid() {
		return ErrInvalidTransition
	}
	if d.Status != next && !d.Status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}

	d.Status = next
	switch next {
	case DesignInProgress:
		if d.StartedAt == nil {
			d.StartedAt = &at
		}
	case DesignCompleted:
		if d.CompletedAt == nil {
			d.CompletedAt = &at
		}
	case DesignAssignedToService:
		if d.ServiceAssignedAt == nil {
			d.ServiceAssignedAt = &at
		}
	case DesignProcessed:
		if d.ProcessedAt == nil {
			d.ProcessedAt = &at
		}
	}
	return nil
}

// DesignPause is one pause of the designer timer
type DesignPause struct {
	ID                  uint       `gorm:"primaryKey" json:"id"`
	DesignRequestID     uint       `gorm:"not null;index" json:"design_request_id"`
	Reason              string     `gorm:"not null" json:"reason"`
	TimeUsedBeforePause int64      `gorm:"not null" json:"time_used_before_pause"` // seconds of the timer already spent
	PauseTime           time.Time  `gorm:"not null" json:"pause_time"`
	ResumeTime          *time.Time `json:"resume_time"`
	Duration            int64      `gorm:"not null" json:"duration"` // seconds, set on resume
}

// TableName specifies the table name for the DesignPause model
func (DesignPause) TableName() string {
	return "design_pauses"
}
