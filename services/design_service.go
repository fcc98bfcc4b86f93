package services

import (
	"errors"
	"time"

	"github.com/brandworks/crm-api/models"
	"gorm.io/gorm"
)

// DesignFilter narrows a design request listing
type DesignFilter struct {
	Status      *models.DesignStatus
	DesignerID  *uint
	ExecutiveID *uint
	Offset      int
	Limit       int
}

// DesignDetails are the fields an executive may edit on a request
type DesignDetails struct {
	BusinessName string
	ContactName  string
	Phone        string
	Requirements string
}

// DesignService runs the design request lifecycle. Every write bumps the
// request version and fails with ErrConcurrentUpdate when another writer
// got there first.
type DesignService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewDesignService creates a design service on db
func NewDesignService(db *gorm.DB) *DesignService {
	return &DesignService{db: db, now: time.Now}
}

func preloadDesign(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Executive").
		Preload("AssignedDesigner").
		Preload("ServiceAssignee").
		Preload("Pauses", func(db *gorm.DB) *gorm.DB { return db.Order("pause_time ASC, id ASC") })
}

// Get loads a design request with its people and pauses
func (s *DesignService) Get(id uint) (*models.DesignRequest, error) {
	return s.get(s.db, id)
}

func (s *DesignService) get(db *gorm.DB, id uint) (*models.DesignRequest, error) {
	var request models.DesignRequest
	if err := preloadDesign(db).First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &request, nil
}

// List returns one page of design requests, newest first
func (s *DesignService) List(f DesignFilter) ([]models.DesignRequest, int64, error) {
	query := s.db.Model(&models.DesignRequest{})
	if f.Status != nil {
		query = query.Where("status = ?", *f.Status)
	}
	if f.DesignerID != nil {
		query = query.Where("assigned_designer_id = ?", *f.DesignerID)
	}
	if f.ExecutiveID != nil {
		query = query.Where("executive_id = ?", *f.ExecutiveID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var requests []models.DesignRequest
	err := preloadDesign(query).
		Order("created_at DESC, id DESC").
		Offset(f.Offset).
		Limit(f.Limit).
		Find(&requests).Error
	if err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

// ServiceQueue lists requests handed to the service team, oldest hand-off first
func (s *DesignService) ServiceQueue(assigneeID *uint) ([]models.DesignRequest, error) {
	query := s.db.Where("status = ?", models.DesignAssignedToService)
	if assigneeID != nil {
		query = query.Where("service_assignee_id = ?", *assigneeID)
	}

	var requests []models.DesignRequest
	err := preloadDesign(query).Order("service_assigned_at ASC, id ASC").Find(&requests).Error
	return requests, err
}

// Create stores a new pending request for an executive
func (s *DesignService) Create(request *models.DesignRequest) error {
	if _, err := FindEmployee(s.db, request.ExecutiveID); err != nil {
		return err
	}

	request.Status = models.DesignPending
	request.AssignedDesignerID = nil
	request.ServiceAssigneeID = nil
	request.StartedAt = nil
	request.CompletedAt = nil
	request.ServiceAssignedAt = nil
	request.ProcessedAt = nil
	request.TotalPauseTime = 0
	request.Pauses = nil
	request.Version = 1
	return s.db.Create(request).Error
}

// UpdateDetails edits the descriptive fields of a request
func (s *DesignService) UpdateDetails(id uint, details DesignDetails) (*models.DesignRequest, error) {
	return s.mutate(id, func(_ *gorm.DB, d *models.DesignRequest, _ time.Time) error {
		d.BusinessName = details.BusinessName
		d.ContactName = details.ContactName
		d.Phone = details.Phone
		d.Requirements = details.Requirements
		return nil
	})
}

// SetStatus moves a request along its lifecycle. Completing a paused request
// closes the open pause first.
func (s *DesignService) SetStatus(id uint, next models.DesignStatus) (*models.DesignRequest, error) {
	return s.mutate(id, func(tx *gorm.DB, d *models.DesignRequest, now time.Time) error {
		if next == models.DesignCompleted && d.Status == models.DesignInProgress {
			if err := s.closePause(tx, d, now); err != nil {
				return err
			}
		}
		return d.Transition(next, now)
	})
}

// Claim assigns a designer and starts the timer
func (s *DesignService) Claim(id, designerID uint) (*models.DesignRequest, error) {
	if _, err := FindEmployee(s.db, designerID, models.RoleDesigner); err != nil {
		return nil, err
	}

	return s.mutate(id, func(_ *gorm.DB, d *models.DesignRequest, now time.Time) error {
		if d.Status != models.DesignPending {
			if d.Status == models.DesignInProgress && d.AssignedDesignerID != nil && *d.AssignedDesignerID == designerID {
				return nil
			}
			return models.ErrInvalidTransition
		}
		d.AssignedDesignerID = &designerID
		return d.Transition(models.DesignInProgress, now)
	})
}

// Pause stops the designer timer with a reason
func (s *DesignService) Pause(id uint, reason string) (*models.DesignRequest, error) {
	return s.mutate(id, func(tx *gorm.DB, d *models.DesignRequest, now time.Time) error {
		if d.Status != models.DesignInProgress {
			return ErrNotInProgress
		}
		if d.ActivePause() != nil {
			return ErrAlreadyPaused
		}

		var used int64
		if d.StartedAt != nil {
			used = int64(now.Sub(*d.StartedAt).Seconds()) - d.TotalPauseTime
			if used < 0 {
				used = 0
			}
		}

		pause := models.DesignPause{
			DesignRequestID:     d.ID,
			Reason:              reason,
			TimeUsedBeforePause: used,
			PauseTime:           now,
		}
		return tx.Create(&pause).Error
	})
}

// Resume closes the open pause. Without one the request is returned unchanged.
func (s *DesignService) Resume(id uint) (*models.DesignRequest, error) {
	request, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if request.ActivePause() == nil {
		return request, nil
	}

	return s.mutate(id, func(tx *gorm.DB, d *models.DesignRequest, now time.Time) error {
		return s.closePause(tx, d, now)
	})
}

// AssignService hands a completed design to a service employee
func (s *DesignService) AssignService(id, assigneeID uint, notes string) (*models.DesignRequest, error) {
	if _, err := FindEmployee(s.db, assigneeID, models.RoleService, models.RoleServiceExecutive); err != nil {
		return nil, err
	}

	return s.mutate(id, func(_ *gorm.DB, d *models.DesignRequest, now time.Time) error {
		if err := d.Transition(models.DesignAssignedToService, now); err != nil {
			return err
		}
		d.ServiceAssigneeID = &assigneeID
		d.ServiceNotes = notes
		return nil
	})
}

// MarkProcessed closes the request after service work is done
func (s *DesignService) MarkProcessed(id uint) (*models.DesignRequest, error) {
	return s.mutate(id, func(_ *gorm.DB, d *models.DesignRequest, now time.Time) error {
		return d.Transition(models.DesignProcessed, now)
	})
}

// Delete removes a request and its pauses
func (s *DesignService) Delete(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.DesignRequest{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Where("design_request_id = ?", id).Delete(&models.DesignPause{}).Error
	})
}

// closePause stamps the open pause, if any, and adds its length to the total.
// The conditional update keeps two racing resumes from counting one pause twice.
func (s *DesignService) closePause(tx *gorm.DB, d *models.DesignRequest, now time.Time) error {
	pause := d.ActivePause()
	if pause == nil {
		return nil
	}

	duration := int64(now.Sub(pause.PauseTime).Seconds())
	if duration < 0 {
		duration = 0
	}

	res := tx.Model(&models.DesignPause{}).
		Where("id = ? AND resume_time IS NULL", pause.ID).
		Updates(map[string]interface{}{
			"resume_time": now,
			"duration":    duration,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConcurrentUpdate
	}

	pause.ResumeTime = &now
	pause.Duration = duration
	d.TotalPauseTime += duration
	return nil
}

// mutate loads a request inside a transaction, applies fn and saves the
// result only if nobody else saved the request in between
func (s *DesignService) mutate(id uint, fn func(tx *gorm.DB, d *models.DesignRequest, now time.Time) error) (*models.DesignRequest, error) {
	now := s.now()
	err := s.db.Transaction(func(tx *gorm.DB) error {
		request, err := s.get(tx, id)
		if err != nil {
			return err
		}
		if err := fn(tx, request, now); err != nil {
			return err
		}
		return saveDesign(tx, request, now)
	})
	if err != nil {
		return nil, err
	}
	return s.Get(id)
}

func saveDesign(tx *gorm.DB, d *models.DesignRequest, now time.Time) error {
	res := tx.Model(&models.DesignRequest{}).
		Where("id = ? AND version = ?", d.ID, d.Version).
		Updates(map[string]interface{}{
			"business_name":        d.BusinessName,
			"contact_name":         d.ContactName,
			"phone":                d.Phone,
			"requirements":         d.Requirements,
			"status":               d.Status,
			"assigned_designer_id": d.AssignedDesignerID,
			"started_at":           d.StartedAt,
			"completed_at":         d.CompletedAt,
			"total_pause_time":     d.TotalPauseTime,
			"service_assignee_id":  d.ServiceAssigneeID,
			"service_notes":        d.ServiceNotes,
			"service_assigned_at":  d.ServiceAssignedAt,
			"processed_at":         d.ProcessedAt,
			"version":              d.Version + 1,
			"updated_at":           now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConcurrentUpdate
	}
	d.Version++
	return nil
}
