package services

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/brandworks/crm-api/models"
	"gorm.io/gorm"
)

// LoginResult is what a successful login hands back to the client
type LoginResult struct {
	Employee  *models.Employee `json:"employee"`
	Role      models.Role      `json:"role"`
	Route     string           `json:"route"`
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
}

// LoginInput is the credential pair plus request metadata kept in the login record
type LoginInput struct {
	Name      string
	Password  string
	IP        string
	UserAgent string
}

// AuthService resolves credentials to an employee and keeps the session history
type AuthService struct {
	db     *gorm.DB
	tokens *TokenService
	now    func() time.Time
}

// NewAuthService creates an auth service
func NewAuthService(db *gorm.DB, tokens *TokenService) *AuthService {
	return &AuthService{db: db, tokens: tokens, now: time.Now}
}

// Login checks the password against every active employee with that name.
// Candidates are tried in role precedence order and the first match wins.
func (s *AuthService) Login(in LoginInput) (*LoginResult, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Password == "" {
		return nil, ErrInvalidCredentials
	}

	var candidates []models.Employee
	err := s.db.
		Where("LOWER(name) = ? AND active = ?", strings.ToLower(name), true).
		Order("id ASC").
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Role.Precedence() < candidates[j].Role.Precedence()
	})

	var employee *models.Employee
	for i := range candidates {
		if CheckPassword(candidates[i].PasswordHash, in.Password) {
			employee = &candidates[i]
			break
		}
	}
	if employee == nil {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(employee)
	if err != nil {
		return nil, err
	}

	record := models.LoginRecord{
		EmployeeID: employee.ID,
		Name:       employee.Name,
		Role:       employee.Role,
		LoginAt:    s.now(),
		IP:         in.IP,
		UserAgent:  in.UserAgent,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return nil, err
	}

	return &LoginResult{
		Employee:  employee,
		Role:      employee.Role,
		Route:     employee.Role.Route(),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

// Logout closes the latest open login of the employee and records the session length
func (s *AuthService) Logout(employeeID uint) (*models.LogoutRecord, error) {
	employee, err := FindEmployee(s.db, employeeID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	var logout models.LogoutRecord
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var login models.LoginRecord
		err := tx.Where("employee_id = ? AND logout_at IS NULL", employeeID).
			Order("login_at DESC, id DESC").
			First(&login).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoOpenSession
		}
		if err != nil {
			return err
		}

		res := tx.Model(&models.LoginRecord{}).
			Where("id = ? AND logout_at IS NULL", login.ID).
			Update("logout_at", now)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNoOpenSession
		}

		seconds := int64(now.Sub(login.LoginAt).Seconds())
		if seconds < 0 {
			seconds = 0
		}
		loginAt := login.LoginAt
		logout = models.LogoutRecord{
			EmployeeID:     employee.ID,
			Name:           employee.Name,
			Role:           employee.Role,
			LoginAt:        &loginAt,
			LogoutAt:       now,
			SessionSeconds: seconds,
		}
		return tx.Create(&logout).Error
	})
	if err != nil {
		return nil, err
	}
	return &logout, nil
}
