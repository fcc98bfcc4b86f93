package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/brandworks/crm-api/config"
	"github.com/brandworks/crm-api/models"
	"github.com/brandworks/crm-api/services"
	"github.com/brandworks/crm-api/utils"
	"github.com/gin-gonic/gin"
)

// EmployeeRequest represents the request body for creating or updating an employee.
// The password is required on create and optional on update.
type EmployeeRequest struct {
	Name     string `json:"name" binding:"required"`
	Role     string `json:"role" binding:"required,employee_role"`
	Phone    string `json:"phone"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"omitempty,min=6"`
	Active   *bool  `json:"active"`
	JoinedAt string `json:"joined_at" binding:"omitempty,datetime=2006-01-02"`
}

func (r EmployeeRequest) apply(employee *models.Employee) error {
	role, _ := models.ParseRole(r.Role)
	employee.Name = strings.TrimSpace(r.Name)
	employee.Role = role
	employee.Phone = r.Phone
	employee.Email = r.Email
	if r.Active != nil {
		employee.Active = *r.Active
	}
	if r.JoinedAt != "" {
		joined, err := utils.ParseDate(r.JoinedAt)
		if err != nil {
			return err
		}
		employee.JoinedAt = &joined
	}
	if r.Password != "" {
		hash, err := services.HashPassword(r.Password)
		if err != nil {
			return err
		}
		employee.PasswordHash = hash
	}
	return nil
}

// ListEmployees handles GET /api/employees - filters: role, active
func ListEmployees(c *gin.Context) {
	pagination := utils.ParsePagination(c)
	query := config.GetDB().Model(&models.Employee{})

	if raw := c.Query("role"); raw != "" {
		role, ok := models.ParseRole(raw)
		if !ok {
			respondValidation(c, []utils.FieldError{{Field: "role", Rule: "employee_role", Message: "unknown role " + strconv.Quote(raw)}})
			return
		}
		query = query.Where("role = ?", role)
	}
	if raw := c.Query("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			respondInvalidParam(c, "active", errors.New("active must be true or false"))
			return
		}
		query = query.Where("active = ?", active)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		respondInternalError(c, "Failed to count employees", err)
		return
	}

	var employees []models.Employee
	err := query.Order("name ASC, id ASC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit).
		Find(&employees).Error
	if err != nil {
		respondInternalError(c, "Failed to retrieve employees", err)
		return
	}

	respondList(c, employees, pagination, total)
}

// GetEmployee handles GET /api/employees/:id
func GetEmployee(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	employee, err := services.FindEmployee(config.GetDB(), id)
	if err != nil {
		respondServiceError(c, "EMPLOYEE", err)
		return
	}
	respondOK(c, http.StatusOK, employee)
}

// CreateEmployee handles POST /api/employees
func CreateEmployee(c *gin.Context) {
	var req EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	if req.Password == "" {
		respondValidation(c, []utils.FieldError{{Field: "password", Rule: "required", Message: "password is required"}})
		return
	}

	employee := models.Employee{Active: true}
	if err := req.apply(&employee); err != nil {
		respondInternalError(c, "Failed to prepare employee", err)
		return
	}
	now := time.Now()
	if employee.JoinedAt == nil {
		employee.JoinedAt = &now
	}

	if err := config.GetDB().Create(&employee).Error; err != nil {
		respondInternalError(c, "Failed to create employee", err)
		return
	}
	respondOK(c, http.StatusCreated, employee)
}

// UpdateEmployee handles PUT /api/employees/:id
func UpdateEmployee(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	db := config.GetDB()
	employee, err := services.FindEmployee(db, id)
	if err != nil {
		respondServiceError(c, "EMPLOYEE", err)
		return
	}
	if err := req.apply(employee); err != nil {
		respondInternalError(c, "Failed to prepare employee", err)
		return
	}

	if err := db.Save(employee).Error; err != nil {
		respondInternalError(c, "Failed to update employee", err)
		return
	}
	respondOK(c, http.StatusOK, employee)
}

// DeleteEmployee handles DELETE /api/employees/:id
func DeleteEmployee(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	deleteRecord(c, &models.Employee{}, id, "EMPLOYEE")
}
