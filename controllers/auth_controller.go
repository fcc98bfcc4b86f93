package controllers

import (
	"net/http"

	"github.com/brandworks/crm-api/config"
	"github.com/brandworks/crm-api/middleware"
	"github.com/brandworks/crm-api/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LoginRequest represents the request body for logging in
type LoginRequest struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func newAuthService() *services.AuthService {
	return services.NewAuthService(config.GetDB(), services.NewTokenService(config.GetConfig()))
}

// Login handles POST /api/login - resolves the employee and role behind a name/password pair
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := newAuthService().Login(services.LoginInput{
		Name:      req.Name,
		Password:  req.Password,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		respondServiceError(c, "EMPLOYEE", err)
		return
	}

	zap.L().Info("employee logged in",
		zap.Uint("employee_id", result.Employee.ID),
		zap.String("role", string(result.Role)),
	)
	respondOK(c, http.StatusOK, result)
}

// Logout handles POST /api/logout - closes the caller's open session
func Logout(c *gin.Context) {
	employeeID, err := middleware.GetEmployeeID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not extract employee information")
		return
	}

	record, err := newAuthService().Logout(employeeID)
	if err != nil {
		respondServiceError(c, "EMPLOYEE", err)
		return
	}

	respondOK(c, http.StatusOK, record)
}

// GetMe handles GET /api/me - returns the employee behind the bearer token
func GetMe(c *gin.Context) {
	employeeID, err := middleware.GetEmployeeID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not extract employee information")
		return
	}

	employee, err := services.FindEmployee(config.GetDB(), employeeID)
	if err != nil {
		respondServiceError(c, "EMPLOYEE", err)
		return
	}

	respondOK(c, http.StatusOK, gin.H{
		"employee": employee,
		"role":     employee.Role,
		"route":    employee.Role.Route(),
	})
}
