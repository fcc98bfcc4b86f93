package testutil

import (
	"strconv"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/brandworks/crm-api/middleware"
	"github.com/brandworks/crm-api/models"
	"github.com/gin-gonic/gin"
)

// MockValidatedClaims creates a mock ValidatedClaims for testing
func MockValidatedClaims(employee *models.Employee, issuer string) *validator.ValidatedClaims {
	return &validator.ValidatedClaims{
		RegisteredClaims: validator.RegisteredClaims{
			Issuer:  issuer,
			Subject: strconv.FormatUint(uint64(employee.ID), 10),
		},
		CustomClaims: &middleware.CustomClaims{
			Name: employee.Name,
			Role: employee.Role,
		},
	}
}

// SetMockAuthContext marks c as authenticated for employee, the way
// EnsureValidToken would after accepting a token
func SetMockAuthContext(c *gin.Context, employee *models.Employee) {
	c.Set("employee_id", employee.ID)
	c.Set("validated_claims", MockValidatedClaims(employee, "crm-api"))
}
