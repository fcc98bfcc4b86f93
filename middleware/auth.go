package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/brandworks/crm-api/config"
	"github.com/brandworks/crm-api/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	employeeIDKey = "employee_id"
	claimsKey     = "validated_claims"
)

// CustomClaims contains the employee data carried by a login token
type CustomClaims struct {
	Name string      `json:"name"`
	Role models.Role `json:"role"`
}

// Validate rejects tokens that carry a role this API does not know
func (c CustomClaims) Validate(ctx context.Context) error {
	if _, ok := models.ParseRole(string(c.Role)); !ok {
		return fmt.Errorf("unknown role %q", c.Role)
	}
	return nil
}

// NewValidator builds the HS256 validator for tokens signed at login
func NewValidator(cfg *config.Config) (*validator.Validator, error) {
	keyFunc := func(ctx context.Context) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	}

	return validator.New(
		keyFunc,
		validator.HS256,
		cfg.JWTIssuer,
		[]string{cfg.JWTAudience},
		validator.WithCustomClaims(
			func() validator.CustomClaims {
				return &CustomClaims{}
			},
		),
		validator.WithAllowedClockSkew(time.Minute),
	)
}

// EnsureValidToken is a middleware that will check the validity of our JWT.
func EnsureValidToken(cfg *config.Config) gin.HandlerFunc {
	jwtValidator, err := NewValidator(cfg)
	if err != nil {
		zap.L().Fatal("failed to set up the jwt validator", zap.Error(err))
	}

	errorHandler := func(w http.ResponseWriter, r *http.Request, err error) {
		zap.L().Info("rejected bearer token", zap.Error(err), zap.String("path", r.URL.Path))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		if _, writeErr := w.Write([]byte(`{"success":false,"error":{"code":"INVALID_TOKEN","message":"Failed to validate JWT."}}`)); writeErr != nil {
			zap.L().Warn("failed to write error response", zap.Error(writeErr))
		}
	}

	middleware := jwtmiddleware.New(
		jwtValidator.ValidateToken,
		jwtmiddleware.WithErrorHandler(errorHandler),
	)

	return func(c *gin.Context) {
		aborted := true
		var handler http.HandlerFunc = func(w http.ResponseWriter, r *http.Request) {
			token := r.Context().Value(jwtmiddleware.ContextKey{}).(*validator.ValidatedClaims)

			employeeID, err := strconv.ParseUint(token.RegisteredClaims.Subject, 10, 64)
			if err != nil {
				errorHandler(w, r, fmt.Errorf("subject is not an employee id: %w", err))
				return
			}

			aborted = false
			c.Request = r
			c.Set(employeeIDKey, uint(employeeID))
			c.Set(claimsKey, token)
			c.Next()
		}

		middleware.CheckJWT(handler).ServeHTTP(c.Writer, c.Request)
		if aborted {
			c.Abort()
		}
	}
}

// GetEmployeeID extracts the authenticated employee id from the Gin context
func GetEmployeeID(c *gin.Context) (uint, error) {
	value, exists := c.Get(employeeIDKey)
	if !exists {
		return 0, &AuthError{Code: "MISSING_EMPLOYEE_ID", Message: "Employee ID not found in context"}
	}

	employeeID, ok := value.(uint)
	if !ok {
		return 0, &AuthError{Code: "INVALID_EMPLOYEE_ID", Message: "Employee ID is not numeric"}
	}

	return employeeID, nil
}

// GetClaims extracts the validated JWT claims from the Gin context
func GetClaims(c *gin.Context) (*validator.ValidatedClaims, error) {
	claims, exists := c.Get(claimsKey)
	if !exists {
		return nil, &AuthError{Code: "MISSING_CLAIMS", Message: "Claims not found in context"}
	}

	validatedClaims, ok := claims.(*validator.ValidatedClaims)
	if !ok {
		return nil, &AuthError{Code: "INVALID_CLAIMS", Message: "Claims are not in the expected format"}
	}

	return validatedClaims, nil
}

// AuthError represents an authentication error
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}
