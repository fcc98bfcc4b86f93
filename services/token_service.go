package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/brandworks/crm-api/config"
	"github.com/brandworks/crm-api/models"
	"github.com/golang-jwt/jwt/v4"
)

// EmployeeClaims is the payload of a login token. The subject is the employee id.
type EmployeeClaims struct {
	Name string      `json:"name"`
	Role models.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenService signs bearer tokens handed out at login
type TokenService struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
}

// NewTokenService creates a token service from the JWT settings
func NewTokenService(cfg *config.Config) *TokenService {
	return &TokenService{
		secret:   []byte(cfg.JWTSecret),
		issuer:   cfg.JWTIssuer,
		audience: cfg.JWTAudience,
		ttl:      cfg.TokenTTL,
		now:      time.Now,
	}
}

// Issue signs an HS256 token for the employee and returns it with its expiry
func (s *TokenService) Issue(employee *models.Employee) (string, time.Time, error) {
	if len(s.secret) == 0 {
		return "", time.Time{}, errors.New("jwt secret is not configured")
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := EmployeeClaims{
		Name: employee.Name,
		Role: employee.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   strconv.FormatUint(uint64(employee.ID), 10),
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}
