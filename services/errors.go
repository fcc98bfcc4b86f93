package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrNotFound              = errors.New("record not found")
	ErrRowNotFound           = errors.New("order row not found")
	ErrEmployeeNotFound      = errors.New("employee not found")
	ErrWrongRole             = errors.New("employee does not have the required role")
	ErrOrderLocked           = errors.New("order cannot be edited after a payment was recorded")
	ErrPaymentExceedsBalance = errors.New("payment exceeds the outstanding balance")
	ErrDuplicateOrderNumber  = errors.New("order number already exists")
	ErrNotInProgress         = errors.New("design request is not in progress")
	ErrAlreadyPaused         = errors.New("design request is already paused")
	ErrConcurrentUpdate      = errors.New("design request was changed by another request")
	ErrInvalidCredentials    = errors.New("invalid name or password")
	ErrNoOpenSession         = errors.New("no open login session")
	ErrInsufficientStock     = errors.New("adjustment would make the quantity negative")
	ErrDuplicateTarget       = errors.New("a target for this executive and month already exists")
)

// IsDuplicateError detects unique constraint violations on both PostgreSQL and SQLite
func IsDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate") ||
		strings.Contains(errMsg, "unique constraint") ||
		strings.Contains(errMsg, "unique")
}
