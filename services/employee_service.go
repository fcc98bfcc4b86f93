package services

import (
	"errors"
	"fmt"

	"github.com/brandworks/crm-api/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// PasswordCost is the bcrypt cost used for employee passwords.
// Tests lower it to keep fixtures fast.
var PasswordCost = bcrypt.DefaultCost

// HashPassword hashes a plain text password for storage
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), PasswordCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether plain matches the stored hash
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// FindEmployee loads an employee and, when roles are given, checks the
// employee holds one of them
func FindEmployee(db *gorm.DB, id uint, roles ...models.Role) (*models.Employee, error) {
	var employee models.Employee
	if err := db.First(&employee, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	if len(roles) == 0 {
		return &employee, nil
	}
	for _, role := range roles {
		if employee.Role == role {
			return &employee, nil
		}
	}
	return nil, ErrWrongRole
}
