package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/brandworks/crm-api/config"
	"github.com/brandworks/crm-api/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DefaultPassword is the password every employee created by CreateEmployee gets
const DefaultPassword = "secret-pass"

var dbCounter atomic.Int64

// NewTestDB opens a private in-memory sqlite database with the full schema
// and installs it as the global connection.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:crm_test_%d?mode=memory&cache=shared", dbCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// A memory database disappears with its last connection.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	config.SetDB(db)
	return db
}

// CaseSensitiveLike makes LIKE on the test database compare case the way
// postgres does
func CaseSensitiveLike(t *testing.T, db *gorm.DB) {
	t.Helper()

	if err := db.Exec("PRAGMA case_sensitive_like = ON").Error; err != nil {
		t.Fatalf("failed to enable case sensitive LIKE: %v", err)
	}
}

// TestConfig returns a configuration usable by every component without any
// environment variables, and installs it as the global configuration.
func TestConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := &config.Config{
		GoEnv:          "test",
		Port:           "0",
		DatabaseDriver: "sqlite",
		DatabaseURL:    "file::memory:",
		JWTSecret:      "test-secret",
		JWTIssuer:      "crm-api",
		JWTAudience:    "crm-dashboard",
		TokenTTL:       time.Hour,
		UploadBackend:  "local",
		UploadDir:      t.TempDir(),
		LogLevel:       "debug",
		CORSOrigins:    []string{"*"},
	}
	config.SetConfig(cfg)
	t.Cleanup(func() { config.SetConfig(nil) })
	return cfg
}

// CreateEmployee inserts an active employee whose password is DefaultPassword
func CreateEmployee(t *testing.T, db *gorm.DB, name string, role models.Role) *models.Employee {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	employee := &models.Employee{
		Name:         name,
		Role:         role,
		PasswordHash: string(hash),
		Active:       true,
	}
	if err := db.Create(employee).Error; err != nil {
		t.Fatalf("failed to create employee: %v", err)
	}
	return employee
}
