package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	GoEnv              string        `env:"GO_ENV" envDefault:"development"`
	Port               string        `env:"PORT" envDefault:"8080"`
	DatabaseDriver     string        `env:"DATABASE_DRIVER" envDefault:"postgres"` // postgres or sqlite
	DatabaseURL        string        `env:"DATABASE_URL"`
	JWTSecret          string        `env:"JWT_SECRET"`
	JWTIssuer          string        `env:"JWT_ISSUER" envDefault:"crm-api"`
	JWTAudience        string        `env:"JWT_AUDIENCE" envDefault:"crm-dashboard"`
	TokenTTL           time.Duration `env:"TOKEN_TTL" envDefault:"12h"`
	UploadBackend      string        `env:"UPLOAD_BACKEND" envDefault:"local"` // local or s3
	UploadDir          string        `env:"UPLOAD_DIR" envDefault:"./uploads"`
	AWSRegion          string        `env:"AWS_REGION" envDefault:"us-east-1"`
	AWSS3Bucket        string        `env:"AWS_S3_BUCKET"`
	AWSAccessKeyID     string        `env:"AWS_ACCESS_KEY_ID"`
	AWSSecretAccessKey string        `env:"AWS_SECRET_ACCESS_KEY"`
	LogLevel           string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFile            string        `env:"LOG_FILE"`
	LogMaxSizeMB       int           `env:"LOG_MAX_SIZE_MB" envDefault:"50"`
	LogMaxBackups      int           `env:"LOG_MAX_BACKUPS" envDefault:"5"`
	LogMaxAgeDays      int           `env:"LOG_MAX_AGE_DAYS" envDefault:"30"`
	CORSOrigins        []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
	ExposeErrorStack   bool          `env:"EXPOSE_ERROR_STACK" envDefault:"false"`

	// EnvFile is the dotenv file that was loaded, empty when only the process environment was used
	EnvFile string `env:"-"`
}

var appConfig *Config

// Load loads the configuration from environment variables
// It automatically determines which .env file to load based on GO_ENV
func Load() (*Config, error) {
	// Determine which environment file to load
	goEnv := os.Getenv("GO_ENV")
	if goEnv == "" {
		goEnv = "development"
	}

	// Try the environment-specific file first, then .env. In production the
	// variables are set directly so neither file has to exist.
	loaded := ""
	envFile := fmt.Sprintf(".env.%s", goEnv)
	if err := godotenv.Load(envFile); err == nil {
		loaded = envFile
	} else if err := godotenv.Load(); err == nil {
		loaded = ".env"
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	cfg.EnvFile = loaded

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	appConfig = cfg
	return cfg, nil
}

// Validate checks that all required configuration values are set
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	switch c.DatabaseDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("DATABASE_DRIVER must be postgres or sqlite, got %q", c.DatabaseDriver)
	}
	if c.JWTSecret == "" && !c.IsTest() {
		return fmt.Errorf("JWT_SECRET is required")
	}
	switch c.UploadBackend {
	case "local":
	case "s3":
		if c.AWSS3Bucket == "" {
			return fmt.Errorf("AWS_S3_BUCKET is required when UPLOAD_BACKEND is s3")
		}
	default:
		return fmt.Errorf("UPLOAD_BACKEND must be local or s3, got %q", c.UploadBackend)
	}
	return nil
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// IsTest returns true if the application is running in test mode
func (c *Config) IsTest() bool {
	return c.GoEnv == "test"
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GoEnv == "development"
}

// AllowsAllOrigins reports whether CORS is open to every origin
func (c *Config) AllowsAllOrigins() bool {
	for _, origin := range c.CORSOrigins {
		if strings.TrimSpace(origin) == "*" {
			return true
		}
	}
	return len(c.CORSOrigins) == 0
}

// GetConfig returns the loaded configuration, nil before Load or SetConfig
func GetConfig() *Config {
	return appConfig
}

// SetConfig replaces the global configuration (primarily for testing)
func SetConfig(cfg *Config) {
	appConfig = cfg
}
