// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	LogLevel    string
	Server      ServerConfig
	Catalog     CatalogConfig
	Storage     StorageConfig
	Database    DatabaseConfig
	AWS         AWSConfig
	Frontend    FrontendConfig
}

type FrontendConfig struct {
	BaseURL         string
	AllowAllOrigins bool
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
	PublicURL    string
}

// CatalogConfig holds the defaults every filter spec deviates from.
type CatalogConfig struct {
	MinPrice       int
	MaxPrice       int
	SiteLabel      string
	DefaultBrand   string
	SeedFile       string
	SessionTTL     int // in minutes
	UploadDir      string
	MaxUploadBytes int64
}

type StorageConfig struct {
	Driver string // memory, file or postgres
	Dir    string
}

type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Database     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  int
	LogLevel     string
}

type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	S3Bucket        string
	CloudFrontURL   string
}

const (
	StorageDriverMemory   = "memory"
	StorageDriverFile     = "file"
	StorageDriverPostgres = "postgres"
)

// Load reads the optional env files (first one wins per key) and the process environment.
func Load(envFiles ...string) (*Config, error) {
	// Missing .env files are fine
	godotenv.Load(envFiles...)

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
			PublicURL:    getEnv("SERVER_PUBLIC_URL", "http://localhost:8080"),
		},
		Catalog: CatalogConfig{
			MinPrice:       getEnvAsInt("CATALOG_MIN_PRICE", 0),
			MaxPrice:       getEnvAsInt("CATALOG_MAX_PRICE", 5000),
			SiteLabel:      getEnv("CATALOG_SITE_LABEL", "Jyoti's World"),
			DefaultBrand:   getEnv("CATALOG_DEFAULT_BRAND", "Custom"),
			SeedFile:       getEnv("CATALOG_SEED_FILE", ""),
			SessionTTL:     getEnvAsInt("CATALOG_SESSION_TTL", 30),
			UploadDir:      getEnv("CATALOG_UPLOAD_DIR", "./uploads"),
			MaxUploadBytes: int64(getEnvAsInt("CATALOG_MAX_UPLOAD_MB", 10)) * 1024 * 1024,
		},
		Storage: StorageConfig{
			Driver: strings.ToLower(getEnv("STORAGE_DRIVER", StorageDriverFile)),
			Dir:    getEnv("STORAGE_DIR", "./data"),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", ""),
			Database:     getEnv("DB_NAME", "dress_catalog"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  getEnvAsInt("DB_MAX_LIFETIME", 300),
			LogLevel:     getEnv("DB_LOG_LEVEL", "silent"),
		},
		AWS: AWSConfig{
			Region:          getEnv("AWS_REGION", "ap-south-1"),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			S3Bucket:        getEnv("AWS_S3_BUCKET", "dress-catalog-images"),
			CloudFrontURL:   getEnv("AWS_CLOUDFRONT_URL", ""),
		},
		Frontend: FrontendConfig{
			BaseURL:         getEnv("FRONTEND_BASE_URL", "http://localhost:5173"),
			AllowAllOrigins: getEnvAsBool("CORS_ALLOW_ALL_ORIGINS", false),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageDriverMemory, StorageDriverFile, StorageDriverPostgres:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}

	if c.Catalog.MinPrice < 0 {
		return fmt.Errorf("catalog min price must not be negative")
	}

	if c.Catalog.MinPrice > c.Catalog.MaxPrice {
		return fmt.Errorf("catalog min price %d exceeds max price %d", c.Catalog.MinPrice, c.Catalog.MaxPrice)
	}

	if c.Storage.Driver == StorageDriverPostgres && c.Database.Password == "" && c.Environment == "production" {
		return fmt.Errorf("database password is required in production")
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(strings.ToLower(value)); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
