package config

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Storage  StorageConfig
	OtterAI  OtterAIConfig
	Email    EmailConfig
	Features FeatureConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string   `envconfig:"PORT" default:"8080"`
	Host            string   `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string   `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout int      `envconfig:"SHUTDOWN_TIMEOUT" default:"10"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string `envconfig:"DB_HOST" default:"localhost"`
	Port        string `envconfig:"DB_PORT" default:"5432"`
	User        string `envconfig:"DB_USER" default:"postgres"`
	Password    string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name        string `envconfig:"DB_NAME" default:"otterai_backend"`
	SSLMode     string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns    int    `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns    int    `envconfig:"DB_MIN_CONNS" default:"5"`
	AutoMigrate bool   `envconfig:"DB_AUTO_MIGRATE" default:"false"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
	Enabled  bool   `envconfig:"REDIS_ENABLED" default:"true"`
}

// StorageConfig holds object storage configuration
type StorageConfig struct {
	Endpoint        string `envconfig:"STORAGE_ENDPOINT" default:"localhost:9000"`
	AccessKeyID     string `envconfig:"STORAGE_ACCESS_KEY" default:"minioadmin"`
	SecretAccessKey string `envconfig:"STORAGE_SECRET_KEY" default:"minioadmin"`
	BucketName      string `envconfig:"STORAGE_BUCKET" default:"otterai-backend"`
	UseSSL          bool   `envconfig:"STORAGE_USE_SSL" default:"false"`
	ArchivePayloads bool   `envconfig:"STORAGE_ARCHIVE_PAYLOADS" default:"false"`
}

// OtterAIConfig holds OtterAI transcription service configuration
type OtterAIConfig struct {
	APIKey         string `envconfig:"OTTERAI_API_KEY" default:""`
	BaseURL        string `envconfig:"OTTERAI_API_URL" default:"https://otter.ai/forward/api/v1"`
	WebhookBaseURL string `envconfig:"OTTERAI_WEBHOOK_BASE_URL" default:""`
}

// EmailConfig holds transactional email configuration
type EmailConfig struct {
	APIKey      string `envconfig:"EMAIL_API_KEY" default:""`
	BaseURL     string `envconfig:"EMAIL_API_URL" default:"https://api.sendgrid.com"`
	FromAddress string `envconfig:"EMAIL_FROM" default:"noreply@otterai-backend.local"`
	FromName    string `envconfig:"EMAIL_FROM_NAME" default:"Sales Call Analytics"`
}

// FeatureConfig holds feature flags
type FeatureConfig struct {
	// IngestNotifications gates notification creation from the webhook
	// ingestion pipeline. Off until notification validation constraints
	// are resolved.
	IngestNotifications bool `envconfig:"FEATURE_INGEST_NOTIFICATIONS" default:"false"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	if c.Server.Environment == "production" && c.Database.AutoMigrate {
		return fmt.Errorf("DB_AUTO_MIGRATE must be disabled in production; use sql-migrate")
	}
	return nil
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}
