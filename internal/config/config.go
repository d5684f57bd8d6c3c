package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port        string `yaml:"port" env:"SERVER_PORT"`
		Mode        string `yaml:"mode" env:"SERVER_MODE"`
		FrontendURL string `yaml:"frontend_url" env:"FRONTEND_URL"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	// Auth covers owner tokens issued by the external identity provider.
	// Tokens are HS256 and carry the platform user id in the subject claim.
	Auth struct {
		Secret string `yaml:"secret" env:"AUTH_SECRET"`
		Issuer string `yaml:"issuer" env:"AUTH_ISSUER"`
	} `yaml:"auth"`

	// Portal covers the student-portal tokens this service issues itself.
	Portal struct {
		Secret          string `yaml:"secret" env:"PORTAL_JWT_SECRET"`
		TokenExpiration string `yaml:"token_expiration" env:"PORTAL_TOKEN_EXPIRATION"`
		Issuer          string `yaml:"issuer" env:"PORTAL_JWT_ISSUER"`
	} `yaml:"portal"`

	Import struct {
		MaxUploadBytes int64 `yaml:"max_upload_bytes" env:"IMPORT_MAX_UPLOAD_BYTES"`
		PreviewLimit   int   `yaml:"preview_limit" env:"IMPORT_PREVIEW_LIMIT"`
	} `yaml:"import"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Load default config with sane defaults
	config := &Config{}
	setDefaults(config)

	// Try to read config file if it exists
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Override with environment variables
	if err := processStructFields(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	// Validate config
	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.FrontendURL = "http://localhost:3000"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "vidyalaya"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"

	config.Auth.Issuer = "accounts.vidyalaya.app"

	config.Portal.TokenExpiration = "12h"
	config.Portal.Issuer = "vidyalaya.app"

	config.Import.MaxUploadBytes = 5 * 1024 * 1024
	config.Import.PreviewLimit = 200

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.Auth.Secret == "" {
		return fmt.Errorf("auth secret is required")
	}

	if config.Portal.Secret == "" {
		return fmt.Errorf("portal JWT secret is required")
	}

	if _, err := time.ParseDuration(config.Portal.TokenExpiration); err != nil {
		return fmt.Errorf("invalid portal token expiration format: %w", err)
	}

	if config.Import.PreviewLimit <= 0 {
		return fmt.Errorf("import preview limit must be positive")
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}
