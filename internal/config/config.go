package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Schema generations. Under GenerationScoped the institution and owner
// filters of each lookup become mandatory.
const (
	GenerationBase   = "base"
	GenerationScoped = "scoped"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	Database struct {
		Driver      string `yaml:"driver" env:"DB_DRIVER"`
		Host        string `yaml:"host" env:"DB_HOST"`
		Port        string `yaml:"port" env:"DB_PORT"`
		User        string `yaml:"user" env:"DB_USER"`
		Password    string `yaml:"password" env:"DB_PASSWORD"`
		DBName      string `yaml:"dbname" env:"DB_NAME"`
		TLSRootCert string `yaml:"tls_root_cert" env:"DB_TLS_ROOT_CERT"`
		AutoMigrate bool   `yaml:"auto_migrate" env:"DB_AUTO_MIGRATE"`
	} `yaml:"database"`

	Pool struct {
		MaxConns           int    `yaml:"max_conns" env:"DB_MAX_CONNS"`
		MaxIdleConns       int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		QueueLimit         int    `yaml:"queue_limit" env:"DB_QUEUE_LIMIT"`
		WaitForConnections bool   `yaml:"wait_for_connections" env:"DB_WAIT_FOR_CONNECTIONS"`
		AcquireTimeout     string `yaml:"acquire_timeout" env:"DB_ACQUIRE_TIMEOUT"`
		ConnMaxLifetime    string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"pool"`

	Schema struct {
		Generation string `yaml:"generation" env:"SCHEMA_GENERATION"`
	} `yaml:"schema"`

	Security struct {
		SessionSecret        string `yaml:"session_secret" env:"SESSION_SECRET"`
		SessionTTL           string `yaml:"session_ttl" env:"SESSION_TTL"`
		HashCreatorPasswords bool   `yaml:"hash_creator_passwords" env:"HASH_CREATOR_PASSWORDS"`
		SecureCookie         bool   `yaml:"secure_cookie" env:"SESSION_COOKIE_SECURE"`
	} `yaml:"security"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	// The file is optional; a bare environment is enough to run.
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "5001"
	config.Server.Mode = "development"

	config.Database.Driver = "mysql"
	config.Database.Host = "localhost"
	config.Database.User = "root"
	config.Database.DBName = "academic"

	config.Pool.MaxConns = 10
	config.Pool.MaxIdleConns = 5
	config.Pool.QueueLimit = 0
	config.Pool.WaitForConnections = true
	config.Pool.AcquireTimeout = "10s"
	config.Pool.ConnMaxLifetime = "1h"

	config.Schema.Generation = GenerationBase

	config.Security.SessionTTL = "30m"

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	switch config.Database.Driver {
	case "mysql", "postgres", "sqlite":
	case "":
		return fmt.Errorf("database driver is required")
	default:
		return fmt.Errorf("unsupported database driver %q: must be mysql, postgres or sqlite", config.Database.Driver)
	}

	if config.Database.Driver != "sqlite" && config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.Database.DBName == "" {
		return fmt.Errorf("database name is required")
	}

	if config.Pool.MaxConns <= 0 {
		return fmt.Errorf("pool max_conns must be positive, got %d", config.Pool.MaxConns)
	}

	if config.Pool.QueueLimit < 0 {
		return fmt.Errorf("pool queue_limit cannot be negative, got %d", config.Pool.QueueLimit)
	}

	if _, err := time.ParseDuration(config.Pool.AcquireTimeout); err != nil {
		return fmt.Errorf("invalid pool acquire timeout format: %w", err)
	}

	if _, err := time.ParseDuration(config.Pool.ConnMaxLifetime); err != nil {
		return fmt.Errorf("invalid pool connection max lifetime format: %w", err)
	}

	if _, err := time.ParseDuration(config.Security.SessionTTL); err != nil {
		return fmt.Errorf("invalid session ttl format: %w", err)
	}

	switch config.Schema.Generation {
	case GenerationBase, GenerationScoped:
	default:
		return fmt.Errorf("unknown schema generation %q: must be %s or %s", config.Schema.Generation, GenerationBase, GenerationScoped)
	}

	return nil
}

// ScopedSchema reports whether lookups must carry their institution/owner filters.
func (c *Config) ScopedSchema() bool {
	return c.Schema.Generation == GenerationScoped
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetPostgresConnectionString returns a pgx connection string. A configured
// root certificate switches the session to verified TLS.
func (c *Config) GetPostgresConnectionString() string {
	port := c.Database.Port
	if port == "" {
		port = "5432"
	}

	sslMode := "disable"
	extra := ""
	if c.Database.TLSRootCert != "" {
		sslMode = "verify-full"
		extra = "&sslrootcert=" + url.QueryEscape(c.Database.TLSRootCert)
	}

	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.Database.User, c.Database.Password),
		Host:   c.Database.Host + ":" + port,
		Path:   "/" + c.Database.DBName,
	}
	return u.String() + "?sslmode=" + sslMode + extra
}
