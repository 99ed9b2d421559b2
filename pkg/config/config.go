package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/SuDelk/ClientLine-Backend/pkg/observability"
)

// Config holds all application configuration
type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	Observability ObservabilityConfig

	// BcryptCost is the work factor for password hashing. Zero means the
	// library default.
	BcryptCost int
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// Health/metrics server (separate port for k8s probes)
	HealthPort string
}

// DatabaseConfig holds PostgreSQL connection parameters. Host, Port, User,
// Password, and Name are required; startup fails when any is absent.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnectTimeout  time.Duration
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	LogLevel       observability.LogLevel
	MetricsEnabled bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Server:        loadServerConfig(),
		Database:      loadDatabaseConfig(),
		Observability: loadObservabilityConfig(),
		BcryptCost:    getEnvInt("CLIENTLINE_BCRYPT_COST", 0),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadServerConfig loads server configuration from environment
func loadServerConfig() ServerConfig {
	return ServerConfig{
		Host:            getEnv("CLIENTLINE_HOST", "0.0.0.0"),
		Port:            getEnv("CLIENTLINE_PORT", "8080"),
		ReadTimeout:     getEnvDuration("CLIENTLINE_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    getEnvDuration("CLIENTLINE_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:     getEnvDuration("CLIENTLINE_IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout: getEnvDuration("CLIENTLINE_SHUTDOWN_TIMEOUT", 30*time.Second),
		HealthPort:      getEnv("CLIENTLINE_HEALTH_PORT", "9090"),
	}
}

// loadDatabaseConfig loads database configuration from environment
func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:            os.Getenv("CLIENTLINE_DB_HOST"),
		Port:            os.Getenv("CLIENTLINE_DB_PORT"),
		User:            os.Getenv("CLIENTLINE_DB_USER"),
		Password:        os.Getenv("CLIENTLINE_DB_PASSWORD"),
		Name:            os.Getenv("CLIENTLINE_DB_NAME"),
		SSLMode:         getEnv("CLIENTLINE_DB_SSLMODE", "disable"),
		MaxOpenConns:    getEnvInt("CLIENTLINE_DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:    getEnvInt("CLIENTLINE_DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: getEnvDuration("CLIENTLINE_DB_CONN_MAX_LIFETIME", 30*time.Minute),
		ConnectTimeout:  getEnvDuration("CLIENTLINE_DB_CONNECT_TIMEOUT", 10*time.Second),
	}
}

// loadObservabilityConfig loads observability configuration from environment
func loadObservabilityConfig() ObservabilityConfig {
	return ObservabilityConfig{
		LogLevel:       observability.ParseLogLevel(getEnv("CLIENTLINE_LOG_LEVEL", "info")),
		MetricsEnabled: getEnvBool("CLIENTLINE_METRICS_ENABLED", true),
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if c.Server.HealthPort == "" {
		return fmt.Errorf("health port is required")
	}
	if c.Server.Port == c.Server.HealthPort {
		return fmt.Errorf("server port and health port must be different")
	}

	required := map[string]string{
		"CLIENTLINE_DB_HOST":     c.Database.Host,
		"CLIENTLINE_DB_PORT":     c.Database.Port,
		"CLIENTLINE_DB_USER":     c.Database.User,
		"CLIENTLINE_DB_PASSWORD": c.Database.Password,
		"CLIENTLINE_DB_NAME":     c.Database.Name,
	}
	for name, value := range required {
		if value == "" {
			return fmt.Errorf("missing required database parameter %s", name)
		}
	}

	if c.BcryptCost < 0 || c.BcryptCost > 31 {
		return fmt.Errorf("bcrypt cost must be between 0 and 31, got %d", c.BcryptCost)
	}

	return nil
}

// URL builds the postgres connection URL from the database parameters.
func (d DatabaseConfig) URL() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   d.Host + ":" + d.Port,
		Path:   "/" + d.Name,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1"
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
