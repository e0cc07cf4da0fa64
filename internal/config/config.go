package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	BackendREST  = "rest"
	BackendMongo = "mongo"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Backend   BackendConfig   `yaml:"backend"`
	Session   SessionConfig   `yaml:"session"`
	Audit     AuditConfig     `yaml:"audit"`
	SMTP      SMTPConfig      `yaml:"smtp"`
	JWT       JWTConfig       `yaml:"jwt"`
	Log       LogConfig       `yaml:"log"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains admin API listener settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// BackendConfig selects how the console reaches marketplace data
type BackendConfig struct {
	Mode  string      `yaml:"mode"` // "rest" or "mongo"
	REST  RESTConfig  `yaml:"rest"`
	Mongo MongoConfig `yaml:"mongo"`
}

type RESTConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type MongoConfig struct {
	URI                   string `yaml:"uri"`
	Database              string `yaml:"database"`
	UsersCollection       string `yaml:"users_collection"`
	JobsCollection        string `yaml:"jobs_collection"`
	PendingJobsCollection string `yaml:"pending_jobs_collection"`
	BookingsCollection    string `yaml:"bookings_collection"`
	TimeoutSeconds        int    `yaml:"timeout_seconds"`
}

// SessionConfig points at the local session database
type SessionConfig struct {
	Store string `yaml:"store"` // "sqlite" or "memory"
	Path  string `yaml:"path"`
}

// AuditConfig contains PostgreSQL settings for the moderation audit trail
type AuditConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// SMTPConfig contains email service settings. An empty host disables e-mail.
type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

// JWTConfig is used in mongo mode, where the console issues its own tokens
type JWTConfig struct {
	Secret            string `yaml:"secret"`
	AccessTokenExpiry int    `yaml:"access_token_expiry_minutes"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	Enabled           bool   `yaml:"enabled"`
	DashboardRefresh  string `yaml:"dashboard_refresh"`
	SessionCheck      string `yaml:"session_check"`
	JobTimeoutSeconds int    `yaml:"job_timeout_seconds"` // bounds a single scheduled run
}

// Load reads configuration from a YAML file. A .env file next to the process
// is loaded first so its values can override the YAML.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setString(dst *string, key string) {
	if val := os.Getenv(key); val != "" {
		*dst = val
	}
}

func setInt(dst *int, key string) {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			*dst = n
		}
	}
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Server
	setString(&c.Server.Host, "SERVER_HOST")
	setInt(&c.Server.Port, "SERVER_PORT")

	// Backend
	setString(&c.Backend.Mode, "BACKEND_MODE")
	setString(&c.Backend.REST.BaseURL, "API_BASE_URL")
	setString(&c.Backend.Mongo.URI, "MONGO_URI")
	setString(&c.Backend.Mongo.Database, "MONGO_DATABASE")

	// Session
	setString(&c.Session.Path, "SESSION_DB_PATH")

	// Audit
	if val := os.Getenv("AUDIT_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			c.Audit.Enabled = b
		}
	}
	setString(&c.Audit.Host, "AUDIT_DB_HOST")
	setInt(&c.Audit.Port, "AUDIT_DB_PORT")
	setString(&c.Audit.User, "AUDIT_DB_USER")
	setString(&c.Audit.Password, "AUDIT_DB_PASSWORD")
	setString(&c.Audit.Database, "AUDIT_DB_NAME")
	setString(&c.Audit.SSLMode, "AUDIT_DB_SSL_MODE")

	// SMTP
	setString(&c.SMTP.Host, "SMTP_HOST")
	setInt(&c.SMTP.Port, "SMTP_PORT")
	setString(&c.SMTP.User, "SMTP_USER")
	setString(&c.SMTP.Password, "SMTP_PASSWORD")
	setString(&c.SMTP.From, "SMTP_FROM")

	// JWT
	setString(&c.JWT.Secret, "JWT_SECRET")

	// Scheduler
	if val := os.Getenv("SCHEDULER_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			c.Scheduler.Enabled = b
		}
	}
	setString(&c.Scheduler.DashboardRefresh, "SCHEDULER_DASHBOARD_REFRESH")

	// Log
	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.Format, "LOG_FORMAT")

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid and fills defaults
func (c *Config) Validate() error {
	if c.Server.Host == "" {
		c.Server.Host = "127.0.0.1"
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Backend.Mode == "" {
		c.Backend.Mode = BackendREST
	}
	switch c.Backend.Mode {
	case BackendREST:
		if c.Backend.REST.BaseURL == "" {
			c.Backend.REST.BaseURL = "http://localhost:3001/api"
		}
		if c.Backend.REST.TimeoutSeconds <= 0 {
			c.Backend.REST.TimeoutSeconds = 15
		}
	case BackendMongo:
		m := &c.Backend.Mongo
		if m.URI == "" {
			return fmt.Errorf("mongo uri is required in mongo mode")
		}
		if m.Database == "" {
			return fmt.Errorf("mongo database is required in mongo mode")
		}
		if m.UsersCollection == "" {
			m.UsersCollection = "users"
		}
		if m.JobsCollection == "" {
			m.JobsCollection = "jobs"
		}
		if m.PendingJobsCollection == "" {
			m.PendingJobsCollection = "pendingjobs"
		}
		if m.BookingsCollection == "" {
			m.BookingsCollection = "bookings"
		}
		if m.TimeoutSeconds <= 0 {
			m.TimeoutSeconds = 10
		}
		if c.JWT.Secret == "" {
			return fmt.Errorf("JWT secret is required in mongo mode")
		}
		if len(c.JWT.Secret) < 32 {
			return fmt.Errorf("JWT secret must be at least 32 characters")
		}
		if c.JWT.AccessTokenExpiry <= 0 {
			c.JWT.AccessTokenExpiry = 12 * 60
		}
	default:
		return fmt.Errorf("unknown backend mode %q", c.Backend.Mode)
	}

	if c.Session.Store == "" {
		c.Session.Store = "sqlite"
	}
	if c.Session.Store == "sqlite" && c.Session.Path == "" {
		c.Session.Path = "data/session.db"
	}

	if c.Audit.Enabled {
		if c.Audit.Host == "" {
			return fmt.Errorf("audit database host is required")
		}
		if c.Audit.User == "" {
			return fmt.Errorf("audit database user is required")
		}
		if c.Audit.Database == "" {
			return fmt.Errorf("audit database name is required")
		}
		if c.Audit.Port == 0 {
			c.Audit.Port = 5432
		}
		if c.Audit.SSLMode == "" {
			c.Audit.SSLMode = "disable"
		}
	}

	if c.SMTP.Host != "" && (c.SMTP.Port <= 0 || c.SMTP.Port > 65535) {
		return fmt.Errorf("invalid SMTP port: %d", c.SMTP.Port)
	}

	if c.Scheduler.DashboardRefresh == "" {
		c.Scheduler.DashboardRefresh = "0 */5 * * * *" // every 5 minutes
	}
	if c.Scheduler.SessionCheck == "" {
		c.Scheduler.SessionCheck = "0 * * * * *"
	}
	if c.Scheduler.JobTimeoutSeconds <= 0 {
		c.Scheduler.JobTimeoutSeconds = 60
	}

	return nil
}

// GetAuditConnectionString returns a PostgreSQL connection string
func (c *Config) GetAuditConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Audit.User,
		c.Audit.Password,
		c.Audit.Host,
		c.Audit.Port,
		c.Audit.Database,
		c.Audit.SSLMode,
	)
}

// GetServerAddress returns the admin API listen address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) RESTTimeout() time.Duration {
	return time.Duration(c.Backend.REST.TimeoutSeconds) * time.Second
}

func (c *Config) MongoTimeout() time.Duration {
	return time.Duration(c.Backend.Mongo.TimeoutSeconds) * time.Second
}

func (c *Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.JWT.AccessTokenExpiry) * time.Minute
}

// EmailEnabled reports whether account-status e-mails should be sent
func (c *Config) EmailEnabled() bool {
	return c.SMTP.Host != ""
}

func (c *Config) JobTimeout() time.Duration {
	return time.Duration(c.Scheduler.JobTimeoutSeconds) * time.Second
}
