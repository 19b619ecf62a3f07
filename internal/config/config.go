package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type DatabaseDriver string

const (
	DriverSQLite   DatabaseDriver = "sqlite"   // Local file database (default)
	DriverPostgres DatabaseDriver = "postgres" // PostgreSQL server built from PG_* settings
)

type (
	Config struct {
		HTTP
		Global
		Database
		Log
		Audit
		Tasks
		CORS
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Driver   DatabaseDriver
		Path     string // SQLite file, ignored for postgres
		User     string
		Password string
		Host     string
		Port     int
		Name     string
		SSLMode  string

		// Pool budget: PoolSize steady connections plus up to MaxOverflow extra.
		PoolSize        int
		MaxOverflow     int
		ConnMaxLifetime time.Duration

		LogLevel string // gorm logger: silent, error, warn, info
	}
	Log struct {
		Mode  string // development or production
		Level string
		File  string // optional extra sink
	}
	Audit struct {
		RetentionDays   int
		CleanupSchedule string // Cron format: "0 3 * * *" = daily at 03:00
	}
	Tasks struct {
		Enabled         bool
		DatabasePath    string
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
	CORS struct {
		AllowOrigins []string
	}
)

// DSN returns the postgres connection URL built from the individual settings.
func (d Database) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   "/" + d.Name,
	}
	if d.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": []string{d.SSLMode}}.Encode()
	}
	return u.String()
}

// MaxOpenConns is the hard connection ceiling for the pool.
func (d Database) MaxOpenConns() int {
	if d.PoolSize <= 0 {
		return 0
	}
	overflow := d.MaxOverflow
	if overflow < 0 {
		overflow = 0
	}
	return d.PoolSize + overflow
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// NewConfig reads configuration from the environment, falling back to defaults.
// If CONFIG_FILE points at a file (.env, .yaml, .toml...) it is merged first.
func NewConfig() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8000)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)

	// Database defaults
	v.SetDefault("db_driver", string(DriverSQLite))
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("pg_user", "postgres")
	v.SetDefault("pg_password", "")
	v.SetDefault("pg_host", "localhost")
	v.SetDefault("pg_port", 5432)
	v.SetDefault("pg_db", "faculty")
	v.SetDefault("pg_sslmode", "disable")
	v.SetDefault("db_pool_size", 5)
	v.SetDefault("db_max_overflow", 10)
	v.SetDefault("db_conn_max_lifetime", "30m")
	v.SetDefault("db_log_level", "warn")

	// Logging defaults
	v.SetDefault("log_mode", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")

	// Audit defaults
	v.SetDefault("audit_retention_days", 30)
	v.SetDefault("audit_cleanup_schedule", "0 3 * * *")

	// Task queue defaults
	v.SetDefault("tasks_enabled", true)
	v.SetDefault("tasks_database_path", DefaultTasksDatabasePath)
	v.SetDefault("task_workers", 1)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	v.SetDefault("cors_allow_origins", "http://localhost:3000,http://127.0.0.1:3000")

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	cfg := &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Driver:          DatabaseDriver(strings.ToLower(v.GetString("DB_DRIVER"))),
			Path:            v.GetString("DATABASE_PATH"),
			User:            v.GetString("PG_USER"),
			Password:        v.GetString("PG_PASSWORD"),
			Host:            v.GetString("PG_HOST"),
			Port:            v.GetInt("PG_PORT"),
			Name:            v.GetString("PG_DB"),
			SSLMode:         v.GetString("PG_SSLMODE"),
			PoolSize:        v.GetInt("DB_POOL_SIZE"),
			MaxOverflow:     v.GetInt("DB_MAX_OVERFLOW"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
			LogLevel:        v.GetString("DB_LOG_LEVEL"),
		},
		Log: Log{
			Mode:  v.GetString("LOG_MODE"),
			Level: v.GetString("LOG_LEVEL"),
			File:  v.GetString("LOG_FILE"),
		},
		Audit: Audit{
			RetentionDays:   v.GetInt("AUDIT_RETENTION_DAYS"),
			CleanupSchedule: v.GetString("AUDIT_CLEANUP_SCHEDULE"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			DatabasePath:    v.GetString("TASKS_DATABASE_PATH"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		CORS: CORS{
			AllowOrigins: splitList(v.GetString("CORS_ALLOW_ORIGINS")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("DATABASE_PATH is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.Database.User == "" || c.Database.Host == "" || c.Database.Name == "" {
			return fmt.Errorf("PG_USER, PG_HOST and PG_DB are required for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	if c.Database.PoolSize < 0 || c.Database.MaxOverflow < 0 {
		return fmt.Errorf("DB_POOL_SIZE and DB_MAX_OVERFLOW must not be negative")
	}
	return nil
}
