package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/mrlokans/faculty/internal/config"
	"github.com/mrlokans/faculty/internal/entities"
	"github.com/mrlokans/faculty/internal/logger"
)

// Database owns the connection pool. Create it once at startup and Close it on shutdown.
type Database struct {
	DB *gorm.DB
}

func NewDatabase(cfg config.Database, log *logger.Logger) (*Database, error) {
	if log == nil {
		log = logger.NewNop()
	}

	dialector, err := openDialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         newGormLogger(cfg.LogLevel, log),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}
	if cfg.PoolSize > 0 {
		sqlDB.SetMaxIdleConns(cfg.PoolSize)
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns())
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	// Auto-migrate all entities
	err = db.AutoMigrate(
		&entities.Student{},
		&entities.ContactInfo{},
		&entities.Grade{},
		&entities.AuditEvent{},
	)
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Info("Database initialized", "driver", string(cfg.Driver), "pool_size", cfg.PoolSize, "max_open", cfg.MaxOpenConns())

	return &Database{DB: db}, nil
}

func openDialector(cfg config.Database) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return postgres.Open(cfg.DSN()), nil
	case config.DriverSQLite, "":
		return sqlite.Open(sqliteDSN(cfg.Path)), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// sqliteDSN turns on foreign key enforcement so ON DELETE CASCADE applies.
func sqliteDSN(path string) string {
	if strings.Contains(path, "_foreign_keys") || strings.Contains(path, "_fk=") {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=1"
}

func newGormLogger(level string, log *logger.Logger) gormLogger.Interface {
	lvl := gormLogger.Warn
	switch strings.ToLower(level) {
	case "silent":
		lvl = gormLogger.Silent
	case "error":
		lvl = gormLogger.Error
	case "info":
		lvl = gormLogger.Info
	}

	writer := zap.NewStdLog(log.Named("gorm").SugaredLogger.Desugar())
	return gormLogger.New(writer, gormLogger.Config{
		SlowThreshold:             time.Second,
		LogLevel:                  lvl,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

// Ping checks that a connection can be obtained from the pool.
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
