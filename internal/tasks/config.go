package tasks

import (
	"time"

	"github.com/mrlokans/faculty/internal/config"
)

// Config holds configuration for the task queue system.
type Config struct {
	// DatabasePath is the dedicated SQLite file backing the queue.
	DatabasePath string

	// Workers is the number of concurrent task workers. Default: 1
	Workers int

	// ReleaseAfter is when stuck tasks are released back to queue. Default: 15m
	ReleaseAfter time.Duration

	// CleanupInterval is how often to clean up completed tasks. Default: 1h
	CleanupInterval time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DatabasePath:    config.DefaultTasksDatabasePath,
		Workers:         1,
		ReleaseAfter:    15 * time.Minute,
		CleanupInterval: 1 * time.Hour,
	}
}

// ConfigFrom fills a Config from application settings, keeping defaults for unset values.
func ConfigFrom(settings config.Tasks) Config {
	cfg := DefaultConfig()
	if settings.DatabasePath != "" {
		cfg.DatabasePath = settings.DatabasePath
	}
	if settings.Workers > 0 {
		cfg.Workers = settings.Workers
	}
	if settings.ReleaseAfter > 0 {
		cfg.ReleaseAfter = settings.ReleaseAfter
	}
	if settings.CleanupInterval > 0 {
		cfg.CleanupInterval = settings.CleanupInterval
	}
	return cfg
}
