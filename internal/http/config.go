package http

import (
	"github.com/mrlokans/faculty/internal/database"
	"github.com/mrlokans/faculty/internal/logger"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Students StudentStore
	Grades   GradeStore
	Audit    AuditStore // optional, /audit/events is not mounted without it
	Database *database.Database

	Logger *logger.Logger

	// Allowed CORS origins; empty disables CORS handling
	CORSOrigins []string

	// Application info
	Version string
}
