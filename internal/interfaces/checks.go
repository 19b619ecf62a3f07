package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/faculty/internal/audit"
	"github.com/mrlokans/faculty/internal/cli"
	"github.com/mrlokans/faculty/internal/http"
	"github.com/mrlokans/faculty/internal/scheduler"
	"github.com/mrlokans/faculty/internal/services"
	"github.com/mrlokans/faculty/internal/tasks"
)

// =============================================================================
// Aggregate Services
// =============================================================================

// Transport stores
var _ http.StudentStore = (*services.StudentService)(nil)
var _ http.GradeStore = (*services.GradeService)(nil)
var _ http.AuditStore = (*audit.Service)(nil)

// Command stores
var _ cli.StatusDeleter = (*services.StudentService)(nil)
var _ cli.StudentFinder = (*services.StudentService)(nil)

// =============================================================================
// Audit Trail
// =============================================================================

// AuditRecorder implementations
var _ services.AuditRecorder = (*audit.Service)(nil)

// Retention
var _ tasks.AuditEventCleaner = (*audit.Service)(nil)
var _ scheduler.CleanupEnqueuer = (*tasks.Client)(nil)
var _ scheduler.CleanupEnqueuer = tasks.InlineAuditCleanup{}
