package http

import (
	"context"

	auditrepo "github.com/mrlokans/faculty/internal/database/audit"
	"github.com/mrlokans/faculty/internal/entities"
	"github.com/mrlokans/faculty/internal/services"
)

// StudentStore is the student aggregate surface the controllers need.
type StudentStore interface {
	CreateStudent(ctx context.Context, in services.StudentCreate) (*services.StudentRead, error)
	GetStudent(ctx context.Context, id uint) (*services.StudentRead, bool, error)
	DeleteStudent(ctx context.Context, id uint) (bool, error)
	DeleteStudentsByStatus(ctx context.Context, status entities.StudentStatus) (int64, error)
	UpdateStudent(ctx context.Context, id uint, in services.StudentUpdate) (*services.StudentRead, bool, error)
	FilterStudents(ctx context.Context, f services.StudentFilter) ([]services.StudentRead, error)
}

// GradeStore defines grade operations.
type GradeStore interface {
	CreateGrade(ctx context.Context, in services.GradeCreate) (*services.GradeRead, services.RejectReason, error)
	GetGrade(ctx context.Context, id uint) (*services.GradeRead, bool, error)
	DeleteGrade(ctx context.Context, id uint) (bool, error)
}

// AuditStore reads the audit trail.
type AuditStore interface {
	GetEvents(ctx context.Context, q auditrepo.Query, limit, offset int) ([]entities.AuditEvent, int64, error)
}
