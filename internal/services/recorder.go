package services

import (
	"context"

	"github.com/mrlokans/faculty/internal/entities"
)

// AuditRecorder receives committed mutations and rolled-back failures.
// Implementations must not fail the caller.
type AuditRecorder interface {
	LogCreate(ctx context.Context, entityType string, entityID uint, description string)
	LogUpdate(ctx context.Context, entityType string, entityID uint, changed []string)
	LogDelete(ctx context.Context, entityType string, entityID uint)
	LogBulkDelete(ctx context.Context, status entities.StudentStatus, deleted int64)
	LogFailure(ctx context.Context, eventType entities.AuditEventType, action, entityType string, err error)
}

type nopRecorder struct{}

func (nopRecorder) LogCreate(context.Context, string, uint, string)                            {}
func (nopRecorder) LogUpdate(context.Context, string, uint, []string)                          {}
func (nopRecorder) LogDelete(context.Context, string, uint)                                    {}
func (nopRecorder) LogBulkDelete(context.Context, entities.StudentStatus, int64)               {}
func (nopRecorder) LogFailure(context.Context, entities.AuditEventType, string, string, error) {}
