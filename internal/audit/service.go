package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mrlokans/faculty/internal/database/audit"
	"github.com/mrlokans/faculty/internal/entities"
	"github.com/mrlokans/faculty/internal/logger"
	"github.com/mrlokans/faculty/internal/requestid"
)

const (
	EntityStudent = "student"
	EntityGrade   = "grade"
)

// Service provides high-level audit logging functionality.
type Service struct {
	repo *audit.Repository
	log  *logger.Logger
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{repo: repo, log: log.Named("audit")}
}

// Log records an event. Failures are logged and swallowed: the audit trail
// never fails the mutation it describes.
func (s *Service) Log(ctx context.Context, event *entities.AuditEvent) {
	if event.RequestID == "" {
		event.RequestID = requestid.FromContext(ctx)
	}
	if err := s.repo.LogEvent(ctx, event); err != nil {
		s.log.Warn("Failed to log audit event", "action", event.Action, "error", err)
	}
}

// LogCreate records a successful create of one entity.
func (s *Service) LogCreate(ctx context.Context, entityType string, entityID uint, description string) {
	s.Log(ctx, &entities.AuditEvent{
		EventType:   entities.AuditEventCreate,
		Action:      entityType + "_create",
		Description: description,
		EntityType:  entityType,
		EntityID:    &entityID,
		Status:      entities.AuditStatusSuccess,
	})
}

// LogUpdate records a successful update with the names of the changed fields.
func (s *Service) LogUpdate(ctx context.Context, entityType string, entityID uint, changed []string) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventUpdate,
		Action:      entityType + "_update",
		Description: fmt.Sprintf("Updated %s %d", entityType, entityID),
		EntityType:  entityType,
		EntityID:    &entityID,
		Status:      entities.AuditStatusSuccess,
	}
	event.Metadata = marshalMetadata(map[string]any{"fields": changed})
	s.Log(ctx, event)
}

// LogDelete records a deletion event.
func (s *Service) LogDelete(ctx context.Context, entityType string, entityID uint) {
	s.Log(ctx, &entities.AuditEvent{
		EventType:   entities.AuditEventDelete,
		Action:      entityType + "_delete",
		Description: fmt.Sprintf("Deleted %s %d", entityType, entityID),
		EntityType:  entityType,
		EntityID:    &entityID,
		Status:      entities.AuditStatusSuccess,
	})
}

// LogBulkDelete records a delete-by-status run.
func (s *Service) LogBulkDelete(ctx context.Context, status entities.StudentStatus, deleted int64) {
	event := &entities.AuditEvent{
		EventType:   entities.AuditEventDelete,
		Action:      "students_delete_by_status",
		Description: fmt.Sprintf("Deleted %d students with status %s", deleted, status),
		EntityType:  EntityStudent,
		Status:      entities.AuditStatusSuccess,
	}
	event.Metadata = marshalMetadata(map[string]any{"status": status, "deleted": deleted})
	s.Log(ctx, event)
}

// LogFailure records a mutation that was rolled back.
func (s *Service) LogFailure(ctx context.Context, eventType entities.AuditEventType, action, entityType string, err error) {
	s.Log(ctx, &entities.AuditEvent{
		EventType:  eventType,
		Action:     action,
		EntityType: entityType,
		Status:     entities.AuditStatusFailed,
		ErrorMsg:   truncate(err.Error(), 500),
	})
}

// GetEvents retrieves paginated audit events.
func (s *Service) GetEvents(ctx context.Context, q audit.Query, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEvents(ctx, q, limit, offset)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	return s.repo.DeleteOldEvents(ctx, cutoff)
}

func marshalMetadata(metadata map[string]any) string {
	b, err := json.Marshal(metadata)
	if err != nil {
		return ""
	}
	return string(b)
}

// truncate shortens a string to max length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
