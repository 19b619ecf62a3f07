package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/faculty/internal/audit"
	"github.com/mrlokans/faculty/internal/database"
	"github.com/mrlokans/faculty/internal/database/students"
	"github.com/mrlokans/faculty/internal/entities"
	"github.com/mrlokans/faculty/internal/filters"
	"github.com/mrlokans/faculty/internal/logger"
)

// StudentService owns the student aggregate: a student, its contact and its grades.
type StudentService struct {
	db    *gorm.DB
	tx    TxRunner
	audit AuditRecorder
	log   *logger.Logger
}

// NewStudentService wires the service. A nil tx runs on gorm transactions over db,
// a nil recorder disables the audit trail.
func NewStudentService(db *gorm.DB, tx TxRunner, recorder AuditRecorder, log *logger.Logger) *StudentService {
	if tx == nil {
		tx = NewGormTxRunner(db)
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &StudentService{db: db, tx: tx, audit: recorder, log: log.Named("students")}
}

// CreateStudent inserts the student and its contact in one transaction.
func (s *StudentService) CreateStudent(ctx context.Context, in StudentCreate) (*StudentRead, error) {
	s.log.Info("Creating student", "last_name", in.LastName, "group", in.Group)

	student := newStudent(in)
	err := s.tx.InTx(ctx, func(tx *gorm.DB) error {
		return students.NewRepository(tx).Create(ctx, student)
	})
	if err != nil {
		s.log.Error("Failed to create student", "error", err)
		s.audit.LogFailure(ctx, entities.AuditEventCreate, "student_create", audit.EntityStudent, err)
		return nil, newDatabaseError("students.create", "student creation failed", err)
	}

	s.log.Info("Student created successfully", "id", student.ID)
	s.audit.LogCreate(ctx, audit.EntityStudent, student.ID,
		fmt.Sprintf("Created student %s %s", student.FirstName, student.LastName))

	out := toStudentRead(student)
	return &out, nil
}

// GetStudent loads one student aggregate. The bool is false when no such student exists.
func (s *StudentService) GetStudent(ctx context.Context, id uint) (*StudentRead, bool, error) {
	student, err := students.NewRepository(s.db).GetByID(ctx, id)
	if database.IsNotFound(err) {
		return nil, false, nil
	}
	if err != nil {
		s.log.Error("Failed to load student", "id", id, "error", err)
		return nil, false, newDatabaseError("students.get", "student lookup failed", err)
	}
	out := toStudentRead(student)
	return &out, true, nil
}

// DeleteStudent removes a student with its contact and grades. Returns false if absent.
func (s *StudentService) DeleteStudent(ctx context.Context, id uint) (bool, error) {
	s.log.Info("Deleting student", "id", id)

	var deleted bool
	err := s.tx.InTx(ctx, func(tx *gorm.DB) error {
		n, err := students.NewRepository(tx).Delete(ctx, id)
		if err != nil {
			return err
		}
		deleted = n > 0
		return nil
	})
	if err != nil {
		s.log.Error("Failed to delete student", "id", id, "error", err)
		s.audit.LogFailure(ctx, entities.AuditEventDelete, "student_delete", audit.EntityStudent, err)
		return false, newDatabaseError("students.delete", "student deletion failed", err)
	}
	if !deleted {
		s.log.Warn("Student not found", "id", id)
		return false, nil
	}

	s.log.Info("Student deleted successfully", "id", id)
	s.audit.LogDelete(ctx, audit.EntityStudent, id)
	return true, nil
}

// DeleteStudentsByStatus removes every student with the status and returns how many went.
func (s *StudentService) DeleteStudentsByStatus(ctx context.Context, status entities.StudentStatus) (int64, error) {
	s.log.Info("Deleting students by status", "status", status)

	var deleted int64
	err := s.tx.InTx(ctx, func(tx *gorm.DB) error {
		n, err := students.NewRepository(tx).DeleteByStatus(ctx, status)
		deleted = n
		return err
	})
	if err != nil {
		s.log.Error("Failed to delete students by status", "status", status, "error", err)
		s.audit.LogFailure(ctx, entities.AuditEventDelete, "students_delete_by_status", audit.EntityStudent, err)
		return 0, newDatabaseError("students.delete_by_status", "student deletion by status failed", err)
	}

	s.log.Info("Deleted students by status", "status", status, "deleted", deleted)
	if deleted > 0 {
		s.audit.LogBulkDelete(ctx, status, deleted)
	}
	return deleted, nil
}

// CountStudentsByStatus returns how many students have the status.
func (s *StudentService) CountStudentsByStatus(ctx context.Context, status entities.StudentStatus) (int64, error) {
	n, err := students.NewRepository(s.db).CountByStatus(ctx, status)
	if err != nil {
		s.log.Error("Failed to count students by status", "status", status, "error", err)
		return 0, newDatabaseError("students.count_by_status", "student count by status failed", err)
	}
	return n, nil
}

// UpdateStudent applies the present fields of in. Returns false if the student is absent.
// A contact update for a student without one must carry a phone, otherwise
// ErrContactPhoneRequired is returned and nothing is written.
func (s *StudentService) UpdateStudent(ctx context.Context, id uint, in StudentUpdate) (*StudentRead, bool, error) {
	s.log.Info("Updating student", "id", id)

	var (
		updated *entities.Student
		changed []string
	)
	err := s.tx.InTx(ctx, func(tx *gorm.DB) error {
		repo := students.NewRepository(tx)
		student, err := repo.GetByID(ctx, id)
		if database.IsNotFound(err) {
			return nil
		}
		if err != nil {
			return err
		}

		changed, err = applyStudentUpdate(student, in)
		if err != nil {
			return err
		}
		if err := repo.Update(ctx, student); err != nil {
			return err
		}
		if in.Contact != nil {
			if err := repo.SaveContact(ctx, student.Contact); err != nil {
				return err
			}
		}
		updated = student
		return nil
	})
	if errors.Is(err, ErrContactPhoneRequired) {
		s.log.Warn("Rejected student update", "id", id, "error", err)
		return nil, true, err
	}
	if err != nil {
		s.log.Error("Failed to update student", "id", id, "error", err)
		s.audit.LogFailure(ctx, entities.AuditEventUpdate, "student_update", audit.EntityStudent, err)
		return nil, false, newDatabaseError("students.update", "student update failed", err)
	}
	if updated == nil {
		s.log.Warn("Student not found", "id", id)
		return nil, false, nil
	}

	s.log.Info("Student updated successfully", "id", id, "fields", changed)
	s.audit.LogUpdate(ctx, audit.EntityStudent, id, changed)

	out := toStudentRead(updated)
	return &out, true, nil
}

// FilterStudents returns one page of students matching every present filter field.
func (s *StudentService) FilterStudents(ctx context.Context, f StudentFilter) ([]StudentRead, error) {
	b := filters.FromStudentFilter(f)
	page := b.Pagination()
	s.log.Info("Filtering students", "predicates", len(b.Predicates()), "limit", page.Limit, "offset", page.Offset)

	found, err := students.NewRepository(s.db).Find(ctx, b.Scope)
	if err != nil {
		s.log.Error("Failed to filter students", "error", err)
		return nil, newDatabaseError("students.filter", "student filtering failed", err)
	}

	out := make([]StudentRead, 0, len(found))
	for i := range found {
		out = append(out, toStudentRead(&found[i]))
	}
	s.log.Info("Filtered students", "count", len(out))
	return out, nil
}
