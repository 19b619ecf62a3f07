package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/faculty/internal/audit"
	"github.com/mrlokans/faculty/internal/database"
	"github.com/mrlokans/faculty/internal/database/grades"
	"github.com/mrlokans/faculty/internal/database/students"
	"github.com/mrlokans/faculty/internal/entities"
	"github.com/mrlokans/faculty/internal/logger"
)

// GradeService owns grade writes and reads, checking the owning student first.
type GradeService struct {
	db    *gorm.DB
	tx    TxRunner
	audit AuditRecorder
	log   *logger.Logger
}

// NewGradeService wires the service with the same defaults as NewStudentService.
func NewGradeService(db *gorm.DB, tx TxRunner, recorder AuditRecorder, log *logger.Logger) *GradeService {
	if tx == nil {
		tx = NewGormTxRunner(db)
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &GradeService{db: db, tx: tx, audit: recorder, log: log.Named("grades")}
}

// CreateGrade adds a grade unless the student is missing or already graded for
// the course; those cases come back as a RejectReason with a nil error.
// The pre-checks are advisory: when a concurrent insert wins, the unique index
// rejects this one and a DatabaseError with Constraint set is returned.
func (s *GradeService) CreateGrade(ctx context.Context, in GradeCreate) (*GradeRead, RejectReason, error) {
	s.log.Info("Creating grade", "student_id", in.StudentID, "course", in.CourseName, "score", in.Score)

	grade := &entities.Grade{
		StudentID:  in.StudentID,
		CourseName: in.CourseName,
		Score:      in.Score,
		Date:       in.Date,
	}
	reason := RejectNone
	err := s.tx.InTx(ctx, func(tx *gorm.DB) error {
		exists, err := students.NewRepository(tx).Exists(ctx, in.StudentID)
		if err != nil {
			return err
		}
		if !exists {
			reason = RejectStudentNotFound
			return nil
		}

		repo := grades.NewRepository(tx)
		dup, err := repo.ExistsForCourse(ctx, in.StudentID, in.CourseName)
		if err != nil {
			return err
		}
		if dup {
			reason = RejectDuplicateGrade
			return nil
		}
		return repo.Create(ctx, grade)
	})
	if err != nil {
		s.audit.LogFailure(ctx, entities.AuditEventCreate, "grade_create", audit.EntityGrade, err)
		if database.IsUniqueViolation(err) {
			s.log.Error("Grade violates constraints", "student_id", in.StudentID, "course", in.CourseName, "error", err)
			dbErr := newDatabaseError("grades.create", "grade violates database constraints", err)
			dbErr.Constraint = true
			return nil, RejectNone, dbErr
		}
		s.log.Error("Failed to create grade", "student_id", in.StudentID, "error", err)
		return nil, RejectNone, newDatabaseError("grades.create", "failed to add grade", err)
	}

	switch reason {
	case RejectStudentNotFound:
		s.log.Warn("Student not found, cannot create grade", "student_id", in.StudentID)
		return nil, reason, nil
	case RejectDuplicateGrade:
		s.log.Warn("Grade already exists", "student_id", in.StudentID, "course", in.CourseName)
		return nil, reason, nil
	}

	s.log.Info("Grade created successfully", "id", grade.ID, "student_id", in.StudentID, "course", in.CourseName)
	s.audit.LogCreate(ctx, audit.EntityGrade, grade.ID,
		fmt.Sprintf("Graded student %d in %s: %s", grade.StudentID, grade.CourseName, grade.Score))

	out := toGradeRead(grade)
	return &out, RejectNone, nil
}

// GetGrade loads one grade. The bool is false when no such grade exists.
func (s *GradeService) GetGrade(ctx context.Context, id uint) (*GradeRead, bool, error) {
	grade, err := grades.NewRepository(s.db).GetByID(ctx, id)
	if database.IsNotFound(err) {
		return nil, false, nil
	}
	if err != nil {
		s.log.Error("Failed to load grade", "id", id, "error", err)
		return nil, false, newDatabaseError("grades.get", "grade lookup failed", err)
	}
	out := toGradeRead(grade)
	return &out, true, nil
}

// DeleteGrade removes a grade by id. Returns false if absent.
func (s *GradeService) DeleteGrade(ctx context.Context, id uint) (bool, error) {
	s.log.Info("Deleting grade", "id", id)

	var deleted bool
	err := s.tx.InTx(ctx, func(tx *gorm.DB) error {
		n, err := grades.NewRepository(tx).Delete(ctx, id)
		if err != nil {
			return err
		}
		deleted = n > 0
		return nil
	})
	if err != nil {
		s.log.Error("Failed to delete grade", "id", id, "error", err)
		s.audit.LogFailure(ctx, entities.AuditEventDelete, "grade_delete", audit.EntityGrade, err)
		return false, newDatabaseError("grades.delete", "failed to delete grade", err)
	}
	if !deleted {
		s.log.Warn("Grade not found", "id", id)
		return false, nil
	}

	s.log.Info("Grade deleted successfully", "id", id)
	s.audit.LogDelete(ctx, audit.EntityGrade, id)
	return true, nil
}
