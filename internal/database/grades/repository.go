// Package grades provides database operations for per-course grades.
package grades

import (
	"context"

	"gorm.io/gorm"

	"github.com/mrlokans/faculty/internal/entities"
)

// Repository handles all grade database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new grades repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a grade. A second grade for the same student and course
// fails with a unique violation.
func (r *Repository) Create(ctx context.Context, grade *entities.Grade) error {
	return r.db.WithContext(ctx).Create(grade).Error
}

// GetByID retrieves a grade by ID. Returns gorm.ErrRecordNotFound if absent.
func (r *Repository) GetByID(ctx context.Context, id uint) (*entities.Grade, error) {
	var grade entities.Grade
	err := r.db.WithContext(ctx).First(&grade, id).Error
	if err != nil {
		return nil, err
	}
	return &grade, nil
}

// ExistsForCourse reports whether the student already has a grade for the course.
func (r *Repository) ExistsForCourse(ctx context.Context, studentID uint, courseName string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Grade{}).
		Where("student_id = ? AND course_name = ?", studentID, courseName).
		Count(&count).Error
	return count > 0, err
}

// Delete removes a grade by id and returns the number of deleted rows.
func (r *Repository) Delete(ctx context.Context, id uint) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&entities.Grade{}, id)
	return result.RowsAffected, result.Error
}
