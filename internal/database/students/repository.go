// Package students provides database operations for student rows and their contact info.
//
// Repositories are bound to whatever *gorm.DB they are built with, so services
// create one per transaction:
//
//	err := db.Transaction(func(tx *gorm.DB) error {
//	    return students.NewRepository(tx).Create(ctx, student)
//	})
package students

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/faculty/internal/entities"
)

// Repository handles all student database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new students repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the student together with its contact row.
func (r *Repository) Create(ctx context.Context, student *entities.Student) error {
	return r.db.WithContext(ctx).Omit("Grades").Create(student).Error
}

// GetByID loads a student with contact and grades. Returns gorm.ErrRecordNotFound if absent.
func (r *Repository) GetByID(ctx context.Context, id uint) (*entities.Student, error) {
	var student entities.Student
	err := r.withAggregate(r.db.WithContext(ctx)).First(&student, id).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// Exists reports whether a student with the given id is stored.
func (r *Repository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Student{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// Update writes the student's own columns. The contact is saved separately with SaveContact.
func (r *Repository) Update(ctx context.Context, student *entities.Student) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(student).Error
}

// SaveContact inserts or updates the contact row for a student.
func (r *Repository) SaveContact(ctx context.Context, contact *entities.ContactInfo) error {
	return r.db.WithContext(ctx).Save(contact).Error
}

// Delete removes a student by id. Contact and grades go with it through the FK cascade.
// Returns the number of deleted rows.
func (r *Repository) Delete(ctx context.Context, id uint) (int64, error) {
	result := r.db.WithContext(ctx).Delete(&entities.Student{}, id)
	return result.RowsAffected, result.Error
}

// DeleteByStatus removes every student with the given status in one statement.
func (r *Repository) DeleteByStatus(ctx context.Context, status entities.StudentStatus) (int64, error) {
	result := r.db.WithContext(ctx).Where("status = ?", status).Delete(&entities.Student{})
	return result.RowsAffected, result.Error
}

// Find returns students matching the given scopes, with contact and grades loaded.
func (r *Repository) Find(ctx context.Context, scopes ...func(*gorm.DB) *gorm.DB) ([]entities.Student, error) {
	var result []entities.Student
	err := r.withAggregate(r.db.WithContext(ctx).Model(&entities.Student{})).
		Scopes(scopes...).
		Find(&result).Error
	return result, err
}

// CountByStatus returns how many students have the given status.
func (r *Repository) CountByStatus(ctx context.Context, status entities.StudentStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Student{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

// Preloads use separate IN queries so each student appears once.
func (r *Repository) withAggregate(db *gorm.DB) *gorm.DB {
	return db.Preload("Contact").Preload("Grades", func(db *gorm.DB) *gorm.DB {
		return db.Order("grades.id ASC")
	})
}
