// Package testutil holds helpers shared by package tests.
package testutil

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mrlokans/faculty/internal/config"
	"github.com/mrlokans/faculty/internal/database"
	"github.com/mrlokans/faculty/internal/entities"
)

// NewTestDatabase opens a migrated sqlite database in a per-test directory.
// A file is used rather than :memory: so every pooled connection sees the same data.
func NewTestDatabase(t *testing.T) *database.Database {
	t.Helper()
	db, err := database.NewDatabase(config.Database{
		Driver:   config.DriverSQLite,
		Path:     filepath.Join(t.TempDir(), "faculty_test.db"),
		PoolSize: 2,
		LogLevel: "silent",
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// NewTestDB is NewTestDatabase for callers that only need the gorm handle.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return NewTestDatabase(t).DB
}

// StudentOption tweaks a seeded student before it is inserted.
type StudentOption func(*entities.Student)

func WithStatus(status entities.StudentStatus) StudentOption {
	return func(s *entities.Student) { s.Status = status }
}

func WithGroup(group string) StudentOption {
	return func(s *entities.Student) { s.Group = group }
}

func WithBirthDate(date entities.Date) StudentOption {
	return func(s *entities.Student) { s.BirthDate = date }
}

func WithEmail(email string) StudentOption {
	return func(s *entities.Student) { s.Contact.Email = &email }
}

func WithoutContact() StudentOption {
	return func(s *entities.Student) { s.Contact = nil }
}

func WithGrades(grades ...entities.Grade) StudentOption {
	return func(s *entities.Student) { s.Grades = append(s.Grades, grades...) }
}

// SeedStudent inserts a student with a phone-only contact.
func SeedStudent(t *testing.T, db *gorm.DB, lastName string, opts ...StudentOption) *entities.Student {
	t.Helper()
	student := &entities.Student{
		FirstName: "Test",
		LastName:  lastName,
		BirthDate: entities.NewDate(2000, time.January, 1),
		Status:    entities.StudentStatusActive,
		Group:     "A-1",
		Contact:   &entities.ContactInfo{Phone: "+10000000000"},
	}
	for _, opt := range opts {
		opt(student)
	}
	require.NoError(t, db.Create(student).Error)
	return student
}

// Grade builds an unsaved grade for use with WithGrades.
func Grade(course string, score entities.Score) entities.Grade {
	return entities.Grade{CourseName: course, Score: score, Date: entities.NewDate(2024, time.May, 20)}
}
