package grades

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mrlokans/faculty/internal/database"
	"github.com/mrlokans/faculty/internal/entities"
	"github.com/mrlokans/faculty/internal/testutil"
)

func TestRepository_CreateAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	student := testutil.SeedStudent(t, db, "Noether")

	grade := &entities.Grade{
		StudentID:  student.ID,
		CourseName: "Algebra",
		Score:      entities.ScoreExcellent,
		Date:       entities.NewDate(2024, time.February, 14),
	}
	require.NoError(t, repo.Create(ctx, grade))
	assert.NotZero(t, grade.ID)

	loaded, err := repo.GetByID(ctx, grade.ID)
	require.NoError(t, err)
	assert.Equal(t, "Algebra", loaded.CourseName)
	assert.Equal(t, entities.ScoreExcellent, loaded.Score)
	assert.Equal(t, "2024-02-14", loaded.Date.String())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo := NewRepository(testutil.NewTestDB(t))

	_, err := repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_ExistsForCourse(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	student := testutil.SeedStudent(t, db, "Noether", testutil.WithGrades(testutil.Grade("Algebra", entities.ScoreGood)))

	ok, err := repo.ExistsForCourse(ctx, student.ID, "Algebra")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.ExistsForCourse(ctx, student.ID, "Topology")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRepository_Create_DuplicateCourse(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	student := testutil.SeedStudent(t, db, "Noether", testutil.WithGrades(testutil.Grade("Algebra", entities.ScoreGood)))

	err := repo.Create(ctx, &entities.Grade{
		StudentID:  student.ID,
		CourseName: "Algebra",
		Score:      entities.ScorePoor,
		Date:       entities.NewDate(2024, time.March, 1),
	})
	require.Error(t, err)
	assert.True(t, database.IsUniqueViolation(err))

	var count int64
	require.NoError(t, db.Model(&entities.Grade{}).Where("student_id = ?", student.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRepository_Delete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	student := testutil.SeedStudent(t, db, "Noether", testutil.WithGrades(testutil.Grade("Algebra", entities.ScoreGood)))

	n, err := repo.Delete(ctx, student.Grades[0].ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.Delete(ctx, student.Grades[0].ID)
	require.NoError(t, err)
	assert.Zero(t, n)
}
