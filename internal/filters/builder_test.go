package filters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mrlokans/faculty/internal/database/students"
	"github.com/mrlokans/faculty/internal/entities"
	"github.com/mrlokans/faculty/internal/testutil"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
func intPtr(i int) *int       { return &i }

// seedFaculty creates a fixed population:
//
//	Abel    A-1  1999-05-01  email   grades Math=5 Art=4
//	Baker   A-1  2000-03-15  -       grades Math=3
//	Carter  B-2  2001-07-20  email   no grades
//	Dunn    B-2  2002-11-30  -       grades Art=5
func seedFaculty(t *testing.T, db *gorm.DB) {
	t.Helper()
	testutil.SeedStudent(t, db, "Abel",
		testutil.WithGroup("A-1"),
		testutil.WithBirthDate(entities.NewDate(1999, time.May, 1)),
		testutil.WithEmail("abel@example.com"),
		testutil.WithGrades(testutil.Grade("Math", entities.ScoreExcellent), testutil.Grade("Art", entities.ScoreGood)),
	)
	testutil.SeedStudent(t, db, "Baker",
		testutil.WithGroup("A-1"),
		testutil.WithBirthDate(entities.NewDate(2000, time.March, 15)),
		testutil.WithGrades(testutil.Grade("Math", entities.ScoreSatisfactory)),
	)
	testutil.SeedStudent(t, db, "Carter",
		testutil.WithGroup("B-2"),
		testutil.WithBirthDate(entities.NewDate(2001, time.July, 20)),
		testutil.WithEmail("carter@example.com"),
	)
	testutil.SeedStudent(t, db, "Dunn",
		testutil.WithGroup("B-2"),
		testutil.WithBirthDate(entities.NewDate(2002, time.November, 30)),
		testutil.WithGrades(testutil.Grade("Art", entities.ScoreExcellent)),
	)
}

func lastNames(t *testing.T, db *gorm.DB, b *Builder) []string {
	t.Helper()
	found, err := students.NewRepository(db).Find(context.Background(), b.Scope)
	require.NoError(t, err)
	names := make([]string, 0, len(found))
	for _, s := range found {
		names = append(names, s.LastName)
	}
	return names
}

func TestPredicates(t *testing.T) {
	db := testutil.NewTestDB(t)
	seedFaculty(t, db)

	tests := []struct {
		name      string
		predicate Predicate
		want      []string
	}{
		{"last name", LastNameEquals("Baker"), []string{"Baker"}},
		{"last name no match", LastNameEquals("baker"), []string{}},
		{"group", GroupEquals("B-2"), []string{"Carter", "Dunn"}},
		{"born after is strict", BornAfter(entities.NewDate(2000, time.March, 15)), []string{"Carter", "Dunn"}},
		{"born before is strict", BornBefore(entities.NewDate(2000, time.March, 15)), []string{"Abel"}},
		{"has email", HasEmail(true), []string{"Abel", "Carter"}},
		{"has no email", HasEmail(false), []string{"Baker", "Dunn"}},
		{"score present", ScorePresent(entities.ScoreExcellent), []string{"Abel", "Dunn"}},
		{"score present no match", ScorePresent(entities.ScorePoor), []string{}},
		{"score threshold", ScoreThreshold(entities.ScoreGood), []string{"Abel", "Dunn"}},
		{"score threshold low", ScoreThreshold(entities.ScorePoor), []string{"Abel", "Baker", "Dunn"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := lastNames(t, db, NewBuilder().Where(tt.predicate))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuilder_Conjunction(t *testing.T) {
	db := testutil.NewTestDB(t)
	seedFaculty(t, db)

	b := NewBuilder().
		Where(GroupEquals("A-1")).
		Where(HasEmail(false)).
		Where(ScorePresent(entities.ScoreSatisfactory))
	assert.Equal(t, []string{"Baker"}, lastNames(t, db, b))

	b = NewBuilder().
		Where(BornAfter(entities.NewDate(1999, time.May, 1))).
		Where(BornBefore(entities.NewDate(2002, time.November, 30)))
	assert.Equal(t, []string{"Baker", "Carter"}, lastNames(t, db, b))
}

func TestBuilder_NilPredicateIgnored(t *testing.T) {
	b := NewBuilder().Where(nil).Where(GroupEquals("A-1"))
	assert.Len(t, b.Predicates(), 1)
}

func TestBuilder_Pagination(t *testing.T) {
	db := testutil.NewTestDB(t)
	for i := 0; i < 15; i++ {
		testutil.SeedStudent(t, db, "Student")
	}

	t.Run("default window", func(t *testing.T) {
		assert.Len(t, lastNames(t, db, NewBuilder()), DefaultLimit)
	})

	t.Run("zero limit yields an empty page", func(t *testing.T) {
		assert.Empty(t, lastNames(t, db, NewBuilder().Page(Pagination{Limit: 0})))
	})

	t.Run("offset past first page", func(t *testing.T) {
		got := lastNames(t, db, NewBuilder().Page(Pagination{Limit: 10, Offset: 10}))
		assert.Len(t, got, 5)
	})

	t.Run("pages do not overlap", func(t *testing.T) {
		repo := students.NewRepository(db)
		first, err := repo.Find(context.Background(), NewBuilder().Page(Pagination{Limit: 4}).Scope)
		require.NoError(t, err)
		second, err := repo.Find(context.Background(), NewBuilder().Page(Pagination{Limit: 4, Offset: 4}).Scope)
		require.NoError(t, err)
		require.Len(t, first, 4)
		require.Len(t, second, 4)
		assert.Less(t, first[3].ID, second[0].ID)
	})
}

func TestBuilder_NoDuplicateRowsWithManyGrades(t *testing.T) {
	db := testutil.NewTestDB(t)
	testutil.SeedStudent(t, db, "Many", testutil.WithGrades(
		testutil.Grade("A", entities.ScoreGood),
		testutil.Grade("B", entities.ScoreGood),
		testutil.Grade("C", entities.ScoreGood),
	))

	found, err := students.NewRepository(db).Find(context.Background(), NewBuilder().Where(ScorePresent(entities.ScoreGood)).Scope)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Len(t, found[0].Grades, 3)
}

func TestPagination_Normalized(t *testing.T) {
	tests := []struct {
		in   Pagination
		want Pagination
	}{
		{Pagination{}, Pagination{}},
		{Pagination{Limit: -5, Offset: -1}, Pagination{Limit: 10}},
		{Pagination{Limit: 500, Offset: 3}, Pagination{Limit: 100, Offset: 3}},
		{Pagination{Limit: 25, Offset: 50}, Pagination{Limit: 25, Offset: 50}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.in.Normalized())
	}
}

func TestFromStudentFilter(t *testing.T) {
	after := entities.NewDate(2000, time.January, 1)
	score := entities.ScoreGood

	t.Run("empty filter has no predicates", func(t *testing.T) {
		b := FromStudentFilter(StudentFilter{})
		assert.Empty(t, b.Predicates())
		assert.Equal(t, Pagination{Limit: DefaultLimit}, b.Pagination())
	})

	t.Run("explicit zero limit is kept", func(t *testing.T) {
		b := FromStudentFilter(StudentFilter{Limit: intPtr(0)})
		assert.Equal(t, Pagination{}, b.Pagination())
	})

	t.Run("each present field adds one predicate", func(t *testing.T) {
		b := FromStudentFilter(StudentFilter{
			LastName:       strPtr("Abel"),
			Group:          strPtr("A-1"),
			BornAfter:      &after,
			HasEmail:       boolPtr(false),
			ScorePresent:   &score,
			ScoreThreshold: &score,
			Limit:          intPtr(5),
			Offset:         2,
		})
		assert.Equal(t, []Predicate{
			LastNameEquals("Abel"),
			GroupEquals("A-1"),
			BornAfter(after),
			HasEmail(false),
			ScorePresent(score),
			ScoreThreshold(score),
		}, b.Predicates())
		assert.Equal(t, Pagination{Limit: 5, Offset: 2}, b.Pagination())
	})

	t.Run("has_email false against data", func(t *testing.T) {
		db := testutil.NewTestDB(t)
		seedFaculty(t, db)

		found, err := students.NewRepository(db).Find(context.Background(), FromStudentFilter(StudentFilter{HasEmail: boolPtr(false)}).Scope)
		require.NoError(t, err)
		require.NotEmpty(t, found)
		for _, s := range found {
			assert.Nil(t, s.Contact.Email)
		}
	})
}
