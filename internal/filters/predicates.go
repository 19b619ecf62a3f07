// Package filters builds student queries from independent, typed predicates.
//
// Each filter kind is its own Predicate type and can be tested on its own.
// A Builder collects predicates, joins them with AND and adds pagination:
//
//	b := filters.NewBuilder().
//	    Where(filters.GroupEquals("M-101")).
//	    Where(filters.HasEmail(true)).
//	    Page(filters.Pagination{Limit: 20})
//	err := db.Scopes(b.Scope).Find(&students).Error
package filters

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/faculty/internal/entities"
)

const studentsTable = "students"

// Predicate contributes one condition to a student query.
type Predicate interface {
	Apply(db *gorm.DB) *gorm.DB
}

func studentColumn(name string) clause.Column {
	return clause.Column{Table: studentsTable, Name: name}
}

// LastNameEquals matches the last name exactly.
type LastNameEquals string

func (p LastNameEquals) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(clause.Eq{Column: studentColumn("last_name"), Value: string(p)})
}

// GroupEquals matches the group exactly.
type GroupEquals string

func (p GroupEquals) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(clause.Eq{Column: studentColumn("group"), Value: string(p)})
}

// BornAfter keeps students born strictly after the date.
type BornAfter entities.Date

func (p BornAfter) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(clause.Gt{Column: studentColumn("birth_date"), Value: entities.Date(p)})
}

// BornBefore keeps students born strictly before the date.
type BornBefore entities.Date

func (p BornBefore) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(clause.Lt{Column: studentColumn("birth_date"), Value: entities.Date(p)})
}

// HasEmail keeps students whose contact has (true) or lacks (false) an email.
// A student without a contact row matches neither.
type HasEmail bool

func (p HasEmail) Apply(db *gorm.DB) *gorm.DB {
	cond := "contact_info.email IS NOT NULL"
	if !p {
		cond = "contact_info.email IS NULL"
	}
	sub := db.Session(&gorm.Session{NewDB: true}).
		Table("contact_info").
		Select("1").
		Where("contact_info.student_id = students.id").
		Where(cond)
	return db.Where("EXISTS (?)", sub)
}

// ScorePresent keeps students with at least one grade equal to the score.
type ScorePresent entities.Score

func (p ScorePresent) Apply(db *gorm.DB) *gorm.DB {
	sub := db.Session(&gorm.Session{NewDB: true}).
		Model(&entities.Grade{}).
		Select("student_id").
		Where("score = ?", int(p))
	return db.Where("students.id IN (?)", sub)
}

// ScoreThreshold keeps students whose lowest grade is at least the score.
// Students without grades are excluded.
type ScoreThreshold entities.Score

func (p ScoreThreshold) Apply(db *gorm.DB) *gorm.DB {
	sub := db.Session(&gorm.Session{NewDB: true}).
		Model(&entities.Grade{}).
		Select("student_id").
		Group("student_id").
		Having("MIN(score) >= ?", int(p))
	return db.Where("students.id IN (?)", sub)
}
