package filters

import (
	"gorm.io/gorm"

	"github.com/mrlokans/faculty/internal/entities"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Pagination is an offset/limit window over the ordered result.
type Pagination struct {
	Limit  int
	Offset int
}

// Normalized clamps the window to sane bounds. A zero limit is kept and
// yields an empty page; a negative one falls back to DefaultLimit.
func (p Pagination) Normalized() Pagination {
	if p.Limit < 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// Builder accumulates predicates and folds them into one conjunctive query.
type Builder struct {
	predicates []Predicate
	page       Pagination
}

func NewBuilder() *Builder {
	return &Builder{page: Pagination{Limit: DefaultLimit}}
}

// Where adds a predicate. Nil predicates are ignored.
func (b *Builder) Where(p Predicate) *Builder {
	if p != nil {
		b.predicates = append(b.predicates, p)
	}
	return b
}

// Page sets the pagination window.
func (b *Builder) Page(p Pagination) *Builder {
	b.page = p
	return b
}

func (b *Builder) Predicates() []Predicate {
	return b.predicates
}

func (b *Builder) Pagination() Pagination {
	return b.page.Normalized()
}

// Conditions applies only the predicates, without ordering or pagination.
func (b *Builder) Conditions(db *gorm.DB) *gorm.DB {
	for _, p := range b.predicates {
		db = p.Apply(db)
	}
	return db
}

// Scope applies predicates, a stable order by id and the pagination window.
// It has the gorm scope signature so it can be passed to db.Scopes.
func (b *Builder) Scope(db *gorm.DB) *gorm.DB {
	page := b.Pagination()
	return b.Conditions(db).
		Order("students.id ASC").
		Offset(page.Offset).
		Limit(page.Limit)
}

// StudentFilter is what callers send to narrow a student listing. Every field is optional.
// A nil Limit means DefaultLimit; an explicit 0 asks for an empty page.
type StudentFilter struct {
	LastName       *string         `json:"last_name,omitempty" form:"last_name"`
	Group          *string         `json:"group,omitempty" form:"group"`
	BornAfter      *entities.Date  `json:"born_after,omitempty" form:"born_after"`
	BornBefore     *entities.Date  `json:"born_before,omitempty" form:"born_before"`
	HasEmail       *bool           `json:"has_email,omitempty" form:"has_email"`
	ScorePresent   *entities.Score `json:"score_present,omitempty" form:"score_present" binding:"omitempty,min=1,max=5"`
	ScoreThreshold *entities.Score `json:"score_threshold,omitempty" form:"score_threshold" binding:"omitempty,min=1,max=5"`
	Limit          *int            `json:"limit,omitempty" form:"limit" binding:"omitempty,min=0,max=100"`
	Offset         int             `json:"offset" form:"offset,default=0" binding:"min=0"`
}

// FromStudentFilter turns each present field into one predicate.
func FromStudentFilter(f StudentFilter) *Builder {
	b := NewBuilder()
	if f.LastName != nil {
		b.Where(LastNameEquals(*f.LastName))
	}
	if f.Group != nil {
		b.Where(GroupEquals(*f.Group))
	}
	if f.BornAfter != nil {
		b.Where(BornAfter(*f.BornAfter))
	}
	if f.BornBefore != nil {
		b.Where(BornBefore(*f.BornBefore))
	}
	if f.HasEmail != nil {
		b.Where(HasEmail(*f.HasEmail))
	}
	if f.ScorePresent != nil {
		b.Where(ScorePresent(*f.ScorePresent))
	}
	if f.ScoreThreshold != nil {
		b.Where(ScoreThreshold(*f.ScoreThreshold))
	}
	return b.Page(Pagination{Limit: f.LimitOrDefault(), Offset: f.Offset})
}

// LimitOrDefault resolves an absent limit to DefaultLimit.
func (f StudentFilter) LimitOrDefault() int {
	if f.Limit == nil {
		return DefaultLimit
	}
	return *f.Limit
}
