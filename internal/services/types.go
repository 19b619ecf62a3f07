package services

import (
	"errors"
	"fmt"

	"github.com/mrlokans/faculty/internal/entities"
	"github.com/mrlokans/faculty/internal/filters"
)

// StudentFilter is re-exported so callers do not need to import filters.
type StudentFilter = filters.StudentFilter

type ContactCreate struct {
	Email *string `json:"email,omitempty" binding:"omitempty,email,max=255"`
	Phone string  `json:"phone" binding:"required,max=32"`
}

type StudentCreate struct {
	FirstName  string                 `json:"first_name" binding:"required,max=100"`
	LastName   string                 `json:"last_name" binding:"required,max=100"`
	Patronymic *string                `json:"patronymic,omitempty" binding:"omitempty,max=100"`
	BirthDate  entities.Date          `json:"birth_date"`
	Status     entities.StudentStatus `json:"status,omitempty" binding:"omitempty,oneof=active expelled academic_leave graduated"`
	Group      string                 `json:"group" binding:"required,max=50"`
	Contact    *ContactCreate         `json:"contact" binding:"required"`
}

// ContactUpdate holds the contact fields to change. Nil means keep.
type ContactUpdate struct {
	Email *string `json:"email,omitempty" binding:"omitempty,email,max=255"`
	Phone *string `json:"phone,omitempty" binding:"omitempty,min=1,max=32"`
}

// StudentUpdate holds the student fields to change. Nil means keep.
type StudentUpdate struct {
	FirstName  *string                 `json:"first_name,omitempty" binding:"omitempty,min=1,max=100"`
	LastName   *string                 `json:"last_name,omitempty" binding:"omitempty,min=1,max=100"`
	Patronymic *string                 `json:"patronymic,omitempty" binding:"omitempty,max=100"`
	BirthDate  *entities.Date          `json:"birth_date,omitempty"`
	Status     *entities.StudentStatus `json:"status,omitempty" binding:"omitempty,oneof=active expelled academic_leave graduated"`
	Group      *string                 `json:"group,omitempty" binding:"omitempty,min=1,max=50"`
	Contact    *ContactUpdate          `json:"contact,omitempty"`
}

type ContactRead struct {
	Email *string `json:"email,omitempty"`
	Phone string  `json:"phone"`
}

type StudentRead struct {
	ID         uint                   `json:"id"`
	FirstName  string                 `json:"first_name"`
	LastName   string                 `json:"last_name"`
	Patronymic *string                `json:"patronymic,omitempty"`
	BirthDate  entities.Date          `json:"birth_date"`
	Status     entities.StudentStatus `json:"status"`
	Group      string                 `json:"group"`
	Contact    *ContactRead           `json:"contact"`
	Grades     []GradeRead            `json:"grades"`
}

type GradeCreate struct {
	StudentID  uint           `json:"student_id" binding:"required"`
	CourseName string         `json:"course_name" binding:"required,max=200"`
	Score      entities.Score `json:"score" binding:"required,min=1,max=5"`
	Date       entities.Date  `json:"date"`
}

type GradeRead struct {
	ID         uint           `json:"id"`
	StudentID  uint           `json:"student_id"`
	CourseName string         `json:"course_name"`
	Score      entities.Score `json:"score"`
	Date       entities.Date  `json:"date"`
}

// Validate covers what binding tags cannot express.
func (in StudentCreate) Validate() error {
	if in.BirthDate.IsZero() {
		return errors.New("birth_date is required")
	}
	if in.Status != "" && !in.Status.Valid() {
		return fmt.Errorf("unknown status %q", in.Status)
	}
	if in.Contact == nil || in.Contact.Phone == "" {
		return errors.New("contact.phone is required")
	}
	return nil
}

func (in StudentUpdate) Validate() error {
	if in.BirthDate != nil && in.BirthDate.IsZero() {
		return errors.New("birth_date cannot be null")
	}
	if in.Status != nil && !in.Status.Valid() {
		return fmt.Errorf("unknown status %q", *in.Status)
	}
	return nil
}

func (in GradeCreate) Validate() error {
	if in.Date.IsZero() {
		return errors.New("date is required")
	}
	if !in.Score.Valid() {
		return fmt.Errorf("score must be between %d and %d", entities.ScorePoor, entities.ScoreExcellent)
	}
	return nil
}

// RejectReason explains why a grade was not created. RejectNone means it was.
type RejectReason int

const (
	RejectNone RejectReason = iota
	RejectStudentNotFound
	RejectDuplicateGrade
)

func (r RejectReason) String() string {
	switch r {
	case RejectStudentNotFound:
		return "student not found"
	case RejectDuplicateGrade:
		return "grade already exists"
	default:
		return "none"
	}
}

func newStudent(in StudentCreate) *entities.Student {
	status := in.Status
	if status == "" {
		status = entities.StudentStatusActive
	}
	student := &entities.Student{
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		Patronymic: in.Patronymic,
		BirthDate:  in.BirthDate,
		Status:     status,
		Group:      in.Group,
	}
	if in.Contact != nil {
		student.Contact = &entities.ContactInfo{Email: in.Contact.Email, Phone: in.Contact.Phone}
	}
	return student
}

// applyStudentUpdate copies every present field of u onto the student and
// returns the names of the fields it touched. A present contact is merged
// field by field, creating the contact if the student has none; a new
// contact needs a phone.
func applyStudentUpdate(s *entities.Student, u StudentUpdate) ([]string, error) {
	if u.Contact != nil && s.Contact == nil && (u.Contact.Phone == nil || *u.Contact.Phone == "") {
		return nil, ErrContactPhoneRequired
	}

	var changed []string
	if u.FirstName != nil {
		s.FirstName = *u.FirstName
		changed = append(changed, "first_name")
	}
	if u.LastName != nil {
		s.LastName = *u.LastName
		changed = append(changed, "last_name")
	}
	if u.Patronymic != nil {
		s.Patronymic = u.Patronymic
		changed = append(changed, "patronymic")
	}
	if u.BirthDate != nil {
		s.BirthDate = *u.BirthDate
		changed = append(changed, "birth_date")
	}
	if u.Status != nil {
		s.Status = *u.Status
		changed = append(changed, "status")
	}
	if u.Group != nil {
		s.Group = *u.Group
		changed = append(changed, "group")
	}
	if u.Contact != nil {
		if s.Contact == nil {
			s.Contact = &entities.ContactInfo{StudentID: s.ID}
		}
		if u.Contact.Email != nil {
			s.Contact.Email = u.Contact.Email
			changed = append(changed, "contact.email")
		}
		if u.Contact.Phone != nil {
			s.Contact.Phone = *u.Contact.Phone
			changed = append(changed, "contact.phone")
		}
	}
	return changed, nil
}

func toStudentRead(s *entities.Student) StudentRead {
	out := StudentRead{
		ID:         s.ID,
		FirstName:  s.FirstName,
		LastName:   s.LastName,
		Patronymic: s.Patronymic,
		BirthDate:  s.BirthDate,
		Status:     s.Status,
		Group:      s.Group,
		Grades:     make([]GradeRead, 0, len(s.Grades)),
	}
	if s.Contact != nil {
		out.Contact = &ContactRead{Email: s.Contact.Email, Phone: s.Contact.Phone}
	}
	for i := range s.Grades {
		out.Grades = append(out.Grades, toGradeRead(&s.Grades[i]))
	}
	return out
}

func toGradeRead(g *entities.Grade) GradeRead {
	return GradeRead{
		ID:         g.ID,
		StudentID:  g.StudentID,
		CourseName: g.CourseName,
		Score:      g.Score,
		Date:       g.Date,
	}
}
