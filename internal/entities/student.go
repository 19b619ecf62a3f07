package entities

import (
	"encoding/json"
	"fmt"
	"strings"
)

type StudentStatus string

const (
	StudentStatusActive        StudentStatus = "active"
	StudentStatusExpelled      StudentStatus = "expelled"
	StudentStatusAcademicLeave StudentStatus = "academic_leave"
	StudentStatusGraduated     StudentStatus = "graduated"
)

// StudentStatuses lists every valid status in declaration order.
var StudentStatuses = []StudentStatus{
	StudentStatusActive,
	StudentStatusExpelled,
	StudentStatusAcademicLeave,
	StudentStatusGraduated,
}

func (s StudentStatus) Valid() bool {
	for _, known := range StudentStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// ParseStudentStatus accepts both the stored value ("academic_leave") and the
// upper-case name ("ACADEMIC_LEAVE").
func ParseStudentStatus(raw string) (StudentStatus, error) {
	status := StudentStatus(strings.ToLower(strings.TrimSpace(raw)))
	if !status.Valid() {
		return "", fmt.Errorf("unknown student status %q", raw)
	}
	return status, nil
}

func (s *StudentStatus) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("status must be a string: %w", err)
	}
	status, err := ParseStudentStatus(raw)
	if err != nil {
		return err
	}
	*s = status
	return nil
}

type Student struct {
	ID         uint          `gorm:"primaryKey" json:"id"`
	FirstName  string        `gorm:"size:100;not null" json:"first_name"`
	LastName   string        `gorm:"size:100;not null;index" json:"last_name"`
	Patronymic *string       `gorm:"size:100" json:"patronymic,omitempty"`
	BirthDate  Date          `gorm:"not null;index" json:"birth_date"`
	Status     StudentStatus `gorm:"size:20;not null;default:active;index" json:"status"`
	Group      string        `gorm:"size:50;not null;index" json:"group"`

	// Relationships
	Contact *ContactInfo `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"contact,omitempty"`
	Grades  []Grade      `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"grades,omitempty"`
}

func (Student) TableName() string {
	return "students"
}

// ContactInfo belongs to exactly one student and is removed with it.
type ContactInfo struct {
	ID        uint    `gorm:"primaryKey" json:"-"`
	StudentID uint    `gorm:"uniqueIndex;not null" json:"-"`
	Email     *string `gorm:"size:255" json:"email,omitempty"`
	Phone     string  `gorm:"size:32;not null" json:"phone"`
}

func (ContactInfo) TableName() string {
	return "contact_info"
}
