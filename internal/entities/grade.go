package entities

// Score is the ordinal grade scale, 1 (POOR) to 5 (EXCELLENT).
type Score int

const (
	ScorePoor         Score = 1
	ScoreDeficient    Score = 2
	ScoreSatisfactory Score = 3
	ScoreGood         Score = 4
	ScoreExcellent    Score = 5
)

var scoreNames = map[Score]string{
	ScorePoor:         "POOR",
	ScoreDeficient:    "DEFICIENT",
	ScoreSatisfactory: "SATISFACTORY",
	ScoreGood:         "GOOD",
	ScoreExcellent:    "EXCELLENT",
}

func (s Score) Valid() bool {
	return s >= ScorePoor && s <= ScoreExcellent
}

func (s Score) String() string {
	if name, ok := scoreNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// Grade is a student's result for one course. At most one per (student, course).
type Grade struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	StudentID  uint   `gorm:"not null;uniqueIndex:uq_student_course,priority:1" json:"student_id"`
	CourseName string `gorm:"size:200;not null;uniqueIndex:uq_student_course,priority:2" json:"course_name"`
	Score      Score  `gorm:"not null;index" json:"score"`
	Date       Date   `gorm:"not null" json:"date"`
}

func (Grade) TableName() string {
	return "grades"
}
