package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	ExamPriorityLow    = "low"
	ExamPriorityMedium = "medium"
	ExamPriorityHigh   = "high"
)

// ValidExamPriority reports whether p is one of the accepted priority tags.
func ValidExamPriority(p string) bool {
	switch p {
	case ExamPriorityLow, ExamPriorityMedium, ExamPriorityHigh:
		return true
	}
	return false
}

type Exam struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	SubjectID uuid.UUID `gorm:"type:uuid;not null;index" json:"subject_id"`
	Subject   *Subject  `gorm:"constraint:OnDelete:CASCADE;foreignKey:SubjectID;references:ID" json:"subject,omitempty"`
	ExamName  string    `gorm:"not null;column:exam_name" json:"exam_name"`
	ExamDate  time.Time `gorm:"type:date;not null;column:exam_date" json:"exam_date"`
	// PriorityLevel is the user-facing tag (low/medium/high). The plan
	// generator derives its own weight from exam distance and does not
	// read this field.
	PriorityLevel string    `gorm:"not null;default:'medium';column:priority_level" json:"priority_level"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`
}

func (Exam) TableName() string {
	return "exam"
}
