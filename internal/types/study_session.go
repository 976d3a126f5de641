package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// StudySession is one planned study block for one subject on one calendar
// date. Sessions are created in batches by plan generation; regenerating a
// plan over a date range replaces the owner's sessions inside that range.
type StudySession struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID      `gorm:"type:uuid;not null;index:idx_session_owner_date" json:"user_id"`
	User         *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	SubjectID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"subject_id"`
	Subject      *Subject       `gorm:"constraint:OnDelete:CASCADE;foreignKey:SubjectID;references:ID" json:"subject,omitempty"`
	StudyDate    time.Time      `gorm:"type:date;not null;column:study_date;index:idx_session_owner_date" json:"study_date"`
	PlannedHours float64        `gorm:"not null;column:planned_hours" json:"planned_hours"`
	Topic        string         `gorm:"column:topic" json:"topic"`
	Description  string         `gorm:"column:description" json:"description"`
	IsCompleted  bool           `gorm:"not null;default:false;column:is_completed" json:"is_completed"`
	CompletedAt  *time.Time     `gorm:"column:completed_at" json:"completed_at,omitempty"`
	Metadata     datatypes.JSON `gorm:"type:jsonb;column:metadata" json:"metadata"`
	CreatedAt    time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null" json:"updated_at"`
}

func (StudySession) TableName() string {
	return "study_session"
}
