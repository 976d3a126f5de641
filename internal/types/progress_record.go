package types

import (
	"time"

	"github.com/google/uuid"
)

// ProgressRecord logs actual study time against a session. One record is
// created automatically when a session is completed; additional records can
// be entered manually and are never auto-deleted.
type ProgressRecord struct {
	ID          uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID     `gorm:"type:uuid;not null;index" json:"user_id"`
	User        *User         `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	SessionID   uuid.UUID     `gorm:"type:uuid;not null;index;column:session_id" json:"session_id"`
	Session     *StudySession `gorm:"constraint:OnDelete:CASCADE;foreignKey:SessionID;references:ID" json:"session,omitempty"`
	ActualHours float64       `gorm:"not null;column:actual_hours" json:"actual_hours"`
	Notes       string        `gorm:"column:notes" json:"notes"`
	CompletedAt time.Time     `gorm:"not null;column:completed_at" json:"completed_at"`
	CreatedAt   time.Time     `gorm:"not null" json:"created_at"`
}

func (ProgressRecord) TableName() string {
	return "progress_record"
}
