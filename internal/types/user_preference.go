package types

import (
	"time"

	"github.com/google/uuid"
)

type UserPreference struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	User            *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	DailyStudyHours float64   `gorm:"not null;default:4.0;column:daily_study_hours" json:"daily_study_hours"`
	CreatedAt       time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null" json:"updated_at"`
}

func (UserPreference) TableName() string {
	return "user_preference"
}
