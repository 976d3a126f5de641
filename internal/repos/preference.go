package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studypilot/studypilot-backend/internal/logger"
	"github.com/studypilot/studypilot-backend/internal/types"
)

type PreferenceRepo interface {
	GetByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) (*types.UserPreference, error)
	Upsert(ctx context.Context, tx *gorm.DB, row *types.UserPreference) error
}

type preferenceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPreferenceRepo(db *gorm.DB, baseLog *logger.Logger) PreferenceRepo {
	repoLog := baseLog.With("repo", "PreferenceRepo")
	return &preferenceRepo{db: db, log: repoLog}
}

func (r *preferenceRepo) GetByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) (*types.UserPreference, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.UserPreference
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (r *preferenceRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.UserPreference) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil {
		return nil
	}

	// Upsert by unique user_id
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", row.UserID).
		Assign(map[string]interface{}{"daily_study_hours": row.DailyStudyHours}).
		FirstOrCreate(row).Error; err != nil {
		return err
	}
	return nil
}
