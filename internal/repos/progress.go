package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studypilot/studypilot-backend/internal/logger"
	"github.com/studypilot/studypilot-backend/internal/types"
)

type ProgressRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.ProgressRecord) ([]*types.ProgressRecord, error)
	GetByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]*types.ProgressRecord, error)
	GetByOwnerAndID(ctx context.Context, tx *gorm.DB, ownerID, recordID uuid.UUID) (*types.ProgressRecord, error)
	GetBySessionID(ctx context.Context, tx *gorm.DB, ownerID, sessionID uuid.UUID) ([]*types.ProgressRecord, error)
	Update(ctx context.Context, tx *gorm.DB, row *types.ProgressRecord) error
	DeleteByOwnerAndID(ctx context.Context, tx *gorm.DB, ownerID, recordID uuid.UUID) error
	SumActualHours(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) (float64, error)
	CountByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) (int64, error)
}

type progressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProgressRepo(db *gorm.DB, baseLog *logger.Logger) ProgressRepo {
	repoLog := baseLog.With("repo", "ProgressRepo")
	return &progressRepo{db: db, log: repoLog}
}

func (r *progressRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.ProgressRecord) ([]*types.ProgressRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.ProgressRecord{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *progressRepo) GetByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]*types.ProgressRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ProgressRecord
	if ownerID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("completed_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *progressRepo) GetByOwnerAndID(ctx context.Context, tx *gorm.DB, ownerID, recordID uuid.UUID) (*types.ProgressRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ProgressRecord
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND id = ?", ownerID, recordID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (r *progressRepo) GetBySessionID(ctx context.Context, tx *gorm.DB, ownerID, sessionID uuid.UUID) ([]*types.ProgressRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ProgressRecord
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND session_id = ?", ownerID, sessionID).
		Order("completed_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *progressRepo) Update(ctx context.Context, tx *gorm.DB, row *types.ProgressRecord) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil {
		return nil
	}

	if err := transaction.WithContext(ctx).Save(row).Error; err != nil {
		return err
	}
	return nil
}

func (r *progressRepo) DeleteByOwnerAndID(ctx context.Context, tx *gorm.DB, ownerID, recordID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND id = ?", ownerID, recordID).
		Delete(&types.ProgressRecord{}).Error; err != nil {
		return err
	}
	return nil
}

func (r *progressRepo) SumActualHours(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) (float64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var total *float64
	if err := transaction.WithContext(ctx).
		Model(&types.ProgressRecord{}).
		Select("SUM(actual_hours)").
		Where("user_id = ?", ownerID).
		Scan(&total).Error; err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

func (r *progressRepo) CountByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.ProgressRecord{}).
		Where("user_id = ?", ownerID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
