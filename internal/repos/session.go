package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studypilot/studypilot-backend/internal/logger"
	"github.com/studypilot/studypilot-backend/internal/types"
)

type SessionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.StudySession) ([]*types.StudySession, error)
	GetByOwnerAndID(ctx context.Context, tx *gorm.DB, ownerID, sessionID uuid.UUID) (*types.StudySession, error)
	GetByOwnerAndDate(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, date time.Time) ([]*types.StudySession, error)
	GetByOwnerDateRange(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, start, end time.Time) ([]*types.StudySession, error)
	GetByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]*types.StudySession, error)
	Update(ctx context.Context, tx *gorm.DB, row *types.StudySession) error
	CompleteByOwnerAndID(ctx context.Context, tx *gorm.DB, ownerID, sessionID uuid.UUID, completedAt time.Time) (int64, error)
	DeleteByOwnerAndID(ctx context.Context, tx *gorm.DB, ownerID, sessionID uuid.UUID) error
	DeleteByOwnerDateRange(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, start, end time.Time) error
	DeleteBySubjectID(ctx context.Context, tx *gorm.DB, ownerID, subjectID uuid.UUID) error
}

type sessionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSessionRepo(db *gorm.DB, baseLog *logger.Logger) SessionRepo {
	repoLog := baseLog.With("repo", "SessionRepo")
	return &sessionRepo{db: db, log: repoLog}
}

func (r *sessionRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.StudySession) ([]*types.StudySession, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.StudySession{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *sessionRepo) GetByOwnerAndID(ctx context.Context, tx *gorm.DB, ownerID, sessionID uuid.UUID) (*types.StudySession, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.StudySession
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND id = ?", ownerID, sessionID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (r *sessionRepo) GetByOwnerAndDate(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, date time.Time) ([]*types.StudySession, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.StudySession
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND study_date = ?", ownerID, date).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *sessionRepo) GetByOwnerDateRange(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, start, end time.Time) ([]*types.StudySession, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.StudySession
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND study_date >= ? AND study_date <= ?", ownerID, start, end).
		Order("study_date ASC, created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *sessionRepo) GetByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]*types.StudySession, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.StudySession
	if ownerID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("study_date ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *sessionRepo) Update(ctx context.Context, tx *gorm.DB, row *types.StudySession) error {
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

// CompleteByOwnerAndID flips a session to completed only while it is still
// open. The is_completed guard makes the write a compare-and-set, so of two
// concurrent completions exactly one observes a changed row.
func (r *sessionRepo) CompleteByOwnerAndID(ctx context.Context, tx *gorm.DB, ownerID, sessionID uuid.UUID, completedAt time.Time) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	result := transaction.WithContext(ctx).
		Model(&types.StudySession{}).
		Where("user_id = ? AND id = ? AND is_completed = ?", ownerID, sessionID, false).
		Updates(map[string]interface{}{
			"is_completed": true,
			"completed_at": completedAt,
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (r *sessionRepo) DeleteByOwnerAndID(ctx context.Context, tx *gorm.DB, ownerID, sessionID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND id = ?", ownerID, sessionID).
		Delete(&types.StudySession{}).Error; err != nil {
		return err
	}
	return nil
}

func (r *sessionRepo) DeleteByOwnerDateRange(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, start, end time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND study_date >= ? AND study_date <= ?", ownerID, start, end).
		Delete(&types.StudySession{}).Error; err != nil {
		return err
	}
	return nil
}

func (r *sessionRepo) DeleteBySubjectID(ctx context.Context, tx *gorm.DB, ownerID, subjectID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND subject_id = ?", ownerID, subjectID).
		Delete(&types.StudySession{}).Error; err != nil {
		return err
	}
	return nil
}
