package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studypilot/studypilot-backend/internal/logger"
	"github.com/studypilot/studypilot-backend/internal/types"
)

type SubjectRepo interface {
	Create(ctx context.Context, tx *gorm.DB, subjects []*types.Subject) ([]*types.Subject, error)
	GetByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]*types.Subject, error)
	GetByOwnerAndID(ctx context.Context, tx *gorm.DB, ownerID, subjectID uuid.UUID) (*types.Subject, error)
	NameExists(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, name string) (bool, error)
	Update(ctx context.Context, tx *gorm.DB, subject *types.Subject) error
	DeleteByOwnerAndID(ctx context.Context, tx *gorm.DB, ownerID, subjectID uuid.UUID) error
}

type subjectRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSubjectRepo(db *gorm.DB, baseLog *logger.Logger) SubjectRepo {
	repoLog := baseLog.With("repo", "SubjectRepo")
	return &subjectRepo{db: db, log: repoLog}
}

func (r *subjectRepo) Create(ctx context.Context, tx *gorm.DB, subjects []*types.Subject) ([]*types.Subject, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(subjects) == 0 {
		return []*types.Subject{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&subjects).Error; err != nil {
		return nil, err
	}
	return subjects, nil
}

func (r *subjectRepo) GetByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]*types.Subject, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Subject
	if ownerID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *subjectRepo) GetByOwnerAndID(ctx context.Context, tx *gorm.DB, ownerID, subjectID uuid.UUID) (*types.Subject, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Subject
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND id = ?", ownerID, subjectID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (r *subjectRepo) NameExists(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, name string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Subject{}).
		Where("user_id = ? AND name = ?", ownerID, name).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *subjectRepo) Update(ctx context.Context, tx *gorm.DB, subject *types.Subject) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if subject == nil {
		return nil
	}

	if err := transaction.WithContext(ctx).Save(subject).Error; err != nil {
		return err
	}
	return nil
}

func (r *subjectRepo) DeleteByOwnerAndID(ctx context.Context, tx *gorm.DB, ownerID, subjectID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND id = ?", ownerID, subjectID).
		Delete(&types.Subject{}).Error; err != nil {
		return err
	}
	return nil
}
