package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studypilot/studypilot-backend/internal/logger"
	"github.com/studypilot/studypilot-backend/internal/types"
)

type ExamRepo interface {
	Create(ctx context.Context, tx *gorm.DB, exams []*types.Exam) ([]*types.Exam, error)
	GetByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]*types.Exam, error)
	GetByOwnerAndID(ctx context.Context, tx *gorm.DB, ownerID, examID uuid.UUID) (*types.Exam, error)
	GetUpcomingByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, from time.Time) ([]*types.Exam, error)
	CountUpcomingByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, from time.Time) (int64, error)
	Update(ctx context.Context, tx *gorm.DB, exam *types.Exam) error
	DeleteByOwnerAndID(ctx context.Context, tx *gorm.DB, ownerID, examID uuid.UUID) error
	DeleteBySubjectID(ctx context.Context, tx *gorm.DB, ownerID, subjectID uuid.UUID) error
}

type examRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewExamRepo(db *gorm.DB, baseLog *logger.Logger) ExamRepo {
	repoLog := baseLog.With("repo", "ExamRepo")
	return &examRepo{db: db, log: repoLog}
}

func (r *examRepo) Create(ctx context.Context, tx *gorm.DB, exams []*types.Exam) ([]*types.Exam, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(exams) == 0 {
		return []*types.Exam{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&exams).Error; err != nil {
		return nil, err
	}
	return exams, nil
}

func (r *examRepo) GetByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]*types.Exam, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Exam
	if ownerID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("exam_date ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *examRepo) GetByOwnerAndID(ctx context.Context, tx *gorm.DB, ownerID, examID uuid.UUID) (*types.Exam, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Exam
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND id = ?", ownerID, examID).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (r *examRepo) GetUpcomingByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, from time.Time) ([]*types.Exam, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Exam
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND exam_date >= ?", ownerID, from).
		Order("exam_date ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *examRepo) CountUpcomingByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, from time.Time) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Exam{}).
		Where("user_id = ? AND exam_date >= ?", ownerID, from).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *examRepo) Update(ctx context.Context, tx *gorm.DB, exam *types.Exam) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if exam == nil {
		return nil
	}

	if err := transaction.WithContext(ctx).Save(exam).Error; err != nil {
		return err
	}
	return nil
}

func (r *examRepo) DeleteByOwnerAndID(ctx context.Context, tx *gorm.DB, ownerID, examID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND id = ?", ownerID, examID).
		Delete(&types.Exam{}).Error; err != nil {
		return err
	}
	return nil
}

func (r *examRepo) DeleteBySubjectID(ctx context.Context, tx *gorm.DB, ownerID, subjectID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND subject_id = ?", ownerID, subjectID).
		Delete(&types.Exam{}).Error; err != nil {
		return err
	}
	return nil
}
