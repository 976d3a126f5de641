package services

import (
	"context"

	"github.com/facebookgo/clock"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studypilot/studypilot-backend/internal/apierr"
	"github.com/studypilot/studypilot-backend/internal/logger"
	"github.com/studypilot/studypilot-backend/internal/repos"
	"github.com/studypilot/studypilot-backend/internal/types"
)

// StudyTotals is the lifetime study summary across all progress records.
type StudyTotals struct {
	TotalStudyHours float64 `json:"total_study_hours"`
	TotalSessions   int64   `json:"total_sessions"`
}

type ProgressService interface {
	ListProgress(ctx context.Context, ownerID uuid.UUID) ([]*types.ProgressRecord, error)
	GetProgress(ctx context.Context, ownerID, recordID uuid.UUID) (*types.ProgressRecord, error)
	RecordProgress(ctx context.Context, ownerID, sessionID uuid.UUID, actualHours float64, notes string) (*types.ProgressRecord, error)
	UpdateProgress(ctx context.Context, ownerID, recordID uuid.UUID, actualHours float64, notes string) (*types.ProgressRecord, error)
	DeleteProgress(ctx context.Context, ownerID, recordID uuid.UUID) error
	Totals(ctx context.Context, ownerID uuid.UUID) (StudyTotals, error)
}

type progressService struct {
	db           *gorm.DB
	log          *logger.Logger
	progressRepo repos.ProgressRepo
	sessionRepo  repos.SessionRepo
	clk          clock.Clock
}

func NewProgressService(db *gorm.DB, log *logger.Logger, progressRepo repos.ProgressRepo, sessionRepo repos.SessionRepo, clk clock.Clock) ProgressService {
	serviceLog := log.With("service", "ProgressService")
	return &progressService{
		db:           db,
		log:          serviceLog,
		progressRepo: progressRepo,
		sessionRepo:  sessionRepo,
		clk:          clk,
	}
}

func (pr *progressService) ListProgress(ctx context.Context, ownerID uuid.UUID) ([]*types.ProgressRecord, error) {
	records, err := pr.progressRepo.GetByOwner(ctx, nil, ownerID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return records, nil
}

func (pr *progressService) GetProgress(ctx context.Context, ownerID, recordID uuid.UUID) (*types.ProgressRecord, error) {
	record, err := pr.progressRepo.GetByOwnerAndID(ctx, nil, ownerID, recordID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if record == nil {
		return nil, apierr.NotFound("progress record not found")
	}
	return record, nil
}

// RecordProgress is the manual entry path: extra study time logged against
// a session, independent of the automatic record completion creates. The
// session is marked completed as a side effect when it was still open.
func (pr *progressService) RecordProgress(ctx context.Context, ownerID, sessionID uuid.UUID, actualHours float64, notes string) (*types.ProgressRecord, error) {
	if actualHours <= 0 {
		return nil, apierr.Validation("actual hours must be positive")
	}

	var record *types.ProgressRecord
	txErr := pr.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		session, err := pr.sessionRepo.GetByOwnerAndID(ctx, tx, ownerID, sessionID)
		if err != nil {
			return apierr.Internal(err)
		}
		if session == nil {
			return apierr.NotFound("study session not found")
		}

		now := pr.clk.Now()
		record = &types.ProgressRecord{
			ID:          uuid.New(),
			UserID:      ownerID,
			SessionID:   session.ID,
			ActualHours: actualHours,
			Notes:       notes,
			CompletedAt: now,
		}
		if _, err := pr.progressRepo.Create(ctx, tx, []*types.ProgressRecord{record}); err != nil {
			return apierr.Internal(err)
		}

		if !session.IsCompleted {
			session.IsCompleted = true
			session.CompletedAt = &now
			if err := pr.sessionRepo.Update(ctx, tx, session); err != nil {
				return apierr.Internal(err)
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return record, nil
}

func (pr *progressService) UpdateProgress(ctx context.Context, ownerID, recordID uuid.UUID, actualHours float64, notes string) (*types.ProgressRecord, error) {
	if actualHours <= 0 {
		return nil, apierr.Validation("actual hours must be positive")
	}
	record, err := pr.GetProgress(ctx, ownerID, recordID)
	if err != nil {
		return nil, err
	}
	record.ActualHours = actualHours
	record.Notes = notes
	record.CompletedAt = pr.clk.Now()
	if err := pr.progressRepo.Update(ctx, nil, record); err != nil {
		return nil, apierr.Internal(err)
	}
	return record, nil
}

// DeleteProgress removes a manual record; when it was the only record for
// its session the session reverts to planned.
func (pr *progressService) DeleteProgress(ctx context.Context, ownerID, recordID uuid.UUID) error {
	record, err := pr.GetProgress(ctx, ownerID, recordID)
	if err != nil {
		return err
	}
	return pr.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := pr.progressRepo.DeleteByOwnerAndID(ctx, tx, ownerID, record.ID); err != nil {
			return apierr.Internal(err)
		}
		remaining, err := pr.progressRepo.GetBySessionID(ctx, tx, ownerID, record.SessionID)
		if err != nil {
			return apierr.Internal(err)
		}
		if len(remaining) > 0 {
			return nil
		}
		session, err := pr.sessionRepo.GetByOwnerAndID(ctx, tx, ownerID, record.SessionID)
		if err != nil {
			return apierr.Internal(err)
		}
		if session != nil && session.IsCompleted {
			session.IsCompleted = false
			session.CompletedAt = nil
			if err := pr.sessionRepo.Update(ctx, tx, session); err != nil {
				return apierr.Internal(err)
			}
		}
		return nil
	})
}

func (pr *progressService) Totals(ctx context.Context, ownerID uuid.UUID) (StudyTotals, error) {
	hours, err := pr.progressRepo.SumActualHours(ctx, nil, ownerID)
	if err != nil {
		return StudyTotals{}, apierr.Internal(err)
	}
	count, err := pr.progressRepo.CountByOwner(ctx, nil, ownerID)
	if err != nil {
		return StudyTotals{}, apierr.Internal(err)
	}
	return StudyTotals{TotalStudyHours: hours, TotalSessions: count}, nil
}
