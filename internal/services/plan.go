package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/facebookgo/clock"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/studypilot/studypilot-backend/internal/apierr"
	"github.com/studypilot/studypilot-backend/internal/logger"
	"github.com/studypilot/studypilot-backend/internal/planner"
	"github.com/studypilot/studypilot-backend/internal/repos"
	"github.com/studypilot/studypilot-backend/internal/types"
)

// UnknownSubjectName is reported when a session outlives its subject.
const UnknownSubjectName = "Unknown"

const autoCompletionNote = "Session completed - hours recorded automatically"

// SessionMetadata is stored on each generated session so clients can show
// why a block was scheduled.
type SessionMetadata struct {
	Priority      int `json:"priority"`
	DaysUntilExam int `json:"days_until_exam"`
}

// TaskView is a session decorated for the dashboard and completion UI.
type TaskView struct {
	ID           uuid.UUID  `json:"id"`
	SubjectName  string     `json:"subject_name"`
	Topic        string     `json:"topic"`
	Description  string     `json:"description"`
	PlannedHours float64    `json:"planned_hours"`
	StudyDate    time.Time  `json:"study_date"`
	IsCompleted  bool       `json:"is_completed"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	CanComplete  bool       `json:"can_complete"`
}

type PlanService interface {
	GeneratePlan(ctx context.Context, ownerID uuid.UUID, startDate, endDate time.Time, dailyHours float64) ([]*types.StudySession, error)
	GetSession(ctx context.Context, ownerID, sessionID uuid.UUID) (*types.StudySession, error)
	GetSessionsForDate(ctx context.Context, ownerID uuid.UUID, date time.Time) ([]*types.StudySession, error)
	GetSessionsInRange(ctx context.Context, ownerID uuid.UUID, start, end time.Time) ([]*types.StudySession, error)
	ListSessions(ctx context.Context, ownerID uuid.UUID) ([]*types.StudySession, error)
	GetTodayTasks(ctx context.Context, ownerID uuid.UUID) ([]TaskView, error)
	GetUpcomingTasks(ctx context.Context, ownerID uuid.UUID) ([]TaskView, error)
	CompleteSession(ctx context.Context, ownerID, sessionID uuid.UUID) (*types.StudySession, error)
	DeleteSession(ctx context.Context, ownerID, sessionID uuid.UUID) error
}

type planService struct {
	db             *gorm.DB
	log            *logger.Logger
	subjectRepo    repos.SubjectRepo
	examRepo       repos.ExamRepo
	sessionRepo    repos.SessionRepo
	progressRepo   repos.ProgressRepo
	preferenceRepo repos.PreferenceRepo
	defaultHours   float64
	clk            clock.Clock
}

func NewPlanService(
	db *gorm.DB,
	log *logger.Logger,
	subjectRepo repos.SubjectRepo,
	examRepo repos.ExamRepo,
	sessionRepo repos.SessionRepo,
	progressRepo repos.ProgressRepo,
	preferenceRepo repos.PreferenceRepo,
	defaultDailyHours float64,
	clk clock.Clock,
) PlanService {
	serviceLog := log.With("service", "PlanService")
	return &planService{
		db:             db,
		log:            serviceLog,
		subjectRepo:    subjectRepo,
		examRepo:       examRepo,
		sessionRepo:    sessionRepo,
		progressRepo:   progressRepo,
		preferenceRepo: preferenceRepo,
		defaultHours:   defaultDailyHours,
		clk:            clk,
	}
}

// GeneratePlan builds a day-by-day schedule over the inclusive date range
// and persists it, replacing any of the owner's sessions already inside
// the range. The delete and the insert run in one transaction so readers
// never observe a half-replaced plan. Regenerating with the same inputs
// yields an equivalent schedule.
func (ps *planService) GeneratePlan(ctx context.Context, ownerID uuid.UUID, startDate, endDate time.Time, dailyHours float64) ([]*types.StudySession, error) {
	if dailyHours <= 0 {
		pref, err := ps.preferenceRepo.GetByOwner(ctx, nil, ownerID)
		if err != nil {
			return nil, apierr.Internal(err)
		}
		if pref != nil && pref.DailyStudyHours > 0 {
			dailyHours = pref.DailyStudyHours
		} else {
			dailyHours = ps.defaultHours
		}
	}

	subjects, err := ps.subjectRepo.GetByOwner(ctx, nil, ownerID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	exams, err := ps.examRepo.GetByOwner(ctx, nil, ownerID)
	if err != nil {
		return nil, apierr.Internal(err)
	}

	planned, err := planner.Schedule(subjects, exams, dailyHours, startDate, endDate)
	if err != nil {
		return nil, err
	}

	rows := make([]*types.StudySession, 0, len(planned))
	for _, p := range planned {
		metadata, err := json.Marshal(SessionMetadata{Priority: p.Priority, DaysUntilExam: p.DaysUntil})
		if err != nil {
			return nil, apierr.Internal(err)
		}
		rows = append(rows, &types.StudySession{
			ID:           uuid.New(),
			UserID:       ownerID,
			SubjectID:    p.SubjectID,
			StudyDate:    p.StudyDate,
			PlannedHours: p.Hours,
			Topic:        p.Topic,
			Description:  p.Description,
			IsCompleted:  false,
			Metadata:     datatypes.JSON(metadata),
		})
	}

	start := planner.DateOnly(startDate)
	end := planner.DateOnly(endDate)
	txErr := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ps.sessionRepo.DeleteByOwnerDateRange(ctx, tx, ownerID, start, end); err != nil {
			return apierr.Internal(err)
		}
		if _, err := ps.sessionRepo.Create(ctx, tx, rows); err != nil {
			return apierr.Internal(err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	ps.log.Info("Generated study plan", "sessions", len(rows),
		"start", start.Format("2006-01-02"), "end", end.Format("2006-01-02"))
	return rows, nil
}

func (ps *planService) GetSession(ctx context.Context, ownerID, sessionID uuid.UUID) (*types.StudySession, error) {
	session, err := ps.sessionRepo.GetByOwnerAndID(ctx, nil, ownerID, sessionID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if session == nil {
		return nil, apierr.NotFound("study session not found")
	}
	return session, nil
}

func (ps *planService) GetSessionsForDate(ctx context.Context, ownerID uuid.UUID, date time.Time) ([]*types.StudySession, error) {
	sessions, err := ps.sessionRepo.GetByOwnerAndDate(ctx, nil, ownerID, planner.DateOnly(date))
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return sessions, nil
}

func (ps *planService) GetSessionsInRange(ctx context.Context, ownerID uuid.UUID, start, end time.Time) ([]*types.StudySession, error) {
	from := planner.DateOnly(start)
	to := planner.DateOnly(end)
	if to.Before(from) {
		return nil, apierr.Validation("invalid date range: end date %s is before start date %s",
			to.Format("2006-01-02"), from.Format("2006-01-02"))
	}
	sessions, err := ps.sessionRepo.GetByOwnerDateRange(ctx, nil, ownerID, from, to)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return sessions, nil
}

func (ps *planService) ListSessions(ctx context.Context, ownerID uuid.UUID) ([]*types.StudySession, error) {
	sessions, err := ps.sessionRepo.GetByOwner(ctx, nil, ownerID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return sessions, nil
}

func (ps *planService) GetTodayTasks(ctx context.Context, ownerID uuid.UUID) ([]TaskView, error) {
	today := planner.DateOnly(ps.clk.Now())
	sessions, err := ps.GetSessionsForDate(ctx, ownerID, today)
	if err != nil {
		return nil, err
	}
	return ps.buildTaskViews(ctx, ownerID, sessions, today)
}

// GetUpcomingTasks returns today plus the next two days, flagging which
// sessions are already eligible for completion.
func (ps *planService) GetUpcomingTasks(ctx context.Context, ownerID uuid.UUID) ([]TaskView, error) {
	today := planner.DateOnly(ps.clk.Now())
	sessions, err := ps.GetSessionsInRange(ctx, ownerID, today, today.AddDate(0, 0, 2))
	if err != nil {
		return nil, err
	}
	return ps.buildTaskViews(ctx, ownerID, sessions, today)
}

// CompleteSession transitions a session from planned to completed. The
// transition is gated on the calendar: a session cannot be completed
// before its scheduled date. The flip itself is a guarded update keyed
// on is_completed, so of two racing duplicate calls exactly one wins and
// the other reports a conflict. The derived progress record is written
// in the same transaction as the flip.
func (ps *planService) CompleteSession(ctx context.Context, ownerID, sessionID uuid.UUID) (*types.StudySession, error) {
	today := planner.DateOnly(ps.clk.Now())

	var completed *types.StudySession
	txErr := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		session, err := ps.sessionRepo.GetByOwnerAndID(ctx, tx, ownerID, sessionID)
		if err != nil {
			return apierr.Internal(err)
		}
		if session == nil {
			return apierr.NotFound("study session not found")
		}
		sessionDate := planner.DateOnly(session.StudyDate)
		if sessionDate.After(today) {
			return apierr.NotYetAvailable(sessionDate,
				"session can only be completed on or after %s", sessionDate.Format("January 2, 2006"))
		}
		if session.IsCompleted {
			return apierr.Conflict("session is already completed")
		}

		now := ps.clk.Now()
		rows, err := ps.sessionRepo.CompleteByOwnerAndID(ctx, tx, ownerID, sessionID, now)
		if err != nil {
			return apierr.Internal(err)
		}
		if rows == 0 {
			return apierr.Conflict("session is already completed")
		}
		session.IsCompleted = true
		session.CompletedAt = &now

		record := &types.ProgressRecord{
			ID:          uuid.New(),
			UserID:      ownerID,
			SessionID:   session.ID,
			ActualHours: session.PlannedHours,
			Notes:       autoCompletionNote,
			CompletedAt: now,
		}
		if _, err := ps.progressRepo.Create(ctx, tx, []*types.ProgressRecord{record}); err != nil {
			return apierr.Internal(err)
		}
		completed = session
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return completed, nil
}

func (ps *planService) DeleteSession(ctx context.Context, ownerID, sessionID uuid.UUID) error {
	if _, err := ps.GetSession(ctx, ownerID, sessionID); err != nil {
		return err
	}
	if err := ps.sessionRepo.DeleteByOwnerAndID(ctx, nil, ownerID, sessionID); err != nil {
		return apierr.Internal(err)
	}
	return nil
}

func (ps *planService) buildTaskViews(ctx context.Context, ownerID uuid.UUID, sessions []*types.StudySession, today time.Time) ([]TaskView, error) {
	subjects, err := ps.subjectRepo.GetByOwner(ctx, nil, ownerID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	names := make(map[uuid.UUID]string, len(subjects))
	for _, subject := range subjects {
		names[subject.ID] = subject.Name
	}

	views := make([]TaskView, 0, len(sessions))
	for _, session := range sessions {
		name, ok := names[session.SubjectID]
		if !ok {
			name = UnknownSubjectName
		}
		views = append(views, TaskView{
			ID:           session.ID,
			SubjectName:  name,
			Topic:        session.Topic,
			Description:  session.Description,
			PlannedHours: session.PlannedHours,
			StudyDate:    session.StudyDate,
			IsCompleted:  session.IsCompleted,
			CompletedAt:  session.CompletedAt,
			CanComplete:  !planner.DateOnly(session.StudyDate).After(today),
		})
	}
	return views, nil
}
