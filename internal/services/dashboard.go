package services

import (
	"context"

	"github.com/facebookgo/clock"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/studypilot/studypilot-backend/internal/apierr"
	"github.com/studypilot/studypilot-backend/internal/logger"
	"github.com/studypilot/studypilot-backend/internal/planner"
	"github.com/studypilot/studypilot-backend/internal/repos"
	"github.com/studypilot/studypilot-backend/internal/types"
)

// DashboardStats is the at-a-glance summary for the owner's day.
type DashboardStats struct {
	SubjectsCount        int     `json:"subjects_count"`
	UpcomingExamsCount   int     `json:"upcoming_exams_count"`
	TodaySessionsCount   int     `json:"today_sessions_count"`
	CompletedTodayCount  int     `json:"completed_today_count"`
	PlannedHoursToday    float64 `json:"planned_hours_today"`
	CompletionPercentage float64 `json:"completion_percentage"`
}

// SubjectSummary aggregates an owner's history for one subject. Sessions
// whose subject has been deleted are grouped under the name "Unknown".
type SubjectSummary struct {
	SubjectID       uuid.UUID `json:"subject_id"`
	SubjectName     string    `json:"subject_name"`
	PlannedSessions int       `json:"planned_sessions"`
	CompletedCount  int       `json:"completed_count"`
	CompletionRate  float64   `json:"completion_rate"`
	ActualHours     float64   `json:"actual_hours"`
}

type DashboardService interface {
	Stats(ctx context.Context, ownerID uuid.UUID) (DashboardStats, error)
	CurrentStreak(ctx context.Context, ownerID uuid.UUID) (int, error)
	SubjectSummaries(ctx context.Context, ownerID uuid.UUID) ([]SubjectSummary, error)
}

type dashboardService struct {
	db           *gorm.DB
	log          *logger.Logger
	subjectRepo  repos.SubjectRepo
	examRepo     repos.ExamRepo
	sessionRepo  repos.SessionRepo
	progressRepo repos.ProgressRepo
	clk          clock.Clock
}

func NewDashboardService(
	db *gorm.DB,
	log *logger.Logger,
	subjectRepo repos.SubjectRepo,
	examRepo repos.ExamRepo,
	sessionRepo repos.SessionRepo,
	progressRepo repos.ProgressRepo,
	clk clock.Clock,
) DashboardService {
	serviceLog := log.With("service", "DashboardService")
	return &dashboardService{
		db:           db,
		log:          serviceLog,
		subjectRepo:  subjectRepo,
		examRepo:     examRepo,
		sessionRepo:  sessionRepo,
		progressRepo: progressRepo,
		clk:          clk,
	}
}

func (ds *dashboardService) Stats(ctx context.Context, ownerID uuid.UUID) (DashboardStats, error) {
	today := planner.DateOnly(ds.clk.Now())

	var (
		subjects      []*types.Subject
		upcomingExams int64
		todaySessions []*types.StudySession
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		subjects, err = ds.subjectRepo.GetByOwner(gctx, nil, ownerID)
		return err
	})
	g.Go(func() error {
		var err error
		upcomingExams, err = ds.examRepo.CountUpcomingByOwner(gctx, nil, ownerID, today)
		return err
	})
	g.Go(func() error {
		var err error
		todaySessions, err = ds.sessionRepo.GetByOwnerAndDate(gctx, nil, ownerID, today)
		return err
	})
	if err := g.Wait(); err != nil {
		return DashboardStats{}, apierr.Internal(err)
	}

	stats := DashboardStats{
		SubjectsCount:      len(subjects),
		UpcomingExamsCount: int(upcomingExams),
		TodaySessionsCount: len(todaySessions),
	}
	for _, session := range todaySessions {
		stats.PlannedHoursToday += session.PlannedHours
		if session.IsCompleted {
			stats.CompletedTodayCount++
		}
	}
	if stats.TodaySessionsCount > 0 {
		stats.CompletionPercentage = float64(stats.CompletedTodayCount) / float64(stats.TodaySessionsCount) * 100
	}
	return stats, nil
}

// CurrentStreak counts consecutive days ending today on which at least one
// session was completed, stopping at the first day without one.
func (ds *dashboardService) CurrentStreak(ctx context.Context, ownerID uuid.UUID) (int, error) {
	sessions, err := ds.sessionRepo.GetByOwner(ctx, nil, ownerID)
	if err != nil {
		return 0, apierr.Internal(err)
	}

	completedDays := make(map[string]bool)
	for _, session := range sessions {
		if session.IsCompleted {
			completedDays[planner.DateOnly(session.StudyDate).Format("2006-01-02")] = true
		}
	}

	streak := 0
	for day := planner.DateOnly(ds.clk.Now()); completedDays[day.Format("2006-01-02")]; day = day.AddDate(0, 0, -1) {
		streak++
	}
	return streak, nil
}

func (ds *dashboardService) SubjectSummaries(ctx context.Context, ownerID uuid.UUID) ([]SubjectSummary, error) {
	var (
		subjects []*types.Subject
		sessions []*types.StudySession
		records  []*types.ProgressRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		subjects, err = ds.subjectRepo.GetByOwner(gctx, nil, ownerID)
		return err
	})
	g.Go(func() error {
		var err error
		sessions, err = ds.sessionRepo.GetByOwner(gctx, nil, ownerID)
		return err
	})
	g.Go(func() error {
		var err error
		records, err = ds.progressRepo.GetByOwner(gctx, nil, ownerID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, apierr.Internal(err)
	}

	names := make(map[uuid.UUID]string, len(subjects))
	for _, subject := range subjects {
		names[subject.ID] = subject.Name
	}
	sessionSubject := make(map[uuid.UUID]uuid.UUID, len(sessions))

	summaries := make(map[uuid.UUID]*SubjectSummary)
	order := make([]uuid.UUID, 0, len(subjects)+1)
	ensure := func(subjectID uuid.UUID) *SubjectSummary {
		if summary, ok := summaries[subjectID]; ok {
			return summary
		}
		name, ok := names[subjectID]
		if !ok {
			name = UnknownSubjectName
		}
		summary := &SubjectSummary{SubjectID: subjectID, SubjectName: name}
		summaries[subjectID] = summary
		order = append(order, subjectID)
		return summary
	}
	for _, subject := range subjects {
		ensure(subject.ID)
	}
	for _, session := range sessions {
		sessionSubject[session.ID] = session.SubjectID
		summary := ensure(session.SubjectID)
		summary.PlannedSessions++
		if session.IsCompleted {
			summary.CompletedCount++
		}
	}
	for _, record := range records {
		subjectID, ok := sessionSubject[record.SessionID]
		if !ok {
			continue
		}
		ensure(subjectID).ActualHours += record.ActualHours
	}

	out := make([]SubjectSummary, 0, len(order))
	for _, subjectID := range order {
		summary := summaries[subjectID]
		if summary.PlannedSessions > 0 {
			summary.CompletionRate = float64(summary.CompletedCount) / float64(summary.PlannedSessions) * 100
		}
		out = append(out, *summary)
	}
	return out, nil
}
