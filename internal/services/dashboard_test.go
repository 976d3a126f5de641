package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/studypilot/studypilot-backend/internal/planner"
	"github.com/studypilot/studypilot-backend/internal/types"
)

func (env *testEnv) mustCreateExam(t *testing.T, subjectID uuid.UUID, name string, date time.Time) *types.Exam {
	t.Helper()
	exam := &types.Exam{
		ID:            uuid.New(),
		UserID:        env.ownerID,
		SubjectID:     subjectID,
		ExamName:      name,
		ExamDate:      planner.DateOnly(date),
		PriorityLevel: types.ExamPriorityMedium,
	}
	if _, err := env.examRepo.Create(context.Background(), nil, []*types.Exam{exam}); err != nil {
		t.Fatalf("failed to create exam: %v", err)
	}
	return exam
}

func (env *testEnv) mustCompleteSession(t *testing.T, sessionID uuid.UUID) {
	t.Helper()
	if _, err := env.planService().CompleteSession(context.Background(), env.ownerID, sessionID); err != nil {
		t.Fatalf("failed to complete session: %v", err)
	}
}

func TestStats_SummarizesToday(t *testing.T) {
	env := newTestEnv(t)
	svc := env.dashboardService()
	math := env.mustCreateSubject(t, "Math")
	physics := env.mustCreateSubject(t, "Physics")

	env.mustCreateExam(t, math.ID, "Final", env.today().AddDate(0, 0, 5))
	env.mustCreateExam(t, physics.ID, "Past midterm", env.today().AddDate(0, 0, -5))

	a := env.mustCreateSession(t, math.ID, env.today(), 2.0)
	env.mustCreateSession(t, physics.ID, env.today(), 1.5)
	env.mustCreateSession(t, math.ID, env.today().AddDate(0, 0, 1), 1.0)
	env.mustCompleteSession(t, a.ID)

	stats, err := svc.Stats(context.Background(), env.ownerID)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.SubjectsCount != 2 {
		t.Fatalf("subjects = %d, want 2", stats.SubjectsCount)
	}
	if stats.UpcomingExamsCount != 1 {
		t.Fatalf("upcoming exams = %d, want 1 (past exams excluded)", stats.UpcomingExamsCount)
	}
	if stats.TodaySessionsCount != 2 {
		t.Fatalf("today sessions = %d, want 2", stats.TodaySessionsCount)
	}
	if stats.CompletedTodayCount != 1 {
		t.Fatalf("completed today = %d, want 1", stats.CompletedTodayCount)
	}
	if stats.PlannedHoursToday != 3.5 {
		t.Fatalf("planned hours today = %v, want 3.5", stats.PlannedHoursToday)
	}
	if stats.CompletionPercentage != 50 {
		t.Fatalf("completion = %v, want 50", stats.CompletionPercentage)
	}
}

func TestStats_EmptyDayHasZeroCompletion(t *testing.T) {
	env := newTestEnv(t)
	svc := env.dashboardService()

	stats, err := svc.Stats(context.Background(), env.ownerID)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.CompletionPercentage != 0 {
		t.Fatalf("completion = %v, want 0 for an empty day", stats.CompletionPercentage)
	}
}

func TestCurrentStreak_CountsBackFromToday(t *testing.T) {
	env := newTestEnv(t)
	svc := env.dashboardService()
	subject := env.mustCreateSubject(t, "Math")

	// Completed sessions today, yesterday and two days ago; a gap at three.
	for _, daysAgo := range []int{0, 1, 2, 4} {
		session := env.mustCreateSession(t, subject.ID, env.today().AddDate(0, 0, -daysAgo), 1.0)
		env.mustCompleteSession(t, session.ID)
	}

	streak, err := svc.CurrentStreak(context.Background(), env.ownerID)
	if err != nil {
		t.Fatalf("CurrentStreak failed: %v", err)
	}
	if streak != 3 {
		t.Fatalf("streak = %d, want 3", streak)
	}
}

func TestCurrentStreak_ZeroWithoutCompletionToday(t *testing.T) {
	env := newTestEnv(t)
	svc := env.dashboardService()
	subject := env.mustCreateSubject(t, "Math")

	session := env.mustCreateSession(t, subject.ID, env.today().AddDate(0, 0, -1), 1.0)
	env.mustCompleteSession(t, session.ID)
	env.mustCreateSession(t, subject.ID, env.today(), 1.0)

	streak, err := svc.CurrentStreak(context.Background(), env.ownerID)
	if err != nil {
		t.Fatalf("CurrentStreak failed: %v", err)
	}
	if streak != 0 {
		t.Fatalf("streak = %d, want 0 when today has no completed session", streak)
	}
}

func TestSubjectSummaries_AggregatesPerSubject(t *testing.T) {
	env := newTestEnv(t)
	svc := env.dashboardService()
	math := env.mustCreateSubject(t, "Math")
	physics := env.mustCreateSubject(t, "Physics")

	a := env.mustCreateSession(t, math.ID, env.today(), 2.0)
	env.mustCreateSession(t, math.ID, env.today().AddDate(0, 0, 1), 1.0)
	env.mustCompleteSession(t, a.ID)
	env.mustCreateSession(t, uuid.New(), env.today(), 1.0)

	summaries, err := svc.SubjectSummaries(context.Background(), env.ownerID)
	if err != nil {
		t.Fatalf("SubjectSummaries failed: %v", err)
	}

	byName := map[string]SubjectSummary{}
	for _, s := range summaries {
		byName[s.SubjectName] = s
	}
	mathSummary, ok := byName["Math"]
	if !ok {
		t.Fatalf("missing Math summary")
	}
	if mathSummary.PlannedSessions != 2 || mathSummary.CompletedCount != 1 {
		t.Fatalf("math summary = %+v", mathSummary)
	}
	if mathSummary.CompletionRate != 50 {
		t.Fatalf("math completion rate = %v, want 50", mathSummary.CompletionRate)
	}
	if mathSummary.ActualHours != 2.0 {
		t.Fatalf("math actual hours = %v, want planned 2.0 from auto record", mathSummary.ActualHours)
	}

	physicsSummary, ok := byName["Physics"]
	if !ok {
		t.Fatalf("missing Physics summary even without sessions")
	}
	if physicsSummary.SubjectID != physics.ID {
		t.Fatalf("physics summary subject id = %v, want %v", physicsSummary.SubjectID, physics.ID)
	}
	if physicsSummary.PlannedSessions != 0 || physicsSummary.CompletionRate != 0 {
		t.Fatalf("physics summary = %+v", physicsSummary)
	}

	unknown, ok := byName[UnknownSubjectName]
	if !ok {
		t.Fatalf("missing summary for orphaned session")
	}
	if unknown.PlannedSessions != 1 {
		t.Fatalf("unknown summary = %+v", unknown)
	}
}
