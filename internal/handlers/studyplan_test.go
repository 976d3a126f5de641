package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/studypilot/studypilot-backend/internal/requestdata"
	"github.com/studypilot/studypilot-backend/internal/services"
	"github.com/studypilot/studypilot-backend/internal/types"
)

type stubPlanService struct {
	gotOwnerID    uuid.UUID
	gotStart      time.Time
	gotEnd        time.Time
	gotDailyHours float64
}

var _ services.PlanService = (*stubPlanService)(nil)

func (s *stubPlanService) GeneratePlan(ctx context.Context, ownerID uuid.UUID, startDate, endDate time.Time, dailyHours float64) ([]*types.StudySession, error) {
	s.gotOwnerID = ownerID
	s.gotStart = startDate
	s.gotEnd = endDate
	s.gotDailyHours = dailyHours
	return []*types.StudySession{}, nil
}

func (s *stubPlanService) GetSession(ctx context.Context, ownerID, sessionID uuid.UUID) (*types.StudySession, error) {
	return nil, nil
}

func (s *stubPlanService) GetSessionsForDate(ctx context.Context, ownerID uuid.UUID, date time.Time) ([]*types.StudySession, error) {
	return nil, nil
}

func (s *stubPlanService) GetSessionsInRange(ctx context.Context, ownerID uuid.UUID, start, end time.Time) ([]*types.StudySession, error) {
	return nil, nil
}

func (s *stubPlanService) ListSessions(ctx context.Context, ownerID uuid.UUID) ([]*types.StudySession, error) {
	return nil, nil
}

func (s *stubPlanService) GetTodayTasks(ctx context.Context, ownerID uuid.UUID) ([]services.TaskView, error) {
	return nil, nil
}

func (s *stubPlanService) GetUpcomingTasks(ctx context.Context, ownerID uuid.UUID) ([]services.TaskView, error) {
	return nil, nil
}

func (s *stubPlanService) CompleteSession(ctx context.Context, ownerID, sessionID uuid.UUID) (*types.StudySession, error) {
	return nil, nil
}

func (s *stubPlanService) DeleteSession(ctx context.Context, ownerID, sessionID uuid.UUID) error {
	return nil
}

func TestGenerate_BindsDailyStudyHours(t *testing.T) {
	gin.SetMode(gin.TestMode)
	stub := &stubPlanService{}
	handler := NewStudyPlanHandler(stub)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body := `{"start_date":"2025-03-10","end_date":"2025-03-12","daily_study_hours":2.5}`
	req := httptest.NewRequest(http.MethodPost, "/api/study-plans/generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	ownerID := uuid.New()
	c.Request = req.WithContext(requestdata.WithRequestData(req.Context(), &requestdata.RequestData{UserID: ownerID}))

	handler.Generate(c)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusCreated, w.Body.String())
	}
	if stub.gotOwnerID != ownerID {
		t.Fatalf("owner id = %v, want %v", stub.gotOwnerID, ownerID)
	}
	if stub.gotDailyHours != 2.5 {
		t.Fatalf("daily hours = %v, want 2.5", stub.gotDailyHours)
	}
	wantStart := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC)
	if !stub.gotStart.Equal(wantStart) || !stub.gotEnd.Equal(wantEnd) {
		t.Fatalf("range = %v..%v, want %v..%v", stub.gotStart, stub.gotEnd, wantStart, wantEnd)
	}
}
