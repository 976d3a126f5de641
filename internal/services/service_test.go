package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/facebookgo/clock"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/studypilot/studypilot-backend/internal/logger"
	"github.com/studypilot/studypilot-backend/internal/planner"
	"github.com/studypilot/studypilot-backend/internal/repos"
	"github.com/studypilot/studypilot-backend/internal/types"
)

// testEnv wires the service stack against an isolated in-memory database
// with a controllable clock.
type testEnv struct {
	db      *gorm.DB
	log     *logger.Logger
	clk     *clock.Mock
	ownerID uuid.UUID

	userRepo       repos.UserRepo
	preferenceRepo repos.PreferenceRepo
	subjectRepo    repos.SubjectRepo
	examRepo       repos.ExamRepo
	sessionRepo    repos.SessionRepo
	progressRepo   repos.ProgressRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(
		&types.User{},
		&types.UserToken{},
		&types.UserPreference{},
		&types.Subject{},
		&types.Exam{},
		&types.StudySession{},
		&types.ProgressRecord{},
	); err != nil {
		t.Fatalf("auto migration failed: %v", err)
	}

	log := logger.NewNop()
	env := &testEnv{
		db:             db,
		log:            log,
		clk:            clock.NewMock(),
		ownerID:        uuid.New(),
		userRepo:       repos.NewUserRepo(db, log),
		preferenceRepo: repos.NewPreferenceRepo(db, log),
		subjectRepo:    repos.NewSubjectRepo(db, log),
		examRepo:       repos.NewExamRepo(db, log),
		sessionRepo:    repos.NewSessionRepo(db, log),
		progressRepo:   repos.NewProgressRepo(db, log),
	}
	// Tests reason in whole days from the mock clock's start.
	env.clk.Add(100 * 24 * time.Hour)
	return env
}

func (env *testEnv) today() time.Time {
	return planner.DateOnly(env.clk.Now())
}

func (env *testEnv) planService() PlanService {
	return NewPlanService(env.db, env.log, env.subjectRepo, env.examRepo,
		env.sessionRepo, env.progressRepo, env.preferenceRepo, 4.0, env.clk)
}

func (env *testEnv) progressService() ProgressService {
	return NewProgressService(env.db, env.log, env.progressRepo, env.sessionRepo, env.clk)
}

func (env *testEnv) dashboardService() DashboardService {
	return NewDashboardService(env.db, env.log, env.subjectRepo, env.examRepo,
		env.sessionRepo, env.progressRepo, env.clk)
}

func (env *testEnv) mustCreateSubject(t *testing.T, name string) *types.Subject {
	t.Helper()
	subject := &types.Subject{ID: uuid.New(), UserID: env.ownerID, Name: name}
	if _, err := env.subjectRepo.Create(context.Background(), nil, []*types.Subject{subject}); err != nil {
		t.Fatalf("failed to create subject %s: %v", name, err)
	}
	return subject
}

func (env *testEnv) mustCreateSession(t *testing.T, subjectID uuid.UUID, date time.Time, hours float64) *types.StudySession {
	t.Helper()
	session := &types.StudySession{
		ID:           uuid.New(),
		UserID:       env.ownerID,
		SubjectID:    subjectID,
		StudyDate:    planner.DateOnly(date),
		PlannedHours: hours,
		Topic:        "Study Session",
	}
	if _, err := env.sessionRepo.Create(context.Background(), nil, []*types.StudySession{session}); err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	return session
}
