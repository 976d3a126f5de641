package services

import (
	"context"
	"strings"
	"time"

	"github.com/facebookgo/clock"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studypilot/studypilot-backend/internal/apierr"
	"github.com/studypilot/studypilot-backend/internal/logger"
	"github.com/studypilot/studypilot-backend/internal/planner"
	"github.com/studypilot/studypilot-backend/internal/repos"
	"github.com/studypilot/studypilot-backend/internal/types"
)

type ExamInput struct {
	SubjectID     uuid.UUID
	ExamName      string
	ExamDate      time.Time
	PriorityLevel string
}

type ExamService interface {
	ListExams(ctx context.Context, ownerID uuid.UUID) ([]*types.Exam, error)
	ListUpcomingExams(ctx context.Context, ownerID uuid.UUID) ([]*types.Exam, error)
	GetExam(ctx context.Context, ownerID, examID uuid.UUID) (*types.Exam, error)
	CreateExam(ctx context.Context, ownerID uuid.UUID, input ExamInput) (*types.Exam, error)
	UpdateExam(ctx context.Context, ownerID, examID uuid.UUID, input ExamInput) (*types.Exam, error)
	DeleteExam(ctx context.Context, ownerID, examID uuid.UUID) error
}

type examService struct {
	db          *gorm.DB
	log         *logger.Logger
	examRepo    repos.ExamRepo
	subjectRepo repos.SubjectRepo
	clk         clock.Clock
}

func NewExamService(db *gorm.DB, log *logger.Logger, examRepo repos.ExamRepo, subjectRepo repos.SubjectRepo, clk clock.Clock) ExamService {
	serviceLog := log.With("service", "ExamService")
	return &examService{
		db:          db,
		log:         serviceLog,
		examRepo:    examRepo,
		subjectRepo: subjectRepo,
		clk:         clk,
	}
}

func (es *examService) ListExams(ctx context.Context, ownerID uuid.UUID) ([]*types.Exam, error) {
	exams, err := es.examRepo.GetByOwner(ctx, nil, ownerID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return exams, nil
}

func (es *examService) ListUpcomingExams(ctx context.Context, ownerID uuid.UUID) ([]*types.Exam, error) {
	today := planner.DateOnly(es.clk.Now())
	exams, err := es.examRepo.GetUpcomingByOwner(ctx, nil, ownerID, today)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return exams, nil
}

func (es *examService) GetExam(ctx context.Context, ownerID, examID uuid.UUID) (*types.Exam, error) {
	exam, err := es.examRepo.GetByOwnerAndID(ctx, nil, ownerID, examID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if exam == nil {
		return nil, apierr.NotFound("exam not found")
	}
	return exam, nil
}

func (es *examService) CreateExam(ctx context.Context, ownerID uuid.UUID, input ExamInput) (*types.Exam, error) {
	if err := es.validateInput(ctx, ownerID, &input); err != nil {
		return nil, err
	}
	exam := &types.Exam{
		ID:            uuid.New(),
		UserID:        ownerID,
		SubjectID:     input.SubjectID,
		ExamName:      input.ExamName,
		ExamDate:      planner.DateOnly(input.ExamDate),
		PriorityLevel: input.PriorityLevel,
	}
	if _, err := es.examRepo.Create(ctx, nil, []*types.Exam{exam}); err != nil {
		return nil, apierr.Internal(err)
	}
	return exam, nil
}

func (es *examService) UpdateExam(ctx context.Context, ownerID, examID uuid.UUID, input ExamInput) (*types.Exam, error) {
	exam, err := es.GetExam(ctx, ownerID, examID)
	if err != nil {
		return nil, err
	}
	if err := es.validateInput(ctx, ownerID, &input); err != nil {
		return nil, err
	}
	exam.SubjectID = input.SubjectID
	exam.ExamName = input.ExamName
	exam.ExamDate = planner.DateOnly(input.ExamDate)
	exam.PriorityLevel = input.PriorityLevel
	if err := es.examRepo.Update(ctx, nil, exam); err != nil {
		return nil, apierr.Internal(err)
	}
	return exam, nil
}

func (es *examService) DeleteExam(ctx context.Context, ownerID, examID uuid.UUID) error {
	if _, err := es.GetExam(ctx, ownerID, examID); err != nil {
		return err
	}
	if err := es.examRepo.DeleteByOwnerAndID(ctx, nil, ownerID, examID); err != nil {
		return apierr.Internal(err)
	}
	return nil
}

func (es *examService) validateInput(ctx context.Context, ownerID uuid.UUID, input *ExamInput) error {
	input.ExamName = strings.TrimSpace(input.ExamName)
	if input.ExamName == "" {
		return apierr.Validation("exam name is required")
	}
	if input.ExamDate.IsZero() {
		return apierr.Validation("exam date is required")
	}
	if input.PriorityLevel == "" {
		input.PriorityLevel = types.ExamPriorityMedium
	}
	if !types.ValidExamPriority(input.PriorityLevel) {
		return apierr.Validation("priority level must be low, medium or high")
	}
	subject, err := es.subjectRepo.GetByOwnerAndID(ctx, nil, ownerID, input.SubjectID)
	if err != nil {
		return apierr.Internal(err)
	}
	if subject == nil {
		return apierr.NotFound("subject not found")
	}
	return nil
}
