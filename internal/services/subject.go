package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studypilot/studypilot-backend/internal/apierr"
	"github.com/studypilot/studypilot-backend/internal/logger"
	"github.com/studypilot/studypilot-backend/internal/repos"
	"github.com/studypilot/studypilot-backend/internal/types"
)

type SubjectService interface {
	ListSubjects(ctx context.Context, ownerID uuid.UUID) ([]*types.Subject, error)
	GetSubject(ctx context.Context, ownerID, subjectID uuid.UUID) (*types.Subject, error)
	CreateSubject(ctx context.Context, ownerID uuid.UUID, name, description string) (*types.Subject, error)
	UpdateSubject(ctx context.Context, ownerID, subjectID uuid.UUID, name, description string) (*types.Subject, error)
	DeleteSubject(ctx context.Context, ownerID, subjectID uuid.UUID) error
}

type subjectService struct {
	db          *gorm.DB
	log         *logger.Logger
	subjectRepo repos.SubjectRepo
	examRepo    repos.ExamRepo
	sessionRepo repos.SessionRepo
}

func NewSubjectService(db *gorm.DB, log *logger.Logger, subjectRepo repos.SubjectRepo, examRepo repos.ExamRepo, sessionRepo repos.SessionRepo) SubjectService {
	serviceLog := log.With("service", "SubjectService")
	return &subjectService{
		db:          db,
		log:         serviceLog,
		subjectRepo: subjectRepo,
		examRepo:    examRepo,
		sessionRepo: sessionRepo,
	}
}

func (ss *subjectService) ListSubjects(ctx context.Context, ownerID uuid.UUID) ([]*types.Subject, error) {
	subjects, err := ss.subjectRepo.GetByOwner(ctx, nil, ownerID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return subjects, nil
}

func (ss *subjectService) GetSubject(ctx context.Context, ownerID, subjectID uuid.UUID) (*types.Subject, error) {
	subject, err := ss.subjectRepo.GetByOwnerAndID(ctx, nil, ownerID, subjectID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if subject == nil {
		return nil, apierr.NotFound("subject not found")
	}
	return subject, nil
}

func (ss *subjectService) CreateSubject(ctx context.Context, ownerID uuid.UUID, name, description string) (*types.Subject, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apierr.Validation("subject name is required")
	}
	exists, err := ss.subjectRepo.NameExists(ctx, nil, ownerID, name)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if exists {
		return nil, apierr.Conflict("subject with this name already exists")
	}

	subject := &types.Subject{
		ID:          uuid.New(),
		UserID:      ownerID,
		Name:        name,
		Description: description,
	}
	if _, err := ss.subjectRepo.Create(ctx, nil, []*types.Subject{subject}); err != nil {
		return nil, apierr.Internal(err)
	}
	return subject, nil
}

func (ss *subjectService) UpdateSubject(ctx context.Context, ownerID, subjectID uuid.UUID, name, description string) (*types.Subject, error) {
	subject, err := ss.GetSubject(ctx, ownerID, subjectID)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apierr.Validation("subject name is required")
	}
	if name != subject.Name {
		exists, err := ss.subjectRepo.NameExists(ctx, nil, ownerID, name)
		if err != nil {
			return nil, apierr.Internal(err)
		}
		if exists {
			return nil, apierr.Conflict("subject with this name already exists")
		}
	}
	subject.Name = name
	subject.Description = description
	if err := ss.subjectRepo.Update(ctx, nil, subject); err != nil {
		return nil, apierr.Internal(err)
	}
	return subject, nil
}

// DeleteSubject removes a subject along with its exams and sessions so no
// dangling plan rows survive. Progress records are kept as a historical
// log.
func (ss *subjectService) DeleteSubject(ctx context.Context, ownerID, subjectID uuid.UUID) error {
	subject, err := ss.GetSubject(ctx, ownerID, subjectID)
	if err != nil {
		return err
	}
	return ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ss.examRepo.DeleteBySubjectID(ctx, tx, ownerID, subject.ID); err != nil {
			return apierr.Internal(err)
		}
		if err := ss.sessionRepo.DeleteBySubjectID(ctx, tx, ownerID, subject.ID); err != nil {
			return apierr.Internal(err)
		}
		if err := ss.subjectRepo.DeleteByOwnerAndID(ctx, tx, ownerID, subject.ID); err != nil {
			return apierr.Internal(err)
		}
		return nil
	})
}
