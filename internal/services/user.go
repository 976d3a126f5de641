package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studypilot/studypilot-backend/internal/apierr"
	"github.com/studypilot/studypilot-backend/internal/logger"
	"github.com/studypilot/studypilot-backend/internal/repos"
	"github.com/studypilot/studypilot-backend/internal/types"
)

type UserService interface {
	GetUser(ctx context.Context, userID uuid.UUID) (*types.User, error)
	GetPreferences(ctx context.Context, userID uuid.UUID) (*types.UserPreference, error)
	UpdatePreferences(ctx context.Context, userID uuid.UUID, dailyStudyHours float64) (*types.UserPreference, error)
}

type userService struct {
	db                *gorm.DB
	log               *logger.Logger
	userRepo          repos.UserRepo
	preferenceRepo    repos.PreferenceRepo
	defaultDailyHours float64
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, preferenceRepo repos.PreferenceRepo, defaultDailyHours float64) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{
		db:                db,
		log:               serviceLog,
		userRepo:          userRepo,
		preferenceRepo:    preferenceRepo,
		defaultDailyHours: defaultDailyHours,
	}
}

func (us *userService) GetUser(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	users, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if len(users) == 0 {
		return nil, apierr.NotFound("user not found")
	}
	return users[0], nil
}

func (us *userService) GetPreferences(ctx context.Context, userID uuid.UUID) (*types.UserPreference, error) {
	pref, err := us.preferenceRepo.GetByOwner(ctx, nil, userID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if pref == nil {
		// Unsaved preferences fall back to the configured default.
		return &types.UserPreference{UserID: userID, DailyStudyHours: us.defaultDailyHours}, nil
	}
	return pref, nil
}

func (us *userService) UpdatePreferences(ctx context.Context, userID uuid.UUID, dailyStudyHours float64) (*types.UserPreference, error) {
	if dailyStudyHours <= 0 {
		return nil, apierr.Validation("daily study hours must be positive")
	}
	pref := &types.UserPreference{
		ID:              uuid.New(),
		UserID:          userID,
		DailyStudyHours: dailyStudyHours,
	}
	if err := us.preferenceRepo.Upsert(ctx, nil, pref); err != nil {
		return nil, apierr.Internal(err)
	}
	return pref, nil
}
