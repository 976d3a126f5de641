package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/facebookgo/clock"

	"github.com/studypilot/studypilot-backend/internal/db"
	"github.com/studypilot/studypilot-backend/internal/handlers"
	"github.com/studypilot/studypilot-backend/internal/logger"
	"github.com/studypilot/studypilot-backend/internal/middleware"
	"github.com/studypilot/studypilot-backend/internal/repos"
	"github.com/studypilot/studypilot-backend/internal/server"
	"github.com/studypilot/studypilot-backend/internal/services"
	"github.com/studypilot/studypilot-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
	defaultDailyHours := utils.GetEnvAsFloat("DEFAULT_DAILY_STUDY_HOURS", 4.0, log)
	serverPort := utils.GetEnv("PORT", "8080", log)
	corsOrigins := utils.GetEnv("CORS_ALLOW_ORIGINS", "", log)

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Fatal("Postgres init failed", "error", err)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Fatal("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	clk := clock.New()

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	userTokenRepo := repos.NewUserTokenRepo(thePG, log)
	preferenceRepo := repos.NewPreferenceRepo(thePG, log)
	subjectRepo := repos.NewSubjectRepo(thePG, log)
	examRepo := repos.NewExamRepo(thePG, log)
	sessionRepo := repos.NewSessionRepo(thePG, log)
	progressRepo := repos.NewProgressRepo(thePG, log)

	// Services
	log.Info("Setting up Services from main...")
	authService := services.NewAuthService(thePG, log, userRepo, userTokenRepo, jwtSecretKey,
		time.Duration(accessTokenTTL)*time.Second, time.Duration(refreshTokenTTL)*time.Second)
	userService := services.NewUserService(thePG, log, userRepo, preferenceRepo, defaultDailyHours)
	subjectService := services.NewSubjectService(thePG, log, subjectRepo, examRepo, sessionRepo)
	examService := services.NewExamService(thePG, log, examRepo, subjectRepo, clk)
	planService := services.NewPlanService(thePG, log, subjectRepo, examRepo, sessionRepo, progressRepo, preferenceRepo, defaultDailyHours, clk)
	progressService := services.NewProgressService(thePG, log, progressRepo, sessionRepo, clk)
	dashboardService := services.NewDashboardService(thePG, log, subjectRepo, examRepo, sessionRepo, progressRepo, clk)

	// Handlers
	log.Info("Setting up Handlers from main...")
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	subjectHandler := handlers.NewSubjectHandler(subjectService)
	examHandler := handlers.NewExamHandler(examService)
	studyPlanHandler := handlers.NewStudyPlanHandler(planService)
	progressHandler := handlers.NewProgressHandler(progressService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	var allowOrigins []string
	if corsOrigins != "" {
		allowOrigins = strings.Split(corsOrigins, ",")
	}
	router := server.NewRouter(server.RouterConfig{
		AuthHandler:      authHandler,
		AuthMiddleware:   authMiddleware,
		UserHandler:      userHandler,
		SubjectHandler:   subjectHandler,
		ExamHandler:      examHandler,
		StudyPlanHandler: studyPlanHandler,
		ProgressHandler:  progressHandler,
		DashboardHandler: dashboardHandler,
		AllowOrigins:     allowOrigins,
	})

	log.Info("Starting server...", "port", serverPort)
	if err := router.Run(":" + serverPort); err != nil {
		log.Fatal("Server exited", "error", err)
	}
}
