package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/studypilot/studypilot-backend/internal/handlers"
	"github.com/studypilot/studypilot-backend/internal/middleware"
)

type RouterConfig struct {
	AuthHandler      *handlers.AuthHandler
	AuthMiddleware   *middleware.AuthMiddleware
	UserHandler      *handlers.UserHandler
	SubjectHandler   *handlers.SubjectHandler
	ExamHandler      *handlers.ExamHandler
	StudyPlanHandler *handlers.StudyPlanHandler
	ProgressHandler  *handlers.ProgressHandler
	DashboardHandler *handlers.DashboardHandler
	AllowOrigins     []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	allowOrigins := cfg.AllowOrigins
	if len(allowOrigins) == 0 {
		allowOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	api := router.Group("/api")
	{
		api.POST("/auth/register", cfg.AuthHandler.Register)
		api.POST("/auth/login", cfg.AuthHandler.Login)
	}

	// ===============
	// || Protected ||
	// ===============
	protected := api.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())

	// Auth
	protected.POST("/auth/refresh", cfg.AuthHandler.Refresh)
	protected.POST("/auth/logout", cfg.AuthHandler.Logout)

	// User
	protected.GET("/user", cfg.UserHandler.GetMe)
	protected.GET("/user/preferences", cfg.UserHandler.GetPreferences)
	protected.PUT("/user/preferences", cfg.UserHandler.UpdatePreferences)

	// Subjects
	protected.GET("/subjects", cfg.SubjectHandler.List)
	protected.POST("/subjects", cfg.SubjectHandler.Create)
	protected.GET("/subjects/:id", cfg.SubjectHandler.Get)
	protected.PUT("/subjects/:id", cfg.SubjectHandler.Update)
	protected.DELETE("/subjects/:id", cfg.SubjectHandler.Delete)

	// Exams
	protected.GET("/exams", cfg.ExamHandler.List)
	protected.GET("/exams/upcoming", cfg.ExamHandler.ListUpcoming)
	protected.POST("/exams", cfg.ExamHandler.Create)
	protected.GET("/exams/:id", cfg.ExamHandler.Get)
	protected.PUT("/exams/:id", cfg.ExamHandler.Update)
	protected.DELETE("/exams/:id", cfg.ExamHandler.Delete)

	// Study plans
	protected.POST("/study-plans/generate", cfg.StudyPlanHandler.Generate)
	protected.GET("/study-plans", cfg.StudyPlanHandler.List)
	protected.GET("/study-plans/today", cfg.StudyPlanHandler.Today)
	protected.GET("/study-plans/upcoming", cfg.StudyPlanHandler.Upcoming)
	protected.GET("/study-plans/:id", cfg.StudyPlanHandler.Get)
	protected.PUT("/study-plans/:id/complete", cfg.StudyPlanHandler.Complete)
	protected.DELETE("/study-plans/:id", cfg.StudyPlanHandler.Delete)

	// Progress
	protected.GET("/progress", cfg.ProgressHandler.List)
	protected.POST("/progress", cfg.ProgressHandler.Create)
	protected.GET("/progress/total-hours", cfg.ProgressHandler.Totals)
	protected.GET("/progress/:id", cfg.ProgressHandler.Get)
	protected.PUT("/progress/:id", cfg.ProgressHandler.Update)
	protected.DELETE("/progress/:id", cfg.ProgressHandler.Delete)

	// Dashboard
	protected.GET("/dashboard/stats", cfg.DashboardHandler.Stats)
	protected.GET("/dashboard/today-tasks", cfg.StudyPlanHandler.Today)
	protected.GET("/dashboard/streak", cfg.DashboardHandler.Streak)
	protected.GET("/dashboard/subject-summaries", cfg.DashboardHandler.SubjectSummaries)

	return router
}
