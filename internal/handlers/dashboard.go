package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/studypilot/studypilot-backend/internal/services"
)

type DashboardHandler struct {
	dashboardService services.DashboardService
}

func NewDashboardHandler(dashboardService services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (dh *DashboardHandler) Stats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	stats, err := dh.dashboardService.Stats(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, stats)
}

func (dh *DashboardHandler) Streak(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	streak, err := dh.dashboardService.CurrentStreak(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"streak_days": streak})
}

func (dh *DashboardHandler) SubjectSummaries(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	summaries, err := dh.dashboardService.SubjectSummaries(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, summaries)
}
