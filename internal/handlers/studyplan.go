package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studypilot/studypilot-backend/internal/apierr"
	"github.com/studypilot/studypilot-backend/internal/services"
)

type StudyPlanHandler struct {
	planService services.PlanService
}

func NewStudyPlanHandler(planService services.PlanService) *StudyPlanHandler {
	return &StudyPlanHandler{planService: planService}
}

func (sph *StudyPlanHandler) Generate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req struct {
		StartDate  string  `json:"start_date"`
		EndDate    string  `json:"end_date"`
		DailyHours float64 `json:"daily_study_hours"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeValidation, apierr.Validation("invalid request body"))
		return
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeValidation, apierr.Validation("start_date must be formatted as YYYY-MM-DD"))
		return
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeValidation, apierr.Validation("end_date must be formatted as YYYY-MM-DD"))
		return
	}
	sessions, err := sph.planService.GeneratePlan(c.Request.Context(), userID, startDate, endDate, req.DailyHours)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"sessions": sessions, "sessions_created": len(sessions)})
}

// List returns sessions in an explicit date range, or every session for the
// owner when no range is given.
func (sph *StudyPlanHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	startRaw := c.Query("start_date")
	endRaw := c.Query("end_date")
	if startRaw == "" && endRaw == "" {
		sessions, err := sph.planService.ListSessions(c.Request.Context(), userID)
		if err != nil {
			RespondServiceError(c, err)
			return
		}
		RespondOK(c, sessions)
		return
	}
	start, err := parseDate(startRaw)
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeValidation, apierr.Validation("start_date must be formatted as YYYY-MM-DD"))
		return
	}
	end, err := parseDate(endRaw)
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeValidation, apierr.Validation("end_date must be formatted as YYYY-MM-DD"))
		return
	}
	sessions, err := sph.planService.GetSessionsInRange(c.Request.Context(), userID, start, end)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, sessions)
}

func (sph *StudyPlanHandler) Today(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	tasks, err := sph.planService.GetTodayTasks(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, tasks)
}

func (sph *StudyPlanHandler) Upcoming(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	tasks, err := sph.planService.GetUpcomingTasks(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, tasks)
}

func (sph *StudyPlanHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sessionID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	session, err := sph.planService.GetSession(c.Request.Context(), userID, sessionID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, session)
}

func (sph *StudyPlanHandler) Complete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sessionID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	session, err := sph.planService.CompleteSession(c.Request.Context(), userID, sessionID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, session)
}

func (sph *StudyPlanHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sessionID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := sph.planService.DeleteSession(c.Request.Context(), userID, sessionID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}
