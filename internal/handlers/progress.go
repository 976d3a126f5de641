package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/studypilot/studypilot-backend/internal/apierr"
	"github.com/studypilot/studypilot-backend/internal/services"
)

type ProgressHandler struct {
	progressService services.ProgressService
}

func NewProgressHandler(progressService services.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

func (ph *ProgressHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	records, err := ph.progressService.ListProgress(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, records)
}

func (ph *ProgressHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	recordID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	record, err := ph.progressService.GetProgress(c.Request.Context(), userID, recordID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, record)
}

func (ph *ProgressHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req struct {
		SessionID   string  `json:"session_id"`
		ActualHours float64 `json:"actual_hours"`
		Notes       string  `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeValidation, apierr.Validation("invalid request body"))
		return
	}
	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeValidation, apierr.Validation("invalid session_id"))
		return
	}
	record, err := ph.progressService.RecordProgress(c.Request.Context(), userID, sessionID, req.ActualHours, req.Notes)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

func (ph *ProgressHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	recordID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req struct {
		ActualHours float64 `json:"actual_hours"`
		Notes       string  `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeValidation, apierr.Validation("invalid request body"))
		return
	}
	record, err := ph.progressService.UpdateProgress(c.Request.Context(), userID, recordID, req.ActualHours, req.Notes)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, record)
}

func (ph *ProgressHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	recordID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := ph.progressService.DeleteProgress(c.Request.Context(), userID, recordID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

func (ph *ProgressHandler) Totals(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	totals, err := ph.progressService.Totals(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, totals)
}
