package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studypilot/studypilot-backend/internal/apierr"
	"github.com/studypilot/studypilot-backend/internal/services"
)

type SubjectHandler struct {
	subjectService services.SubjectService
}

func NewSubjectHandler(subjectService services.SubjectService) *SubjectHandler {
	return &SubjectHandler{subjectService: subjectService}
}

func (sh *SubjectHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	subjects, err := sh.subjectService.ListSubjects(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, subjects)
}

func (sh *SubjectHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	subjectID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	subject, err := sh.subjectService.GetSubject(c.Request.Context(), userID, subjectID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, subject)
}

func (sh *SubjectHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeValidation, apierr.Validation("invalid request body"))
		return
	}
	subject, err := sh.subjectService.CreateSubject(c.Request.Context(), userID, req.Name, req.Description)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, subject)
}

func (sh *SubjectHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	subjectID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeValidation, apierr.Validation("invalid request body"))
		return
	}
	subject, err := sh.subjectService.UpdateSubject(c.Request.Context(), userID, subjectID, req.Name, req.Description)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, subject)
}

func (sh *SubjectHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	subjectID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := sh.subjectService.DeleteSubject(c.Request.Context(), userID, subjectID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}
