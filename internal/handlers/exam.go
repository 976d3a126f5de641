package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/studypilot/studypilot-backend/internal/apierr"
	"github.com/studypilot/studypilot-backend/internal/services"
)

type ExamHandler struct {
	examService services.ExamService
}

func NewExamHandler(examService services.ExamService) *ExamHandler {
	return &ExamHandler{examService: examService}
}

type examRequest struct {
	SubjectID     string `json:"subject_id"`
	ExamName      string `json:"exam_name"`
	ExamDate      string `json:"exam_date"`
	PriorityLevel string `json:"priority_level"`
}

func (er examRequest) toInput() (services.ExamInput, error) {
	subjectID, err := uuid.Parse(er.SubjectID)
	if err != nil {
		return services.ExamInput{}, apierr.Validation("invalid subject_id")
	}
	examDate, err := parseDate(er.ExamDate)
	if err != nil {
		return services.ExamInput{}, apierr.Validation("exam_date must be formatted as YYYY-MM-DD")
	}
	return services.ExamInput{
		SubjectID:     subjectID,
		ExamName:      er.ExamName,
		ExamDate:      examDate,
		PriorityLevel: er.PriorityLevel,
	}, nil
}

func (eh *ExamHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	exams, err := eh.examService.ListExams(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, exams)
}

func (eh *ExamHandler) ListUpcoming(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	exams, err := eh.examService.ListUpcomingExams(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, exams)
}

func (eh *ExamHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	examID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	exam, err := eh.examService.GetExam(c.Request.Context(), userID, examID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, exam)
}

func (eh *ExamHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req examRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeValidation, apierr.Validation("invalid request body"))
		return
	}
	input, err := req.toInput()
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	exam, err := eh.examService.CreateExam(c.Request.Context(), userID, input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, exam)
}

func (eh *ExamHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	examID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req examRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeValidation, apierr.Validation("invalid request body"))
		return
	}
	input, err := req.toInput()
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	exam, err := eh.examService.UpdateExam(c.Request.Context(), userID, examID, input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, exam)
}

func (eh *ExamHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	examID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := eh.examService.DeleteExam(c.Request.Context(), userID, examID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}
