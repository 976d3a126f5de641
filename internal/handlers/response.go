package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/studypilot/studypilot-backend/internal/apierr"
	"github.com/studypilot/studypilot-backend/internal/requestdata"
)

type APIError struct {
	Message     string `json:"message"`
	Code        string `json:"code,omitempty"`
	AvailableOn string `json:"available_on,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// RespondServiceError maps a typed service error onto the wire envelope.
// Untyped errors are treated as internal and the message is not leaked.
func RespondServiceError(c *gin.Context, err error) {
	apiErr := apierr.From(err)
	if apiErr == nil {
		apiErr = apierr.Internal(err)
	}
	payload := APIError{
		Message: apiErr.Error(),
		Code:    apiErr.Code,
	}
	if apiErr.Code == apierr.CodeInternal {
		payload.Message = "internal server error"
	}
	if apiErr.AvailableOn != nil {
		payload.AvailableOn = apiErr.AvailableOn.Format(time.DateOnly)
	}
	c.JSON(apiErr.Status, ErrorEnvelope{Error: payload})
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		RespondError(c, http.StatusUnauthorized, apierr.CodeUnauthorized, apierr.Unauthorized("missing authentication"))
		return uuid.Nil, false
	}
	return rd.UserID, true
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		RespondError(c, http.StatusBadRequest, apierr.CodeValidation, apierr.Validation("invalid %s", name))
		return uuid.Nil, false
	}
	return id, true
}

func parseDate(value string) (time.Time, error) {
	return time.Parse(time.DateOnly, value)
}
