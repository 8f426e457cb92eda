package utils

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceID(c *gin.Context) string {
	if v, ok := c.Get("trace_id"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondCreated(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, APIResponse{
		Status:  "success",
		Code:    http.StatusCreated,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
	})
}

// HandleServiceError maps the service error taxonomy onto HTTP. Gateway
// declines never reach here: they come back as ordinary failed responses.
func HandleServiceError(c *gin.Context, err error) {
	var ve *ValidationError

	switch {
	case errors.As(err, &ve):
		RespondError(c, http.StatusBadRequest, ve.Message)
	case errors.Is(err, ErrDuplicateInFlight),
		errors.Is(err, ErrDuplicateName):
		RespondError(c, http.StatusConflict, err.Error())
	case errors.Is(err, ErrRecordNotFound),
		errors.Is(err, ErrPlanNotFound),
		errors.Is(err, ErrInstrumentNotFound),
		errors.Is(err, ErrSubscriptionNotFound),
		errors.Is(err, ErrTransactionNotFound):
		RespondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrGatewayUnavailable):
		log.Printf("Gateway error: %v", err)
		RespondError(c, http.StatusBadGateway, "Settlement gateway unavailable")
	case errors.Is(err, ErrDatabaseError):
		log.Printf("Database error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		log.Printf("Unknown error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
