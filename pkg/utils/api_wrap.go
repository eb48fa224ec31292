package utils

import (
	"errors"
	"net/http"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"roadtrip/internal/models/request_models"
	"roadtrip/internal/models/route_models"
)

// maxRawInError bounds how much rejected model text is echoed back.
const maxRawInError = 512

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceIDOf(c *gin.Context) string {
	if v, ok := c.Get("trace_id"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	RespondWithStatus(c, http.StatusOK, data, message)
}

func RespondWithStatus(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, APIResponse{
		Status:  "success",
		Code:    code,
		Message: message,
		TraceID: traceIDOf(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceIDOf(c),
	})
}

func respondErrorWithData(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceIDOf(c),
		Data:    data,
	})
}

// HandleServiceError maps service and engine errors onto the API envelope.
func HandleServiceError(c *gin.Context, logger *zap.Logger, err error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var verr *route_models.ValidationError
	var perr *route_models.ParseError

	switch {
	case errors.As(err, &verr):
		respondErrorWithData(c, http.StatusUnprocessableEntity, "Itinerary failed validation", gin.H{
			"kind":   verr.Kind.Error(),
			"key":    verr.Key,
			"detail": verr.Detail,
		})
	case errors.As(err, &perr):
		detail := ""
		if perr.Err != nil {
			detail = perr.Err.Error()
		}
		respondErrorWithData(c, http.StatusUnprocessableEntity, "Itinerary is not valid JSON", gin.H{
			"kind":   perr.Kind.Error(),
			"detail": detail,
			"raw":    truncateRaw(perr.Raw, maxRawInError),
		})
	case errors.Is(err, ErrInvalidItinerary):
		RespondError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, ErrInvalidInput), errors.Is(err, request_models.ErrInvalidPreferences):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrItineraryNotFound):
		RespondError(c, http.StatusNotFound, "Itinerary not found")
	case errors.Is(err, ErrUnexpectedBehaviorOfAI):
		logger.Warn("itinerary model failed", zap.String("trace_id", traceIDOf(c)), zap.Error(err))
		RespondError(c, http.StatusBadGateway, "Itinerary model is unavailable")
	default:
		logger.Error("unhandled service error", zap.String("trace_id", traceIDOf(c)), zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}

// truncateRaw cuts s to at most limit bytes on a rune boundary and marks the cut.
func truncateRaw(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "…"
}
