package utils

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// RequestIDKey is the gin context key the request-id middleware writes.
const RequestIDKey = "requestID"

// Meta is the correlation block attached to every response, success or
// failure. The requestId is generated per request and never persisted.
type Meta struct {
	RequestID      string `json:"requestId"`
	Timestamp      string `json:"timestamp"`
	ProcessingTime string `json:"processingTime,omitempty"`
	QueryType      string `json:"queryType,omitempty"`
}

// Envelope is the standard API response shape.
type Envelope struct {
	Success                bool        `json:"success"`
	Data                   interface{} `json:"data,omitempty"`
	Error                  string      `json:"error,omitempty"`
	Details                string      `json:"details,omitempty"`
	ConflictingAppointment interface{} `json:"conflictingAppointment,omitempty"`
	Meta                   Meta        `json:"meta"`
}

// NewMeta builds the meta block for the current request.
func NewMeta(c *gin.Context) Meta {
	return Meta{
		RequestID: c.GetString(RequestIDKey),
		Timestamp: time.Now().Format(time.RFC3339),
	}
}

// Success sends a 200 response with the standard envelope.
func Success(c *gin.Context, data interface{}) {
	SuccessWithMeta(c, data, NewMeta(c))
}

// SuccessWithMeta sends a 200 response with a caller-enriched meta
// block (processing time, query type).
func SuccessWithMeta(c *gin.Context, data interface{}, meta Meta) {
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

// Error sends a standard error response.
func Error(c *gin.Context, statusCode int, errorMessage string) {
	c.JSON(statusCode, Envelope{
		Success: false,
		Error:   errorMessage,
		Meta:    NewMeta(c),
	})
}

// BadRequest sends a 400 Bad Request error response.
func BadRequest(c *gin.Context, errorMessage string) {
	Error(c, http.StatusBadRequest, errorMessage)
}

// Unauthorized sends a 401 Unauthorized error response.
func Unauthorized(c *gin.Context, errorMessage string) {
	Error(c, http.StatusUnauthorized, errorMessage)
}

// Forbidden sends a 403 Forbidden error response.
func Forbidden(c *gin.Context, errorMessage string) {
	Error(c, http.StatusForbidden, errorMessage)
}

// NotFound sends a 404 Not Found error response.
func NotFound(c *gin.Context, errorMessage string) {
	Error(c, http.StatusNotFound, errorMessage)
}

// Conflict sends a 409 response carrying the conflicting appointment
// details so the caller can offer an alternate slot.
func Conflict(c *gin.Context, errorMessage string, conflicting interface{}) {
	c.JSON(http.StatusConflict, Envelope{
		Success:                false,
		Error:                  errorMessage,
		ConflictingAppointment: conflicting,
		Meta:                   NewMeta(c),
	})
}

// InternalServerError sends a 500 response. details is included only
// when non-empty; callers pass "" in production.
func InternalServerError(c *gin.Context, errorMessage, details string) {
	c.JSON(http.StatusInternalServerError, Envelope{
		Success: false,
		Error:   errorMessage,
		Details: details,
		Meta:    NewMeta(c),
	})
}
