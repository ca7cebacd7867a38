package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"clinic-scheduling-server/internal/utils"
)

// RequestID assigns a fresh correlation id to every request. The id is
// echoed in every response envelope and in the X-Request-ID header, and
// is never persisted.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.New().String()
		c.Set(utils.RequestIDKey, id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}
