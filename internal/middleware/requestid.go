package middleware

import (
	"activity-dashboard/internal/database"
	"activity-dashboard/internal/utils"

	"github.com/gin-gonic/gin"
)

// RequestIDKey is the gin context key holding the request id
const RequestIDKey = "requestId"

// RequestID ensures every request has an X-Request-ID. A client supplied
// id is propagated; otherwise a new UUID is generated. The id is echoed on
// the response and forwarded to the statistics backend through the request
// context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader(database.RequestIDHeader)
		if reqID == "" {
			reqID = utils.GenerateUUID()
		}
		c.Writer.Header().Set(database.RequestIDHeader, reqID)
		c.Set(RequestIDKey, reqID)
		c.Request = c.Request.WithContext(database.ContextWithRequestID(c.Request.Context(), reqID))
		c.Next()
	}
}

// GetRequestID returns the request id set by RequestID
func GetRequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}
