package middleware

import (
	"activity-dashboard/internal/utils"

	"github.com/gin-gonic/gin"
)

const (
	// SessionHeader selects the dashboard session whose snapshots a request updates
	SessionHeader = "X-Dashboard-Session"

	// SessionQueryParam is the query fallback for clients that cannot set headers
	SessionQueryParam = "session"

	// SessionKey is the gin context key holding the session id
	SessionKey = "sessionId"
)

// Session resolves the dashboard session from the header or query string,
// issuing a new one when neither is present. The id is echoed on the response.
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(SessionHeader)
		if sessionID == "" {
			sessionID = c.Query(SessionQueryParam)
		}
		if sessionID == "" {
			sessionID = utils.GenerateUUID()
		}
		c.Writer.Header().Set(SessionHeader, sessionID)
		c.Set(SessionKey, sessionID)
		c.Next()
	}
}

// GetSessionID returns the session id set by Session
func GetSessionID(c *gin.Context) string {
	return c.GetString(SessionKey)
}
