package middleware

import (
	"time"

	"activity-dashboard/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AccessLog writes one structured log event per HTTP request. Query strings
// are not logged.
func AccessLog() gin.HandlerFunc {
	log := logger.WithComponent("http")

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		var event *zerolog.Event
		switch {
		case status >= 500:
			event = log.Error()
		case status >= 400:
			event = log.Warn()
		default:
			event = log.Info()
		}

		event = event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Float64("latency_ms", float64(time.Since(start))/float64(time.Millisecond)).
			Str("ip", c.ClientIP()).
			Int("size", c.Writer.Size()).
			Str("request_id", GetRequestID(c))

		if sessionID := GetSessionID(c); sessionID != "" {
			event = event.Str("session", sessionID)
		}
		if len(c.Errors) > 0 {
			event = event.Str("error", c.Errors.String())
		}

		event.Msg("request")
	}
}
