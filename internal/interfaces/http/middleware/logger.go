package middleware

import (
	"time"

	"company-site.backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

// LoggerMiddleware writes one structured line per request. Requests to the
// skip paths (health checks, scrapes) are served without a log line.
func LoggerMiddleware(skip ...string) gin.HandlerFunc {
	quiet := make(map[string]struct{}, len(skip))
	for _, p := range skip {
		quiet[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := quiet[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path += "?" + raw
		}

		c.Next()

		logger.LogRequest(c.Request.Context(), logger.RequestLog{
			Method:   c.Request.Method,
			Path:     path,
			Status:   c.Writer.Status(),
			Latency:  time.Since(start),
			ClientIP: c.ClientIP(),
			Bytes:    c.Writer.Size(),
			Errors:   c.Errors.ByType(gin.ErrorTypePrivate).String(),
		})
	}
}
