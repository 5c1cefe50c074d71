package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	domainerrors "company-site.backend/internal/domain/errors"
	"company-site.backend/internal/interfaces/http/response"
	"company-site.backend/pkg/logger"
	"company-site.backend/pkg/redis"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	// LockDuration is the time we hold the lock while processing
	LockDuration = 30 * time.Second
	// RetentionDuration is how long we keep the response
	RetentionDuration = 24 * time.Hour

	processingMarker = "processing"
)

var (
	redisGet   = redis.Get
	redisSet   = redis.Set
	redisSetNX = redis.SetNX
	redisDel   = redis.Del
)

type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// storedResponse is a completed response kept for replay.
type storedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"contentType"`
	Body        string `json:"body"`
}

// IdempotencyMiddleware replays the first successful response for a repeated
// Idempotency-Key on the same route. Without Redis requests pass through.
func IdempotencyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		storageKey := fmt.Sprintf("idempotency:%s:%s:%s", c.Request.Method, c.FullPath(), key)

		val, err := redisGet(ctx, storageKey)
		switch {
		case err == nil && val == processingMarker:
			response.Error(c, domainerrors.Conflict("Request already in progress"))
			return
		case err == nil:
			var stored storedResponse
			if jsonErr := json.Unmarshal([]byte(val), &stored); jsonErr == nil {
				c.Header("X-Idempotency-Hit", "true")
				c.Data(stored.Status, stored.ContentType, []byte(stored.Body))
				c.Abort()
				return
			}
			logger.Warn(ctx, "Discarding unreadable idempotent response", zap.String("key", storageKey))
			_ = redisDel(ctx, storageKey)
		case !errors.Is(err, redis.Nil):
			if !errors.Is(err, redis.ErrNotConfigured) {
				logger.Warn(ctx, "Idempotency store unavailable", zap.Error(err))
			}
			c.Next()
			return
		}

		acquired, err := redisSetNX(ctx, storageKey, processingMarker, LockDuration)
		if err != nil || !acquired {
			response.Error(c, domainerrors.Conflict("Request already in progress"))
			return
		}

		w := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		status := c.Writer.Status()
		if status < http.StatusOK || status >= http.StatusMultipleChoices {
			// let the client retry
			_ = redisDel(ctx, storageKey)
			return
		}
		raw, _ := json.Marshal(storedResponse{
			Status:      status,
			ContentType: c.Writer.Header().Get("Content-Type"),
			Body:        w.body.String(),
		})
		if err := redisSet(ctx, storageKey, raw, RetentionDuration); err != nil {
			logger.Warn(ctx, "Idempotent response not stored", zap.Error(err))
		}
	}
}
