package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yukikurage/list-task-api/internal/logging"
)

// HeaderRequestID is echoed back on every response.
const HeaderRequestID = "X-Request-ID"

// ContextKeyRequestID is the gin context key holding the request ID.
const ContextKeyRequestID = "request_id"

// RequestLogger assigns a request ID (reusing an incoming X-Request-ID),
// stores a logger carrying it in the request context and logs completion.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(ContextKeyRequestID, requestID)
		c.Header(HeaderRequestID, requestID)

		child := logger.With(slog.String("request_id", requestID))
		ctx := logging.WithLogger(c.Request.Context(), child)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		attrs := []any{
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("duration", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, slog.String("errors", c.Errors.String()))
		}

		switch {
		case c.Writer.Status() >= 500:
			child.ErrorContext(ctx, "request completed", attrs...)
		case c.Writer.Status() >= 400:
			child.WarnContext(ctx, "request completed", attrs...)
		default:
			child.InfoContext(ctx, "request completed", attrs...)
		}
	}
}
