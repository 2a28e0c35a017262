package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"mutual/loanlifecycle/internal/pkg/logger"
)

const (
	// TraceIDHeader carries the caller's trace id; one is minted when absent.
	TraceIDHeader = "X-Trace-Id"

	// ActorRoleHeader is set by the platform gateway after authenticating
	// the caller. Role checks downstream trust it.
	ActorRoleHeader = "X-Actor-Role"
)

// AttachTraceID stamps every request with a trace id and logs the
// request/response pair around the handler chain.
func AttachTraceID() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(TraceIDHeader)
		if traceID == "" {
			traceID = uuid.New().String()
		}

		ctx := logger.WithTraceID(c.Request.Context(), traceID)
		c.Request = c.Request.WithContext(ctx)
		c.Writer.Header().Set(TraceIDHeader, traceID)

		start := time.Now()
		logger.CtxInfo(ctx, "Request started",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
		)

		c.Next()

		logger.CtxInfo(ctx, "Request finished",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("elapsed", time.Since(start)),
		)
	}
}

// ActorRole reads the authenticated role header. Empty means anonymous.
func ActorRole(c *gin.Context) string {
	return c.GetHeader(ActorRoleHeader)
}
