package middleware

import (
	"fmt"
	"io"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"bakery_planner_v1/internal/api/dto"
	"bakery_planner_v1/internal/errs"
	"bakery_planner_v1/pkg/logger"
)

const RequestIDHeader = "X-Request-ID"

// ==================== Request context ====================

// RequestContext tags the request with an id (taken from X-Request-ID when the
// client sends one) and stores a sub-logger carrying it in the request context.
// Services log through logger.Ctx(ctx).
func RequestContext(base zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		l := base.With().
			Str("request_id", id).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Logger()

		c.Request = c.Request.WithContext(logger.Into(c.Request.Context(), l))
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// ==================== Access log ====================

// AccessLog writes one line per request; server errors are logged at error.
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		l := logger.Ctx(c.Request.Context())
		ev := l.Info()
		if status >= 500 {
			ev = l.Error()
		}
		if len(c.Errors) > 0 {
			ev = ev.Str("errors", c.Errors.String())
		}
		ev.Int("status", status).
			Dur("latency", time.Since(start)).
			Int("size", c.Writer.Size()).
			Str("client_ip", c.ClientIP()).
			Msg("request")
	}
}

// ==================== Recovery ====================

// Recovery answers a panicking handler with the 500 error envelope.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, rec any) {
		logger.Ctx(c.Request.Context()).Error().
			Str("panic", fmt.Sprint(rec)).
			Bytes("stack", debug.Stack()).
			Msg("handler panicked")

		e := errs.Internal(fmt.Errorf("panic: %v", rec))
		c.AbortWithStatusJSON(e.Status, dto.ErrorResp{Error: dto.ErrorBody{
			Code:    e.Code,
			Type:    e.Type,
			Message: e.Message,
		}})
	})
}
