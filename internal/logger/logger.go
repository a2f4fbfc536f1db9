package logger

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Log is the process logger. It is a no-op logger until New is called so
// packages can log safely from tests.
var Log = zap.NewNop()

type contextKey struct{}

// New builds the process logger: production JSON output in release mode,
// human readable development output otherwise.
func New(ginMode string) (*zap.Logger, error) {
	var (
		l   *zap.Logger
		err error
	)
	if ginMode == gin.ReleaseMode {
		l, err = zap.NewProduction()
	} else {
		l, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	Log = l
	return l, nil
}

// WithContext stores a request-scoped logger in ctx.
func WithContext(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// FromContext returns the request-scoped logger, falling back to Log.
func FromContext(ctx context.Context) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(contextKey{}).(*zap.Logger); ok && l != nil {
			return l
		}
	}
	return Log
}

// Middleware logs one line per request and stores a request logger in the
// request context for handlers and services.
func Middleware(base *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		l := base
		if l == nil {
			l = Log
		}
		start := time.Now()
		reqLogger := l.With(
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)
		c.Request = c.Request.WithContext(WithContext(c.Request.Context(), reqLogger))

		c.Next()

		fields := []zap.Field{
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if subject := c.GetString("user_id"); subject != "" {
			fields = append(fields, zap.String("user_id", subject))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case c.Writer.Status() >= 500:
			reqLogger.Error("request completed", fields...)
		case c.Writer.Status() >= 400:
			reqLogger.Warn("request completed", fields...)
		default:
			reqLogger.Info("request completed", fields...)
		}
	}
}
