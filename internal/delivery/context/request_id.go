// Package context propagates the per-request correlation ID and the
// request-scoped logger from the echo boundary down into the use-case layer,
// where only a plain context.Context travels.
package context

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// HeaderXRequestID is the correlation header honored on ingress and echoed
// back on every response.
const HeaderXRequestID = "X-Request-Id"

// echoRequestIDKey keys the request ID inside echo's per-request store.
const echoRequestIDKey = "request_id"

// ctxKey is unexported so no other package can collide with these values.
type ctxKey int

const (
	requestIDKey ctxKey = iota
	loggerKey
)

// SetRequestID stores the request ID in the echo request store.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(echoRequestIDKey, requestID)
}

// GetRequestID returns the request ID from the echo request store, minting a
// fresh one when the middleware has not run (direct handler tests, mostly).
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(echoRequestIDKey).(string); ok && id != "" {
		return id
	}

	return uuid.New().String()
}

// WithRequestID attaches the request ID to a context.Context for the layers
// below the HTTP boundary.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// WithLogger attaches a request-scoped logger to the context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// GetLoggerOrDefault returns the request-scoped logger, or the fallback when
// the context never crossed the HTTP boundary (workers, tests).
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey).(*slog.Logger); ok && logger != nil {
		return logger
	}

	return fallback
}
