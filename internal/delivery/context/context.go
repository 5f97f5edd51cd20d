// Package context carries request-scoped values (request id, logger and the
// authenticated principal) between middleware, handlers and services.
package context

import (
	"context"
	"log/slog"

	"folks/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

type ctxKey string

const (
	keyRequestID ctxKey = "request_id"
	keyLogger    ctxKey = "logger"
	keyPrincipal ctxKey = "principal"

	// HeaderXRequestID is the HTTP header name for request ID.
	HeaderXRequestID = echo.HeaderXRequestID
)

// RequestID returns the id stored on c by the request-id middleware, or "".
func RequestID(c echo.Context) string {
	id, _ := c.Get(string(keyRequestID)).(string)

	return id
}

// SetRequestID sets the request ID in echo.Context.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(string(keyRequestID), requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(keyRequestID).(string)

	return id
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, keyRequestID, requestID)
}

// GetLoggerOrDefault returns the request-scoped logger, or fallback when the
// context carries none (background jobs, tests).
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger, ok := ctx.Value(keyLogger).(*slog.Logger); ok && logger != nil {
		return logger
	}

	return fallback
}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, keyLogger, logger)
}

// SetPrincipal records the authenticated caller on both the echo context and
// the request context.
func SetPrincipal(c echo.Context, principal entity.Principal) {
	c.Set(string(keyPrincipal), principal)
	c.SetRequest(c.Request().WithContext(WithPrincipal(c.Request().Context(), principal)))
}

// Principal returns the authenticated caller. ok is false on routes that are
// not behind the auth middleware.
func Principal(c echo.Context) (entity.Principal, bool) {
	p, ok := c.Get(string(keyPrincipal)).(entity.Principal)

	return p, ok
}

func WithPrincipal(ctx context.Context, principal entity.Principal) context.Context {
	return context.WithValue(ctx, keyPrincipal, principal)
}

func PrincipalFromContext(ctx context.Context) (entity.Principal, bool) {
	p, ok := ctx.Value(keyPrincipal).(entity.Principal)

	return p, ok
}
