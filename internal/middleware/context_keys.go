package middleware

import (
	"context"

	"github.com/SscSPs/recharge_backend/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// contextKey is a private type for values stored in request contexts.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	userIDKey    = contextKey("userID")
	callerKey    = contextKey("caller")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// GetCallerFromContext retrieves the authenticated caller from the Gin context.
func GetCallerFromContext(c *gin.Context) (domain.Caller, bool) {
	return CallerFromCtx(c.Request.Context())
}

// CallerFromCtx retrieves the authenticated caller from a standard context.
func CallerFromCtx(ctx context.Context) (domain.Caller, bool) {
	caller, ok := ctx.Value(callerKey).(domain.Caller)
	return caller, ok
}

// WithCaller returns a copy of ctx carrying caller.
func WithCaller(ctx context.Context, caller domain.Caller) context.Context {
	ctx = context.WithValue(ctx, userIDKey, caller.UserID)
	return context.WithValue(ctx, callerKey, caller)
}
