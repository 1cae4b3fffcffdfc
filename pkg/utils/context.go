package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	UserIDKey  contextKey = "user_id"
	RoleKey    contextKey = "role"
	SessionKey contextKey = "session"
)

func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}

func GetRoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(RoleKey).(string)
	return role, ok
}

func SetUserContext(ctx context.Context, userID uuid.UUID, role string) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, userID)
	ctx = context.WithValue(ctx, RoleKey, role)
	return ctx
}

// GetSessionFromContext returns the session token (the sid claim) of the request.
func GetSessionFromContext(ctx context.Context) (string, bool) {
	sid, ok := ctx.Value(SessionKey).(string)
	return sid, ok && sid != ""
}

func SetSessionContext(ctx context.Context, sid string) context.Context {
	return context.WithValue(ctx, SessionKey, sid)
}
