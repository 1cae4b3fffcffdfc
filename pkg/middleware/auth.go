package middleware

import (
	"context"
	"net/http"
	"strings"

	"storefront/internal/data/entity"
	"storefront/internal/usecase"
	"storefront/pkg/utils"

	"go.uber.org/zap"
)

// SessionResolver looks up the identity behind a live session token.
type SessionResolver interface {
	Resolve(ctx context.Context, sessionToken string) (*usecase.Identity, error)
}

// AuthSession checks the bearer access token and that its session is still live.
func AuthSession(secret string, sessions SessionResolver, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			userID, sid, err := utils.ParseAccessToken(secret, strings.TrimSpace(parts[1]))
			if err != nil {
				logger.Warn("Rejected access token", zap.Error(err), zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			identity, err := sessions.Resolve(r.Context(), sid)
			if err != nil {
				logger.Error("Failed to validate session", zap.Error(err), zap.String("user_id", userID.String()))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if identity == nil || identity.UserID != userID {
				logger.Warn("Invalid or expired session", zap.String("user_id", userID.String()))
				utils.ResponseUnauthorized(w, "Invalid or expired session")
				return
			}

			ctx := utils.SetUserContext(r.Context(), identity.UserID, string(identity.Role))
			ctx = utils.SetSessionContext(ctx, sid)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Admin requires the role set by AuthSession to be admin.
func Admin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := utils.GetUserIDFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			role, _ := utils.GetRoleFromContext(r.Context())
			if role != string(entity.RoleAdmin) {
				logger.Warn("Admin check: non-admin access attempt",
					zap.String("user_id", userID.String()),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
