package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/kodipay/kodipay-server/internal/models"
	"github.com/kodipay/kodipay-server/internal/services"
	"github.com/kodipay/kodipay-server/internal/utils"
)

type contextKey string

const (
	userIDKey contextKey = "userID"
	roleKey   contextKey = "role"
	phoneKey  contextKey = "phoneNumber"
)

// Authenticate validates the Bearer token and stashes the caller's identity
// in the request context.
func Authenticate(jwtSvc services.JWTService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				utils.RespondErrorWithCode(w, http.StatusUnauthorized,
					utils.ErrCodeUnauthorized, "Missing or malformed Authorization header", nil)
				return
			}

			claims, err := jwtSvc.VerifyAccessToken(token)
			if err != nil {
				code := utils.ErrCodeUnauthorized
				if errors.Is(err, jwt.ErrTokenExpired) {
					code = utils.ErrCodeTokenExpired
				}
				utils.RespondErrorWithCode(w, http.StatusUnauthorized,
					code, "Invalid or expired token", nil, err)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, claims.UserID)
			ctx = context.WithValue(ctx, roleKey, claims.Role)
			ctx = context.WithValue(ctx, phoneKey, claims.PhoneNumber)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole gates a route to a single role. Must run after Authenticate.
func RequireRole(role models.RoleType) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got, ok := RoleFrom(r.Context()); !ok || got != role {
				utils.RespondErrorWithCode(w, http.StatusForbidden,
					utils.ErrCodeForbidden, "Insufficient permissions", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

// UserIDFrom extracts the authenticated user's id from the context.
func UserIDFrom(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}

// RoleFrom extracts the authenticated user's role from the context.
func RoleFrom(ctx context.Context) (models.RoleType, bool) {
	role, ok := ctx.Value(roleKey).(models.RoleType)
	return role, ok
}

// WithIdentity injects an identity into a context. Exposed for handler tests.
func WithIdentity(ctx context.Context, userID uuid.UUID, role models.RoleType) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, roleKey, role)
}
