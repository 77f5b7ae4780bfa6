package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"cinelog/internal/apperror"
	"cinelog/internal/entity"
	"cinelog/pkg/token"
)

type contextKey string

const identityContextKey contextKey = "identity"

// IdentityFromContext returns the authenticated identity attached by the
// middleware, if any.
func IdentityFromContext(ctx context.Context) (entity.Identity, bool) {
	identity, ok := ctx.Value(identityContextKey).(entity.Identity)
	return identity, ok
}

type AuthMiddleware struct {
	tokens *token.Manager
}

func NewAuthMiddleware(tokens *token.Manager) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// extractAccessToken prefers the cookie and falls back to a Bearer header, so
// both browser sessions and API clients work.
func extractAccessToken(r *http.Request) string {
	if c, err := r.Cookie("accessToken"); err == nil && c.Value != "" {
		return c.Value
	}
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// RequireAuth rejects the request unless it carries a valid access token.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := extractAccessToken(r)
		if raw == "" {
			writeError(w, apperror.Unauthorized("UNAUTHORIZED", "Authentication required"))
			return
		}

		identity, err := m.tokens.VerifyAccess(raw)
		if err != nil {
			if errors.Is(err, token.ErrExpiredToken) {
				writeError(w, apperror.Unauthorized("TOKEN_EXPIRED", "Access token has expired"))
				return
			}
			writeError(w, apperror.Unauthorized("INVALID_TOKEN", "Invalid access token"))
			return
		}

		ctx := context.WithValue(r.Context(), identityContextKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth attaches the identity when a valid token is present and lets
// the request through anonymously otherwise. It never writes an error.
func (m *AuthMiddleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := extractAccessToken(r)
		if raw != "" {
			if identity, err := m.tokens.VerifyAccess(raw); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), identityContextKey, identity))
			}
		}
		next.ServeHTTP(w, r)
	})
}
