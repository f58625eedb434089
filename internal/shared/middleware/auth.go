package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"finsight/internal/shared/auth"
)

type ContextKey string

const (
	UserIDKey ContextKey = "user_id"
	EmailKey  ContextKey = "email"
)

// Auth validates the JWT from the access_token cookie or Authorization header
// and injects the authenticated user ID into the request context. Every
// protected handler reads the tenant identity from the context; there is no
// fallback user.
func Auth(jwt *auth.JWT) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := extractToken(r)
			if !ok {
				unauthorized(w, "Authentication required")
				return
			}

			claims, err := jwt.Validate(token)
			if err != nil {
				unauthorized(w, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, EmailKey, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken prefers the HttpOnly cookie set at login; API clients may
// send a Bearer token instead.
func extractToken(r *http.Request) (string, bool) {
	if cookie, err := r.Cookie("access_token"); err == nil && cookie.Value != "" {
		return cookie.Value, true
	}

	header := r.Header.Get("Authorization")
	if scheme, token, found := strings.Cut(header, " "); found && scheme == "Bearer" && token != "" {
		return token, true
	}
	return "", false
}

// unauthorized writes a 401 in the same response envelope the handlers use.
func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"message": message,
	})
}
