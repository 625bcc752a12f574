// ABOUTME: Authentication middleware for the rota API.
// ABOUTME: Parses Bearer tokens and extracts user identity for request context.

package auth

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const userContextKey contextKey = "user"

// DefaultUser identifies unauthenticated requests.
const DefaultUser = "default"

func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := extractUser(r.Header.Get("Authorization"))
		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func UserFromContext(ctx context.Context) string {
	user, ok := ctx.Value(userContextKey).(string)
	if !ok || user == "" {
		return DefaultUser
	}
	return user
}

func extractUser(authHeader string) string {
	if authHeader == "" {
		return DefaultUser
	}

	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if token == "" {
		return DefaultUser
	}

	// "user:" prefix allows explicit user specification for panel development.
	if strings.HasPrefix(token, "user:") {
		return strings.TrimPrefix(token, "user:")
	}

	// This is a development fixture: any other token maps to one shared user
	// so panel data stays reachable regardless of the token format a client
	// happens to send.
	return "team@example.com"
}
