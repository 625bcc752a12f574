// ABOUTME: Tests for the authentication middleware.
// ABOUTME: Verifies user extraction from Bearer tokens and context propagation.

package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMiddleware_UserExtraction(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{
			name:   "no header",
			header: "",
			want:   DefaultUser,
		},
		{
			name:   "explicit user token",
			header: "Bearer user:alice",
			want:   "alice",
		},
		{
			name:   "opaque token maps to shared user",
			header: "Bearer ya29.something",
			want:   "team@example.com",
		},
		{
			name:   "empty bearer",
			header: "Bearer ",
			want:   DefaultUser,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = UserFromContext(r.Context())
			}))

			req := httptest.NewRequest("GET", "/v1/availability", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			h.ServeHTTP(httptest.NewRecorder(), req)

			if got != tt.want {
				t.Errorf("UserFromContext() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUserFromContext_MissingValue(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if got := UserFromContext(req.Context()); got != DefaultUser {
		t.Errorf("UserFromContext() without middleware = %q, want %q", got, DefaultUser)
	}
}
