package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// TokenVerifier checks a bearer token and returns the admin it belongs to.
// *service.AuthService satisfies it.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

type adminKey struct{}

// AdminFromContext returns the admin subject stored by RequireAdmin.
func AdminFromContext(ctx context.Context) (string, bool) {
	sub, ok := ctx.Value(adminKey{}).(string)
	return sub, ok
}

// RequireAdmin rejects requests without a valid "Authorization: Bearer"
// token with 401 and a JSON error body. On success the admin subject is
// available through AdminFromContext.
func RequireAdmin(v TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				unauthorized(w, "missing bearer token")
				return
			}
			sub, err := v.Verify(strings.TrimSpace(token))
			if err != nil {
				unauthorized(w, "invalid or expired token")
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), adminKey{}, sub)))
		})
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="admin"`)
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"code": "unauthorized", "message": msg},
	})
}
