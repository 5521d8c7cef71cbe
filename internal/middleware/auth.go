package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/GiorgiUbiria/donation_platform/internal/auth"
	"github.com/GiorgiUbiria/donation_platform/internal/httputil"
)

type contextKey string

const userIDKey contextKey = "userID"

// Authenticated rejects requests without a valid bearer token and stores the
// token's user id in the request context.
func Authenticated(tokens *auth.Tokens) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				httputil.WriteError(w, r, http.StatusUnauthorized, "unauthorized", "missing authorization header")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
				httputil.WriteError(w, r, http.StatusUnauthorized, "unauthorized", "invalid authorization header")
				return
			}

			userID, err := tokens.Parse(strings.TrimSpace(parts[1]))
			if err != nil {
				httputil.WriteError(w, r, http.StatusUnauthorized, "unauthorized", err.Error())
				return
			}

			ctx := WithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func WithUserID(ctx context.Context, userID uint64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserID returns the authenticated user id, or 0 for anonymous requests.
func UserID(ctx context.Context) uint64 {
	id, _ := ctx.Value(userIDKey).(uint64)
	return id
}
