package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/pokedex/internal/server/auth"
)

type contextKey string

// userIDKey carries the authenticated admin's ID through the request
// context.
const userIDKey contextKey = "user_id"

// JWTAuth verifies the Bearer token on incoming requests and injects the
// token's user ID into the request context.
func JWTAuth(secretKey []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			const prefix = "Bearer "
			if !strings.HasPrefix(header, prefix) {
				httpError(w, http.StatusUnauthorized, "authentication_error", "missing bearer token")
				return
			}

			userID, err := auth.GetUserIDFromToken(header[len(prefix):], secretKey)
			if err != nil {
				httpError(w, http.StatusUnauthorized, "authentication_error", "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
		})
	}
}

// UserIDFromContext returns the admin ID injected by JWTAuth.
func UserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}
