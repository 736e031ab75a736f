package middleware

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const userContextKey contextKey = "user"

// IdentityHeader carries the caller's claimed display name. There is no
// authentication beyond this claim.
const IdentityHeader = "User"

// Identity extracts the caller's claimed identity from the User header and
// places it in the request context. It never rejects: each handler decides
// what a missing identity means for its endpoint.
func Identity() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := strings.TrimSpace(r.Header.Get(IdentityHeader))
			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser returns the caller's claimed identity, or "" if none was sent
func GetUser(ctx context.Context) string {
	user, _ := ctx.Value(userContextKey).(string)
	return user
}
