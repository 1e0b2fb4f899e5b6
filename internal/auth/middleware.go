package auth

import (
	"context"
	"net/http"
	"time"

	"example.com/mynotes/internal/respond"
)

// SessionStore resolves a session token to a user id.
// It allows unit-testing middleware and handlers without a real Redis.
type SessionStore interface {
	Create(ctx context.Context, userID string) (string, error)
	UserID(ctx context.Context, token string) (string, error)
	Destroy(ctx context.Context, token string) error
	TTL() time.Duration
}

type ctxKey int

const userIDKey ctxKey = iota

// RequireSession rejects requests without a valid session and puts the
// caller's user id on the request context for handlers downstream.
func RequireSession(store SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := tokenFromRequest(r)
			if err != nil {
				respond.Fail(w, http.StatusUnauthorized, "Please log in to access this resource")
				return
			}
			userID, err := store.UserID(r.Context(), token)
			if err != nil {
				respond.Fail(w, http.StatusUnauthorized, "Please log in to access this resource")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// WithUserID returns a context carrying the authenticated user id.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserID returns the authenticated user id, or "" when the request did
// not pass RequireSession.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}
