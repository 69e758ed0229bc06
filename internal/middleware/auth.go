package middleware

import (
	"context"
	"net/http"

	"coursemanager/internal/entity"
	"coursemanager/internal/session"
)

type contextKey string

const sessionKey contextKey = "session"

// RequireAuth gates protected routes: without an authenticated session
// the request is redirected to the login form and goes no further.
func RequireAuth(sessions *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s := sessions.Current(r)
			if s == nil {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, s)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFrom returns the session stored by RequireAuth, or nil.
func SessionFrom(ctx context.Context) *entity.Session {
	s, _ := ctx.Value(sessionKey).(*entity.Session)
	return s
}
