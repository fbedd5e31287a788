package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
)

type contextKey struct{}

// WithSession is middleware that attaches a session to every request,
// creating an anonymous one on first visit. Static assets and the health
// check are served without a session.
func WithSession(sessions *SessionStore, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isSessionless(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		sess, err := sessions.Ensure(w, r)
		if err != nil {
			slog.Error("starting session", "error", err, "path", r.URL.Path)
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}

		next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), sess)))
	})
}

// NewContext returns a copy of ctx carrying sess.
func NewContext(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, sess)
}

// FromContext returns the session attached by WithSession.
func FromContext(ctx context.Context) (*Session, bool) {
	sess, ok := ctx.Value(contextKey{}).(*Session)
	return sess, ok
}

func isSessionless(path string) bool {
	return path == "/health" || strings.HasPrefix(path, "/static/")
}
