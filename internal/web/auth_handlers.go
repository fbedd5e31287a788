package web

import (
	"log/slog"
	"net/http"

	"github.com/evcraddock/sentiboard/internal/auth"
)

// handleLogin checks the demo credentials. Success and failure both
// re-render the user panel; failure keeps the login form open with an
// error.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	sess := s.session(r)
	user, err := auth.Authenticate(r.FormValue("username"), r.FormValue("password"))
	if err != nil {
		slog.Info("login failed", "session", shortID(sess.ID), "error", err)
		s.respondUser(w, r, userData{User: sess.User, LoginError: auth.InvalidCredentialsMessage})
		return
	}

	s.switchUser(w, r, user)
}

// handleLoginGuest continues as the guest user.
func (s *Server) handleLoginGuest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	s.switchUser(w, r, auth.Guest)
}

// handleLogout returns the session to the anonymous user. The dashboard
// is kept.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	s.switchUser(w, r, auth.Anonymous)
}

func (s *Server) switchUser(w http.ResponseWriter, r *http.Request, u auth.User) {
	sess := s.session(r)
	if err := s.sessions.SetUser(sess.ID, u); err != nil {
		slog.Error("updating session user", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	slog.Info("session user changed", "session", shortID(sess.ID), "user", u.Name)
	s.respondUser(w, r, userData{User: u})
}

func (s *Server) respondUser(w http.ResponseWriter, r *http.Request, data userData) {
	if isHTMX(r) {
		s.renderPartial(w, "user-panel", data)
		return
	}
	if data.LoginError == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	page := s.pageData(r, pageDashboard)
	page.User = data
	s.render(w, "index.html", page)
}

// shortID keeps session IDs out of logs.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
