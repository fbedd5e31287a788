package web

import (
	"log/slog"
	"net/http"

	"github.com/evcraddock/sentiboard/internal/auth"
	"github.com/evcraddock/sentiboard/internal/dashboard"
	"github.com/evcraddock/sentiboard/internal/history"
)

// Sidebar pages.
const (
	pageDashboard = "dashboard"
	pageComments  = "comments"
	pageReports   = "reports"
)

// recentHistory is how many analyses the reports page lists.
const recentHistory = 10

type userData struct {
	User       auth.User
	LoginError string
}

type pageData struct {
	Page       string
	User       userData
	View       dashboard.View
	History    []*history.Entry
	Background bool
}

func parsePage(p string) string {
	switch p {
	case pageComments, pageReports:
		return p
	default:
		return pageDashboard
	}
}

func (s *Server) pageData(r *http.Request, page string) pageData {
	sess := s.session(r)
	data := pageData{
		Page:       page,
		User:       userData{User: sess.User},
		View:       s.workspace(r).state.View(),
		Background: s.cfg.Background,
	}

	if page == pageReports {
		entries, err := s.history.ListRecent(sess.ID, recentHistory)
		if err != nil {
			slog.Error("loading analysis history", "error", err)
		}
		data.History = entries
	}
	return data
}

// handleIndex renders the app shell, or only the selected page for HTMX
// navigation.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	data := s.pageData(r, parsePage(r.URL.Query().Get("page")))
	if isHTMX(r) {
		s.renderPartial(w, "main", data)
		return
	}
	s.render(w, "index.html", data)
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	apiJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}
