package web

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/evcraddock/sentiboard/internal/dashboard"
)

// handleComments applies the search box and sentiment filter and returns
// the first page of the table.
func (s *Server) handleComments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	q := r.URL.Query()
	page := s.workspace(r).state.ApplyFilter(dashboard.Filter{
		Query:     q.Get("q"),
		Sentiment: q.Get("sentiment"),
	})

	if !isHTMX(r) {
		s.render(w, "index.html", s.pageData(r, pageComments))
		return
	}
	s.renderPartial(w, "comments-table", page)
}

// handleCommentRoute routes /comments/page/{n}, /comments/{id} and
// /comments/{id}/flag.
func (s *Server) handleCommentRoute(w http.ResponseWriter, r *http.Request) {
	path := trimPathPrefix(r.URL.Path, "/comments/")

	if rest, ok := strings.CutPrefix(path, "page/"); ok {
		s.handleCommentsPage(w, r, rest)
		return
	}
	if idStr, ok := strings.CutSuffix(path, "/flag"); ok {
		s.handleFlag(w, r, idStr)
		return
	}
	s.handleCommentDetail(w, r, path)
}

// handleCommentsPage moves the pagination cursor without re-filtering.
func (s *Server) handleCommentsPage(w http.ResponseWriter, r *http.Request, n string) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	number, err := strconv.Atoi(n)
	if err != nil {
		http.Error(w, "Invalid page number", http.StatusBadRequest)
		return
	}

	page := s.workspace(r).state.SetPage(number)
	if !isHTMX(r) {
		s.render(w, "index.html", s.pageData(r, pageComments))
		return
	}
	s.renderPartial(w, "comments-table", page)
}

// handleCommentDetail renders the comment modal.
func (s *Server) handleCommentDetail(w http.ResponseWriter, r *http.Request, idStr string) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	c, err := s.workspace(r).state.Comment(id)
	if errors.Is(err, dashboard.ErrCommentNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, fmt.Sprintf("Error loading comment: %v", err), http.StatusInternalServerError)
		return
	}

	s.renderPartial(w, "comment-modal", c)
}

// handleFlag toggles the flag and re-renders the row's flag button.
func (s *Server) handleFlag(w http.ResponseWriter, r *http.Request, idStr string) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	c, err := s.workspace(r).state.ToggleFlag(id)
	if errors.Is(err, dashboard.ErrCommentNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, fmt.Sprintf("Error flagging comment: %v", err), http.StatusInternalServerError)
		return
	}

	if !isHTMX(r) {
		http.Redirect(w, r, "/?page="+pageComments, http.StatusSeeOther)
		return
	}
	s.renderPartial(w, "flag-button", c)
}

// handleExport downloads the filtered view as CSV.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	var buf bytes.Buffer
	err := s.workspace(r).state.ExportCSV(&buf)
	if errors.Is(err, dashboard.ErrNoData) {
		writeToastError(w, "No data to export.", http.StatusConflict)
		return
	}
	if err != nil {
		http.Error(w, fmt.Sprintf("Error exporting comments: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", dashboard.ExportFileName))
	if _, err := buf.WriteTo(w); err != nil {
		slog.Debug("writing export", "error", err)
	}
}
