package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/evcraddock/sentiboard/internal/auth"
	"github.com/evcraddock/sentiboard/internal/comment"
)

var (
	markdownOnce sync.Once
	markdownConv goldmark.Markdown
)

// markdown returns the shared converter. Raw HTML in the source is
// escaped, not passed through.
func markdown() goldmark.Markdown {
	markdownOnce.Do(func() {
		markdownConv = goldmark.New(goldmark.WithExtensions(extension.Linkify))
	})
	return markdownConv
}

// renderMarkdown converts the backend summary to HTML. On failure the
// summary is shown as escaped text.
func renderMarkdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := markdown().Convert([]byte(src), &buf); err != nil {
		slog.Warn("rendering summary", "error", err)
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(buf.String())
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"markdown":   renderMarkdown,
		"add":        func(a, b int) int { return a + b },
		"sub":        func(a, b int) int { return a - b },
		"sentiments": func() []comment.Sentiment { return comment.Sentiments },
	}
}

// render executes a full page template.
func (s *Server) render(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		http.Error(w, fmt.Sprintf("Error rendering template: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		slog.Debug("writing response", "error", err)
	}
}

// renderPartial executes a named template block (no layout).
func (s *Server) renderPartial(w http.ResponseWriter, name string, data any) {
	s.render(w, name, data)
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// Toast kinds understood by app.js.
const (
	toastSuccess = "success"
	toastError   = "error"
)

type toast struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// trigger sets the HX-Trigger header. Must be called before WriteHeader.
func trigger(w http.ResponseWriter, events map[string]any) {
	b, err := json.Marshal(events)
	if err != nil {
		slog.Error("encoding HX-Trigger", "error", err)
		return
	}
	w.Header().Set("HX-Trigger", string(b))
}

// writeToastError answers with a status code, an error toast and the message
// as the body for non-HTMX clients.
func writeToastError(w http.ResponseWriter, msg string, code int) {
	trigger(w, map[string]any{"showToast": toast{Message: msg, Type: toastError}})
	http.Error(w, msg, code)
}

// session returns the session attached by auth.WithSession.
func (s *Server) session(r *http.Request) *auth.Session {
	sess, ok := auth.FromContext(r.Context())
	if !ok {
		// Only reachable for sessionless paths.
		return &auth.Session{User: auth.Anonymous}
	}
	return sess
}

func (s *Server) workspace(r *http.Request) *workspace {
	return s.workspaces.get(s.session(r).ID)
}

func methodNotAllowed(w http.ResponseWriter) {
	http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
}

func trimPathPrefix(path, prefix string) string {
	return strings.Trim(strings.TrimPrefix(path, prefix), "/")
}
