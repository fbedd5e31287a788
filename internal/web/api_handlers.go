package web

import (
	"encoding/json"
	"net/http"

	"github.com/evcraddock/sentiboard/internal/comment"
	"github.com/evcraddock/sentiboard/internal/dashboard"
	"github.com/evcraddock/sentiboard/internal/history"
)

// apiError writes a JSON error response.
func apiError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	resp := map[string]string{"error": msg}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
	}
}

// apiJSON writes a JSON response with the given status code.
func apiJSON(w http.ResponseWriter, data any, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
	}
}

// handleAPI routes /api/... requests.
func (s *Server) handleAPI(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	switch trimPathPrefix(r.URL.Path, "/api/") {
	case "dashboard":
		s.apiDashboard(w, r)
	case "charts/sentiment":
		s.apiSentimentChart(w, r)
	case "charts/provision":
		s.apiProvisionChart(w, r)
	case "history":
		s.apiHistory(w, r)
	default:
		apiError(w, "not found", http.StatusNotFound)
	}
}

type pageJSON struct {
	Number     int               `json:"number"`
	TotalPages int               `json:"total_pages"`
	Total      int               `json:"total"`
	Info       string            `json:"info"`
	Rows       []comment.Comment `json:"rows"`
}

type dashboardJSON struct {
	Loaded        bool                     `json:"loaded"`
	Stats         dashboard.Stats          `json:"stats"`
	FilteredStats dashboard.Stats          `json:"filtered_stats"`
	Chart         *dashboard.ChartInstance `json:"chart"`
	Keywords      []comment.Keyword        `json:"keywords"`
	Summary       string                   `json:"summary,omitempty"`
	Filter        filterJSON               `json:"filter"`
	Page          pageJSON                 `json:"page"`
}

type filterJSON struct {
	Query     string `json:"q"`
	Sentiment string `json:"sentiment"`
}

// apiDashboard returns the whole dashboard as JSON.
func (s *Server) apiDashboard(w http.ResponseWriter, r *http.Request) {
	state := s.workspace(r).state
	v := state.View()

	resp := dashboardJSON{
		Loaded:        v.Loaded,
		Stats:         v.Stats,
		FilteredStats: state.FilteredStats(),
		Keywords:      v.Keywords,
		Summary:       v.Summary,
		Filter:        filterJSON{Query: v.Filter.Query, Sentiment: v.Filter.Sentiment},
		Page: pageJSON{
			Number:     v.Page.Number,
			TotalPages: v.Page.TotalPages,
			Total:      v.Page.Total,
			Info:       v.Page.Info(),
			Rows:       v.Page.Rows,
		},
	}
	if resp.Keywords == nil {
		resp.Keywords = []comment.Keyword{}
	}
	if chart, ok := state.SentimentChart(); ok {
		resp.Chart = &chart
	}

	apiJSON(w, resp, http.StatusOK)
}

// apiSentimentChart returns the doughnut. 204 before the first upload.
func (s *Server) apiSentimentChart(w http.ResponseWriter, r *http.Request) {
	chart, ok := s.workspace(r).state.SentimentChart()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	apiJSON(w, chart, http.StatusOK)
}

// apiProvisionChart rebuilds the provision chart; every call returns a
// new chart ID.
func (s *Server) apiProvisionChart(w http.ResponseWriter, r *http.Request) {
	apiJSON(w, s.workspace(r).state.RenderProvisionChart(), http.StatusOK)
}

// apiHistory lists the session's recent analyses.
func (s *Server) apiHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := s.history.ListRecent(s.session(r).ID, recentHistory)
	if err != nil {
		apiError(w, "loading history failed", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []*history.Entry{}
	}
	apiJSON(w, entries, http.StatusOK)
}
