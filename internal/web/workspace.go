package web

import (
	"sync"

	"github.com/evcraddock/sentiboard/internal/analysis"
	"github.com/evcraddock/sentiboard/internal/dashboard"
)

// workspace is everything one browser session works on.
type workspace struct {
	state    *dashboard.State
	uploader *analysis.Uploader
}

// workspaces is the registry of per-session workspaces. Entries are
// created on first use and removed by the session janitor.
type workspaces struct {
	analyzer analysis.Analyzer

	mu sync.Mutex
	m  map[string]*workspace
}

func newWorkspaces(a analysis.Analyzer) *workspaces {
	return &workspaces{analyzer: a, m: make(map[string]*workspace)}
}

func (ws *workspaces) get(sessionID string) *workspace {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	w, ok := ws.m[sessionID]
	if !ok {
		w = &workspace{
			state:    dashboard.NewState(),
			uploader: analysis.NewUploader(ws.analyzer),
		}
		ws.m[sessionID] = w
	}
	return w
}

func (ws *workspaces) remove(sessionIDs ...string) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	for _, id := range sessionIDs {
		delete(ws.m, id)
	}
}

func (ws *workspaces) len() int {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return len(ws.m)
}
