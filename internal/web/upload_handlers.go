package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/evcraddock/sentiboard/internal/analysis"
)

// maxUploadBytes caps the multipart request body.
const maxUploadBytes = 32 << 20

// uploadStatus maps an upload error to an HTTP status.
func uploadStatus(err error) int {
	switch {
	case errors.Is(err, analysis.ErrInvalidFileType):
		return http.StatusBadRequest
	case errors.Is(err, analysis.ErrUploadInProgress):
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}

// handleUpload sends the document to the analysis backend and replaces
// the session's dashboard with the result. On failure the dashboard is
// left untouched and an error toast is triggered.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeToastError(w, "Please choose a file to upload.", http.StatusBadRequest)
		return
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			slog.Debug("closing upload", "error", cerr)
		}
	}()

	sess := s.session(r)
	ws := s.workspaces.get(sess.ID)

	batch, err := ws.uploader.Upload(r.Context(), header.Filename, file)
	if err != nil {
		writeToastError(w, analysis.Notice(err), uploadStatus(err))
		return
	}

	ws.state.Load(batch)

	if _, err := s.history.Add(sess.ID, header.Filename, batch); err != nil {
		slog.Error("recording analysis", "file", header.Filename, "error", err)
	}

	trigger(w, map[string]any{
		"showToast":        toast{Message: "Analysis complete!", Type: toastSuccess},
		"dashboardUpdated": true,
	})

	if !isHTMX(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	w.Header().Set("HX-Push-Url", "/")
	s.renderPartial(w, "main", s.pageData(r, pageDashboard))
}
