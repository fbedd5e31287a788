package analysis

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/evcraddock/sentiboard/internal/comment"
)

// ErrUploadInProgress is returned when an upload is started while another
// one for the same dashboard has not finished.
var ErrUploadInProgress = errors.New("upload already in progress")

// Phase is a step of the upload workflow.
type Phase int

const (
	Idle Phase = iota
	Validating
	Uploading
	Success
	Failure
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Validating:
		return "validating"
	case Uploading:
		return "uploading"
	case Success:
		return "success"
	case Failure:
		return "failure"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Uploader runs Idle -> Validating -> Uploading -> Success|Failure -> Idle
// for one dashboard. Only one upload may be in flight at a time.
type Uploader struct {
	analyzer Analyzer

	// OnPhase, if set, observes every transition.
	OnPhase func(Phase)

	mu    sync.Mutex
	phase Phase
}

// NewUploader creates an uploader backed by the given analyzer.
func NewUploader(a Analyzer) *Uploader {
	return &Uploader{analyzer: a}
}

// Phase reports the current phase.
func (u *Uploader) Phase() Phase {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.phase
}

// Busy reports whether an upload is in flight.
func (u *Uploader) Busy() bool {
	return u.Phase() != Idle
}

func (u *Uploader) set(p Phase) {
	u.mu.Lock()
	u.phase = p
	u.mu.Unlock()
	if u.OnPhase != nil {
		u.OnPhase(p)
	}
}

// Upload validates the file name, sends the document and maps the result.
// The uploader is back in Idle when Upload returns, whatever the outcome.
func (u *Uploader) Upload(ctx context.Context, fileName string, body io.Reader) (comment.Batch, error) {
	u.mu.Lock()
	if u.phase != Idle {
		u.mu.Unlock()
		return comment.Batch{}, ErrUploadInProgress
	}
	u.phase = Validating
	u.mu.Unlock()
	if u.OnPhase != nil {
		u.OnPhase(Validating)
	}
	defer u.set(Idle)

	if err := ValidateFileName(fileName); err != nil {
		return comment.Batch{}, err
	}

	u.set(Uploading)
	resp, err := u.analyzer.Analyze(ctx, fileName, body)
	if err != nil {
		u.set(Failure)
		slog.Warn("analysis failed", "file", fileName, "err", err)
		return comment.Batch{}, err
	}

	batch, err := resp.Batch()
	if err != nil {
		u.set(Failure)
		slog.Warn("malformed analysis response", "file", fileName, "err", err)
		return comment.Batch{}, fmt.Errorf("decoding response: %w", err)
	}

	u.set(Success)
	slog.Info("analysis complete", "file", fileName, "comments", len(batch.Comments), "keywords", len(batch.Keywords))
	return batch, nil
}

// Notice turns an upload error into the message shown to the user.
func Notice(err error) string {
	var backendErr *BackendError
	switch {
	case errors.Is(err, ErrInvalidFileType):
		return "Invalid file type. Please upload a valid document."
	case errors.Is(err, ErrUploadInProgress):
		return "An upload is already in progress."
	case errors.As(err, &backendErr):
		return "Error: " + backendErr.Message
	default:
		return "Error: " + err.Error()
	}
}
