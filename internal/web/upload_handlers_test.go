package web

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/evcraddock/sentiboard/internal/analysis"
)

func TestUploadSuccess(t *testing.T) {
	c := newTestClient(t)

	w := c.do(uploadRequest(t, "comments.csv", "text\n"))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body = %s", w.Code, http.StatusOK, w.Body.String())
	}
	trig := w.Header().Get("HX-Trigger")
	if !strings.Contains(trig, "Analysis complete!") {
		t.Errorf("HX-Trigger = %q, want success toast", trig)
	}
	if !strings.Contains(trig, "dashboardUpdated") {
		t.Errorf("HX-Trigger = %q, want dashboardUpdated", trig)
	}
	if got := w.Header().Get("HX-Push-Url"); got != "/" {
		t.Errorf("HX-Push-Url = %q, want /", got)
	}

	body := w.Body.String()
	for _, want := range []string{
		`data-page="dashboard"`,
		`id="stat-total" class="stat-value">7<`,
		`id="stat-positive" class="stat-value stat-positive">3<`,
		"42.9% of total",
		"28.6% of total",
		"parking",
		"<strong>parking</strong>",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in dashboard", want)
		}
	}
	if strings.Contains(body, "No keywords found") {
		t.Error("keyword placeholder should be gone")
	}

	if got := c.analyzer.callCount(); got != 1 {
		t.Errorf("backend calls = %d, want 1", got)
	}
}

func TestUploadWithoutHTMXRedirects(t *testing.T) {
	c := newTestClient(t)

	r := uploadRequest(t, "comments.csv", "text\n")
	r.Header.Del("HX-Request")
	w := c.do(r)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusSeeOther)
	}
	if loc := w.Header().Get("Location"); loc != "/" {
		t.Errorf("location = %q, want /", loc)
	}
}

func TestUploadInvalidFileType(t *testing.T) {
	c := newTestClient(t)

	for _, name := range []string{"report.pdf", "archive.tar.gz", "noextension"} {
		t.Run(name, func(t *testing.T) {
			w := c.do(uploadRequest(t, name, "data"))

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
			}
			trig := w.Header().Get("HX-Trigger")
			if !strings.Contains(trig, "Invalid file type. Please upload a valid document.") {
				t.Errorf("HX-Trigger = %q", trig)
			}
			if !strings.Contains(trig, `"type":"error"`) {
				t.Errorf("HX-Trigger = %q, want error toast", trig)
			}
		})
	}

	if got := c.analyzer.callCount(); got != 0 {
		t.Errorf("backend calls = %d, want 0", got)
	}
}

func TestUploadExtensionCaseInsensitive(t *testing.T) {
	c := newTestClient(t)

	w := c.do(uploadRequest(t, "COMMENTS.XLSX", "data"))

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestUploadMissingFile(t *testing.T) {
	c := newTestClient(t)

	r := htmxRequest("POST", "/upload", strings.NewReader(""))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := c.do(r)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if !strings.Contains(w.Header().Get("HX-Trigger"), "Please choose a file to upload.") {
		t.Errorf("HX-Trigger = %q", w.Header().Get("HX-Trigger"))
	}
}

func TestUploadMethodNotAllowed(t *testing.T) {
	c := newTestClient(t)

	w := c.do(httptest.NewRequest("GET", "/upload", nil))

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", w.Code, http.StatusMethodNotAllowed)
	}
}

func TestUploadBackendError(t *testing.T) {
	var calls atomic.Int32
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Path != "/analyze" {
			t.Errorf("path = %q, want /analyze", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		_, _ = io.WriteString(w, `{"error":"file too large"}`)
	}))
	defer backend.Close()

	cfg := testConfig()
	cfg.BackendURL = backend.URL
	c := newTestClientWithConfig(t, cfg, WithAnalyzer(analysis.New(backend.URL, 5*time.Second)))

	w := c.do(uploadRequest(t, "comments.csv", "text\n"))

	if w.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadGateway)
	}
	if !strings.Contains(w.Header().Get("HX-Trigger"), "Error: file too large") {
		t.Errorf("HX-Trigger = %q", w.Header().Get("HX-Trigger"))
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("backend calls = %d, want 1", n)
	}

	// Dashboard untouched.
	w = c.do(htmxRequest("GET", "/", nil))
	if !strings.Contains(w.Body.String(), `id="stat-total" class="stat-value">0<`) {
		t.Error("dashboard should be unchanged after a failed upload")
	}
}

func TestUploadBackendErrorWithoutMessage(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer backend.Close()

	c := newTestClientWithConfig(t, testConfig(), WithAnalyzer(analysis.New(backend.URL, 5*time.Second)))

	w := c.do(uploadRequest(t, "comments.csv", "text\n"))

	if !strings.Contains(w.Header().Get("HX-Trigger"), "Error: An unknown error occurred.") {
		t.Errorf("HX-Trigger = %q", w.Header().Get("HX-Trigger"))
	}
}

func TestUploadFailureKeepsPreviousDashboard(t *testing.T) {
	c := newTestClient(t)
	c.upload()

	c.analyzer.mu.Lock()
	c.analyzer.resp, c.analyzer.err = nil, errors.New("connection refused")
	c.analyzer.mu.Unlock()

	w := c.do(uploadRequest(t, "second.csv", "text\n"))
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadGateway)
	}
	if !strings.Contains(w.Header().Get("HX-Trigger"), "Error: connection refused") {
		t.Errorf("HX-Trigger = %q", w.Header().Get("HX-Trigger"))
	}

	w = c.do(htmxRequest("GET", "/", nil))
	if !strings.Contains(w.Body.String(), `id="stat-total" class="stat-value">7<`) {
		t.Error("previous dashboard should survive a failed upload")
	}
}

func TestUploadMalformedResponse(t *testing.T) {
	c := newTestClient(t)
	resp := sampleResponse()
	resp.IndividualResults[0].Sentiment = "Angry"
	c.analyzer.resp = resp

	w := c.do(uploadRequest(t, "comments.csv", "text\n"))

	if w.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadGateway)
	}
	if !strings.Contains(w.Header().Get("HX-Trigger"), "Error: decoding response") {
		t.Errorf("HX-Trigger = %q", w.Header().Get("HX-Trigger"))
	}
}

func TestUploadRecordsHistory(t *testing.T) {
	c := newTestClient(t)
	c.upload()

	w := c.do(htmxRequest("GET", "/?page=reports", nil))

	body := w.Body.String()
	if !strings.Contains(body, "comments.csv") {
		t.Error("expected uploaded file in history")
	}
	if !strings.Contains(body, "2026-03-01 09:00") {
		t.Error("expected upload time from the clock")
	}
	if strings.Contains(body, "No analyses yet.") {
		t.Error("history should not be empty")
	}
}

// blockingAnalyzer holds the upload until released.
type blockingAnalyzer struct {
	entered chan struct{}
	release chan struct{}
}

func (b *blockingAnalyzer) Analyze(ctx context.Context, _ string, _ io.Reader) (*analysis.Response, error) {
	close(b.entered)
	select {
	case <-b.release:
		return sampleResponse(), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func TestUploadRejectsConcurrentUpload(t *testing.T) {
	blocking := &blockingAnalyzer{entered: make(chan struct{}), release: make(chan struct{})}
	c := newTestClientWithConfig(t, testConfig(), WithAnalyzer(blocking))
	c.do(httptest.NewRequest("GET", "/", nil))

	first := uploadRequest(t, "first.csv", "text\n")
	second := uploadRequest(t, "second.csv", "text\n")
	for _, ck := range c.cookies {
		first.AddCookie(ck)
		second.AddCookie(ck)
	}

	done := make(chan int, 1)
	go func() {
		w := httptest.NewRecorder()
		c.srv.ServeHTTP(w, first)
		done <- w.Code
	}()
	<-blocking.entered

	w := httptest.NewRecorder()
	c.srv.ServeHTTP(w, second)
	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", w.Code, http.StatusConflict)
	}
	if !strings.Contains(w.Header().Get("HX-Trigger"), "An upload is already in progress.") {
		t.Errorf("HX-Trigger = %q", w.Header().Get("HX-Trigger"))
	}

	close(blocking.release)
	if code := <-done; code != http.StatusOK {
		t.Errorf("first upload status = %d, want %d", code, http.StatusOK)
	}
}

func TestUploadSingleCommentDashboard(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"individual_results": [{"comment": "Great service", "sentiment": "Positive"}],
			"overall_distribution": {"Positive": 1, "Negative": 0, "Neutral": 0},
			"wordcloud_data": {"service": 1}
		}`)
	}))
	defer backend.Close()

	c := newTestClientWithConfig(t, testConfig(), WithAnalyzer(analysis.New(backend.URL, 5*time.Second)))

	w := c.do(uploadRequest(t, "feedback.txt", "Great service\n"))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	body := w.Body.String()
	for _, want := range []string{
		`id="stat-total" class="stat-value">1<`,
		`id="stat-positive" class="stat-value stat-positive">1<`,
		`id="stat-positive-sub" class="text-sm text-slate-500">100.0% of total<`,
		`id="stat-negative" class="stat-value stat-negative">0<`,
		`<span class="font-medium text-slate-700">service</span>`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in dashboard", want)
		}
	}

	w = c.do(htmxRequest("GET", "/comments", nil))
	body = w.Body.String()
	if n := strings.Count(body, "data-comment-id="); n != 1 {
		t.Fatalf("rows = %d, want 1", n)
	}
	for _, want := range []string{
		"Showing 1-1 of 1 results",
		`&quot;Great service&quot;`,
		`class="data-sentiment px-2 py-1 text-xs font-medium rounded-full bg-green-100 text-green-800">Positive</span>`,
		`rounded">service</span>`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in table", want)
		}
	}
}
