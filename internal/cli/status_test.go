package cli

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestStatusReachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The backend has no index route; 404 still means it is up.
		http.NotFound(w, r)
	}))
	defer srv.Close()

	t.Setenv("HOME", t.TempDir())
	t.Setenv("SB_BACKEND_URL", srv.URL)

	out, err := executeCommand("status")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out, "Backend: "+srv.URL) {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(out, "✓ reachable (HTTP 404)") {
		t.Errorf("output = %q", out)
	}
}

func TestStatusTrimsTrailingSlash(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	t.Setenv("HOME", t.TempDir())

	out, err := executeCommand("status", "--backend", srv.URL+"/")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out, "Backend: "+srv.URL+"\n") {
		t.Errorf("output = %q", out)
	}
}

func TestStatusServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	t.Setenv("HOME", t.TempDir())

	// Should not return error, just prints status
	out, err := executeCommand("status", "--backend", srv.URL)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out, "✗ cannot reach backend") {
		t.Errorf("output = %q", out)
	}
}

func TestStatusUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	t.Setenv("HOME", t.TempDir())

	out, err := executeCommand("status", "--backend", url, "--format", "json")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !strings.Contains(out, `"reachable": false`) {
		t.Errorf("output = %q", out)
	}
}
