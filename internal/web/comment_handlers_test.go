package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCommentsFilterByQuery(t *testing.T) {
	c := newTestClient(t)
	c.upload()

	w := c.do(htmxRequest("GET", "/comments?q=COMMENT+3&sentiment=all", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Showing 1-1 of 1 results") {
		t.Errorf("expected single result, got:\n%s", body)
	}
	if !strings.Contains(body, `data-comment-id="3"`) {
		t.Error("expected comment 3")
	}
	if strings.Contains(body, "<html") {
		t.Error("filter should return the table partial only")
	}
}

func TestCommentsFilterByKeyword(t *testing.T) {
	c := newTestClient(t)
	c.upload()

	// Every comment carries the shared keywords.
	w := c.do(htmxRequest("GET", "/comments?q=fees", nil))

	if !strings.Contains(w.Body.String(), "Showing 1-5 of 7 results") {
		t.Error("expected keyword match on all comments")
	}
}

func TestCommentsFilterBySentiment(t *testing.T) {
	c := newTestClient(t)
	c.upload()

	w := c.do(htmxRequest("GET", "/comments?sentiment=negative", nil))

	body := w.Body.String()
	if !strings.Contains(body, "Showing 1-2 of 2 results") {
		t.Errorf("expected two negative comments, got:\n%s", body)
	}
	for _, id := range []string{"2", "5"} {
		if !strings.Contains(body, `data-comment-id="`+id+`"`) {
			t.Errorf("expected comment %s", id)
		}
	}
}

func TestCommentsFilterNoMatch(t *testing.T) {
	c := newTestClient(t)
	c.upload()

	w := c.do(htmxRequest("GET", "/comments?q=zoning", nil))

	body := w.Body.String()
	if !strings.Contains(body, "No Comments to Display") {
		t.Error("expected empty placeholder")
	}
	if !strings.Contains(body, "Showing 0-0 of 0 results") {
		t.Error("expected empty pagination info")
	}
}

func TestCommentsFilterWithoutHTMXRendersPage(t *testing.T) {
	c := newTestClient(t)
	c.upload()

	w := c.do(httptest.NewRequest("GET", "/comments?sentiment=neutral", nil))

	body := w.Body.String()
	if !strings.Contains(body, "<html") {
		t.Error("expected full page")
	}
	if !strings.Contains(body, `<option value="neutral" selected>`) {
		t.Error("expected filter to be preserved in the form")
	}
}

func TestCommentsPagination(t *testing.T) {
	c := newTestClient(t)
	c.upload()

	tests := []struct {
		name string
		path string
		want string
	}{
		{"second page", "/comments/page/2", "Showing 6-7 of 7 results"},
		{"past the end clamps", "/comments/page/9", "Showing 6-7 of 7 results"},
		{"zero clamps", "/comments/page/0", "Showing 1-5 of 7 results"},
		{"negative clamps", "/comments/page/-3", "Showing 1-5 of 7 results"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := c.do(htmxRequest("GET", tt.path, nil))
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
			}
			if !strings.Contains(w.Body.String(), tt.want) {
				t.Errorf("expected %q", tt.want)
			}
		})
	}
}

func TestCommentsPaginationKeepsFilter(t *testing.T) {
	c := newTestClient(t)
	c.upload()

	c.do(htmxRequest("GET", "/comments?sentiment=positive", nil))
	w := c.do(htmxRequest("GET", "/comments/page/2", nil))

	if !strings.Contains(w.Body.String(), "Showing 1-3 of 3 results") {
		t.Errorf("page change should keep the filter and clamp, got:\n%s", w.Body.String())
	}
}

func TestCommentsFilterResetsCursor(t *testing.T) {
	c := newTestClient(t)
	c.upload()

	c.do(htmxRequest("GET", "/comments/page/2", nil))
	w := c.do(htmxRequest("GET", "/comments?q=parking", nil))

	if !strings.Contains(w.Body.String(), "Showing 1-5 of 7 results") {
		t.Error("filter should reset to the first page")
	}
}

func TestCommentsPageInvalid(t *testing.T) {
	c := newTestClient(t)

	w := c.do(htmxRequest("GET", "/comments/page/abc", nil))

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestCommentDetail(t *testing.T) {
	c := newTestClient(t)
	c.upload()

	w := c.do(htmxRequest("GET", "/comments/2", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	body := w.Body.String()
	for _, want := range []string{
		"Comment #2 Details",
		"Regarding: General Comment",
		"Negative",
		"comment 2 about parking",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in modal", want)
		}
	}
}

func TestCommentDetailNotFound(t *testing.T) {
	c := newTestClient(t)
	c.upload()

	for _, path := range []string{"/comments/99", "/comments/0", "/comments/abc"} {
		t.Run(path, func(t *testing.T) {
			w := c.do(htmxRequest("GET", path, nil))
			if w.Code != http.StatusNotFound {
				t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
			}
		})
	}
}

func TestFlagToggle(t *testing.T) {
	c := newTestClient(t)
	c.upload()

	w := c.do(htmxRequest("POST", "/comments/4/flag", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	body := w.Body.String()
	if !strings.Contains(body, "text-red-600") || !strings.Contains(body, `aria-pressed="true"`) {
		t.Errorf("expected flagged button, got:\n%s", body)
	}

	w = c.do(htmxRequest("POST", "/comments/4/flag", nil))
	body = w.Body.String()
	if strings.Contains(body, "text-red-600") || !strings.Contains(body, `aria-pressed="false"`) {
		t.Errorf("expected unflagged button after second toggle, got:\n%s", body)
	}
}

func TestFlagShowsInTable(t *testing.T) {
	c := newTestClient(t)
	c.upload()

	c.do(htmxRequest("POST", "/comments/1/flag", nil))
	w := c.do(htmxRequest("GET", "/comments/page/1", nil))

	if !strings.Contains(w.Body.String(), `class="action-flag text-red-600" hx-post="/comments/1/flag"`) {
		t.Error("expected comment 1 to stay flagged")
	}
}

func TestFlagNotFound(t *testing.T) {
	c := newTestClient(t)

	w := c.do(htmxRequest("POST", "/comments/1/flag", nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestFlagMethodNotAllowed(t *testing.T) {
	c := newTestClient(t)
	c.upload()

	w := c.do(htmxRequest("GET", "/comments/1/flag", nil))

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", w.Code, http.StatusMethodNotAllowed)
	}
}

func TestExportEmpty(t *testing.T) {
	c := newTestClient(t)

	w := c.do(httptest.NewRequest("GET", "/export.csv", nil))

	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", w.Code, http.StatusConflict)
	}
	if !strings.Contains(w.Header().Get("HX-Trigger"), "No data to export.") {
		t.Errorf("HX-Trigger = %q", w.Header().Get("HX-Trigger"))
	}
	if cd := w.Header().Get("Content-Disposition"); cd != "" {
		t.Errorf("unexpected download: %q", cd)
	}
}

func TestExportFilteredView(t *testing.T) {
	c := newTestClient(t)
	c.upload()
	c.do(htmxRequest("GET", "/comments?sentiment=negative", nil))

	w := c.do(httptest.NewRequest("GET", "/export.csv", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("content-type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "sentiment_analysis_export.csv") {
		t.Errorf("content-disposition = %q", cd)
	}

	want := "ID,Sentiment,Provision,Keywords,Full Text\n" +
		`2,negative,General Comment,"parking, fees","comment 2 about parking"` + "\n" +
		`5,negative,General Comment,"parking, fees","comment 5 about parking"` + "\n"
	if got := w.Body.String(); got != want {
		t.Errorf("csv = %q, want %q", got, want)
	}
}

func TestExportNoMatchesAfterFilter(t *testing.T) {
	c := newTestClient(t)
	c.upload()
	c.do(htmxRequest("GET", "/comments?q=zoning", nil))

	w := c.do(httptest.NewRequest("GET", "/export.csv", nil))

	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", w.Code, http.StatusConflict)
	}
}
