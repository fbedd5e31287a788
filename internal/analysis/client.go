// Package analysis talks to the remote sentiment analysis backend and
// drives the document upload workflow.
package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// AllowedExtensions lists the document types the backend accepts.
var AllowedExtensions = []string{"csv", "txt", "xls", "xlsx"}

// ErrInvalidFileType is returned before any request is made when the
// file extension is not allowed.
var ErrInvalidFileType = errors.New("invalid file type")

// genericFailure is reported when the backend gives no error message.
const genericFailure = "An unknown error occurred."

// BackendError is a non-2xx response from the backend.
type BackendError struct {
	Status  int
	Message string
}

func (e *BackendError) Error() string {
	return e.Message
}

// ValidateFileName checks the extension (text after the last dot,
// case-insensitive) against AllowedExtensions.
func ValidateFileName(name string) error {
	ext := strings.ToLower(name[strings.LastIndex(name, ".")+1:])
	if !slices.Contains(AllowedExtensions, ext) {
		return ErrInvalidFileType
	}
	return nil
}

// Analyzer sends a document for analysis.
type Analyzer interface {
	Analyze(ctx context.Context, fileName string, body io.Reader) (*Response, error)
}

// Client is an HTTP client for the analysis backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a backend client. A zero timeout disables the client-side limit.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the backend origin.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Analyze posts the document as multipart field "file" to /analyze.
func (c *Client) Analyze(ctx context.Context, fileName string, body io.Reader) (*Response, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filepath.Base(fileName))
	if err != nil {
		return nil, fmt.Errorf("creating form file: %w", err)
	}
	if _, err := io.Copy(part, body); err != nil {
		return nil, fmt.Errorf("copying file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze", &buf)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var resp Response
	if err := c.do(req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Ping checks that the backend answers HTTP at all. The backend has no
// health route, so any status below 500 counts as reachable.
func (c *Client) Ping(ctx context.Context) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer closeBody(resp)
	if resp.StatusCode >= 500 {
		return resp.StatusCode, fmt.Errorf("server error: %s", http.StatusText(resp.StatusCode))
	}
	return resp.StatusCode, nil
}

// do executes the request and decodes a JSON body. Non-2xx responses
// become *BackendError carrying the body's "error" field when present.
func (c *Client) do(req *http.Request, result interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer closeBody(resp)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp struct {
			Error string `json:"error"`
		}
		msg := genericFailure
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			msg = errResp.Error
		}
		return &BackendError{Status: resp.StatusCode, Message: msg}
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func closeBody(resp *http.Response) {
	if cerr := resp.Body.Close(); cerr != nil {
		slog.Warn("closing response body", "err", cerr)
	}
}
