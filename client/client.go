// Package client is the typed REST client for the SmartAttendance backend.
// It attaches the stored bearer token to every request, bounds request
// duration, and classifies failures into the module's error taxonomy; an
// HTTP 401 clears the token store before the error propagates, which forces
// the session manager back to Anonymous on its next evaluation.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"regexp"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"

	attend "github.com/smartattend/go-attend"
)

const (
	// DefaultTimeout bounds regular API calls. The face pipeline can be
	// slow on cold starts, hence the generous ceiling.
	DefaultTimeout = 120 * time.Second
	// HealthTimeout bounds the health probe, which should answer fast or
	// not at all.
	HealthTimeout = 5 * time.Second
	// DefaultLocalBaseURL is the development backend origin.
	DefaultLocalBaseURL = "http://localhost:5000/api"

	slowRequestThreshold = 5 * time.Second
)

var apiPrefixPattern = regexp.MustCompile(`(?i)^(.*/api)(?:/.*)?$`)

// NormalizeBaseURL reduces any configured backend URL to a base ending in
// exactly one /api prefix: trailing slashes stripped, an existing /api
// segment (any case) becomes the cut point, anything else gets /api
// appended. An empty value falls back to a relative /api.
func NormalizeBaseURL(raw string) string {
	clean := strings.TrimRight(strings.TrimSpace(raw), "/")
	if clean == "" {
		return "/api"
	}
	if clean == "/api" {
		return clean
	}
	if strings.HasPrefix(clean, "/api/") {
		return "/api"
	}
	if m := apiPrefixPattern.FindStringSubmatch(clean); m != nil {
		return m[1]
	}
	return clean + "/api"
}

// Client issues authenticated calls against the backend REST surface.
type Client struct {
	base    string
	http    *http.Client
	store   attend.TokenStore
	logger  attend.Logger
	timeout time.Duration
}

// New creates a Client for the given backend base URL. The URL is
// normalized; pass an empty string to use the local development default.
func New(baseURL string, store attend.TokenStore) *Client {
	if baseURL == "" {
		baseURL = DefaultLocalBaseURL
	}
	return &Client{
		base:    NormalizeBaseURL(baseURL),
		http:    &http.Client{},
		store:   store,
		logger:  defLogger{},
		timeout: DefaultTimeout,
	}
}

func (c *Client) WithLogger(logger attend.Logger) *Client {
	c.logger = logger
	return c
}

// WithTimeout overrides the per-request deadline.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	if timeout > 0 {
		c.timeout = timeout
	}
	return c
}

// WithHTTPClient substitutes the underlying transport.
func (c *Client) WithHTTPClient(httpClient *http.Client) *Client {
	if httpClient != nil {
		c.http = httpClient
	}
	return c
}

// BaseURL returns the normalized base the client sends requests to.
func (c *Client) BaseURL() string {
	return c.base
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out, c.timeout)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out, c.timeout)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to encode request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to build request")
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("X-Request-ID", uuid.NewString())

	// Token captured at send time: a logout while this request is in
	// flight does not alter the header already attached.
	if token, ok := c.store.Get(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		return c.classifyTransport(err, path)
	}
	defer res.Body.Close()

	if elapsed := time.Since(start); elapsed > slowRequestThreshold {
		c.logger.Warn("Slow API request to %s took %s", path, elapsed)
	}

	if res.StatusCode >= http.StatusBadRequest {
		return c.classifyStatus(res, path)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, res.Body)
		return nil
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to decode response body")
	}
	return nil
}

func (c *Client) classifyTransport(err error, path string) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		c.logger.Warn("API request to %s timed out", path)
		return richError(attend.ErrRequestTimeout, err)
	}
	if errors.Is(err, context.Canceled) {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "request cancelled")
	}
	c.logger.Error("API request to %s failed: %v", path, err)
	return richError(attend.ErrNetworkUnreachable, err)
}

func (c *Client) classifyStatus(res *http.Response, path string) error {
	serverMsg := readServerMessage(res.Body)

	switch {
	case res.StatusCode == http.StatusUnauthorized:
		// Invalid session: drop the token before surfacing the error so
		// the next session resolution sees Anonymous.
		if err := c.store.Clear(); err != nil {
			c.logger.Warn("Failed to clear token after 401: %v", err)
		}
		return richError(attend.ErrUnauthorized, nil)
	case res.StatusCode == http.StatusTooManyRequests:
		return richError(attend.ErrRateLimited, nil)
	case res.StatusCode >= http.StatusInternalServerError:
		c.logger.Error("API server error on %s: status %d", path, res.StatusCode)
		return richError(attend.ErrServerError, nil)
	default:
		if serverMsg == "" {
			serverMsg = "Something went wrong."
		}
		return goerrors.New(serverMsg, goerrors.CategoryBadInput).
			WithTextCode("API_CLIENT_ERROR").
			WithMetadata(map[string]any{"status": res.StatusCode, "path": path})
	}
}

// readServerMessage pulls the most specific message from an error body; the
// backend uses both "message" and "error" depending on the handler.
func readServerMessage(body io.Reader) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}

func richError(base *goerrors.Error, cause error) error {
	clone := base.Clone()
	if clone == nil {
		return base
	}
	clone.Source = cause
	return clone
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] API "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] API "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] API "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] API "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
