// Package probe implements the request-execution and result-aggregation
// engine: an HTTP client that normalizes responses into pass/fail results, a
// sequential step runner with skip predicates, and a candidate endpoint
// search for probing APIs whose exact contract is not known in advance.
package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hairizuanbinnoorazman/flashprobe/logger"
	"github.com/hairizuanbinnoorazman/flashprobe/session"
)

const defaultTimeout = 30 * time.Second

// Request describes one HTTP probe request.
type Request struct {
	// Method is one of GET, POST, PUT, DELETE.
	Method string

	// Path is appended to the client's base URL (or auth base URL).
	Path string

	// Body is JSON-encoded when non-nil.
	Body interface{}

	// Headers are set on top of the defaults.
	Headers map[string]string

	// WithAuth attaches "Authorization: Bearer <token>" when the session
	// currently holds a token.
	WithAuth bool

	// AuthBase sends the request against the auth service base URL instead
	// of the API base URL.
	AuthBase bool
}

// Client performs HTTP probe requests and classifies the outcome. Transport
// errors and non-2xx statuses are never surfaced as Go errors; they become
// failed results so a probe run always proceeds to the next step.
type Client struct {
	baseURL    string
	authURL    string
	httpClient *http.Client
	logger     logger.Logger
}

// NewClient creates a probe client. An empty authURL falls back to baseURL.
func NewClient(baseURL, authURL string, log logger.Logger) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	authURL = strings.TrimRight(authURL, "/")
	if authURL == "" {
		authURL = baseURL
	}

	return &Client{
		baseURL: baseURL,
		authURL: authURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: log,
	}
}

// BaseURL returns the API base URL the client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do sends one request and normalizes the outcome.
//
// Status in [200,300): the body is parsed as a JSON object; a non-JSON
// non-empty body is wrapped under a "text" key; an empty body yields an
// empty payload. All three count as success.
//
// Status outside [200,300): a failed result carrying a best-effort
// diagnostic extracted from a "message" field in the error body, falling
// back to the raw body text.
//
// Transport errors are caught and classified as failure.
func (c *Client) Do(ctx context.Context, sess *session.Session, req Request) Result {
	base := c.baseURL
	if req.AuthBase {
		base = c.authURL
	}
	url := base + req.Path

	var bodyReader io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			c.logger.Error(ctx, "failed to marshal request body", map[string]interface{}{
				"error": err.Error(),
				"url":   url,
			})
			return Failure(0, fmt.Sprintf("failed to marshal request body: %v", err))
		}
		bodyReader = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, url, bodyReader)
	if err != nil {
		c.logger.Error(ctx, "failed to build request", map[string]interface{}{
			"error":  err.Error(),
			"method": req.Method,
			"url":    url,
		})
		return Failure(0, fmt.Sprintf("failed to build request: %v", err))
	}

	httpReq.Header.Set("Content-Type", "application/json")
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	if req.WithAuth && sess.HasToken() {
		httpReq.Header.Set("Authorization", "Bearer "+sess.AccessToken)
	}

	c.logger.Debug(ctx, "sending request", map[string]interface{}{
		"method": req.Method,
		"url":    url,
	})

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Debug(ctx, "request failed", map[string]interface{}{
			"error":  err.Error(),
			"method": req.Method,
			"url":    url,
		})
		return Failure(0, err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Debug(ctx, "failed to read response body", map[string]interface{}{
			"error": err.Error(),
			"url":   url,
		})
		return Failure(resp.StatusCode, fmt.Sprintf("failed to read response: %v", err))
	}

	c.logger.Debug(ctx, "received response", map[string]interface{}{
		"status": resp.StatusCode,
		"url":    url,
		"body":   string(body),
	})

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if len(bytes.TrimSpace(body)) == 0 {
			return Success(nil)
		}
		var payload map[string]interface{}
		if err := json.Unmarshal(body, &payload); err != nil {
			return Success(map[string]interface{}{"text": string(body)})
		}
		return Success(payload)
	}

	return Failure(resp.StatusCode, errorMessage(resp.StatusCode, body))
}

// errorMessage extracts a human-readable diagnostic from an error response
// body, preferring a JSON "message" field over the raw text.
func errorMessage(statusCode int, body []byte) string {
	msg := fmt.Sprintf("error %d", statusCode)

	var errBody struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &errBody) == nil && errBody.Message != "" {
		return msg + ": " + errBody.Message
	}
	if len(body) > 0 {
		return msg + ": " + string(body)
	}
	return msg
}
