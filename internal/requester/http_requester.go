// Package requester executes provider-shaped requests over HTTP and hands
// back the parsed JSON payload. It is the only package that touches the
// network; descriptors and the flow engine stay pure.
package requester

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/oauthkit/oauthkit/internal/logger"
	"github.com/oauthkit/oauthkit/internal/oauth/provider"
	"go.uber.org/zap"
)

// DefaultTimeout bounds a single provider call.
const DefaultTimeout = 30 * time.Second

// Doer executes one shaped provider request. An absent payload and a
// transport error are equivalent to callers: both surface as the error
// return. Implementations must return a non-nil (possibly empty) map on
// success even when the provider sent no body, as revocation endpoints
// commonly do.
type Doer interface {
	Do(ctx context.Context, req *provider.Request) (map[string]any, error)
}

// HTTPRequester is the production Doer backed by net/http.
type HTTPRequester struct {
	client *http.Client
}

// NewHTTPRequester creates an HTTPRequester with the default timeout.
func NewHTTPRequester() *HTTPRequester {
	return &HTTPRequester{
		client: &http.Client{Timeout: DefaultTimeout},
	}
}

// SetTimeout adjusts the per-request timeout.
func (r *HTTPRequester) SetTimeout(timeout time.Duration) {
	r.client.Timeout = timeout
}

// Do builds and executes the HTTP request and parses the JSON response.
// Non-2xx responses fail with an error carrying the provider's
// error/error_description fields when it sent any.
func (r *HTTPRequester) Do(ctx context.Context, req *provider.Request) (map[string]any, error) {
	httpReq, err := buildHTTPRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	logger.Debug("provider request",
		zap.String("method", req.Method),
		zap.String("url", httpReq.URL.Redacted()),
	)

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.Error("failed to close response body", zap.Error(closeErr))
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode/100 != 2 {
		return nil, statusError(resp.StatusCode, body)
	}

	payload := strings.TrimSpace(string(body))
	if payload == "" {
		return map[string]any{}, nil
	}
	var parsed map[string]any
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return parsed, nil
}

func buildHTTPRequest(ctx context.Context, req *provider.Request) (*http.Request, error) {
	target := req.URL
	if len(req.Query) > 0 {
		u, err := url.Parse(target)
		if err != nil {
			return nil, fmt.Errorf("invalid request URL: %w", err)
		}
		q := u.Query()
		for key, values := range req.Query {
			for _, v := range values {
				q.Add(key, v)
			}
		}
		u.RawQuery = q.Encode()
		target = u.String()
	}

	var body io.Reader
	contentType := ""
	switch {
	case req.JSON != nil:
		data, err := json.Marshal(req.JSON)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = strings.NewReader(string(data))
		contentType = "application/json"
	case len(req.Form) > 0:
		body = strings.NewReader(req.Form.Encode())
		contentType = "application/x-www-form-urlencoded"
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	for key, value := range req.Header {
		httpReq.Header.Set(key, value)
	}
	if contentType != "" && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if req.BasicAuth != nil {
		httpReq.SetBasicAuth(req.BasicAuth.Username, req.BasicAuth.Password)
	}
	return httpReq, nil
}

func statusError(status int, body []byte) error {
	var payload struct {
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		if payload.ErrorDescription != "" {
			return fmt.Errorf("provider returned status %d: %s: %s",
				status, payload.Error, payload.ErrorDescription)
		}
		return fmt.Errorf("provider returned status %d: %s", status, payload.Error)
	}
	return fmt.Errorf("provider returned status %d", status)
}
