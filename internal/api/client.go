package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/balaiwarga/dashboard/pkg/metrics"
)

// Client is the single point of contact with the upstream content API. Every
// request attaches the caller's upstream session cookie (taken from the
// request context), serializes JSON bodies, and unwraps the {data, errors}
// envelope the API uses on every response.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// New creates a client for the given base URL. A zero timeout falls back to
// the transport default, matching the original client behavior.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the configured upstream base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Error is an upstream failure normalized to a human-readable message: the
// envelope's errors field when parseable, otherwise "API Error: <status>".
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string { return e.Message }

type ctxKey int

const credentialKey ctxKey = iota

// WithCredential stores the upstream session cookie (an opaque "name=value"
// pair set by the upstream on login) in the context for subsequent calls.
func WithCredential(ctx context.Context, cookie string) context.Context {
	return context.WithValue(ctx, credentialKey, cookie)
}

// CredentialFromContext returns the upstream cookie stored by WithCredential,
// or "" when the context carries none.
func CredentialFromContext(ctx context.Context) string {
	v, _ := ctx.Value(credentialKey).(string)
	return v
}

type envelope struct {
	Data   json.RawMessage `json:"data"`
	Errors string          `json:"errors"`
}

// Request issues a raw request against the upstream, attaching the context
// credential and recording metrics. Transport errors propagate as-is; any
// HTTP status is returned to the caller for inspection.
func (c *Client) Request(ctx context.Context, method, path, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if cookie := CredentialFromContext(ctx); cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(method, "error").Inc()
		return nil, err
	}
	metrics.UpstreamRequests.WithLabelValues(method, statusClass(resp.StatusCode)).Inc()
	return resp, nil
}

// Do performs a JSON request/response round trip. body may be nil; when out
// is non-nil the envelope's data payload is decoded into it. An absent or
// null data field leaves out untouched (callers treat that as empty).
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	contentType := ""
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
		contentType = "application/json"
	}
	resp, err := c.Request(ctx, method, path, contentType, reader)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return DecodeEnvelope(resp, out)
}

// DecodeEnvelope unwraps an upstream response. Non-2xx statuses become an
// *Error carrying the envelope's errors text or a generic status fallback.
func DecodeEnvelope(resp *http.Response, out any) error {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var env envelope
		if jerr := json.Unmarshal(raw, &env); jerr == nil && env.Errors != "" {
			return &Error{StatusCode: resp.StatusCode, Message: env.Errors}
		}
		return &Error{StatusCode: resp.StatusCode, Message: fmt.Sprintf("API Error: %d", resp.StatusCode)}
	}
	if out == nil {
		return nil
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return err
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}

func statusClass(code int) string {
	switch {
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 400 && code < 500:
		return "4xx"
	case code >= 500:
		return "5xx"
	default:
		return "other"
	}
}
