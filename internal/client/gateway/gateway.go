// Package gateway is the single call surface to the paste service. Every
// outbound request is enriched with the current session's bearer credential
// and every failure is normalized into a GatewayError and surfaced once as
// a user-visible notification. The gateway holds no paste-domain knowledge;
// it never parses paste shapes.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pasteflow/pasteflow/internal/client/session"
	"github.com/pasteflow/pasteflow/internal/common"
	"github.com/pasteflow/pasteflow/internal/logging"
)

// CredentialSource yields the session whose credential is attached to
// outbound calls. The credential is read synchronously at dispatch time;
// a session change landing during an in-flight call does not affect it.
type CredentialSource interface {
	Snapshot() session.Session
}

// Notifier receives user-visible notifications. Gateway failures are
// reported here exactly once per call, in addition to being returned.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// GatewayError is the normalized form of any paste-service call failure.
// Message is the best human-readable description available, chosen in
// priority order: structured detail from the response body, the transport's
// own message, then a generic fallback.
type GatewayError struct {
	StatusCode int // zero when the failure happened before a response
	Message    string
	Err        error
}

func (e *GatewayError) Error() string {
	return e.Message
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// NotFound reports whether the server answered 404.
func (e *GatewayError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// Response is a successful outcome: the status code and the raw body.
type Response struct {
	StatusCode int
	Body       []byte
}

// JSON decodes the response body into v.
func (r *Response) JSON(v any) error {
	if len(r.Body) == 0 {
		return nil
	}
	return json.Unmarshal(r.Body, v)
}

// Gateway performs authorized calls against a fixed base URL.
//
// It never retries: GET callers may retry freely on their own, but a blind
// retry of a mutating call could duplicate its effect, so retries of those
// stay the caller's responsibility.
type Gateway struct {
	baseURL  string
	client   *http.Client
	sessions CredentialSource
	notify   Notifier
	log      logging.Logger
}

func New(baseURL string, sessions CredentialSource, notify Notifier, log logging.Logger, timeout time.Duration) *Gateway {
	return &Gateway{
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   &http.Client{Timeout: timeout},
		sessions: sessions,
		notify:   notify,
		log:      log.With("component", "gateway"),
	}
}

// Request dispatches one call. body, when non-nil, is JSON-encoded. query,
// when non-nil, is appended to the path. On failure the returned error is
// always a *GatewayError whose message has also been sent to the Notifier.
func (g *Gateway) Request(ctx context.Context, method, path string, body any, query url.Values) (*Response, error) {
	u := g.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, g.fail(ctx, method, path, 0, fmt.Errorf("encoding request body: %w", err), "")
		}
		payload = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, payload)
	if err != nil {
		return nil, g.fail(ctx, method, path, 0, err, "")
	}

	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// The credential is captured here, once, for this call. If a session
	// push lands while the call is in flight, only the next call sees it.
	if credential := g.sessions.Snapshot().Credential; credential != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+credential)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, g.fail(ctx, method, path, 0, err, "")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, g.fail(ctx, method, path, resp.StatusCode, err, "")
	}

	if resp.StatusCode >= 400 {
		return nil, g.fail(ctx, method, path, resp.StatusCode, nil, detailMessage(data))
	}

	return &Response{StatusCode: resp.StatusCode, Body: data}, nil
}

// fail builds the GatewayError, emits the notification, and logs the call.
func (g *Gateway) fail(ctx context.Context, method, path string, status int, transportErr error, detail string) *GatewayError {
	msg := detail
	if msg == "" && transportErr != nil {
		msg = transportErr.Error()
	}
	if msg == "" {
		msg = "Request failed"
	}

	g.log.Warn(ctx, "request failed",
		"method", method, "path", path, "status", status, "message", msg)
	g.notify.Error(msg)

	return &GatewayError{StatusCode: status, Message: msg, Err: transportErr}
}

// detailMessage extracts the structured error detail, if any, from an error
// response body.
func detailMessage(data []byte) string {
	var e struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(data, &e); err == nil {
		return e.Detail
	}
	return ""
}
