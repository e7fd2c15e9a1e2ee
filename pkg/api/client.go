package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CredentialSource is what the client needs from the session store: the
// current bearer token, and the ability to clear it when the server rejects
// it.
type CredentialSource interface {
	Token() (string, bool)
	Clear() error
}

// Client issues authenticated JSON requests against the venue backend.
// Every endpoint wrapper in this package funnels through Do (or DoMultipart),
// which is the single place that attaches the bearer token, classifies
// failures, and clears the session on a 401.
type Client struct {
	baseURL string
	http    *http.Client
	creds   CredentialSource
	logger  *zap.Logger
}

// New creates a client for the given base URL. The http.Client's default
// timeout behavior applies; no client-side retry is ever performed.
func New(baseURL string, creds CredentialSource, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		creds:   creds,
		logger:  logger,
	}
}

// Request describes one call to the backend. Body, when non-nil, is JSON
// encoded. NoAuth is only set by the login endpoint; every other call
// requires a stored token up front.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
	NoAuth bool
}

// errEnvelope is the backend's standard error body. Decoding is
// best-effort; a body that does not match falls back to raw text.
type errEnvelope struct {
	Message string   `json:"message"`
	Details []string `json:"details"`
}

// Do issues the request and decodes a 2xx body into out (skipped when out
// is nil or the body is empty). Mutating requests carry a generated
// Idempotency-Key header so a double-submission resolves to one server-side
// action.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	var body io.Reader
	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	httpReq, err := c.newHTTPRequest(ctx, req, body)
	if err != nil {
		return err
	}
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	raw, err := c.execute(httpReq)
	if err != nil {
		return err
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return &DecodeError{Entity: req.Path, Err: err}
		}
	}
	return nil
}

// newHTTPRequest builds the underlying request: URL assembly, bearer token,
// idempotency key for mutations.
func (c *Client) newHTTPRequest(ctx context.Context, req Request, body io.Reader) (*http.Request, error) {
	u := c.baseURL + "/" + strings.TrimLeft(req.Path, "/")
	if len(req.Query) > 0 {
		u += "?" + req.Query.Encode()
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	if !req.NoAuth {
		token, ok := c.creds.Token()
		if !ok {
			return nil, ErrUnauthenticated
		}
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	if req.Method != http.MethodGet {
		httpReq.Header.Set("Idempotency-Key", uuid.New().String())
	}
	return httpReq, nil
}

// execute performs the round trip and classifies the outcome, returning the
// raw body on 2xx. A 401 clears the stored session before surfacing
// ErrSessionExpired; this is the only place that happens.
func (c *Client) execute(httpReq *http.Request) ([]byte, error) {
	c.logger.Debug("issuing request",
		zap.String("method", httpReq.Method),
		zap.String("url", httpReq.URL.Path))

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if clearErr := c.creds.Clear(); clearErr != nil {
			c.logger.Warn("failed to clear session after 401", zap.Error(clearErr))
		}
		c.logger.Info("session rejected by server, cleared local session",
			zap.String("path", httpReq.URL.Path))
		return nil, ErrSessionExpired
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, classifyFailure(resp.StatusCode, raw)
	}
	return raw, nil
}

// classifyFailure turns a non-2xx body into a RequestError, preferring the
// structured envelope and falling back to raw body text.
func classifyFailure(status int, raw []byte) error {
	var envelope errEnvelope
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Message != "" {
		return &RequestError{Status: status, Message: envelope.Message, Details: envelope.Details}
	}
	msg := strings.TrimSpace(string(raw))
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &RequestError{Status: status, Message: msg}
}
