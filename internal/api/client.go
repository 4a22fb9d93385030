// Package api is the single point of outbound HTTP to the Khel platform.
// Two independently configured Client instances exist at runtime, one per
// token namespace (user and admin); they never cross-attach tokens.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	kerrors "github.com/khel-store/khel/internal/errors"
	"github.com/khel-store/khel/internal/log"
	"github.com/khel-store/khel/internal/session"
)

// DefaultTimeout bounds every outbound request.
const DefaultTimeout = 30 * time.Second

// TokenSource supplies the bearer token attached to outbound requests. It is
// consulted before every request so a token written by a concurrent login is
// picked up immediately; an empty return sends the request unauthenticated.
type TokenSource func() string

// StoreTokenSource reads the token from a persisted session store.
func StoreTokenSource(store session.Store) TokenSource {
	return func() string {
		sess, err := store.Load()
		if err != nil {
			return ""
		}
		return sess.Token
	}
}

// StaticTokenSource always returns the given token. Used in tests.
func StaticTokenSource(token string) TokenSource {
	return func() string { return token }
}

// Client is a Khel platform API client scoped to one token namespace.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Tokens     TokenSource
	Logger     *log.Logger

	// onUnauthorized fires once per 401 response, from any endpoint.
	// Configured on the user-facing client only.
	onUnauthorized func()
}

// NewClient creates a platform API client.
func NewClient(baseURL string, tokens TokenSource, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.DefaultLogger()
	}
	if tokens == nil {
		tokens = func() string { return "" }
	}
	return &Client{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		Tokens: tokens,
		Logger: logger,
	}
}

// WithTimeout overrides the per-request timeout.
func (c *Client) WithTimeout(d time.Duration) *Client {
	c.HTTPClient.Timeout = d
	return c
}

// WithUnauthorizedHook installs the global 401 reaction: clearing the session
// and forcing navigation to the login view is the hook's job, not the
// caller's.
func (c *Client) WithUnauthorizedHook(fn func()) *Client {
	c.onUnauthorized = fn
	return c
}

// errorResponse is the platform's error envelope.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// doRaw performs a request and returns the response body for a 2xx status.
// Non-2xx statuses become coded errors carrying the server's message; a 401
// additionally fires the unauthorized hook.
func (c *Client) doRaw(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, kerrors.Wrap(kerrors.ErrCodeAPIDecode, "marshal request body", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return nil, kerrors.Wrap(kerrors.ErrCodeAPITransport, "create request", err)
	}

	req.Header.Set("Content-Type", "application/json")
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	if token := c.Tokens(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.Logger.Debug("api request", "method", method, "path", path, "request_id", requestID)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, kerrors.NewTransportError(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, kerrors.Wrap(kerrors.ErrCodeAPIDecode, "read response body", err)
	}

	c.Logger.Debug("api response", "status", resp.StatusCode, "path", path, "request_id", requestID)

	if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
		c.onUnauthorized()
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.statusError(resp.StatusCode, respBody)
	}

	return respBody, nil
}

// statusError maps a non-2xx response onto the error taxonomy, preferring
// the server's own message.
func (c *Client) statusError(status int, body []byte) error {
	message := ""
	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err == nil {
		if errResp.Message != "" {
			message = errResp.Message
		} else if errResp.Error != "" {
			message = errResp.Error
		}
	}
	if message == "" {
		message = fmt.Sprintf("request failed with status %d", status)
	}

	switch status {
	case http.StatusUnauthorized:
		return kerrors.New(kerrors.ErrCodeAuthSessionExpired, message)
	case http.StatusForbidden:
		return kerrors.New(kerrors.ErrCodeAuthAccessDenied, message)
	case http.StatusNotFound:
		return kerrors.New(kerrors.ErrCodeAPINotFound, message)
	default:
		return kerrors.New(kerrors.ErrCodeAPIStatus, message)
	}
}

// do performs a request and decodes the 2xx response body into target when
// target is non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, target interface{}) error {
	raw, err := c.doRaw(ctx, method, path, body)
	if err != nil {
		return err
	}

	if target != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, target); err != nil {
			return kerrors.Wrap(kerrors.ErrCodeAPIDecode, "decode response", err)
		}
	}

	return nil
}
