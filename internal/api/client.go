// Package api is the gateway to the remote reservation service.  It
// attaches the session's bearer token, encodes JSON bodies and decodes
// JSON or error responses.  Calls are at-most-once: nothing here
// retries, and nothing here touches the session store.  The remote API
// plays the role a repository layer would play in a backend service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/iliyamo/restaurant-reservation-web/internal/model"
)

// Error is the decoded failure of a gateway call.  Status 0 means the
// call never produced an HTTP response (connection failure); otherwise
// Status is the HTTP status and Detail the service's {detail} string,
// or "unknown" when the body could not be decoded.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return "api: " + e.Detail
	}
	return fmt.Sprintf("api: %d: %s", e.Status, e.Detail)
}

// IsNetwork reports whether the call failed before any response arrived.
func (e *Error) IsNetwork() bool { return e.Status == 0 }

// AsError unwraps err into an *Error when it is one.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}

// IsUnauthorized reports whether err is an API error with status 401.
// Handlers use it to clear the session and send the user back to login.
func IsUnauthorized(err error) bool {
	apiErr, ok := AsError(err)
	return ok && apiErr.Status == http.StatusUnauthorized
}

// Client issues calls against one base URL.  The zero value is not
// usable; construct with New.  A Client is cheap to copy: WithSession
// binds a bearer token while sharing the underlying http.Client.
type Client struct {
	base  string
	httpc *http.Client
	token string
}

// New returns a client for the service at baseURL.  Every call is
// bounded by timeout in addition to any context deadline.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		base:  strings.TrimRight(baseURL, "/"),
		httpc: &http.Client{Timeout: timeout},
	}
}

// WithSession returns a copy of the client that authenticates every
// call with the session's bearer token.  The unauthenticated client is
// kept for the login endpoints only.
func (c *Client) WithSession(sess model.Session) *Client {
	cp := *c
	cp.token = sess.Token
	return &cp
}

// do performs one call.  body (when non-nil) is JSON-encoded; out (when
// non-nil) receives the decoded success body.  All failures come back
// as *Error so callers can surface Detail verbatim.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return &Error{Detail: "connection failure"}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		detail := "unknown"
		var e struct {
			Detail string `json:"detail"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&e); err == nil && e.Detail != "" {
			detail = e.Detail
		}
		return &Error{Status: resp.StatusCode, Detail: detail}
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &Error{Status: resp.StatusCode, Detail: "malformed response body"}
		}
	}
	return nil
}
