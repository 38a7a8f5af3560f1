// Package notesclient talks to the Notes Studio API on behalf of one user.
//
// A SessionManager holds the bearer token and persists it; a Client is built
// around it and performs note operations. Every scoped response passes through
// Client.do, which turns a 401 into a torn-down session and ErrUnauthorized.
package notesclient

import (
	"context"
	"net/http"
)

// Client performs note operations for the session held by its SessionManager.
type Client struct {
	sessions *SessionManager
	api      *transport
}

// NewClient talks to cfg.BaseURL with the token held by sessions. Share one
// SessionManager between a Client and anything else that logs in or out.
func NewClient(cfg Config, sessions *SessionManager) *Client {
	return &Client{sessions: sessions, api: newTransport(cfg)}
}

// Sessions returns the manager the client was built with.
func (c *Client) Sessions() *SessionManager { return c.sessions }

// do runs one scoped call. It is the only place responses of scoped calls
// are interpreted:
//   - no session: ErrNoSession, no request made
//   - 401: session invalidated, *UnauthorizedError
//   - 404: ErrNotFound
//   - other non-2xx: *APIError
func (c *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	sess := c.sessions.CurrentSession()
	if sess == nil {
		return ErrNoSession
	}

	resp, err := c.api.send(ctx, op, method, path, sess.Token, in)
	if err != nil {
		return err
	}

	switch {
	case resp.status == http.StatusUnauthorized:
		detail := resp.detail()
		if err := c.sessions.Invalidate(sess.Token, detail); err != nil {
			return err
		}
		return &UnauthorizedError{Detail: detail}
	case resp.status == http.StatusNotFound:
		return ErrNotFound
	case !resp.ok():
		return &APIError{Status: resp.status, Detail: resp.detail()}
	}
	return resp.decode(op, out)
}

// Logout revokes the token server-side when possible and always ends the
// local session. The server call's error is returned after local teardown.
func (c *Client) Logout(ctx context.Context) error {
	sess := c.sessions.CurrentSession()
	if sess == nil {
		return nil
	}

	var remote error
	resp, err := c.api.send(ctx, "logout", http.MethodPost, "/auth/logout", sess.Token, nil)
	switch {
	case err != nil:
		remote = err
	case !resp.ok() && resp.status != http.StatusUnauthorized:
		remote = &APIError{Status: resp.status, Detail: resp.detail()}
	}

	if err := c.sessions.EndSession(); err != nil {
		return err
	}
	return remote
}

// OpsLink is one external tool shown on the dashboard.
type OpsLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// OpsLinks fetches the dashboard's external tool links. No session needed.
func (c *Client) OpsLinks(ctx context.Context) ([]OpsLink, error) {
	var links []OpsLink
	if err := c.public(ctx, "ops links", "/ops/links", &links); err != nil {
		return nil, err
	}
	return links, nil
}

// Health returns the server's liveness status string.
func (c *Client) Health(ctx context.Context) (string, error) {
	var body struct {
		Status string `json:"status"`
	}
	if err := c.public(ctx, "health", "/health", &body); err != nil {
		return "", err
	}
	return body.Status, nil
}

func (c *Client) public(ctx context.Context, op, path string, out any) error {
	resp, err := c.api.send(ctx, op, http.MethodGet, path, "", nil)
	if err != nil {
		return err
	}
	if !resp.ok() {
		return &APIError{Status: resp.status, Detail: resp.detail()}
	}
	return resp.decode(op, out)
}
