package notesclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 16 << 20

// transport sends JSON requests to the API. It knows nothing about sessions.
type transport struct {
	baseURL  string
	http     *http.Client
	maxBytes int64
}

func newTransport(cfg Config) *transport {
	return &transport{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		http:     &http.Client{Timeout: cfg.HTTPTimeout},
		maxBytes: maxResponseBytes,
	}
}

type response struct {
	status int
	body   []byte
}

func (r *response) ok() bool { return r.status >= 200 && r.status < 300 }

// decode fills out from a 2xx body. A nil out or an empty body is a no-op.
func (r *response) decode(op string, out any) error {
	if out == nil || len(r.body) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.body, out); err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// detail extracts the server's {"detail": ...} message, falling back to the status text.
func (r *response) detail() string {
	var body struct {
		Detail any `json:"detail"`
	}
	if err := json.Unmarshal(r.body, &body); err == nil {
		switch d := body.Detail.(type) {
		case string:
			if d != "" {
				return d
			}
		case nil:
		default:
			if b, err := json.Marshal(d); err == nil {
				return string(b)
			}
		}
	}
	return http.StatusText(r.status)
}

func (t *transport) send(ctx context.Context, op, method, path, token string, in any) (*response, error) {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("%s: encode request: %w", op, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+path, body)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := t.http.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, t.maxBytes+1))
	if err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("read response: %w", err)}
	}
	if int64(len(raw)) > t.maxBytes {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("response body exceeds %d bytes", t.maxBytes)}
	}
	return &response{status: resp.StatusCode, body: raw}, nil
}
