package notesclient

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
)

// SessionManager owns the one Session of a client and persists it through a
// SessionStore. It is safe for concurrent use.
type SessionManager struct {
	mu    sync.Mutex
	store SessionStore
	api   *transport
	state State

	redirect bool
	reason   string
}

// NewSessionManager restores any persisted session from store.
func NewSessionManager(cfg Config, store SessionStore) (*SessionManager, error) {
	state, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("notesclient: load session: %w", err)
	}
	if state.Preferences.WallpaperTheme == "" {
		state.Preferences.WallpaperTheme = ThemeHacker
	}
	return &SessionManager{store: store, api: newTransport(cfg), state: state}, nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupRequest struct {
	FullName string `json:"full_name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

// Authenticate logs in and stores the resulting session. A rejection is
// returned as *AuthError carrying the server's detail; nothing is retried.
func (m *SessionManager) Authenticate(ctx context.Context, email, password string) (*Session, error) {
	return m.authenticate(ctx, "login", "/auth/login", loginRequest{Email: email, Password: password})
}

// Register creates an account and stores the resulting session. name is optional.
func (m *SessionManager) Register(ctx context.Context, name, email, password string) (*Session, error) {
	return m.authenticate(ctx, "signup", "/auth/signup", signupRequest{
		FullName: strings.TrimSpace(name),
		Email:    email,
		Password: password,
	})
}

func (m *SessionManager) authenticate(ctx context.Context, op, path string, body any) (*Session, error) {
	resp, err := m.api.send(ctx, op, http.MethodPost, path, "", body)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, &AuthError{Status: resp.status, Detail: resp.detail()}
	}

	var out authResponse
	if err := resp.decode(op, &out); err != nil {
		return nil, err
	}
	if out.AccessToken == "" {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("response carried no access token")}
	}

	sess := &Session{Token: out.AccessToken, User: out.User}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Session = sess
	m.redirect = false
	m.reason = ""
	if err := m.store.Save(m.state); err != nil {
		return nil, fmt.Errorf("notesclient: persist session: %w", err)
	}
	current := *sess
	return &current, nil
}

// CurrentSession reads local state only; it never calls the server.
func (m *SessionManager) CurrentSession() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.Session == nil {
		return nil
	}
	s := *m.state.Session
	return &s
}

// EndSession forgets the token and user. Preferences are kept.
func (m *SessionManager) EndSession() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clear()
}

// Invalidate tears the session down after the server rejected token and marks
// that the user must authenticate again. A rejection of a token that is no
// longer current leaves the newer session alone.
func (m *SessionManager) Invalidate(token, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.Session == nil || m.state.Session.Token != token {
		return nil
	}
	m.redirect = true
	m.reason = reason
	return m.clear()
}

// RedirectRequired reports whether the last session ended through Invalidate.
// It resets on the next successful Authenticate or Register.
func (m *SessionManager) RedirectRequired() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.redirect
}

// InvalidationReason is the detail passed to the last Invalidate.
func (m *SessionManager) InvalidationReason() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reason
}

// Preferences are readable with or without a session.
func (m *SessionManager) Preferences() Preferences {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Preferences
}

func (m *SessionManager) SetMuted(muted bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Preferences.Muted = muted
	return m.save()
}

func (m *SessionManager) SetWallpaperTheme(theme WallpaperTheme) error {
	if _, err := ParseWallpaperTheme(string(theme)); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Preferences.WallpaperTheme = theme
	return m.save()
}

// clear and save expect m.mu held.
func (m *SessionManager) clear() error {
	m.state.Session = nil
	return m.save()
}

func (m *SessionManager) save() error {
	if err := m.store.Save(m.state); err != nil {
		return fmt.Errorf("notesclient: persist state: %w", err)
	}
	return nil
}
