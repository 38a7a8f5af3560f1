package notesclient

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// User is the profile returned with a token.
type User struct {
	ID        int64     `json:"id"         yaml:"id"`
	Email     string    `json:"email"      yaml:"email"`
	FullName  string    `json:"full_name"  yaml:"full_name,omitempty"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at,omitempty"`
}

// Session is the bearer token plus the user it was issued to.
type Session struct {
	Token string
	User  User
}

// WallpaperTheme is a presentation preference with a closed set of values.
type WallpaperTheme string

const (
	ThemeHacker WallpaperTheme = "hacker"
	ThemeDevOps WallpaperTheme = "devops"
	ThemeClean  WallpaperTheme = "clean"
)

// Themes lists every WallpaperTheme in display order.
var Themes = []WallpaperTheme{ThemeHacker, ThemeDevOps, ThemeClean}

// ParseWallpaperTheme rejects anything outside Themes.
func ParseWallpaperTheme(s string) (WallpaperTheme, error) {
	for _, t := range Themes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown wallpaper theme %q (want hacker, devops or clean)", s)
}

// Preferences are independent of the session and survive logout.
type Preferences struct {
	Muted          bool
	WallpaperTheme WallpaperTheme
}

// DefaultPreferences is sound on with the hacker wallpaper.
func DefaultPreferences() Preferences {
	return Preferences{WallpaperTheme: ThemeHacker}
}

// State is everything a SessionStore persists. A nil Session means logged out.
type State struct {
	Session     *Session
	Preferences Preferences
}

// SessionStore persists State between runs.
type SessionStore interface {
	Load() (State, error)
	Save(State) error
}

// MemoryStore keeps State in process memory.
type MemoryStore struct {
	mu    sync.Mutex
	state State
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{state: State{Preferences: DefaultPreferences()}}
}

func (m *MemoryStore) Load() (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return copyState(m.state), nil
}

func (m *MemoryStore) Save(s State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = copyState(s)
	return nil
}

func copyState(s State) State {
	if s.Session != nil {
		sess := *s.Session
		s.Session = &sess
	}
	return s
}

// stateFile is the on-disk YAML layout.
type stateFile struct {
	Token          string `yaml:"token,omitempty"`
	User           *User  `yaml:"user,omitempty"`
	Muted          bool   `yaml:"muted"`
	WallpaperTheme string `yaml:"wallpaper_theme,omitempty"`
}

// FileStore keeps State in a YAML file, replaced atomically on every save.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore does not touch the disk until the first Load or Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Path() string { return f.path }

// Load returns the default state when the file does not exist yet.
// An unknown theme falls back to the default instead of failing.
func (f *FileStore) Load() (State, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	state := State{Preferences: DefaultPreferences()}
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return state, nil
	}
	if err != nil {
		return state, fmt.Errorf("read state file: %w", err)
	}

	var doc stateFile
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return state, fmt.Errorf("parse state file %s: %w", f.path, err)
	}

	if doc.Token != "" && doc.User != nil {
		state.Session = &Session{Token: doc.Token, User: *doc.User}
	}
	state.Preferences.Muted = doc.Muted
	if theme, err := ParseWallpaperTheme(doc.WallpaperTheme); err == nil {
		state.Preferences.WallpaperTheme = theme
	}
	return state, nil
}

func (f *FileStore) Save(s State) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	doc := stateFile{
		Muted:          s.Preferences.Muted,
		WallpaperTheme: string(s.Preferences.WallpaperTheme),
	}
	if s.Session != nil {
		user := s.Session.User
		doc.Token = s.Session.Token
		doc.User = &user
	}

	raw, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".state-*.yaml")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("write state: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close state: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}
