// Package session persists the terminal client's login between invocations
// as a small YAML file.
package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultServer is used when neither the file nor the environment names one.
const DefaultServer = "http://localhost:8080"

// Session is the stored login. It satisfies client.TokenSource.
type Session struct {
	Server       string `yaml:"server"`
	AccessToken  string `yaml:"token,omitempty"`
	RefreshToken string `yaml:"refresh_token,omitempty"`
	UserID       string `yaml:"user_id,omitempty"`
	UserName     string `yaml:"user_name,omitempty"`
}

// DefaultPath is <user config dir>/skillswap/session.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "skillswap", "session.yaml"), nil
}

// Load reads the session at path. A missing file yields an empty session on
// the default server.
func Load(path string) (*Session, error) {
	s := &Session{}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read session: %w", err)
	default:
		if err := yaml.Unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("parse session %s: %w", path, err)
		}
	}
	if s.Server == "" {
		s.Server = DefaultServer
	}
	return s, nil
}

// Save writes the session readable by the owner only.
func (s *Session) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

func (s *Session) Token() string { return s.AccessToken }

// LoggedIn reports whether a bearer token is stored.
func (s *Session) LoggedIn() bool { return s.AccessToken != "" }

// Clear forgets the credentials but keeps the server.
func (s *Session) Clear() {
	s.AccessToken = ""
	s.RefreshToken = ""
	s.UserID = ""
	s.UserName = ""
}
