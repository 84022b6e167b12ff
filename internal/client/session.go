package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vinodtana/ai-tools-admin-web/internal/models"
)

// ErrNoSession means the console has not signed in yet.
var ErrNoSession = errors.New("not signed in; run `admin login` first")

// Session is what `admin login` stores between console invocations.
type Session struct {
	User    models.SessionUser `json:"user"`
	Token   string             `json:"token"`
	BaseURL string             `json:"baseUrl,omitempty"`
}

// SaveSession writes s with owner-only permissions.
func SaveSession(path string, s Session) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create session dir: %w", err)
		}
	}
	raw, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err = os.WriteFile(path, raw, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

func LoadSession(path string) (*Session, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	var s Session
	if err = json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if s.Token == "" {
		return nil, ErrNoSession
	}
	return &s, nil
}

// ClearSession removes the stored session; a missing file is not an error.
func ClearSession(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}
