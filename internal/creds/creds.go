// Package creds persists the operator's account context. The account
// is an explicit object handed to the components that need it, with a
// lifecycle tied to login/logout; nothing reads it from ambient global
// state.
package creds

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Account is the authenticated operator context returned by login.
type Account struct {
	Username string `toml:"username"`
	Token    string `toml:"token"`
	Plan     string `toml:"plan"`
}

// LoggedIn reports whether a usable token is present.
func (a Account) LoggedIn() bool {
	return strings.TrimSpace(a.Token) != ""
}

const defaultCredsPath = "~/.config/zapdeck/credentials.toml"

// DefaultPath returns the default credentials file path.
func DefaultPath() string {
	return defaultCredsPath
}

// Load reads the stored account. A missing file yields a zero Account;
// the dashboard still runs and authenticated calls surface a re-login
// hint.
func Load(path string) (Account, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Account{}, err
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Account{}, nil
		}
		return Account{}, fmt.Errorf("open credentials: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Account{}, fmt.Errorf("read credentials: %w", err)
	}

	var account Account
	if err := toml.Unmarshal(bytes, &account); err != nil {
		return Account{}, fmt.Errorf("parse credentials: %w", err)
	}
	return account, nil
}

// Save stores the account after a successful login. The file is
// owner-readable only since it carries the bearer token.
func Save(path string, account Account) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create credentials dir: %w", err)
	}

	bytes, err := toml.Marshal(account)
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}

// Clear removes the stored account on logout. Idempotent.
func Clear(path string) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	if err := os.Remove(resolved); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove credentials: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultCredsPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
