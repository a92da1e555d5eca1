package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures how zapdeck reaches the bot gateway.
type Config struct {
	Server      string // host:port of the gateway
	TLS         bool   // true when the gateway terminates TLS
	PollSeconds int    // pairing poll cadence
}

const (
	defaultConfigPath  = "~/.config/zapdeck/config.toml"
	defaultServer      = "127.0.0.1:3033"
	defaultPollSeconds = 3
)

// Load locates and parses the zapdeck config, falling back to defaults
// when the file is missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{Server: defaultServer, PollSeconds: defaultPollSeconds}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Server      string `toml:"server"`
		TLS         bool   `toml:"tls"`
		PollSeconds int    `toml:"poll_seconds"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.Server = strings.TrimSpace(raw.Server)
	if cfg.Server == "" {
		cfg.Server = defaultServer
	}
	cfg.TLS = raw.TLS
	if raw.PollSeconds > 0 {
		cfg.PollSeconds = raw.PollSeconds
	}

	return cfg, nil
}

// APIBaseURL returns the gateway's HTTP base URL. The scheme follows
// the tls setting so the pull and push channels always agree on
// transport policy.
func (c Config) APIBaseURL() string {
	if c.TLS {
		return "https://" + c.Server
	}
	return "http://" + c.Server
}

// StreamURL returns the push channel URL, derived from the same host
// and TLS posture as the HTTP API.
func (c Config) StreamURL() string {
	if c.TLS {
		return "wss://" + c.Server
	}
	return "ws://" + c.Server
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
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
