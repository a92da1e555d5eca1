package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server != "127.0.0.1:3033" || cfg.TLS || cfg.PollSeconds != 3 {
		t.Fatalf("defaults = %#v", cfg)
	}
}

func TestLoad_ParsesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := "server = \"gateway.example.com:443\"\ntls = true\npoll_seconds = 5\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server != "gateway.example.com:443" || !cfg.TLS || cfg.PollSeconds != 5 {
		t.Fatalf("cfg = %#v", cfg)
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("server = [broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load should reject invalid TOML")
	}
}

func TestURLsFollowTLSSetting(t *testing.T) {
	plain := Config{Server: "gw:3033"}
	if plain.APIBaseURL() != "http://gw:3033" || plain.StreamURL() != "ws://gw:3033" {
		t.Fatalf("plain urls = %q, %q", plain.APIBaseURL(), plain.StreamURL())
	}

	// Both channels must derive from the same TLS posture; a split
	// scheme is exactly the policy violation the client reports.
	secure := Config{Server: "gw:443", TLS: true}
	if secure.APIBaseURL() != "https://gw:443" || secure.StreamURL() != "wss://gw:443" {
		t.Fatalf("secure urls = %q, %q", secure.APIBaseURL(), secure.StreamURL())
	}
}
