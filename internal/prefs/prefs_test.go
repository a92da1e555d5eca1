package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	p := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if p.Theme != "Dracula" || p.LastSession != "" {
		t.Fatalf("defaults = %#v", p)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.toml")

	if err := Save(path, Prefs{Theme: "Nord", LastSession: "vendas"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	p := Load(path)
	if p.Theme != "Nord" || p.LastSession != "vendas" {
		t.Fatalf("round trip = %#v", p)
	}
}

func TestLoad_CorruptFileDegradesToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	if err := os.WriteFile(path, []byte("theme = [what"), 0o644); err != nil {
		t.Fatal(err)
	}
	if p := Load(path); p.Theme != "Dracula" {
		t.Fatalf("corrupt prefs should degrade, got %#v", p)
	}
}
