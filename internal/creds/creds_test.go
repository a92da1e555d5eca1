package creds

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestSaveLoadClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.toml")

	account, err := Load(path)
	if err != nil {
		t.Fatalf("Load before save: %v", err)
	}
	if account.LoggedIn() {
		t.Fatal("zero account should not report logged in")
	}

	want := Account{Username: "op", Token: "tok123", Plan: "pro"}
	if err := Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != want {
		t.Fatalf("Load = %#v, want %#v", got, want)
	}
	if !got.LoggedIn() {
		t.Fatal("stored account should report logged in")
	}

	if err := Clear(path); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if err := Clear(path); err != nil {
		t.Fatalf("Clear should be idempotent: %v", err)
	}
	again, err := Load(path)
	if err != nil || again.LoggedIn() {
		t.Fatalf("after clear: %#v, %v", again, err)
	}
}

func TestSaveRestrictsPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not meaningful on windows")
	}
	path := filepath.Join(t.TempDir(), "credentials.toml")
	if err := Save(path, Account{Token: "secret"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	resolved, err := resolvePath(path)
	if err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(resolved)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("credentials mode = %o, want 600", perm)
	}
}
