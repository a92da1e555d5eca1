package ui

import "testing"

func TestGetTheme(t *testing.T) {
	for _, name := range ThemeNames() {
		if got := GetTheme(name); got.Name != name {
			t.Fatalf("GetTheme(%q).Name = %q", name, got.Name)
		}
	}
	if got := GetTheme("does-not-exist"); got.Name != "Dracula" {
		t.Fatalf("unknown theme should fall back to Dracula, got %q", got.Name)
	}
}

func TestNextThemeCycles(t *testing.T) {
	start := ThemeNames()[0]
	name := start
	seen := map[string]bool{}
	for range ThemeNames() {
		seen[name] = true
		name = NextTheme(name)
	}
	if name != start {
		t.Fatalf("cycle did not return to %q, ended at %q", start, name)
	}
	if len(seen) != len(ThemeNames()) {
		t.Fatalf("cycle visited %d themes, want %d", len(seen), len(ThemeNames()))
	}

	if got := NextTheme("bogus"); got != start {
		t.Fatalf("NextTheme(bogus) = %q, want %q", got, start)
	}
}

func TestThemesCoverAllStatuses(t *testing.T) {
	statuses := []string{"INITIALIZING", "QR_PENDING", "READY", "ERROR", "OFFLINE", "DESTROYING"}
	for _, name := range ThemeNames() {
		theme := GetTheme(name)
		for _, status := range statuses {
			if theme.StatusColors[status] == "" {
				t.Fatalf("theme %q has no color for status %q", name, status)
			}
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello world", 5, "hell…"},
		{"hello", 1, "h"},
		{"hello", 0, ""},
		{"Sessão", 4, "Ses…"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
