package app

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// openLogger returns a file-backed logger for the background loops.
// The TUI owns the terminal, so diagnostics must never hit stdout or
// stderr. When the log file cannot be opened, logging degrades to a
// discard handler rather than failing startup.
func openLogger() (*slog.Logger, func()) {
	discard := func() (*slog.Logger, func()) {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return discard()
	}
	dir := filepath.Join(home, ".local", "state", "zapdeck")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return discard()
	}

	file, err := os.OpenFile(filepath.Join(dir, "zapdeck.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return discard()
	}

	logger := slog.New(slog.NewTextHandler(file, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	return logger, func() { _ = file.Close() }
}
