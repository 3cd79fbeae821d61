package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/cardrive/internal/core"
	"github.com/vovakirdan/cardrive/internal/platform/tui"
	"github.com/vovakirdan/cardrive/internal/spectate"
)

// runtimeConfig builds the runtime config from the terminal size and global flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// expandHome replaces a leading ~ with the home directory.
func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// fileLogger opens a logger that appends to path. The TUI owns the terminal,
// so interactive commands never log to stdout or stderr. An empty path
// discards logs.
func fileLogger(path string, level log.Level) (*log.Logger, func(), error) {
	if path == "" {
		logger := log.New(io.Discard)
		return logger, func() {}, nil
	}

	path, err := expandHome(path)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "cardrive",
		Level:           level,
		Formatter:       log.LogfmtFormatter,
	})
	return logger, func() { f.Close() }, nil
}

// startSpectators serves the spectator feed on addr until ctx is done.
// It returns nil when addr is empty.
func startSpectators(ctx context.Context, addr string, logger *log.Logger) tui.Publisher {
	if addr == "" {
		return nil
	}

	cfg := spectate.DefaultConfig()
	cfg.Addr = addr
	hub := spectate.NewHub(cfg, logger.WithPrefix("spectate"))

	go func() {
		if err := hub.ListenAndServe(ctx); err != nil {
			logger.Error("spectator feed stopped", "err", err)
		}
	}()
	return hub
}
