// ABOUTME: Tests for the config file watcher
// ABOUTME: Rewrites the file until a reload arrives or the deadline passes

package config

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := SaveConfig(path, DefaultConfig()); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	changes := make(chan Config, 8)
	done := make(chan error, 1)

	go func() {
		done <- Watch(ctx, path, logger, func(cfg Config) { changes <- cfg })
	}()

	data := []byte("[xsheet]\nframerate = 6\n")
	deadline := time.After(5 * time.Second)
	rewrite := time.NewTicker(400 * time.Millisecond)
	defer rewrite.Stop()

	// The watcher may not be registered yet, so keep rewriting
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	for {
		select {
		case cfg := <-changes:
			if cfg.Sheet.Framerate != 6 {
				t.Errorf("Framerate: got %d, want 6", cfg.Sheet.Framerate)
			}

			cancel()

			if err := <-done; err != nil {
				t.Errorf("Watch returned %v", err)
			}

			return
		case <-rewrite.C:
			if err := os.WriteFile(path, data, 0644); err != nil {
				t.Fatal(err)
			}
		case <-deadline:
			t.Fatal("no reload within 5s")
		}
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	err := Watch(context.Background(), "/nonexistent/dir/config.toml", logger, func(Config) {})
	if err == nil {
		t.Error("Expected an error for a missing directory")
	}
}
