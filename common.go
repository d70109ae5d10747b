// ABOUTME: Shared setup for every command: logging, preferences and sheet arguments
// ABOUTME: Debug logging goes to a file so it never corrupts the TUI

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"xsheet/config"
)

// debugLogFile receives debug logging when --debug is set
const debugLogFile = "xsheet-debug.log"

// NewLogger returns a debug level file logger when enabled, or a logger that discards everything.
// The returned function closes the log file.
func NewLogger(enabled bool, filename string) (*slog.Logger, func(), error) {
	if !enabled {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}

	f, err := os.Create(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create debug log file: %w", err)
	}

	if isTTY(os.Stdout) {
		fmt.Printf("Debug logging enabled: %s\n", filename)
	}

	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))

	return logger, func() { _ = f.Close() }, nil
}

// LoadPreferences resolves the config path (flag, then the default locations) and loads it.
// An invalid file is logged and the defaults are used.
func LoadPreferences(path string, logger *slog.Logger) (string, config.Config) {
	if path == "" {
		path = config.GetConfigPath()
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		logger.Warn("using default preferences",
			slog.String("path", path),
			slog.String("error", err.Error()))
	}

	return path, cfg
}

// sheetArg returns the single sheet path argument of cmd
func sheetArg(cmd *cli.Command) (string, error) {
	if cmd.Args().Len() != 1 {
		return "", errors.New("expected exactly one sheet file argument")
	}

	return cmd.Args().First(), nil
}

// isTTY checks if the given file is a terminal
func isTTY(f *os.File) bool {
	stat, err := f.Stat()
	if err != nil {
		return false
	}

	return (stat.Mode() & os.ModeCharDevice) != 0
}
