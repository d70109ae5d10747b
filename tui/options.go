// ABOUTME: TUI mode configuration and command-line options
// ABOUTME: Defines input parameters and injected dependencies for running the editor

package tui

import (
	"log/slog"

	"xsheet/config"
	"xsheet/sheet"
)

// Options contains configuration for running the TUI
type Options struct {
	SheetPath string // Sheet file to edit (created on save if missing)
	DryRun    bool   // If true, don't save changes to disk
}

// Dependencies holds all external dependencies for the TUI
// This allows for clean dependency injection and easy testing
type Dependencies struct {
	Config     ConfigProvider
	ConfigPath string
	Reloads    <-chan config.Config // Config file changes picked up by the watcher
	SaveSheet  func(path string, f *sheet.File) error
	Logger     *slog.Logger
}
