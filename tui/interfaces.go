// ABOUTME: Interfaces defining dependencies for the TUI package
// ABOUTME: Allows clean separation and easy testing with mocks

package tui

import (
	"log/slog"

	"xsheet/config"
	"xsheet/frames"
)

// ConfigProvider provides thread-safe access to the preferences
type ConfigProvider interface {
	Get() config.Config
	Update(cfg config.Config)
}

// canvasSink receives change notifications from the timeline commands.
// The view re-reads cel state on every render, so it only keeps counts for the status bar.
type canvasSink struct {
	logger          *slog.Logger
	documentChanges int
	canvasChanges   int
}

// DocumentChanged records a timeline change
func (s *canvasSink) DocumentChanged() {
	s.documentChanges++
}

// CanvasChanged records a cel redraw
func (s *canvasSink) CanvasChanged(cel frames.Cel, opacity float64, visible bool) {
	s.canvasChanges++
	s.logger.Debug("canvas changed",
		slog.String("cel", cel.Name()),
		slog.Float64("opacity", opacity),
		slog.Bool("visible", visible))
}
