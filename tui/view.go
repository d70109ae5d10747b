// ABOUTME: Bubble Tea View function composing the lightbox panel and the sheet
// ABOUTME: Lays the panels out side by side above the prompt, status bar and help line

package tui

import (
	"log/slog"
	"runtime/debug"

	"github.com/charmbracelet/lipgloss"
)

// View renders the TUI
func (m model) View() string {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("view panic",
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())))
			panic(r) // Re-panic so Bubble Tea can handle it
		}
	}()

	if m.quitting {
		return "Saving and exiting...\n"
	}

	panelHeight := max(m.height-(statusBarHeight+helpHeight+2), minViewportHeight)

	leftPanel := lipgloss.NewStyle().
		Width(paramPanelWidth).
		Height(panelHeight).
		Padding(0, 1).
		Render(m.renderLightbox())

	rightPanel := lipgloss.NewStyle().
		Width(max(m.width-paramPanelWidth-panelPadding, minViewportWidth)).
		Height(panelHeight).
		Padding(0, 1).
		Render(m.renderSheet())

	combined := lipgloss.JoinHorizontal(lipgloss.Top, leftPanel, rightPanel)

	bottom := m.renderHelp()
	if m.prompt != promptNone {
		bottom = m.input.View()
	}

	return combined + "\n" + m.renderStatus() + "\n" + bottom
}
