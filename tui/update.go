// ABOUTME: Bubble Tea Update function and key handlers
// ABOUTME: Routes keys to the sheet or lightbox panel, the text prompt and the pencil test player

package tui

import (
	"fmt"
	"log/slog"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"xsheet/command"
	"xsheet/config"
	"xsheet/playback"
)

// Update handles messages and updates the model
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("update panic",
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())))
			panic(r) // Re-panic so Bubble Tea can handle it
		}
	}()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		m.viewport.Width = max(msg.Width-paramPanelWidth-panelPadding, minViewportWidth)
		m.viewport.Height = max(msg.Height-totalUIChrome, minViewportHeight)
		m.input.Width = max(msg.Width-len(m.prompt.String())-2, 10)

		m.updateViewportContent()

		return m, nil

	case configMsg:
		m.applyReload(config.Config(msg))
		return m, waitForConfig(m.deps.Reloads)

	case tickMsg:
		return m.handleTick(msg)

	case tea.KeyMsg:
		if m.prompt != promptNone {
			return m.handlePromptKey(msg)
		}

		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey dispatches a key outside the text prompt
func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m.handleQuitKey()
	case key.Matches(msg, keys.Play):
		return m.handlePlayKey()
	case key.Matches(msg, keys.Stop):
		m.handleStopKey()
		return m, nil
	case key.Matches(msg, keys.Tab):
		m.handleTabKey()
		return m, nil
	case key.Matches(msg, keys.Save):
		m.handleSaveKey()
		return m, nil
	}

	if m.player.State() == playback.Playing {
		m.setStatusMsg("Pause or stop the pencil test to edit")
		return m, nil
	}

	if m.focusedPanel == lightboxPanel {
		m.handleLightboxKey(msg)
		return m, nil
	}

	return m.handleSheetKey(msg)
}

// handleSheetKey handles navigation and editing in the frame list
func (m model) handleSheetKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		m.navigate("previous frame", m.anim.PreviousFrame(false))
	case key.Matches(msg, keys.Down):
		m.navigate("next frame", m.anim.NextFrame(false))
	case key.Matches(msg, keys.PrevKey):
		m.navigate("previous key", m.anim.PreviousKeyframe())
	case key.Matches(msg, keys.NextKey):
		m.navigate("next key", m.anim.NextKeyframe())
	case key.Matches(msg, keys.PrevCel):
		m.navigate("previous cel", m.anim.PreviousFrame(true))
	case key.Matches(msg, keys.NextCel):
		m.navigate("next cel", m.anim.NextFrame(true))
	case key.Matches(msg, keys.PageUp):
		m.jumpTo(m.anim.Cursor() - m.viewport.Height)
	case key.Matches(msg, keys.PageDown):
		m.jumpTo(m.anim.Cursor() + m.viewport.Height)
	case key.Matches(msg, keys.Home):
		m.jumpTo(0)
	case key.Matches(msg, keys.End):
		m.jumpTo(m.anim.Len() - 1)

	case key.Matches(msg, keys.ToggleKey):
		m.edit("key frame", m.anim.ToggleKey())
	case key.Matches(msg, keys.ToggleSkip):
		m.edit("skip", m.anim.ToggleSkipVisible())
	case key.Matches(msg, keys.AddCel):
		m.edit("add cel", m.anim.AddCel())
	case key.Matches(msg, keys.RemoveCel):
		m.edit("remove cel", m.anim.RemoveCel())
	case key.Matches(msg, keys.Cut):
		m.handleClipboardKey(command.Cut)
	case key.Matches(msg, keys.Copy):
		m.handleClipboardKey(command.Copy)
	case key.Matches(msg, keys.Paste):
		m.edit("paste", m.anim.Paste())
	case key.Matches(msg, keys.Undo):
		m.handleHistoryKey("undo", m.anim.Undo)
	case key.Matches(msg, keys.Redo):
		m.handleHistoryKey("redo", m.anim.Redo)

	case key.Matches(msg, keys.Describe):
		description := ""
		if f := m.anim.Timeline().Selected(); f != nil {
			description = f.Description
		}

		return m.openPrompt(promptDescription, description)
	case key.Matches(msg, keys.Insert):
		return m.openPrompt(promptInsert, "1")
	case key.Matches(msg, keys.Append):
		return m.openPrompt(promptAppend, "1")
	case key.Matches(msg, keys.Delete):
		return m.openPrompt(promptRemove, "1")
	}

	return m, nil
}

// jumpTo selects frame i, clamped to the timeline
func (m *model) jumpTo(i int) {
	if m.anim.Len() == 0 {
		return
	}

	i = min(max(i, 0), m.anim.Len()-1)
	if i == m.anim.Cursor() {
		return
	}

	m.navigate("select frame", m.anim.SelectFrame(i))
}

// handleClipboardKey cuts or copies the selected frame's cel
func (m *model) handleClipboardKey(mode command.EditMode) {
	var err error
	if mode == command.Cut {
		err = m.anim.Cut()
	} else {
		err = m.anim.Copy()
	}

	if m.report(mode.String(), err) {
		return
	}

	m.setStatusMsg(fmt.Sprintf("Cel ready to paste (%s)", mode))
	m.updateViewportContent()
}

// handleHistoryKey runs undo or redo
func (m *model) handleHistoryKey(action string, run func() error) {
	if m.report(action, run()) {
		return
	}

	m.syncLightboxFlags()
	m.modified = true
	m.updateViewportContent()
}

// handleLightboxKey adjusts the lightbox parameters
func (m *model) handleLightboxKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, keys.Up):
		m.paramMgr.SelectPrevious()
	case key.Matches(msg, keys.Down):
		m.paramMgr.SelectNext()
	case key.Matches(msg, keys.Left):
		if m.paramMgr.Decrease() {
			m.paramChanged()
		}
	case key.Matches(msg, keys.Right):
		if m.paramMgr.Increase() {
			m.paramChanged()
		}
	case key.Matches(msg, keys.Toggle):
		m.toggleCategory()
	case key.Matches(msg, keys.Reset):
		m.paramMgr.ResetToDefaults(config.DefaultConfig())
		m.modified = true
		m.applyLocalConfig()
		m.setStatusMsg("Lightbox reset to defaults")
	case key.Matches(msg, keys.Undo):
		m.handleHistoryKey("undo", m.anim.Undo)
	case key.Matches(msg, keys.Redo):
		m.handleHistoryKey("redo", m.anim.Redo)
	}
}

// paramChanged applies an adjusted parameter
func (m *model) paramChanged() {
	if p := m.paramMgr.GetSelected(); p != nil && p.IsInt {
		// Framerate belongs to the sheet, not the preferences
		m.modified = true
		return
	}

	m.applyLocalConfig()
}

// toggleCategory switches the selected lightbox category as an undoable edit
func (m *model) toggleCategory() {
	category, enabled, ok := m.paramMgr.Toggle()
	if !ok {
		return
	}

	if m.report("toggle "+category.String(), m.anim.ToggleOpacity(category, enabled)) {
		m.localConfig.Lightbox.SetEnabled(category, !enabled)
		return
	}

	m.deps.Config.Update(*m.localConfig)
	m.configDirty = true
	m.updateViewportContent()
}

// handleTabKey switches focus between the panels
func (m *model) handleTabKey() {
	if m.focusedPanel == sheetPanel {
		m.focusedPanel = lightboxPanel
	} else {
		m.focusedPanel = sheetPanel
	}
}

// handleSaveKey writes the sheet
func (m *model) handleSaveKey() {
	if m.dryRun {
		m.setStatusMsg("Dry run: sheet not saved")
		return
	}

	if err := m.save(); err != nil {
		m.logger.Error("save failed", slog.String("error", err.Error()))
		m.setStatusMsg(fmt.Sprintf("Save failed: %v", err))

		return
	}

	m.setStatusMsg("Saved " + m.sheetPath)
}

// handlePlayKey starts, resumes or pauses the pencil test
func (m model) handlePlayKey() (tea.Model, tea.Cmd) {
	wasPlaying := m.player.State() == playback.Playing

	if m.report("play", m.player.Toggle()) {
		return m, nil
	}

	m.updateViewportContent()

	if wasPlaying || m.player.State() != playback.Playing {
		return m, nil
	}

	m.tickID++

	return m, m.scheduleTick()
}

// handleStopKey stops the pencil test and returns to the frame it started from
func (m *model) handleStopKey() {
	if m.player.State() == playback.Stopped {
		return
	}

	m.tickID++
	m.report("stop", m.player.Stop())
	m.updateViewportContent()
}

// handleTick advances the pencil test by one frame
func (m model) handleTick(msg tickMsg) (tea.Model, tea.Cmd) {
	if msg.id != m.tickID || m.player.State() != playback.Playing {
		return m, nil
	}

	if m.report("play", m.player.Tick()) {
		return m, nil
	}

	m.updateViewportContent()

	return m, m.scheduleTick()
}

// handleQuitKey saves pending work and exits
func (m model) handleQuitKey() (tea.Model, tea.Cmd) {
	if m.player.State() != playback.Stopped {
		m.report("stop", m.player.Stop())
	}

	if m.modified && !m.dryRun {
		if err := m.save(); err != nil {
			m.logger.Error("save on exit failed", slog.String("error", err.Error()))
		}
	}

	if err := m.saveConfig(); err != nil {
		m.logger.Error("failed to save preferences", slog.String("error", err.Error()))
	}

	m.quitting = true

	return m, tea.Quit
}

// ========== Prompt ==========

// openPrompt focuses the text input for kind, pre-filled with value
func (m model) openPrompt(kind promptKind, value string) (tea.Model, tea.Cmd) {
	m.prompt = kind
	m.input.Prompt = kind.String()
	m.input.SetValue(value)
	m.input.CursorEnd()

	return m, m.input.Focus()
}

// closePrompt hides the text input
func (m *model) closePrompt() {
	m.prompt = promptNone
	m.input.Blur()
	m.input.Reset()
}

// handlePromptKey edits the text input until it is confirmed or cancelled
func (m model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Confirm):
		m.submitPrompt()
		return m, nil
	case key.Matches(msg, keys.CancelInput):
		m.closePrompt()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

// submitPrompt applies the entered text
func (m *model) submitPrompt() {
	kind := m.prompt
	value := m.input.Value()
	m.closePrompt()

	if kind == promptDescription {
		m.edit("describe", m.anim.ChangeDescription(value))
		return
	}

	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 1 {
		m.setStatusMsg(fmt.Sprintf("%q is not a frame count", value))
		return
	}

	switch kind {
	case promptInsert:
		m.edit("insert frames", m.anim.InsertFrames(n))
	case promptAppend:
		m.edit("append frames", m.anim.AppendFrames(n))
	case promptRemove:
		m.edit("remove frames", m.anim.RemoveFrames(n))
	}
}

// applyReload adopts preferences changed on disk
func (m *model) applyReload(cfg config.Config) {
	*m.localConfig = cfg

	m.anim.SetPlayLightbox(cfg.Sheet.PlayLightbox)
	m.player.SetFromFirst(cfg.Sheet.PlayFromFirstFrame)
	m.anim.ApplyLightbox(cfg.Lightbox)
	m.configDirty = false

	m.logger.Info("preferences reloaded")
	m.setStatusMsg("Preferences reloaded")
	m.updateViewportContent()
}
