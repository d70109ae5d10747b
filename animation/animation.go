// ABOUTME: Editing facade tying the timeline, layer stack, undo history and observers together
// ABOUTME: Every undoable edit goes through the command stack; playback stepping never does

// Package animation is the entry point editors use to change an x-sheet.
package animation

import (
	"xsheet/command"
	"xsheet/config"
	"xsheet/frames"
)

// Animation is an open x-sheet being edited
type Animation struct {
	timeline  *frames.Timeline
	layers    command.LayerStack
	sink      command.ObserverSink
	stack     *command.Stack
	clipboard command.Clipboard

	playLightbox bool
	playing      bool
}

// New wraps a timeline and its layer stack. historySize bounds the undo history.
func New(tl *frames.Timeline, layers command.LayerStack, sink command.ObserverSink, historySize int) *Animation {
	return &Animation{
		timeline: tl,
		layers:   layers,
		sink:     sink,
		stack:    command.NewStack(historySize),
	}
}

// Timeline returns the frames being edited
func (a *Animation) Timeline() *frames.Timeline { return a.timeline }

// Layers returns the document layer stack
func (a *Animation) Layers() command.LayerStack { return a.layers }

// Stack returns the undo history
func (a *Animation) Stack() *command.Stack { return a.stack }

// Clipboard returns the cel clipboard
func (a *Animation) Clipboard() *command.Clipboard { return &a.clipboard }

// Env returns the collaborators commands run against
func (a *Animation) Env() command.Env {
	return command.Env{Timeline: a.timeline, Layers: a.layers, Sink: a.sink}
}

// do runs a freshly constructed command through the stack
func (a *Animation) do(cmd command.Command, err error) error {
	if err != nil {
		return err
	}

	return a.stack.Do(cmd)
}

// ========== Undoable edits ==========

// SelectFrame moves the cursor to frame i
func (a *Animation) SelectFrame(i int) error {
	return a.do(command.NewSelectFrame(a.Env(), i))
}

// NextFrame moves to the next frame, or the next different cel with withCel
func (a *Animation) NextFrame(withCel bool) error {
	return a.do(command.NewGoToNext(a.Env(), withCel))
}

// PreviousFrame moves to the previous frame, or the previous different cel with withCel
func (a *Animation) PreviousFrame(withCel bool) error {
	return a.do(command.NewGoToPrevious(a.Env(), withCel))
}

// NextKeyframe moves to the next key frame
func (a *Animation) NextKeyframe() error {
	return a.do(command.NewGoToNextKey(a.Env()))
}

// PreviousKeyframe moves to the previous key frame
func (a *Animation) PreviousKeyframe() error {
	return a.do(command.NewGoToPreviousKey(a.Env()))
}

// ToggleKey toggles the selected frame's key mark
func (a *Animation) ToggleKey() error {
	return a.do(command.NewToggleKey(a.Env()))
}

// ToggleSkipVisible hides or shows the selected frame in the lightbox
func (a *Animation) ToggleSkipVisible() error {
	return a.do(command.NewToggleSkipVisible(a.Env()))
}

// ChangeDescription sets the selected frame's description
func (a *Animation) ChangeDescription(description string) error {
	return a.do(command.NewChangeDescription(a.Env(), description))
}

// AddCel creates a cel on the selected frame
func (a *Animation) AddCel() error {
	return a.do(command.NewAddCel(a.Env()))
}

// RemoveCel removes the selected frame's cel
func (a *Animation) RemoveCel() error {
	return a.do(command.NewRemoveCel(a.Env()))
}

// InsertFrames inserts n empty frames before the cursor
func (a *Animation) InsertFrames(n int) error {
	return a.do(command.NewInsertFrames(a.Env(), n))
}

// AppendFrames adds n empty frames at the end
func (a *Animation) AppendFrames(n int) error {
	return a.do(command.NewAppendFrames(a.Env(), n))
}

// RemoveFrames removes n frames starting at the cursor
func (a *Animation) RemoveFrames(n int) error {
	return a.do(command.NewRemoveFrames(a.Env(), n))
}

// ToggleOpacity enables or disables a lightbox category
func (a *Animation) ToggleOpacity(category frames.Category, enabled bool) error {
	return a.do(command.NewToggleOpacityCategory(a.Env(), category, enabled), nil)
}

// Cut puts the selected frame's cel on the clipboard to be moved
func (a *Animation) Cut() error {
	return a.do(command.NewCutCopyCel(a.Env(), &a.clipboard, command.Cut))
}

// Copy puts the selected frame's cel on the clipboard to be shared
func (a *Animation) Copy() error {
	return a.do(command.NewCutCopyCel(a.Env(), &a.clipboard, command.Copy))
}

// Paste binds the clipboard's cel to the selected frame
func (a *Animation) Paste() error {
	return a.do(command.NewPasteCel(a.Env(), &a.clipboard))
}

// CanPaste reports whether Paste would succeed
func (a *Animation) CanPaste() bool {
	return a.clipboard.CanPaste(a.timeline)
}

// Undo reverts the last edit
func (a *Animation) Undo() error {
	return a.stack.Undo()
}

// Redo re-applies the last undone edit
func (a *Animation) Redo() error {
	return a.stack.Redo()
}

// ========== Non-undoable state ==========

// SelectWithoutUndo moves the cursor without recording history
func (a *Animation) SelectWithoutUndo(i int) error {
	if err := a.timeline.Select(i); err != nil {
		return err
	}

	a.Refresh()

	return nil
}

// ApplyLightbox loads lightbox preferences into the timeline and redraws
func (a *Animation) ApplyLightbox(cfg config.LightboxConfig) {
	a.timeline.ConfigureOpacity(cfg.Opacities())
	a.timeline.ConfigureActiveCategories(cfg.ActiveCategories())
	a.timeline.ConfigureDirections(cfg.Directions())
	a.timeline.SetOpacityScale(cfg.Factor)
	a.Refresh()
}

// SetOpacityFactor changes the global lightbox factor
func (a *Animation) SetOpacityFactor(factor float64) {
	a.timeline.SetOpacityScale(factor)
	a.Refresh()
}

// SetPlayLightbox sets whether onion skins stay visible during playback
func (a *Animation) SetPlayLightbox(on bool) {
	a.playLightbox = on
}

// Playing reports whether a pencil test is running
func (a *Animation) Playing() bool {
	return a.playing
}

// Refresh reapplies the cel opacities for the current view and notifies observers
func (a *Animation) Refresh() {
	env := a.Env()

	if a.playing && !a.playLightbox {
		env.ShowOnly()
	} else {
		env.UpdateOpacities()
	}

	if a.sink != nil {
		a.sink.DocumentChanged()
	}
}

// ========== Playback ==========

// Len returns the number of frames
func (a *Animation) Len() int {
	return a.timeline.Len()
}

// Cursor returns the selected frame index
func (a *Animation) Cursor() int {
	return a.timeline.Cursor()
}

// ShowFrame moves to frame i for playback
func (a *Animation) ShowFrame(i int) error {
	return a.SelectWithoutUndo(i)
}

// BeginPlayback switches to the pencil test view
func (a *Animation) BeginPlayback() {
	a.playing = true
	a.Refresh()
}

// EndPlayback restores the lightbox view
func (a *Animation) EndPlayback() {
	a.playing = false
	a.Refresh()
}
