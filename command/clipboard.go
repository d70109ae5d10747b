// ABOUTME: Cel clipboard and the cut/copy/paste commands that use it
// ABOUTME: The clipboard holds a source frame; pasting binds its cel to the selected frame

package command

import (
	"fmt"

	"xsheet/frames"
)

// EditMode is what happens to the source frame on paste
type EditMode int

const (
	// Copy leaves the source frame bound
	Copy EditMode = iota
	// Cut unbinds the source frame
	Cut
)

// String returns the mode name
func (m EditMode) String() string {
	if m == Cut {
		return "cut"
	}

	return "copy"
}

// Clipboard holds the frame whose cel will be pasted
type Clipboard struct {
	mode   EditMode
	source *frames.Frame
}

// Empty reports whether nothing has been cut or copied
func (c *Clipboard) Empty() bool {
	return c.source == nil
}

// Mode returns the pending edit mode
func (c *Clipboard) Mode() EditMode {
	return c.mode
}

// Source returns the frame that was cut or copied, or nil
func (c *Clipboard) Source() *frames.Frame {
	return c.source
}

// CanPaste reports whether the clipboard can be pasted onto the selected frame
func (c *Clipboard) CanPaste(tl *frames.Timeline) bool {
	return c.validatePaste(tl) == nil
}

// validatePaste checks every paste precondition against the current timeline
func (c *Clipboard) validatePaste(tl *frames.Timeline) error {
	if c.source == nil {
		return fmt.Errorf("clipboard is empty: %w", ErrInvalidPaste)
	}

	dest := tl.Selected()

	switch {
	case dest == nil:
		return fmt.Errorf("no frame selected: %w", ErrInvalidPaste)
	case dest == c.source:
		return fmt.Errorf("paste onto the source frame: %w", ErrInvalidPaste)
	case dest.HasCel():
		return fmt.Errorf("paste onto a frame that has a cel: %w", ErrInvalidPaste)
	case !c.source.HasCel():
		return fmt.Errorf("source frame has no cel: %w", ErrInvalidPaste)
	case tl.IndexOf(c.source) < 0:
		return fmt.Errorf("source frame was removed: %w", ErrInvalidPaste)
	}

	return nil
}

// CutCopyCel puts the selected frame on the clipboard
type CutCopyCel struct {
	env       Env
	clipboard *Clipboard
	mode      EditMode
	source    *frames.Frame
	prev      Clipboard
}

// NewCutCopyCel returns a command cutting or copying the selected frame's cel.
// Fails with ErrInvalidCelOperation if the frame has no cel of its own.
func NewCutCopyCel(env Env, clipboard *Clipboard, mode EditMode) (*CutCopyCel, error) {
	f, err := selectedFrame(env.Timeline)
	if err != nil {
		return nil, err
	}

	if !f.HasCel() {
		return nil, fmt.Errorf("%s frame %d: %w", mode, env.Timeline.Cursor(), ErrInvalidCelOperation)
	}

	return &CutCopyCel{env: env, clipboard: clipboard, mode: mode, source: f}, nil
}

// Redo fills the clipboard
func (c *CutCopyCel) Redo() error {
	c.prev = *c.clipboard
	c.clipboard.mode = c.mode
	c.clipboard.source = c.source
	c.env.notify()

	return nil
}

// Undo restores the previous clipboard
func (c *CutCopyCel) Undo() error {
	*c.clipboard = c.prev
	c.env.notify()

	return nil
}

// PasteCel binds the clipboard's cel to the selected frame and clears the clipboard
type PasteCel struct {
	env       Env
	clipboard *Clipboard
	dest      *frames.Frame

	prev Clipboard
	cel  frames.Cel
}

// NewPasteCel returns a paste command. Fails with ErrInvalidPaste if the clipboard
// is empty, the selected frame is the source, or the selected frame has a cel.
func NewPasteCel(env Env, clipboard *Clipboard) (*PasteCel, error) {
	if err := clipboard.validatePaste(env.Timeline); err != nil {
		return nil, err
	}

	return &PasteCel{env: env, clipboard: clipboard, dest: env.Timeline.Selected()}, nil
}

// Redo pastes the cel
func (c *PasteCel) Redo() error {
	if c.env.Timeline.Selected() != c.dest {
		return fmt.Errorf("paste: selection changed: %w", ErrInvalidPaste)
	}

	if err := c.clipboard.validatePaste(c.env.Timeline); err != nil {
		return err
	}

	c.prev = *c.clipboard
	c.cel = c.prev.source.Cel

	c.dest.BindCel(c.cel)

	if c.prev.mode == Cut {
		c.prev.source.UnbindCel()
	}

	*c.clipboard = Clipboard{}
	c.env.refresh()

	return nil
}

// Undo unbinds the destination and restores the source and clipboard
func (c *PasteCel) Undo() error {
	c.dest.UnbindCel()

	if c.prev.mode == Cut {
		c.prev.source.BindCel(c.cel)
	}

	*c.clipboard = c.prev
	c.env.refresh()

	return nil
}
