// ABOUTME: Cursor movement commands: select a frame and the navigation shortcuts built on it
// ABOUTME: Selecting a frame with a cel also selects that cel's layer in the document

package command

import (
	"fmt"

	"xsheet/frames"
)

// SelectFrame moves the cursor to a frame and makes its effective cel the active layer
type SelectFrame struct {
	env    Env
	target int

	prevCursor int
	prevActive int
	layerMoved bool
}

// NewSelectFrame returns a command selecting frame target
func NewSelectFrame(env Env, target int) (*SelectFrame, error) {
	if _, err := env.Timeline.Get(target); err != nil {
		return nil, err
	}

	return &SelectFrame{env: env, target: target}, nil
}

// Redo selects the target frame
func (c *SelectFrame) Redo() error {
	tl := c.env.Timeline
	if _, err := tl.Get(c.target); err != nil {
		return err
	}

	layer := -1
	if cel := tl.CelAt(c.target); cel != nil {
		layer = c.env.Layers.IndexOf(cel)
	}

	c.prevCursor = tl.Cursor()
	c.prevActive = c.env.Layers.Active()
	c.layerMoved = layer >= 0

	if c.layerMoved {
		c.env.Layers.SetActive(layer)
	}

	_ = tl.Select(c.target)
	c.env.refresh()

	return nil
}

// Undo restores the previous cursor and layer selection
func (c *SelectFrame) Undo() error {
	if err := c.env.Timeline.Select(c.prevCursor); err != nil {
		return fmt.Errorf("undo select frame %d: %w", c.target, err)
	}

	if c.layerMoved {
		c.env.Layers.SetActive(c.prevActive)
	}

	c.env.refresh()

	return nil
}

// NewGoToNext selects the next frame, or with withCel the next frame bound to a different cel
func NewGoToNext(env Env, withCel bool) (*SelectFrame, error) {
	i, err := env.Timeline.NextIndex(withCel)
	if err != nil {
		return nil, err
	}

	return NewSelectFrame(env, i)
}

// NewGoToPrevious selects the previous frame, or with withCel the previous frame bound to a different cel
func NewGoToPrevious(env Env, withCel bool) (*SelectFrame, error) {
	i, err := env.Timeline.PreviousIndex(withCel)
	if err != nil {
		return nil, err
	}

	return NewSelectFrame(env, i)
}

// NewGoToNextKey selects the next key frame
func NewGoToNextKey(env Env) (*SelectFrame, error) {
	i, err := env.Timeline.NextKeyIndex()
	if err != nil {
		return nil, err
	}

	return NewSelectFrame(env, i)
}

// NewGoToPreviousKey selects the previous key frame
func NewGoToPreviousKey(env Env) (*SelectFrame, error) {
	i, err := env.Timeline.PreviousKeyIndex()
	if err != nil {
		return nil, err
	}

	return NewSelectFrame(env, i)
}

// selectedFrame returns the frame at the cursor or an error for an empty timeline
func selectedFrame(tl *frames.Timeline) (*frames.Frame, error) {
	f := tl.Selected()
	if f == nil {
		return nil, fmt.Errorf("no frame selected: %w", frames.ErrOutOfRange)
	}

	return f, nil
}
