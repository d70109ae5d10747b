// ABOUTME: Commands that edit a single frame's own fields
// ABOUTME: Each captures the frame at construction so undo targets the same frame after cursor moves

package command

import "xsheet/frames"

// CelName returns the layer name used for a cel bound to a frame with this description
func CelName(description string) string {
	return "CEL " + description
}

// ToggleKey flips the key frame mark of the selected frame
type ToggleKey struct {
	env   Env
	frame *frames.Frame
	prev  bool
}

// NewToggleKey returns a command toggling the selected frame's key mark
func NewToggleKey(env Env) (*ToggleKey, error) {
	f, err := selectedFrame(env.Timeline)
	if err != nil {
		return nil, err
	}

	return &ToggleKey{env: env, frame: f}, nil
}

// Redo toggles the key mark
func (c *ToggleKey) Redo() error {
	c.prev = c.frame.IsKey
	c.frame.ToggleKey()
	c.env.refresh()

	return nil
}

// Undo restores the previous key mark
func (c *ToggleKey) Undo() error {
	c.frame.IsKey = c.prev
	c.env.refresh()

	return nil
}

// ToggleSkipVisible hides or shows the selected frame's cel in the lightbox
type ToggleSkipVisible struct {
	env   Env
	frame *frames.Frame
	prev  bool
}

// NewToggleSkipVisible returns a command toggling the selected frame's skip flag
func NewToggleSkipVisible(env Env) (*ToggleSkipVisible, error) {
	f, err := selectedFrame(env.Timeline)
	if err != nil {
		return nil, err
	}

	return &ToggleSkipVisible{env: env, frame: f}, nil
}

// Redo toggles the skip flag
func (c *ToggleSkipVisible) Redo() error {
	c.prev = c.frame.SkipVisible
	c.frame.ToggleSkipVisible()
	c.env.refresh()

	return nil
}

// Undo restores the previous skip flag
func (c *ToggleSkipVisible) Undo() error {
	c.frame.SkipVisible = c.prev
	c.env.refresh()

	return nil
}

// ChangeDescription sets the selected frame's description and renames its cel to match
type ChangeDescription struct {
	env         Env
	frame       *frames.Frame
	description string

	prevDescription string
	cel             frames.Cel
	prevName        string
}

// NewChangeDescription returns a command describing the selected frame
func NewChangeDescription(env Env, description string) (*ChangeDescription, error) {
	f, err := selectedFrame(env.Timeline)
	if err != nil {
		return nil, err
	}

	return &ChangeDescription{env: env, frame: f, description: description}, nil
}

// Redo applies the new description
func (c *ChangeDescription) Redo() error {
	c.prevDescription = c.frame.Description
	c.cel = c.frame.Cel

	c.frame.Description = c.description

	if c.cel != nil {
		c.prevName = c.cel.Name()
		c.cel.SetName(CelName(c.description))
	}

	c.env.notify()

	return nil
}

// Undo restores the description and the cel name
func (c *ChangeDescription) Undo() error {
	c.frame.Description = c.prevDescription

	if c.cel != nil {
		c.cel.SetName(c.prevName)
	}

	c.env.notify()

	return nil
}
