// ABOUTME: Commands binding a new layer to the selected frame and unbinding it again
// ABOUTME: The layer stack and the frame binding always change together

package command

import (
	"fmt"

	"xsheet/frames"
)

// AddCel creates a layer on top of the stack, binds it to the selected frame and selects it
type AddCel struct {
	env   Env
	frame *frames.Frame
	layer frames.Cel

	prevActive int
}

// NewAddCel returns a command adding a cel to the selected frame.
// Fails with ErrInvalidCelOperation if the frame already has one.
func NewAddCel(env Env) (*AddCel, error) {
	f, err := selectedFrame(env.Timeline)
	if err != nil {
		return nil, err
	}

	if f.HasCel() {
		return nil, fmt.Errorf("add cel to frame %d: %w", env.Timeline.Cursor(), ErrInvalidCelOperation)
	}

	return &AddCel{
		env:   env,
		frame: f,
		layer: env.Layers.NewLayer(CelName(f.Description)),
	}, nil
}

// Layer returns the layer this command binds
func (c *AddCel) Layer() frames.Cel {
	return c.layer
}

// Redo inserts and binds the layer
func (c *AddCel) Redo() error {
	if c.frame.HasCel() {
		return fmt.Errorf("add cel: frame already bound: %w", ErrInvalidCelOperation)
	}

	prevActive := c.env.Layers.Active()

	if err := c.env.Layers.Insert(0, c.layer); err != nil {
		return fmt.Errorf("add cel: %w", err)
	}

	c.prevActive = prevActive
	c.env.Layers.SetActive(0)
	c.frame.BindCel(c.layer)
	c.env.refresh()

	return nil
}

// Undo unbinds the frame and removes the layer
func (c *AddCel) Undo() error {
	if err := c.env.Layers.Remove(c.layer); err != nil {
		return fmt.Errorf("undo add cel: %w", err)
	}

	c.env.Layers.SetActive(c.prevActive)
	c.frame.UnbindCel()
	c.env.refresh()

	return nil
}

// RemoveCel unbinds the selected frame's cel. The layer leaves the stack
// only when no other frame is bound to it.
type RemoveCel struct {
	env   Env
	frame *frames.Frame
	cel   frames.Cel

	removed    bool
	position   int
	prevActive int
}

// NewRemoveCel returns a command removing the selected frame's cel.
// Fails with ErrInvalidCelOperation if the frame has none.
func NewRemoveCel(env Env) (*RemoveCel, error) {
	f, err := selectedFrame(env.Timeline)
	if err != nil {
		return nil, err
	}

	if !f.HasCel() {
		return nil, fmt.Errorf("remove cel from frame %d: %w", env.Timeline.Cursor(), ErrInvalidCelOperation)
	}

	return &RemoveCel{env: env, frame: f, cel: f.Cel}, nil
}

// Redo unbinds the cel and removes its layer if it is no longer used
func (c *RemoveCel) Redo() error {
	if c.frame.Cel != c.cel {
		return fmt.Errorf("remove cel: frame binding changed: %w", ErrInvalidCelOperation)
	}

	removed := c.env.Timeline.CountCel(c.cel) == 1
	position := c.env.Layers.IndexOf(c.cel)

	if removed && position < 0 {
		return fmt.Errorf("remove cel %q: %w", c.cel.Name(), ErrUnknownLayer)
	}

	c.removed = removed
	c.position = position
	c.prevActive = c.env.Layers.Active()

	if c.removed {
		if err := c.env.Layers.Remove(c.cel); err != nil {
			return fmt.Errorf("remove cel: %w", err)
		}

		c.env.Layers.SetActive(0)
	}

	c.frame.UnbindCel()
	c.env.refresh()

	return nil
}

// Undo rebinds the cel, returning its layer to its old position
func (c *RemoveCel) Undo() error {
	if c.removed {
		if err := c.env.Layers.Insert(c.position, c.cel); err != nil {
			return fmt.Errorf("undo remove cel: %w", err)
		}

		c.env.Layers.SetActive(c.prevActive)
	}

	c.frame.BindCel(c.cel)
	c.env.refresh()

	return nil
}
