// ABOUTME: Commands inserting, appending and removing runs of frames
// ABOUTME: Removing frames also removes the layers only those frames were bound to

package command

import (
	"fmt"
	"slices"

	"xsheet/frames"
)

// InsertFrames inserts empty frames before the cursor
type InsertFrames struct {
	env Env
	n   int
	at  int
}

// NewInsertFrames returns a command inserting n empty frames before the cursor
func NewInsertFrames(env Env, n int) (*InsertFrames, error) {
	if n < 1 {
		return nil, fmt.Errorf("insert %d frames: %w", n, frames.ErrOutOfRange)
	}

	return &InsertFrames{env: env, n: n}, nil
}

// Redo inserts the frames
func (c *InsertFrames) Redo() error {
	c.at = c.env.Timeline.Cursor()
	c.env.Timeline.InsertEmptyFrames(c.n)
	c.env.refresh()

	return nil
}

// Undo removes the inserted frames
func (c *InsertFrames) Undo() error {
	tl := c.env.Timeline
	if err := tl.Select(c.at); err != nil {
		return fmt.Errorf("undo insert frames: %w", err)
	}

	if _, err := tl.RemoveFrames(c.n, false); err != nil {
		return fmt.Errorf("undo insert frames: %w", err)
	}

	c.env.refresh()

	return nil
}

// AppendFrames adds empty frames at the end of the timeline
type AppendFrames struct {
	env Env
	n   int
}

// NewAppendFrames returns a command appending n empty frames
func NewAppendFrames(env Env, n int) (*AppendFrames, error) {
	if n < 1 {
		return nil, fmt.Errorf("append %d frames: %w", n, frames.ErrOutOfRange)
	}

	return &AppendFrames{env: env, n: n}, nil
}

// Redo appends the frames
func (c *AppendFrames) Redo() error {
	c.env.Timeline.AppendFrames(c.n)
	c.env.refresh()

	return nil
}

// Undo removes the frames from the tail
func (c *AppendFrames) Undo() error {
	if _, err := c.env.Timeline.RemoveFrames(c.n, true); err != nil {
		return fmt.Errorf("undo append frames: %w", err)
	}

	c.env.refresh()

	return nil
}

// removedLayer is a layer taken out of the stack and the index it had
type removedLayer struct {
	cel      frames.Cel
	position int
}

// RemoveFrames deletes frames starting at the cursor
type RemoveFrames struct {
	env Env
	n   int

	at         int
	prevActive int
	removed    []*frames.Frame
	layers     []removedLayer
}

// NewRemoveFrames returns a command removing n frames starting at the cursor
func NewRemoveFrames(env Env, n int) (*RemoveFrames, error) {
	if n < 1 || env.Timeline.Len() == 0 {
		return nil, fmt.Errorf("remove %d of %d frames: %w", n, env.Timeline.Len(), frames.ErrOutOfRange)
	}

	return &RemoveFrames{env: env, n: n}, nil
}

// orphanedLayers returns the cels bound only within victims, with their stack positions
func (c *RemoveFrames) orphanedLayers(victims []*frames.Frame) ([]removedLayer, error) {
	tl := c.env.Timeline
	counts := make(map[frames.Cel]int)

	var order []frames.Cel

	for _, f := range victims {
		if f.Cel == nil {
			continue
		}

		if counts[f.Cel] == 0 {
			order = append(order, f.Cel)
		}

		counts[f.Cel]++
	}

	var layers []removedLayer

	for _, cel := range order {
		if counts[cel] != tl.CountCel(cel) {
			continue
		}

		pos := c.env.Layers.IndexOf(cel)
		if pos < 0 {
			return nil, fmt.Errorf("remove frames: cel %q: %w", cel.Name(), ErrUnknownLayer)
		}

		layers = append(layers, removedLayer{cel: cel, position: pos})
	}

	slices.SortFunc(layers, func(a, b removedLayer) int {
		return a.position - b.position
	})

	return layers, nil
}

// Redo removes the frames and their orphaned layers
func (c *RemoveFrames) Redo() error {
	tl := c.env.Timeline

	layers, err := c.orphanedLayers(tl.FramesToRemove(c.n, false))
	if err != nil {
		return err
	}

	c.at = tl.Cursor()
	c.prevActive = c.env.Layers.Active()

	removed, err := tl.RemoveFrames(c.n, false)
	if err != nil {
		return err
	}

	c.removed = removed
	c.layers = layers

	for _, l := range c.layers {
		if err := c.env.Layers.Remove(l.cel); err != nil {
			return fmt.Errorf("remove frames: %w", err)
		}
	}

	c.env.refresh()

	return nil
}

// Undo puts the frames back at their old index and restores their layers
func (c *RemoveFrames) Undo() error {
	tl := c.env.Timeline

	if err := tl.InsertFramesAt(c.at, c.removed); err != nil {
		return fmt.Errorf("undo remove frames: %w", err)
	}

	if err := tl.Select(c.at); err != nil {
		return fmt.Errorf("undo remove frames: %w", err)
	}

	// Ascending order so each recorded position is valid when it is reinserted
	for _, l := range c.layers {
		if err := c.env.Layers.Insert(l.position, l.cel); err != nil {
			return fmt.Errorf("undo remove frames: %w", err)
		}
	}

	c.env.Layers.SetActive(c.prevActive)
	c.env.refresh()

	return nil
}
