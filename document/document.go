// ABOUTME: In-memory layer stack that owns the cels bound into the timeline
// ABOUTME: Layers are compared by identity; index 0 is the top of the stack

// Package document provides the layer stack an x-sheet's cels live in.
package document

import (
	"errors"
	"fmt"

	"xsheet/frames"
)

var (
	// ErrLayerNotFound is returned when removing a layer that is not in the stack
	ErrLayerNotFound = errors.New("layer not found")

	// ErrLayerIndex is returned for a layer index outside the stack
	ErrLayerIndex = errors.New("layer index out of range")
)

// Layer is a drawable layer. Only its name and lightbox state are modelled here.
type Layer struct {
	name    string
	opacity float64
	visible bool
}

// NewLayer returns a fully opaque, visible layer
func NewLayer(name string) *Layer {
	return &Layer{name: name, opacity: 1, visible: true}
}

// Name returns the display name
func (l *Layer) Name() string { return l.name }

// SetName sets the display name
func (l *Layer) SetName(name string) { l.name = name }

// Opacity returns the layer opacity in [0, 1]
func (l *Layer) Opacity() float64 { return l.opacity }

// SetOpacity sets the layer opacity
func (l *Layer) SetOpacity(opacity float64) { l.opacity = opacity }

// Visible reports whether the layer is drawn
func (l *Layer) Visible() bool { return l.visible }

// SetVisible shows or hides the layer
func (l *Layer) SetVisible(visible bool) { l.visible = visible }

// Document is an ordered layer stack with an active selection
type Document struct {
	layers []frames.Cel
	active int
}

// New returns an empty document
func New() *Document {
	return &Document{}
}

// FromNames returns a document with one layer per name, top first
func FromNames(names []string) *Document {
	d := New()
	for _, name := range names {
		d.layers = append(d.layers, NewLayer(name))
	}

	return d
}

// NewLayer creates a layer that is not yet part of the stack
func (d *Document) NewLayer(name string) frames.Cel {
	return NewLayer(name)
}

// Len returns the number of layers
func (d *Document) Len() int {
	return len(d.layers)
}

// Layers returns a copy of the stack, top first
func (d *Document) Layers() []frames.Cel {
	return append([]frames.Cel(nil), d.layers...)
}

// Names returns the layer names, top first
func (d *Document) Names() []string {
	names := make([]string, len(d.layers))
	for i, l := range d.layers {
		names[i] = l.Name()
	}

	return names
}

// At returns the layer at index i
func (d *Document) At(i int) (frames.Cel, error) {
	if i < 0 || i >= len(d.layers) {
		return nil, fmt.Errorf("layer %d of %d: %w", i, len(d.layers), ErrLayerIndex)
	}

	return d.layers[i], nil
}

// IndexOf returns the index of layer, or -1
func (d *Document) IndexOf(layer frames.Cel) int {
	for i, l := range d.layers {
		if l == layer {
			return i
		}
	}

	return -1
}

// Insert puts layer at position pos (0 <= pos <= Len())
func (d *Document) Insert(pos int, layer frames.Cel) error {
	if pos < 0 || pos > len(d.layers) {
		return fmt.Errorf("insert layer at %d of %d: %w", pos, len(d.layers), ErrLayerIndex)
	}

	d.layers = append(d.layers, nil)
	copy(d.layers[pos+1:], d.layers[pos:])
	d.layers[pos] = layer

	return nil
}

// Remove takes layer out of the stack. The active index is clamped to the new stack.
func (d *Document) Remove(layer frames.Cel) error {
	if layer == nil {
		return fmt.Errorf("remove nil layer: %w", ErrLayerNotFound)
	}

	i := d.IndexOf(layer)
	if i < 0 {
		return fmt.Errorf("remove layer %q: %w", layer.Name(), ErrLayerNotFound)
	}

	d.layers = append(d.layers[:i], d.layers[i+1:]...)
	d.SetActive(d.active)

	return nil
}

// Active returns the index of the selected layer
func (d *Document) Active() int {
	return d.active
}

// ActiveLayer returns the selected layer, or nil for an empty stack
func (d *Document) ActiveLayer() frames.Cel {
	if len(d.layers) == 0 {
		return nil
	}

	return d.layers[d.active]
}

// SetActive selects layer i, clamped to the stack (0 when empty)
func (d *Document) SetActive(i int) {
	d.active = min(max(i, 0), max(len(d.layers)-1, 0))
}
