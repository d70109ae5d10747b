// ABOUTME: Defines the Frame slot and the Cel contract for externally owned layers
// ABOUTME: Frames record which cel is painted at a slot, never the cel's lifetime

// Package frames implements the x-sheet frame timeline: an ordered, cursor-addressable
// list of frames, each optionally bound to a cel, plus the onion-skin (lightbox)
// opacity model computed from the cursor position.
package frames

// Cel is a drawable layer owned by the document. The timeline only compares cels
// by identity, so implementations should be pointer types.
type Cel interface {
	Name() string
	SetName(name string)
	Opacity() float64
	SetOpacity(opacity float64)
	Visible() bool
	SetVisible(visible bool)
}

// Frame is a single slot in the timeline
type Frame struct {
	IsKey       bool   // Key frames bound the onion-skin zones
	Description string // Free-text label shown in the sheet
	Cel         Cel    // Cel painted at this frame (nil if none)
	SkipVisible bool   // Hide this frame's cel from the lightbox
}

// NewFrame returns an empty, unbound frame
func NewFrame() *Frame {
	return &Frame{}
}

// SetKey marks the frame as a key frame
func (f *Frame) SetKey() {
	f.IsKey = true
}

// UnsetKey clears the key frame mark
func (f *Frame) UnsetKey() {
	f.IsKey = false
}

// ToggleKey flips the key frame mark
func (f *Frame) ToggleKey() {
	f.IsKey = !f.IsKey
}

// ToggleSkipVisible flips whether the frame's cel is skipped by the lightbox
func (f *Frame) ToggleSkipVisible() {
	f.SkipVisible = !f.SkipVisible
}

// BindCel binds a cel to the frame, replacing any previous binding
func (f *Frame) BindCel(cel Cel) {
	f.Cel = cel
}

// UnbindCel removes the frame's cel binding
func (f *Frame) UnbindCel() {
	f.Cel = nil
}

// HasCel reports whether a cel is bound to this frame
func (f *Frame) HasCel() bool {
	return f.Cel != nil
}
