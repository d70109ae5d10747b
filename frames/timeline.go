// ABOUTME: Cursor-addressable ordered list of frames with key frame and cel navigation
// ABOUTME: Owns insertion/removal so the cursor invariant is restored by the same operation

package frames

import "fmt"

// DefaultLength is the number of empty frames in a new sheet (one second at 24fps)
const DefaultLength = 24

// Timeline is the ordered list of frames that makes up an animation.
// The cursor always satisfies 0 <= cursor < Len() while Len() > 0.
type Timeline struct {
	frames   []*Frame
	cursor   int
	lightbox *OpacityModel
}

// New creates a timeline with length empty frames and the default lightbox settings
func New(length int) *Timeline {
	t := &Timeline{
		lightbox: NewOpacityModel(),
	}
	t.AppendFrames(length)

	return t
}

// Len returns the number of frames
func (t *Timeline) Len() int {
	return len(t.frames)
}

// Cursor returns the index of the selected frame
func (t *Timeline) Cursor() int {
	return t.cursor
}

// Get returns the frame at index i
func (t *Timeline) Get(i int) (*Frame, error) {
	if i < 0 || i >= len(t.frames) {
		return nil, fmt.Errorf("get frame %d of %d: %w", i, len(t.frames), ErrOutOfRange)
	}

	return t.frames[i], nil
}

// Selected returns the frame at the cursor, or nil for an empty timeline
func (t *Timeline) Selected() *Frame {
	if len(t.frames) == 0 {
		return nil
	}

	return t.frames[t.cursor]
}

// Select moves the cursor to index i
func (t *Timeline) Select(i int) error {
	if i < 0 || i >= len(t.frames) {
		return fmt.Errorf("select frame %d of %d: %w", i, len(t.frames), ErrOutOfRange)
	}

	t.cursor = i

	return nil
}

// IndexOf returns the index of frame f, or -1 if it is not in the timeline
func (t *Timeline) IndexOf(f *Frame) int {
	for i, fr := range t.frames {
		if fr == f {
			return i
		}
	}

	return -1
}

// ========== Navigation ==========

// HasNext reports whether the cursor can move forward.
// With withCel, only frames bound to a cel different from the current one count.
func (t *Timeline) HasNext(withCel bool) bool {
	_, err := t.NextIndex(withCel)
	return err == nil
}

// HasPrevious reports whether the cursor can move backward.
// With withCel, only frames bound to a cel different from the current one count.
func (t *Timeline) HasPrevious(withCel bool) bool {
	_, err := t.PreviousIndex(withCel)
	return err == nil
}

// NextIndex returns the index GotoNext would move to, without moving
func (t *Timeline) NextIndex(withCel bool) (int, error) {
	if withCel {
		if i := t.nextFrameWithCel(); i >= 0 {
			return i, nil
		}

		return 0, fmt.Errorf("no next frame with a different cel: %w", ErrNoSuchFrame)
	}

	if len(t.frames) == 0 || t.cursor == len(t.frames)-1 {
		return 0, fmt.Errorf("next frame at the last frame: %w", ErrNoSuchFrame)
	}

	return t.cursor + 1, nil
}

// PreviousIndex returns the index GotoPrevious would move to, without moving
func (t *Timeline) PreviousIndex(withCel bool) (int, error) {
	if withCel {
		if i := t.previousFrameWithCel(); i >= 0 {
			return i, nil
		}

		return 0, fmt.Errorf("no previous frame with a different cel: %w", ErrNoSuchFrame)
	}

	if len(t.frames) == 0 || t.cursor == 0 {
		return 0, fmt.Errorf("previous frame at the first frame: %w", ErrNoSuchFrame)
	}

	return t.cursor - 1, nil
}

// GotoNext advances the cursor by one frame, or to the next frame with a different cel
func (t *Timeline) GotoNext(withCel bool) error {
	i, err := t.NextIndex(withCel)
	if err != nil {
		return err
	}

	t.cursor = i

	return nil
}

// GotoPrevious moves the cursor back by one frame, or to the previous frame with a different cel
func (t *Timeline) GotoPrevious(withCel bool) error {
	i, err := t.PreviousIndex(withCel)
	if err != nil {
		return err
	}

	t.cursor = i

	return nil
}

// ========== Key frames ==========

// nextKeyIndex returns the index of the nearest key frame after the cursor, or -1
func (t *Timeline) nextKeyIndex() int {
	for i := t.cursor + 1; i < len(t.frames); i++ {
		if t.frames[i].IsKey {
			return i
		}
	}

	return -1
}

// previousKeyIndex returns the index of the nearest key frame before the cursor, or -1
func (t *Timeline) previousKeyIndex() int {
	for i := t.cursor - 1; i >= 0 && i < len(t.frames); i-- {
		if t.frames[i].IsKey {
			return i
		}
	}

	return -1
}

// NextKey returns the nearest key frame after the cursor, or nil
func (t *Timeline) NextKey() *Frame {
	if i := t.nextKeyIndex(); i >= 0 {
		return t.frames[i]
	}

	return nil
}

// PreviousKey returns the nearest key frame before the cursor, or nil
func (t *Timeline) PreviousKey() *Frame {
	if i := t.previousKeyIndex(); i >= 0 {
		return t.frames[i]
	}

	return nil
}

// HasNextKey reports whether a key frame exists after the cursor
func (t *Timeline) HasNextKey() bool {
	return t.nextKeyIndex() >= 0
}

// HasPreviousKey reports whether a key frame exists before the cursor
func (t *Timeline) HasPreviousKey() bool {
	return t.previousKeyIndex() >= 0
}

// NextKeyIndex returns the index GotoNextKey would move to, without moving
func (t *Timeline) NextKeyIndex() (int, error) {
	i := t.nextKeyIndex()
	if i < 0 {
		return 0, fmt.Errorf("next key frame after %d: %w", t.cursor, ErrNoSuchKeyframe)
	}

	return i, nil
}

// PreviousKeyIndex returns the index GotoPreviousKey would move to, without moving
func (t *Timeline) PreviousKeyIndex() (int, error) {
	i := t.previousKeyIndex()
	if i < 0 {
		return 0, fmt.Errorf("previous key frame before %d: %w", t.cursor, ErrNoSuchKeyframe)
	}

	return i, nil
}

// GotoNextKey moves the cursor to the next key frame
func (t *Timeline) GotoNextKey() error {
	i, err := t.NextKeyIndex()
	if err != nil {
		return err
	}

	t.cursor = i

	return nil
}

// GotoPreviousKey moves the cursor to the previous key frame
func (t *Timeline) GotoPreviousKey() error {
	i, err := t.PreviousKeyIndex()
	if err != nil {
		return err
	}

	t.cursor = i

	return nil
}

// ========== Cels ==========

// CelAt returns the cel shown at frame i: the frame's own cel, or the nearest
// cel bound before it (cels hold forward). Returns nil if none or i is out of range.
func (t *Timeline) CelAt(i int) Cel {
	if i < 0 || i >= len(t.frames) {
		return nil
	}

	for j := i; j >= 0; j-- {
		if t.frames[j].Cel != nil {
			return t.frames[j].Cel
		}
	}

	return nil
}

// CelFor returns the cel shown at frame f, or nil if f is not in the timeline
func (t *Timeline) CelFor(f *Frame) Cel {
	return t.CelAt(t.IndexOf(f))
}

// previousFrameWithCel returns the index of the nearest frame before the cursor
// bound to a cel other than the current one, or -1
func (t *Timeline) previousFrameWithCel() int {
	cur := t.CelAt(t.cursor)
	if cur == nil {
		return -1
	}

	for i := t.cursor - 1; i >= 0; i-- {
		if c := t.frames[i].Cel; c != nil && c != cur {
			return i
		}
	}

	return -1
}

// nextFrameWithCel returns the index of the nearest frame after the cursor
// bound to a cel other than the current one, or -1
func (t *Timeline) nextFrameWithCel() int {
	cur := t.CelAt(t.cursor)
	if cur == nil {
		return -1
	}

	for i := t.cursor + 1; i < len(t.frames); i++ {
		if c := t.frames[i].Cel; c != nil && c != cur {
			return i
		}
	}

	return -1
}

// PreviousCel returns the nearest cel before the cursor that differs from the current cel
func (t *Timeline) PreviousCel() Cel {
	if i := t.previousFrameWithCel(); i >= 0 {
		return t.frames[i].Cel
	}

	return nil
}

// NextCel returns the nearest cel after the cursor that differs from the current cel
func (t *Timeline) NextCel() Cel {
	if i := t.nextFrameWithCel(); i >= 0 {
		return t.frames[i].Cel
	}

	return nil
}

// Cels returns every distinct cel bound to a frame, in order of first appearance
func (t *Timeline) Cels() []Cel {
	seen := make(map[Cel]bool)

	var cels []Cel

	for _, f := range t.frames {
		if f.Cel != nil && !seen[f.Cel] {
			seen[f.Cel] = true
			cels = append(cels, f.Cel)
		}
	}

	return cels
}

// CountCel returns how many frames are bound to cel
func (t *Timeline) CountCel(cel Cel) int {
	if cel == nil {
		return 0
	}

	count := 0

	for _, f := range t.frames {
		if f.Cel == cel {
			count++
		}
	}

	return count
}

// ========== Insertion and removal ==========

// AppendFrames adds n empty frames at the end
func (t *Timeline) AppendFrames(n int) {
	for range n {
		t.frames = append(t.frames, NewFrame())
	}
}

// InsertEmptyFrames inserts n empty frames immediately before the cursor.
// The cursor index is unchanged, so it ends up on the first inserted frame.
func (t *Timeline) InsertEmptyFrames(n int) {
	if n <= 0 {
		return
	}

	empty := make([]*Frame, n)
	for i := range empty {
		empty[i] = NewFrame()
	}

	t.frames = insertAt(t.frames, t.cursor, empty)
}

// InsertFrames re-inserts frames, in order, immediately before the cursor
func (t *Timeline) InsertFrames(frames []*Frame) {
	t.frames = insertAt(t.frames, t.cursor, frames)
}

// InsertFramesAt inserts frames, in order, starting at index i (0 <= i <= Len()).
// The cursor index is left untouched.
func (t *Timeline) InsertFramesAt(i int, frames []*Frame) error {
	if i < 0 || i > len(t.frames) {
		return fmt.Errorf("insert frames at %d of %d: %w", i, len(t.frames), ErrOutOfRange)
	}

	t.frames = insertAt(t.frames, i, frames)

	return nil
}

// removalWindow returns the [start, end) range RemoveFrames(n, atEnd) would detach
func (t *Timeline) removalWindow(n int, atEnd bool) (int, int) {
	if n <= 0 || len(t.frames) == 0 {
		return 0, 0
	}

	n = min(n, len(t.frames))

	start := t.cursor
	if atEnd {
		start = len(t.frames) - n
	}

	return start, min(start+n, len(t.frames))
}

// FramesToRemove returns the frames RemoveFrames(n, atEnd) would detach, without removing them
func (t *Timeline) FramesToRemove(n int, atEnd bool) []*Frame {
	start, end := t.removalWindow(n, atEnd)

	return append([]*Frame(nil), t.frames[start:end]...)
}

// RemoveFrames detaches and returns n frames starting at the cursor, or the last n
// frames if atEnd. n is clamped to the frames available, and the cursor is clamped
// to the new last frame.
func (t *Timeline) RemoveFrames(n int, atEnd bool) ([]*Frame, error) {
	if n <= 0 {
		return nil, nil
	}

	if len(t.frames) == 0 {
		if atEnd {
			return nil, nil
		}

		return nil, fmt.Errorf("remove %d frames from an empty timeline: %w", n, ErrOutOfRange)
	}

	start, end := t.removalWindow(n, atEnd)
	removed := append([]*Frame(nil), t.frames[start:end]...)

	t.frames = append(t.frames[:start], t.frames[end:]...)

	if t.cursor > len(t.frames)-1 {
		t.cursor = max(len(t.frames)-1, 0)
	}

	return removed, nil
}

// insertAt returns list with items spliced in before index i
func insertAt(list []*Frame, i int, items []*Frame) []*Frame {
	if len(items) == 0 {
		return list
	}

	out := make([]*Frame, 0, len(list)+len(items))
	out = append(out, list[:i]...)
	out = append(out, items...)

	return append(out, list[i:]...)
}
