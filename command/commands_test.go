// ABOUTME: Round-trip tests for the timeline commands
// ABOUTME: Each command is applied through a Stack, undone and redone

package command

import (
	"errors"
	"testing"

	"xsheet/frames"
)

func TestSelectFrame(t *testing.T) {
	env, doc, sink := newEnv(5)
	s := NewStack(50)

	a := bindLayer(t, env, 0, "A")
	b := bindLayer(t, env, 3, "B") // stack is now [B, A]
	selectFrame(t, env, 3)
	doc.SetActive(0)

	cmd, err := NewSelectFrame(env, 1)
	mustDo(t, s, cmd, err)

	if env.Timeline.Cursor() != 1 {
		t.Errorf("Cursor() = %d, want 1", env.Timeline.Cursor())
	}

	if doc.ActiveLayer() != a {
		t.Errorf("active layer = %s, want A (held from frame 0)", doc.ActiveLayer().Name())
	}

	if sink.documentChanges != 1 {
		t.Errorf("documentChanges = %d, want 1", sink.documentChanges)
	}

	mustUndo(t, s)

	if env.Timeline.Cursor() != 3 || doc.ActiveLayer() != b {
		t.Errorf("after undo: cursor %d, active %s; want 3, B", env.Timeline.Cursor(), doc.ActiveLayer().Name())
	}

	mustRedo(t, s)

	if env.Timeline.Cursor() != 1 || doc.ActiveLayer() != a {
		t.Errorf("after redo: cursor %d, active %s; want 1, A", env.Timeline.Cursor(), doc.ActiveLayer().Name())
	}
}

func TestSelectFrameWithoutCel(t *testing.T) {
	env, doc, _ := newEnv(4)
	s := NewStack(50)

	bindLayer(t, env, 2, "A")
	bindLayer(t, env, 3, "B")
	doc.SetActive(1)

	cmd, err := NewSelectFrame(env, 1)
	mustDo(t, s, cmd, err)

	if doc.Active() != 1 {
		t.Errorf("Active() = %d, want 1 (frame 1 shows no cel)", doc.Active())
	}

	if _, err := NewSelectFrame(env, 4); !errors.Is(err, frames.ErrOutOfRange) {
		t.Errorf("NewSelectFrame(4): got %v, want ErrOutOfRange", err)
	}
}

func TestGoToCommands(t *testing.T) {
	env, _, _ := newEnv(8)
	s := NewStack(50)

	if _, err := NewGoToNextKey(env); !errors.Is(err, frames.ErrNoSuchKeyframe) {
		t.Errorf("NewGoToNextKey without keys: got %v, want ErrNoSuchKeyframe", err)
	}

	if _, err := NewGoToPrevious(env, false); !errors.Is(err, frames.ErrNoSuchFrame) {
		t.Errorf("NewGoToPrevious at 0: got %v, want ErrNoSuchFrame", err)
	}

	f5, _ := env.Timeline.Get(5)
	f5.SetKey()

	cmd, err := NewGoToNextKey(env)
	mustDo(t, s, cmd, err)

	if env.Timeline.Cursor() != 5 {
		t.Errorf("after GoToNextKey: cursor %d, want 5", env.Timeline.Cursor())
	}

	cmd, err = NewGoToNext(env, false)
	mustDo(t, s, cmd, err)

	cmd, err = NewGoToPreviousKey(env)
	mustDo(t, s, cmd, err)

	if env.Timeline.Cursor() != 5 {
		t.Errorf("after GoToPreviousKey: cursor %d, want 5", env.Timeline.Cursor())
	}

	bindLayer(t, env, 1, "A")
	bindLayer(t, env, 5, "B")

	cmd, err = NewGoToPrevious(env, true)
	mustDo(t, s, cmd, err)

	if env.Timeline.Cursor() != 1 {
		t.Errorf("after GoToPrevious with cel: cursor %d, want 1", env.Timeline.Cursor())
	}

	mustUndo(t, s)
	mustUndo(t, s)
	mustUndo(t, s)
	mustUndo(t, s)

	if env.Timeline.Cursor() != 0 {
		t.Errorf("after undoing all navigation: cursor %d, want 0", env.Timeline.Cursor())
	}
}

func TestToggleKeyAndSkip(t *testing.T) {
	env, _, _ := newEnv(3)
	s := NewStack(50)
	selectFrame(t, env, 1)

	key, err := NewToggleKey(env)
	mustDo(t, s, key, err)

	skip, err := NewToggleSkipVisible(env)
	mustDo(t, s, skip, err)

	// Undo must target frame 1 even after the cursor moves
	selectFrame(t, env, 2)

	f, _ := env.Timeline.Get(1)
	if !f.IsKey || !f.SkipVisible {
		t.Fatalf("frame 1: key %v, skip %v; want both set", f.IsKey, f.SkipVisible)
	}

	mustUndo(t, s)
	mustUndo(t, s)

	if f.IsKey || f.SkipVisible {
		t.Errorf("after undo: key %v, skip %v; want both cleared", f.IsKey, f.SkipVisible)
	}

	empty, _, _ := newEnv(0)
	if _, err := NewToggleKey(empty); !errors.Is(err, frames.ErrOutOfRange) {
		t.Errorf("NewToggleKey on empty timeline: got %v, want ErrOutOfRange", err)
	}
}

func TestChangeDescription(t *testing.T) {
	env, _, _ := newEnv(3)
	s := NewStack(50)

	cel := bindLayer(t, env, 0, "CEL")

	cmd, err := NewChangeDescription(env, "walk")
	mustDo(t, s, cmd, err)

	f, _ := env.Timeline.Get(0)
	if f.Description != "walk" || cel.Name() != "CEL walk" {
		t.Errorf("description %q, cel name %q; want walk, CEL walk", f.Description, cel.Name())
	}

	mustUndo(t, s)

	if f.Description != "" || cel.Name() != "CEL" {
		t.Errorf("after undo: description %q, cel name %q; want empty, CEL", f.Description, cel.Name())
	}

	selectFrame(t, env, 2)

	cmd, err = NewChangeDescription(env, "hold")
	mustDo(t, s, cmd, err)

	if cel.Name() != "CEL" {
		t.Errorf("describing an unbound frame renamed %q", cel.Name())
	}
}

func TestCelName(t *testing.T) {
	tests := []struct {
		description string
		want        string
	}{
		{"walk", "CEL walk"},
		{"", "CEL "},
		{"run ", "CEL run "},
	}

	for _, tt := range tests {
		if got := CelName(tt.description); got != tt.want {
			t.Errorf("CelName(%q) = %q, want %q", tt.description, got, tt.want)
		}
	}
}

func TestAddCel(t *testing.T) {
	env, doc, sink := newEnv(3)
	s := NewStack(50)

	bg := bindLayer(t, env, 2, "bg")
	doc.SetActive(0)
	selectFrame(t, env, 1)

	f, _ := env.Timeline.Get(1)
	f.Description = "run"

	cmd, err := NewAddCel(env)
	mustDo(t, s, cmd, err)

	layer := cmd.Layer()
	if f.Cel != layer || doc.IndexOf(layer) != 0 || doc.Active() != 0 {
		t.Fatalf("cel bound %v, index %d, active %d; want new layer at 0", f.Cel == layer, doc.IndexOf(layer), doc.Active())
	}

	if layer.Name() != "CEL run" {
		t.Errorf("layer name = %q, want CEL run", layer.Name())
	}

	if sink.documentChanges == 0 {
		t.Error("AddCel did not notify")
	}

	mustUndo(t, s)

	if f.Cel != nil || doc.IndexOf(layer) != -1 || doc.ActiveLayer() != bg {
		t.Errorf("after undo: bound %v, index %d, active %s", f.Cel != nil, doc.IndexOf(layer), doc.ActiveLayer().Name())
	}

	mustRedo(t, s)

	if _, err := NewAddCel(env); !errors.Is(err, ErrInvalidCelOperation) {
		t.Errorf("NewAddCel on bound frame: got %v, want ErrInvalidCelOperation", err)
	}
}

func TestAddCelRedoRejectsBoundFrame(t *testing.T) {
	env, doc, _ := newEnv(2)
	s := NewStack(50)

	cmd, err := NewAddCel(env)
	if err != nil {
		t.Fatal(err)
	}

	// Frame gets bound between construction and execution
	bindLayer(t, env, 0, "other")

	if err := s.Do(cmd); !errors.Is(err, ErrInvalidCelOperation) {
		t.Fatalf("Do: got %v, want ErrInvalidCelOperation", err)
	}

	if doc.Len() != 1 || s.UndoSize() != 0 {
		t.Errorf("failed AddCel had an effect: %d layers, %d undoable", doc.Len(), s.UndoSize())
	}
}

func TestRemoveCel(t *testing.T) {
	env, doc, _ := newEnv(4)
	s := NewStack(50)

	a := bindLayer(t, env, 0, "A")
	bindLayer(t, env, 1, "B") // stack [B, A]
	doc.SetActive(1)

	cmd, err := NewRemoveCel(env)
	mustDo(t, s, cmd, err)

	if frameCel(t, env, 0) != nil || doc.IndexOf(a) != -1 {
		t.Fatalf("cel still bound or layer still in stack")
	}

	mustUndo(t, s)

	if frameCel(t, env, 0) != a || doc.IndexOf(a) != 1 || doc.Active() != 1 {
		t.Errorf("after undo: bound %v, index %d, active %d; want A at 1, active 1",
			frameCel(t, env, 0) == a, doc.IndexOf(a), doc.Active())
	}

	selectFrame(t, env, 2)

	if _, err := NewRemoveCel(env); !errors.Is(err, ErrInvalidCelOperation) {
		t.Errorf("NewRemoveCel on unbound frame: got %v, want ErrInvalidCelOperation", err)
	}
}

func TestRemoveSharedCel(t *testing.T) {
	env, doc, _ := newEnv(4)
	s := NewStack(50)

	a := bindLayer(t, env, 0, "A")
	f3, _ := env.Timeline.Get(3)
	f3.BindCel(a)
	selectFrame(t, env, 3)

	cmd, err := NewRemoveCel(env)
	mustDo(t, s, cmd, err)

	if f3.Cel != nil {
		t.Error("frame 3 still bound")
	}

	if doc.IndexOf(a) != 0 {
		t.Error("shared layer was removed from the stack")
	}

	mustUndo(t, s)

	if f3.Cel != a || doc.Len() != 1 {
		t.Errorf("after undo: bound %v, %d layers", f3.Cel == a, doc.Len())
	}
}

func TestInsertFrames(t *testing.T) {
	env, _, _ := newEnv(5)
	s := NewStack(50)

	before := snapshot(env.Timeline)
	selectFrame(t, env, 2)

	cmd, err := NewInsertFrames(env, 3)
	mustDo(t, s, cmd, err)

	if env.Timeline.Len() != 8 || env.Timeline.Cursor() != 2 {
		t.Fatalf("Len %d, cursor %d; want 8, 2", env.Timeline.Len(), env.Timeline.Cursor())
	}

	f, _ := env.Timeline.Get(5)
	if f != before[2] {
		t.Error("frame previously at the cursor should move to index 5")
	}

	mustUndo(t, s)
	assertFrames(t, env.Timeline, before)

	if env.Timeline.Cursor() != 2 {
		t.Errorf("cursor after undo = %d, want 2", env.Timeline.Cursor())
	}

	if _, err := NewInsertFrames(env, 0); !errors.Is(err, frames.ErrOutOfRange) {
		t.Errorf("NewInsertFrames(0): got %v, want ErrOutOfRange", err)
	}
}

func TestAppendFrames(t *testing.T) {
	env, _, _ := newEnv(2)
	s := NewStack(50)
	before := snapshot(env.Timeline)

	cmd, err := NewAppendFrames(env, 4)
	mustDo(t, s, cmd, err)

	if env.Timeline.Len() != 6 || env.Timeline.Cursor() != 0 {
		t.Errorf("Len %d, cursor %d; want 6, 0", env.Timeline.Len(), env.Timeline.Cursor())
	}

	mustUndo(t, s)
	assertFrames(t, env.Timeline, before)
}

func TestRemoveFrames(t *testing.T) {
	env, doc, _ := newEnv(6)
	s := NewStack(50)

	a := bindLayer(t, env, 0, "A")
	b := bindLayer(t, env, 2, "B")
	c := bindLayer(t, env, 4, "C") // stack [C, B, A]

	f3, _ := env.Timeline.Get(3)
	f3.BindCel(a)

	doc.SetActive(2)
	selectFrame(t, env, 2)
	before := snapshot(env.Timeline)

	cmd, err := NewRemoveFrames(env, 2)
	mustDo(t, s, cmd, err)

	if env.Timeline.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", env.Timeline.Len())
	}

	// B was only used by the removed frames; A is still bound at frame 0
	if doc.IndexOf(b) != -1 || doc.IndexOf(a) == -1 || doc.IndexOf(c) == -1 {
		t.Errorf("layers after remove: %v", doc.Names())
	}

	mustUndo(t, s)
	assertFrames(t, env.Timeline, before)

	if got := doc.Names(); len(got) != 3 || got[0] != "C" || got[1] != "B" || got[2] != "A" {
		t.Errorf("layers after undo = %v, want [C B A]", got)
	}

	if env.Timeline.Cursor() != 2 || doc.Active() != 2 {
		t.Errorf("cursor %d, active %d; want 2, 2", env.Timeline.Cursor(), doc.Active())
	}

	mustRedo(t, s)

	if env.Timeline.Len() != 4 || doc.Len() != 2 {
		t.Errorf("after redo: %d frames, %d layers; want 4, 2", env.Timeline.Len(), doc.Len())
	}
}

func TestRemoveFramesToEnd(t *testing.T) {
	env, doc, _ := newEnv(4)
	s := NewStack(50)

	bindLayer(t, env, 3, "A")
	selectFrame(t, env, 2)
	before := snapshot(env.Timeline)

	cmd, err := NewRemoveFrames(env, 10)
	mustDo(t, s, cmd, err)

	if env.Timeline.Len() != 2 || env.Timeline.Cursor() != 1 || doc.Len() != 0 {
		t.Errorf("Len %d, cursor %d, layers %d; want 2, 1, 0", env.Timeline.Len(), env.Timeline.Cursor(), doc.Len())
	}

	mustUndo(t, s)
	assertFrames(t, env.Timeline, before)

	if doc.Len() != 1 {
		t.Errorf("layers after undo = %d, want 1", doc.Len())
	}

	empty, _, _ := newEnv(0)
	if _, err := NewRemoveFrames(empty, 1); !errors.Is(err, frames.ErrOutOfRange) {
		t.Errorf("NewRemoveFrames on empty timeline: got %v, want ErrOutOfRange", err)
	}
}

func TestToggleOpacityCategory(t *testing.T) {
	env, _, sink := newEnv(3)
	s := NewStack(50)

	a := bindLayer(t, env, 0, "A")
	bindLayer(t, env, 1, "B")
	c := bindLayer(t, env, 2, "C")
	selectFrame(t, env, 1)

	env.UpdateOpacities()
	sink.reset()

	cmd := NewToggleOpacityCategory(env, frames.NextPrev, false)
	mustDo(t, s, cmd, nil)

	if env.Timeline.Lightbox().Setting(frames.NextPrev).Active {
		t.Fatal("NextPrev still active")
	}

	// B stays at 1, so only A and C are reported
	want := []canvasEvent{{cel: a, opacity: 0, visible: false}, {cel: c, opacity: 0, visible: false}}
	if len(sink.canvas) != len(want) {
		t.Fatalf("canvas events = %d, want %d", len(sink.canvas), len(want))
	}

	for i, ev := range want {
		if sink.canvas[i] != ev {
			t.Errorf("event %d = %+v, want %+v", i, sink.canvas[i], ev)
		}
	}

	mustUndo(t, s)

	if !env.Timeline.Lightbox().Setting(frames.NextPrev).Active {
		t.Error("NextPrev not restored")
	}

	if a.Opacity() != 0.5 || !a.Visible() {
		t.Errorf("A after undo: opacity %v, visible %v; want 0.5, true", a.Opacity(), a.Visible())
	}
}

func TestCopyPaste(t *testing.T) {
	env, _, _ := newEnv(4)
	s := NewStack(50)
	var clip Clipboard

	a := bindLayer(t, env, 0, "A")

	cp, err := NewCutCopyCel(env, &clip, Copy)
	mustDo(t, s, cp, err)

	if clip.Empty() || clip.Mode() != Copy {
		t.Fatal("clipboard not filled")
	}

	if clip.CanPaste(env.Timeline) {
		t.Error("pasting onto the source frame should not be allowed")
	}

	selectFrame(t, env, 2)

	paste, err := NewPasteCel(env, &clip)
	mustDo(t, s, paste, err)

	if frameCel(t, env, 2) != a || frameCel(t, env, 0) != a {
		t.Error("copy-paste should leave both frames bound to A")
	}

	if !clip.Empty() {
		t.Error("clipboard not cleared after paste")
	}

	mustUndo(t, s)

	if frameCel(t, env, 2) != nil || clip.Source() == nil {
		t.Error("undo paste should unbind the destination and restore the clipboard")
	}

	mustUndo(t, s)

	if !clip.Empty() {
		t.Error("undo copy should empty the clipboard")
	}
}

func TestCutPaste(t *testing.T) {
	env, _, _ := newEnv(4)
	s := NewStack(50)
	var clip Clipboard

	a := bindLayer(t, env, 1, "A")
	selectFrame(t, env, 1)

	cut, err := NewCutCopyCel(env, &clip, Cut)
	mustDo(t, s, cut, err)

	selectFrame(t, env, 3)

	paste, err := NewPasteCel(env, &clip)
	mustDo(t, s, paste, err)

	if frameCel(t, env, 1) != nil || frameCel(t, env, 3) != a {
		t.Error("cut-paste should move A from frame 1 to frame 3")
	}

	mustUndo(t, s)

	if frameCel(t, env, 1) != a || frameCel(t, env, 3) != nil {
		t.Error("undo cut-paste should restore A on frame 1")
	}

	if clip.Mode() != Cut || clip.Source() == nil {
		t.Error("clipboard not restored")
	}
}

func TestInvalidPaste(t *testing.T) {
	env, _, _ := newEnv(4)
	var clip Clipboard

	if _, err := NewPasteCel(env, &clip); !errors.Is(err, ErrInvalidPaste) {
		t.Errorf("paste with empty clipboard: got %v, want ErrInvalidPaste", err)
	}

	if _, err := NewCutCopyCel(env, &clip, Copy); !errors.Is(err, ErrInvalidCelOperation) {
		t.Errorf("copy of unbound frame: got %v, want ErrInvalidCelOperation", err)
	}

	bindLayer(t, env, 0, "A")
	bindLayer(t, env, 2, "B")

	cp, err := NewCutCopyCel(env, &clip, Copy)
	if err != nil {
		t.Fatal(err)
	}

	if err := cp.Redo(); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		frame int
	}{
		{"same frame", 0},
		{"bound destination", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			selectFrame(t, env, tt.frame)

			if _, err := NewPasteCel(env, &clip); !errors.Is(err, ErrInvalidPaste) {
				t.Errorf("got %v, want ErrInvalidPaste", err)
			}
		})
	}
}

func snapshot(tl *frames.Timeline) []*frames.Frame {
	out := make([]*frames.Frame, tl.Len())
	for i := range out {
		out[i], _ = tl.Get(i)
	}

	return out
}

func assertFrames(t *testing.T, tl *frames.Timeline, want []*frames.Frame) {
	t.Helper()

	if tl.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d", tl.Len(), len(want))
	}

	for i, w := range want {
		if got, _ := tl.Get(i); got != w {
			t.Errorf("frame %d differs from the original", i)
		}
	}
}
