// ABOUTME: Shared fixtures for command tests
// ABOUTME: Real document layer stack plus a sink that records notifications

package command

import (
	"testing"

	"xsheet/document"
	"xsheet/frames"
)

type canvasEvent struct {
	cel     frames.Cel
	opacity float64
	visible bool
}

// recordingSink counts document changes and keeps canvas events in order
type recordingSink struct {
	documentChanges int
	canvas          []canvasEvent
}

func (s *recordingSink) DocumentChanged() {
	s.documentChanges++
}

func (s *recordingSink) CanvasChanged(cel frames.Cel, opacity float64, visible bool) {
	s.canvas = append(s.canvas, canvasEvent{cel: cel, opacity: opacity, visible: visible})
}

func (s *recordingSink) reset() {
	s.documentChanges = 0
	s.canvas = nil
}

func newEnv(length int) (Env, *document.Document, *recordingSink) {
	doc := document.New()
	sink := &recordingSink{}

	return Env{Timeline: frames.New(length), Layers: doc, Sink: sink}, doc, sink
}

// bindLayer puts a new layer on top of the stack and binds it to frame i
func bindLayer(t *testing.T, env Env, i int, name string) frames.Cel {
	t.Helper()

	f, err := env.Timeline.Get(i)
	if err != nil {
		t.Fatalf("Get(%d) failed: %v", i, err)
	}

	layer := env.Layers.NewLayer(name)
	if err := env.Layers.Insert(0, layer); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	f.BindCel(layer)

	return layer
}

func selectFrame(t *testing.T, env Env, i int) {
	t.Helper()

	if err := env.Timeline.Select(i); err != nil {
		t.Fatalf("Select(%d) failed: %v", i, err)
	}
}

func mustDo(t *testing.T, s *Stack, cmd Command, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("constructing command failed: %v", err)
	}

	if err := s.Do(cmd); err != nil {
		t.Fatalf("Do failed: %v", err)
	}
}

func mustUndo(t *testing.T, s *Stack) {
	t.Helper()

	if err := s.Undo(); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
}

func mustRedo(t *testing.T, s *Stack) {
	t.Helper()

	if err := s.Redo(); err != nil {
		t.Fatalf("Redo failed: %v", err)
	}
}

func frameCel(t *testing.T, env Env, i int) frames.Cel {
	t.Helper()

	f, err := env.Timeline.Get(i)
	if err != nil {
		t.Fatalf("Get(%d) failed: %v", i, err)
	}

	return f.Cel
}
