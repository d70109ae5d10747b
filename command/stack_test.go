// ABOUTME: Tests for the undo/redo history
// ABOUTME: Verifies ordering, redo truncation, size limits and failed commands

package command

import (
	"errors"
	"testing"
)

// counter is a command that adds delta to a shared value
type counter struct {
	value *int
	delta int
	fail  bool
}

func (c *counter) Redo() error {
	if c.fail {
		return errors.New("boom")
	}

	*c.value += c.delta

	return nil
}

func (c *counter) Undo() error {
	*c.value -= c.delta
	return nil
}

func TestStack_DoUndoRedo(t *testing.T) {
	s := NewStack(50)
	value := 0

	mustDo(t, s, &counter{value: &value, delta: 1}, nil)
	mustDo(t, s, &counter{value: &value, delta: 10}, nil)

	if value != 11 {
		t.Fatalf("value = %d, want 11", value)
	}

	mustUndo(t, s)

	if value != 1 || s.UndoSize() != 1 || s.RedoSize() != 1 {
		t.Errorf("after undo: value %d, undo %d, redo %d; want 1, 1, 1", value, s.UndoSize(), s.RedoSize())
	}

	mustRedo(t, s)

	if value != 11 {
		t.Errorf("after redo: value = %d, want 11", value)
	}

	if err := s.Redo(); !errors.Is(err, ErrNothingToRedo) {
		t.Errorf("Redo at tip: got %v, want ErrNothingToRedo", err)
	}
}

func TestStack_UndoEmpty(t *testing.T) {
	s := NewStack(50)

	if err := s.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("Undo on empty stack: got %v, want ErrNothingToUndo", err)
	}

	if s.CanUndo() || s.CanRedo() {
		t.Error("empty stack should not allow undo or redo")
	}
}

func TestStack_NewCommandTruncatesRedo(t *testing.T) {
	s := NewStack(50)
	value := 0

	mustDo(t, s, &counter{value: &value, delta: 1}, nil)
	mustDo(t, s, &counter{value: &value, delta: 2}, nil)
	mustUndo(t, s)
	mustDo(t, s, &counter{value: &value, delta: 4}, nil)

	if s.RedoSize() != 0 {
		t.Errorf("RedoSize() = %d, want 0 after a new command", s.RedoSize())
	}

	if value != 5 {
		t.Errorf("value = %d, want 5", value)
	}

	mustUndo(t, s)
	mustUndo(t, s)

	if value != 0 {
		t.Errorf("value = %d after undoing everything, want 0", value)
	}
}

func TestStack_MaxSize(t *testing.T) {
	s := NewStack(2)
	value := 0

	for range 3 {
		mustDo(t, s, &counter{value: &value, delta: 1}, nil)
	}

	if s.UndoSize() != 2 {
		t.Fatalf("UndoSize() = %d, want 2", s.UndoSize())
	}

	mustUndo(t, s)
	mustUndo(t, s)

	if err := s.Undo(); !errors.Is(err, ErrNothingToUndo) {
		t.Errorf("third Undo: got %v, want ErrNothingToUndo", err)
	}

	if value != 1 {
		t.Errorf("value = %d, want 1 (oldest command dropped)", value)
	}
}

func TestStack_FailedCommandNotRecorded(t *testing.T) {
	s := NewStack(50)
	value := 0

	if err := s.Do(&counter{value: &value, delta: 1, fail: true}); err == nil {
		t.Fatal("Do should return the command's error")
	}

	if s.UndoSize() != 0 || value != 0 {
		t.Errorf("failed command changed state: undo %d, value %d", s.UndoSize(), value)
	}
}

func TestStack_Clear(t *testing.T) {
	s := NewStack(50)
	value := 0

	mustDo(t, s, &counter{value: &value, delta: 1}, nil)
	mustUndo(t, s)
	s.Clear()

	if s.UndoSize() != 0 || s.RedoSize() != 0 {
		t.Errorf("Clear left undo %d, redo %d", s.UndoSize(), s.RedoSize())
	}
}
