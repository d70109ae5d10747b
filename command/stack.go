// ABOUTME: Linear undo/redo history of executed commands
// ABOUTME: A new command truncates the redo tail; the oldest entries fall off past maxSize

package command

// Stack executes commands and keeps them for undo and redo.
// history[:cursor] can be undone, history[cursor:] can be redone.
type Stack struct {
	history []Command
	cursor  int
	maxSize int
}

// NewStack creates a stack that keeps at most maxSize commands (unbounded if maxSize <= 0)
func NewStack(maxSize int) *Stack {
	return &Stack{
		history: []Command{},
		maxSize: maxSize,
	}
}

// Do runs cmd and records it. A command whose Redo fails is not recorded.
func (s *Stack) Do(cmd Command) error {
	if err := cmd.Redo(); err != nil {
		return err
	}

	// Can't redo after a new action
	s.history = append(s.history[:s.cursor], cmd)
	s.cursor++

	if s.maxSize > 0 && len(s.history) > s.maxSize {
		drop := len(s.history) - s.maxSize
		s.history = append([]Command{}, s.history[drop:]...)
		s.cursor -= drop
	}

	return nil
}

// Undo reverts the most recent command
func (s *Stack) Undo() error {
	if s.cursor == 0 {
		return ErrNothingToUndo
	}

	if err := s.history[s.cursor-1].Undo(); err != nil {
		return err
	}

	s.cursor--

	return nil
}

// Redo re-applies the most recently undone command
func (s *Stack) Redo() error {
	if s.cursor == len(s.history) {
		return ErrNothingToRedo
	}

	if err := s.history[s.cursor].Redo(); err != nil {
		return err
	}

	s.cursor++

	return nil
}

// CanUndo reports whether Undo would succeed
func (s *Stack) CanUndo() bool {
	return s.cursor > 0
}

// CanRedo reports whether Redo would succeed
func (s *Stack) CanRedo() bool {
	return s.cursor < len(s.history)
}

// UndoSize returns the number of commands that can be undone
func (s *Stack) UndoSize() int {
	return s.cursor
}

// RedoSize returns the number of commands that can be redone
func (s *Stack) RedoSize() int {
	return len(s.history) - s.cursor
}

// Clear forgets the whole history
func (s *Stack) Clear() {
	s.history = []Command{}
	s.cursor = 0
}
