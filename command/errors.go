// ABOUTME: Sentinel errors returned by the command stack and timeline commands
// ABOUTME: A command that fails leaves the timeline and layer stack untouched

package command

import "errors"

var (
	// ErrNothingToUndo is returned by Stack.Undo at the start of the history
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrNothingToRedo is returned by Stack.Redo at the tip of the history
	ErrNothingToRedo = errors.New("nothing to redo")

	// ErrInvalidPaste is returned when the clipboard cannot be pasted onto the selected frame
	ErrInvalidPaste = errors.New("invalid paste")

	// ErrInvalidCelOperation is returned when adding a cel to a bound frame or removing one from an empty frame
	ErrInvalidCelOperation = errors.New("invalid cel operation")

	// ErrUnknownLayer is returned when a bound cel is missing from the layer stack
	ErrUnknownLayer = errors.New("cel is not in the layer stack")
)
