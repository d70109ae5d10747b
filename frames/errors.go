// ABOUTME: Sentinel errors returned by timeline navigation and lookups
// ABOUTME: All are caller precondition failures and are never retried

package frames

import "errors"

var (
	// ErrOutOfRange is returned when an index is outside [0, Len()).
	ErrOutOfRange = errors.New("frame index out of range")

	// ErrNoSuchFrame is returned when there is no frame to move to in the requested direction.
	ErrNoSuchFrame = errors.New("no such frame")

	// ErrNoSuchKeyframe is returned when there is no key frame in the requested direction.
	ErrNoSuchKeyframe = errors.New("no such key frame")
)
