// ABOUTME: Pencil test state machine: stopped, playing and paused
// ABOUTME: An external ticker calls Tick; the controller never schedules itself

// Package playback drives the pencil test. Moving the cursor during playback
// never goes through the undo history.
package playback

import (
	"fmt"
	"time"
)

// DefaultFramerate is the pencil test speed in frames per second
const DefaultFramerate = 24

// State is the controller state
type State int

// Controller states
const (
	Stopped State = iota
	Playing
	Paused
)

// String returns the state name
func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	}

	return "unknown"
}

// Stepper is the timeline the controller plays back
type Stepper interface {
	Len() int
	Cursor() int

	// ShowFrame moves the cursor to i without recording an undo step
	ShowFrame(i int) error

	// BeginPlayback and EndPlayback switch between the playback and editing views
	BeginPlayback()
	EndPlayback()
}

// Controller plays a Stepper in a loop
type Controller struct {
	stepper   Stepper
	state     State
	home      int
	fromFirst bool
}

// New returns a stopped controller. With fromFirst, play starts at frame 0.
func New(stepper Stepper, fromFirst bool) *Controller {
	return &Controller{stepper: stepper, fromFirst: fromFirst}
}

// State returns the current state
func (c *Controller) State() State {
	return c.state
}

// Home returns the frame that was selected when playback started
func (c *Controller) Home() int {
	return c.home
}

// SetFromFirst sets whether the next play from Stopped starts at frame 0
func (c *Controller) SetFromFirst(fromFirst bool) {
	c.fromFirst = fromFirst
}

// Play starts or resumes playback
func (c *Controller) Play() error {
	switch c.state {
	case Playing:
		return nil
	case Paused:
		c.stepper.BeginPlayback()
		c.state = Playing

		return c.stepper.ShowFrame(c.stepper.Cursor())
	}

	c.home = c.stepper.Cursor()
	c.stepper.BeginPlayback()
	c.state = Playing

	start := c.home
	if c.fromFirst {
		start = 0
	}

	if c.stepper.Len() == 0 {
		return nil
	}

	if err := c.stepper.ShowFrame(start); err != nil {
		return fmt.Errorf("start playback: %w", err)
	}

	return nil
}

// Pause stops advancing and leaves the cursor where it is
func (c *Controller) Pause() error {
	if c.state != Playing {
		return nil
	}

	c.state = Paused
	c.stepper.EndPlayback()

	return nil
}

// Stop ends playback and returns the cursor to where play started
func (c *Controller) Stop() error {
	if c.state == Stopped {
		return nil
	}

	c.state = Stopped
	c.stepper.EndPlayback()

	n := c.stepper.Len()
	if n == 0 {
		return nil
	}

	if err := c.stepper.ShowFrame(min(c.home, n-1)); err != nil {
		return fmt.Errorf("stop playback: %w", err)
	}

	return nil
}

// Toggle plays when stopped or paused and pauses when playing
func (c *Controller) Toggle() error {
	if c.state == Playing {
		return c.Pause()
	}

	return c.Play()
}

// Tick advances one frame while playing, looping back to frame 0 after the last
func (c *Controller) Tick() error {
	if c.state != Playing {
		return nil
	}

	n := c.stepper.Len()
	if n == 0 {
		return nil
	}

	return c.stepper.ShowFrame((c.stepper.Cursor() + 1) % n)
}

// Interval returns the tick period for a framerate in frames per second
func Interval(framerate int) time.Duration {
	if framerate <= 0 {
		framerate = DefaultFramerate
	}

	return time.Second / time.Duration(framerate)
}
