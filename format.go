// ABOUTME: Timecode formatting for frame positions
// ABOUTME: Formats frame indexes as seconds plus frames at the sheet framerate

package main

import "fmt"

// FormatTimecode returns the position of frame (0-based) as "MM:SS+FF" at framerate.
// A non-positive framerate falls back to the plain 1-based frame number.
func FormatTimecode(frame, framerate int) string {
	if framerate <= 0 || frame < 0 {
		return fmt.Sprintf("%d", frame+1)
	}

	seconds := frame / framerate
	rest := frame % framerate

	return fmt.Sprintf("%02d:%02d+%02d", seconds/60, seconds%60, rest)
}

// FormatDuration returns the running time of frames at framerate, e.g. "2.50s"
func FormatDuration(frames, framerate int) string {
	if framerate <= 0 {
		return "-"
	}

	return fmt.Sprintf("%.2fs", float64(frames)/float64(framerate))
}
