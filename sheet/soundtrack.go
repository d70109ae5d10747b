// ABOUTME: Reference soundtrack metadata read directly from audio file tags
// ABOUTME: The tempo gives the beat spacing shown alongside the frames

package sheet

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dhowden/tag"
)

// Soundtrack is the audio the animation is timed against
type Soundtrack struct {
	Path   string  // As stored in the sheet
	Title  string  // Title tag, or the file name
	Artist string  // Artist name
	BPM    float64 // Beats per minute (0 if not available)
}

// ReadSoundtrack reads the tags of an audio file. Relative paths are resolved
// against baseDir (typically the sheet's directory).
func ReadSoundtrack(path, baseDir string) (*Soundtrack, error) {
	fullPath := path
	if !filepath.IsAbs(path) && baseDir != "" {
		fullPath = filepath.Join(baseDir, path)
	}

	file, err := os.Open(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open soundtrack: %w", err)
	}
	defer func() { _ = file.Close() }()

	metadata, err := tag.ReadFrom(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read soundtrack metadata: %w", err)
	}

	title := metadata.Title()
	if title == "" {
		title = filepath.Base(path)
	}

	return &Soundtrack{
		Path:   path,
		Title:  title,
		Artist: metadata.Artist(),
		BPM:    rawBPM(metadata.Raw()),
	}, nil
}

// rawBPM finds the tempo among the format specific tag names
func rawBPM(raw map[string]interface{}) float64 {
	for _, key := range []string{"BPM", "TBPM", "bpm", "tempo"} {
		val, exists := raw[key]
		if !exists {
			continue
		}

		var bpm float64

		switch v := val.(type) {
		case string:
			bpm, _ = strconv.ParseFloat(v, 64)
		case int:
			bpm = float64(v)
		case float64:
			bpm = v
		}

		if bpm > 0 {
			return bpm
		}
	}

	return 0
}

// FramesPerBeat returns how many frames one beat lasts at framerate, or 0 without a tempo
func (s *Soundtrack) FramesPerBeat(framerate int) float64 {
	if s == nil || s.BPM <= 0 || framerate <= 0 {
		return 0
	}

	return float64(framerate) * 60 / s.BPM
}

// IsBeat reports whether a beat falls on frame i
func (s *Soundtrack) IsBeat(i, framerate int) bool {
	fpb := s.FramesPerBeat(framerate)
	if fpb <= 0 || i < 0 {
		return false
	}

	if i == 0 {
		return true
	}

	return math.Floor(float64(i)/fpb) != math.Floor(float64(i-1)/fpb)
}

// String returns a one line description
func (s *Soundtrack) String() string {
	if s.Artist == "" {
		return fmt.Sprintf("%s (%.0f BPM)", s.Title, s.BPM)
	}

	return fmt.Sprintf("%s - %s (%.0f BPM)", s.Artist, s.Title, s.BPM)
}
