// ABOUTME: Reads and writes x-sheet files (frames, layer names, framerate and soundtrack)
// ABOUTME: Creates a backup (.bak) of the existing file before overwriting

// Package sheet persists an animation's timeline and layer stack as JSON.
package sheet

import (
	"encoding/json"
	"fmt"
	"os"

	"xsheet/document"
	"xsheet/frames"
)

// DefaultFramerate is used when a sheet file has no framerate
const DefaultFramerate = 24

// LayerRecord is the persisted form of one layer
type LayerRecord struct {
	Name string `json:"name"`
}

// File is the on-disk x-sheet
type File struct {
	Framerate  int             `json:"framerate"`
	Soundtrack string          `json:"soundtrack,omitempty"` // Audio file path, relative to the sheet
	Layers     []LayerRecord   `json:"layers"`
	Frames     []frames.Record `json:"frames"`
}

// LayerSource is the read side of a layer stack
type LayerSource interface {
	Len() int
	At(i int) (frames.Cel, error)
	IndexOf(layer frames.Cel) int
}

// New returns a sheet of length empty frames and no layers
func New(length, framerate int) *File {
	return &File{
		Framerate: framerate,
		Layers:    []LayerRecord{},
		Frames:    make([]frames.Record, length),
	}
}

// FromTimeline captures a timeline and its layer stack
func FromTimeline(tl *frames.Timeline, layers LayerSource, framerate int) (*File, error) {
	records, err := tl.Records(layers.IndexOf)
	if err != nil {
		return nil, err
	}

	f := &File{
		Framerate: framerate,
		Layers:    make([]LayerRecord, layers.Len()),
		Frames:    records,
	}

	for i := range f.Layers {
		l, err := layers.At(i)
		if err != nil {
			return nil, err
		}

		f.Layers[i] = LayerRecord{Name: l.Name()}
	}

	return f, nil
}

// Build creates the layer stack and the timeline that references it
func (f *File) Build() (*frames.Timeline, *document.Document, error) {
	names := make([]string, len(f.Layers))
	for i, l := range f.Layers {
		names[i] = l.Name
	}

	doc := document.FromNames(names)

	tl, err := frames.FromRecords(f.Frames, doc.At)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build timeline: %w", err)
	}

	return tl, doc, nil
}

// Load reads a sheet file
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse sheet %s: %w", path, err)
	}

	if f.Framerate <= 0 {
		f.Framerate = DefaultFramerate
	}

	return &f, nil
}

// Save writes a sheet file, keeping the previous version as path.bak
func Save(path string, f *File) (err error) {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode sheet: %w", err)
	}

	if _, statErr := os.Stat(path); statErr == nil {
		backupPath := path + ".bak"
		if err := os.Rename(path, backupPath); err != nil {
			return fmt.Errorf("failed to create backup: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}

	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close sheet file: %w", closeErr)
		}
	}()

	if _, err := file.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write sheet: %w", err)
	}

	return nil
}
