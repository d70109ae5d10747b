// ABOUTME: Non-interactive commands: creating sheets and printing their contents
// ABOUTME: Inspect prints the frame table and the lightbox opacities seen from one frame

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"xsheet/animation"
	"xsheet/config"
	"xsheet/sheet"
)

// NewOptions contains the settings for a new sheet
type NewOptions struct {
	Path       string
	Frames     int
	Framerate  int
	Soundtrack string // Audio file, relative to the sheet
	Force      bool   // Overwrite an existing sheet
}

// InspectOptions contains the settings for printing a sheet
type InspectOptions struct {
	Path     string
	Frame    int // 1-based frame to preview the lightbox from, 0 for none
	Lightbox config.LightboxConfig
}

// RunNew writes a sheet of empty frames
func RunNew(w io.Writer, opts NewOptions) error {
	if opts.Frames < 1 {
		return fmt.Errorf("a sheet needs at least one frame, got %d", opts.Frames)
	}

	if opts.Framerate < config.MinFramerate || opts.Framerate > config.MaxFramerate {
		return fmt.Errorf("framerate must be between %d and %d, got %d",
			config.MinFramerate, config.MaxFramerate, opts.Framerate)
	}

	if _, err := os.Stat(opts.Path); err == nil && !opts.Force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", opts.Path)
	}

	f := sheet.New(opts.Frames, opts.Framerate)
	f.Soundtrack = opts.Soundtrack

	if err := sheet.Save(opts.Path, f); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Created %s: %d frames at %d fps (%s)\n",
		opts.Path, opts.Frames, opts.Framerate, FormatDuration(opts.Frames, opts.Framerate))

	return err
}

// RunInspect prints a summary of the sheet, its frames, and optionally the lightbox at one frame
func RunInspect(w io.Writer, opts InspectOptions) error {
	file, err := sheet.Load(opts.Path)
	if err != nil {
		return err
	}

	tl, doc, err := file.Build()
	if err != nil {
		return err
	}

	ew := &errWriter{w: w}

	ew.printf("Sheet: %s\n", opts.Path)
	ew.printf("Frames: %d at %d fps (%s)\n", tl.Len(), file.Framerate, FormatDuration(tl.Len(), file.Framerate))
	ew.printf("Layers: %d (%d in use)\n", doc.Len(), len(tl.Cels()))

	var soundtrack *sheet.Soundtrack

	if file.Soundtrack != "" {
		soundtrack, err = sheet.ReadSoundtrack(file.Soundtrack, filepath.Dir(opts.Path))
		if err != nil {
			ew.printf("Soundtrack: %s (unreadable: %v)\n", file.Soundtrack, err)
		} else {
			ew.printf("Soundtrack: %s, %.1f frames per beat\n", soundtrack, soundtrack.FramesPerBeat(file.Framerate))
		}
	}

	ew.printf("\n")

	tw := tabwriter.NewWriter(ew, 0, 0, 2, ' ', 0)
	ew.fprintln(tw, "#\tTime\tKey\tSkip\tCel\tDescription\tBeat")
	ew.fprintln(tw, "---\t----\t---\t----\t---\t-----------\t----")

	for i := range tl.Len() {
		f, err := tl.Get(i)
		if err != nil {
			return err
		}

		cel := ""

		switch {
		case f.Cel != nil:
			cel = f.Cel.Name()
		case tl.CelAt(i) != nil:
			cel = "|"
		}

		ew.fprintln(tw, fmt.Sprintf("%d\t%s\t%s\t%s\t%s\t%s\t%s",
			i+1,
			FormatTimecode(i, file.Framerate),
			mark(f.IsKey, "*"),
			mark(f.SkipVisible, "s"),
			cel,
			f.Description,
			mark(soundtrack.IsBeat(i, file.Framerate), "♪"),
		))
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write frames: %w", err)
	}

	if opts.Frame == 0 || ew.err != nil {
		return ew.err
	}

	anim := animation.New(tl, doc, nil, 1)
	anim.ApplyLightbox(opts.Lightbox)

	if err := anim.SelectWithoutUndo(opts.Frame - 1); err != nil {
		return fmt.Errorf("frame %d: %w", opts.Frame, err)
	}

	ew.printf("\nLightbox from frame %d:\n", opts.Frame)

	cels := tl.Cels()
	if len(cels) == 0 {
		ew.printf("  (no cels)\n")
		return ew.err
	}

	tw = tabwriter.NewWriter(ew, 0, 0, 2, ' ', 0)
	ew.fprintln(tw, "Cel\tOpacity\tVisible")

	current := tl.CelAt(tl.Cursor())

	for _, cel := range cels {
		name := cel.Name()
		if cel == current {
			name += " (current)"
		}

		ew.fprintln(tw, fmt.Sprintf("%s\t%.2f\t%s", name, cel.Opacity(), yesNo(cel.Visible())))
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write lightbox: %w", err)
	}

	return ew.err
}

// mark returns s when on, or an empty column
func mark(on bool, s string) string {
	if on {
		return s
	}

	return ""
}

// yesNo formats a flag
func yesNo(on bool) string {
	if on {
		return "yes"
	}

	return "no"
}

// errWriter remembers the first write error so the table code stays linear
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}

	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}

	return n, err
}

func (e *errWriter) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(e, format, args...)
}

func (e *errWriter) fprintln(w io.Writer, line string) {
	if _, err := fmt.Fprintln(w, line); err != nil && e.err == nil {
		e.err = err
	}
}
