// ABOUTME: Render helpers for the lightbox panel, the frame rows and the status bar
// ABOUTME: Frame rows show key marks, cel holds, lightbox opacity and soundtrack beats

package tui

import (
	"fmt"
	"strings"
	"time"

	"xsheet/frames"
	"xsheet/playback"
)

// Column widths of a frame row
const (
	celColumnWidth  = 14
	descColumnWidth = 24
)

// renderLightbox renders the lightbox parameter panel
func (m model) renderLightbox() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Lightbox"))
	b.WriteString("\n\n")

	lb := m.anim.Timeline().Lightbox()

	for i, p := range m.paramMgr.All() {
		var value string

		switch {
		case p.IsInt:
			value = fmt.Sprintf("%d fps", *p.IntValue)
		case p.Toggleable():
			mark := "off"
			if lb.Setting(p.Category).Active {
				mark = "on"
			}

			value = fmt.Sprintf("%.2f %s", *p.Value, mark)
		default:
			value = fmt.Sprintf("%.2f", *p.Value)
		}

		line := fmt.Sprintf("%-12s %10s", p.Name, value)

		style := paramStyle
		if p.Toggleable() && !lb.Setting(p.Category).Active {
			style = disabledParamStyle
		}

		if i == m.paramMgr.Selected() && m.focusedPanel == lightboxPanel {
			style = selectedParamStyle
		}

		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(fmt.Sprintf(" previous %s | next %s",
		onOff(lb.DirectionEnabled(frames.Previous)),
		onOff(lb.DirectionEnabled(frames.Next)))))

	if m.soundtrack != nil {
		b.WriteString("\n\n")
		b.WriteString(titleStyle.Render("Soundtrack"))
		b.WriteString("\n")
		b.WriteString(truncate(m.soundtrack.String(), paramPanelWidth-2))
	}

	return b.String()
}

// renderSheet renders the frame list header and its viewport
func (m model) renderSheet() string {
	header := fmt.Sprintf("  %4s %s %s %-*s %5s  %s",
		"#", "K", "S", celColumnWidth, "Cel", "Opac", "Description")

	return titleStyle.Render("X-Sheet "+m.sheetPath) + "\n" +
		sheetHeaderStyle.Render(header) + "\n" +
		m.viewport.View()
}

// updateViewportContent rebuilds the frame rows and scrolls to the cursor
func (m *model) updateViewportContent() {
	tl := m.anim.Timeline()

	if tl.Len() == 0 {
		m.viewport.SetContent(helpStyle.Render("  (no frames, press A to append)"))
		m.viewport.SetYOffset(0)

		return
	}

	var b strings.Builder

	for i := range tl.Len() {
		line := m.frameRow(i)
		if i == tl.Cursor() {
			line = cursorStyle.Render(line)
		}

		b.WriteString(line)
		if i < tl.Len()-1 {
			b.WriteString("\n")
		}
	}

	m.viewport.SetContent(b.String())
	m.ensureCursorVisible()
}

// frameRow formats frame i
func (m model) frameRow(i int) string {
	tl := m.anim.Timeline()

	f, err := tl.Get(i)
	if err != nil {
		return ""
	}

	marker := " "
	if i == tl.Cursor() {
		marker = ">"
	}

	keyMark := "·"
	if f.IsKey {
		keyMark = keyFrameStyle.Render("●")
	}

	skipMark := " "
	if f.SkipVisible {
		skipMark = "s"
	}

	// Frames without their own cel hold the previous one
	cel := ""
	shown := tl.CelAt(i)

	switch {
	case f.Cel != nil:
		cel = f.Cel.Name()
	case shown != nil:
		cel = "│"
	}

	opacity := "    -"
	if shown != nil && shown.Visible() {
		opacity = fmt.Sprintf("%4.0f%%", shown.Opacity()*100)
	}

	var extras []string

	if clip := m.anim.Clipboard(); !clip.Empty() && clip.Source() == f {
		extras = append(extras, "["+clip.Mode().String()+"]")
	}

	if m.soundtrack.IsBeat(i, *m.framerate) {
		extras = append(extras, "♪")
	}

	return fmt.Sprintf("%s %4d %s %s %-*s %s  %-*s %s",
		marker,
		i+1,
		keyMark,
		skipMark,
		celColumnWidth,
		truncate(cel, celColumnWidth),
		opacity,
		descColumnWidth,
		truncate(f.Description, descColumnWidth),
		strings.Join(extras, " "),
	)
}

// renderStatus renders the status bar
func (m model) renderStatus() string {
	if m.statusMsg != "" && time.Since(m.statusMsgAge) < statusMsgLifetime {
		return statusStyle.Width(m.width).Render(m.statusMsg)
	}

	tl := m.anim.Timeline()
	stack := m.anim.Stack()

	frame := "no frames"
	if tl.Len() > 0 {
		frame = fmt.Sprintf("Frame %d/%d", tl.Cursor()+1, tl.Len())
	}

	layer := "-"
	if l, err := m.anim.Layers().At(m.anim.Layers().Active()); err == nil {
		layer = l.Name()
	}

	modified := ""
	if m.modified {
		modified = " *"
	}

	state := ""
	if m.player.State() != playback.Stopped {
		state = fmt.Sprintf("[%s %d fps] ", strings.ToUpper(m.player.State().String()), *m.framerate)
	}

	status := fmt.Sprintf("%s%s%s | %d cels | Layer: %s | U:%d R:%d",
		state,
		frame,
		modified,
		len(tl.Cels()),
		layer,
		stack.UndoSize(),
		stack.RedoSize(),
	)

	return statusStyle.Width(m.width).Render(status)
}

// renderHelp renders the help line for the focused panel
func (m model) renderHelp() string {
	if m.focusedPanel == lightboxPanel {
		return helpStyle.Render(" Tab: sheet | ↑/↓: select | ←/→: adjust | t: toggle category | r: reset | u: undo | space: play | q: quit")
	}

	return helpStyle.Render(" Tab: lightbox | ↑/↓ [/] {/}: move | m: key | s: skip | c/C: cel | e: describe | i/A/d: frames | x/y/p: clipboard | u/ctrl+r: undo/redo | space/esc: play/stop | ctrl+s: save | q: quit")
}

// onOff formats a switch
func onOff(on bool) string {
	if on {
		return "on"
	}

	return "off"
}
