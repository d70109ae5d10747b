// ABOUTME: Collaborator interfaces the timeline commands are built against
// ABOUTME: Commands only see the layer stack and observer contracts, never a whole document

package command

import "xsheet/frames"

// Command is a reversible action. Redo applies it, Undo reverts it exactly.
type Command interface {
	Redo() error
	Undo() error
}

// LayerStack is the document's ordered set of layers and its active selection
type LayerStack interface {
	NewLayer(name string) frames.Cel
	Insert(pos int, layer frames.Cel) error
	Remove(layer frames.Cel) error
	IndexOf(layer frames.Cel) int
	At(i int) (frames.Cel, error)
	Len() int
	Active() int
	SetActive(i int)
}

// ObserverSink receives change notifications after every redo and undo
type ObserverSink interface {
	// DocumentChanged carries no payload; consumers re-read the timeline
	DocumentChanged()

	// CanvasChanged is sent once per cel whose opacity or visibility changed
	CanvasChanged(cel frames.Cel, opacity float64, visible bool)
}

// Env bundles the collaborators every timeline command operates on
type Env struct {
	Timeline *frames.Timeline
	Layers   LayerStack
	Sink     ObserverSink
}

// UpdateOpacities recomputes the lightbox and applies it to the cels, notifying
// the sink only for cels whose opacity or visibility actually changed.
func (e Env) UpdateOpacities() {
	opacities, visible := e.Timeline.ComputeOpacities()

	for _, cel := range e.Timeline.Cels() {
		opacity, ok := opacities[cel]
		if !ok {
			continue
		}

		e.applyCel(cel, opacity, visible[cel])
	}
}

// ShowOnly makes the current effective cel fully opaque and hides every other cel
func (e Env) ShowOnly() {
	current := e.Timeline.CelAt(e.Timeline.Cursor())

	for _, cel := range e.Timeline.Cels() {
		if cel == current {
			e.applyCel(cel, 1, true)
		} else {
			e.applyCel(cel, 0, false)
		}
	}
}

// applyCel sets the cel's lightbox state and reports it if anything changed
func (e Env) applyCel(cel frames.Cel, opacity float64, visible bool) {
	if cel.Opacity() == opacity && cel.Visible() == visible {
		return
	}

	cel.SetOpacity(opacity)
	cel.SetVisible(visible)

	if e.Sink != nil {
		e.Sink.CanvasChanged(cel, opacity, visible)
	}
}

// notify fires the document-changed channel
func (e Env) notify() {
	if e.Sink != nil {
		e.Sink.DocumentChanged()
	}
}

// refresh recomputes opacities then announces the document change
func (e Env) refresh() {
	e.UpdateOpacities()
	e.notify()
}
