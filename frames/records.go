// ABOUTME: Converts a timeline to and from the flat per-frame sheet records
// ABOUTME: Cels are referenced by their index in the document's layer stack

package frames

import "fmt"

// Record is the persisted form of one frame
type Record struct {
	IsKey       bool   `json:"is_key"`
	Description string `json:"description"`
	SkipVisible bool   `json:"skip_visible,omitempty"`
	LayerIndex  *int   `json:"layer_index,omitempty"` // nil if the frame has no cel
}

// Records returns one record per frame. indexOf maps a bound cel to its layer index;
// cels it cannot resolve are an error since the record would silently drop them.
func (t *Timeline) Records(indexOf func(Cel) int) ([]Record, error) {
	records := make([]Record, len(t.frames))

	for i, f := range t.frames {
		records[i] = Record{
			IsKey:       f.IsKey,
			Description: f.Description,
			SkipVisible: f.SkipVisible,
		}

		if f.Cel == nil {
			continue
		}

		idx := indexOf(f.Cel)
		if idx < 0 {
			return nil, fmt.Errorf("frame %d: cel %q is not in the layer stack", i, f.Cel.Name())
		}

		records[i].LayerIndex = &idx
	}

	return records, nil
}

// FromRecords rebuilds a timeline with one frame per record. layerAt resolves a
// record's layer index to the cel it references.
func FromRecords(records []Record, layerAt func(int) (Cel, error)) (*Timeline, error) {
	t := New(0)

	for i, r := range records {
		f := &Frame{
			IsKey:       r.IsKey,
			Description: r.Description,
			SkipVisible: r.SkipVisible,
		}

		if r.LayerIndex != nil {
			cel, err := layerAt(*r.LayerIndex)
			if err != nil {
				return nil, fmt.Errorf("frame %d: layer %d: %w", i, *r.LayerIndex, err)
			}

			f.Cel = cel
		}

		t.frames = append(t.frames, f)
	}

	return t, nil
}
