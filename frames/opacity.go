// ABOUTME: Lightbox (onion-skin) opacity model and the per-cel opacity computation
// ABOUTME: Categories are a fixed enum; first assignment wins when zones overlap

package frames

// Category is an onion-skin zone with its own base opacity and on/off switch
type Category int

// Categories in precedence order after the current cel
const (
	NextPrev   Category = iota // Immediate previous and next cels
	Key                        // Cels at the nearest key frames before and after the cursor
	Inbetweens                 // Cels between the cursor and the nearest key frames
	OtherKeys                  // Key frame cels beyond the nearest key frames
	Other                      // Every other cel beyond the nearest key frames
	numCategories
)

// Categories lists every category in precedence order
var Categories = []Category{NextPrev, Key, Inbetweens, OtherKeys, Other}

// String returns the category name used in preferences and the UI
func (c Category) String() string {
	switch c {
	case NextPrev:
		return "nextprev"
	case Key:
		return "key"
	case Inbetweens:
		return "inbetweens"
	case OtherKeys:
		return "other keys"
	case Other:
		return "other"
	}

	return "unknown"
}

// Direction selects cels before or after the cursor
type Direction int

// Directions relative to the cursor
const (
	Previous Direction = iota
	Next
	numDirections
)

// String returns the direction name
func (d Direction) String() string {
	if d == Previous {
		return "previous"
	}

	return "next"
}

// CategorySetting is the base opacity and enabled flag of one category
type CategorySetting struct {
	Opacity float64
	Active  bool
}

// OpacityModel holds the lightbox configuration consumed by ComputeOpacities
type OpacityModel struct {
	categories [numCategories]CategorySetting
	directions [numDirections]bool
	scale      float64
}

// NewOpacityModel returns the default lightbox configuration
func NewOpacityModel() *OpacityModel {
	return &OpacityModel{
		categories: [numCategories]CategorySetting{
			NextPrev:   {Opacity: 0.5, Active: true},
			Key:        {Opacity: 0.5, Active: true},
			Inbetweens: {Opacity: 0.25, Active: true},
			OtherKeys:  {Opacity: 0.25, Active: true},
			Other:      {Opacity: 0, Active: false},
		},
		directions: [numDirections]bool{Previous: true, Next: true},
		scale:      1,
	}
}

// Setting returns the configuration of category c
func (m *OpacityModel) Setting(c Category) CategorySetting {
	if c < 0 || c >= numCategories {
		return CategorySetting{}
	}

	return m.categories[c]
}

// DirectionEnabled reports whether cels in direction d are shown
func (m *OpacityModel) DirectionEnabled(d Direction) bool {
	if d < 0 || d >= numDirections {
		return false
	}

	return m.directions[d]
}

// Scale returns the global lightbox factor
func (m *OpacityModel) Scale() float64 {
	return m.scale
}

// opacity returns the scaled opacity of category c in direction d, or 0 when either is disabled
func (m *OpacityModel) opacity(d Direction, c Category) float64 {
	s := m.categories[c]
	if m.directions[d] && s.Active {
		return s.Opacity * m.scale
	}

	return 0
}

// clamp01 limits x to [0, 1]
func clamp01(x float64) float64 {
	return min(max(x, 0), 1)
}

// ========== Configuration ==========

// Lightbox returns the timeline's opacity model
func (t *Timeline) Lightbox() *OpacityModel {
	return t.lightbox
}

// ConfigureOpacity merges base opacities into the model. Values are clamped to [0, 1].
func (t *Timeline) ConfigureOpacity(overrides map[Category]float64) {
	for c, v := range overrides {
		if c >= 0 && c < numCategories {
			t.lightbox.categories[c].Opacity = clamp01(v)
		}
	}
}

// SetOpacityScale sets the global lightbox factor, clamped to [0, 1]
func (t *Timeline) SetOpacityScale(factor float64) {
	t.lightbox.scale = clamp01(factor)
}

// ConfigureActiveCategories merges category enabled flags into the model
func (t *Timeline) ConfigureActiveCategories(overrides map[Category]bool) {
	for c, v := range overrides {
		if c >= 0 && c < numCategories {
			t.lightbox.categories[c].Active = v
		}
	}
}

// ConfigureDirections merges direction enabled flags into the model
func (t *Timeline) ConfigureDirections(overrides map[Direction]bool) {
	for d, v := range overrides {
		if d >= 0 && d < numDirections {
			t.lightbox.directions[d] = v
		}
	}
}

// ========== Computation ==========

// ComputeOpacities returns the opacity and visibility each cel should have for
// the current cursor position. Only cels claimed by a rule appear in the maps.
//
// Precedence: skipped frames are seeded at 0, the current cel is forced to 1,
// then the immediate previous/next cels, the nearest key cels, the inbetweens
// and finally everything outside the nearest keys. A cel keeps the first value
// assigned to it.
func (t *Timeline) ComputeOpacities() (map[Cel]float64, map[Cel]bool) {
	opacities := make(map[Cel]float64)
	m := t.lightbox

	claim := func(cel Cel, opacity float64) {
		if cel == nil {
			return
		}

		if _, ok := opacities[cel]; !ok {
			opacities[cel] = opacity
		}
	}

	for i, f := range t.frames {
		if f.SkipVisible {
			if cel := t.CelAt(i); cel != nil {
				opacities[cel] = 0
			}
		}
	}

	if cel := t.CelAt(t.cursor); cel != nil {
		opacities[cel] = 1
	}

	claim(t.PreviousCel(), m.opacity(Previous, NextPrev))
	claim(t.NextCel(), m.opacity(Next, NextPrev))

	prevKey := 0
	if i := t.previousKeyIndex(); i >= 0 {
		prevKey = i
		claim(t.CelAt(i), m.opacity(Previous, Key))
	}

	nextKey := len(t.frames) - 1
	if i := t.nextKeyIndex(); i >= 0 {
		nextKey = i
		claim(t.CelAt(i), m.opacity(Next, Key))
	}

	for i := t.cursor; i < nextKey; i++ {
		claim(t.frames[i].Cel, m.opacity(Next, Inbetweens))
	}

	for i := prevKey; i < t.cursor; i++ {
		claim(t.frames[i].Cel, m.opacity(Previous, Inbetweens))
	}

	outside := func(d Direction, f *Frame) {
		if f.IsKey {
			claim(f.Cel, m.opacity(d, OtherKeys))
		} else {
			claim(f.Cel, m.opacity(d, Other))
		}
	}

	for i := max(nextKey, 0); i < len(t.frames); i++ {
		outside(Next, t.frames[i])
	}

	for i := 0; i < prevKey; i++ {
		outside(Previous, t.frames[i])
	}

	visible := make(map[Cel]bool, len(opacities))
	for cel, opacity := range opacities {
		visible[cel] = opacity != 0
	}

	return opacities, visible
}
