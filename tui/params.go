// ABOUTME: Parameter manager for the lightbox panel
// ABOUTME: Adjusts opacities and the pencil test framerate with boundary checking

package tui

import (
	"math"

	"xsheet/config"
	"xsheet/frames"
)

// Parameter is one adjustable row of the lightbox panel
type Parameter struct {
	Name     string
	Value    *float64 // Pointer to the config field being edited
	IntValue *int     // For integer parameters
	Enabled  *bool    // Category switch, nil if the row cannot be toggled
	Category frames.Category
	Min      float64
	Max      float64
	Step     float64
	IsInt    bool
}

// Toggleable reports whether the parameter is a lightbox category that can be switched on and off
func (p *Parameter) Toggleable() bool {
	return p.Enabled != nil
}

// ParamManager tracks the selected parameter and applies adjustments
type ParamManager struct {
	params   []Parameter
	selected int
}

// NewParamManager creates a manager over params
func NewParamManager(params []Parameter) *ParamManager {
	return &ParamManager{params: params}
}

// lightboxParams binds the panel rows to cfg and the sheet framerate.
// The pointers stay valid as long as their targets do.
func lightboxParams(cfg *config.Config, framerate *int) []Parameter {
	lb := &cfg.Lightbox

	category := func(name string, c frames.Category, value *float64, enabled *bool) Parameter {
		return Parameter{
			Name:     name,
			Value:    value,
			Enabled:  enabled,
			Category: c,
			Min:      0,
			Max:      1,
			Step:     0.05,
		}
	}

	return []Parameter{
		{Name: "Factor", Value: &lb.Factor, Min: 0, Max: 1, Step: 0.05},
		category("Next/Prev", frames.NextPrev, &lb.Opacity.NextPrev, &lb.Enabled.NextPrev),
		category("Key", frames.Key, &lb.Opacity.Key, &lb.Enabled.Key),
		category("Inbetweens", frames.Inbetweens, &lb.Opacity.Inbetweens, &lb.Enabled.Inbetweens),
		category("Other keys", frames.OtherKeys, &lb.Opacity.OtherKeys, &lb.Enabled.OtherKeys),
		category("Other", frames.Other, &lb.Opacity.Other, &lb.Enabled.Other),
		{Name: "Framerate", IntValue: framerate, Min: config.MinFramerate, Max: config.MaxFramerate, Step: 1, IsInt: true},
	}
}

// Selected returns the index of the selected parameter
func (pm *ParamManager) Selected() int {
	return pm.selected
}

// SetSelected selects parameter index, ignoring out of range values
func (pm *ParamManager) SetSelected(index int) {
	if index >= 0 && index < len(pm.params) {
		pm.selected = index
	}
}

// SelectNext moves the selection down
func (pm *ParamManager) SelectNext() {
	pm.SetSelected(pm.selected + 1)
}

// SelectPrevious moves the selection up
func (pm *ParamManager) SelectPrevious() {
	pm.SetSelected(pm.selected - 1)
}

// Increase steps the selected parameter up. Returns true if the value changed.
func (pm *ParamManager) Increase() bool {
	return pm.adjust(1)
}

// Decrease steps the selected parameter down. Returns true if the value changed.
func (pm *ParamManager) Decrease() bool {
	return pm.adjust(-1)
}

func (pm *ParamManager) adjust(sign float64) bool {
	p := pm.GetSelected()
	if p == nil {
		return false
	}

	if p.IsInt {
		next := *p.IntValue + int(sign*p.Step)
		if float64(next) < p.Min || float64(next) > p.Max || next == *p.IntValue {
			return false
		}

		*p.IntValue = next

		return true
	}

	// Round to the step grid so repeated adjustments don't drift
	next := math.Round((*p.Value+sign*p.Step)*100) / 100
	next = min(max(next, p.Min), p.Max)

	if next == *p.Value {
		return false
	}

	*p.Value = next

	return true
}

// Toggle flips the selected category on or off. Returns the category, its new
// state, and false if the selected row is not a category.
func (pm *ParamManager) Toggle() (frames.Category, bool, bool) {
	p := pm.GetSelected()
	if p == nil || !p.Toggleable() {
		return 0, false, false
	}

	*p.Enabled = !*p.Enabled

	return p.Category, *p.Enabled, true
}

// ResetToDefaults copies the default values into the bound fields
func (pm *ParamManager) ResetToDefaults(defaults config.Config) {
	d := lightboxParams(&defaults, &defaults.Sheet.Framerate)

	for i := range pm.params {
		if i >= len(d) {
			break
		}

		p := &pm.params[i]

		switch {
		case p.IsInt:
			*p.IntValue = *d[i].IntValue
		default:
			*p.Value = *d[i].Value
		}

		if p.Enabled != nil && d[i].Enabled != nil {
			*p.Enabled = *d[i].Enabled
		}
	}
}

// Get returns the parameter at index, or nil
func (pm *ParamManager) Get(index int) *Parameter {
	if index >= 0 && index < len(pm.params) {
		return &pm.params[index]
	}

	return nil
}

// GetSelected returns the selected parameter
func (pm *ParamManager) GetSelected() *Parameter {
	return pm.Get(pm.selected)
}

// Len returns the number of parameters
func (pm *ParamManager) Len() int {
	return len(pm.params)
}

// All returns every parameter, for rendering
func (pm *ParamManager) All() []Parameter {
	return pm.params
}
