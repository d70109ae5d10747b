// ABOUTME: Undoable lightbox setting changes
// ABOUTME: Toggling a category recomputes every cel's opacity

package command

import "xsheet/frames"

// ToggleOpacityCategory enables or disables one lightbox category
type ToggleOpacityCategory struct {
	env      Env
	category frames.Category
	enabled  bool
	prev     bool
}

// NewToggleOpacityCategory returns a command setting category's active flag to enabled
func NewToggleOpacityCategory(env Env, category frames.Category, enabled bool) *ToggleOpacityCategory {
	return &ToggleOpacityCategory{env: env, category: category, enabled: enabled}
}

// Redo applies the flag
func (c *ToggleOpacityCategory) Redo() error {
	c.prev = c.env.Timeline.Lightbox().Setting(c.category).Active
	c.env.Timeline.ConfigureActiveCategories(map[frames.Category]bool{c.category: c.enabled})
	c.env.refresh()

	return nil
}

// Undo restores the previous flag
func (c *ToggleOpacityCategory) Undo() error {
	c.env.Timeline.ConfigureActiveCategories(map[frames.Category]bool{c.category: c.prev})
	c.env.refresh()

	return nil
}
