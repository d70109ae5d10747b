// ABOUTME: Configuration management for lightbox and x-sheet preferences
// ABOUTME: Handles loading/saving TOML config files with fallback to defaults

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"xsheet/frames"
)

// Framerate limits shared by validation and the editor
const (
	MinFramerate = 1
	MaxFramerate = 120
)

// Config holds all user preferences
type Config struct {
	Lightbox LightboxConfig `toml:"lightbox"`
	Sheet    SheetConfig    `toml:"xsheet"`
}

// LightboxConfig holds the onion-skin settings
type LightboxConfig struct {
	Factor   float64        `toml:"factor"` // Global multiplier applied to every category
	Opacity  CategoryValues `toml:"opacity"`
	Enabled  CategoryFlags  `toml:"enabled"`
	Previous bool           `toml:"previous"` // Show cels before the cursor
	Next     bool           `toml:"next"`     // Show cels after the cursor
}

// CategoryValues holds one base opacity per lightbox category
type CategoryValues struct {
	NextPrev   float64 `toml:"nextprev"`
	Key        float64 `toml:"key"`
	Inbetweens float64 `toml:"inbetweens"`
	OtherKeys  float64 `toml:"other_keys"`
	Other      float64 `toml:"other"`
}

// CategoryFlags holds one enabled flag per lightbox category
type CategoryFlags struct {
	NextPrev   bool `toml:"nextprev"`
	Key        bool `toml:"key"`
	Inbetweens bool `toml:"inbetweens"`
	OtherKeys  bool `toml:"other_keys"`
	Other      bool `toml:"other"`
}

// SheetConfig holds the editing and pencil test settings
type SheetConfig struct {
	DefaultLength      int  `toml:"default_length"` // Frames in a new sheet
	Framerate          int  `toml:"framerate"`      // Pencil test frames per second
	PlayLightbox       bool `toml:"play_lightbox"`  // Keep onion skins while playing
	PlayFromFirstFrame bool `toml:"play_from_first_frame"`
	UndoHistory        int  `toml:"undo_history"`
}

// Validate validates the whole configuration
func (c *Config) Validate() error {
	if err := c.Lightbox.Validate(); err != nil {
		return fmt.Errorf("lightbox: %w", err)
	}

	if err := c.Sheet.Validate(); err != nil {
		return fmt.Errorf("xsheet: %w", err)
	}

	return nil
}

// Validate validates the lightbox configuration
func (c *LightboxConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Factor, validation.Min(0.0), validation.Max(1.0)),
	); err != nil {
		return err
	}

	return c.Opacity.Validate()
}

// Validate checks every opacity is within [0, 1]
func (c *CategoryValues) Validate() error {
	unit := []validation.Rule{validation.Min(0.0), validation.Max(1.0)}

	return validation.ValidateStruct(c,
		validation.Field(&c.NextPrev, unit...),
		validation.Field(&c.Key, unit...),
		validation.Field(&c.Inbetweens, unit...),
		validation.Field(&c.OtherKeys, unit...),
		validation.Field(&c.Other, unit...),
	)
}

// Validate validates the x-sheet configuration
func (c *SheetConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.DefaultLength, validation.Required, validation.Min(1), validation.Max(100000)),
		validation.Field(&c.Framerate, validation.Required, validation.Min(MinFramerate), validation.Max(MaxFramerate)),
		validation.Field(&c.UndoHistory, validation.Required, validation.Min(1)),
	)
}

// Opacities returns the base opacities keyed by timeline category
func (c LightboxConfig) Opacities() map[frames.Category]float64 {
	return map[frames.Category]float64{
		frames.NextPrev:   c.Opacity.NextPrev,
		frames.Key:        c.Opacity.Key,
		frames.Inbetweens: c.Opacity.Inbetweens,
		frames.OtherKeys:  c.Opacity.OtherKeys,
		frames.Other:      c.Opacity.Other,
	}
}

// ActiveCategories returns the enabled flags keyed by timeline category
func (c LightboxConfig) ActiveCategories() map[frames.Category]bool {
	return map[frames.Category]bool{
		frames.NextPrev:   c.Enabled.NextPrev,
		frames.Key:        c.Enabled.Key,
		frames.Inbetweens: c.Enabled.Inbetweens,
		frames.OtherKeys:  c.Enabled.OtherKeys,
		frames.Other:      c.Enabled.Other,
	}
}

// Directions returns the direction flags keyed by timeline direction
func (c LightboxConfig) Directions() map[frames.Direction]bool {
	return map[frames.Direction]bool{
		frames.Previous: c.Previous,
		frames.Next:     c.Next,
	}
}

// SetEnabled sets the enabled flag of one category
func (c *LightboxConfig) SetEnabled(category frames.Category, enabled bool) {
	switch category {
	case frames.NextPrev:
		c.Enabled.NextPrev = enabled
	case frames.Key:
		c.Enabled.Key = enabled
	case frames.Inbetweens:
		c.Enabled.Inbetweens = enabled
	case frames.OtherKeys:
		c.Enabled.OtherKeys = enabled
	case frames.Other:
		c.Enabled.Other = enabled
	}
}

// GetConfigPath returns the default config file path
// First tries current directory, then falls back to ~/.config/xsheet/config.toml
func GetConfigPath() string {
	if _, err := os.Stat("./xsheet.toml"); err == nil {
		return "./xsheet.toml"
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "./xsheet.toml"
	}

	return filepath.Join(home, ".config", "xsheet", "config.toml")
}

// LoadConfig loads configuration from a TOML file
// Keys missing from the file keep their defaults. If the file doesn't exist, returns default config.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}

		return DefaultConfig(), fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, &config); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return DefaultConfig(), fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return config, nil
}

// SaveConfig saves configuration to a TOML file
func SaveConfig(path string, config Config) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Round all float values to 2 decimal places to match UI precision
	config = roundConfigPrecision(config)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close config file: %w", closeErr)
		}
	}()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(config); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// DefaultConfig returns the default preferences
func DefaultConfig() Config {
	return Config{
		Lightbox: LightboxConfig{
			Factor: 1.0,
			Opacity: CategoryValues{
				NextPrev:   0.5,
				Key:        0.5,
				Inbetweens: 0.25,
				OtherKeys:  0.25,
				Other:      0,
			},
			Enabled: CategoryFlags{
				NextPrev:   true,
				Key:        true,
				Inbetweens: true,
				OtherKeys:  true,
				Other:      false,
			},
			Previous: true,
			Next:     true,
		},
		Sheet: SheetConfig{
			DefaultLength:      frames.DefaultLength,
			Framerate:          24,
			PlayLightbox:       false,
			PlayFromFirstFrame: true,
			UndoHistory:        100,
		},
	}
}

// roundConfigPrecision rounds all float64 fields to 2 decimal places
func roundConfigPrecision(config Config) Config {
	round := func(x float64) float64 {
		return float64(int(x*100+0.5)) / 100
	}

	lb := &config.Lightbox
	lb.Factor = round(lb.Factor)
	lb.Opacity.NextPrev = round(lb.Opacity.NextPrev)
	lb.Opacity.Key = round(lb.Opacity.Key)
	lb.Opacity.Inbetweens = round(lb.Opacity.Inbetweens)
	lb.Opacity.OtherKeys = round(lb.Opacity.OtherKeys)
	lb.Opacity.Other = round(lb.Opacity.Other)

	return config
}
