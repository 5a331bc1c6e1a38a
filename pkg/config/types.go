// Package config loads navshell settings from defaults, navshell.yaml,
// NAVSHELL_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/muesli/termenv"

	"github.com/Dicklesworthstone/navshell/pkg/model"
	"github.com/Dicklesworthstone/navshell/pkg/preset"
)

// Defaults.
const (
	DefaultFile   = "navshell.yaml"
	DefaultPreset = preset.NameDefault
	DefaultTitle  = "navshell"
	DefaultTheme  = ThemeAuto
)

// Theme names. Auto picks dark or light from the terminal background.
const (
	ThemeAuto  = "auto"
	ThemeDark  = "dark"
	ThemeLight = "light"
	ThemeNoTTY = "notty"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all navshell settings.
type Config struct {
	Preset     string         `koanf:"preset" yaml:"preset"`
	Title      string         `koanf:"title" yaml:"title"`
	CellPixels int            `koanf:"cell_pixels" yaml:"cell_pixels"`
	RowPixels  int            `koanf:"row_pixels" yaml:"row_pixels"`
	StatePath  string         `koanf:"state_path" yaml:"state_path,omitempty"`
	LogFile    string         `koanf:"log_file" yaml:"log_file,omitempty"`
	Verbose    bool           `koanf:"verbose" yaml:"verbose,omitempty"`
	Watch      bool           `koanf:"watch" yaml:"watch,omitempty"`
	Theme      string         `koanf:"theme" yaml:"theme,omitempty"`
	Layout     map[string]any `koanf:"layout" yaml:"layout,omitempty"`

	// File is the config file that was read, if any.
	File string `koanf:"-" yaml:"-"`
}

// DefaultStatePath returns ~/.config/navshell/state.json, or "" when the
// home directory is unknown.
func DefaultStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "navshell", "state.json")
}

// Scale returns the pixel scale for breakpoint resolution.
func (c *Config) Scale() model.Scale {
	return model.Scale{CellPixels: c.CellPixels, RowPixels: c.RowPixels}
}

// Overrides parses the layout section.
func (c *Config) Overrides() (model.Overrides, error) {
	o, err := model.ParseOverrides(c.Layout)
	if err != nil {
		return model.Overrides{}, fmt.Errorf("%w: layout: %w", ErrInvalidConfig, err)
	}
	return o, nil
}

// BuildLayout resolves the preset with the layout section applied last.
func (c *Config) BuildLayout() (model.Config, model.Overrides, error) {
	o, err := c.Overrides()
	if err != nil {
		return model.Config{}, model.Overrides{}, err
	}
	cfg, err := preset.Build(c.Preset, o)
	if err != nil {
		return model.Config{}, model.Overrides{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cfg, o, nil
}

// GlamourStyle maps the theme to a glamour standard style.
func (c *Config) GlamourStyle() string {
	switch c.Theme {
	case ThemeDark, ThemeLight, ThemeNoTTY:
		return c.Theme
	}
	if termenv.HasDarkBackground() {
		return ThemeDark
	}
	return ThemeLight
}

// Validate checks the settings and the resolved layout.
func (c *Config) Validate() error {
	var errs []error
	if _, err := preset.Lookup(c.Preset); err != nil {
		errs = append(errs, err)
	}
	if c.CellPixels <= 0 {
		errs = append(errs, fmt.Errorf("cell_pixels must be positive, got %d", c.CellPixels))
	}
	if c.RowPixels <= 0 {
		errs = append(errs, fmt.Errorf("row_pixels must be positive, got %d", c.RowPixels))
	}
	switch c.Theme {
	case "", ThemeAuto, ThemeDark, ThemeLight, ThemeNoTTY:
	default:
		errs = append(errs, fmt.Errorf("unknown theme %q", c.Theme))
	}
	if len(errs) == 0 {
		layout, _, err := c.BuildLayout()
		if err != nil {
			return err
		}
		if err := layout.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}
