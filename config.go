package mapnav

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ConfigFileName is the settings file name inside the config directory.
const ConfigFileName = "config.toml"

// Config holds the user settings read by the gesture layer and the host.
// It implements Settings.
type Config struct {
	// EnableExtraGestures turns on drag-to-pan and pinch-to-zoom.
	EnableExtraGestures bool `toml:"enable_extra_gestures"`
	// ShowParams draws the engine's parameter description over the map.
	ShowParams bool `toml:"show_params"`
	// PanDuration is the length in seconds of the animated pan used by
	// MapEngine. Zero pans instantly.
	PanDuration float64 `toml:"pan_duration"`
}

// DefaultConfig returns the settings used when no file exists.
func DefaultConfig() Config {
	return Config{
		EnableExtraGestures: true,
		ShowParams:          false,
		PanDuration:         0.25,
	}
}

func (c *Config) ExtraGesturesEnabled() bool { return c.EnableExtraGestures }
func (c *Config) DiagnosticOverlay() bool    { return c.ShowParams }

// DefaultConfigPath returns $XDG_CONFIG_HOME/mapnav/config.toml, falling
// back to ~/.config when XDG_CONFIG_HOME is unset.
func DefaultConfigPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		dir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(dir, "mapnav", ConfigFileName)
}

// LoadConfig reads the settings at path. A missing file is created with the
// defaults, which are returned.
func LoadConfig(path string) (*Config, error) {
	conf := DefaultConfig()
	if _, err := toml.DecodeFile(path, &conf); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load settings %s: %w", path, err)
		}
		conf = DefaultConfig()
		if err := conf.Save(path); err != nil {
			return nil, err
		}
	}
	return &conf, nil
}

// Save writes the settings to path, creating its directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("save settings: encode: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
