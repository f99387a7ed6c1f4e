package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go-pianoroll/geometry"
)

// OutputConfig defines the MIDI output used for previews and playback
type OutputConfig struct {
	PortName          string `json:"portName,omitempty"`
	Channel           int    `json:"channel"` // 1-16
	Velocity          int    `json:"velocity"`
	PreviewMillis     int    `json:"previewMillis"`
	PreviewDebounceMs int    `json:"previewDebounceMs,omitempty"`
}

// GridConfig defines the drawing scale and snap grid
type GridConfig struct {
	QuarterWidth    float64 `json:"quarterWidth"`
	RowHeight       float64 `json:"rowHeight"`
	StepsPerQuarter int     `json:"stepsPerQuarter"`
	Measures        int     `json:"measures"`
}

// PlaybackConfig stores transport settings
type PlaybackConfig struct {
	Tempo int `json:"tempo"`
}

// UIConfig stores UI preferences
type UIConfig struct {
	PaletteFile string `json:"paletteFile,omitempty"`
	StartPitch  int    `json:"startPitch,omitempty"` // pitch centered at startup
}

// Config is the main configuration structure
type Config struct {
	Output   OutputConfig   `json:"output"`
	Grid     GridConfig     `json:"grid"`
	Playback PlaybackConfig `json:"playback"`
	UI       UIConfig       `json:"ui"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	g := geometry.DefaultGrid()
	return &Config{
		Output: OutputConfig{
			Channel:       1,
			Velocity:      100,
			PreviewMillis: 150,
		},
		Grid: GridConfig{
			QuarterWidth:    g.QuarterWidth,
			RowHeight:       g.RowHeight,
			StepsPerQuarter: g.StepsPerQuarter,
			Measures:        100,
		},
		Playback: PlaybackConfig{
			Tempo: 120,
		},
		UI: UIConfig{
			StartPitch: 60,
		},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-pianoroll"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads a config file; missing fields keep their defaults
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to path, creating its directory
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate rejects values the editor cannot work with
func (c *Config) Validate() error {
	if c.Output.Channel < 1 || c.Output.Channel > 16 {
		return fmt.Errorf("output channel %d out of range 1-16", c.Output.Channel)
	}
	if c.Output.Velocity < 1 || c.Output.Velocity > 127 {
		return fmt.Errorf("velocity %d out of range 1-127", c.Output.Velocity)
	}
	if c.Grid.QuarterWidth <= 0 || c.Grid.RowHeight <= 0 {
		return fmt.Errorf("grid scale must be positive")
	}
	if c.Grid.StepsPerQuarter < 1 {
		return fmt.Errorf("stepsPerQuarter must be at least 1")
	}
	if c.Grid.Measures < 1 {
		return fmt.Errorf("measures must be at least 1")
	}
	if c.Playback.Tempo < 20 || c.Playback.Tempo > 300 {
		return fmt.Errorf("tempo %d out of range 20-300", c.Playback.Tempo)
	}
	return nil
}

// GeometryGrid converts the grid section for the editor
func (c *Config) GeometryGrid() geometry.Grid {
	return geometry.Grid{
		QuarterWidth:    c.Grid.QuarterWidth,
		RowHeight:       c.Grid.RowHeight,
		StepsPerQuarter: c.Grid.StepsPerQuarter,
		MaxPitch:        geometry.NumPitches - 1,
	}
}
