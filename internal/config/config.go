package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultLogLevel   = "info"
	DefaultVolume     = 0.6
	DefaultSampleRate = 44100
	DefaultFPS        = 30
	DefaultTileWidth  = 4
	DefaultTileHeight = 2
)

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	StartLevel int         `yaml:"start_level"`
	LogLevel   string      `yaml:"log_level"`
	LogFile    string      `yaml:"log_file"`
	Audio      AudioConfig `yaml:"audio"`
	TUI        TUIConfig   `yaml:"tui"`
}

type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Volume     float64 `yaml:"volume"`
	SampleRate int     `yaml:"sample_rate"`
}

// TUIConfig sizes are in terminal cells per grid tile.
type TUIConfig struct {
	FPS        int  `yaml:"fps"`
	TileWidth  int  `yaml:"tile_width"`
	TileHeight int  `yaml:"tile_height"`
	Mouse      bool `yaml:"mouse"`
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel: DefaultLogLevel,
		Audio: AudioConfig{
			Enabled:    true,
			Volume:     DefaultVolume,
			SampleRate: DefaultSampleRate,
		},
		TUI: TUIConfig{
			FPS:        DefaultFPS,
			TileWidth:  DefaultTileWidth,
			TileHeight: DefaultTileHeight,
			Mouse:      true,
		},
	}
}

// Load overlays the file at path on the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch {
	case c.StartLevel < 0:
		return fmt.Errorf("start_level %d: %w", c.StartLevel, ErrInvalid)
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return fmt.Errorf("audio.volume %g: %w", c.Audio.Volume, ErrInvalid)
	case c.Audio.SampleRate <= 0:
		return fmt.Errorf("audio.sample_rate %d: %w", c.Audio.SampleRate, ErrInvalid)
	case c.TUI.FPS <= 0:
		return fmt.Errorf("tui.fps %d: %w", c.TUI.FPS, ErrInvalid)
	case c.TUI.TileWidth < 2 || c.TUI.TileHeight < 1:
		return fmt.Errorf("tui tile %dx%d: %w", c.TUI.TileWidth, c.TUI.TileHeight, ErrInvalid)
	}
	return nil
}
