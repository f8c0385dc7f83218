// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Config holds all viewer settings.
type Config struct {
	Data    DataConfig    `yaml:"data"`
	Look    LookConfig    `yaml:"look"`
	Window  WindowConfig  `yaml:"window"`
	Audio   AudioConfig   `yaml:"audio"`
	Logging LoggingConfig `yaml:"logging"`
}

// DataConfig holds asset file paths.
type DataConfig struct {
	Archives  []string `yaml:"archives"`   // JSON archives mounted under their base name
	ImageRoot string   `yaml:"image_root"` // Directory bitmap paths resolve against
	SoundRoot string   `yaml:"sound_root"` // Directory audio paths resolve against
}

// LookConfig describes the character to show.
type LookConfig struct {
	Skin   int32   `yaml:"skin"`
	Hair   int32   `yaml:"hair"`
	Face   int32   `yaml:"face"`
	Equips []int32 `yaml:"equips"`
	Seed   int64   `yaml:"seed"`    // 0 seeds from the clock
	TickMs int     `yaml:"tick_ms"` // Fixed update step
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string  `yaml:"title"`
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Scale      float64 `yaml:"scale"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
}

// AudioConfig holds audio settings.
type AudioConfig struct {
	MasterVolume float64 `yaml:"master_volume"`
	SFXVolume    float64 `yaml:"sfx_volume"`
	Muted        bool    `yaml:"muted"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Archives:  []string{"data/Character.json", "data/String.json", "data/Sound.json"},
			ImageRoot: "data/img",
			SoundRoot: "data/sound",
		},
		Look: LookConfig{
			Skin:   0,
			Hair:   30030,
			Face:   20000,
			TickMs: 8,
		},
		Window: WindowConfig{
			Title:  "charlook",
			Width:  640,
			Height: 480,
			Scale:  1,
			VSync:  true,
		},
		Audio: AudioConfig{
			MasterVolume: 0.8,
			SFXVolume:    0.8,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks values the viewer cannot run with.
func (c *Config) Validate() error {
	if len(c.Data.Archives) == 0 {
		return errors.New("data.archives is empty")
	}
	if c.Look.TickMs <= 0 || c.Look.TickMs > 1000 {
		return fmt.Errorf("look.tick_ms must be in 1..1000, got %d", c.Look.TickMs)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	return nil
}
