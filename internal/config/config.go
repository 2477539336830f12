package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every variable name, e.g. SKETCHPAD_WIDTH.
const Prefix = "sketchpad"

type Config struct {
	Width      float64 `envconfig:"WIDTH" default:"1024"`
	Height     float64 `envconfig:"HEIGHT" default:"768"`
	Title      string  `envconfig:"TITLE" default:"Sketchpad"`
	Background string  `envconfig:"BACKGROUND" default:"#000000"`

	// DevicePixelRatio of 0 uses the monitor's scale factor.
	DevicePixelRatio  float64  `envconfig:"DEVICE_PIXEL_RATIO" default:"0"`
	Layers            []string `envconfig:"LAYERS" default:"lines"`
	StrokeWidth       float64  `envconfig:"STROKE_WIDTH" default:"5"`
	StrokeColour      string   `envconfig:"STROKE_COLOUR" default:"#FFFFFF"`
	PenSampleInterval float64  `envconfig:"PEN_SAMPLE_INTERVAL" default:"2"`
	LogLevel          string   `envconfig:"LOG_LEVEL" default:"info"`

	// InspectAddr is where the inspector listens. Empty disables it.
	InspectAddr string `envconfig:"INSPECT_ADDR" default:"localhost:7070"`
	Headless    bool   `envconfig:"HEADLESS" default:"false"`
	TPS         int    `envconfig:"TPS" default:"60"`
	Ticks       int    `envconfig:"TICKS" default:"120"`

	// Snapshot is a PNG path written after the last headless tick.
	Snapshot string `envconfig:"SNAPSHOT"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the editor cannot start with.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid surface size %gx%g", c.Width, c.Height)
	}
	if c.DevicePixelRatio < 0 {
		return fmt.Errorf("invalid device pixel ratio %g", c.DevicePixelRatio)
	}
	if c.TPS <= 0 {
		return fmt.Errorf("invalid tps %d", c.TPS)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// SlogLevel maps LogLevel to a slog level. Unknown names fall back to info.
func (c *Config) SlogLevel() slog.Level {
	l, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return l
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(strings.TrimSpace(s)))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return l, nil
}
