// Package config loads the ledanim YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/ledanim/stream"
	"gopkg.in/yaml.v2"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the top level configuration document.
type Config struct {
	Mqtt struct {
		URL      string `yaml:"url"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		ClientID string `yaml:"clientId"`
		Topics   struct {
			Stream string `yaml:"stream"`
		} `yaml:"topics"`
	} `yaml:"mqtt"`

	Strip struct {
		Pixels     int     `yaml:"pixels"`
		Segments   int     `yaml:"segments"`
		Background string  `yaml:"background"`
		FrameRate  float64 `yaml:"frameRate"`
		Density    float64 `yaml:"density"`
	} `yaml:"strip"`

	API struct {
		Listen    string `yaml:"listen"`
		StaticDir string `yaml:"staticDir"`
	} `yaml:"api"`

	Showcase struct {
		Interval   time.Duration `yaml:"interval"`
		DurationMs int           `yaml:"durationMs"`
	} `yaml:"showcase"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Default returns a Config with every default applied.
func Default() *Config {
	c := new(Config)
	c.applyDefaults()
	return c
}

// Load reads the config file at path, applies defaults and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML config document, applies defaults and validates it.
func Parse(data []byte) (*Config, error) {
	c := new(Config)
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Mqtt.ClientID == "" {
		c.Mqtt.ClientID = "ledanim"
	}
	if c.Mqtt.Topics.Stream == "" {
		c.Mqtt.Topics.Stream = "led/stream"
	}
	if c.Strip.Pixels == 0 {
		c.Strip.Pixels = 400
	}
	if c.Strip.Segments == 0 {
		c.Strip.Segments = 8
	}
	if c.Strip.Background == "" {
		c.Strip.Background = "#000005"
	}
	if c.Strip.FrameRate == 0 {
		c.Strip.FrameRate = 30
	}
	if c.Strip.Density == 0 {
		c.Strip.Density = 1
	}
	if c.API.Listen == "" {
		c.API.Listen = ":3000"
	}
	if c.API.StaticDir == "" {
		c.API.StaticDir = "client/dist"
	}
	if c.Showcase.DurationMs == 0 {
		c.Showcase.DurationMs = 1000
	}
}

// Validate checks the config for values the service cannot run with.
func (c *Config) Validate() error {
	if c.Mqtt.URL == "" {
		return fmt.Errorf("%w: mqtt.url is required", ErrInvalid)
	}
	if c.Strip.Pixels < 0 || c.Strip.Pixels > stream.MaxPixels {
		return fmt.Errorf("%w: strip.pixels must be between 1 and %d, got %d",
			ErrInvalid, stream.MaxPixels, c.Strip.Pixels)
	}
	if c.Strip.Segments < 1 || c.Strip.Segments > c.Strip.Pixels {
		return fmt.Errorf("%w: strip.segments must be between 1 and %d, got %d",
			ErrInvalid, c.Strip.Pixels, c.Strip.Segments)
	}
	if c.Strip.FrameRate < 0 {
		return fmt.Errorf("%w: strip.frameRate must be positive", ErrInvalid)
	}
	if c.Strip.Density < 0 {
		return fmt.Errorf("%w: strip.density must be positive", ErrInvalid)
	}
	if _, err := c.BackgroundColour(); err != nil {
		return fmt.Errorf("%w: strip.background: %v", ErrInvalid, err)
	}
	if c.Showcase.Interval < 0 || c.Showcase.DurationMs < 0 {
		return fmt.Errorf("%w: showcase timings must not be negative", ErrInvalid)
	}
	return nil
}

// BackgroundColour parses the strip background hex colour.
func (c *Config) BackgroundColour() (colorful.Color, error) {
	return colorful.Hex(c.Strip.Background)
}

// ShowcaseDuration returns the duration applied to each showcased preset.
func (c *Config) ShowcaseDuration() time.Duration {
	return time.Duration(c.Showcase.DurationMs) * time.Millisecond
}
