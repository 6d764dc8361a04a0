package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"
)

// GameConfig is the root config for game.{toml,yaml,json}
type GameConfig struct {
	Display     DisplayConfig    `json:"display" toml:"display" yaml:"display"`
	Transitions TransitionConfig `json:"transitions" toml:"transitions" yaml:"transitions"`
	Logging     LoggingConfig    `json:"logging" toml:"logging" yaml:"logging"`
	Journal     JournalConfig    `json:"journal" toml:"journal" yaml:"journal"`
}

type DisplayConfig struct {
	Title        string `json:"title" toml:"title" yaml:"title"`
	ScreenWidth  int    `json:"screenWidth" toml:"screen_width" yaml:"screenWidth"`
	ScreenHeight int    `json:"screenHeight" toml:"screen_height" yaml:"screenHeight"`
	Scale        int    `json:"scale" toml:"scale" yaml:"scale"`
	Framerate    int    `json:"framerate" toml:"framerate" yaml:"framerate"`
	ClearColor   string `json:"clearColor" toml:"clear_color" yaml:"clearColor"` // "#rrggbb"
}

// TransitionConfig holds durations in milliseconds
type TransitionConfig struct {
	FadeMs  int `json:"fadeMs" toml:"fade_ms" yaml:"fadeMs"`
	SlideMs int `json:"slideMs" toml:"slide_ms" yaml:"slideMs"`
}

// Fade returns the fade duration
func (c TransitionConfig) Fade() time.Duration {
	return time.Duration(c.FadeMs) * time.Millisecond
}

// Slide returns the slide duration
func (c TransitionConfig) Slide() time.Duration {
	return time.Duration(c.SlideMs) * time.Millisecond
}

type LoggingConfig struct {
	Level  string `json:"level" toml:"level" yaml:"level"`
	Format string `json:"format" toml:"format" yaml:"format"` // console or json
}

// JournalConfig controls recording of scene stack events
type JournalConfig struct {
	Enabled bool   `json:"enabled" toml:"enabled" yaml:"enabled"`
	Dir     string `json:"dir" toml:"dir" yaml:"dir"`
}

// Default returns the configuration used when no file overrides a value
func Default() *GameConfig {
	return &GameConfig{
		Display: DisplayConfig{
			Title:        "scenestack",
			ScreenWidth:  320,
			ScreenHeight: 240,
			Scale:        2,
			Framerate:    60,
			ClearColor:   "#101018",
		},
		Transitions: TransitionConfig{
			FadeMs:  400,
			SlideMs: 300,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Journal: JournalConfig{
			Dir: "journals",
		},
	}
}

// Validate checks values that would make the game unusable
func (c *GameConfig) Validate() error {
	if c.Display.ScreenWidth <= 0 || c.Display.ScreenHeight <= 0 {
		return fmt.Errorf("display: screen size must be positive, got %dx%d",
			c.Display.ScreenWidth, c.Display.ScreenHeight)
	}
	if c.Display.Scale <= 0 {
		return fmt.Errorf("display: scale must be positive, got %d", c.Display.Scale)
	}
	if c.Display.Framerate <= 0 {
		return fmt.Errorf("display: framerate must be positive, got %d", c.Display.Framerate)
	}
	if _, err := ParseColor(c.Display.ClearColor); err != nil {
		return fmt.Errorf("display: %w", err)
	}
	if c.Transitions.FadeMs < 0 || c.Transitions.SlideMs < 0 {
		return fmt.Errorf("transitions: durations must not be negative")
	}
	return nil
}

// ParseColor parses "#rrggbb" or "#rrggbbaa"
func ParseColor(s string) (color.RGBA, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || (len(hex) != 6 && len(hex) != 8) {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
