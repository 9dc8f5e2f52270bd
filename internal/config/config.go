// Package config handles configuration loading from TOML files and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"github.com/xonecas/glyphgrid/internal/constants"
	"github.com/xonecas/glyphgrid/internal/engine"
	"github.com/xonecas/glyphgrid/internal/grapheme"
)

// Config is the root configuration structure. Every field is optional.
type Config struct {
	Render  RenderConfig  `toml:"render"`
	Blob    BlobConfig    `toml:"blob"`
	Ripple  RippleConfig  `toml:"ripple"`
	Scroll  ScrollConfig  `toml:"scroll"`
	UI      UIConfig      `toml:"ui"`
	Log     LogConfig     `toml:"log"`
	Content ContentConfig `toml:"content"`
}

// RenderConfig holds frame synthesis settings.
type RenderConfig struct {
	FPS  int    `toml:"fps"`
	Ramp string `toml:"ramp"`
	// Gutter is a pointer so an explicit 0 disables it.
	Gutter     *int    `toml:"gutter"`
	CellAspect float64 `toml:"cell_aspect"`
}

// BlobConfig holds blob mask settings.
type BlobConfig struct {
	Radius   float64 `toml:"radius"`
	Epsilon  float64 `toml:"epsilon"`
	TileSize int     `toml:"tile_size"`
}

// RippleConfig holds click ripple settings.
type RippleConfig struct {
	Max        int     `toml:"max"`
	LifespanMS int     `toml:"lifespan_ms"`
	Speed      float64 `toml:"speed"`
}

// ScrollConfig holds scroll physics settings.
type ScrollConfig struct {
	Friction  float64 `toml:"friction"`
	WheelGain float64 `toml:"wheel_gain"`
	ChunkRows int     `toml:"chunk_rows"`
}

// UIConfig holds terminal host settings.
type UIConfig struct {
	Backend   string `toml:"backend"`
	LinkColor string `toml:"link_color"`
}

// BackendOrDefault returns the configured backend or bubbletea if unset.
func (u UIConfig) BackendOrDefault() string {
	if u.Backend == "" {
		return constants.BackendBubbletea
	}
	return u.Backend
}

// LinkColorOrDefault returns the configured link color or the built-in one.
func (u UIConfig) LinkColorOrDefault() string {
	if u.LinkColor == "" {
		return constants.LinkColor
	}
	return u.LinkColor
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// LevelOrDefault returns the parsed level, or info if unset.
func (l LogConfig) LevelOrDefault() zerolog.Level {
	if l.Level == "" {
		return zerolog.InfoLevel
	}
	lvl, err := zerolog.ParseLevel(l.Level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

// FileOrDefault returns the log path, defaulting into the data directory.
func (l LogConfig) FileOrDefault(dataDir string) string {
	if l.File == "" {
		return filepath.Join(dataDir, constants.LogFile)
	}
	return l.File
}

// ContentConfig selects what to show.
type ContentConfig struct {
	// Path is a TOML document; it wins over the store.
	Path string `toml:"path"`
	DB   string `toml:"db"`
	Page string `toml:"page"`
}

// DBOrDefault returns the store path, defaulting into the data directory.
func (c ContentConfig) DBOrDefault(dataDir string) string {
	if c.DB == "" {
		return filepath.Join(dataDir, constants.StoreFile)
	}
	return c.DB
}

// PageOrDefault returns the page name or the default page.
func (c ContentConfig) PageOrDefault() string {
	if c.Page == "" {
		return constants.DefaultPage
	}
	return c.Page
}

// Load reads configuration from a TOML file and applies environment variable
// overrides. An empty path yields the defaults; a path that does not exist
// is an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate returns an error if the configuration is invalid.
func (c *Config) Validate() error {
	var errs []error

	if c.Render.FPS < 0 || c.Render.FPS > 240 {
		errs = append(errs, fmt.Errorf("render.fps=%d must be between 0 (default) and 240", c.Render.FPS))
	}
	if c.Render.Ramp != "" && grapheme.Count(c.Render.Ramp) < 2 {
		errs = append(errs, fmt.Errorf("render.ramp=%q needs at least two characters", c.Render.Ramp))
	}
	if c.Render.Gutter != nil && *c.Render.Gutter < 0 {
		errs = append(errs, fmt.Errorf("render.gutter=%d must not be negative", *c.Render.Gutter))
	}
	if c.Render.CellAspect < 0 {
		errs = append(errs, fmt.Errorf("render.cell_aspect=%v must be positive", c.Render.CellAspect))
	}

	if c.Blob.Radius < 0 {
		errs = append(errs, fmt.Errorf("blob.radius=%v must be positive", c.Blob.Radius))
	}
	if c.Blob.Epsilon < 0 || (c.Blob.Radius > 0 && c.Blob.Epsilon >= c.Blob.Radius) {
		errs = append(errs, fmt.Errorf("blob.epsilon=%v must be between 0 and blob.radius", c.Blob.Epsilon))
	}
	if c.Blob.TileSize < 0 {
		errs = append(errs, fmt.Errorf("blob.tile_size=%d must be positive", c.Blob.TileSize))
	}

	if c.Ripple.Max < 0 {
		errs = append(errs, fmt.Errorf("ripple.max=%d must not be negative", c.Ripple.Max))
	}
	if c.Ripple.LifespanMS < 0 {
		errs = append(errs, fmt.Errorf("ripple.lifespan_ms=%d must not be negative", c.Ripple.LifespanMS))
	}
	if c.Ripple.Speed < 0 {
		errs = append(errs, fmt.Errorf("ripple.speed=%v must not be negative", c.Ripple.Speed))
	}

	if c.Scroll.Friction < 0 || c.Scroll.Friction >= 1 {
		errs = append(errs, fmt.Errorf("scroll.friction=%v must be in [0, 1)", c.Scroll.Friction))
	}
	if c.Scroll.WheelGain < 0 {
		errs = append(errs, fmt.Errorf("scroll.wheel_gain=%v must not be negative", c.Scroll.WheelGain))
	}
	if c.Scroll.ChunkRows < 0 {
		errs = append(errs, fmt.Errorf("scroll.chunk_rows=%d must not be negative", c.Scroll.ChunkRows))
	}

	switch c.UI.Backend {
	case "", constants.BackendBubbletea, constants.BackendTcell:
	default:
		errs = append(errs, fmt.Errorf("ui.backend=%q must be %q or %q", c.UI.Backend, constants.BackendBubbletea, constants.BackendTcell))
	}

	if c.Log.Level != "" {
		if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
			errs = append(errs, fmt.Errorf("log.level=%q is invalid: %v", c.Log.Level, err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// EngineOptions maps the configuration onto engine options, leaving unset
// values at their defaults.
func (c *Config) EngineOptions() engine.Options {
	o := engine.DefaultOptions()
	if c.Render.FPS > 0 {
		o.FPS = c.Render.FPS
	}
	if c.Render.Ramp != "" {
		o.Synth.Ramp = c.Render.Ramp
	}
	if c.Render.Gutter != nil {
		o.Synth.Gutter = *c.Render.Gutter
	}
	if c.Render.CellAspect > 0 {
		o.Aspect = c.Render.CellAspect
	}
	if c.Blob.Radius > 0 {
		o.Blob.Radius = c.Blob.Radius
	}
	if c.Blob.Epsilon > 0 {
		o.Blob.Epsilon = c.Blob.Epsilon
	}
	if c.Blob.TileSize > 0 {
		o.Blob.TileSize = c.Blob.TileSize
	}
	if c.Ripple.Max > 0 {
		o.MaxRipples = c.Ripple.Max
	}
	if c.Ripple.LifespanMS > 0 {
		o.RippleLifespan = time.Duration(c.Ripple.LifespanMS) * time.Millisecond
	}
	if c.Ripple.Speed > 0 {
		o.Synth.Ripple.Speed = c.Ripple.Speed
	}
	if c.Scroll.Friction > 0 {
		o.Scroll.Friction = c.Scroll.Friction
	}
	if c.Scroll.WheelGain > 0 {
		o.Scroll.WheelGain = c.Scroll.WheelGain
	}
	if c.Scroll.ChunkRows > 0 {
		o.Scroll.ChunkRows = c.Scroll.ChunkRows
	}
	return o
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) error {
	var errs []error
	for _, setter := range []struct {
		env   string
		apply func(string)
	}{
		{"GLYPHGRID_FPS", func(v string) {
			if v == "" {
				return
			}
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("GLYPHGRID_FPS=%q is not a number", v))
				return
			}
			cfg.Render.FPS = n
		}},
		{"GLYPHGRID_LOG_LEVEL", func(v string) {
			if v != "" {
				cfg.Log.Level = v
			}
		}},
		{"GLYPHGRID_CONTENT", func(v string) {
			if v != "" {
				cfg.Content.Path = v
			}
		}},
	} {
		setter.apply(os.Getenv(setter.env))
	}
	return errors.Join(errs...)
}

// DataDir returns the path to the data directory (~/.config/glyphgrid).
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", constants.AppName), nil
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", err
	}
	return dir, nil
}
