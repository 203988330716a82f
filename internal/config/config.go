// Package config loads the linefitti settings. Defaults: a 640x640 window,
// 300 points that wrap, a 3px drag resolution and OpenLase-style projector
// parameters.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/ingyamilmolinar/linefitti/internal/laser"
	game_log "github.com/ingyamilmolinar/linefitti/internal/log"
	"github.com/ingyamilmolinar/linefitti/internal/points"
)

type Config struct {
	Window Window `toml:"window"`
	Buffer Buffer `toml:"buffer"`
	Laser  Laser  `toml:"laser"`
	Term   Term   `toml:"term"`
	Log    Log    `toml:"log"`
}

type Window struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	HUD    bool   `toml:"hud"`
	TPS    int    `toml:"tps"`
}

type Buffer struct {
	Capacity     int     `toml:"capacity"`
	Overflow     string  `toml:"overflow"` // "wrap" or "reset"
	ResolutionPx float32 `toml:"resolution_px"`
}

type Laser struct {
	Enabled bool `toml:"enabled"`
	laser.RenderParams
}

type Term struct {
	FrameRate       int     `toml:"frame_rate"`
	ResolutionCells float32 `toml:"resolution_cells"`
	HUD             bool    `toml:"hud"`
}

type Log struct {
	Level string `toml:"level"`
}

func Default() Config {
	return Config{
		Window: Window{Width: 640, Height: 640, Title: "Le Lineffiti", HUD: true, TPS: 60},
		Buffer: Buffer{Capacity: 300, Overflow: points.Wrap.String(), ResolutionPx: 3},
		Laser:  Laser{RenderParams: laser.DefaultParams()},
		Term:   Term{FrameRate: 30, ResolutionCells: 1, HUD: true},
		Log:    Log{Level: game_log.LevelInfo.String()},
	}
}

// Load reads a TOML file over the defaults. An empty path returns the
// defaults untouched.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	if err := Decode(f, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode merges TOML from r into cfg, rejecting unknown keys, and
// validates the result.
func Decode(r io.Reader, cfg *Config) error {
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("unknown keys:\n%s", strict.String())
		}
		return err
	}
	return cfg.Validate()
}

// Encode writes cfg as TOML; used by -dump-config.
func Encode(w io.Writer, cfg Config) error {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Window.TPS <= 0 {
		return fmt.Errorf("window.tps must be positive, got %d", c.Window.TPS)
	}
	if c.Buffer.Capacity < points.MinCapacity {
		return fmt.Errorf("buffer.capacity must be at least %d, got %d", points.MinCapacity, c.Buffer.Capacity)
	}
	if _, err := points.ParsePolicy(c.Buffer.Overflow); err != nil {
		return fmt.Errorf("buffer.overflow: %w", err)
	}
	if c.Buffer.ResolutionPx < 0 {
		return fmt.Errorf("buffer.resolution_px must not be negative, got %g", c.Buffer.ResolutionPx)
	}
	if c.Term.FrameRate <= 0 {
		return fmt.Errorf("term.frame_rate must be positive, got %d", c.Term.FrameRate)
	}
	if c.Term.ResolutionCells < 0 {
		return fmt.Errorf("term.resolution_cells must not be negative, got %g", c.Term.ResolutionCells)
	}
	if _, err := game_log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if err := c.Laser.Validate(); err != nil {
		return err
	}
	return nil
}

// Policy returns the parsed overflow policy; call after Validate.
func (c *Config) Policy() points.Policy {
	p, _ := points.ParsePolicy(c.Buffer.Overflow)
	return p
}
