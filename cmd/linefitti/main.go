package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"

	"github.com/ingyamilmolinar/linefitti/internal/config"
	"github.com/ingyamilmolinar/linefitti/internal/laser"
	game_log "github.com/ingyamilmolinar/linefitti/internal/log"
	"github.com/ingyamilmolinar/linefitti/internal/sketch"
	"github.com/ingyamilmolinar/linefitti/internal/term"
	"github.com/ingyamilmolinar/linefitti/internal/ui"
)

type options struct {
	configPath string
	logLevel   string
	logFile    string
	overflow   string
	term       bool
	laser      bool
	dumpConfig bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "linefitti: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("linefitti", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.configPath, "config", "", "path to a TOML config file")
	fs.StringVar(&o.logLevel, "log-level", "", "log level: DEBUG, INFO, WARN, ERROR or NONE")
	fs.StringVar(&o.logFile, "log-file", "", "append logs to this file instead of stderr")
	fs.StringVar(&o.overflow, "overflow", "", "buffer overflow policy: wrap or reset")
	fs.BoolVar(&o.term, "term", false, "draw in the terminal instead of a window")
	fs.BoolVar(&o.laser, "laser", false, "drive the laser projector through the audio output")
	fs.BoolVar(&o.dumpConfig, "dump-config", false, "print the effective config as TOML and exit")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if fs.NArg() > 0 {
		return o, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return o, nil
}

// loadConfig reads the config file and applies flag overrides on top.
func loadConfig(o options) (config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return cfg, err
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if o.overflow != "" {
		cfg.Buffer.Overflow = o.overflow
	}
	if o.laser {
		cfg.Laser.Enabled = true
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(o)
	if err != nil {
		return err
	}
	if o.dumpConfig {
		return config.Encode(stdout, cfg)
	}

	logOut := stderr
	switch {
	case o.logFile != "":
		f, err := os.OpenFile(o.logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("log file: %w", err)
		}
		defer f.Close()
		logOut = f
	case o.term:
		// stderr shares the terminal with the drawing
		logOut = io.Discard
	}
	level, _ := game_log.ParseLevel(cfg.Log.Level)
	logger := game_log.New(logOut, level).With("MAIN")

	sk := sketch.New(sketchOptions(cfg, o.term), openProjector(cfg, logger), logger)
	defer func() {
		if err := sk.Close(); err != nil {
			logger.Warnf("close projector: %v", err)
		}
	}()
	logger.Infof("capacity %d, overflow %s, laser %t", cfg.Buffer.Capacity, cfg.Buffer.Overflow, cfg.Laser.Enabled)

	if o.term {
		return runTerm(cfg, sk, logger)
	}
	sk.Resize(cfg.Window.Width, cfg.Window.Height)
	return ui.Run(cfg.Window, ui.New(sk, cfg.Window.HUD, logger))
}

func sketchOptions(cfg config.Config, inTerm bool) sketch.Options {
	opts := sketch.Options{
		Capacity:     cfg.Buffer.Capacity,
		Overflow:     cfg.Policy(),
		ResolutionPx: cfg.Buffer.ResolutionPx,
	}
	if inTerm {
		opts.ResolutionPx = cfg.Term.ResolutionCells
	}
	return opts
}

// openProjector falls back to the null projector when the audio device
// cannot be opened; drawing still works without the laser.
func openProjector(cfg config.Config, logger *game_log.Logger) laser.Projector {
	if !cfg.Laser.Enabled {
		return laser.Null{}
	}
	dev, err := laser.Open(cfg.Laser.RenderParams, logger)
	if err != nil {
		logger.Warnf("laser disabled: %v", err)
		return laser.Null{}
	}
	return dev
}

func runTerm(cfg config.Config, sk *sketch.Sketch, logger *game_log.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return term.Run(ctx, screen, sk, term.Options{FrameRate: cfg.Term.FrameRate, HUD: cfg.Term.HUD}, logger)
}
