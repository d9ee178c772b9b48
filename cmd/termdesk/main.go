// Command termdesk runs the terminal desktop on the process tty.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lixenwraith/termdesk/apps"
	"github.com/lixenwraith/termdesk/bell"
	"github.com/lixenwraith/termdesk/config"
	"github.com/lixenwraith/termdesk/core"
	"github.com/lixenwraith/termdesk/desktop"
	"github.com/lixenwraith/termdesk/event"
	"github.com/lixenwraith/termdesk/service"
	"github.com/lixenwraith/termdesk/terminal"
)

const version = "0.3.0"

var (
	colorFlag    = flag.String("color", "", "Color mode: auto, truecolor, 256 (overrides config)")
	fpsFlag      = flag.Int("fps", 0, "Frame rate 1-120 (overrides config)")
	configFlag   = flag.String("config", defaultConfigPath(), "Config file path")
	strategyFlag = flag.String("strategy", "", "Diff strategy: adaptive, cell, line (overrides config)")
	noMouseFlag  = flag.Bool("no-mouse", false, "Disable mouse reporting")
	versionFlag  = flag.Bool("version", false, "Print version and exit")
)

func defaultConfigPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "termdesk", "termdesk.toml")
	}
	return ""
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	flag.Parse()
	if *versionFlag {
		fmt.Printf("termdesk %s\n", version)
		return
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	// Flags override the file
	if *colorFlag != "" {
		cfg.ColorMode = *colorFlag
	}
	if *fpsFlag > 0 {
		cfg.FPS = *fpsFlag
	}
	if *strategyFlag != "" {
		cfg.DiffStrategy = *strategyFlag
	}
	if *noMouseFlag {
		cfg.MouseEnabled = false
	}

	colorMode, ok := terminal.ParseColorMode(cfg.ColorMode)
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown color mode %q\n", cfg.ColorMode)
		os.Exit(1)
	}
	strategy, _ := terminal.ParseDiffStrategy(cfg.DiffStrategy)
	mouseMode := terminal.MouseModeNone
	if cfg.MouseEnabled {
		mouseMode = terminal.MouseModeClick | terminal.MouseModeDrag
	}

	apps.Register()

	// One op queue shared by the desktop and every posting service
	ops := event.NewQueue()

	var d *desktop.Desktop

	hub := service.NewHub()
	termSvc := terminal.NewService()
	bellSvc := bell.NewService(ops, cfg.Bell.Enabled, cfg.Bell.Audio)
	watcher := config.NewWatcher(*configFlag, func(c config.Config, err error) {
		if err != nil || d == nil {
			return // Previous config keeps running
		}
		d.QueueConfig(c)
	})
	hub.Register(termSvc)
	hub.Register(bellSvc)
	hub.Register(watcher)

	if err := hub.InitAll(colorMode, strategy, mouseMode); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	term := termSvc.Terminal()
	core.SetCrashTerminal(term)

	d = desktop.New(term, ops, cfg)
	d.SetBell(bellSvc.Ring)
	d.SetDefaultApp("notes")

	if err := hub.StartAll(); err != nil {
		term.Fini()
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer hub.StopAll()

	// Initial layout: one of each headline app
	d.Spawn("clock")
	d.Spawn("notes")

	if err := d.Run(context.Background(), termSvc.Events()); err != nil && err != context.Canceled {
		hub.StopAll()
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
