// Beacon pops up a query box, feeds every keystroke to a handler
// script, and renders the lines the script prints back as selectable
// results. Hitting enter runs the selected action.
package main

import (
	"errors"
	"fmt"
	"image"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/beaconmenu/beacon/child"
	"github.com/beaconmenu/beacon/config"
	"github.com/beaconmenu/beacon/draw"
	"github.com/beaconmenu/beacon/history"
	"github.com/beaconmenu/beacon/render"
)

var (
	// Version is set at build time.
	Version = "dev"
	// Commit is set at build time.
	Commit = "none"
)

func main() {
	if err := newRoot().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRoot() *cobra.Command {
	var (
		configPath string
		execPath   string
		debug      bool
	)

	root := &cobra.Command{
		Use:   "beacon",
		Short: "A scriptable graphical launcher",
		Long: `Beacon opens a one-line query box backed by a handler script of
your choosing. Every keystroke is written to the handler's stdin; every
line the handler prints back replaces the visible result list. Enter
runs the selected result's action and exits.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(configPath, execPath, debug)
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/beacon/beacon.toml)")
	root.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	root.Flags().StringVar(&execPath, "exec", "", "Handler executable (overrides config)")

	root.AddCommand(versionCmd())
	root.AddCommand(historyCmd(&configPath))
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("beacon %s (commit: %s)\n", Version, Commit)
		},
	}
}

func historyCmd(configPath *string) *cobra.Command {
	var (
		frequent bool
		n        int
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show launch history",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if !cfg.History.Enabled {
				return errors.New("history is disabled in the config")
			}
			store, err := history.New(cfg.History.DBPath)
			if err != nil {
				return err
			}
			defer store.Close()

			if frequent {
				counts, err := store.Frequent(n)
				if err != nil {
					return err
				}
				for _, lc := range counts {
					fmt.Printf("%6d  %s\n", lc.Count, lc.Action)
				}
				return nil
			}
			actions, err := store.Recent(n)
			if err != nil {
				return err
			}
			for _, a := range actions {
				fmt.Println(a)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&frequent, "frequent", false, "Rank by launch count instead of recency")
	cmd.Flags().IntVarP(&n, "count", "n", 20, "Number of entries to show")
	return cmd
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFrom(path)
}

func run(configPath, execPath string, debug bool) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "beacon"})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if execPath != "" {
		cfg.Exec.Cmd = execPath
	}

	errch := make(chan error, 1)
	winsize := fmt.Sprintf("%dx%d", cfg.Window.Width, cfg.Window.LineHeight)
	display, err := draw.Init(errch, cfg.Font.Font, "beacon", winsize)
	if err != nil {
		return fmt.Errorf("opening display: %w", err)
	}
	if err := display.Attach(draw.Refnone); err != nil {
		return fmt.Errorf("attaching to window: %w", err)
	}

	screen := display.ScreenImage()
	screen.Draw(screen.R(), display.White(), nil, image.ZP)
	display.Flush()

	openOptional := func(path string) draw.Font {
		if path == "" {
			return nil
		}
		f, err := display.OpenFont(path)
		if err != nil {
			logger.Warn("opening font", "path", path, "err", err)
			return nil
		}
		return f
	}

	palette, err := buildPalette(cfg)
	if err != nil {
		return err
	}

	composer, err := render.New(
		render.WithDisplay(display),
		render.WithWindowControl(&windowController{log: logger}),
		render.WithFont(display.Font()),
		render.WithBoldFont(openOptional(cfg.Font.BoldFont)),
		render.WithDescFont(openOptional(cfg.Font.DescFont)),
		render.WithDescBoldFont(openOptional(cfg.Font.DescBoldFont)),
		render.WithGeometry(geometryFrom(cfg)),
		render.WithPalette(palette),
		render.WithLogger(logger),
	)
	if err != nil {
		return fmt.Errorf("setting up renderer: %w", err)
	}

	var store *history.Store
	if cfg.History.Enabled {
		store, err = history.New(cfg.History.DBPath)
		if err != nil {
			logger.Warn("launch history disabled", "err", err)
		} else {
			defer store.Close()
		}
	}

	proc, err := child.Spawn(cfg.Exec.Cmd, nil, logger)
	if err != nil {
		return fmt.Errorf("starting handler: %w", err)
	}
	defer proc.Close()

	a := &app{
		cfg:      cfg,
		display:  display,
		composer: composer,
		proc:     proc,
		store:    store,
		log:      logger,
	}
	return a.run(display.InitKeyboard(), display.InitMouse(), errch)
}

func geometryFrom(cfg *config.Config) render.Geometry {
	return render.Geometry{
		Width:       cfg.Window.Width,
		LineHeight:  cfg.Window.LineHeight,
		DescWidth:   cfg.Window.DescWidth,
		MaxHeight:   cfg.Window.MaxHeight,
		Pad:         cfg.Window.HorizPadding,
		LineGap:     cfg.Window.LineGap,
		AutoCenter:  cfg.Window.AutoCenter,
		CursorBar:   cfg.Cursor.Style == "bar",
		Pos:         image.Pt(cfg.Window.X, cfg.Window.Y),
		PosWithDesc: image.Pt(cfg.Window.X-cfg.Window.DescWidth/2, cfg.Window.Y),
	}
}

func buildPalette(cfg *config.Config) (render.Palette, error) {
	var p render.Palette
	for _, c := range []struct {
		hex string
		dst *draw.Color
	}{
		{cfg.Colors.QueryFg, &p.QueryFg}, {cfg.Colors.QueryBg, &p.QueryBg},
		{cfg.Colors.ResultFg, &p.ResultFg}, {cfg.Colors.ResultBg, &p.ResultBg},
		{cfg.Colors.HighlightFg, &p.HighlightFg}, {cfg.Colors.HighlightBg, &p.HighlightBg},
		{cfg.Colors.TitleFg, &p.TitleFg}, {cfg.Colors.TitleBg, &p.TitleBg},
		{cfg.Colors.Rule, &p.Rule},
	} {
		col, err := config.ParseColor(c.hex)
		if err != nil {
			return p, err
		}
		*c.dst = col
	}
	return p, nil
}
