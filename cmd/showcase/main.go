package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/pflag"

	"scroll-scene/editor"
	"scroll-scene/input"
	"scroll-scene/io"
	"scroll-scene/platform"
	"scroll-scene/renderer"
	"scroll-scene/scene"
	"scroll-scene/showcase"
	"scroll-scene/textures"
)

const snapshotPath = "snapshot.glb"

type options struct {
	config   string
	width    int
	height   int
	seed     int64
	logLevel string
	export   string
}

func parseFlags(args []string) (options, *pflag.FlagSet, error) {
	var o options
	fl := pflag.NewFlagSet("showcase", pflag.ContinueOnError)
	fl.StringVarP(&o.config, "config", "c", "scene.toml", "TOML scene config; defaults are used when the file is missing")
	fl.IntVar(&o.width, "width", 0, "window width (overrides config)")
	fl.IntVar(&o.height, "height", 0, "window height (overrides config)")
	fl.Int64Var(&o.seed, "seed", 0, "particle seed (overrides config, 0 = time based)")
	fl.StringVar(&o.logLevel, "log-level", "info", "debug, info, warn or error")
	fl.StringVar(&o.export, "export", "", "write the initial scene to a binary glTF file and exit")
	return o, fl, fl.Parse(args)
}

func main() {
	o, fl, err := parseFlags(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(o.logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "invalid --log-level %q\n", o.logLevel)
		os.Exit(2)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := run(o, fl.Changed("config"), logger); err != nil {
		logger.Error("showcase failed", "error", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file. A missing file falls back to defaults
// unless the path was given explicitly.
func loadConfig(o options, explicit bool, logger *slog.Logger) (*io.SceneFile, bool, error) {
	cfg, err := io.LoadScene(o.config)
	haveFile := err == nil
	switch {
	case haveFile:
		logger.Info("config loaded", "path", o.config)
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		logger.Info("no config file, using defaults", "path", o.config)
		cfg = io.NewDefaultSceneFile()
	default:
		return nil, false, err
	}
	if o.width > 0 {
		cfg.Window.Width = o.width
	}
	if o.height > 0 {
		cfg.Window.Height = o.height
	}
	if o.seed != 0 {
		cfg.Scene.Seed = o.seed
	}
	if err := cfg.Validate(); err != nil {
		return nil, false, err
	}
	return cfg, haveFile, nil
}

func run(o options, explicitConfig bool, logger *slog.Logger) error {
	cfg, haveFile, err := loadConfig(o, explicitConfig, logger)
	if err != nil {
		return err
	}
	seed := cfg.Scene.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Debug("particle seed", "seed", seed)
	rng := rand.New(rand.NewSource(seed))
	texs := textures.NewManager()

	if o.export != "" {
		aspect := float32(cfg.Window.Width) / float32(cfg.Window.Height)
		world, err := showcase.Build(cfg, aspect, texs, rng, logger)
		if err != nil {
			return err
		}
		if err := scene.ExportGLTF(world.Scene, o.export); err != nil {
			return err
		}
		logger.Info("scene exported", "path", o.export)
		return nil
	}

	// ── Window and renderer ──────────────────────────────────────────────────
	wc := platform.DefaultWindowConfig()
	wc.Width, wc.Height = cfg.Window.Width, cfg.Window.Height
	wc.Title = cfg.Window.Title
	wc.VSync = cfg.Window.VSync
	window, err := platform.NewWindow(wc)
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer window.Destroy()

	engine, err := renderer.NewRenderEngine(window, logger)
	if err != nil {
		return err
	}
	defer engine.Destroy()

	// ── Scene ────────────────────────────────────────────────────────────────
	aspect := float32(window.Width) / float32(window.Height)
	world, err := showcase.Build(cfg, aspect, texs, rng, logger)
	if err != nil {
		return err
	}

	tracker := input.NewTracker(len(world.Meshes), input.Viewport{
		Width:      window.Width,
		Height:     window.Height,
		PixelRatio: window.PixelRatio(),
	})
	tracker.SetWheelStep(cfg.Window.WheelStep)

	updater := showcase.NewUpdater(world, engine)
	tracker.OnSectionChange(func(section int) {
		logger.Debug("section reached", "section", section)
		updater.OnSection(section)
	})
	tracker.OnResize(func(vp input.Viewport) {
		showcase.Resize(world.Camera, engine, vp, cfg.Motion.MaxPixelRatio)
	})
	showcase.Resize(world.Camera, engine, tracker.Snapshot().Viewport, cfg.Motion.MaxPixelRatio)

	// ── Panel ────────────────────────────────────────────────────────────────
	ed := editor.NewEditor(editor.NewPanel(), logger)
	showcase.BindColor(ed.Panel, world, logger)
	ed.BindShortcuts(showcase.ColorLabel, editor.Shortcuts{
		HueDown: platform.KeyLeftBracket,
		HueUp:   platform.KeyRightBracket,
		Reset:   platform.KeyR,
		Undo:    platform.KeyZ,
		Redo:    platform.KeyY,
	})
	ed.Keys.Bind(platform.KeyEscape, false, func() { window.SetShouldClose(true) })
	ed.Keys.Bind(platform.KeyPageDown, false, tracker.PageDown)
	ed.Keys.Bind(platform.KeyPageUp, false, tracker.PageUp)
	ed.Keys.Bind(platform.KeyHome, false, tracker.Home)
	ed.Keys.Bind(platform.KeyEnd, false, tracker.End)
	ed.Keys.Bind(platform.KeyDown, false, func() { tracker.Wheel(-1) })
	ed.Keys.Bind(platform.KeyUp, false, func() { tracker.Wheel(1) })
	ed.Keys.Bind(platform.KeyF1, false, func() { printControls(logger) })
	ed.Keys.Bind(platform.KeyF5, false, func() {
		if err := scene.ExportGLTF(world.Scene, snapshotPath); err != nil {
			logger.Warn("snapshot failed", "path", snapshotPath, "error", err)
			return
		}
		logger.Info("snapshot saved", "path", snapshotPath)
	})

	window.SetScrollCallback(func(_, yoff float64) { tracker.Wheel(yoff) })
	window.SetCursorCallback(tracker.PointerMove)
	window.SetResizeCallback(tracker.Resize)
	window.SetKeyCallback(func(key int, ctrl bool) { ed.Keys.Dispatch(key, ctrl) })

	// ── Live config edits ────────────────────────────────────────────────────
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if haveFile {
		fw, err := editor.NewFileWatcher(o.config, showcase.ConfigEdits(world.Color), ed.Queue(), logger)
		if err != nil {
			logger.Warn("live config edits disabled", "error", err)
		} else {
			defer fw.Close()
			go fw.Run(ctx)
			logger.Info("watching config for color edits", "path", o.config)
		}
	}

	printControls(logger)

	// ── Frame loop ───────────────────────────────────────────────────────────
	clock := showcase.NewClock(nil)
	fps := newFPSCounter(time.Second, time.Now())
	var status statusLine

	for !window.ShouldClose() {
		window.PollEvents()
		if n := ed.Update(); n > 0 {
			logger.Debug("applied queued edits", "count", n)
		}

		delta, elapsed := clock.Tick()
		snap := tracker.Snapshot()
		if err := updater.Frame(snap, delta, elapsed); err != nil {
			return fmt.Errorf("frame: %w", err)
		}
		engine.Present()

		if rate, ok := fps.Frame(time.Now()); ok {
			st := engine.DrawStats()
			status.Clear()
			status.Add("%s", cfg.Window.Title)
			status.Add("%.0f fps", rate)
			status.Add("section %d/%d", snap.Scroll.Section+1, len(world.Meshes))
			status.Add("%s", world.Color.Hex())
			window.SetTitle(status.String())
			logger.Debug("frame stats", "fps", rate, "objects", st.Objects,
				"triangles", st.Triangles, "points", st.Points)
		}
	}

	logger.Info("exiting")
	return nil
}

func printControls(logger *slog.Logger) {
	logger.Info("controls",
		"scroll", "wheel, Up/Down, PageUp/PageDown, Home/End",
		"color", "[ and ] rotate hue, R resets, Ctrl+Z/Ctrl+Y undo/redo",
		"snapshot", "F5 writes "+snapshotPath,
		"quit", "Esc")
}
