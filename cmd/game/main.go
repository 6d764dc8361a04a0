package main

import (
	"embed"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"github.com/younwookim/scenestack/internal/application/game"
	"github.com/younwookim/scenestack/internal/application/journal"
	"github.com/younwookim/scenestack/internal/application/scene/demo"
	"github.com/younwookim/scenestack/internal/infrastructure/config"
	"github.com/younwookim/scenestack/internal/infrastructure/logging"
)

//go:embed configs
var configFS embed.FS

type flags struct {
	configDir string
	record    string
	replay    string
	logLevel  string
	logFormat string
	debug     bool
}

func parseFlags(args []string) (flags, error) {
	var f flags
	fset := flag.NewFlagSet("game", flag.ContinueOnError)
	fset.StringVar(&f.configDir, "config", "", "Directory with game.toml/.yaml/.json (default: embedded config)")
	fset.StringVar(&f.record, "record", "", "Record a journal to file (e.g., -record journal.json); \"auto\" picks a name")
	fset.StringVar(&f.replay, "replay", "", "Play back the input of a recorded journal")
	fset.StringVar(&f.logLevel, "log-level", "", "Override the configured log level")
	fset.StringVar(&f.logFormat, "log-format", "", "Override the configured log format (console or json)")
	fset.BoolVar(&f.debug, "debug", false, "Show the debug overlay")
	if err := fset.Parse(args); err != nil {
		return flags{}, err
	}
	if f.record != "" && f.replay != "" {
		return flags{}, errors.New("-record and -replay cannot be combined")
	}
	return f, nil
}

// loadConfig reads the config from dir, or from the embedded defaults
func loadConfig(dir string) (*config.GameConfig, error) {
	if dir != "" {
		return config.NewLoader(dir).LoadGame()
	}

	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, fmt.Errorf("failed to get config subfs: %w", err)
	}
	return config.NewFSLoader(fsys, "configs").LoadGameOrDefault()
}

func newLogger(cfg config.LoggingConfig, f flags) (zerolog.Logger, error) {
	opts := logging.Options{Level: cfg.Level, Format: logging.Format(cfg.Format)}
	if f.logLevel != "" {
		opts.Level = f.logLevel
	}
	if f.logFormat != "" {
		opts.Format = logging.Format(f.logFormat)
	}
	return logging.New(opts)
}

// gameOptions translates config and flags into game options
func gameOptions(cfg *config.GameConfig, f flags, logger zerolog.Logger) ([]game.Option, error) {
	clearColor, err := config.ParseColor(cfg.Display.ClearColor)
	if err != nil {
		return nil, err
	}

	opts := []game.Option{
		game.WithLogger(logger),
		game.WithClearColor(clearColor),
		game.WithResource(cfg.Transitions),
	}

	switch {
	case f.replay != "":
		data, err := journal.Load(f.replay)
		if err != nil {
			return nil, fmt.Errorf("failed to load replay %s: %w", f.replay, err)
		}
		opts = append(opts, game.WithReplay(journal.NewPlayer(*data)), game.WithFixedStep())
		logger.Info().Str("file", f.replay).Int("frames", len(data.Frames)).Msg("replay enabled")
	case f.record != "" || cfg.Journal.Enabled:
		filename := f.record
		if filename == "" || filename == "auto" {
			filename = journal.GenerateFilename(cfg.Journal.Dir)
		}
		opts = append(opts, game.WithJournal(journal.NewRecorder(), filename), game.WithFixedStep())
		logger.Info().Str("file", filename).Msg("recording enabled")
	}

	return opts, nil
}

func run(args []string) error {
	f, err := parseFlags(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(f.configDir)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := newLogger(cfg.Logging, f)
	if err != nil {
		return err
	}

	opts, err := gameOptions(cfg, f, logger)
	if err != nil {
		return err
	}

	d := cfg.Display
	g := game.New(demo.NewTitle(), d.ScreenWidth, d.ScreenHeight, opts...)
	defer g.Close()
	g.SetDT(1.0 / float64(d.Framerate))
	if f.debug {
		g.AddOverlay(game.NewDebugOverlay(g.Stack()))
	}

	// Set up ebiten
	ebiten.SetWindowSize(d.ScreenWidth*d.Scale, d.ScreenHeight*d.Scale)
	ebiten.SetWindowTitle(d.Title)
	ebiten.SetTPS(d.Framerate)

	logger.Info().Int("width", d.ScreenWidth).Int("height", d.ScreenHeight).Msg("starting")
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
