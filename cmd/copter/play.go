package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-copter/internal/config"
	"github.com/vovakirdan/tui-copter/internal/copter"
	"github.com/vovakirdan/tui-copter/internal/core"
	"github.com/vovakirdan/tui-copter/internal/platform/tui"
	"github.com/vovakirdan/tui-copter/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagWatch      bool
	flagPick       bool
	flagHold       time.Duration
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the game",
	Long: `Start the game.

Controls:
  Space/Up/W   - Thrust (hold; key repeat keeps it on)
  Mouse        - Thrust while the left button is down
  Enter        - Start
  R            - Continue after a crash
  P/Esc        - Pause
  Ctrl+S       - Save a text screenshot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Wider gaps, slower scroll
  normal - Configured values
  hard   - Narrower gaps, faster scroll
  fixed  - No speed-up as the score grows

Examples:
  copter play
  copter play --difficulty easy
  copter play --pick
  copter play --config ./my-copter.yaml --watch
  copter play --seed 42`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to a custom config file (.yaml or .toml)")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "normal", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().BoolVar(&flagPick, "pick", false, "Choose the difficulty from a menu before playing")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the config file when it changes (applies from the next run)")
	playCmd.Flags().DurationVar(&flagHold, "hold", tui.DefaultHold, "How long one thrust key press keeps thrust on")
}

// loadGameConfig resolves the config file and applies the difficulty preset.
// It returns the file the config came from, empty for the built-in default,
// even when the config is rejected.
func loadGameConfig(path, difficulty string) (config.Config, config.DifficultyPreset, string, error) {
	preset, ok := config.ParsePreset(difficulty)
	if !ok {
		return config.Config{}, "", path, fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", difficulty)
	}

	path, err := config.ExpandHome(path)
	if err != nil {
		return config.Config{}, "", path, err
	}
	cfg, source, err := config.Load(path)
	if err != nil {
		return config.Config{}, "", source, err
	}

	config.ApplyPreset(&cfg, preset)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, "", source, fmt.Errorf("difficulty %s: %w", preset, err)
	}
	return cfg, preset, source, nil
}

func runPlay(cmd *cobra.Command, args []string) {
	if err := play(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func play() error {
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	difficulty := flagDifficulty
	if flagPick {
		initial, _ := config.ParsePreset(difficulty)
		picked, ok, err := tui.RunDifficultySelector(initial, width, height)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		difficulty = string(picked)
	}

	cfg, preset, source, err := loadGameConfig(flagConfig, difficulty)
	if err != nil {
		return err
	}
	if flagWatch && source == "" {
		return fmt.Errorf("--watch needs a config file (use --config)")
	}

	logger, closeLog, err := newLogger(flagLogFile, flagLogLevel)
	if err != nil {
		return err
	}
	defer closeLog()

	label := source
	if label == "" {
		label = "built-in defaults"
	}
	logger.Info("starting", "config", label, "difficulty", preset, "seed", flagSeed)

	// A missing database downgrades to an in-memory record; the game still works.
	var (
		records  copter.ScoreStore
		recorder tui.HistoryRecorder
	)
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores database unavailable, using memory", "error", err)
		mem := storage.NewMemory()
		records, recorder = mem, mem
	} else {
		defer store.Close()
		records, recorder = store, store
	}

	sim, err := copter.New(cfg,
		copter.WithStore(records),
		copter.WithSeed(flagSeed),
		copter.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	var watcher *config.Watcher
	if flagWatch {
		watcher, err = config.NewWatcher(source)
		if err != nil {
			return fmt.Errorf("cannot watch %s: %w", source, err)
		}
		defer watcher.Close()
		logger.Info("watching config", "path", watcher.Path())
	}

	err = tui.Run(sim, tui.Options{
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Mode:     string(preset),
		Preset:   preset,
		Recorder: recorder,
		Watcher:  watcher,
		Logger:   logger,
		Hold:     flagHold,
	})
	if err != nil {
		logger.Error("game loop failed", "error", err)
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
