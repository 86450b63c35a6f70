package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/milkrun/internal/audio"
	"github.com/vovakirdan/milkrun/internal/config"
	"github.com/vovakirdan/milkrun/internal/games/milkrun"
	"github.com/vovakirdan/milkrun/internal/platform/tui"
	"github.com/vovakirdan/milkrun/internal/profile"
	"github.com/vovakirdan/milkrun/internal/registry"
	"github.com/vovakirdan/milkrun/internal/runstate"
	"github.com/vovakirdan/milkrun/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagControl    string
	flagSound      bool
	flagVolume     float64
	flagPilot      string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a run",
	Long: `Start a run of Milk Run.

Controls:
  Arrows/WASD/HJKL  - Fly (keyboard and joystick modes)
  Mouse drag        - Fly toward the pointer (touch mode)
  P/Space           - Pause
  R                 - Restart (after game over)
  Ctrl+S            - Save a text screenshot
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - Wave 1, two extra lives, longer shields and enemy warmup
  normal - Wave 1
  hard   - Wave 5, one life less, fewer golden cows per pickup
  fixed  - Waves never advance

Examples:
  milkrun play
  milkrun play --difficulty easy
  milkrun play --control joystick
  milkrun play --config ./my-milkrun.yaml --sound`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	addPlayFlags(playCmd)
	addPlayFlags(rootCmd)
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	cmd.Flags().StringVar(&flagControl, "control", "keyboard", "Control mode: keyboard, joystick, touch")
	cmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound effects")
	cmd.Flags().Float64Var(&flagVolume, "volume", 0.6, "Sound volume from 0 to 1")
	cmd.Flags().StringVar(&flagPilot, "pilot", defaultPilot(), "Pilot name on the score table")
}

// playSession holds everything a local run needs and releases it in close.
type playSession struct {
	logger  *log.Logger
	store   *storage.Store
	profile *profile.Manager
	cancel  context.CancelFunc
	cleanup []func()
}

func (s *playSession) close() {
	s.cancel()
	for i := len(s.cleanup) - 1; i >= 0; i-- {
		s.cleanup[i]()
	}
}

// options returns the TUI options for a local game.
func (s *playSession) options() tui.Options {
	return tui.Options{
		Store:  s.store,
		Pilot:  flagPilot,
		Ship:   func() string { return s.profile.Profile().EquippedShip },
		Logger: s.logger,
	}
}

// newPlaySession applies the play flags to the game package, opens the
// pilot profile and the score database, and starts audio when asked.
func newPlaySession(ctx context.Context) (*playSession, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return nil, err
	}
	mode, err := milkrun.ParseControlMode(flagControl)
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadMilkrun(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	// The terminal belongs to the game, so logs go to --log-file or nowhere.
	logger, closeLog, err := newLogger(io.Discard, "milkrun")
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	s := &playSession{logger: logger, cancel: cancel, cleanup: []func(){closeLog}}

	milkrun.SetLogger(logger)
	milkrun.SetConfigPath(flagConfig)
	milkrun.SetDifficultyPreset(string(preset))
	milkrun.SetControlMode(mode)

	s.profile = profile.NewManager(openProfileStorage(logger), cfg, logger)
	milkrun.SetRunProvider(s.profile)

	if flagSound {
		player := audio.NewPlayer(flagVolume, logger)
		if err := player.Initialize(); err != nil {
			logger.Warn("sound disabled", "err", err)
		} else {
			s.cleanup = append(s.cleanup, player.Close)
			s.profile.OnRunStart(func(st *runstate.Store) {
				go player.Run(ctx, st.Subscribe(64))
			})
		}
	}

	s.store = openStore(logger)
	if s.store != nil {
		store := s.store
		s.cleanup = append(s.cleanup, func() { store.Close() })
	}
	return s, nil
}

// openProfileStorage opens the gdata directory. On failure the profile
// lives in memory for this process only.
func openProfileStorage(logger *log.Logger) profile.Storage {
	st, err := profile.OpenStorage(profile.AppName)
	if err != nil {
		logger.Warn("pilot profile will not be saved", "err", err)
		return nil
	}
	return st
}

func runPlay(cmd *cobra.Command, _ []string) error {
	s, err := newPlaySession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.close()

	game, err := registry.Create(milkrun.ID)
	if err != nil {
		return err
	}
	return tui.Run(game, runtimeConfig(), s.options())
}

// runMenu loops between the main menu, runs and the scoreboard.
func runMenu(cmd *cobra.Command, _ []string) error {
	s, err := newPlaySession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.close()

	rc := runtimeConfig()
	for {
		choice, updated, err := tui.RunMenu(s.store, rc, milkrun.ID, gameTitle(), flagPilot)
		if err != nil {
			return err
		}
		rc = updated

		switch choice {
		case tui.ChoicePlay:
			game, err := registry.Create(milkrun.ID)
			if err != nil {
				return err
			}
			if err := tui.Run(game, rc, s.options()); err != nil {
				return err
			}
		case tui.ChoiceScores:
			back, err := tui.RunScoreboard(s.store, milkrun.ID, gameTitle(), rc.ScreenW, rc.ScreenH)
			if err != nil {
				return err
			}
			if !back {
				return nil
			}
		default:
			return nil
		}
	}
}

func defaultPilot() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "pilot"
}
