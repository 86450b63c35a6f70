// milkrun is a terminal arcade game: fly a saucer, beam up cows, dodge the
// turrets' homing missiles and survive the waves.
//
// Usage:
//
//	milkrun                  - Main menu (play or view high scores)
//	milkrun play             - Start a run right away
//	milkrun scores           - Print the high score table
//	milkrun hangar           - Show the pilot profile, buy and equip ships
//	milkrun serve            - Host the game over SSH
//	milkrun simulate         - Fly a headless autopilot run
//	milkrun config           - Print the default configuration
//
// Global flags:
//
//	--fps <rate>         - Tick rate (default: 60)
//	--seed <value>       - RNG seed for reproducible runs
//	--db <path>          - Score database (default: ~/.milkrun/scores.db)
//	--log-level <level>  - debug, info, warn or error
//	--log-file <path>    - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/milkrun/internal/core"
	"github.com/vovakirdan/milkrun/internal/games/milkrun"
	"github.com/vovakirdan/milkrun/internal/storage"
)

var (
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "milkrun",
	Short: "Milk Run - beam up cows in your terminal",
	Long: `Milk Run is an arcade survival game for the terminal.

Fly the saucer over the pasture and beam up cows for points and milk.
Tanks roll in from the edges and fire homing missiles; collect ten cows
in a row, then stop to unleash a counter-attack blast. Milk earned in a
run is banked in your pilot profile and buys ships and one-shot items in
the hangar.

Examples:
  milkrun
  milkrun play --difficulty hard
  milkrun play --control touch --sound
  milkrun hangar buy swift
  milkrun serve --ssh :2222`,
	SilenceUsage: true,
	RunE:         runMenu,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.milkrun/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(hangarCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the logger from --log-level and --log-file. Without a
// log file, output goes to fallback. The returned func closes the file.
func newLogger(fallback io.Writer, prefix string) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	w, closeFn := fallback, func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	return logger, closeFn, nil
}

// runtimeConfig sizes the screen from the terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the score database. A failure is logged and play
// continues without saving scores.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "err", err)
		return nil
	}
	return store
}

// gameTitle is shown in menus and score headers.
func gameTitle() string {
	return milkrun.New().Title()
}
