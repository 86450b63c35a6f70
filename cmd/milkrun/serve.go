package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/milkrun/internal/config"
	"github.com/vovakirdan/milkrun/internal/games/milkrun"
	"github.com/vovakirdan/milkrun/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagServeConfig string
	flagServeLevel  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Host Milk Run over SSH",
	Long: `Start an SSH server where every connection gets its own menu and run.

All sessions share one score table. SSH pilots fly the default ship and
have no profile: milk is not banked and the hangar is local only.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.milkrun/host_key

Examples:
  milkrun serve                           # Listen on :23234
  milkrun serve --ssh :2222               # Listen on port 2222
  milkrun serve --host-key ./my_host_key  # Use specific host key
  milkrun serve --difficulty hard

Players connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServeConfig, "config", "", "Path to custom game config YAML")
	serveCmd.Flags().StringVar(&flagServeLevel, "difficulty", "", "Difficulty preset for every session")
}

func runServe(_ *cobra.Command, _ []string) error {
	if _, err := config.ParsePreset(flagServeLevel); err != nil {
		return err
	}

	logger, closeLog, err := newLogger(os.Stderr, "milkrun-ssh")
	if err != nil {
		return err
	}
	defer closeLog()

	milkrun.SetLogger(logger)
	milkrun.SetConfigPath(flagServeConfig)
	milkrun.SetDifficultyPreset(flagServeLevel)

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.GameID = milkrun.ID
	cfg.TickRate = flagFPS
	cfg.Ship = config.DefaultShipID

	server, err := tui.NewSSHServer(cfg, logger)
	if err != nil {
		return err
	}

	fmt.Printf("Starting Milk Run SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")
	return server.ListenAndServe()
}
